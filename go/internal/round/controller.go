package round

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/redgreen-game/redgreen/go/clients"
	gameapi "github.com/redgreen-game/redgreen/go/clients/game_api_client"
	"github.com/redgreen-game/redgreen/go/internal/history"
	"github.com/redgreen-game/redgreen/go/internal/models"
	"github.com/redgreen-game/redgreen/go/internal/round/events"
	"github.com/redgreen-game/redgreen/go/internal/session"
)

// GameAPI defines what the controller needs from the game server client.
type GameAPI interface {
	CreateGame(ctx context.Context, gameID string) (*gameapi.Game, error)
	CurrentGame(ctx context.Context) (*gameapi.Game, error)
	GameHistory(ctx context.Context, page, size int) ([]gameapi.Game, error)
	CompleteGame(ctx context.Context, gameID string) (*gameapi.Game, error)
	UpdateGameTotals(ctx context.Context, gameID, color string, amount float64) (*gameapi.Game, error)
	PlaceBet(ctx context.Context, req gameapi.PlaceBetRequest) error
	Balance(ctx context.Context, userID string) (float64, error)
}

// State is the controller's position in the round lifecycle.
type State string

const (
	StateNoRound    State = "NO_ROUND"
	StateOpen       State = "OPEN"
	StateCompleting State = "COMPLETING"
	StateSettled    State = "SETTLED"
)

// Config holds the fixed game constants. They are configuration, never
// runtime-negotiated.
type Config struct {
	RoundDurationSec int
	MinBet           float64
	Intermission     time.Duration
	HistorySize      int
}

// DefaultConfig returns the stock game constants.
func DefaultConfig() Config {
	return Config{
		RoundDurationSec: 30,
		MinBet:           10,
		Intermission:     3 * time.Second,
		HistorySize:      history.DefaultCap,
	}
}

// Controller owns the round lifecycle: it tracks the active round,
// admits at most one bet per round, drives settlement when the countdown
// expires, and falls back to local simulation whenever the game server
// is unreachable. All round, bet, and balance state is owned here;
// presentation layers read snapshots and dispatch intents.
type Controller struct {
	api    GameAPI
	sess   *session.Session
	ledger *history.Ledger
	remote Settler
	local  Settler
	sink   events.Sink
	clock  clockwork.Clock
	ids    *IDGenerator
	cfg    Config

	instanceID string

	mu            sync.Mutex
	state         State
	round         *models.Round
	bet           *models.Bet
	balance       float64
	degraded      bool
	pendingExpire bool
}

// NewController wires a controller. sink may be nil when no presentation
// surface is attached yet.
func NewController(api GameAPI, sess *session.Session, ledger *history.Ledger, clock clockwork.Clock, sink events.Sink, cfg Config) *Controller {
	if sink == nil {
		sink = events.Discard{}
	}
	if cfg.RoundDurationSec <= 0 {
		cfg = DefaultConfig()
	}
	return &Controller{
		api:        api,
		sess:       sess,
		ledger:     ledger,
		remote:     NewRemoteSettler(api),
		local:      NewLocalSettler(clock),
		sink:       sink,
		clock:      clock,
		ids:        NewIDGenerator(clock),
		cfg:        cfg,
		instanceID: uuid.New().String()[:8],
		state:      StateNoRound,
	}
}

// Initialize loads history and balance, then adopts the server's open
// round or creates one. An unreachable server drops the controller into
// degraded mode with a locally generated round instead of failing.
func (c *Controller) Initialize(ctx context.Context) {
	log.Info().Str("instance", c.instanceID).Msg("initializing round controller")

	c.loadHistory(ctx)
	c.refreshBalance(ctx)

	game, err := c.api.CurrentGame(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch current round, entering degraded mode")
		c.adoptLocalRound()
		c.notify(ctx, events.SeverityError, "Connection Issue", "Running in offline mode")
		return
	}

	if game == nil {
		c.createRound(ctx)
		return
	}

	c.mu.Lock()
	c.round = &models.Round{
		ID:         game.GameID,
		Status:     models.RoundStatusOpen,
		RedTotal:   float64(game.RedTotal),
		GreenTotal: float64(game.GreenTotal),
		StartedAt:  c.clock.Now().UTC(),
	}
	c.state = StateOpen
	c.bet = nil
	roundID := c.round.ID
	c.mu.Unlock()

	log.Info().Str("round_id", roundID).Msg("adopted active round from server")
	c.publishRoundStarted(ctx)
}

// PlaceBet validates and submits a wager for the open round. Validation
// failures reject before any network call; gateway failures on the
// placement step abort with no local state mutation.
func (c *Controller) PlaceBet(ctx context.Context, color models.Color, amount float64) error {
	if !color.Valid() {
		return &ValidationError{Reason: fmt.Sprintf("unknown color %q", color)}
	}

	c.mu.Lock()
	if c.state != StateOpen || c.round == nil {
		c.mu.Unlock()
		return &ValidationError{Reason: "no open round to bet on"}
	}
	if c.bet != nil {
		c.mu.Unlock()
		return &ValidationError{Reason: "you can only place one bet per round"}
	}
	if amount < c.cfg.MinBet {
		c.mu.Unlock()
		return &ValidationError{Reason: fmt.Sprintf("minimum bet is %.0f", c.cfg.MinBet)}
	}
	if amount > c.balance {
		c.mu.Unlock()
		return &ValidationError{Reason: "insufficient balance"}
	}
	roundID := c.round.ID
	degraded := c.degraded
	c.mu.Unlock()

	if !degraded {
		if !c.sess.LoggedIn() {
			return &AuthenticationError{Err: fmt.Errorf("no active session")}
		}

		err := c.api.PlaceBet(ctx, gameapi.PlaceBetRequest{
			UserID: c.sess.UserID,
			GameID: roundID,
			Color:  strings.ToUpper(string(color)),
			Amount: amount,
		})
		if err != nil {
			if clients.IsAuthError(err) {
				return &AuthenticationError{Err: err}
			}
			return &GatewayError{Op: "place bet", Err: err}
		}

		// The server accepted the wager; a totals-update failure from
		// here on is a desync to log and surface, not a reason to
		// pretend the bet never happened.
		if _, err := c.api.UpdateGameTotals(ctx, roundID, strings.ToUpper(string(color)), amount); err != nil {
			log.Error().Err(err).
				Str("round_id", roundID).
				Str("color", string(color)).
				Float64("amount", amount).
				Msg("bet placed but totals update failed, server totals may be desynced")
			c.notify(ctx, events.SeverityWarning, "Totals Out Of Sync", "Your bet was placed, but the live totals may lag this round.")
		}
	}

	c.mu.Lock()
	if c.round == nil || c.round.ID != roundID {
		c.mu.Unlock()
		log.Warn().Str("round_id", roundID).Msg("round rolled over during bet submission, discarding local mutation")
		return ErrStaleResponse
	}
	bet := &models.Bet{
		ID:       uuid.New(),
		UserID:   c.sess.UserID,
		RoundID:  roundID,
		Color:    color,
		Amount:   amount,
		PlacedAt: c.clock.Now().UTC(),
	}
	c.bet = bet
	c.round.AddStake(color, amount)
	if degraded {
		// No server to move money; the cached balance is the only one.
		c.balance -= amount
		c.sess.NotifyBalance(c.balance)
	}
	redTotal := c.round.RedTotal
	greenTotal := c.round.GreenTotal
	c.mu.Unlock()

	log.Info().
		Str("round_id", roundID).
		Str("color", string(color)).
		Float64("amount", amount).
		Bool("degraded", degraded).
		Msg("bet accepted")

	c.sink.Publish(ctx, events.New(events.EventTypeBetAccepted, roundID, events.BetAcceptedPayload{
		BetID:      bet.ID.String(),
		RoundID:    roundID,
		UserID:     bet.UserID,
		Color:      color,
		Amount:     amount,
		RedTotal:   redTotal,
		GreenTotal: greenTotal,
		PlacedAt:   bet.PlacedAt,
	}))
	c.notify(ctx, events.SeveritySuccess, "Bet Placed Successfully!", fmt.Sprintf("%.0f on %s", amount, strings.ToUpper(string(color))))

	return nil
}

// OnRoundExpire runs one completion cycle: settle, record, pay out,
// pause for the presentation delay, then open the next round. An expiry
// edge arriving while a cycle is already in flight is queued and then
// resolved against the settled state, so a round never settles twice.
func (c *Controller) OnRoundExpire(ctx context.Context) {
	c.mu.Lock()
	if c.state != StateOpen || c.round == nil {
		if c.state == StateCompleting {
			c.pendingExpire = true
			log.Debug().Str("instance", c.instanceID).Msg("expiry during in-flight completion, queued")
		}
		c.mu.Unlock()
		return
	}
	c.state = StateCompleting
	c.round.Status = models.RoundStatusCompleting
	snapshot := *c.round
	bet := c.bet
	degraded := c.degraded
	c.mu.Unlock()

	log.Info().Str("round_id", snapshot.ID).Bool("degraded", degraded).Msg("round expired, completing")

	result, authoritative := c.settle(ctx, snapshot, degraded)

	if authoritative {
		// Balance must be read after the completion call resolved,
		// never before: the server moves money during settlement.
		c.refreshBalance(ctx)
	}

	c.mu.Lock()
	if c.round == nil || c.round.ID != snapshot.ID {
		c.mu.Unlock()
		log.Warn().
			Str("round_id", snapshot.ID).
			Msg("settlement result arrived for superseded round, discarding")
		return
	}
	c.round.Status = models.RoundStatusSettled
	c.state = StateSettled
	c.ledger.Append(*result)
	if !authoritative && bet != nil && bet.Color == result.WinningColor {
		c.balance += bet.Amount * 2
		c.sess.NotifyBalance(c.balance)
	}
	c.mu.Unlock()

	c.sink.Publish(ctx, events.New(events.EventTypeRoundSettled, result.RoundID, events.RoundSettledPayload{
		RoundID:      result.RoundID,
		WinningColor: result.WinningColor,
		RedTotal:     result.RedTotal,
		GreenTotal:   result.GreenTotal,
		SettledAt:    result.SettledAt,
		Local:        result.Local,
	}))
	c.notifyOutcome(ctx, bet, result)

	if c.cfg.Intermission > 0 {
		timer := c.clock.NewTimer(c.cfg.Intermission)
		defer timer.Stop()
		select {
		case <-timer.Chan():
		case <-ctx.Done():
			return
		}
	}

	c.createRound(ctx)
	c.notify(ctx, events.SeverityInfo, "New Round Started!", "Place your bets now!")
}

// settle runs settlement through the remote settler unless the client is
// already degraded, falling back to the local simulation on gateway
// failure. Returns the result and whether it is server-authoritative.
func (c *Controller) settle(ctx context.Context, snapshot models.Round, degraded bool) (*models.SettledResult, bool) {
	if !degraded {
		result, err := c.remote.Settle(ctx, snapshot)
		if err == nil {
			return result, c.remote.Authoritative()
		}
		log.Error().Err(err).Str("round_id", snapshot.ID).Msg("remote settlement failed, falling back to local simulation")
		c.setDegraded(true)
	}

	// Local settlement cannot fail.
	result, _ := c.local.Settle(ctx, snapshot)
	return result, c.local.Authoritative()
}

// createRound opens the next round: server-confirmed when reachable,
// locally generated otherwise. Always leaves the controller in OPEN with
// a cleared bet and any queued expiry absorbed.
func (c *Controller) createRound(ctx context.Context) {
	c.mu.Lock()
	degraded := c.degraded
	c.mu.Unlock()

	if !degraded {
		candidate := c.ids.Next()
		game, err := c.api.CreateGame(ctx, candidate)
		if err == nil {
			c.mu.Lock()
			c.round = &models.Round{
				ID:        game.GameID,
				Status:    models.RoundStatusOpen,
				StartedAt: c.clock.Now().UTC(),
			}
			c.state = StateOpen
			c.bet = nil
			c.absorbQueuedExpiry()
			c.mu.Unlock()

			log.Info().Str("round_id", game.GameID).Msg("created round on server")
			c.publishRoundStarted(ctx)
			return
		}

		log.Error().Err(err).Str("candidate_id", candidate).Msg("failed to create round on server, entering degraded mode")
		c.setDegraded(true)
		c.notify(ctx, events.SeverityError, "Connection Issue", "Unable to create new round. Running locally.")
	}

	c.adoptLocalRound()
	c.publishRoundStarted(ctx)
}

// adoptLocalRound installs a locally generated round with zeroed totals.
func (c *Controller) adoptLocalRound() {
	id := c.ids.Next()

	c.mu.Lock()
	c.round = &models.Round{
		ID:        id,
		Status:    models.RoundStatusOpen,
		StartedAt: c.clock.Now().UTC(),
		Local:     true,
	}
	c.state = StateOpen
	c.bet = nil
	c.degraded = true
	c.absorbQueuedExpiry()
	c.mu.Unlock()

	log.Info().Str("round_id", id).Msg("opened local round")
}

// absorbQueuedExpiry resolves an expiry edge that fired during the
// completion cycle against the already-settled round: the new round just
// opened, so the queued edge becomes a no-op. Caller holds c.mu.
func (c *Controller) absorbQueuedExpiry() {
	if c.pendingExpire {
		c.pendingExpire = false
		log.Debug().Str("instance", c.instanceID).Msg("queued expiry resolved against settled round")
	}
}

// loadHistory fetches persisted history and normalizes it into the
// ledger. On failure the ledger starts empty and the user sees a
// warning; no placeholder entries are seeded.
func (c *Controller) loadHistory(ctx context.Context) {
	games, err := c.api.GameHistory(ctx, 0, c.cfg.HistorySize)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load round history, starting empty")
		c.notify(ctx, events.SeverityWarning, "History Unavailable", "Could not load past rounds")
		return
	}

	results := make([]models.SettledResult, 0, len(games))
	for i, game := range games {
		winning := models.Color(strings.ToLower(game.WinningColor))
		if !winning.Valid() {
			winning = models.ColorRed
		}
		settledAt := c.clock.Now().UTC()
		if game.EndTime != nil {
			settledAt = *game.EndTime
		} else if game.CreatedAt != nil {
			settledAt = *game.CreatedAt
		}
		results = append(results, models.SettledResult{
			// Round IDs can collide across history pages; the index
			// keeps display IDs unique within this list.
			DisplayID:    fmt.Sprintf("%s_%d", game.GameID, i),
			RoundID:      game.GameID,
			WinningColor: winning,
			RedTotal:     float64(game.RedTotal),
			GreenTotal:   float64(game.GreenTotal),
			SettledAt:    settledAt,
		})
	}
	c.ledger.Replace(results)

	log.Info().Int("entries", len(results)).Msg("loaded round history")
}

// refreshBalance re-reads the authoritative balance. Failures keep the
// cached value; balance display degrades, betting limits still apply.
func (c *Controller) refreshBalance(ctx context.Context) {
	if !c.sess.LoggedIn() {
		return
	}

	balance, err := c.api.Balance(ctx, c.sess.UserID)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh balance, keeping cached value")
		return
	}

	c.mu.Lock()
	c.balance = balance
	c.mu.Unlock()
	c.sess.NotifyBalance(balance)
}

func (c *Controller) setDegraded(degraded bool) {
	c.mu.Lock()
	c.degraded = degraded
	c.mu.Unlock()
}

func (c *Controller) notifyOutcome(ctx context.Context, bet *models.Bet, result *models.SettledResult) {
	if bet == nil {
		return
	}
	winning := strings.ToUpper(string(result.WinningColor))
	if bet.Color == result.WinningColor {
		c.notify(ctx, events.SeveritySuccess, "Congratulations!",
			fmt.Sprintf("You won %.0f! %s was the winning color.", bet.Amount*2, winning))
	} else {
		c.notify(ctx, events.SeverityError, "Better luck next time!",
			fmt.Sprintf("%s won this round.", winning))
	}
}

func (c *Controller) notify(ctx context.Context, severity events.Severity, title, body string) {
	c.mu.Lock()
	roundID := ""
	if c.round != nil {
		roundID = c.round.ID
	}
	c.mu.Unlock()

	c.sink.Publish(ctx, events.New(events.EventTypeNotification, roundID, events.NotificationPayload{
		Severity: severity,
		Title:    title,
		Body:     body,
	}))
}

func (c *Controller) publishRoundStarted(ctx context.Context) {
	c.mu.Lock()
	if c.round == nil {
		c.mu.Unlock()
		return
	}
	payload := events.RoundStartedPayload{
		RoundID:     c.round.ID,
		StartedAt:   c.round.StartedAt,
		DurationSec: c.cfg.RoundDurationSec,
		Local:       c.round.Local,
	}
	c.mu.Unlock()

	c.sink.Publish(ctx, events.New(events.EventTypeRoundStarted, payload.RoundID, payload))
}

// Snapshot is a read-only view of controller state for presentation.
type Snapshot struct {
	State    State         `json:"state"`
	Round    *models.Round `json:"round,omitempty"`
	Bet      *models.Bet   `json:"bet,omitempty"`
	Balance  float64       `json:"balance"`
	Degraded bool          `json:"degraded"`
}

// Snapshot returns a copy of the controller's current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:    c.state,
		Balance:  c.balance,
		Degraded: c.degraded,
	}
	if c.round != nil {
		round := *c.round
		snap.Round = &round
	}
	if c.bet != nil {
		bet := *c.bet
		snap.Bet = &bet
	}
	return snap
}

// Balance returns the cached balance.
func (c *Controller) Balance() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balance
}

// History returns the ledger snapshot, newest first.
func (c *Controller) History() []models.SettledResult {
	return c.ledger.Snapshot()
}
