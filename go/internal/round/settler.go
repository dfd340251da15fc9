package round

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/redgreen-game/redgreen/go/internal/models"
)

// Settler determines a round's winning color and final totals. The
// controller settles every round through this interface so its core
// path never branches on where settlement authority lives.
type Settler interface {
	// Settle finalizes the round and returns its result.
	Settle(ctx context.Context, round models.Round) (*models.SettledResult, error)
	// Authoritative reports whether balances were adjusted by the
	// settling party (the server) or must be adjusted locally.
	Authoritative() bool
}

// RemoteSettler settles against the game server, which owns randomness
// and all money movement.
type RemoteSettler struct {
	api GameAPI
}

func NewRemoteSettler(api GameAPI) *RemoteSettler {
	return &RemoteSettler{api: api}
}

func (s *RemoteSettler) Authoritative() bool { return true }

func (s *RemoteSettler) Settle(ctx context.Context, round models.Round) (*models.SettledResult, error) {
	game, err := s.api.CompleteGame(ctx, round.ID)
	if err != nil {
		return nil, &GatewayError{Op: "complete game", Err: err}
	}

	winning := models.Color(strings.ToLower(game.WinningColor))
	if !winning.Valid() {
		return nil, fmt.Errorf("complete game %s: unusable winning color %q", round.ID, game.WinningColor)
	}

	settledAt := time.Now().UTC()
	if game.EndTime != nil {
		settledAt = *game.EndTime
	}

	return &models.SettledResult{
		DisplayID:    fmt.Sprintf("%s_%d", game.GameID, settledAt.UnixMilli()),
		RoundID:      game.GameID,
		WinningColor: winning,
		RedTotal:     float64(game.RedTotal),
		GreenTotal:   float64(game.GreenTotal),
		SettledAt:    settledAt,
	}, nil
}

// LocalSettler is the offline fallback: it picks the winning color
// uniformly at random and finalizes the locally accumulated totals.
// From the presentation layer's point of view its output is
// indistinguishable from a remote settlement.
type LocalSettler struct {
	clock clockwork.Clock

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewLocalSettler(clock clockwork.Clock) *LocalSettler {
	return &LocalSettler{
		clock: clock,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *LocalSettler) Authoritative() bool { return false }

func (s *LocalSettler) Settle(_ context.Context, round models.Round) (*models.SettledResult, error) {
	s.mu.Lock()
	winning := models.ColorRed
	if s.rnd.Intn(2) == 1 {
		winning = models.ColorGreen
	}
	s.mu.Unlock()

	settledAt := s.clock.Now().UTC()
	log.Info().
		Str("round_id", round.ID).
		Str("winning_color", string(winning)).
		Msg("settled round locally")

	return &models.SettledResult{
		DisplayID:    fmt.Sprintf("%s_%d", round.ID, settledAt.UnixMilli()),
		RoundID:      round.ID,
		WinningColor: winning,
		RedTotal:     round.RedTotal,
		GreenTotal:   round.GreenTotal,
		SettledAt:    settledAt,
		Local:        true,
	}, nil
}
