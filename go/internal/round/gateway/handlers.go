package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	gameapi "github.com/redgreen-game/redgreen/go/clients/game_api_client"
	"github.com/redgreen-game/redgreen/go/internal/models"
	"github.com/redgreen-game/redgreen/go/internal/round"
	"github.com/redgreen-game/redgreen/go/internal/session"
)

// CountdownReader is what the handlers need from the countdown driver.
type CountdownReader interface {
	Remaining() int
	Progress() float64
}

// ProfileSource is what the profile endpoint needs from the game client.
type ProfileSource interface {
	UserProfile(ctx context.Context, userID string) (*gameapi.UserProfile, error)
	UserStats(ctx context.Context, userID string) (*gameapi.UserStats, error)
}

// Handler serves the presentation surface: a live event stream over
// WebSocket plus JSON snapshots for initial render. It only reads
// controller state and forwards bet intents; it never mutates rounds.
type Handler struct {
	cm       *ConnectionManager
	ctrl     *round.Controller
	driver   CountdownReader
	profiles ProfileSource
	sess     *session.Session
}

func NewHandler(cm *ConnectionManager, ctrl *round.Controller, driver CountdownReader, profiles ProfileSource, sess *session.Session) *Handler {
	return &Handler{cm: cm, ctrl: ctrl, driver: driver, profiles: profiles, sess: sess}
}

// RegisterRoutes attaches the presentation endpoints to mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleWebSocket)
	mux.HandleFunc("/api/state", h.HandleState)
	mux.HandleFunc("/api/history", h.HandleHistory)
	mux.HandleFunc("/api/bets", h.HandlePlaceBet)
	mux.HandleFunc("/api/profile", h.HandleProfile)
}

// HandleWebSocket upgrades the request and subscribes it to the round
// event stream.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if err := h.cm.UpgradeConnection(w, r); err != nil {
		http.Error(w, "failed to upgrade connection", http.StatusInternalServerError)
	}
}

// stateResponse combines the controller snapshot with the countdown
// display values.
type stateResponse struct {
	round.Snapshot
	SecondsRemaining int     `json:"seconds_remaining"`
	Progress         float64 `json:"progress"`
}

// HandleState returns the full presentation snapshot.
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, stateResponse{
		Snapshot:         h.ctrl.Snapshot(),
		SecondsRemaining: h.driver.Remaining(),
		Progress:         h.driver.Progress(),
	})
}

// HandleHistory returns the settled-round ledger, newest first.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.ctrl.History())
}

type placeBetRequest struct {
	Color  models.Color `json:"color"`
	Amount float64      `json:"amount"`
}

// HandlePlaceBet forwards a bet intent to the controller and maps the
// error taxonomy onto HTTP statuses.
func (h *Handler) HandlePlaceBet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req placeBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.ctrl.PlaceBet(r.Context(), req.Color, req.Amount)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, h.ctrl.Snapshot())
	case round.IsValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case round.IsAuthenticationError(err):
		writeError(w, http.StatusUnauthorized, "please login again to continue")
	default:
		log.Error().Err(err).Msg("bet submission failed")
		writeError(w, http.StatusBadGateway, "unable to place bet, please try again")
	}
}

// profileResponse pairs the player profile with their betting record.
type profileResponse struct {
	User  models.User       `json:"user"`
	Stats *models.UserStats `json:"stats,omitempty"`
}

// HandleProfile returns the logged-in player's profile and betting
// record. Stats are best-effort; a stats failure still returns the
// profile.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !h.sess.LoggedIn() {
		writeError(w, http.StatusUnauthorized, "no active session")
		return
	}

	profile, err := h.profiles.UserProfile(r.Context(), h.sess.UserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch user profile")
		writeError(w, http.StatusBadGateway, "profile unavailable")
		return
	}

	user := models.User{
		ID:       profile.ID,
		Username: profile.Username,
		Email:    profile.Email,
		Balance:  float64(profile.Balance),
	}
	if profile.CreatedAt != nil {
		user.CreatedAt = *profile.CreatedAt
	}

	resp := profileResponse{User: user}
	if stats, err := h.profiles.UserStats(r.Context(), h.sess.UserID); err != nil {
		log.Warn().Err(err).Msg("failed to fetch user stats")
	} else {
		resp.Stats = &models.UserStats{
			UserID:       stats.UserID,
			TotalBets:    stats.TotalBets,
			TotalWins:    stats.TotalWins,
			TotalWagered: float64(stats.TotalWagered),
			TotalWon:     float64(stats.TotalWon),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
