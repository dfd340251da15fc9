package events

import (
	"time"

	"github.com/redgreen-game/redgreen/go/internal/models"
)

// Event payload types shared between the round controller and the
// presentation gateway.

// RoundStartedPayload is the payload for a RoundStarted event.
type RoundStartedPayload struct {
	RoundID     string    `json:"round_id"`
	StartedAt   time.Time `json:"started_at"`
	DurationSec int       `json:"duration_sec"`
	Local       bool      `json:"local"`
}

// BetAcceptedPayload is the payload for a BetAccepted event.
type BetAcceptedPayload struct {
	BetID      string       `json:"bet_id"`
	RoundID    string       `json:"round_id"`
	UserID     string       `json:"user_id"`
	Color      models.Color `json:"color"`
	Amount     float64      `json:"amount"`
	RedTotal   float64      `json:"red_total"`
	GreenTotal float64      `json:"green_total"`
	PlacedAt   time.Time    `json:"placed_at"`
}

// RoundSettledPayload is the payload for a RoundSettled event.
type RoundSettledPayload struct {
	RoundID      string       `json:"round_id"`
	WinningColor models.Color `json:"winning_color"`
	RedTotal     float64      `json:"red_total"`
	GreenTotal   float64      `json:"green_total"`
	SettledAt    time.Time    `json:"settled_at"`
	Local        bool         `json:"local"`
}

// TimerTickPayload carries the per-second countdown updates.
type TimerTickPayload struct {
	RoundID          string    `json:"round_id"`
	TimeRemainingSec int       `json:"time_remaining_sec"`
	TickedAt         time.Time `json:"ticked_at"`
}

// Severity classifies a user-facing notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// NotificationPayload is a transient user-facing message.
type NotificationPayload struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
}
