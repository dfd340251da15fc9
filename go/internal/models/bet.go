package models

import (
	"time"

	"github.com/google/uuid"
)

// Bet is a player's single wager for one round. Immutable once accepted;
// it exists only for the lifetime of its round.
type Bet struct {
	ID       uuid.UUID `json:"id"`
	UserID   string    `json:"user_id"`
	RoundID  string    `json:"round_id"`
	Color    Color     `json:"color"`
	Amount   float64   `json:"amount"`
	PlacedAt time.Time `json:"placed_at"`
}
