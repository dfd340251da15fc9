package models

import (
	"time"
)

// SettledResult is the outcome of a settled round. Never mutated after
// creation.
type SettledResult struct {
	// DisplayID is unique within one ledger even when the underlying
	// round IDs collide across history pages.
	DisplayID    string    `json:"display_id"`
	RoundID      string    `json:"round_id"`
	WinningColor Color     `json:"winning_color"`
	RedTotal     float64   `json:"red_total"`
	GreenTotal   float64   `json:"green_total"`
	SettledAt    time.Time `json:"settled_at"`
	// Local marks results produced by the offline fallback settlement.
	Local bool `json:"local,omitempty"`
}
