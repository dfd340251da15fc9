package models

import (
	"time"
)

// Color is one of the two bettable outcomes of a round.
type Color string

const (
	ColorRed   Color = "red"
	ColorGreen Color = "green"
)

// Valid reports whether c is one of the two playable colors.
func (c Color) Valid() bool {
	return c == ColorRed || c == ColorGreen
}

// RoundStatus defines the lifecycle status of a round.
type RoundStatus string

const (
	RoundStatusOpen       RoundStatus = "OPEN"
	RoundStatusCompleting RoundStatus = "COMPLETING"
	RoundStatusSettled    RoundStatus = "SETTLED"
)

// Round represents one timed betting cycle. A client holds at most one
// open round at a time.
type Round struct {
	ID         string      `json:"id"`
	Status     RoundStatus `json:"status"`
	RedTotal   float64     `json:"red_total"`
	GreenTotal float64     `json:"green_total"`
	StartedAt  time.Time   `json:"started_at"`
	// Local marks rounds created without server confirmation while the
	// gateway is unreachable.
	Local bool `json:"local,omitempty"`
}

// Total returns the aggregate stake for the given color.
func (r *Round) Total(c Color) float64 {
	if c == ColorRed {
		return r.RedTotal
	}
	return r.GreenTotal
}

// AddStake adds an accepted bet amount to the color's aggregate.
func (r *Round) AddStake(c Color, amount float64) {
	if c == ColorRed {
		r.RedTotal += amount
	} else {
		r.GreenTotal += amount
	}
}
