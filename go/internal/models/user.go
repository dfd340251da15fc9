package models

import (
	"time"
)

// User is the player profile as reported by the game server.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// UserStats summarizes a player's betting record.
type UserStats struct {
	UserID       string  `json:"user_id"`
	TotalBets    int     `json:"total_bets"`
	TotalWins    int     `json:"total_wins"`
	TotalWagered float64 `json:"total_wagered"`
	TotalWon     float64 `json:"total_won"`
}
