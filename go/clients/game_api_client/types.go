package game_api_client

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Amount tolerates the backend's mixed numeric encodings: BigDecimal
// fields arrive as JSON numbers or as quoted strings depending on the
// endpoint.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// Game is the wire representation of a round on the game server.
type Game struct {
	GameID       string     `json:"gameId"`
	Status       string     `json:"status,omitempty"`
	RedTotal     Amount     `json:"redTotal"`
	GreenTotal   Amount     `json:"greenTotal"`
	WinningColor string     `json:"winningColor,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	EndTime      *time.Time `json:"endTime,omitempty"`
}

// GameStats is the per-game stats payload.
type GameStats struct {
	GameID     string `json:"gameId"`
	TotalBets  int    `json:"totalBets"`
	RedBets    int    `json:"redBets"`
	GreenBets  int    `json:"greenBets"`
	RedTotal   Amount `json:"redTotal"`
	GreenTotal Amount `json:"greenTotal"`
}

// PlaceBetRequest is the payload for POST /bets/place. Color is sent in
// the server's enum casing.
type PlaceBetRequest struct {
	UserID string  `json:"userId"`
	GameID string  `json:"gameId"`
	Color  string  `json:"color"`
	Amount float64 `json:"amount"`
}

// UserBet is a historical bet as returned by the bets endpoints.
type UserBet struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	GameID string `json:"gameId"`
	Color  string `json:"color"`
	Amount Amount `json:"amount"`
	Won    *bool  `json:"won,omitempty"`
}

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the authenticated session returned by login/register.
type AuthResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// UserProfile is the wire representation of a player profile.
type UserProfile struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Balance   Amount     `json:"balance"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// UserStats is the per-user stats payload.
type UserStats struct {
	UserID       string `json:"userId"`
	TotalBets    int    `json:"totalBets"`
	TotalWins    int    `json:"totalWins"`
	TotalWagered Amount `json:"totalWagered"`
	TotalWon     Amount `json:"totalWon"`
}

// decodeGameList normalizes the three shapes the history endpoint is
// known to emit: a Spring page ({"content": [...]}), a bare array, and
// a {"data": [...]} wrapper.
func decodeGameList(data []byte) ([]Game, error) {
	var page struct {
		Content []Game `json:"content"`
		Data    []Game `json:"data"`
	}
	if err := json.Unmarshal(data, &page); err == nil {
		if page.Content != nil {
			return page.Content, nil
		}
		if page.Data != nil {
			return page.Data, nil
		}
	}

	var games []Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, err
	}
	return games, nil
}
