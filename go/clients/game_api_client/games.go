package game_api_client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redgreen-game/redgreen/go/clients"
)

// CreateGame asks the server to open a new round under the candidate ID.
// The server may confirm a different ID; callers must adopt the returned
// one.
func (c *GameApiClient) CreateGame(ctx context.Context, gameID string) (*Game, error) {
	body, err := c.PostJSON(ctx, CreateGameEndpoint, map[string]string{"gameId": gameID})
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	var game Game
	if err := json.Unmarshal(body, &game); err != nil {
		return nil, fmt.Errorf("create game: decode response: %w", err)
	}
	return &game, nil
}

// CurrentGame fetches the active round. A (nil, nil) return means the
// server has no active round right now.
func (c *GameApiClient) CurrentGame(ctx context.Context) (*Game, error) {
	body, err := c.Get(ctx, CurrentGameEndpoint)
	if err != nil {
		if clients.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("current game: %w", err)
	}

	if len(body) == 0 || string(body) == "null" {
		return nil, nil
	}

	var game Game
	if err := json.Unmarshal(body, &game); err != nil {
		return nil, fmt.Errorf("current game: decode response: %w", err)
	}
	if game.GameID == "" {
		return nil, nil
	}
	return &game, nil
}

// GameByID fetches a single round.
func (c *GameApiClient) GameByID(ctx context.Context, gameID string) (*Game, error) {
	body, err := c.Get(ctx, fmt.Sprintf("/games/%s", gameID))
	if err != nil {
		return nil, fmt.Errorf("get game %s: %w", gameID, err)
	}

	var game Game
	if err := json.Unmarshal(body, &game); err != nil {
		return nil, fmt.Errorf("get game %s: decode response: %w", gameID, err)
	}
	return &game, nil
}

// GameHistory fetches one page of settled rounds, newest first.
func (c *GameApiClient) GameHistory(ctx context.Context, page, size int) ([]Game, error) {
	body, err := c.Get(ctx, fmt.Sprintf("%s?page=%d&size=%d", GameHistoryEndpoint, page, size))
	if err != nil {
		return nil, fmt.Errorf("game history: %w", err)
	}

	games, err := decodeGameList(body)
	if err != nil {
		return nil, fmt.Errorf("game history: decode response: %w", err)
	}
	return games, nil
}

// CompleteGame asks the server to settle the round. The server picks the
// winning color, finalizes totals, and adjusts balances.
func (c *GameApiClient) CompleteGame(ctx context.Context, gameID string) (*Game, error) {
	body, err := c.PostJSON(ctx, fmt.Sprintf("/games/%s/complete", gameID), map[string]any{"winningColor": nil})
	if err != nil {
		return nil, fmt.Errorf("complete game %s: %w", gameID, err)
	}

	var game Game
	if err := json.Unmarshal(body, &game); err != nil {
		return nil, fmt.Errorf("complete game %s: decode response: %w", gameID, err)
	}
	return &game, nil
}

// UpdateGameTotals reports an accepted bet amount so the server's
// per-color aggregates track client-observed bets.
func (c *GameApiClient) UpdateGameTotals(ctx context.Context, gameID, color string, amount float64) (*Game, error) {
	payload := map[string]any{
		"color":  color,
		"amount": amount,
	}
	body, err := c.PostJSON(ctx, fmt.Sprintf("/games/%s/update-totals", gameID), payload)
	if err != nil {
		return nil, fmt.Errorf("update totals for game %s: %w", gameID, err)
	}

	var game Game
	if err := json.Unmarshal(body, &game); err != nil {
		return nil, fmt.Errorf("update totals for game %s: decode response: %w", gameID, err)
	}
	return &game, nil
}

// GameStats fetches per-round betting stats.
func (c *GameApiClient) GameStats(ctx context.Context, gameID string) (*GameStats, error) {
	body, err := c.Get(ctx, fmt.Sprintf("/games/%s/stats", gameID))
	if err != nil {
		return nil, fmt.Errorf("game stats %s: %w", gameID, err)
	}

	var stats GameStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("game stats %s: decode response: %w", gameID, err)
	}
	return &stats, nil
}

// ActivePlayers returns the number of players currently connected.
func (c *GameApiClient) ActivePlayers(ctx context.Context) (int, error) {
	body, err := c.Get(ctx, ActivePlayersEndpoint)
	if err != nil {
		return 0, fmt.Errorf("active players: %w", err)
	}

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("active players: decode response: %w", err)
	}
	return resp.Count, nil
}
