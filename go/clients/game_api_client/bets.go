package game_api_client

import (
	"context"
	"encoding/json"
	"fmt"
)

// PlaceBet submits a wager. A rejection (auth, balance, closed round)
// comes back as an *clients.APIError.
func (c *GameApiClient) PlaceBet(ctx context.Context, req PlaceBetRequest) error {
	if _, err := c.PostJSON(ctx, PlaceBetEndpoint, req); err != nil {
		return fmt.Errorf("place bet: %w", err)
	}
	return nil
}

// UserBets fetches one page of a player's past bets.
func (c *GameApiClient) UserBets(ctx context.Context, userID string, page, size int) ([]UserBet, error) {
	body, err := c.Get(ctx, fmt.Sprintf("/bets/user/%s?page=%d&size=%d", userID, page, size))
	if err != nil {
		return nil, fmt.Errorf("user bets: %w", err)
	}

	var bets []UserBet
	if err := json.Unmarshal(body, &bets); err != nil {
		return nil, fmt.Errorf("user bets: decode response: %w", err)
	}
	return bets, nil
}

// BetsByGame fetches every bet recorded for one round.
func (c *GameApiClient) BetsByGame(ctx context.Context, gameID string) ([]UserBet, error) {
	body, err := c.Get(ctx, fmt.Sprintf("/bets/game/%s", gameID))
	if err != nil {
		return nil, fmt.Errorf("bets by game: %w", err)
	}

	var bets []UserBet
	if err := json.Unmarshal(body, &bets); err != nil {
		return nil, fmt.Errorf("bets by game: decode response: %w", err)
	}
	return bets, nil
}
