package game_api_client

import (
	"context"
	"encoding/json"
	"fmt"
)

// Register creates a new player account.
func (c *GameApiClient) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	body, err := c.PostJSON(ctx, RegisterEndpoint, req)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	var auth AuthResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return nil, fmt.Errorf("register: decode response: %w", err)
	}
	return &auth, nil
}

// Login authenticates and returns the session. The returned token must
// be attached via SetBearerToken for subsequent calls.
func (c *GameApiClient) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	body, err := c.PostJSON(ctx, LoginEndpoint, creds)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	var auth AuthResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return nil, fmt.Errorf("login: decode response: %w", err)
	}
	if auth.ID == "" || auth.Token == "" {
		return nil, fmt.Errorf("login: response missing user ID or token")
	}
	return &auth, nil
}

// Logout invalidates the current session server-side.
func (c *GameApiClient) Logout(ctx context.Context) error {
	if _, err := c.Post(ctx, LogoutEndpoint, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// UserProfile fetches a player profile.
func (c *GameApiClient) UserProfile(ctx context.Context, userID string) (*UserProfile, error) {
	body, err := c.Get(ctx, fmt.Sprintf("/users/%s", userID))
	if err != nil {
		return nil, fmt.Errorf("user profile: %w", err)
	}

	var profile UserProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("user profile: decode response: %w", err)
	}
	return &profile, nil
}

// UpdateUserProfile updates a player profile.
func (c *GameApiClient) UpdateUserProfile(ctx context.Context, userID string, profile UserProfile) (*UserProfile, error) {
	body, err := c.PutJSON(ctx, fmt.Sprintf("/users/%s", userID), profile)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	var updated UserProfile
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("update profile: decode response: %w", err)
	}
	return &updated, nil
}

// Balance fetches the player's authoritative balance. The endpoint
// returns either a bare number or {"balance": n}.
func (c *GameApiClient) Balance(ctx context.Context, userID string) (float64, error) {
	body, err := c.Get(ctx, fmt.Sprintf("/users/%s/balance", userID))
	if err != nil {
		return 0, fmt.Errorf("balance: %w", err)
	}

	var wrapped struct {
		Balance *Amount `json:"balance"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Balance != nil {
		return float64(*wrapped.Balance), nil
	}

	var bare Amount
	if err := json.Unmarshal(body, &bare); err != nil {
		return 0, fmt.Errorf("balance: decode response: %w", err)
	}
	return float64(bare), nil
}

// AddMoney deposits into the player's account.
func (c *GameApiClient) AddMoney(ctx context.Context, userID string, amount float64) error {
	if _, err := c.PostJSON(ctx, fmt.Sprintf("/users/%s/add-money", userID), map[string]float64{"amount": amount}); err != nil {
		return fmt.Errorf("add money: %w", err)
	}
	return nil
}

// WithdrawMoney withdraws from the player's account.
func (c *GameApiClient) WithdrawMoney(ctx context.Context, userID string, amount float64) error {
	if _, err := c.PostJSON(ctx, fmt.Sprintf("/users/%s/withdraw", userID), map[string]float64{"amount": amount}); err != nil {
		return fmt.Errorf("withdraw: %w", err)
	}
	return nil
}

// UserStats fetches the player's betting record.
func (c *GameApiClient) UserStats(ctx context.Context, userID string) (*UserStats, error) {
	body, err := c.Get(ctx, fmt.Sprintf("/users/%s/stats", userID))
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}

	var stats UserStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("user stats: decode response: %w", err)
	}
	return &stats, nil
}
