package game_api_client

import (
	"github.com/redgreen-game/redgreen/go/clients"
)

// GameApiClient talks to the game server's REST API. The server is
// authoritative for round identity, totals, winning color, and balance.
type GameApiClient struct {
	*clients.BaseClient
}

func NewGameApiClient(baseURL string) *GameApiClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GameApiClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}
}

// NewAuthenticatedClient returns a client that sends the given bearer
// token on every request.
func NewAuthenticatedClient(baseURL, token string) *GameApiClient {
	client := NewGameApiClient(baseURL)
	if token != "" {
		client.SetBearerToken(token)
	}
	return client
}
