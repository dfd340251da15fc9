package game_api_client

const (
	// Default base URL of the game server REST API.
	DefaultBaseURL = "http://localhost:8085/api"

	// Game endpoints
	CreateGameEndpoint    = "/games/create"
	CurrentGameEndpoint   = "/games/current"
	GameHistoryEndpoint   = "/games/history"
	ActivePlayersEndpoint = "/games/active-players"

	// Bet endpoints
	PlaceBetEndpoint = "/bets/place"

	// Auth endpoints
	RegisterEndpoint = "/auth/register"
	LoginEndpoint    = "/auth/login"
	LogoutEndpoint   = "/auth/logout"
)
