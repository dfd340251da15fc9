package game_api_client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redgreen-game/redgreen/go/clients"
)

func TestCurrentGameNoActiveRound(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"not found", http.StatusNotFound, `{"error":"no active game"}`},
		{"null body", http.StatusOK, `null`},
		{"empty body", http.StatusOK, ``},
		{"missing game id", http.StatusOK, `{"status":"PENDING"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			game, err := NewGameApiClient(srv.URL).CurrentGame(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if game != nil {
				t.Fatalf("expected nil game, got %+v", game)
			}
		})
	}
}

func TestCurrentGameReturnsActiveRound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != CurrentGameEndpoint {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("expected bearer token, got %q", got)
		}
		io.WriteString(w, `{"gameId":"G42","status":"ACTIVE","redTotal":120.5,"greenTotal":"340.25"}`)
	}))
	defer srv.Close()

	game, err := NewAuthenticatedClient(srv.URL, "tok-123").CurrentGame(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if game.GameID != "G42" {
		t.Errorf("expected G42, got %s", game.GameID)
	}
	// Mixed numeric encodings on the same payload must both decode.
	if game.RedTotal != 120.5 || game.GreenTotal != 340.25 {
		t.Errorf("expected totals 120.5/340.25, got %v/%v", game.RedTotal, game.GreenTotal)
	}
}

func TestGameHistoryDecodesAllKnownShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"spring page", `{"content":[{"gameId":"G1"},{"gameId":"G2"}],"totalElements":2}`},
		{"bare array", `[{"gameId":"G1"},{"gameId":"G2"}]`},
		{"data wrapper", `{"data":[{"gameId":"G1"},{"gameId":"G2"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("size"); got != "15" {
					t.Errorf("expected size=15, got %q", got)
				}
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			games, err := NewGameApiClient(srv.URL).GameHistory(context.Background(), 0, 15)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(games) != 2 || games[0].GameID != "G1" || games[1].GameID != "G2" {
				t.Fatalf("unexpected games %+v", games)
			}
		})
	}
}

func TestBalanceDecodesBothShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want float64
	}{
		{"wrapped", `{"balance":1250.50}`, 1250.50},
		{"wrapped string", `{"balance":"1250.50"}`, 1250.50},
		{"bare number", `975.25`, 975.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			got, err := NewGameApiClient(srv.URL).Balance(context.Background(), "u1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestPlaceBetAuthFailureDetectable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":"token expired"}`)
	}))
	defer srv.Close()

	err := NewGameApiClient(srv.URL).PlaceBet(context.Background(), PlaceBetRequest{
		UserID: "u1", GameID: "G1", Color: "RED", Amount: 100,
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	// The wrapped APIError must stay detectable through the chain.
	if !clients.IsAuthError(err) {
		t.Errorf("expected auth error to be detectable, got %v", err)
	}
}

func TestCreateGameAdoptsServerID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req["gameId"] != "GAME_123_0_042" {
			t.Errorf("expected candidate id in request, got %q", req["gameId"])
		}
		// The server is free to confirm under a different identifier.
		io.WriteString(w, `{"gameId":"SRV-77","status":"ACTIVE"}`)
	}))
	defer srv.Close()

	game, err := NewGameApiClient(srv.URL).CreateGame(context.Background(), "GAME_123_0_042")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if game.GameID != "SRV-77" {
		t.Errorf("expected server-confirmed id SRV-77, got %s", game.GameID)
	}
}

func TestCompleteGameLetsServerPickWinner(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/games/G1/complete" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if winner, present := req["winningColor"]; !present || winner != nil {
			t.Errorf("winning color must be sent as explicit null, got %v", req)
		}
		io.WriteString(w, `{"gameId":"G1","winningColor":"RED","redTotal":500,"greenTotal":300}`)
	}))
	defer srv.Close()

	game, err := NewGameApiClient(srv.URL).CompleteGame(context.Background(), "G1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if game.WinningColor != "RED" || game.RedTotal != 500 {
		t.Errorf("unexpected settlement %+v", game)
	}
}

func TestAmountToleratesNull(t *testing.T) {
	var game Game
	if err := json.Unmarshal([]byte(`{"gameId":"G1","redTotal":null,"greenTotal":12}`), &game); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if game.RedTotal != 0 || game.GreenTotal != 12 {
		t.Errorf("expected 0/12, got %v/%v", game.RedTotal, game.GreenTotal)
	}
}
