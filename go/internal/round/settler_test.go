package round

import (
	"context"
	"net/http"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/redgreen-game/redgreen/go/clients"
	"github.com/redgreen-game/redgreen/go/internal/models"
)

func TestRemoteSettlerNormalizesColor(t *testing.T) {
	f := &fakeAPI{winningColor: "GREEN", redTotal: 300, greenTotal: 700}
	s := NewRemoteSettler(f)

	round := models.Round{ID: "R1", RedTotal: 300, GreenTotal: 700}

	result, err := s.Settle(context.Background(), round)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.WinningColor != models.ColorGreen {
		t.Errorf("expected lower-cased green, got %q", result.WinningColor)
	}
	if result.RedTotal != 300 || result.GreenTotal != 700 {
		t.Errorf("expected server totals 300/700, got %f/%f", result.RedTotal, result.GreenTotal)
	}
	if result.Local {
		t.Error("remote settlement must not be flagged local")
	}
	if !s.Authoritative() {
		t.Error("remote settler must be authoritative")
	}
}

func TestRemoteSettlerRejectsUnusableColor(t *testing.T) {
	f := &fakeAPI{winningColor: "blue"}
	s := NewRemoteSettler(f)

	if _, err := s.Settle(context.Background(), models.Round{ID: "R1"}); err == nil {
		t.Fatal("expected an error for an unusable winning color")
	}
}

func TestRemoteSettlerWrapsGatewayFailure(t *testing.T) {
	f := &fakeAPI{completeErr: &clients.APIError{StatusCode: http.StatusBadGateway, Body: "down"}}
	s := NewRemoteSettler(f)

	_, err := s.Settle(context.Background(), models.Round{ID: "R1"})
	if !IsGatewayError(err) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
}

func TestLocalSettlerFinalizesLocalTotals(t *testing.T) {
	s := NewLocalSettler(clockwork.NewFakeClock())

	round := models.Round{ID: "GAME_1_0_001", RedTotal: 150, GreenTotal: 40}
	result, err := s.Settle(context.Background(), round)
	if err != nil {
		t.Fatalf("local settlement must not fail: %v", err)
	}
	if !result.Local {
		t.Error("expected local flag on fallback settlement")
	}
	if !result.WinningColor.Valid() {
		t.Errorf("picked invalid color %q", result.WinningColor)
	}
	if result.RedTotal != 150 || result.GreenTotal != 40 {
		t.Errorf("expected locally accumulated totals 150/40, got %f/%f", result.RedTotal, result.GreenTotal)
	}
	if result.RoundID != round.ID {
		t.Errorf("expected round id preserved, got %s", result.RoundID)
	}
	if s.Authoritative() {
		t.Error("local settler must not be authoritative")
	}
}

func TestLocalSettlerEventuallyPicksBothColors(t *testing.T) {
	s := NewLocalSettler(clockwork.NewFakeClock())

	seen := make(map[models.Color]bool)
	for i := 0; i < 200; i++ {
		result, err := s.Settle(context.Background(), models.Round{ID: "R"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[result.WinningColor] = true
	}
	if !seen[models.ColorRed] || !seen[models.ColorGreen] {
		t.Errorf("expected both outcomes over 200 draws, saw %v", seen)
	}
}
