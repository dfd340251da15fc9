package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/redgreen-game/redgreen/go/internal/models"
)

func makeResult(i int) models.SettledResult {
	color := models.ColorRed
	if i%2 == 1 {
		color = models.ColorGreen
	}
	return models.SettledResult{
		DisplayID:    fmt.Sprintf("GAME_%d_0", i),
		RoundID:      fmt.Sprintf("GAME_%d", i),
		WinningColor: color,
		RedTotal:     float64(i * 10),
		GreenTotal:   float64(i * 5),
		SettledAt:    time.Unix(int64(i), 0),
	}
}

func TestLedgerNewestFirst(t *testing.T) {
	ledger := NewLedger(DefaultCap)

	for i := 0; i < 5; i++ {
		ledger.Append(makeResult(i))
	}

	snap := ledger.Snapshot()
	if len(snap) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(snap))
	}
	for i, entry := range snap {
		want := fmt.Sprintf("GAME_%d", 4-i)
		if entry.RoundID != want {
			t.Errorf("entry %d: expected round %s, got %s", i, want, entry.RoundID)
		}
	}
}

func TestLedgerCapEnforced(t *testing.T) {
	ledger := NewLedger(DefaultCap)

	for i := 0; i < 100; i++ {
		ledger.Append(makeResult(i))
		if ledger.Len() > DefaultCap {
			t.Fatalf("ledger exceeded cap after %d inserts: %d", i+1, ledger.Len())
		}
	}

	snap := ledger.Snapshot()
	if len(snap) != DefaultCap {
		t.Fatalf("expected %d entries, got %d", DefaultCap, len(snap))
	}
	// Newest settlement always at index 0, oldest beyond the cap evicted.
	if snap[0].RoundID != "GAME_99" {
		t.Errorf("expected newest at index 0, got %s", snap[0].RoundID)
	}
	if snap[DefaultCap-1].RoundID != fmt.Sprintf("GAME_%d", 100-DefaultCap) {
		t.Errorf("unexpected oldest entry %s", snap[DefaultCap-1].RoundID)
	}
}

func TestLedgerSnapshotIsCopy(t *testing.T) {
	ledger := NewLedger(3)
	ledger.Append(makeResult(1))

	snap := ledger.Snapshot()
	snap[0].WinningColor = models.ColorGreen
	snap[0].RedTotal = 9999

	fresh := ledger.Snapshot()
	if fresh[0].WinningColor != models.ColorRed || fresh[0].RedTotal != 10 {
		t.Error("mutating a snapshot leaked into the ledger")
	}
}

func TestLedgerReplaceTrimsToCap(t *testing.T) {
	ledger := NewLedger(3)

	results := make([]models.SettledResult, 10)
	for i := range results {
		results[i] = makeResult(i)
	}
	ledger.Replace(results)

	if ledger.Len() != 3 {
		t.Fatalf("expected 3 entries after replace, got %d", ledger.Len())
	}
	if got := ledger.Snapshot()[0].RoundID; got != "GAME_0" {
		t.Errorf("replace should keep input order, got %s at head", got)
	}
}

func TestLedgerLatest(t *testing.T) {
	ledger := NewLedger(5)
	if ledger.Latest() != nil {
		t.Fatal("expected nil latest on empty ledger")
	}

	ledger.Append(makeResult(1))
	ledger.Append(makeResult(2))

	latest := ledger.Latest()
	if latest == nil || latest.RoundID != "GAME_2" {
		t.Fatalf("expected GAME_2 as latest, got %+v", latest)
	}
}
