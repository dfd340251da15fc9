package round

import (
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
)

func TestNextIDFormat(t *testing.T) {
	gen := NewIDGenerator(clockwork.NewFakeClock())

	id := gen.Next()
	if !strings.HasPrefix(id, "GAME_") {
		t.Fatalf("unexpected round id format: %s", id)
	}
	if parts := strings.Split(id, "_"); len(parts) != 4 {
		t.Fatalf("expected GAME_<ts>_<seq>_<rand>, got %s", id)
	}
}

func TestRapidIDsArePairwiseUnique(t *testing.T) {
	// The fake clock never advances, so every call lands on the same
	// millisecond — the worst case for collisions.
	gen := NewIDGenerator(clockwork.NewFakeClock())

	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := gen.Next()
		if seen[id] {
			t.Fatalf("duplicate round id after %d calls: %s", i+1, id)
		}
		seen[id] = true
	}
}
