package history

import (
	"sync"

	"github.com/redgreen-game/redgreen/go/internal/models"
)

// DefaultCap is the number of settled rounds the client keeps.
const DefaultCap = 15

// Ledger is a bounded, newest-first sequence of settled rounds. The
// round controller is the only writer; presentation reads snapshots.
// Entries are never mutated after insertion.
type Ledger struct {
	mu      sync.RWMutex
	cap     int
	entries []models.SettledResult
}

func NewLedger(capacity int) *Ledger {
	if capacity <= 0 {
		capacity = DefaultCap
	}
	return &Ledger{
		cap:     capacity,
		entries: make([]models.SettledResult, 0, capacity),
	}
}

// Append inserts a settled result at the head and evicts the oldest
// entries beyond the cap.
func (l *Ledger) Append(result models.SettledResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]models.SettledResult{result}, l.entries...)
	if len(l.entries) > l.cap {
		l.entries = l.entries[:l.cap]
	}
}

// Replace swaps in a freshly loaded history, newest first, trimmed to
// the cap. Used once at startup.
func (l *Ledger) Replace(results []models.SettledResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(results) > l.cap {
		results = results[:l.cap]
	}
	l.entries = make([]models.SettledResult, len(results))
	copy(l.entries, results)
}

// Snapshot returns a copy of the ledger, newest first.
func (l *Ledger) Snapshot() []models.SettledResult {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.SettledResult, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Latest returns the most recent settlement, or nil when empty.
func (l *Ledger) Latest() *models.SettledResult {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.entries) == 0 {
		return nil
	}
	latest := l.entries[0]
	return &latest
}
