package round

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// IDGenerator produces locally unique round identifiers for rounds
// created without server confirmation. The identifier combines the
// millisecond timestamp, a monotonically incremented sequence number,
// and a random suffix, so rapid successive calls within the same
// millisecond still never collide for one client instance.
type IDGenerator struct {
	clock clockwork.Clock

	mu  sync.Mutex
	seq uint64
	rnd *rand.Rand
}

func NewIDGenerator(clock clockwork.Clock) *IDGenerator {
	return &IDGenerator{
		clock: clock,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next returns a fresh candidate round identifier.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	g.seq++
	seq := g.seq
	suffix := g.rnd.Intn(1000)
	g.mu.Unlock()

	return fmt.Sprintf("GAME_%d_%d_%03d", g.clock.Now().UnixMilli(), seq, suffix)
}
