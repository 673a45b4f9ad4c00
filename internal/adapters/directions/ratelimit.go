package directions

import (
	"context"
	"sync"
	"time"

	"github.com/ilayShalev/claudpro/internal/ports"
)

// callGate enforces a minimum gap between provider calls across the whole
// client. Bursts are serialized, not rejected: each caller reserves the
// next free slot and sleeps until it.
type callGate struct {
	clock  ports.Clock
	minGap time.Duration

	mu       sync.Mutex
	lastCall time.Time
}

func newCallGate(clock ports.Clock, minGap time.Duration) *callGate {
	return &callGate{clock: clock, minGap: minGap}
}

// Wait blocks until this caller's reserved slot arrives or ctx is done.
func (g *callGate) Wait(ctx context.Context) error {
	g.mu.Lock()
	now := g.clock.Now()
	next := g.lastCall.Add(g.minGap)

	var wait time.Duration
	if g.lastCall.IsZero() || !now.Before(next) {
		g.lastCall = now
	} else {
		wait = next.Sub(now)
		g.lastCall = next
	}
	g.mu.Unlock()

	if wait > 0 {
		return g.clock.Sleep(ctx, wait)
	}
	return nil
}
