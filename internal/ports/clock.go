package ports

import (
	"context"
	"time"
)

// Clock abstracts wall-clock reads and sleeps so rate limiting and retry
// backoff can be tested deterministically with a fake.
type Clock interface {
	Now() time.Time

	// Sleep blocks for d or until ctx is done, returning ctx.Err() in
	// the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}
