package ports

import (
	"context"

	"github.com/ilayShalev/claudpro/internal/domain"
)

// RouteCache stores successful directions lookups keyed by the ordered
// coordinate sequence plus any arrival constraint. Retention policy
// (size bound, TTL, persistence) is the adapter's choice; callers only
// rely on Get returning what a prior Put stored, or a miss.
type RouteCache interface {
	// Get returns the cached route for key, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) (*domain.RouteDetails, error)

	// Put stores a route under key. Only successful provider responses
	// are ever stored.
	Put(ctx context.Context, key string, route *domain.RouteDetails) error
}

// GeocodeCache stores resolved addresses so repeated lookups skip the
// provider. Get returns (nil, nil) on a miss.
type GeocodeCache interface {
	Get(ctx context.Context, address string) (*GeocodeResult, error)
	Put(ctx context.Context, address string, result GeocodeResult) error
}
