package ports

import (
	"context"
	"time"

	"github.com/ilayShalev/claudpro/internal/domain"
)

// One pickup point on a requested route, tagged with the passenger it
// belongs to so returned legs can be re-associated by identity rather
// than by position.
type Waypoint struct {
	PassengerID int
	Location    domain.Coordinates
}

// Contract for obtaining driving legs and path geometry from an external
// routing provider.
type RouteProvider interface {
	// GetLegs returns distance, duration and any provider-supplied
	// arrival/departure times for origin -> each waypoint -> destination.
	// arriveBy, when non-nil, constrains the route to reach the
	// destination by that instant.
	GetLegs(ctx context.Context, origin domain.Coordinates, stops []Waypoint, destination domain.Coordinates, arriveBy *time.Time) (*domain.RouteDetails, error)

	// GetPolyline returns the decoded path geometry through the given
	// points. Consumers that only need timetables may ignore it.
	GetPolyline(ctx context.Context, points []domain.Coordinates, arriveBy *time.Time) ([]domain.Coordinates, error)
}
