package directions

import (
	"context"
	"fmt"
	"time"

	"github.com/ilayShalev/claudpro/internal/domain"
	"github.com/ilayShalev/claudpro/internal/ports"
)

// MockRouteProvider is a scripted RouteProvider for tests and for running
// with the live provider configured off. Routes are keyed by origin.
type MockRouteProvider struct {
	routes map[string]*domain.RouteDetails
	Err    error
	Calls  int
}

func NewMockRouteProvider() *MockRouteProvider {
	return &MockRouteProvider{routes: make(map[string]*domain.RouteDetails)}
}

// SetRoute scripts the response for requests starting at origin.
func (m *MockRouteProvider) SetRoute(origin domain.Coordinates, route *domain.RouteDetails) {
	m.routes[origin.String()] = route
}

func (m *MockRouteProvider) GetLegs(
	ctx context.Context,
	origin domain.Coordinates,
	stops []ports.Waypoint,
	destination domain.Coordinates,
	arriveBy *time.Time,
) (*domain.RouteDetails, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}

	r, ok := m.routes[origin.String()]
	if !ok {
		return nil, fmt.Errorf("no scripted route for origin %s", origin)
	}

	return cloneRoute(r), nil
}

func (m *MockRouteProvider) GetPolyline(
	ctx context.Context,
	points []domain.Coordinates,
	arriveBy *time.Time,
) ([]domain.Coordinates, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]domain.Coordinates(nil), points...), nil
}
