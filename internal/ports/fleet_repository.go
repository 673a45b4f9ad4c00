package ports

import (
	"context"

	"github.com/ilayShalev/claudpro/internal/domain"
)

// Port: a boundary for loading the candidate assignment from a data source.
// The assignment itself is produced by an external optimizer; this port
// only retrieves it.
type FleetRepository interface {
	// LoadSolution returns all vehicles with their assigned passengers
	// in stored route order.
	LoadSolution(ctx context.Context) (*domain.Solution, error)

	// ListPassengers returns every known passenger, assigned or not.
	ListPassengers(ctx context.Context) ([]*domain.Passenger, error)
}
