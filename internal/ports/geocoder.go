package ports

import (
	"context"

	"github.com/ilayShalev/claudpro/internal/domain"
)

// A resolved address with its provider-formatted display form.
type GeocodeResult struct {
	Location         domain.Coordinates
	FormattedAddress string
}

// Contract for address <-> coordinate resolution. These calls have no
// geometric fallback, so failures surface to the caller as errors.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (GeocodeResult, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
	Autocomplete(ctx context.Context, input string) ([]string, error)
}
