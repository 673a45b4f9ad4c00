package domain

import "fmt"

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lng float64
}

// Render coordinates as "lat,lng" for provider query parameters and cache keys.
// Six decimal places (~0.1 m) keeps keys stable across float formatting.
func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}
