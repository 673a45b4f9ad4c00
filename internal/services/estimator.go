package services

import (
	"math"

	"github.com/ilayShalev/claudpro/internal/domain"
)

const (
	// Mean Earth radius in kilometers (WGS-84).
	earthRadiusKm = 6371.0

	// Assumed average city driving speed, used when no routing provider
	// figure is available.
	averageSpeedKmph = 30.0
)

func degToRad(d float64) float64 { return d * math.Pi / 180 }

// haversineKm returns the great-circle distance between two points in
// kilometers.
func haversineKm(a, b domain.Coordinates) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLng*sinLng

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// EstimateRoute derives a route geometrically: vehicle start -> each
// assigned passenger in list order -> destination, accumulating
// great-circle distance and a fixed average-speed time estimate.
//
// Deterministic and free of I/O; it never fails. Time-of-day fields are
// left unset for the scheduler's propagation pass to fill. Returns nil
// for a vehicle with no assigned passengers.
func EstimateRoute(vehicle *domain.Vehicle, destination domain.Coordinates) *domain.RouteDetails {
	if vehicle == nil || len(vehicle.AssignedPassengers) == 0 {
		return nil
	}

	details := &domain.RouteDetails{
		VehicleID: vehicle.VehicleID,
		Stops:     make([]domain.StopDetail, 0, len(vehicle.AssignedPassengers)+1),
	}

	current := vehicle.StartLocation
	var cumDistance, cumTime float64

	appendLeg := func(to domain.Coordinates, passengerID int) {
		km := haversineKm(current, to)
		meters := km * 1000
		minutes := km / averageSpeedKmph * 60

		cumDistance += meters
		cumTime += minutes

		details.Stops = append(details.Stops, domain.StopDetail{
			StopNumber:           len(details.Stops) + 1,
			PassengerID:          passengerID,
			DistanceFromPrevious: meters,
			TimeFromPrevious:     minutes,
			CumulativeDistance:   cumDistance,
			CumulativeTime:       cumTime,
		})
		current = to
	}

	for _, p := range vehicle.AssignedPassengers {
		appendLeg(p.Location, p.PassengerID)
	}
	appendLeg(destination, domain.DestinationStopID)

	details.TotalDistance = cumDistance
	details.TotalTime = cumTime

	return details
}
