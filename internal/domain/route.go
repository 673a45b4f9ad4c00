package domain

// DestinationStopID marks the terminal stop of a route, which represents
// the shared destination rather than a passenger pickup.
const DestinationStopID = -1

// Represents one leg of a vehicle's route: driving from the previous stop
// to a passenger pickup, or to the destination for the terminal stop.
// Distances are meters, times are minutes. Arrival/departure are canonical
// "HH:mm" strings and stay nil until time propagation has run.
type StopDetail struct {
	StopNumber             int
	PassengerID            int
	DistanceFromPrevious   float64
	TimeFromPrevious       float64
	CumulativeDistance     float64
	CumulativeTime         float64
	EstimatedArrivalTime   *string
	EstimatedDepartureTime *string
}

// Computed distance/time/timetable for one vehicle's route.
// Created fresh on every scheduling pass; stop order equals the vehicle's
// assignment order with one appended terminal stop for the destination.
type RouteDetails struct {
	VehicleID     int
	TotalDistance float64
	TotalTime     float64
	DepartureTime *string
	Stops         []StopDetail
}

// LastStop returns the terminal (destination) stop, or nil for an empty route.
func (r *RouteDetails) LastStop() *StopDetail {
	if len(r.Stops) == 0 {
		return nil
	}
	return &r.Stops[len(r.Stops)-1]
}
