package domain

import "fmt"

// Represents a person waiting for a shared ride to the destination.
// EstimatedPickupTime is a canonical "HH:mm" string populated by the
// scheduler; nil until a timetable has been computed.
type Passenger struct {
	PassengerID         int
	Name                string
	Location            Coordinates
	Available           bool
	EstimatedPickupTime *string
}

// Shared-ride vehicle aggregate holding its ordered passenger assignment.
// DepartureTime is a canonical "HH:mm" string; TotalDistance (meters) and
// TotalTime (minutes) are mirrored from the last computed RouteDetails.
type Vehicle struct {
	VehicleID          int
	Capacity           int
	StartLocation      Coordinates
	DepartureTime      *string
	TotalDistance      float64
	TotalTime          float64
	AssignedPassengers []*Passenger
}

// Assign appends a passenger to the vehicle's route order.
func (v *Vehicle) Assign(p *Passenger) error {
	if len(v.AssignedPassengers) >= v.Capacity {
		return fmt.Errorf("assign passenger: vehicle %d is at full capacity (capacity=%d)", v.VehicleID, v.Capacity)
	}
	v.AssignedPassengers = append(v.AssignedPassengers, p)
	return nil
}

// Clear removes all assigned passengers from the vehicle.
func (v *Vehicle) Clear() {
	v.AssignedPassengers = nil
}

// Candidate assignment of passengers to vehicles for one scheduling run.
// Produced by an external optimizer; the scheduler only annotates timing
// fields and never moves passengers between vehicles.
type Solution struct {
	Vehicles []*Vehicle
}

// AssignedCount returns the number of passengers held by any vehicle.
func (s *Solution) AssignedCount() int {
	n := 0
	for _, v := range s.Vehicles {
		n += len(v.AssignedPassengers)
	}
	return n
}
