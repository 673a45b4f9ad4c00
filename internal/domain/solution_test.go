package domain

import "testing"

func TestVehicleAssign(t *testing.T) {
	v := &Vehicle{VehicleID: 1, Capacity: 2}

	if err := v.Assign(&Passenger{PassengerID: 1}); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := v.Assign(&Passenger{PassengerID: 2}); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := v.Assign(&Passenger{PassengerID: 3}); err == nil {
		t.Error("Assign beyond capacity must fail")
	}
	if len(v.AssignedPassengers) != 2 {
		t.Errorf("len(AssignedPassengers) = %d, want 2", len(v.AssignedPassengers))
	}

	v.Clear()
	if len(v.AssignedPassengers) != 0 {
		t.Errorf("Clear left %d passengers", len(v.AssignedPassengers))
	}
}

func TestSolutionAssignedCount(t *testing.T) {
	s := &Solution{
		Vehicles: []*Vehicle{
			{VehicleID: 1, Capacity: 4, AssignedPassengers: []*Passenger{{PassengerID: 1}, {PassengerID: 2}}},
			{VehicleID: 2, Capacity: 4, AssignedPassengers: []*Passenger{{PassengerID: 3}}},
			{VehicleID: 3, Capacity: 4},
		},
	}
	if got := s.AssignedCount(); got != 3 {
		t.Errorf("AssignedCount = %d, want 3", got)
	}
}

func TestCoordinatesString(t *testing.T) {
	c := Coordinates{Lat: 32.0853, Lng: 34.7818}
	if got, want := c.String(), "32.085300,34.781800"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRouteDetailsLastStop(t *testing.T) {
	empty := &RouteDetails{}
	if empty.LastStop() != nil {
		t.Error("LastStop on empty route must be nil")
	}

	r := &RouteDetails{Stops: []StopDetail{
		{StopNumber: 1, PassengerID: 1},
		{StopNumber: 2, PassengerID: DestinationStopID},
	}}
	last := r.LastStop()
	if last == nil || last.PassengerID != DestinationStopID {
		t.Errorf("LastStop = %+v, want the destination stop", last)
	}

	// LastStop must alias the slice so callers can fill its arrival time.
	arr := "08:00"
	last.EstimatedArrivalTime = &arr
	if r.Stops[1].EstimatedArrivalTime == nil {
		t.Error("LastStop must return a pointer into Stops")
	}
}
