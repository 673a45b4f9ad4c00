package services

import (
	"slices"

	"github.com/ilayShalev/claudpro/internal/domain"
)

// CapacityFinding flags a vehicle holding more passengers than it seats.
type CapacityFinding struct {
	VehicleID int
	Capacity  int
	Assigned  int
}

// DuplicateFinding flags a passenger assigned to more than one vehicle.
type DuplicateFinding struct {
	PassengerID int
	VehicleIDs  []int
}

// Report is the structured outcome of validating a solution. Validation
// failures are findings, not faults: a report is always produced and no
// check short-circuits another.
type Report struct {
	Valid bool

	CapacityExceeded []CapacityFinding
	Duplicates       []DuplicateFinding
	UncoveredIDs     []int

	VehiclesUsed          int
	TotalDistance         float64
	TotalTime             float64
	AverageTimePerVehicle float64
}

// ValidateSolution checks capacity, assignment uniqueness and coverage over
// an enriched solution, and computes aggregate stats. required is the
// caller-supplied set of passengers that must be covered (for example,
// those available today).
func ValidateSolution(solution *domain.Solution, required []*domain.Passenger) *Report {
	report := &Report{}

	assignedVehicles := make(map[int][]int) // passenger id -> vehicles holding it

	for _, vehicle := range solution.Vehicles {
		if len(vehicle.AssignedPassengers) > vehicle.Capacity {
			report.CapacityExceeded = append(report.CapacityExceeded, CapacityFinding{
				VehicleID: vehicle.VehicleID,
				Capacity:  vehicle.Capacity,
				Assigned:  len(vehicle.AssignedPassengers),
			})
		}

		if len(vehicle.AssignedPassengers) > 0 {
			report.VehiclesUsed++
			report.TotalDistance += vehicle.TotalDistance
			report.TotalTime += vehicle.TotalTime
		}

		for _, p := range vehicle.AssignedPassengers {
			assignedVehicles[p.PassengerID] = append(assignedVehicles[p.PassengerID], vehicle.VehicleID)
		}
	}

	for id, vehicles := range assignedVehicles {
		if len(vehicles) > 1 {
			report.Duplicates = append(report.Duplicates, DuplicateFinding{
				PassengerID: id,
				VehicleIDs:  vehicles,
			})
		}
	}
	// Map iteration order is random; keep findings deterministic.
	slices.SortFunc(report.Duplicates, func(a, b DuplicateFinding) int {
		return a.PassengerID - b.PassengerID
	})

	for _, p := range required {
		if _, ok := assignedVehicles[p.PassengerID]; !ok {
			report.UncoveredIDs = append(report.UncoveredIDs, p.PassengerID)
		}
	}

	if report.VehiclesUsed > 0 {
		report.AverageTimePerVehicle = report.TotalTime / float64(report.VehiclesUsed)
	}

	report.Valid = len(report.CapacityExceeded) == 0 &&
		len(report.Duplicates) == 0 &&
		len(report.UncoveredIDs) == 0

	return report
}
