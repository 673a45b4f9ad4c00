package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ilayShalev/claudpro/internal/domain"
)

// SQLite-backed implementation of the FleetRepository port.
type SqliteFleetRepository struct{ DB *sql.DB }

func NewSqliteFleetRepository(db *sql.DB) *SqliteFleetRepository {
	return &SqliteFleetRepository{DB: db}
}

// LoadSolution returns all vehicles with their assigned passengers in
// stored route order.
func (s *SqliteFleetRepository) LoadSolution(ctx context.Context) (*domain.Solution, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite fleet repository: DB is nil")
	}

	vehicleQuery := `
	SELECT vehicle_id, capacity, start_lat, start_lng
	FROM vehicles
	ORDER BY vehicle_id;
	`
	rows, err := s.DB.QueryContext(ctx, vehicleQuery)
	if err != nil {
		return nil, fmt.Errorf("load solution: query vehicles table: %w", err)
	}
	defer rows.Close()

	byID := make(map[int]*domain.Vehicle)
	solution := &domain.Solution{}
	for rows.Next() {
		var id, capacity int
		var lat, lng float64
		if err := rows.Scan(&id, &capacity, &lat, &lng); err != nil {
			return nil, fmt.Errorf("load solution: scan vehicle row: %w", err)
		}
		v := &domain.Vehicle{
			VehicleID:     id,
			Capacity:      capacity,
			StartLocation: domain.Coordinates{Lat: lat, Lng: lng},
		}
		byID[id] = v
		solution.Vehicles = append(solution.Vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load solution: vehicle row iteration: %w", err)
	}

	passengerQuery := `
	SELECT passenger_id, name, lat, lng, available, vehicle_id
	FROM passengers
	WHERE vehicle_id IS NOT NULL
	ORDER BY vehicle_id, route_order;
	`
	prows, err := s.DB.QueryContext(ctx, passengerQuery)
	if err != nil {
		return nil, fmt.Errorf("load solution: query passengers table: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var id, vehicleID int
		var name string
		var lat, lng float64
		var available bool
		if err := prows.Scan(&id, &name, &lat, &lng, &available, &vehicleID); err != nil {
			return nil, fmt.Errorf("load solution: scan passenger row: %w", err)
		}

		v, ok := byID[vehicleID]
		if !ok {
			return nil, fmt.Errorf("load solution: passenger %d references unknown vehicle %d", id, vehicleID)
		}
		v.AssignedPassengers = append(v.AssignedPassengers, &domain.Passenger{
			PassengerID: id,
			Name:        name,
			Location:    domain.Coordinates{Lat: lat, Lng: lng},
			Available:   available,
		})
	}
	if err := prows.Err(); err != nil {
		return nil, fmt.Errorf("load solution: passenger row iteration: %w", err)
	}

	return solution, nil
}

// ListPassengers returns every known passenger, assigned or not.
func (s *SqliteFleetRepository) ListPassengers(ctx context.Context) ([]*domain.Passenger, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite fleet repository: DB is nil")
	}

	query := `
	SELECT passenger_id, name, lat, lng, available
	FROM passengers
	ORDER BY passenger_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list passengers: query passengers table: %w", err)
	}
	defer rows.Close()

	passengers := make([]*domain.Passenger, 0, 64)
	for rows.Next() {
		var id int
		var name string
		var lat, lng float64
		var available bool
		if err := rows.Scan(&id, &name, &lat, &lng, &available); err != nil {
			return nil, fmt.Errorf("list passengers: scan row: %w", err)
		}
		passengers = append(passengers, &domain.Passenger{
			PassengerID: id,
			Name:        name,
			Location:    domain.Coordinates{Lat: lat, Lng: lng},
			Available:   available,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list passengers: row iteration: %w", err)
	}

	return passengers, nil
}
