package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS vehicles (
		vehicle_id INTEGER PRIMARY KEY,
		capacity INTEGER NOT NULL,
		start_lat REAL NOT NULL,
		start_lng REAL NOT NULL
	);
	`

	createPassengersQuery := `
	CREATE TABLE IF NOT EXISTS passengers (
		passenger_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		available INTEGER NOT NULL DEFAULT 1,
		vehicle_id INTEGER,
		route_order INTEGER
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
		cache_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		formatted_address TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_passengers_vehicle_order
	ON passengers(vehicle_id, route_order);
	`

	statements := []string{
		createVehiclesQuery,
		createPassengersQuery,
		createRouteCacheQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type VehicleSeed struct {
	VehicleID int     `json:"vehicle_id"`
	Capacity  int     `json:"capacity"`
	StartLat  float64 `json:"start_lat"`
	StartLng  float64 `json:"start_lng"`
}

type PassengerSeed struct {
	PassengerID int     `json:"passenger_id"`
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Available   bool    `json:"available"`
	VehicleID   *int    `json:"vehicle_id"`
	RouteOrder  *int    `json:"route_order"`
}

type FleetSeed struct {
	Vehicles   []VehicleSeed   `json:"vehicles"`
	Passengers []PassengerSeed `json:"passengers"`
}

// Populate the database with fleet data from a JSON file. The seed carries
// the externally produced assignment (vehicle_id + route_order per
// passenger); unassigned passengers have both set to null.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed fleet: read %q: %w", jsonPath, err)
	}

	var data FleetSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed fleet: parse json: %w", err)
	}

	for i, v := range data.Vehicles {
		if v.VehicleID <= 0 {
			return fmt.Errorf("seed fleet: invalid vehicle_id at index %d: %d", i, v.VehicleID)
		}
		if v.Capacity < 1 {
			return fmt.Errorf("seed fleet: vehicle %d capacity must be >= 1, got %d", v.VehicleID, v.Capacity)
		}
	}
	for i, p := range data.Passengers {
		if p.PassengerID <= 0 {
			return fmt.Errorf("seed fleet: invalid passenger_id at index %d: %d", i, p.PassengerID)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed fleet: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	vehicleStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO vehicles (vehicle_id, capacity, start_lat, start_lng)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed fleet: prepare vehicle insert: %w", err)
	}
	defer vehicleStmt.Close()

	for _, v := range data.Vehicles {
		if _, err := vehicleStmt.Exec(v.VehicleID, v.Capacity, v.StartLat, v.StartLng); err != nil {
			return fmt.Errorf("seed fleet: insert vehicle_id=%d: %w", v.VehicleID, err)
		}
	}

	passengerStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO passengers (passenger_id, name, lat, lng, available, vehicle_id, route_order)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed fleet: prepare passenger insert: %w", err)
	}
	defer passengerStmt.Close()

	for _, p := range data.Passengers {
		if _, err := passengerStmt.Exec(p.PassengerID, p.Name, p.Lat, p.Lng, p.Available, p.VehicleID, p.RouteOrder); err != nil {
			return fmt.Errorf("seed fleet: insert passenger_id=%d: %w", p.PassengerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed fleet: commit tx: %w", err)
	}

	return nil
}
