package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const seedJSON = `{
	"vehicles": [
		{"vehicle_id": 1, "capacity": 4, "start_lat": 32.10, "start_lng": 34.85},
		{"vehicle_id": 2, "capacity": 6, "start_lat": 32.01, "start_lng": 34.78}
	],
	"passengers": [
		{"passenger_id": 1, "name": "A", "lat": 32.08, "lng": 34.87, "available": true, "vehicle_id": 1, "route_order": 2},
		{"passenger_id": 2, "name": "B", "lat": 32.07, "lng": 34.84, "available": true, "vehicle_id": 1, "route_order": 1},
		{"passenger_id": 3, "name": "C", "lat": 32.05, "lng": 34.79, "available": true, "vehicle_id": 2, "route_order": 1},
		{"passenger_id": 4, "name": "D", "lat": 32.16, "lng": 34.84, "available": false, "vehicle_id": null, "route_order": null}
	]
}`

func newSeededDB(t *testing.T) *sql.DB {
	t.Helper()

	dir := t.TempDir()
	db, err := sql.Open("sqlite", filepath.Join(dir, "fleet_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(db))

	seedPath := filepath.Join(dir, "fleet.json")
	require.NoError(t, os.WriteFile(seedPath, []byte(seedJSON), 0o644))
	require.NoError(t, SeedFromJSON(db, seedPath))

	return db
}

func TestLoadSolution(t *testing.T) {
	repo := NewSqliteFleetRepository(newSeededDB(t))

	solution, err := repo.LoadSolution(context.Background())
	require.NoError(t, err)

	require.Len(t, solution.Vehicles, 2)
	assert.Equal(t, 3, solution.AssignedCount(), "the unassigned passenger is excluded")

	v1 := solution.Vehicles[0]
	assert.Equal(t, 1, v1.VehicleID)
	assert.Equal(t, 4, v1.Capacity)
	assert.InDelta(t, 32.10, v1.StartLocation.Lat, 1e-9)

	// Passengers come back in stored route order, not id order.
	require.Len(t, v1.AssignedPassengers, 2)
	assert.Equal(t, 2, v1.AssignedPassengers[0].PassengerID)
	assert.Equal(t, 1, v1.AssignedPassengers[1].PassengerID)

	v2 := solution.Vehicles[1]
	require.Len(t, v2.AssignedPassengers, 1)
	assert.Equal(t, 3, v2.AssignedPassengers[0].PassengerID)
}

func TestListPassengers(t *testing.T) {
	repo := NewSqliteFleetRepository(newSeededDB(t))

	passengers, err := repo.ListPassengers(context.Background())
	require.NoError(t, err)

	require.Len(t, passengers, 4, "unassigned passengers are listed too")
	assert.Equal(t, "D", passengers[3].Name)
	assert.False(t, passengers[3].Available)
	assert.True(t, passengers[0].Available)
}

func TestSeedFromJSONValidation(t *testing.T) {
	dir := t.TempDir()
	db, err := sql.Open("sqlite", filepath.Join(dir, "invalid_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, InitSchema(db))

	writeSeed := func(content string) string {
		path := filepath.Join(dir, "seed.json")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	err = SeedFromJSON(db, writeSeed(`{"vehicles": [{"vehicle_id": 0, "capacity": 4}]}`))
	assert.Error(t, err, "vehicle_id must be positive")

	err = SeedFromJSON(db, writeSeed(`{"vehicles": [{"vehicle_id": 1, "capacity": 0}]}`))
	assert.Error(t, err, "capacity must be at least 1")

	err = SeedFromJSON(db, writeSeed(`{"passengers": [{"passenger_id": -2, "name": "X"}]}`))
	assert.Error(t, err, "passenger_id must be positive")

	err = SeedFromJSON(db, filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestSeedFromJSONIdempotent(t *testing.T) {
	db := newSeededDB(t)

	// Re-running the same seed replaces rows instead of duplicating them.
	seedPath := filepath.Join(t.TempDir(), "fleet.json")
	require.NoError(t, os.WriteFile(seedPath, []byte(seedJSON), 0o644))
	require.NoError(t, SeedFromJSON(db, seedPath))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM passengers`).Scan(&count))
	assert.Equal(t, 4, count)
}
