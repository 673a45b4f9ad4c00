package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"github.com/ilayShalev/claudpro/internal/adapters/cache"
	"github.com/ilayShalev/claudpro/internal/adapters/directions"
	"github.com/ilayShalev/claudpro/internal/adapters/repositories"
	"github.com/ilayShalev/claudpro/internal/api"
	"github.com/ilayShalev/claudpro/internal/domain"
	"github.com/ilayShalev/claudpro/internal/platform/db"
	"github.com/ilayShalev/claudpro/internal/ports"
	"github.com/ilayShalev/claudpro/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis, the directions provider)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := getEnv("DB_PATH", "data/app.db")
	seedPath := getEnv("SEED_PATH", "data/seeds/fleet.json")
	port := getEnv("PORT", "8080")

	destination := domain.Destination{
		Name:       getEnv("DEST_NAME", "Office"),
		Address:    getEnv("DEST_ADDRESS", ""),
		TargetTime: getEnv("DEST_TARGET_TIME", "09:00"),
		Location: domain.Coordinates{
			Lat: getEnvFloat("DEST_LAT", 32.0853),
			Lng: getEnvFloat("DEST_LNG", 34.7818),
		},
	}

	sqliteDB, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(sqliteDB, seedPath); err != nil {
		log.Fatal(err)
	}

	routeCache, geocodeCache, err := buildCaches(sqliteDB)
	if err != nil {
		log.Fatal(err)
	}

	// Without an API key the run is estimate-only: the scheduler takes the
	// geometric path for every vehicle.
	var provider ports.RouteProvider
	var geocoder ports.Geocoder
	apiKey := strings.TrimSpace(os.Getenv("MAPS_API_KEY"))
	if apiKey == "" {
		log.Println("MAPS_API_KEY not set; running with geometric estimates only")
	} else {
		client, err := directions.NewClient(apiKey, routeCache, geocodeCache, directions.SystemClock{})
		if err != nil {
			log.Fatal(err)
		}
		provider = client
		geocoder = client
	}

	repo := repositories.NewSqliteFleetRepository(sqliteDB)
	scheduler := services.NewScheduler(provider, directions.SystemClock{})
	router := api.NewRouter(repo, scheduler, geocoder, destination)

	// Timeouts are tuned for cold-cache scheduling (external API latency
	// plus the provider rate-limit gap per vehicle).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildCaches selects the cache adapters: Redis routes when configured,
// Postgres for shared deployments, bounded in-memory, or the SQLite
// default. The geocode cache stays persistent in every mode.
func buildCaches(sqliteDB *sql.DB) (ports.RouteCache, ports.GeocodeCache, error) {
	switch kind := getEnv("ROUTE_CACHE", "sqlite"); kind {
	case "redis":
		addr := getEnv("REDIS_ADDR", "localhost:6379")
		client := redis.NewClient(&redis.Options{Addr: addr})
		return cache.NewRedisRouteCache(client, cache.DefaultRouteTTL),
			cache.NewSqliteGeocodeCache(sqliteDB), nil
	case "postgres":
		databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
		if databaseURL == "" {
			return nil, nil, fmt.Errorf("route cache %q requires DATABASE_URL", kind)
		}
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewSQLRouteCache(pg), cache.NewSQLGeocodeCache(pg), nil
	case "memory":
		return cache.NewMemoryRouteCache(getEnvInt("ROUTE_CACHE_SIZE", 512)),
			cache.NewSqliteGeocodeCache(sqliteDB), nil
	case "sqlite":
		return cache.NewSqliteRouteCache(sqliteDB), cache.NewSqliteGeocodeCache(sqliteDB), nil
	default:
		return nil, nil, fmt.Errorf("unknown ROUTE_CACHE %q", kind)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("%s must be a number, got %q", key, v)
	}
	return f
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s must be an integer, got %q", key, v)
	}
	return n
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); os.IsNotExist(err) {
		log.Printf("seed file %q not found; starting with existing data", seedPath)
		return nil
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
