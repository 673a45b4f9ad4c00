package main

import (
	"database/sql"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/ilayShalev/claudpro/internal/adapters/repositories"
)

// dbtool initializes the SQLite schema and optionally seeds fleet data
// from a JSON file. Run it before first server start, or with -seed to
// reload demo data.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := flag.String("db", envOr("DB_PATH", "data/app.db"), "path to the sqlite database file")
	seedPath := flag.String("seed", "", "path to a fleet seed JSON file (optional)")
	flag.Parse()

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		log.Fatalf("open sqlite database %q: %v", *dbPath, err)
	}
	defer db.Close()

	if err := repositories.InitSchema(db); err != nil {
		log.Fatal(err)
	}
	log.Printf("Schema ready db=%s", *dbPath)

	if *seedPath == "" {
		return
	}
	if err := repositories.SeedFromJSON(db, *seedPath); err != nil {
		log.Fatal(err)
	}
	log.Printf("Seed loaded file=%s", *seedPath)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
