package main

import (
	"database/sql"
	"log"
	"logistics-planner/internal/adapters/repositories"
	"logistics-planner/internal/config"
	"logistics-planner/internal/platform/db"

	"github.com/joho/godotenv"
)

// dbtool prepares the run ledger selected by LEDGER_DRIVER and optionally
// imports a JSON run history from SEED_PATH.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	settings, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var conn *sql.DB
	switch settings.LedgerDriver {
	case "sqlite":
		conn, err = db.OpenSQLite(settings.LedgerDSN)
	case "pgx":
		conn, err = db.Open(settings.LedgerDSN)
	default:
		log.Fatal("LEDGER_DRIVER is required (sqlite or pgx)")
	}
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "")
	if err := initAndSeed(conn, settings.LedgerDriver, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(conn *sql.DB, driver, seedPath string) error {
	log.Println("Initializing ledger schema...")
	if driver == "pgx" {
		if err := repositories.InitPostgresSchema(conn); err != nil {
			log.Fatalf("schema initialization failed: %v", err)
		}
	} else if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if seedPath == "" {
		return nil
	}
	if driver != "sqlite" {
		log.Println("Seeding skipped: run history import needs the sqlite ledger.")
		return nil
	}

	log.Println("Seeding ledger...")
	if err := repositories.SeedRunsFromJSON(conn, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")

	return nil
}
