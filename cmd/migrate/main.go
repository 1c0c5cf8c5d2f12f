package main

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"hackerbot/internal/config"
)

const migrationsDir = "./migrations"

// Migration runner for the ClickHouse backend. Connection settings come
// from the same environment variables the bot itself reads; the host
// defaults to localhost so the tool works against a local instance
// without any setup.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using existing environment variables")
	}

	ch, err := config.LoadClickHouseFromEnv()
	if err != nil {
		log.Fatalf("Invalid ClickHouse configuration: %v", err)
	}
	if ch.Host == "" {
		ch.Host = "localhost"
	}

	db, err := sql.Open("clickhouse", ch.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Printf("Connected to ClickHouse at %s:%d", ch.Host, ch.Port)

	if err := goose.SetDialect("clickhouse"); err != nil {
		log.Fatalf("Failed to set dialect: %v", err)
	}

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	if err := run(db, command); err != nil {
		log.Fatal(err)
	}
}

func run(db *sql.DB, command string) error {
	log.Printf("Running migrations: %s", command)

	switch command {
	case "up":
		if err := goose.Up(db, migrationsDir); err != nil {
			return err
		}
		log.Println("Migrations completed successfully")
	case "down":
		if err := goose.Down(db, migrationsDir); err != nil {
			return err
		}
		log.Println("Rollback completed successfully")
	case "status":
		return goose.Status(db, migrationsDir)
	case "version":
		version, err := goose.GetDBVersion(db)
		if err != nil {
			return err
		}
		log.Printf("Current migration version: %d", version)
	case "create":
		if len(os.Args) < 3 {
			log.Fatal("Usage: migrate create <migration_name>")
		}
		name := os.Args[2]
		if err := goose.Create(db, migrationsDir, name, "sql"); err != nil {
			return err
		}
		log.Printf("Created migration: %s", name)
	default:
		log.Fatalf("Unknown command: %s. Available commands: up, down, status, version, create", command)
	}
	return nil
}
