// Command migrate applies or inspects the database schema.
//
//	migrate [up|up-by-one|down|redo|reset|status|version]
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"Socialsphere/internal/db/migrations"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [up|up-by-one|down|redo|reset|status|version]\n", os.Args[0])
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	// Only the database URL is needed here, so the full server config is not loaded
	_ = godotenv.Load(".env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	if err := migrations.Run(ctx, db, command, flag.Args()[min(1, flag.NArg()):]...); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("migrate %s: done", command)
}
