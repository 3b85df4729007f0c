package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"clubapi/internal/config"
	"clubapi/internal/database"
	"clubapi/internal/database/migration"
	"clubapi/internal/factory"
	"clubapi/internal/repository/postgres"
)

// sqlHandle pairs the open connection with the host name the migration
// logger reports.
type sqlHandle struct {
	*sql.DB
	host string
}

// clubctl bundles the management commands that run against the same
// configuration as the API server: schema migration and data seeding.
func main() {
	command := "help"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "migrate":
		if err := runMigrate(context.Background()); err != nil {
			log.Fatalf("migrate failed: %v", err)
		}
	case "seed":
		if err := runSeed(context.Background(), os.Args[2:]); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	case "help", "--help", "-h":
		printHelp()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", command)
		printHelp()
		os.Exit(2)
	}
}

func printHelp() {
	fmt.Println("Usage: clubctl <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate        apply the database schema")
	fmt.Println("  seed [-n N]    insert N generated members (default 10)")
	fmt.Println("  help           show this help")
}

func connect() (*sqlHandle, error) {
	cfg := config.Load()
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return &sqlHandle{DB: db, host: cfg.Database.Host}, nil
}

func runMigrate(ctx context.Context) error {
	h, err := connect()
	if err != nil {
		return err
	}
	defer h.Close()

	return migration.EnsureMigrated(ctx, h.DB, time.UTC, h.host)
}

func runSeed(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	n := fs.Int("n", 10, "number of members to create")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *n < 1 {
		return fmt.Errorf("member count must be positive, got %d", *n)
	}

	h, err := connect()
	if err != nil {
		return err
	}
	defer h.Close()

	if err := migration.EnsureMigrated(ctx, h.DB, time.UTC, h.host); err != nil {
		return err
	}

	repo := postgres.NewMemberPostgres(h.DB)
	members, err := factory.CreateMembers(ctx, repo, *n)
	if err != nil {
		return err
	}

	log.Printf("seeded %d members (ids %d..%d)", len(members), members[0].ID, members[len(members)-1].ID)
	return nil
}
