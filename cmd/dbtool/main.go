package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"nursery-locator/internal/adapters/repositories"
	"nursery-locator/internal/config"
	"nursery-locator/internal/platform/db"
	"nursery-locator/internal/platform/logging"

	"github.com/joho/godotenv"
)

type options struct {
	source     string
	sheet      string
	schemaOnly bool
}

// dbtool creates the facilities schema and loads it from a spreadsheet.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat, nil)
	if envErr != nil {
		slog.Info("no .env file found (using environment variables)")
	}

	var opts options
	flag.StringVar(&opts.source, "source", cfg.FacilitySource, "spreadsheet (.xlsx or .csv) to import")
	flag.StringVar(&opts.sheet, "sheet", cfg.FacilitySheet, "worksheet name for .xlsx sources")
	flag.BoolVar(&opts.schemaOnly, "schema-only", false, "create the schema without importing")
	flag.Parse()

	if err := run(cfg, opts); err != nil {
		slog.Error("dbtool failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, opts options) error {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	slog.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	slog.Info("schema ready")

	if opts.schemaOnly {
		return nil
	}

	repo, err := repositories.NewSpreadsheetFacilityRepository(opts.source, opts.sheet)
	if err != nil {
		return err
	}
	facilities, err := repo.ListFacilities(ctx)
	if err != nil {
		return err
	}

	slog.Info("seeding database", "source", opts.source, "count", len(facilities))
	if err := repositories.SeedFacilities(ctx, conn, facilities); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	slog.Info("seeding complete")

	return nil
}
