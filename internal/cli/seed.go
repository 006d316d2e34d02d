package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/readtrack/internal/config"
	"github.com/mrlokans/readtrack/internal/seed"
)

// SeedCommand loads a YAML library fixture into the database.
type SeedCommand struct {
	DatabaseURL string
	FilePath    string
	DryRun      bool

	cfg config.Database
	out io.Writer
}

func NewSeedCommand(cfg config.Database) *SeedCommand {
	return &SeedCommand{cfg: cfg, out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabaseURL, "database-url", cmd.cfg.URL, "Connection string (defaults to DATABASE_URL)")
	fs.StringVar(&cmd.FilePath, "file", "", "Path to the YAML fixture (required)")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Parse the fixture and report its contents without writing")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed -file <fixture.yaml> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Load publishers, authors, books, users and progress from a YAML fixture.\n")
		fmt.Fprintf(os.Stderr, "Migrations are applied first. The fixture is written atomically.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.FilePath == "" {
		return errors.New("-file is required")
	}
	return nil
}

// Run executes the seed command
func (cmd *SeedCommand) Run() error {
	ctx := context.Background()

	fixture, err := seed.LoadFile(cmd.FilePath)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.out, "Fixture: %d publishers, %d authors, %d books, %d users, %d progress rows\n",
		len(fixture.Publishers), len(fixture.Authors), len(fixture.Books), len(fixture.Users), len(fixture.Progress))

	if cmd.DryRun {
		fmt.Fprintln(cmd.out, "Dry run complete. Use without -dry-run to seed.")
		return nil
	}

	db, err := openDatabase(ctx, cmd.DatabaseURL, cmd.cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	result, err := seed.NewSeeder(db).Apply(ctx, fixture)
	if err != nil {
		return fmt.Errorf("failed to seed: %w", err)
	}

	fmt.Fprintf(cmd.out, "Seed complete: %s\n", result)
	return nil
}
