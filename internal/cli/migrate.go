package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mrlokans/readtrack/internal/config"
	"github.com/mrlokans/readtrack/internal/database"
)

// MigrateCommand applies pending schema migrations or reports their state.
type MigrateCommand struct {
	DatabaseURL string
	StatusOnly  bool

	cfg config.Database
	out io.Writer
}

func NewMigrateCommand(cfg config.Database) *MigrateCommand {
	return &MigrateCommand{cfg: cfg, out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *MigrateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabaseURL, "database-url", cmd.cfg.URL, "Connection string (defaults to DATABASE_URL)")
	fs.BoolVar(&cmd.StatusOnly, "status", false, "List migrations and whether they are applied, without applying anything")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s migrate [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Apply pending schema migrations in a single transaction.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s migrate -database-url sqlite://./readtrack.db\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s migrate -status\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the migrate command
func (cmd *MigrateCommand) Run() error {
	ctx := context.Background()

	db, err := openDatabase(ctx, cmd.DatabaseURL, cmd.cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	migrator := db.Migrator()
	if !cmd.StatusOnly {
		if err := migrator.Up(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.out, "Migrations applied")
	}

	steps, err := migrator.Status(ctx)
	if err != nil {
		return err
	}
	printSteps(cmd.out, steps)
	return nil
}

func printSteps(out io.Writer, steps []database.StepStatus) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED")
	for _, step := range steps {
		applied := "pending"
		if step.Applied() {
			applied = step.AppliedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", step.Version, step.Name, applied)
	}
	w.Flush()
}
