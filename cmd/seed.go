package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lumos-Labs-HQ/dashseed/internal/config"
	"github.com/Lumos-Labs-HQ/dashseed/internal/database"
	"github.com/Lumos-Labs-HQ/dashseed/internal/dataset"
	"github.com/Lumos-Labs-HQ/dashseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the tables and insert the placeholder data",
	Long: `Create the users, customers, invoices and revenue tables if they do not
exist and insert the dataset in that order. Passwords are stored as bcrypt
hashes. The first failing table stops the run and the command exits non-zero.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd)
	},
}

func addSeedFlags(c *cobra.Command) {
	c.Flags().String("data", "", "YAML dataset file (default is the embedded placeholder data)")
}

func runSeed(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ds, err := dataset.Resolve(cfg.DataPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withDB(ctx, cfg, func(db *sql.DB, dialect database.Dialect) error {
		s := seeder.New(db, dialect, seeder.Options{BcryptCost: cfg.BcryptCost})
		return s.Seed(ctx, ds)
	})
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if url, _ := cmd.Flags().GetString("url"); url != "" {
		cfg.SetURL(url)
	}
	if f := cmd.Flags().Lookup("data"); f != nil && f.Changed {
		cfg.DataPath = f.Value.String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// withDB opens the configured database, runs fn and always closes the
// connection. A close failure is reported but does not change the result.
func withDB(ctx context.Context, cfg *config.Config, fn func(*sql.DB, database.Dialect) error) error {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return err
	}

	dialect, err := database.DialectFor(cfg.Database.Provider)
	if err != nil {
		return err
	}

	db, err := database.Open(ctx, cfg.Database.Provider, dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			color.Yellow("⚠️  Failed to close database: %v", err)
		}
	}()

	return fn(db, dialect)
}

func init() {
	rootCmd.AddCommand(seedCmd)
	addSeedFlags(seedCmd)
}
