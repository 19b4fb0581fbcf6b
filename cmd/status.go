package cmd

import (
	"database/sql"
	"fmt"

	"github.com/Lumos-Labs-HQ/dashseed/internal/database"
	"github.com/Lumos-Labs-HQ/dashseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the row count of each seeded table",
	Long: `Show whether the users, customers, invoices and revenue tables exist and
how many rows each holds. Nothing is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		return withDB(cmd.Context(), cfg, func(db *sql.DB, dialect database.Dialect) error {
			s := seeder.New(db, dialect, seeder.Options{BcryptCost: cfg.BcryptCost})
			counts, err := s.Counts(cmd.Context())
			if err != nil {
				return err
			}

			color.Cyan("📊 %s database", dialect.Name())
			for _, c := range counts {
				if !c.Exists {
					color.Yellow("  %-10s not created", c.Table)
					continue
				}
				fmt.Printf("  %-10s %d rows\n", c.Table, c.Rows)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
