package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/dashseed/internal/config"
	"github.com/Lumos-Labs-HQ/dashseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.0.0"
)

var rootCmd = &cobra.Command{
	Use:   "dashseed",
	Short: "Create and seed the invoices dashboard database",
	Long: `
dashseed creates the users, customers, invoices and revenue tables and fills
them with placeholder data. Running it again is safe: rows whose primary key
already exists are skipped, never updated.

Database Support:
- SQLite (default, ./db.sqlite)
- PostgreSQL
- MySQL

Running dashseed without a subcommand is the same as "dashseed seed".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("dashseed version %s\n", Version)
			return nil
		}
		return runSeed(cmd)
	},
}

// Execute runs the CLI. Seeding failures are reported on stderr by the table
// that failed; anything else is printed here. The caller decides the exit
// status.
func Execute() error {
	err := rootCmd.Execute()
	var stepErr *seeder.StepError
	if err != nil && !errors.As(err, &stepErr) {
		color.New(color.FgRed).Fprintf(os.Stderr, "❌ Error: %v\n", err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./dashseed.config.json)")
	rootCmd.PersistentFlags().String("url", "", "database URL (overrides the configured URL)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
	addSeedFlags(rootCmd)
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("dashseed.config")
	}

	config.BindEnvironment()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && cfgFile != "" {
			color.Yellow("⚠️  Could not read config %s: %v", cfgFile, err)
		}
	}
}
