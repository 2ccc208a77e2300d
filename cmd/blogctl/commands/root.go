package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cleanlog-backend/internal/config"
	"cleanlog-backend/pkg/logger"
	"cleanlog-backend/pkg/validator"
)

var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "Management CLI for the Cleanlog blog backend",
	Long: `blogctl manages a Cleanlog installation from the command line.

Subcommands:
  initdb      - Create or recreate the database schema
  init-admin  - Create the admin account or reset its credentials
  seed        - Fill the database with generated development content

Configuration comes from the environment (and a .env file if present),
the same way the API server reads it.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init()
		validator.Init()
		if err := godotenv.Load(); err != nil {
			logger.Debug("No .env file found, using environment variables", nil)
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func closeDatabase(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
