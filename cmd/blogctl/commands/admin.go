package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"cleanlog-backend/internal/config"
	"cleanlog-backend/internal/models"
	"cleanlog-backend/internal/repository"
	"cleanlog-backend/internal/service"
	"cleanlog-backend/pkg/validator"
)

var (
	adminUsername string
	adminPassword string
)

var initAdminCmd = &cobra.Command{
	Use:   "init-admin",
	Short: "Create the admin account or reset its credentials",
	Long: `Create the admin account if none exists, or overwrite the username
and password of the existing one. The blog has exactly one admin.

Examples:
  blogctl init-admin --username admin --password s3cret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInitAdmin()
	},
}

func init() {
	initAdminCmd.Flags().StringVar(&adminUsername, "username", "", "Admin username (required)")
	initAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password (required)")
	initAdminCmd.MarkFlagRequired("username")
	initAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(initAdminCmd)
}

func runInitAdmin() error {
	// Same rules the login endpoint applies to these fields.
	creds := models.LoginRequest{Username: adminUsername, Password: adminPassword}
	if err := validator.Validate(creds); err != nil {
		return fmt.Errorf("invalid admin credentials: %w", err)
	}

	cfg := config.New()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	authService := service.NewAuthService(repository.NewAdminRepository(db), cfg.JWTSecret)

	admin, created, err := authService.EnsureAdmin(
		adminUsername, adminPassword, cfg.AdminName, cfg.BlogTitle, "",
	)
	if err != nil {
		return err
	}

	if created {
		fmt.Printf("Created admin account %q\n", admin.Username)
		return nil
	}

	admin, err = authService.ResetCredentials(adminUsername, adminPassword)
	if err != nil {
		return err
	}

	fmt.Printf("Updated credentials for admin account %q\n", admin.Username)
	return nil
}
