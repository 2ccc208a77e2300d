package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"cleanlog-backend/internal/app"
	"cleanlog-backend/internal/config"
	"cleanlog-backend/internal/models"
	"cleanlog-backend/internal/repository"
	"cleanlog-backend/internal/seed"
	"cleanlog-backend/internal/service"
	"cleanlog-backend/pkg/cache"
)

var dropTables bool

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create or recreate the database schema",
	Long: `Create the database schema, then ensure the default topic and the
admin account exist.

Examples:
  blogctl initdb          # Migrate the schema in place
  blogctl initdb --drop   # Drop all tables first, then recreate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInitDB()
	},
}

func init() {
	initdbCmd.Flags().BoolVar(&dropTables, "drop", false, "Drop existing tables before migrating")
	rootCmd.AddCommand(initdbCmd)
}

func runInitDB() error {
	cfg := config.New()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	if dropTables {
		// Children first so foreign keys do not get in the way.
		if err := db.Migrator().DropTable(
			&models.Comment{},
			&models.Post{},
			&models.Topic{},
			&models.Category{},
			&models.Thought{},
			&models.Admin{},
		); err != nil {
			return fmt.Errorf("failed to drop tables: %w", err)
		}
		fmt.Println("Dropped existing tables")
	}

	if err := app.Migrate(db); err != nil {
		return err
	}

	if err := app.CreateIndexes(db); err != nil {
		return err
	}

	noCache, _ := cache.NewCache("", false)
	topicService := service.NewTopicService(
		repository.NewTopicRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewPostRepository(db),
		noCache,
	)
	authService := service.NewAuthService(repository.NewAdminRepository(db), cfg.JWTSecret)

	seed.EnsureDefaultTopic(topicService)
	seed.EnsureAdmin(authService, cfg)

	fmt.Println("Database initialized")
	return nil
}
