package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"cleanlog-backend/internal/config"
	"cleanlog-backend/internal/repository"
	"cleanlog-backend/internal/seed"
	"cleanlog-backend/internal/service"
	"cleanlog-backend/pkg/cache"
)

var seedCounts = seed.DefaultCounts()

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with generated development content",
	Long: `Generate fake categories, topics, posts, comments and thoughts so a
development instance has something to show. About a tenth of the
comments are left unreviewed to exercise the moderation queue.

Examples:
  blogctl seed
  blogctl seed --posts 10 --comments 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed()
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedCounts.Topics, "topics", seedCounts.Topics, "Number of topics to generate")
	seedCmd.Flags().IntVar(&seedCounts.Posts, "posts", seedCounts.Posts, "Number of posts to generate")
	seedCmd.Flags().IntVar(&seedCounts.Comments, "comments", seedCounts.Comments, "Number of reviewed comments to generate")
	seedCmd.Flags().IntVar(&seedCounts.Thoughts, "thoughts", seedCounts.Thoughts, "Number of thoughts to generate")
	rootCmd.AddCommand(seedCmd)
}

func runSeed() error {
	cfg := config.New()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	categoryRepo := repository.NewCategoryRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	postRepo := repository.NewPostRepository(db)

	noCache, _ := cache.NewCache("", false)
	topicService := service.NewTopicService(topicRepo, categoryRepo, postRepo, noCache)
	authService := service.NewAuthService(repository.NewAdminRepository(db), cfg.JWTSecret)

	seed.EnsureDefaultTopic(topicService)
	seed.EnsureAdmin(authService, cfg)

	faker := seed.NewFaker(
		categoryRepo,
		topicRepo,
		postRepo,
		repository.NewCommentRepository(db),
		repository.NewThoughtRepository(db),
	)

	if err := faker.Run(seedCounts); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	fmt.Println("Seeding complete")
	return nil
}
