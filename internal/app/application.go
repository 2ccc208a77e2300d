package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cleanlog-backend/internal/config"
	"cleanlog-backend/internal/handlers"
	"cleanlog-backend/internal/middleware"
	"cleanlog-backend/internal/models"
	"cleanlog-backend/internal/repository"
	"cleanlog-backend/internal/seed"
	"cleanlog-backend/internal/service"
	"cleanlog-backend/pkg/cache"
	"cleanlog-backend/pkg/logger"
)

type Application struct {
	cfg *config.Config

	db    *gorm.DB
	cache *cache.Cache

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	router *gin.Engine
	server *http.Server
}

type repositoryContainer struct {
	Admin    repository.AdminRepository
	Category repository.CategoryRepository
	Topic    repository.TopicRepository
	Post     repository.PostRepository
	Comment  repository.CommentRepository
	Thought  repository.ThoughtRepository
}

type serviceContainer struct {
	Auth     *service.AuthService
	Category *service.CategoryService
	Topic    *service.TopicService
	Post     *service.PostService
	Comment  *service.CommentService
	Thought  *service.ThoughtService
	Upload   *service.UploadService
}

type handlerContainer struct {
	Auth     *handlers.AuthHandler
	Category *handlers.CategoryHandler
	Topic    *handlers.TopicHandler
	Post     *handlers.PostHandler
	Comment  *handlers.CommentHandler
	Thought  *handlers.ThoughtHandler
}

func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{cfg: cfg}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.runMigrations(); err != nil {
		return nil, err
	}

	if err := app.createIndexes(); err != nil {
		return nil, err
	}

	app.initCache()
	app.initRepositories()
	app.initServices()

	seed.EnsureDefaultTopic(app.services.Topic)
	seed.EnsureAdmin(app.services.Auth, cfg)

	app.initHandlers()
	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) DB() *gorm.DB {
	return a.db
}

func (a *Application) initDatabase() error {
	logger.Info("Connecting to database", nil)

	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	return Migrate(a.db)
}

func (a *Application) createIndexes() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	return CreateIndexes(a.db)
}

// Migrate brings the schema up to date. Shared with the blogctl CLI.
func Migrate(db *gorm.DB) error {
	logger.Info("Running database migrations", nil)

	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Category{},
		&models.Topic{},
		&models.Post{},
		&models.Comment{},
		&models.Thought{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func CreateIndexes(db *gorm.DB) error {
	logger.Info("Creating database indexes", nil)

	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_posts_create_time ON posts(create_time DESC)",
		"CREATE INDEX IF NOT EXISTS idx_posts_topic_id ON posts(topic_id)",
		"CREATE INDEX IF NOT EXISTS idx_posts_category_id ON posts(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_comments_post_reviewed ON comments(post_id, reviewed)",
		"CREATE INDEX IF NOT EXISTS idx_comments_unreviewed ON comments(timestamp DESC) WHERE reviewed = false",
		"CREATE INDEX IF NOT EXISTS idx_comments_replied_id ON comments(replied_id)",
		"CREATE INDEX IF NOT EXISTS idx_thoughts_timestamp ON thoughts(timestamp DESC)",
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func (a *Application) initCache() {
	if !a.cfg.EnableCache {
		a.cache, _ = cache.NewCache("", false)
		return
	}

	c, err := cache.NewCache(a.cfg.RedisURL, true)
	if err != nil {
		// The blog works without Redis, just slower.
		logger.Error(err, "Cache unavailable, continuing without it", nil)
		a.cache, _ = cache.NewCache("", false)
		return
	}

	a.cache = c
}

func (a *Application) initRepositories() {
	a.repositories = repositoryContainer{
		Admin:    repository.NewAdminRepository(a.db),
		Category: repository.NewCategoryRepository(a.db),
		Topic:    repository.NewTopicRepository(a.db),
		Post:     repository.NewPostRepository(a.db),
		Comment:  repository.NewCommentRepository(a.db),
		Thought:  repository.NewThoughtRepository(a.db),
	}
}

func (a *Application) initServices() {
	a.services = serviceContainer{
		Auth:     service.NewAuthService(a.repositories.Admin, a.cfg.JWTSecret),
		Category: service.NewCategoryService(a.repositories.Category, a.repositories.Post, a.cache),
		Topic:    service.NewTopicService(a.repositories.Topic, a.repositories.Category, a.repositories.Post, a.cache),
		Post:     service.NewPostService(a.repositories.Post, a.repositories.Category, a.repositories.Topic, a.cache),
		Comment:  service.NewCommentService(a.repositories.Comment, a.repositories.Post),
		Thought:  service.NewThoughtService(a.repositories.Thought),
		Upload:   service.NewUploadService(a.cfg.UploadDir, a.cfg.MaxUploadSize),
	}
}

func (a *Application) initHandlers() {
	a.handlers = handlerContainer{
		Auth:     handlers.NewAuthHandler(a.services.Auth),
		Category: handlers.NewCategoryHandler(a.services.Category, a.cfg),
		Topic:    handlers.NewTopicHandler(a.services.Topic, a.services.Upload, a.cfg),
		Post:     handlers.NewPostHandler(a.services.Post, a.services.Topic, a.services.Comment, a.services.Upload, a.cfg),
		Comment:  handlers.NewCommentHandler(a.services.Comment, a.cfg),
		Thought:  handlers.NewThoughtHandler(a.services.Thought, a.cfg),
	}
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLogger())

	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.Static("/uploads", a.cfg.UploadDir)

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("")
		{
			public.POST("/login", a.handlers.Auth.Login)
			public.POST("/logout", a.handlers.Auth.Logout)

			public.GET("/posts", a.handlers.Post.GetAll)
			public.GET("/posts/archive", a.handlers.Post.GetArchive)
			public.GET("/posts/:id", a.handlers.Post.GetByID)
			public.GET("/posts/:id/comments", a.handlers.Comment.GetByPostID)

			public.GET("/categories", a.handlers.Category.GetAll)
			public.GET("/categories/:id", a.handlers.Category.GetByID)
			public.GET("/categories/:id/posts", a.handlers.Category.GetPosts)

			public.GET("/topics", a.handlers.Topic.GetAll)
			public.GET("/topics/:id", a.handlers.Topic.GetByID)
			public.GET("/topics/:id/posts", a.handlers.Topic.GetPosts)

			public.GET("/thoughts", a.handlers.Thought.GetAll)
		}

		// Comment submission stays public, a valid token just marks
		// the comment as coming from the site owner.
		v1.POST("/posts/:id/comments",
			middleware.OptionalAuthMiddleware(a.cfg.JWTSecret),
			a.handlers.Comment.Create,
		)

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(a.cfg.JWTSecret))
		{
			admin.GET("/profile", a.handlers.Auth.GetProfile)
			admin.PUT("/settings", a.handlers.Auth.UpdateSettings)
			admin.PUT("/password", a.handlers.Auth.ChangePassword)

			admin.GET("/posts", a.handlers.Post.GetManaged)
			admin.POST("/posts", a.handlers.Post.Create)
			admin.PUT("/posts/:id", a.handlers.Post.Update)
			admin.DELETE("/posts/:id", a.handlers.Post.Delete)
			admin.PUT("/posts/:id/comments", a.handlers.Post.ToggleComments)

			admin.POST("/categories", a.handlers.Category.Create)

			admin.POST("/topics", a.handlers.Topic.Create)
			admin.PUT("/topics/:id", a.handlers.Topic.Update)
			admin.DELETE("/topics/:id", a.handlers.Topic.Delete)

			admin.GET("/comments", a.handlers.Comment.GetForModeration)
			admin.PUT("/comments/:id/approve", a.handlers.Comment.Approve)
			admin.DELETE("/comments/:id", a.handlers.Comment.Delete)

			admin.POST("/thoughts", a.handlers.Thought.Create)
			admin.PUT("/thoughts/:id", a.handlers.Thought.Update)
			admin.DELETE("/thoughts/:id", a.handlers.Thought.Delete)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})

	a.router = router
}
