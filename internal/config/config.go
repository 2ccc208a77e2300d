package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	// Database
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DatabaseURL string

	// Redis
	EnableCache bool
	RedisURL    string

	// JWT
	JWTSecret string

	// Server
	Port        string
	Environment string

	// CORS
	CORSOrigins []string

	// Upload
	UploadDir     string
	MaxUploadSize int64

	// Pagination
	PostPerPage        int
	ArchivePerPage     int
	ThoughtPerPage     int
	CommentPerPage     int
	ManagePostPerPage  int
	ManageItemsPerPage int

	// Features
	EnableMetrics bool

	// Site Meta
	BlogTitle string
	SiteURL   string

	// Initial admin account
	AdminUsername string
	AdminPassword string
	AdminName     string
}

func New() *Config {
	c := &Config{
		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "bloguser"),
		DBPassword: getEnv("DB_PASSWORD", "blogpassword"),
		DBName:     getEnv("DB_NAME", "cleanlog"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Redis
		EnableCache: getEnvAsBool("ENABLE_CACHE", true),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "dev key"),

		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// CORS
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"), ","),

		// Upload
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize: 10 * 1024 * 1024, // 10MB

		// Pagination
		PostPerPage:        getEnvAsInt("POST_PER_PAGE", 10),
		ArchivePerPage:     getEnvAsInt("ARCHIVE_PER_PAGE", 100),
		ThoughtPerPage:     getEnvAsInt("THOUGHT_PER_PAGE", 15),
		CommentPerPage:     getEnvAsInt("COMMENT_PER_PAGE", 15),
		ManagePostPerPage:  getEnvAsInt("MANAGE_POST_PER_PAGE", 15),
		ManageItemsPerPage: getEnvAsInt("MANAGE_ITEMS_PER_PAGE", 20),

		// Features
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),

		// Site Meta
		BlogTitle: getEnv("BLOG_TITLE", "Cleanlog"),
		SiteURL:   getEnv("SITE_URL", "http://localhost:8080"),

		// Initial admin account
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "helloflask"),
		AdminName:     getEnv("ADMIN_NAME", "Syntomic"),
	}

	c.DatabaseURL = fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)

	return c
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
