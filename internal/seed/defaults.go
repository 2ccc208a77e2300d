package seed

import (
	"cleanlog-backend/internal/config"
	"cleanlog-backend/internal/service"
	"cleanlog-backend/pkg/logger"
)

// EnsureDefaultTopic creates the fallback topic every blog needs before
// posts can be filed anywhere. Posts from deleted topics land here.
func EnsureDefaultTopic(topicService *service.TopicService) {
	if topicService == nil {
		return
	}

	topic, created, err := topicService.EnsureDefaultTopic()
	if err != nil {
		logger.Error(err, "Failed to ensure default topic", nil)
		return
	}

	fields := map[string]interface{}{
		"id":   topic.ID,
		"name": topic.Name,
	}

	if created {
		logger.Info("Created default topic", fields)
	} else {
		logger.Info("Default topic already present", fields)
	}
}

// EnsureAdmin creates the site owner account when the admin table is
// empty. The blog is single-identity, so this runs once per install.
func EnsureAdmin(authService *service.AuthService, cfg *config.Config) {
	if authService == nil {
		return
	}

	admin, created, err := authService.EnsureAdmin(
		cfg.AdminUsername,
		cfg.AdminPassword,
		cfg.AdminName,
		cfg.BlogTitle,
		"",
	)
	if err != nil {
		logger.Error(err, "Failed to ensure admin account", nil)
		return
	}

	fields := map[string]interface{}{
		"id":       admin.ID,
		"username": admin.Username,
	}

	if created {
		logger.Info("Created admin account", fields)
	} else {
		logger.Info("Admin account already present", fields)
	}
}
