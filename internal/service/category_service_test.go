package service

import (
	"errors"
	"testing"
	"time"

	"cleanlog-backend/internal/models"
)

func newCategoryFixture() (*CategoryService, *memoryCategoryRepository, *memoryPostRepository) {
	categoryRepo := newMemoryCategoryRepository()
	postRepo := newMemoryPostRepository()
	return NewCategoryService(categoryRepo, postRepo, nil), categoryRepo, postRepo
}

func TestCategoryService_CreateTrimsName(t *testing.T) {
	service, _, _ := newCategoryFixture()

	category, err := service.Create(models.CreateCategoryRequest{Name: "  Physics  "})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if category.Name != "Physics" {
		t.Fatalf("expected trimmed name, got %q", category.Name)
	}
}

func TestCategoryService_CreateDuplicateName(t *testing.T) {
	service, _, _ := newCategoryFixture()

	if _, err := service.Create(models.CreateCategoryRequest{Name: "Math"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	_, err := service.Create(models.CreateCategoryRequest{Name: " Math "})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestCategoryService_GetByIDUnknown(t *testing.T) {
	service, _, _ := newCategoryFixture()

	if _, err := service.GetByID(7); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryService_GetPosts(t *testing.T) {
	service, _, postRepo := newCategoryFixture()

	category, err := service.Create(models.CreateCategoryRequest{Name: "CS"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	now := time.Now()
	postRepo.Create(&models.Post{Title: "old", CategoryID: category.ID, TopicID: 1, CreateTime: now.Add(-time.Hour)})
	postRepo.Create(&models.Post{Title: "new", CategoryID: category.ID, TopicID: 1, CreateTime: now})
	postRepo.Create(&models.Post{Title: "other", CategoryID: category.ID + 1, TopicID: 1, CreateTime: now})

	posts, total, err := service.GetPosts(category.ID, 1, 10)
	if err != nil {
		t.Fatalf("GetPosts returned error: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 posts in category, got %d", total)
	}
	if posts[0].Title != "new" {
		t.Fatalf("expected newest first, got %q", posts[0].Title)
	}

	if _, _, err := service.GetPosts(99, 1, 10); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
