package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"cleanlog-backend/internal/models"
	"cleanlog-backend/internal/repository"
	"cleanlog-backend/pkg/cache"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
	postRepo     repository.PostRepository
	cache        *cache.Cache
}

func NewCategoryService(categoryRepo repository.CategoryRepository, postRepo repository.PostRepository, cacheService *cache.Cache) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		postRepo:     postRepo,
		cache:        cacheService,
	}
}

func (s *CategoryService) Create(req models.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("category name is required")
	}

	exists, err := s.categoryRepo.ExistsByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category existence: %w", err)
	}
	if exists {
		return nil, ErrDuplicateName
	}

	category := &models.Category{Name: name}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	if s.cache != nil {
		s.cache.Delete("categories:all")
		s.cache.Delete("categories:with_count")
	}

	return category, nil
}

func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	if s.cache != nil {
		var category models.Category
		if err := s.cache.GetCachedCategory(id, &category); err == nil {
			return &category, nil
		}
	}

	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.CacheCategory(id, category)
	}

	return category, nil
}

func (s *CategoryService) GetAll() ([]models.Category, error) {
	if s.cache != nil {
		var categories []models.Category
		if err := s.cache.Get("categories:all", &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set("categories:all", categories, cacheListTTL)
	}

	return categories, nil
}

func (s *CategoryService) GetWithPostCount() ([]repository.CategoryWithCount, error) {
	if s.cache != nil {
		var categories []repository.CategoryWithCount
		if err := s.cache.Get("categories:with_count", &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.categoryRepo.GetWithPostCount()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set("categories:with_count", categories, cacheCountTTL)
	}

	return categories, nil
}

// GetPosts lists the category's posts, newest first.
func (s *CategoryService) GetPosts(categoryID uint, page, perPage int) ([]models.Post, int64, error) {
	if _, err := s.GetByID(categoryID); err != nil {
		return nil, 0, err
	}

	offset := pageOffset(page, perPage)
	return s.postRepo.GetByCategory(categoryID, offset, perPage)
}
