package repository

import (
	"cleanlog-backend/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	GetAll() ([]models.Category, error)
	ExistsByName(name string) (bool, error)
	GetWithPostCount() ([]CategoryWithCount, error)
}

type CategoryWithCount struct {
	models.Category
	PostCount int64 `json:"post_count"`
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	return &category, err
}

func (r *categoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *categoryRepository) GetWithPostCount() ([]CategoryWithCount, error) {
	var categories []CategoryWithCount
	err := r.db.Model(&models.Category{}).
		Select("categories.*, COUNT(posts.id) as post_count").
		Joins("LEFT JOIN posts ON posts.category_id = categories.id").
		Group("categories.id").
		Order("categories.name ASC").
		Scan(&categories).Error
	return categories, err
}
