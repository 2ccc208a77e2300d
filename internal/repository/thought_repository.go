package repository

import (
	"cleanlog-backend/internal/models"

	"gorm.io/gorm"
)

type ThoughtRepository interface {
	Create(thought *models.Thought) error
	GetByID(id uint) (*models.Thought, error)
	GetAll(offset, limit int) ([]models.Thought, int64, error)
	Update(thought *models.Thought) error
	Delete(id uint) error
}

type thoughtRepository struct {
	db *gorm.DB
}

func NewThoughtRepository(db *gorm.DB) ThoughtRepository {
	return &thoughtRepository{db: db}
}

func (r *thoughtRepository) Create(thought *models.Thought) error {
	return r.db.Create(thought).Error
}

func (r *thoughtRepository) GetByID(id uint) (*models.Thought, error) {
	var thought models.Thought
	err := r.db.First(&thought, id).Error
	return &thought, err
}

func (r *thoughtRepository) GetAll(offset, limit int) ([]models.Thought, int64, error) {
	var thoughts []models.Thought
	var total int64

	if err := r.db.Model(&models.Thought{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("timestamp DESC").
		Offset(offset).Limit(limit).
		Find(&thoughts).Error

	return thoughts, total, err
}

func (r *thoughtRepository) Update(thought *models.Thought) error {
	return r.db.Save(thought).Error
}

func (r *thoughtRepository) Delete(id uint) error {
	return r.db.Delete(&models.Thought{}, id).Error
}
