package repository

import (
	"cleanlog-backend/internal/models"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	GetAll(offset, limit int) ([]models.Post, int64, error)
	GetByCategory(categoryID uint, offset, limit int) ([]models.Post, int64, error)
	GetByTopic(topicID uint, offset, limit int) ([]models.Post, int64, error)
	Update(post *models.Post) error
	// Delete removes the post and its whole comment forest in one
	// transaction, so no comment can outlive its post.
	Delete(id uint) error
	CountByTopic(topicID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Category").Preload("Topic").First(&post, id).Error
	return &post, err
}

func (r *postRepository) GetAll(offset, limit int) ([]models.Post, int64, error) {
	return r.list(r.db.Model(&models.Post{}), offset, limit)
}

func (r *postRepository) GetByCategory(categoryID uint, offset, limit int) ([]models.Post, int64, error) {
	return r.list(r.db.Model(&models.Post{}).Where("category_id = ?", categoryID), offset, limit)
}

func (r *postRepository) GetByTopic(topicID uint, offset, limit int) ([]models.Post, int64, error) {
	return r.list(r.db.Model(&models.Post{}).Where("topic_id = ?", topicID), offset, limit)
}

func (r *postRepository) list(query *gorm.DB, offset, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Category").Preload("Topic").
		Order("create_time DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error

	return posts, total, err
}

func (r *postRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

func (r *postRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Post{}, id).Error
	})
}

func (r *postRepository) CountByTopic(topicID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("topic_id = ?", topicID).Count(&count).Error
	return count, err
}
