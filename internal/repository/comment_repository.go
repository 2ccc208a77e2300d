package repository

import (
	"cleanlog-backend/internal/models"

	"gorm.io/gorm"
)

// ModerationFilter narrows the admin moderation listing.
type ModerationFilter string

const (
	FilterAll        ModerationFilter = "all"
	FilterUnreviewed ModerationFilter = "unreviewed"
	FilterFromAdmin  ModerationFilter = "admin"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id uint) (*models.Comment, error)
	Update(comment *models.Comment) error
	// DeleteSubtree removes the comment and every transitive reply in
	// one transaction, so no reply is left pointing at a deleted parent.
	DeleteSubtree(id uint) error
	GetVisibleByPostID(postID uint, offset, limit int) ([]models.Comment, int64, error)
	GetForModeration(filter ModerationFilter, offset, limit int) ([]models.Comment, int64, error)
	CountByPostID(postID uint) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Replied").First(&comment, id).Error
	return &comment, err
}

func (r *commentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

func (r *commentRepository) DeleteSubtree(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Breadth-first collection over the adjacency list; the reply
		// relation is acyclic so the frontier always shrinks to empty.
		doomed := []uint{id}
		frontier := []uint{id}

		for len(frontier) > 0 {
			var children []uint
			if err := tx.Model(&models.Comment{}).
				Where("replied_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}

			doomed = append(doomed, children...)
			frontier = children
		}

		return tx.Delete(&models.Comment{}, doomed).Error
	})
}

func (r *commentRepository) GetVisibleByPostID(postID uint, offset, limit int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	query := r.db.Model(&models.Comment{}).
		Where("post_id = ? AND reviewed = ?", postID, true)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Replied").
		Order("timestamp ASC").
		Offset(offset).Limit(limit).
		Find(&comments).Error

	return comments, total, err
}

func (r *commentRepository) GetForModeration(filter ModerationFilter, offset, limit int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	query := r.db.Model(&models.Comment{})
	switch filter {
	case FilterUnreviewed:
		query = query.Where("reviewed = ?", false)
	case FilterFromAdmin:
		query = query.Where("from_admin = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Post").
		Order("timestamp DESC").
		Offset(offset).Limit(limit).
		Find(&comments).Error

	return comments, total, err
}

func (r *commentRepository) CountByPostID(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
