package repository

import (
	"cleanlog-backend/internal/models"

	"gorm.io/gorm"
)

type TopicRepository interface {
	Create(topic *models.Topic) error
	GetByID(id uint) (*models.Topic, error)
	GetAll() ([]models.Topic, error)
	Update(topic *models.Topic) error
	ExistsByName(name string) (bool, error)
	// SyncIDSequence advances the id sequence past the highest assigned
	// id. Inserting a row with an explicit id leaves the sequence where
	// it was, so the next auto-id insert would collide.
	SyncIDSequence() error
	// DeleteReassigningPosts moves every post under the topic to the
	// replacement topic and removes the topic row, all in one transaction.
	DeleteReassigningPosts(id, replacementID uint) error
}

type topicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) Create(topic *models.Topic) error {
	return r.db.Create(topic).Error
}

func (r *topicRepository) GetByID(id uint) (*models.Topic, error) {
	var topic models.Topic
	err := r.db.Preload("Category").First(&topic, id).Error
	return &topic, err
}

func (r *topicRepository) GetAll() ([]models.Topic, error) {
	var topics []models.Topic
	err := r.db.Preload("Category").Order("name ASC").Find(&topics).Error
	return topics, err
}

func (r *topicRepository) Update(topic *models.Topic) error {
	return r.db.Save(topic).Error
}

func (r *topicRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Topic{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *topicRepository) SyncIDSequence() error {
	return r.db.Exec(
		"SELECT setval(pg_get_serial_sequence('topics', 'id'), GREATEST((SELECT COALESCE(MAX(id), 1) FROM topics), 1))",
	).Error
}

func (r *topicRepository) DeleteReassigningPosts(id, replacementID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("topic_id = ?", id).
			Update("topic_id", replacementID).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Topic{}, id).Error
	})
}
