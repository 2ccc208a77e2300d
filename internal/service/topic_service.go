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

// TopicService enforces the taxonomy rules around topics, in particular
// the protection of the default topic and the reassign-on-delete policy.
type TopicService struct {
	topicRepo    repository.TopicRepository
	categoryRepo repository.CategoryRepository
	postRepo     repository.PostRepository
	cache        *cache.Cache
}

func NewTopicService(topicRepo repository.TopicRepository, categoryRepo repository.CategoryRepository, postRepo repository.PostRepository, cacheService *cache.Cache) *TopicService {
	return &TopicService{
		topicRepo:    topicRepo,
		categoryRepo: categoryRepo,
		postRepo:     postRepo,
		cache:        cacheService,
	}
}

// EnsureDefaultTopic creates the permanent default topic (and its backing
// category if missing). It reports whether the topic was created.
func (s *TopicService) EnsureDefaultTopic() (*models.Topic, bool, error) {
	topic, err := s.topicRepo.GetByID(models.DefaultTopicID)
	if err == nil {
		return topic, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to verify default topic: %w", err)
	}

	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, false, fmt.Errorf("failed to list categories: %w", err)
	}

	var categoryID uint
	if len(categories) > 0 {
		categoryID = categories[0].ID
	} else {
		category := &models.Category{Name: "Others"}
		if err := s.categoryRepo.Create(category); err != nil {
			return nil, false, fmt.Errorf("failed to create fallback category: %w", err)
		}
		categoryID = category.ID
	}

	topic = &models.Topic{
		ID:          models.DefaultTopicID,
		Name:        "General",
		Description: "Default topic for posts without a home",
		CategoryID:  categoryID,
	}

	if err := s.topicRepo.Create(topic); err != nil {
		return nil, false, fmt.Errorf("failed to create default topic: %w", err)
	}

	// The explicit-id insert does not move the id sequence, so the next
	// regular insert would be handed id 1 again.
	if err := s.topicRepo.SyncIDSequence(); err != nil {
		return nil, false, fmt.Errorf("failed to sync topic id sequence: %w", err)
	}

	return topic, true, nil
}

func (s *TopicService) Create(req models.CreateTopicRequest) (*models.Topic, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("topic name is required")
	}

	exists, err := s.topicRepo.ExistsByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to check topic existence: %w", err)
	}
	if exists {
		return nil, ErrDuplicateName
	}

	if _, err := s.categoryRepo.GetByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	topic := &models.Topic{
		Name:        name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}

	if err := s.topicRepo.Create(topic); err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}

	s.invalidate(topic.ID)
	return topic, nil
}

func (s *TopicService) Update(id uint, req models.UpdateTopicRequest) (*models.Topic, error) {
	if id == models.DefaultTopicID {
		return nil, ErrDefaultTopicProtected
	}

	topic, err := s.topicRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name != topic.Name {
		exists, err := s.topicRepo.ExistsByName(name)
		if err != nil {
			return nil, fmt.Errorf("failed to check topic existence: %w", err)
		}
		if exists {
			return nil, ErrDuplicateName
		}
	}

	if _, err := s.categoryRepo.GetByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	topic.Name = name
	topic.Description = req.Description
	topic.CategoryID = req.CategoryID

	if err := s.topicRepo.Update(topic); err != nil {
		return nil, fmt.Errorf("failed to update topic: %w", err)
	}

	s.invalidate(id)
	return topic, nil
}

// SetTheme records the stored image filename for a topic. The default
// topic is immutable, theme included.
func (s *TopicService) SetTheme(id uint, filename string) error {
	if id == models.DefaultTopicID {
		return ErrDefaultTopicProtected
	}

	topic, err := s.topicRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTopicNotFound
		}
		return err
	}

	topic.Theme = filename
	if err := s.topicRepo.Update(topic); err != nil {
		return fmt.Errorf("failed to update topic theme: %w", err)
	}

	s.invalidate(id)
	return nil
}

// Delete removes a topic after moving every one of its posts to the
// default topic. The reassignment and the removal are one transaction:
// either both happen or neither does.
func (s *TopicService) Delete(id uint) error {
	if id == models.DefaultTopicID {
		return ErrDefaultTopicProtected
	}

	if _, err := s.topicRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTopicNotFound
		}
		return err
	}

	if err := s.topicRepo.DeleteReassigningPosts(id, models.DefaultTopicID); err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}

	s.invalidate(id)
	if s.cache != nil {
		s.cache.InvalidatePostsCache()
	}

	return nil
}

func (s *TopicService) GetByID(id uint) (*models.Topic, error) {
	if s.cache != nil {
		var topic models.Topic
		if err := s.cache.GetCachedTopic(id, &topic); err == nil {
			return &topic, nil
		}
	}

	topic, err := s.topicRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.CacheTopic(id, topic)
	}

	return topic, nil
}

func (s *TopicService) GetAll() ([]models.Topic, error) {
	if s.cache != nil {
		var topics []models.Topic
		if err := s.cache.Get("topics:all", &topics); err == nil {
			return topics, nil
		}
	}

	topics, err := s.topicRepo.GetAll()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set("topics:all", topics, cacheListTTL)
	}

	return topics, nil
}

// GetPosts lists the topic's posts, newest first.
func (s *TopicService) GetPosts(topicID uint, page, perPage int) ([]models.Post, int64, error) {
	if _, err := s.GetByID(topicID); err != nil {
		return nil, 0, err
	}

	offset := pageOffset(page, perPage)
	return s.postRepo.GetByTopic(topicID, offset, perPage)
}

func (s *TopicService) invalidate(id uint) {
	if s.cache == nil {
		return
	}
	s.cache.InvalidateTopic(id)
	s.cache.Delete("topics:all")
}
