package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cleanlog-backend/internal/models"
	"cleanlog-backend/internal/repository"
	"cleanlog-backend/pkg/cache"
	"cleanlog-backend/pkg/validator"
)

type PostService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	topicRepo    repository.TopicRepository
	cache        *cache.Cache
}

func NewPostService(postRepo repository.PostRepository, categoryRepo repository.CategoryRepository, topicRepo repository.TopicRepository, cacheService *cache.Cache) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		topicRepo:    topicRepo,
		cache:        cacheService,
	}
}

// Create persists the post row. Media for the post is saved by the
// caller only after this succeeds; a post row without its image is the
// recoverable direction, an image without its row is not.
func (s *PostService) Create(req models.CreatePostRequest) (*models.Post, error) {
	if _, err := s.categoryRepo.GetByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if _, err := s.topicRepo.GetByID(req.TopicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	post := &models.Post{
		Title:      req.Title,
		Subtitle:   req.Subtitle,
		Body:       validator.SanitizeHTML(req.Body),
		CreateTime: now,
		UpdateTime: now,
		CanComment: true,
		CategoryID: req.CategoryID,
		TopicID:    req.TopicID,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.invalidateListings()
	return post, nil
}

// Update applies the given fields and always refreshes the update time,
// even when only the taxonomy changed.
func (s *PostService) Update(id uint, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.getForWrite(id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		post.CategoryID = *req.CategoryID
	}

	if req.TopicID != nil {
		if _, err := s.topicRepo.GetByID(*req.TopicID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTopicNotFound
			}
			return nil, err
		}
		post.TopicID = *req.TopicID
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Subtitle != nil {
		post.Subtitle = *req.Subtitle
	}
	if req.Body != nil {
		post.Body = validator.SanitizeHTML(*req.Body)
	}

	post.UpdateTime = time.Now().UTC()

	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.invalidate(id)
	return post, nil
}

// SetTheme records the stored image filename for a post. It does not
// count as a content edit, so UpdateTime is left alone.
func (s *PostService) SetTheme(id uint, filename string) error {
	post, err := s.getForWrite(id)
	if err != nil {
		return err
	}

	post.Theme = filename
	if err := s.postRepo.Update(post); err != nil {
		return fmt.Errorf("failed to update post theme: %w", err)
	}

	s.invalidate(id)
	return nil
}

// Delete removes the post together with its whole comment forest.
func (s *PostService) Delete(id uint) error {
	if _, err := s.getForWrite(id); err != nil {
		return err
	}

	if err := s.postRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.invalidate(id)
	return nil
}

// ToggleComments flips whether the post accepts new comments and
// returns the new state.
func (s *PostService) ToggleComments(id uint) (bool, error) {
	post, err := s.getForWrite(id)
	if err != nil {
		return false, err
	}

	post.CanComment = !post.CanComment

	if err := s.postRepo.Update(post); err != nil {
		return false, fmt.Errorf("failed to toggle comments: %w", err)
	}

	s.invalidate(id)
	return post.CanComment, nil
}

func (s *PostService) GetByID(id uint) (*models.Post, error) {
	if s.cache != nil {
		var post models.Post
		if err := s.cache.GetCachedPost(id, &post); err == nil {
			return &post, nil
		}
	}

	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.CachePost(id, post)
	}

	return post, nil
}

func (s *PostService) GetAll(page, perPage int) ([]models.Post, int64, error) {
	offset := pageOffset(page, perPage)
	return s.postRepo.GetAll(offset, perPage)
}

// getForWrite loads a post bypassing the cache, since a stale copy must
// never be the basis of a save.
func (s *PostService) getForWrite(id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) invalidate(id uint) {
	if s.cache == nil {
		return
	}
	s.cache.InvalidatePost(id)
	s.invalidateListings()
}

func (s *PostService) invalidateListings() {
	if s.cache == nil {
		return
	}
	s.cache.InvalidatePostsCache()
	s.cache.Delete("categories:with_count")
}
