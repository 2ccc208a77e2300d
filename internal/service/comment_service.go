package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cleanlog-backend/internal/models"
	"cleanlog-backend/internal/repository"
	"cleanlog-backend/pkg/validator"
)

// CommentService manages the per-post reply forest and the moderation
// gate: unreviewed comments exist but are invisible to the public.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// Create posts a comment. Admin comments bypass moderation; everything
// else starts unreviewed. A reply target must be an existing comment on
// the same post.
func (s *CommentService) Create(postID uint, req models.CreateCommentRequest, isAdmin bool) (*models.Comment, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if !post.CanComment {
		return nil, ErrCommentsDisabled
	}

	// Transport binding already checks the email shape, but comments can
	// also arrive through non-HTTP callers.
	email := validator.TrimSpaces(req.Email)
	if !validator.ValidateEmail(email) {
		return nil, ErrInvalidEmail
	}

	if req.RepliedID != nil {
		parent, err := s.commentRepo.GetByID(*req.RepliedID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, ErrParentNotFound
		}
	}

	comment := &models.Comment{
		Author:    validator.TrimSpaces(req.Author),
		Email:     email,
		Site:      validator.TrimSpaces(req.Site),
		Body:      validator.SanitizeString(req.Body),
		FromAdmin: isAdmin,
		Reviewed:  isAdmin,
		Timestamp: time.Now().UTC(),
		PostID:    postID,
		RepliedID: req.RepliedID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// Approve marks a comment as reviewed. Approving an already reviewed
// comment is a no-op.
func (s *CommentService) Approve(id uint) error {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.Reviewed {
		return nil
	}

	comment.Reviewed = true
	if err := s.commentRepo.Update(comment); err != nil {
		return fmt.Errorf("failed to approve comment: %w", err)
	}

	return nil
}

// Delete removes a comment and, transitively, every reply beneath it.
func (s *CommentService) Delete(id uint) error {
	if _, err := s.commentRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if err := s.commentRepo.DeleteSubtree(id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

// CountForPost reports how many comments a post has, reviewed or not.
func (s *CommentService) CountForPost(postID uint) (int64, error) {
	return s.commentRepo.CountByPostID(postID)
}

// ListVisible returns the reviewed comments of a post, oldest first.
func (s *CommentService) ListVisible(postID uint, page, perPage int) ([]models.Comment, int64, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrPostNotFound
		}
		return nil, 0, err
	}

	offset := pageOffset(page, perPage)
	return s.commentRepo.GetVisibleByPostID(postID, offset, perPage)
}

// ListForModeration returns comments for the admin view, newest first.
func (s *CommentService) ListForModeration(filter repository.ModerationFilter, page, perPage int) ([]models.Comment, int64, error) {
	switch filter {
	case repository.FilterAll, repository.FilterUnreviewed, repository.FilterFromAdmin:
	default:
		filter = repository.FilterAll
	}

	offset := pageOffset(page, perPage)
	return s.commentRepo.GetForModeration(filter, offset, perPage)
}
