package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cleanlog-backend/internal/models"
	"cleanlog-backend/internal/repository"
)

type ThoughtService struct {
	thoughtRepo repository.ThoughtRepository
}

func NewThoughtService(thoughtRepo repository.ThoughtRepository) *ThoughtService {
	return &ThoughtService{thoughtRepo: thoughtRepo}
}

func (s *ThoughtService) Create(req models.ThoughtRequest) (*models.Thought, error) {
	thought := &models.Thought{
		Body:      req.Body,
		Timestamp: time.Now().UTC(),
	}

	if err := s.thoughtRepo.Create(thought); err != nil {
		return nil, fmt.Errorf("failed to create thought: %w", err)
	}

	return thought, nil
}

func (s *ThoughtService) Update(id uint, req models.ThoughtRequest) (*models.Thought, error) {
	thought, err := s.thoughtRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThoughtNotFound
		}
		return nil, err
	}

	thought.Body = req.Body

	if err := s.thoughtRepo.Update(thought); err != nil {
		return nil, fmt.Errorf("failed to update thought: %w", err)
	}

	return thought, nil
}

func (s *ThoughtService) Delete(id uint) error {
	if _, err := s.thoughtRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrThoughtNotFound
		}
		return err
	}

	return s.thoughtRepo.Delete(id)
}

// List returns thoughts newest first.
func (s *ThoughtService) List(page, perPage int) ([]models.Thought, int64, error) {
	offset := pageOffset(page, perPage)
	return s.thoughtRepo.GetAll(offset, perPage)
}
