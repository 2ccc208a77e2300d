package service

import (
	"errors"
	"testing"

	"cleanlog-backend/internal/models"
)

func TestThoughtService_CreateAndList(t *testing.T) {
	service := NewThoughtService(newMemoryThoughtRepository())

	first, err := service.Create(models.ThoughtRequest{Body: "first thought"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if first.Timestamp.IsZero() {
		t.Fatal("expected timestamp set on creation")
	}

	second, err := service.Create(models.ThoughtRequest{Body: "second thought"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	thoughts, total, err := service.List(1, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 thoughts, got %d", total)
	}
	if thoughts[0].ID != second.ID {
		t.Fatalf("expected newest first, got id %d", thoughts[0].ID)
	}
}

func TestThoughtService_UpdateAndDelete(t *testing.T) {
	service := NewThoughtService(newMemoryThoughtRepository())

	thought, err := service.Create(models.ThoughtRequest{Body: "draft"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := service.Update(thought.ID, models.ThoughtRequest{Body: "edited"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Body != "edited" {
		t.Fatalf("expected body replaced, got %q", updated.Body)
	}

	if _, err := service.Update(99, models.ThoughtRequest{Body: "x"}); !errors.Is(err, ErrThoughtNotFound) {
		t.Fatalf("expected ErrThoughtNotFound, got %v", err)
	}

	if err := service.Delete(thought.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := service.Delete(thought.ID); !errors.Is(err, ErrThoughtNotFound) {
		t.Fatalf("expected ErrThoughtNotFound after delete, got %v", err)
	}
}
