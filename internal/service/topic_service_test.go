package service

import (
	"errors"
	"testing"

	"cleanlog-backend/internal/models"
)

func newTopicFixture() (*TopicService, *memoryTopicRepository, *memoryCategoryRepository, *memoryPostRepository) {
	postRepo := newMemoryPostRepository()
	topicRepo := newMemoryTopicRepository(postRepo)
	categoryRepo := newMemoryCategoryRepository()
	service := NewTopicService(topicRepo, categoryRepo, postRepo, nil)
	return service, topicRepo, categoryRepo, postRepo
}

func TestTopicService_EnsureDefaultTopic(t *testing.T) {
	service, _, categoryRepo, _ := newTopicFixture()

	topic, created, err := service.EnsureDefaultTopic()
	if err != nil {
		t.Fatalf("EnsureDefaultTopic returned error: %v", err)
	}
	if !created {
		t.Fatal("expected default topic to be created on empty database")
	}
	if topic.ID != models.DefaultTopicID {
		t.Fatalf("expected default topic id %d, got %d", models.DefaultTopicID, topic.ID)
	}

	// A fallback category must have been created to hold it.
	categories, _ := categoryRepo.GetAll()
	if len(categories) != 1 {
		t.Fatalf("expected one fallback category, got %d", len(categories))
	}

	_, created, err = service.EnsureDefaultTopic()
	if err != nil {
		t.Fatalf("second EnsureDefaultTopic returned error: %v", err)
	}
	if created {
		t.Fatal("expected second call to find the existing topic")
	}
}

func TestTopicService_CreateAfterDefaultBootstrap(t *testing.T) {
	service, _, categoryRepo, _ := newTopicFixture()

	if _, _, err := service.EnsureDefaultTopic(); err != nil {
		t.Fatalf("EnsureDefaultTopic returned error: %v", err)
	}

	// The bootstrap inserts the default topic with an explicit id, which
	// leaves the id sequence untouched. The very next regular create must
	// still get a fresh id instead of colliding with the default topic.
	categories, _ := categoryRepo.GetAll()
	topic, err := service.Create(models.CreateTopicRequest{Name: "Compilers", CategoryID: categories[0].ID})
	if err != nil {
		t.Fatalf("Create after bootstrap returned error: %v", err)
	}
	if topic.ID == models.DefaultTopicID {
		t.Fatalf("expected a fresh topic id, got the default topic id %d", topic.ID)
	}
}

func TestTopicService_DefaultTopicProtected(t *testing.T) {
	service, _, categoryRepo, _ := newTopicFixture()

	if _, _, err := service.EnsureDefaultTopic(); err != nil {
		t.Fatalf("EnsureDefaultTopic returned error: %v", err)
	}

	categories, _ := categoryRepo.GetAll()
	req := models.UpdateTopicRequest{Name: "Renamed", CategoryID: categories[0].ID}

	if _, err := service.Update(models.DefaultTopicID, req); !errors.Is(err, ErrDefaultTopicProtected) {
		t.Fatalf("Update: expected ErrDefaultTopicProtected, got %v", err)
	}
	if err := service.SetTheme(models.DefaultTopicID, "theme.png"); !errors.Is(err, ErrDefaultTopicProtected) {
		t.Fatalf("SetTheme: expected ErrDefaultTopicProtected, got %v", err)
	}
	if err := service.Delete(models.DefaultTopicID); !errors.Is(err, ErrDefaultTopicProtected) {
		t.Fatalf("Delete: expected ErrDefaultTopicProtected, got %v", err)
	}
}

func TestTopicService_CreateDuplicateName(t *testing.T) {
	service, _, categoryRepo, _ := newTopicFixture()

	category := &models.Category{Name: "CS"}
	if err := categoryRepo.Create(category); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	if _, err := service.Create(models.CreateTopicRequest{Name: "Compilers", CategoryID: category.ID}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	_, err := service.Create(models.CreateTopicRequest{Name: "Compilers", CategoryID: category.ID})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestTopicService_CreateUnknownCategory(t *testing.T) {
	service, _, _, _ := newTopicFixture()

	_, err := service.Create(models.CreateTopicRequest{Name: "Orphan", CategoryID: 42})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestTopicService_DeleteReassignsPosts(t *testing.T) {
	service, topicRepo, categoryRepo, postRepo := newTopicFixture()

	if _, _, err := service.EnsureDefaultTopic(); err != nil {
		t.Fatalf("EnsureDefaultTopic returned error: %v", err)
	}

	categories, _ := categoryRepo.GetAll()
	topic, err := service.Create(models.CreateTopicRequest{Name: "Doomed", CategoryID: categories[0].ID})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	for i := 0; i < 3; i++ {
		post := &models.Post{Title: "post", CategoryID: categories[0].ID, TopicID: topic.ID}
		if err := postRepo.Create(post); err != nil {
			t.Fatalf("failed to create post: %v", err)
		}
	}

	if err := service.Delete(topic.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := topicRepo.GetByID(topic.ID); err == nil {
		t.Fatal("expected topic to be gone after delete")
	}

	count, _ := postRepo.CountByTopic(models.DefaultTopicID)
	if count != 3 {
		t.Fatalf("expected 3 posts reassigned to the default topic, got %d", count)
	}
	orphaned, _ := postRepo.CountByTopic(topic.ID)
	if orphaned != 0 {
		t.Fatalf("expected no posts left on the deleted topic, got %d", orphaned)
	}
}

func TestTopicService_DeleteUnknownTopic(t *testing.T) {
	service, _, _, _ := newTopicFixture()

	if err := service.Delete(99); !errors.Is(err, ErrTopicNotFound) {
		t.Fatalf("expected ErrTopicNotFound, got %v", err)
	}
}
