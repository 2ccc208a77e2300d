package service

import (
	"errors"
	"strings"
	"testing"

	"cleanlog-backend/internal/models"
)

func newPostFixture(t *testing.T) (*PostService, *memoryPostRepository, *memoryCommentRepository, models.CreatePostRequest) {
	t.Helper()

	postRepo := newMemoryPostRepository()
	commentRepo := newMemoryCommentRepository()
	postRepo.comments = commentRepo

	categoryRepo := newMemoryCategoryRepository()
	topicRepo := newMemoryTopicRepository(postRepo)

	category := &models.Category{Name: "CS"}
	if err := categoryRepo.Create(category); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	topic := &models.Topic{Name: "Compilers", CategoryID: category.ID}
	if err := topicRepo.Create(topic); err != nil {
		t.Fatalf("failed to create topic: %v", err)
	}

	service := NewPostService(postRepo, categoryRepo, topicRepo, nil)
	req := models.CreatePostRequest{
		Title:      "Parsing by hand",
		Subtitle:   "a recursive descent walkthrough",
		Body:       "<p>content</p>",
		CategoryID: category.ID,
		TopicID:    topic.ID,
	}
	return service, postRepo, commentRepo, req
}

func TestPostService_Create(t *testing.T) {
	service, _, _, req := newPostFixture(t)

	post, err := service.Create(req)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !post.CanComment {
		t.Fatal("new posts should accept comments")
	}
	if post.CreateTime.IsZero() || !post.CreateTime.Equal(post.UpdateTime) {
		t.Fatalf("expected create and update time set together, got %v and %v",
			post.CreateTime, post.UpdateTime)
	}
}

func TestPostService_CreateValidatesTaxonomy(t *testing.T) {
	service, _, _, req := newPostFixture(t)

	bad := req
	bad.CategoryID = 99
	if _, err := service.Create(bad); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	bad = req
	bad.TopicID = 99
	if _, err := service.Create(bad); !errors.Is(err, ErrTopicNotFound) {
		t.Fatalf("expected ErrTopicNotFound, got %v", err)
	}
}

func TestPostService_CreateSanitizesBody(t *testing.T) {
	service, _, _, req := newPostFixture(t)

	req.Body = `<p>fine</p><script>alert("x")</script>`
	post, err := service.Create(req)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if strings.Contains(post.Body, "script") {
		t.Fatalf("expected script stripped, got %q", post.Body)
	}
	if !strings.Contains(post.Body, "<p>fine</p>") {
		t.Fatalf("expected safe markup kept, got %q", post.Body)
	}
}

func TestPostService_UpdateRefreshesUpdateTime(t *testing.T) {
	service, _, _, req := newPostFixture(t)

	post, err := service.Create(req)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	title := "New title"
	updated, err := service.Update(post.ID, models.UpdatePostRequest{Title: &title})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "New title" {
		t.Fatalf("expected title applied, got %q", updated.Title)
	}
	if updated.Subtitle != post.Subtitle {
		t.Fatal("expected untouched fields preserved")
	}
	if !updated.UpdateTime.After(post.UpdateTime) {
		t.Fatal("expected update time refreshed")
	}
	if !updated.CreateTime.Equal(post.CreateTime) {
		t.Fatal("expected create time untouched")
	}
}

func TestPostService_SetThemeKeepsUpdateTime(t *testing.T) {
	service, postRepo, _, req := newPostFixture(t)

	post, err := service.Create(req)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := service.SetTheme(post.ID, "cover.png"); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}

	stored, _ := postRepo.GetByID(post.ID)
	if stored.Theme != "cover.png" {
		t.Fatalf("expected theme recorded, got %q", stored.Theme)
	}
	if !stored.UpdateTime.Equal(post.UpdateTime) {
		t.Fatal("setting a theme must not count as a content edit")
	}
}

func TestPostService_ToggleComments(t *testing.T) {
	service, _, _, req := newPostFixture(t)

	post, err := service.Create(req)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	open, err := service.ToggleComments(post.ID)
	if err != nil {
		t.Fatalf("ToggleComments returned error: %v", err)
	}
	if open {
		t.Fatal("expected comments closed after first toggle")
	}

	open, err = service.ToggleComments(post.ID)
	if err != nil {
		t.Fatalf("second ToggleComments returned error: %v", err)
	}
	if !open {
		t.Fatal("expected comments reopened after second toggle")
	}
}

func TestPostService_DeleteCascadesComments(t *testing.T) {
	service, _, commentRepo, req := newPostFixture(t)

	post, err := service.Create(req)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	commentRepo.Create(&models.Comment{Author: "a", Body: "one", PostID: post.ID})
	commentRepo.Create(&models.Comment{Author: "b", Body: "two", PostID: post.ID})

	if err := service.Delete(post.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := service.GetByID(post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound after delete, got %v", err)
	}
	count, _ := commentRepo.CountByPostID(post.ID)
	if count != 0 {
		t.Fatalf("expected comments removed with the post, got %d", count)
	}
}
