package service

import (
	"errors"
	"testing"
	"time"

	"cleanlog-backend/internal/models"
	"cleanlog-backend/internal/repository"
)

func newCommentFixture(t *testing.T) (*CommentService, *memoryCommentRepository, *models.Post) {
	t.Helper()

	commentRepo := newMemoryCommentRepository()
	postRepo := newMemoryPostRepository()

	post := &models.Post{Title: "post", CanComment: true, CategoryID: 1, TopicID: 1}
	if err := postRepo.Create(post); err != nil {
		t.Fatalf("failed to create post: %v", err)
	}

	return NewCommentService(commentRepo, postRepo), commentRepo, post
}

func guestComment() models.CreateCommentRequest {
	return models.CreateCommentRequest{
		Author: "Reader",
		Email:  "reader@example.com",
		Body:   "nice post",
	}
}

func TestCommentService_CreateStartsUnreviewed(t *testing.T) {
	service, _, post := newCommentFixture(t)

	comment, err := service.Create(post.ID, guestComment(), false)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if comment.Reviewed {
		t.Fatal("guest comment must start unreviewed")
	}
	if comment.FromAdmin {
		t.Fatal("guest comment must not be marked from admin")
	}
}

func TestCommentService_AdminCommentSkipsModeration(t *testing.T) {
	service, _, post := newCommentFixture(t)

	comment, err := service.Create(post.ID, guestComment(), true)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !comment.FromAdmin || !comment.Reviewed {
		t.Fatalf("admin comment should be reviewed and flagged, got from_admin=%v reviewed=%v",
			comment.FromAdmin, comment.Reviewed)
	}
}

func TestCommentService_CreateRejectsBadEmail(t *testing.T) {
	service, _, post := newCommentFixture(t)

	req := guestComment()
	req.Email = "not-an-address"

	if _, err := service.Create(post.ID, req, false); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestCommentService_CreateTrimsAuthorFields(t *testing.T) {
	service, _, post := newCommentFixture(t)

	req := guestComment()
	req.Author = "  Reader  "
	req.Email = " reader@example.com "
	req.Site = " https://example.com "

	comment, err := service.Create(post.ID, req, false)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if comment.Author != "Reader" {
		t.Fatalf("expected trimmed author, got %q", comment.Author)
	}
	if comment.Email != "reader@example.com" {
		t.Fatalf("expected trimmed email, got %q", comment.Email)
	}
	if comment.Site != "https://example.com" {
		t.Fatalf("expected trimmed site, got %q", comment.Site)
	}
}

func TestCommentService_CountForPost(t *testing.T) {
	service, _, post := newCommentFixture(t)

	if _, err := service.Create(post.ID, guestComment(), false); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := service.Create(post.ID, guestComment(), true); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// The count includes unreviewed comments.
	count, err := service.CountForPost(post.ID)
	if err != nil {
		t.Fatalf("CountForPost returned error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 comments counted, got %d", count)
	}

	count, err = service.CountForPost(99)
	if err != nil {
		t.Fatalf("CountForPost returned error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 comments for unknown post, got %d", count)
	}
}

func TestCommentService_CreateOnClosedPost(t *testing.T) {
	commentRepo := newMemoryCommentRepository()
	postRepo := newMemoryPostRepository()
	post := &models.Post{Title: "closed", CanComment: false, CategoryID: 1, TopicID: 1}
	if err := postRepo.Create(post); err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	service := NewCommentService(commentRepo, postRepo)

	if _, err := service.Create(post.ID, guestComment(), false); !errors.Is(err, ErrCommentsDisabled) {
		t.Fatalf("expected ErrCommentsDisabled, got %v", err)
	}
}

func TestCommentService_CreateOnMissingPost(t *testing.T) {
	service, _, _ := newCommentFixture(t)

	if _, err := service.Create(99, guestComment(), false); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestCommentService_ReplyValidation(t *testing.T) {
	commentRepo := newMemoryCommentRepository()
	postRepo := newMemoryPostRepository()
	first := &models.Post{Title: "first", CanComment: true, CategoryID: 1, TopicID: 1}
	second := &models.Post{Title: "second", CanComment: true, CategoryID: 1, TopicID: 1}
	postRepo.Create(first)
	postRepo.Create(second)
	service := NewCommentService(commentRepo, postRepo)

	parent, err := service.Create(first.ID, guestComment(), false)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Reply target on a different post is rejected.
	req := guestComment()
	req.RepliedID = &parent.ID
	if _, err := service.Create(second.ID, req, false); !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("expected ErrParentNotFound for cross-post reply, got %v", err)
	}

	missing := uint(99)
	req.RepliedID = &missing
	if _, err := service.Create(first.ID, req, false); !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("expected ErrParentNotFound for missing parent, got %v", err)
	}

	req.RepliedID = &parent.ID
	reply, err := service.Create(first.ID, req, false)
	if err != nil {
		t.Fatalf("valid reply returned error: %v", err)
	}
	if reply.RepliedID == nil || *reply.RepliedID != parent.ID {
		t.Fatal("expected reply to record its parent")
	}
}

func TestCommentService_BodyIsSanitized(t *testing.T) {
	service, _, post := newCommentFixture(t)

	req := guestComment()
	req.Body = "<b>hello</b> world"
	comment, err := service.Create(post.ID, req, false)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if comment.Body != "hello world" {
		t.Fatalf("expected markup stripped, got %q", comment.Body)
	}
}

func TestCommentService_ApproveIsIdempotent(t *testing.T) {
	service, commentRepo, post := newCommentFixture(t)

	comment, err := service.Create(post.ID, guestComment(), false)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := service.Approve(comment.ID); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	stored, _ := commentRepo.GetByID(comment.ID)
	if !stored.Reviewed {
		t.Fatal("expected comment reviewed after approval")
	}

	if err := service.Approve(comment.ID); err != nil {
		t.Fatalf("second Approve returned error: %v", err)
	}

	if err := service.Approve(99); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestCommentService_DeleteRemovesReplySubtree(t *testing.T) {
	service, commentRepo, post := newCommentFixture(t)

	root, _ := service.Create(post.ID, guestComment(), false)
	sibling, _ := service.Create(post.ID, guestComment(), false)

	childReq := guestComment()
	childReq.RepliedID = &root.ID
	child, _ := service.Create(post.ID, childReq, false)

	grandchildReq := guestComment()
	grandchildReq.RepliedID = &child.ID
	grandchild, _ := service.Create(post.ID, grandchildReq, false)

	if err := service.Delete(root.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	for _, id := range []uint{root.ID, child.ID, grandchild.ID} {
		if _, err := commentRepo.GetByID(id); err == nil {
			t.Fatalf("expected comment %d removed with the subtree", id)
		}
	}
	if _, err := commentRepo.GetByID(sibling.ID); err != nil {
		t.Fatal("expected unrelated comment to survive")
	}
}

func TestCommentService_ListVisibleOrdersOldestFirst(t *testing.T) {
	service, commentRepo, post := newCommentFixture(t)

	newer := &models.Comment{Author: "a", Body: "newer", Reviewed: true, PostID: post.ID, Timestamp: time.Now()}
	older := &models.Comment{Author: "b", Body: "older", Reviewed: true, PostID: post.ID, Timestamp: time.Now().Add(-time.Hour)}
	hidden := &models.Comment{Author: "c", Body: "hidden", Reviewed: false, PostID: post.ID, Timestamp: time.Now()}
	commentRepo.Create(newer)
	commentRepo.Create(older)
	commentRepo.Create(hidden)

	comments, total, err := service.ListVisible(post.ID, 1, 10)
	if err != nil {
		t.Fatalf("ListVisible returned error: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 visible comments, got %d", total)
	}
	if comments[0].Body != "older" || comments[1].Body != "newer" {
		t.Fatalf("expected oldest first, got %q then %q", comments[0].Body, comments[1].Body)
	}
}

func TestCommentService_ListForModerationFilters(t *testing.T) {
	service, commentRepo, post := newCommentFixture(t)

	commentRepo.Create(&models.Comment{Author: "a", Reviewed: true, PostID: post.ID, Timestamp: time.Now()})
	commentRepo.Create(&models.Comment{Author: "b", Reviewed: false, PostID: post.ID, Timestamp: time.Now()})
	commentRepo.Create(&models.Comment{Author: "c", Reviewed: true, FromAdmin: true, PostID: post.ID, Timestamp: time.Now()})

	_, total, err := service.ListForModeration(repository.FilterUnreviewed, 1, 10)
	if err != nil {
		t.Fatalf("ListForModeration returned error: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 unreviewed comment, got %d", total)
	}

	_, total, _ = service.ListForModeration(repository.FilterFromAdmin, 1, 10)
	if total != 1 {
		t.Fatalf("expected 1 admin comment, got %d", total)
	}

	// Unknown filter values fall back to the full listing.
	_, total, _ = service.ListForModeration(repository.ModerationFilter("bogus"), 1, 10)
	if total != 3 {
		t.Fatalf("expected fallback to all comments, got %d", total)
	}
}
