package seed

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"cleanlog-backend/internal/models"
	"cleanlog-backend/internal/repository"
	"cleanlog-backend/pkg/logger"
)

// Faker fills the database with generated content for development.
// It writes through the repositories directly so timestamps and the
// reviewed/from_admin flags can be set to arbitrary values.
type Faker struct {
	categoryRepo repository.CategoryRepository
	topicRepo    repository.TopicRepository
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	thoughtRepo  repository.ThoughtRepository
}

func NewFaker(
	categoryRepo repository.CategoryRepository,
	topicRepo repository.TopicRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	thoughtRepo repository.ThoughtRepository,
) *Faker {
	return &Faker{
		categoryRepo: categoryRepo,
		topicRepo:    topicRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		thoughtRepo:  thoughtRepo,
	}
}

// Counts controls how much content Run generates.
type Counts struct {
	Topics   int
	Posts    int
	Comments int
	Thoughts int
}

func DefaultCounts() Counts {
	return Counts{Topics: 10, Posts: 50, Comments: 500, Thoughts: 20}
}

// Run seeds categories, topics, posts, comments and thoughts. It
// assumes the default topic and admin account already exist.
func (f *Faker) Run(counts Counts) error {
	categories, err := f.fakeCategories()
	if err != nil {
		return err
	}

	topics, err := f.fakeTopics(counts.Topics, categories)
	if err != nil {
		return err
	}

	posts, err := f.fakePosts(counts.Posts, categories, topics)
	if err != nil {
		return err
	}

	if err := f.fakeComments(counts.Comments, posts); err != nil {
		return err
	}

	if err := f.fakeThoughts(counts.Thoughts); err != nil {
		return err
	}

	logger.Info("Seeded fake content", map[string]interface{}{
		"categories": len(categories),
		"topics":     len(topics),
		"posts":      len(posts),
	})

	return nil
}

func (f *Faker) fakeCategories() ([]models.Category, error) {
	names := []string{"Math", "CS", "Physics", "Others"}
	categories := make([]models.Category, 0, len(names))

	for _, name := range names {
		exists, err := f.categoryRepo.ExistsByName(name)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		category := models.Category{Name: name}
		if err := f.categoryRepo.Create(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if len(categories) == 0 {
		return f.categoryRepo.GetAll()
	}

	return categories, nil
}

func (f *Faker) fakeTopics(count int, categories []models.Category) ([]models.Topic, error) {
	topics := make([]models.Topic, 0, count)

	for i := 0; i < count; i++ {
		name := gofakeit.Word()

		// Topic names are unique, duplicates are skipped.
		exists, err := f.topicRepo.ExistsByName(name)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		topic := models.Topic{
			Name:       name,
			CategoryID: pickCategory(categories),
		}
		if err := f.topicRepo.Create(&topic); err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}

	return topics, nil
}

func (f *Faker) fakePosts(count int, categories []models.Category, topics []models.Topic) ([]models.Post, error) {
	posts := make([]models.Post, 0, count)

	for i := 0; i < count; i++ {
		created := gofakeit.DateRange(time.Now().AddDate(-10, 0, 0), time.Now())

		post := models.Post{
			Title:      gofakeit.Sentence(6),
			Subtitle:   gofakeit.Sentence(12),
			Body:       gofakeit.Paragraph(4, 6, 15, "\n\n"),
			CategoryID: pickCategory(categories),
			TopicID:    pickTopic(topics),
			CreateTime: created,
			UpdateTime: created,
			CanComment: true,
		}
		if err := f.postRepo.Create(&post); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, nil
}

func (f *Faker) fakeComments(count int, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uint, 0, count)

	for i := 0; i < count; i++ {
		comment := f.randomComment(posts)
		comment.Reviewed = true
		if err := f.commentRepo.Create(comment); err != nil {
			return err
		}
		ids = append(ids, comment.ID)
	}

	// A tenth of the volume again as unreviewed and admin comments,
	// so the moderation queue has something to show.
	salt := count / 10
	for i := 0; i < salt; i++ {
		unreviewed := f.randomComment(posts)
		unreviewed.Reviewed = false
		if err := f.commentRepo.Create(unreviewed); err != nil {
			return err
		}

		fromAdmin := f.randomComment(posts)
		fromAdmin.Author = "Syntomic"
		fromAdmin.Email = "mima@example.com"
		fromAdmin.Site = "example.com"
		fromAdmin.FromAdmin = true
		fromAdmin.Reviewed = true
		if err := f.commentRepo.Create(fromAdmin); err != nil {
			return err
		}
	}

	// Replies, attached to already created comments.
	for i := 0; i < salt; i++ {
		parentID := ids[gofakeit.Number(0, len(ids)-1)]
		parent, err := f.commentRepo.GetByID(parentID)
		if err != nil {
			return err
		}

		reply := f.randomComment(posts)
		reply.PostID = parent.PostID
		reply.RepliedID = &parent.ID
		reply.Reviewed = true
		if err := f.commentRepo.Create(reply); err != nil {
			return err
		}
	}

	return nil
}

func (f *Faker) fakeThoughts(count int) error {
	for i := 0; i < count; i++ {
		thought := models.Thought{
			Body:      gofakeit.Sentence(10),
			Timestamp: gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()),
		}
		if err := f.thoughtRepo.Create(&thought); err != nil {
			return err
		}
	}
	return nil
}

func (f *Faker) randomComment(posts []models.Post) *models.Comment {
	post := posts[gofakeit.Number(0, len(posts)-1)]

	return &models.Comment{
		Author:    gofakeit.Name(),
		Email:     gofakeit.Email(),
		Site:      gofakeit.URL(),
		Body:      gofakeit.Sentence(10),
		Timestamp: gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()),
		PostID:    post.ID,
	}
}

func pickCategory(categories []models.Category) uint {
	if len(categories) == 0 {
		return 1
	}
	return categories[gofakeit.Number(0, len(categories)-1)].ID
}

func pickTopic(topics []models.Topic) uint {
	if len(topics) == 0 {
		return models.DefaultTopicID
	}
	return topics[gofakeit.Number(0, len(topics)-1)].ID
}