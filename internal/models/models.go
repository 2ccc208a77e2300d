package models

import (
	"time"
)

// Admin is the single site-owner record, addressed by AdminRecordID.
// It is created once by the bootstrap command and never deleted.
type Admin struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username     string `gorm:"uniqueIndex;size:20;not null" json:"username"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	Name         string `gorm:"size:30" json:"name"`
	BlogTitle    string `gorm:"size:60" json:"blog_title"`
	About        string `gorm:"type:text" json:"about"`
}

// AdminRecordID is the well-known identifier of the site owner row.
const AdminRecordID uint = 1

type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"uniqueIndex;size:30;not null" json:"name"`

	Topics []Topic `gorm:"foreignKey:CategoryID" json:"topics,omitempty"`
	Posts  []Post  `gorm:"foreignKey:CategoryID" json:"posts,omitempty"`
}

// Topic groups posts under a category. The topic with ID DefaultTopicID
// is permanent: it absorbs the posts of any deleted topic and can itself
// be neither edited nor deleted.
type Topic struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `gorm:"uniqueIndex;size:20;not null" json:"name"`
	Theme       string `gorm:"size:60" json:"theme"`
	Description string `gorm:"size:255" json:"description"`

	CategoryID uint     `gorm:"not null" json:"category_id"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	Posts []Post `gorm:"foreignKey:TopicID" json:"posts,omitempty"`
}

const DefaultTopicID uint = 1

type Post struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreateTime time.Time `gorm:"column:create_time;index" json:"create_time"`
	UpdateTime time.Time `gorm:"column:update_time" json:"update_time"`

	Title      string `gorm:"size:60;not null" json:"title"`
	Subtitle   string `gorm:"size:255" json:"subtitle"`
	Theme      string `gorm:"size:60" json:"theme"`
	Body       string `gorm:"type:text" json:"body"`
	CanComment bool   `gorm:"default:true" json:"can_comment"`

	CategoryID uint     `gorm:"not null" json:"category_id"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	TopicID    uint     `gorm:"not null" json:"topic_id"`
	Topic      Topic    `gorm:"foreignKey:TopicID" json:"topic,omitempty"`

	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

// Comment belongs to one post and may reply to another comment on the
// same post. RepliedID forms an adjacency list; the reply relation is a
// forest rooted at the top-level comments of each post.
type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`

	Author    string `gorm:"size:30" json:"author"`
	Email     string `gorm:"size:254" json:"email"`
	Site      string `gorm:"size:255" json:"site"`
	Body      string `gorm:"type:text" json:"body"`
	FromAdmin bool   `gorm:"default:false" json:"from_admin"`
	Reviewed  bool   `gorm:"default:false" json:"reviewed"`

	PostID uint `gorm:"not null;index" json:"post_id"`
	Post   Post `gorm:"foreignKey:PostID" json:"-"`

	RepliedID *uint      `gorm:"index" json:"replied_id"`
	Replied   *Comment   `gorm:"foreignKey:RepliedID" json:"replied,omitempty"`
	Replies   []*Comment `gorm:"foreignKey:RepliedID" json:"replies,omitempty"`
}

// Thought is standalone short-form content with no taxonomy.
type Thought struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`

	Body string `gorm:"size:200" json:"body"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}

type UpdateSettingsRequest struct {
	Name      string `json:"name" binding:"required,max=30,no_html"`
	BlogTitle string `json:"blog_title" binding:"required,max=60"`
	About     string `json:"about"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=30"`
}

type CreateTopicRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=20"`
	Description string `json:"description" form:"description" binding:"max=255"`
	CategoryID  uint   `json:"category_id" form:"category_id" binding:"required"`
}

type UpdateTopicRequest struct {
	Name        string `json:"name" binding:"required,max=20"`
	Description string `json:"description" binding:"max=255"`
	CategoryID  uint   `json:"category_id" binding:"required"`
}

type CreatePostRequest struct {
	Title      string `json:"title" form:"title" binding:"required,max=60"`
	Subtitle   string `json:"subtitle" form:"subtitle" binding:"max=255"`
	Body       string `json:"body" form:"body" binding:"required"`
	CategoryID uint   `json:"category_id" form:"category_id" binding:"required"`
	TopicID    uint   `json:"topic_id" form:"topic_id" binding:"required"`
}

type UpdatePostRequest struct {
	Title      *string `json:"title"`
	Subtitle   *string `json:"subtitle"`
	Body       *string `json:"body"`
	CategoryID *uint   `json:"category_id"`
	TopicID    *uint   `json:"topic_id"`
}

type CreateCommentRequest struct {
	Author    string `json:"author" binding:"required,max=30,no_html"`
	Email     string `json:"email" binding:"required,email"`
	Site      string `json:"site" binding:"omitempty,url"`
	Body      string `json:"body" binding:"required"`
	RepliedID *uint  `json:"replied_id"`
}

type ThoughtRequest struct {
	Body string `json:"body" binding:"required,max=200"`
}
