package service

import "errors"

var (
	ErrDuplicateName         = errors.New("name already in use")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrTopicNotFound         = errors.New("topic not found")
	ErrPostNotFound          = errors.New("post not found")
	ErrCommentNotFound       = errors.New("comment not found")
	ErrThoughtNotFound       = errors.New("thought not found")
	ErrParentNotFound        = errors.New("replied comment not found on this post")
	ErrDefaultTopicProtected = errors.New("the default topic cannot be changed or deleted")
	ErrCommentsDisabled      = errors.New("commenting is disabled for this post")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidEmail          = errors.New("invalid email address")
)
