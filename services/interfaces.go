package services

import (
	"context"

	"myposts/models"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	CreatePost(ctx context.Context, in models.PostInput) (int64, error)
	UpdatePost(ctx context.Context, id int64, in models.PostInput) error
	DeletePost(ctx context.Context, id int64) error
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	SearchPosts(ctx context.Context, keyword string) ([]models.Post, error)
}

// Notifier broadcasts change notifications to listening UIs
type Notifier interface {
	Broadcast(event string)
}

// InputValidator checks sanitized input before it reaches storage
type InputValidator interface {
	Validate(i interface{}) error
}
