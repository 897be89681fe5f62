package repositories

import (
	"context"

	"lumina/app/models"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	List(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	// Update applies patch to the stored post in a single backend write and
	// returns the result.
	Update(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// CommentRepository defines the interface for comment data access.
// Comments live inside their post document and are never edited.
type CommentRepository interface {
	AppendComment(ctx context.Context, postID string, comment models.Comment) error
}

// Backend is a complete store implementation selected at startup.
type Backend interface {
	PostRepository
	CommentRepository
	Name() string
	Ping(ctx context.Context) error
	Close() error
}
