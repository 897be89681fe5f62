package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lumina/app/models"
	"lumina/app/repositories"

	"github.com/google/uuid"
)

// PostService handles business logic for blog posts. It is the only
// place that assigns ids and timestamps or computes read times.
type PostService struct {
	postRepo repositories.PostRepository
	logger   *slog.Logger
	newID    func() string
	now      func() time.Time
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, logger *slog.Logger) *PostService {
	return &PostService{
		postRepo: postRepo,
		logger:   logger,
		newID:    uuid.NewString,
		now:      models.Now,
	}
}

// ListPosts returns every post, newest first
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// GetPost retrieves a post with its comments
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	return post, nil
}

// CreatePost validates the input and stores a new post
func (s *PostService) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	in.Trim()
	if err := in.Validate(); err != nil {
		return nil, validationError(err)
	}

	post := models.NewPost(in)
	post.ID = s.newID()
	post.CreatedAt = s.now()
	post.ReadTime = models.ReadTime(post.Content)
	if err := post.Validate(); err != nil {
		return nil, validationError(err)
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.logger.Info("post created", "id", post.ID, "category", post.Category)
	return post, nil
}

// UpdatePost applies a partial update. Read time is recomputed only when
// the patch supplies content.
func (s *PostService) UpdatePost(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	patch.Trim()
	if err := patch.Validate(); err != nil {
		return nil, validationError(err)
	}

	patch.ReadTime = ""
	if _, ok := patch.Fields()["content"]; ok {
		patch.ReadTime = models.ReadTime(patch.Content)
	}

	post, err := s.postRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}
	return post, nil
}

// DeletePost deletes a post together with its comments
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	s.logger.Info("post deleted", "id", id)
	return nil
}
