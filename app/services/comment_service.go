package services

import (
	"context"
	"fmt"
	"time"

	"lumina/app/models"
	"lumina/app/repositories"

	"github.com/google/uuid"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	newID       func() string
	now         func() time.Time
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		newID:       uuid.NewString,
		now:         models.Now,
	}
}

// AddComment appends a new comment to a post and returns it as stored
func (s *CommentService) AddComment(ctx context.Context, postID string, in models.CommentInput) (*models.Comment, error) {
	in.Trim()
	if err := in.Validate(); err != nil {
		return nil, validationError(err)
	}

	comment := models.Comment{
		ID:        s.newID(),
		Content:   in.Content,
		Author:    in.Author,
		CreatedAt: s.now(),
	}
	if err := s.commentRepo.AppendComment(ctx, postID, comment); err != nil {
		return nil, fmt.Errorf("add comment to post %s: %w", postID, err)
	}
	return &comment, nil
}
