package services

import (
	"context"
	"errors"
	"log/slog"

	"lumina/app/assistant"
	"lumina/app/models"
)

// DraftGenerator produces a draft for a topic and tone.
type DraftGenerator interface {
	Generate(ctx context.Context, topic, tone string) (assistant.Draft, error)
}

// DraftService turns draft requests into drafts, substituting a
// placeholder when no assistant is configured.
type DraftService struct {
	generator DraftGenerator
	logger    *slog.Logger
}

// NewDraftService creates a new DraftService
func NewDraftService(generator DraftGenerator, logger *slog.Logger) *DraftService {
	return &DraftService{generator: generator, logger: logger}
}

// GenerateDraft returns a draft for the request. Generation failures from a
// configured assistant are returned as *assistant.GenerationError.
func (s *DraftService) GenerateDraft(ctx context.Context, in models.DraftInput) (assistant.Draft, error) {
	in.Trim()
	if err := in.Validate(); err != nil {
		return assistant.Draft{}, validationError(err)
	}

	draft, err := s.generator.Generate(ctx, in.Topic, in.Tone)
	if errors.Is(err, assistant.ErrNotConfigured) {
		s.logger.Warn("draft assistant not configured, returning placeholder draft", "topic", in.Topic)
		return assistant.Placeholder(in.Topic, in.Tone), nil
	}
	if err != nil {
		s.logger.Error("draft generation failed", "topic", in.Topic, "error", err)
		return assistant.Draft{}, err
	}
	return draft, nil
}
