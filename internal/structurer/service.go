package structurer

import (
	"context"
	"fmt"

	"github.com/lumenacademy/lumen/internal/course"
	"github.com/lumenacademy/lumen/internal/llm"
)

// ErrEmptyInput indicates the caller supplied content or title that is
// empty after link stripping. Deterministic, caller-facing, never retried.
type ErrEmptyInput struct {
	Field string
}

func (e *ErrEmptyInput) Error() string {
	return fmt.Sprintf("%s must not be empty after stripping links", e.Field)
}

// Service turns raw teacher-supplied text into an ordered lesson list via a
// schema-constrained generative call. Structuring is fail-hard: any
// generation or schema failure rejects the whole request and no partial
// lesson list escapes, so the caller can safely retry.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a content structuring service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Structure converts rawText into micro-lessons for a course titled title.
// The result is non-deterministic: calling twice with identical input may
// produce different lessons, so callers persist the first successful result
// instead of re-invoking.
func (s *Service) Structure(ctx context.Context, rawText, title string) ([]course.Lesson, error) {
	cleanTitle := StripLinks(title)
	cleanText := StripLinks(rawText)

	if cleanTitle == "" {
		return nil, &ErrEmptyInput{Field: "title"}
	}
	if cleanText == "" {
		return nil, &ErrEmptyInput{Field: "content"}
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeStructuring)

	schema := FlatLessonsSchema
	if s.cfg.Variant == VariantModular {
		schema = ModularLessonsSchema
	}

	req := llm.Request{
		System: structureSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildStructureUserMessage(cleanTitle, cleanText, s.cfg.Variant)},
		},
		Schema:      schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("course structuring: %w", err)
	}

	flat, err := resolveShape(resp.Content)
	if err != nil {
		return nil, err
	}

	return normalize(flat)
}
