package structurer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lumenacademy/lumen/internal/course"
	"github.com/lumenacademy/lumen/internal/llm"
)

// lessonOutput mirrors the per-lesson shape in either response variant.
type lessonOutput struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Format   string  `json:"format"`
	Content  string  `json:"content"`
	Duration float64 `json:"duration"`
}

type moduleOutput struct {
	Title   string         `json:"title"`
	Lessons []lessonOutput `json:"lessons"`
}

// structureOutput is the tagged union of the two accepted response shapes.
// Exactly one of Lessons or Modules is populated by a valid response.
type structureOutput struct {
	Lessons []lessonOutput `json:"lessons"`
	Modules []moduleOutput `json:"modules"`
}

// resolveShape decodes a validated response and flattens whichever shape it
// carries into a single generation-ordered lesson list. The union is
// resolved here, once, at the pipeline boundary.
func resolveShape(content json.RawMessage) ([]lessonOutput, error) {
	var out structureOutput
	if err := json.Unmarshal(content, &out); err != nil {
		return nil, &llm.ErrInvalidResponse{
			Content: content,
			Err:     fmt.Errorf("parse structuring response: %w", err),
		}
	}

	if len(out.Modules) > 0 {
		var flat []lessonOutput
		for _, m := range out.Modules {
			flat = append(flat, m.Lessons...)
		}
		return flat, nil
	}
	return out.Lessons, nil
}

// normalize validates the flattened lessons and maps them into the
// canonical Lesson records: sequential synthetic ids regardless of what the
// model supplied, unknown formats degraded to theory, absent or
// non-positive durations defaulted. Order is exactly generation order —
// never re-ranked or deduplicated.
func normalize(raw []lessonOutput) ([]course.Lesson, error) {
	if len(raw) == 0 {
		return nil, &llm.ErrInvalidResponse{
			Err: fmt.Errorf("structuring response contained no lessons"),
		}
	}

	lessons := make([]course.Lesson, 0, len(raw))
	for i, l := range raw {
		if strings.TrimSpace(l.Title) == "" {
			return nil, &llm.ErrInvalidResponse{
				Err: fmt.Errorf("lesson %d has empty title", i+1),
			}
		}
		if strings.TrimSpace(l.Content) == "" {
			return nil, &llm.ErrInvalidResponse{
				Err: fmt.Errorf("lesson %d has empty content", i+1),
			}
		}

		duration := int(l.Duration)
		if duration <= 0 {
			duration = DefaultDuration
		}

		lessons = append(lessons, course.Lesson{
			ID:       fmt.Sprintf("l%d", i+1),
			Title:    strings.TrimSpace(l.Title),
			Format:   course.ParseFormat(l.Format),
			Content:  l.Content,
			Duration: duration,
		})
	}
	return lessons, nil
}
