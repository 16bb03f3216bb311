package course

import "fmt"

// Format is the delivery format of a micro-lesson. Closed enum: values
// outside it never enter the system (see ParseFormat).
type Format string

const (
	FormatTheory         Format = "theory"
	FormatVisual         Format = "visual"
	FormatVideo          Format = "video"
	FormatChat           Format = "chat"
	FormatMentalPractice Format = "mental_practice"
)

// ParseFormat maps a raw format string to the closed enum. Unknown values
// degrade to theory rather than rejecting the whole lesson batch — a
// deliberate leniency policy, since a single stray label from the model
// should not cost the teacher an entire structuring run.
func ParseFormat(s string) Format {
	switch Format(s) {
	case FormatTheory, FormatVisual, FormatVideo, FormatChat, FormatMentalPractice:
		return Format(s)
	default:
		return FormatTheory
	}
}

// Lesson is a single micro-lesson, roughly five minutes of material.
type Lesson struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Format   Format `json:"format"`
	Content  string `json:"content"`
	Duration int    `json:"duration"` // minutes, always > 0
}

// Course is an ordered sequence of micro-lessons owned by a teacher.
type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	TeacherID   string   `json:"teacher_id"`
	Lessons     []Lesson `json:"lessons"`
}

// Validate checks the course invariants: a non-empty, order-significant
// lesson sequence with unique lesson ids.
func (c *Course) Validate() error {
	if len(c.Lessons) == 0 {
		return fmt.Errorf("course %q has no lessons", c.ID)
	}
	seen := make(map[string]bool, len(c.Lessons))
	for i, l := range c.Lessons {
		if l.ID == "" {
			return fmt.Errorf("lesson at index %d has empty id", i)
		}
		if seen[l.ID] {
			return fmt.Errorf("duplicate lesson id %q", l.ID)
		}
		seen[l.ID] = true
		if l.Duration <= 0 {
			return fmt.Errorf("lesson %q has non-positive duration", l.ID)
		}
	}
	return nil
}

// LessonIndex returns the position of the lesson with the given id,
// or -1 if no such lesson exists.
func (c *Course) LessonIndex(lessonID string) int {
	for i, l := range c.Lessons {
		if l.ID == lessonID {
			return i
		}
	}
	return -1
}
