package progression

import (
	"github.com/lumenacademy/lumen/internal/course"
)

// LessonState is the derived per-lesson access state. It is never stored:
// it falls out of the completed prefix every time it is asked for.
type LessonState int

const (
	Locked LessonState = iota
	Unlocked
	Done
)

// Engine enforces strict linear progression through a course: the only
// reachable lesson is the one right after the longest completed prefix.
type Engine struct{}

// NewEngine creates a progression engine.
func NewEngine() *Engine {
	return &Engine{}
}

// LessonStateAt derives the state of the lesson at index i.
// Done iff its id is in the completed set; Unlocked iff Done or it is
// exactly the next lesson after the completed prefix; otherwise Locked.
func (e *Engine) LessonStateAt(c *course.Course, p *StudentProgress, i int) LessonState {
	if i < 0 || i >= len(c.Lessons) {
		return Locked
	}
	if p.Completed(c.Lessons[i].ID) {
		return Done
	}
	if i == len(p.CompletedLessonIDs) {
		return Unlocked
	}
	return Locked
}

// CanAccess reports whether the student may open the lesson at index i.
// Monotonic: once a lesson is Unlocked or Done it never re-locks, because
// the completed prefix only grows.
func (e *Engine) CanAccess(c *course.Course, p *StudentProgress, i int) bool {
	return e.LessonStateAt(c, p, i) != Locked
}

// CompletionResult reports what a MarkComplete call did.
type CompletionResult struct {
	Progress *StudentProgress

	// CourseCompleted is true when this call completed the final lesson.
	// The caller surfaces certificate eligibility off this flag.
	CourseCompleted bool
}

// MarkComplete appends lessonID to the completed prefix and returns the
// updated record. Completing an already-completed lesson is a no-op (the
// same record comes back, not an error) so duplicate UI events are
// absorbed. Completing any lesson other than the currently unlocked one
// fails with ErrInvalidTransition and leaves the record untouched.
func (e *Engine) MarkComplete(c *course.Course, p *StudentProgress, lessonID string) (*CompletionResult, error) {
	idx := c.LessonIndex(lessonID)
	if idx < 0 {
		return nil, &ErrUnknownLesson{LessonID: lessonID, CourseID: c.ID}
	}

	// Idempotent: already done.
	if p.Completed(lessonID) {
		return &CompletionResult{Progress: p}, nil
	}

	if idx != len(p.CompletedLessonIDs) {
		return nil, &ErrInvalidTransition{
			LessonID: lessonID,
			Reason:   "lesson is not the currently unlocked one",
		}
	}

	next := p.Clone()
	next.CompletedLessonIDs = append(next.CompletedLessonIDs, lessonID)

	completed := len(next.CompletedLessonIDs) == len(c.Lessons)
	if completed {
		next.CertificateEarned = true
	}

	return &CompletionResult{
		Progress:        next,
		CourseCompleted: completed,
	}, nil
}

// UpdateMastery overwrites the record's mastery score with the latest
// estimate, clamped to [0,100]. Mastery and lesson unlocking are
// independent axes: a low score never blocks progression.
func (e *Engine) UpdateMastery(p *StudentProgress, score float64) *StudentProgress {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	next := p.Clone()
	next.MasteryScore = score
	return next
}

// CourseState is the derived per-(student, course) state.
type CourseState int

const (
	NotStarted CourseState = iota
	InProgress
	Completed
)

// StateOf derives the course-level state from the completed prefix.
func (e *Engine) StateOf(c *course.Course, p *StudentProgress) CourseState {
	switch {
	case p == nil || len(p.CompletedLessonIDs) == 0:
		return NotStarted
	case len(p.CompletedLessonIDs) >= len(c.Lessons):
		return Completed
	default:
		return InProgress
	}
}
