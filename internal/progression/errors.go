package progression

import "fmt"

// ErrInvalidTransition indicates an attempt to complete a lesson that is not
// the currently unlocked one. It is deterministic and never retried.
type ErrInvalidTransition struct {
	LessonID string
	Reason   string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid transition for lesson %q: %s", e.LessonID, e.Reason)
}

// ErrUnknownLesson indicates a lesson id that does not belong to the course.
type ErrUnknownLesson struct {
	LessonID string
	CourseID string
}

func (e *ErrUnknownLesson) Error() string {
	return fmt.Sprintf("lesson %q not in course %q", e.LessonID, e.CourseID)
}
