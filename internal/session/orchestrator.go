// Package session wires the progression engine and mastery assessor
// together for one active lesson view. It stays deliberately thin: all
// policy lives in the two components it delegates to.
package session

import (
	"context"
	"fmt"

	"github.com/lumenacademy/lumen/internal/assessment"
	"github.com/lumenacademy/lumen/internal/course"
	"github.com/lumenacademy/lumen/internal/progression"
)

// LessonView is an open lesson with its live assessment session and the
// progress record it was authorized against.
type LessonView struct {
	Course   *course.Course
	Lesson   course.Lesson
	Index    int
	Progress *progression.StudentProgress
	Session  *assessment.Session
}

// Orchestrator coordinates lesson access, tutoring turns, and completion
// for one student at a time.
type Orchestrator struct {
	engine   *progression.Engine
	assessor *assessment.Assessor
	store    progression.ProgressStore
}

// New creates an orchestrator.
func New(engine *progression.Engine, assessor *assessment.Assessor, store progression.ProgressStore) *Orchestrator {
	return &Orchestrator{engine: engine, assessor: assessor, store: store}
}

// ErrLessonLocked indicates the requested lesson is not yet reachable.
type ErrLessonLocked struct {
	Index int
}

func (e *ErrLessonLocked) Error() string {
	return fmt.Sprintf("lesson %d is locked: complete the earlier lessons first", e.Index+1)
}

// OpenLesson authorizes access to the lesson at index and opens an
// assessment session for it. The progress record is created on first
// interaction.
func (o *Orchestrator) OpenLesson(ctx context.Context, c *course.Course, studentID string, index int) (*LessonView, error) {
	if index < 0 || index >= len(c.Lessons) {
		return nil, fmt.Errorf("lesson index %d out of range", index)
	}

	progress, err := o.loadOrCreate(ctx, studentID, c.ID)
	if err != nil {
		return nil, err
	}

	if !o.engine.CanAccess(c, progress, index) {
		return nil, &ErrLessonLocked{Index: index}
	}

	lesson := c.Lessons[index]
	return &LessonView{
		Course:   c,
		Lesson:   lesson,
		Index:    index,
		Progress: progress,
		Session:  assessment.NewSession(lesson.ID),
	}, nil
}

// SubmitMessage runs one tutoring turn for the open lesson. Failures never
// propagate: the assessor substitutes its fallback reply.
func (o *Orchestrator) SubmitMessage(ctx context.Context, view *LessonView, message string) assessment.TurnOutcome {
	return o.assessor.Respond(ctx, view.Lesson.Content, view.Session, message)
}

// Checkpoint persists the session's latest mastery score into the durable
// progress record. Called when the learner exits the lesson without
// completing it. A session that never had a successful turn leaves the
// stored score untouched.
func (o *Orchestrator) Checkpoint(ctx context.Context, view *LessonView) error {
	if !view.Session.Scored {
		return nil
	}
	updated := o.engine.UpdateMastery(view.Progress, view.Session.MasteryScore)
	if err := o.store.Upsert(ctx, updated); err != nil {
		return fmt.Errorf("checkpoint mastery: %w", err)
	}
	view.Progress = updated
	return nil
}

// CompleteLesson checkpoints mastery, marks the lesson complete, and
// persists the result. The returned CompletionResult's CourseCompleted
// flag carries certificate eligibility to the caller.
func (o *Orchestrator) CompleteLesson(ctx context.Context, view *LessonView) (*progression.CompletionResult, error) {
	progress := view.Progress
	if view.Session.Scored {
		progress = o.engine.UpdateMastery(progress, view.Session.MasteryScore)
	}

	result, err := o.engine.MarkComplete(view.Course, progress, view.Lesson.ID)
	if err != nil {
		return nil, err
	}

	if err := o.store.Upsert(ctx, result.Progress); err != nil {
		return nil, fmt.Errorf("persist completion: %w", err)
	}

	view.Progress = result.Progress
	return result, nil
}

func (o *Orchestrator) loadOrCreate(ctx context.Context, studentID, courseID string) (*progression.StudentProgress, error) {
	progress, err := o.store.Get(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if progress == nil {
		progress = progression.NewProgress(studentID, courseID)
		if err := o.store.Upsert(ctx, progress); err != nil {
			return nil, fmt.Errorf("create progress: %w", err)
		}
	}
	return progress, nil
}
