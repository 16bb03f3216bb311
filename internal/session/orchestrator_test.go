package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/lumenacademy/lumen/internal/assessment"
	"github.com/lumenacademy/lumen/internal/course"
	"github.com/lumenacademy/lumen/internal/llm"
	"github.com/lumenacademy/lumen/internal/progression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory progression.ProgressStore.
type memStore struct {
	records map[string]*progression.StudentProgress
	failing bool
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]*progression.StudentProgress)}
}

func (m *memStore) key(studentID, courseID string) string {
	return studentID + "/" + courseID
}

func (m *memStore) Get(_ context.Context, studentID, courseID string) (*progression.StudentProgress, error) {
	if m.failing {
		return nil, errors.New("store down")
	}
	p, ok := m.records[m.key(studentID, courseID)]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (m *memStore) Upsert(_ context.Context, p *progression.StudentProgress) error {
	if m.failing {
		return errors.New("store down")
	}
	m.records[m.key(p.StudentID, p.CourseID)] = p.Clone()
	return nil
}

func twoLessonCourse() *course.Course {
	return &course.Course{
		ID:    "c1",
		Title: "Latte Art",
		Lessons: []course.Lesson{
			{ID: "l1", Title: "Steaming milk", Format: course.FormatTheory, Content: "Stretch then spin.", Duration: 5},
			{ID: "l2", Title: "The pour", Format: course.FormatVisual, Content: "Start high, finish low.", Duration: 5},
		},
	}
}

func newOrchestrator(store progression.ProgressStore, responses ...llm.MockResponse) *Orchestrator {
	return New(
		progression.NewEngine(),
		assessment.NewAssessor(llm.NewMockProvider(responses...), assessment.DefaultConfig()),
		store,
	)
}

func scoredTurn(score float64) llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(
		fmt.Sprintf(`{"reply":"ok","mastery_score":%v,"frustrated":false}`, score),
	)}
}

func TestOpenLesson(t *testing.T) {
	c := twoLessonCourse()

	t.Run("first lesson opens and seeds progress", func(t *testing.T) {
		store := newMemStore()
		orch := newOrchestrator(store)

		view, err := orch.OpenLesson(context.Background(), c, "s1", 0)
		require.NoError(t, err)
		assert.Equal(t, "l1", view.Lesson.ID)
		assert.NotNil(t, view.Session)

		// Record created on first interaction.
		stored, err := store.Get(context.Background(), "s1", c.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Empty(t, stored.CompletedLessonIDs)
	})

	t.Run("locked lesson rejected", func(t *testing.T) {
		orch := newOrchestrator(newMemStore())

		_, err := orch.OpenLesson(context.Background(), c, "s1", 1)
		var locked *ErrLessonLocked
		require.ErrorAs(t, err, &locked)
		assert.Equal(t, 1, locked.Index)
	})

	t.Run("index out of range", func(t *testing.T) {
		orch := newOrchestrator(newMemStore())
		_, err := orch.OpenLesson(context.Background(), c, "s1", 7)
		require.Error(t, err)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		store := newMemStore()
		store.failing = true
		orch := newOrchestrator(store)
		_, err := orch.OpenLesson(context.Background(), c, "s1", 0)
		require.Error(t, err)
	})
}

func TestCompleteLesson(t *testing.T) {
	c := twoLessonCourse()
	ctx := context.Background()

	t.Run("completion persists score and prefix", func(t *testing.T) {
		store := newMemStore()
		orch := newOrchestrator(store, scoredTurn(90))

		view, err := orch.OpenLesson(ctx, c, "s1", 0)
		require.NoError(t, err)

		outcome := orch.SubmitMessage(ctx, view, "steam until it sings?")
		assert.True(t, outcome.ReadyToAdvance)

		result, err := orch.CompleteLesson(ctx, view)
		require.NoError(t, err)
		assert.False(t, result.CourseCompleted)

		stored, err := store.Get(ctx, "s1", c.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"l1"}, stored.CompletedLessonIDs)
		assert.Equal(t, float64(90), stored.MasteryScore)
		assert.False(t, stored.CertificateEarned)
	})

	t.Run("certificate on final lesson", func(t *testing.T) {
		store := newMemStore()
		orch := newOrchestrator(store, scoredTurn(70), scoredTurn(88))

		view, err := orch.OpenLesson(ctx, c, "s1", 0)
		require.NoError(t, err)
		orch.SubmitMessage(ctx, view, "first")
		_, err = orch.CompleteLesson(ctx, view)
		require.NoError(t, err)

		view, err = orch.OpenLesson(ctx, c, "s1", 1)
		require.NoError(t, err)
		orch.SubmitMessage(ctx, view, "second")
		result, err := orch.CompleteLesson(ctx, view)
		require.NoError(t, err)
		assert.True(t, result.CourseCompleted)

		stored, err := store.Get(ctx, "s1", c.ID)
		require.NoError(t, err)
		assert.True(t, stored.CertificateEarned)
	})

	t.Run("unscored session completes without moving mastery", func(t *testing.T) {
		store := newMemStore()
		orch := newOrchestrator(store)

		view, err := orch.OpenLesson(ctx, c, "s1", 0)
		require.NoError(t, err)

		_, err = orch.CompleteLesson(ctx, view)
		require.NoError(t, err)

		stored, err := store.Get(ctx, "s1", c.ID)
		require.NoError(t, err)
		assert.Equal(t, float64(0), stored.MasteryScore)
		assert.Equal(t, []string{"l1"}, stored.CompletedLessonIDs)
	})
}

func TestCheckpoint(t *testing.T) {
	c := twoLessonCourse()
	ctx := context.Background()

	t.Run("scored session persists", func(t *testing.T) {
		store := newMemStore()
		orch := newOrchestrator(store, scoredTurn(64))

		view, err := orch.OpenLesson(ctx, c, "s1", 0)
		require.NoError(t, err)
		orch.SubmitMessage(ctx, view, "like this?")

		require.NoError(t, orch.Checkpoint(ctx, view))

		stored, err := store.Get(ctx, "s1", c.ID)
		require.NoError(t, err)
		assert.Equal(t, float64(64), stored.MasteryScore)
		// Checkpoint never completes the lesson.
		assert.Empty(t, stored.CompletedLessonIDs)
	})

	t.Run("unscored session is a no-op", func(t *testing.T) {
		store := newMemStore()
		orch := newOrchestrator(store)

		view, err := orch.OpenLesson(ctx, c, "s1", 0)
		require.NoError(t, err)
		require.NoError(t, orch.Checkpoint(ctx, view))

		stored, err := store.Get(ctx, "s1", c.ID)
		require.NoError(t, err)
		assert.Equal(t, float64(0), stored.MasteryScore)
	})

	t.Run("fallback turn leaves score unscored", func(t *testing.T) {
		store := newMemStore()
		orch := newOrchestrator(store, llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})

		view, err := orch.OpenLesson(ctx, c, "s1", 0)
		require.NoError(t, err)

		outcome := orch.SubmitMessage(ctx, view, "hello?")
		assert.True(t, outcome.Fallback)
		assert.Equal(t, assessment.FallbackReply, outcome.Reply)

		require.NoError(t, orch.Checkpoint(ctx, view))
		stored, err := store.Get(ctx, "s1", c.ID)
		require.NoError(t, err)
		assert.Equal(t, float64(0), stored.MasteryScore)
	})
}
