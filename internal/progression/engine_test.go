package progression

import (
	"testing"

	"github.com/lumenacademy/lumen/internal/course"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeLessonCourse() *course.Course {
	return &course.Course{
		ID:    "c1",
		Title: "Espresso Basics",
		Lessons: []course.Lesson{
			{ID: "l1", Title: "The grind", Format: course.FormatTheory, Content: "...", Duration: 5},
			{ID: "l2", Title: "Tamping", Format: course.FormatVisual, Content: "...", Duration: 5},
			{ID: "l3", Title: "Pulling a shot", Format: course.FormatVideo, Content: "...", Duration: 5},
		},
	}
}

func TestLessonStateAt(t *testing.T) {
	c := threeLessonCourse()
	engine := NewEngine()

	tests := []struct {
		name      string
		completed []string
		index     int
		want      LessonState
	}{
		{"fresh record unlocks first lesson", nil, 0, Unlocked},
		{"fresh record locks second lesson", nil, 1, Locked},
		{"completed lesson is done", []string{"l1"}, 0, Done},
		{"next after prefix is unlocked", []string{"l1"}, 1, Unlocked},
		{"two ahead stays locked", []string{"l1"}, 2, Locked},
		{"all done", []string{"l1", "l2", "l3"}, 2, Done},
		{"index out of range", nil, 5, Locked},
		{"negative index", nil, -1, Locked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProgress("s1", c.ID)
			p.CompletedLessonIDs = tt.completed
			assert.Equal(t, tt.want, engine.LessonStateAt(c, p, tt.index))
		})
	}
}

func TestCanAccess_NeverRelocks(t *testing.T) {
	c := threeLessonCourse()
	engine := NewEngine()
	p := NewProgress("s1", c.ID)

	// Walk the course forward; every previously accessible lesson must
	// stay accessible after each completion.
	accessible := make(map[int]bool)
	for step := 0; step < len(c.Lessons); step++ {
		for i := range c.Lessons {
			if engine.CanAccess(c, p, i) {
				accessible[i] = true
			}
		}
		for i := range accessible {
			require.True(t, engine.CanAccess(c, p, i), "lesson %d re-locked at step %d", i, step)
		}
		result, err := engine.MarkComplete(c, p, c.Lessons[step].ID)
		require.NoError(t, err)
		p = result.Progress
	}
}

func TestMarkComplete(t *testing.T) {
	c := threeLessonCourse()
	engine := NewEngine()

	t.Run("sequential completion", func(t *testing.T) {
		p := NewProgress("s1", c.ID)

		result, err := engine.MarkComplete(c, p, "l1")
		require.NoError(t, err)
		assert.Equal(t, []string{"l1"}, result.Progress.CompletedLessonIDs)
		assert.False(t, result.CourseCompleted)
		assert.False(t, result.Progress.CertificateEarned)
	})

	t.Run("idempotent on repeat", func(t *testing.T) {
		p := NewProgress("s1", c.ID)
		p.CompletedLessonIDs = []string{"l1"}

		result, err := engine.MarkComplete(c, p, "l1")
		require.NoError(t, err)
		assert.Equal(t, []string{"l1"}, result.Progress.CompletedLessonIDs)
		assert.False(t, result.CourseCompleted)
	})

	t.Run("skipping ahead rejected", func(t *testing.T) {
		p := NewProgress("s1", c.ID)

		_, err := engine.MarkComplete(c, p, "l3")
		var invalid *ErrInvalidTransition
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "l3", invalid.LessonID)
		// Record untouched.
		assert.Empty(t, p.CompletedLessonIDs)
	})

	t.Run("unknown lesson rejected", func(t *testing.T) {
		p := NewProgress("s1", c.ID)

		_, err := engine.MarkComplete(c, p, "l99")
		var unknown *ErrUnknownLesson
		require.ErrorAs(t, err, &unknown)
	})

	t.Run("certificate exactly on final lesson", func(t *testing.T) {
		p := NewProgress("s1", c.ID)
		p.CompletedLessonIDs = []string{"l1", "l2"}

		result, err := engine.MarkComplete(c, p, "l3")
		require.NoError(t, err)
		assert.True(t, result.CourseCompleted)
		assert.True(t, result.Progress.CertificateEarned)
	})

	t.Run("input record never mutated", func(t *testing.T) {
		p := NewProgress("s1", c.ID)
		p.CompletedLessonIDs = []string{"l1"}

		result, err := engine.MarkComplete(c, p, "l2")
		require.NoError(t, err)
		assert.Equal(t, []string{"l1"}, p.CompletedLessonIDs)
		assert.Equal(t, []string{"l1", "l2"}, result.Progress.CompletedLessonIDs)
	})
}

func TestUpdateMastery(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name  string
		score float64
		want  float64
	}{
		{"in range", 72.5, 72.5},
		{"clamped low", -10, 0},
		{"clamped high", 130, 100},
		{"zero", 0, 0},
		{"hundred", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProgress("s1", "c1")
			p.MasteryScore = 50

			next := engine.UpdateMastery(p, tt.score)
			assert.Equal(t, tt.want, next.MasteryScore)
			// Latest estimate overwrites, no averaging with the prior 50.
			assert.Equal(t, float64(50), p.MasteryScore)
		})
	}
}

func TestStateOf(t *testing.T) {
	c := threeLessonCourse()
	engine := NewEngine()

	assert.Equal(t, NotStarted, engine.StateOf(c, nil))
	assert.Equal(t, NotStarted, engine.StateOf(c, NewProgress("s1", c.ID)))

	p := NewProgress("s1", c.ID)
	p.CompletedLessonIDs = []string{"l1"}
	assert.Equal(t, InProgress, engine.StateOf(c, p))

	p.CompletedLessonIDs = []string{"l1", "l2", "l3"}
	assert.Equal(t, Completed, engine.StateOf(c, p))
}
