package assessment

import (
	"sync"

	"github.com/google/uuid"
)

// TurnRole identifies the sender of a conversation turn.
type TurnRole string

const (
	RoleStudent TurnRole = "student"
	RoleTutor   TurnRole = "tutor"
)

// Turn is one message in an assessment conversation.
type Turn struct {
	Role TurnRole
	Text string
}

// Session is the ephemeral per-lesson assessment state. It lives only as
// long as the lesson view; on exit the caller checkpoints MasteryScore into
// the durable progress record and drops the session.
type Session struct {
	// mu serializes turns: a new student message is never processed until
	// the previous turn's response (or its fallback) has been applied.
	mu sync.Mutex

	ID       string
	LessonID string
	Turns    []Turn

	// MasteryScore is the rolling latest estimate. Scored is false until
	// the first successful turn; a failed turn never moves the score.
	MasteryScore float64
	Scored       bool

	// Frustrated is the model's latest frustration flag.
	Frustrated bool

	// Celebrated is the one-shot latch for the mastery celebration. Once
	// set it stays set for the session, even if the score later dips and
	// re-crosses the threshold.
	Celebrated bool
}

// NewSession opens an assessment session for a lesson, seeded with the
// tutor greeting.
func NewSession(lessonID string) *Session {
	return &Session{
		ID:       uuid.NewString(),
		LessonID: lessonID,
		Turns:    []Turn{{Role: RoleTutor, Text: Greeting}},
	}
}

func (s *Session) appendTurn(role TurnRole, text string) {
	s.Turns = append(s.Turns, Turn{Role: role, Text: text})
}
