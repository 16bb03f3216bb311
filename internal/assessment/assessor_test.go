package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lumenacademy/lumen/internal/llm"
)

func turnJSON(reply string, score float64, frustrated bool) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"reply":%q,"mastery_score":%v,"frustrated":%v}`, reply, score, frustrated))
}

func TestRespond_ScoredTurn(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: turnJSON("Good thinking!", 60, false)})
	a := NewAssessor(mock, DefaultConfig())
	sess := NewSession("l1")

	outcome := a.Respond(context.Background(), "Lesson content.", sess, "Is it the pinch grip?")

	if outcome.Reply != "Good thinking!" {
		t.Errorf("unexpected reply: %q", outcome.Reply)
	}
	if outcome.MasteryScore != 60 {
		t.Errorf("expected score 60, got %v", outcome.MasteryScore)
	}
	if outcome.ReadyToAdvance {
		t.Error("celebration should not fire below threshold")
	}
	if !sess.Scored {
		t.Error("session should be marked scored")
	}
	// Greeting + student + tutor reply.
	if len(sess.Turns) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(sess.Turns))
	}
	if sess.Turns[1].Role != RoleStudent || sess.Turns[2].Role != RoleTutor {
		t.Errorf("unexpected turn roles: %+v", sess.Turns)
	}
}

func TestRespond_CelebrationFiresOnce(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: turnJSON("Excellent!", 90, false)},
		llm.MockResponse{Content: turnJSON("Hmm, not quite.", 70, false)},
		llm.MockResponse{Content: turnJSON("Back on track!", 95, false)},
	)
	a := NewAssessor(mock, DefaultConfig())
	sess := NewSession("l1")

	first := a.Respond(context.Background(), "Lesson.", sess, "answer one")
	if !first.ReadyToAdvance {
		t.Fatal("expected celebration on first threshold crossing")
	}
	if len(first.Messages) != 1 || first.Messages[0] != CelebrationMessage {
		t.Fatalf("expected celebration message, got %v", first.Messages)
	}

	second := a.Respond(context.Background(), "Lesson.", sess, "answer two")
	if second.ReadyToAdvance {
		t.Error("celebration must not fire on a sub-threshold turn")
	}

	// Score dips then re-crosses: the latch holds.
	third := a.Respond(context.Background(), "Lesson.", sess, "answer three")
	if third.ReadyToAdvance {
		t.Error("celebration must not fire a second time in the same session")
	}
	if len(third.Messages) != 0 {
		t.Errorf("expected no extra messages, got %v", third.Messages)
	}
}

func TestRespond_ThresholdIsInclusive(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: turnJSON("Nailed it.", MasteryThreshold, false)})
	a := NewAssessor(mock, DefaultConfig())
	sess := NewSession("l1")

	outcome := a.Respond(context.Background(), "Lesson.", sess, "answer")
	if !outcome.ReadyToAdvance {
		t.Errorf("score exactly at %v should celebrate", MasteryThreshold)
	}
}

func TestRespond_FrustrationSupport(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: turnJSON("Let's slow down.", 40, true)})
	a := NewAssessor(mock, DefaultConfig())
	sess := NewSession("l1")

	outcome := a.Respond(context.Background(), "Lesson.", sess, "I don't get it")
	if !outcome.Frustrated {
		t.Error("expected frustrated outcome")
	}
	if len(outcome.Messages) != 1 || outcome.Messages[0] != SupportMessage {
		t.Fatalf("expected support message, got %v", outcome.Messages)
	}
}

func TestRespond_CelebrationAndSupportCoOccur(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: turnJSON("You made it, even if it was rough.", 88, true)})
	a := NewAssessor(mock, DefaultConfig())
	sess := NewSession("l1")

	outcome := a.Respond(context.Background(), "Lesson.", sess, "finally")
	if !outcome.ReadyToAdvance || !outcome.Frustrated {
		t.Fatalf("expected both celebration and frustration, got %+v", outcome)
	}
	if len(outcome.Messages) != 2 {
		t.Fatalf("expected 2 follow-on messages, got %v", outcome.Messages)
	}
	if outcome.Messages[0] != CelebrationMessage || outcome.Messages[1] != SupportMessage {
		t.Errorf("unexpected message order: %v", outcome.Messages)
	}
}

func TestRespond_FallbackKeepsPriorScore(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: turnJSON("Good.", 55, false)},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	a := NewAssessor(mock, DefaultConfig())
	sess := NewSession("l1")

	a.Respond(context.Background(), "Lesson.", sess, "first")
	outcome := a.Respond(context.Background(), "Lesson.", sess, "second")

	if !outcome.Fallback {
		t.Fatal("expected fallback outcome")
	}
	if outcome.Reply != FallbackReply {
		t.Errorf("expected fixed fallback reply, got %q", outcome.Reply)
	}
	if outcome.MasteryScore != 55 {
		t.Errorf("fallback must keep the prior score, got %v", outcome.MasteryScore)
	}
	if outcome.Frustrated {
		t.Error("fallback must not set frustration")
	}
	// Both the student message and the fallback reply land in history.
	last := sess.Turns[len(sess.Turns)-1]
	if last.Role != RoleTutor || last.Text != FallbackReply {
		t.Errorf("unexpected final turn: %+v", last)
	}
}

func TestRespond_FallbackOnFreshSessionScoresZero(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	a := NewAssessor(mock, DefaultConfig())
	sess := NewSession("l1")

	outcome := a.Respond(context.Background(), "Lesson.", sess, "hello")
	if outcome.MasteryScore != 0 {
		t.Errorf("never-scored session keeps the zero default, got %v", outcome.MasteryScore)
	}
	if sess.Scored {
		t.Error("a failed turn must not mark the session scored")
	}
}

func TestRespond_ScoreClamped(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: turnJSON("High.", 150, false)},
		llm.MockResponse{Content: turnJSON("Low.", -20, false)},
	)
	a := NewAssessor(mock, DefaultConfig())
	sess := NewSession("l1")

	high := a.Respond(context.Background(), "Lesson.", sess, "one")
	if high.MasteryScore != 100 {
		t.Errorf("expected clamp to 100, got %v", high.MasteryScore)
	}
	low := a.Respond(context.Background(), "Lesson.", sess, "two")
	if low.MasteryScore != 0 {
		t.Errorf("expected clamp to 0, got %v", low.MasteryScore)
	}
}

func TestRespond_TiredHintShapesPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: turnJSON("Take a breath.", 30, true)})
	a := NewAssessor(mock, DefaultConfig())
	sess := NewSession("l1")

	a.Respond(context.Background(), "Lesson.", sess, "this is too hard, I'm exhausted")

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.Calls))
	}
	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "IMPORTANT") {
		t.Errorf("expected the tired hint block in prompt:\n%s", prompt)
	}
}

// slowTutorProvider answers after a delay and counts in-flight Generate
// calls so overlap is observable.
type slowTutorProvider struct {
	inFlight   atomic.Int32
	overlapped atomic.Bool
	calls      atomic.Int32
}

func (p *slowTutorProvider) Generate(_ context.Context, _ llm.Request) (*llm.Response, error) {
	if p.inFlight.Add(1) > 1 {
		p.overlapped.Store(true)
	}
	time.Sleep(5 * time.Millisecond)
	p.inFlight.Add(-1)
	n := p.calls.Add(1)
	return &llm.Response{
		Content: turnJSON(fmt.Sprintf("reply %d", n), 50, false),
	}, nil
}

func (p *slowTutorProvider) ModelID() string { return "slow-tutor" }

func TestRespond_SerializesConcurrentTurns(t *testing.T) {
	provider := &slowTutorProvider{}
	a := NewAssessor(provider, DefaultConfig())
	sess := NewSession("l1")

	const turns = 4
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			a.Respond(context.Background(), "Lesson.", sess, fmt.Sprintf("message %d", n))
		}(i)
	}
	wg.Wait()

	if provider.overlapped.Load() {
		t.Fatal("two model calls for the same session were in flight at once")
	}

	// Greeting plus one student/tutor pair per turn, in strict alternation:
	// a new message is never sent before the previous reply landed.
	if len(sess.Turns) != 1+2*turns {
		t.Fatalf("expected %d turns, got %d", 1+2*turns, len(sess.Turns))
	}
	for i := 1; i < len(sess.Turns); i++ {
		want := RoleStudent
		if i%2 == 0 {
			want = RoleTutor
		}
		if sess.Turns[i].Role != want {
			t.Fatalf("turn %d: expected role %q, got %q", i, want, sess.Turns[i].Role)
		}
	}
}
