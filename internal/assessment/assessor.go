package assessment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lumenacademy/lumen/internal/llm"
)

// TurnOutcome is what one processed student message produced. Reply is the
// direct tutor response; Messages carries any follow-on messages (the
// one-shot celebration, the frustration support note) already appended to
// the session history in order.
type TurnOutcome struct {
	Reply    string
	Messages []string

	MasteryScore   float64
	Frustrated     bool
	ReadyToAdvance bool // celebration fired on this turn
	Fallback       bool // the generative call failed and the fixed reply was used
}

// Assessor runs one conversational assessment turn at a time. It is
// fail-soft by contract: a failed generative call produces the fixed
// fallback reply and never surfaces as an error to the learner.
type Assessor struct {
	provider llm.Provider
	cfg      Config
}

// NewAssessor creates a mastery assessor.
func NewAssessor(provider llm.Provider, cfg Config) *Assessor {
	return &Assessor{provider: provider, cfg: cfg}
}

type turnOutput struct {
	Reply        string  `json:"reply"`
	MasteryScore float64 `json:"mastery_score"`
	Frustrated   bool    `json:"frustrated"`
}

// Respond processes one student message against the lesson content,
// updating the session in place. Turns are strictly serialized per
// session: a second concurrent call blocks until the first has applied its
// response (or fallback) to the history.
func (a *Assessor) Respond(ctx context.Context, lessonContent string, sess *Session, studentMessage string) TurnOutcome {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	seemsTired := DetectFrustration(studentMessage)

	out, err := a.generate(ctx, lessonContent, sess.Turns, studentMessage, seemsTired)

	sess.appendTurn(RoleStudent, studentMessage)

	if err != nil {
		// Fail-soft: fixed reply, prior score kept, frustration untouched.
		sess.appendTurn(RoleTutor, FallbackReply)
		return TurnOutcome{
			Reply:        FallbackReply,
			MasteryScore: sess.MasteryScore,
			Frustrated:   sess.Frustrated,
			Fallback:     true,
		}
	}

	score := clampScore(out.MasteryScore)
	sess.MasteryScore = score
	sess.Scored = true
	sess.Frustrated = out.Frustrated
	sess.appendTurn(RoleTutor, out.Reply)

	outcome := TurnOutcome{
		Reply:        out.Reply,
		MasteryScore: score,
		Frustrated:   out.Frustrated,
	}

	// One-shot celebration: fires the first time the threshold is crossed
	// in this session and never again.
	if score >= MasteryThreshold && !sess.Celebrated {
		sess.Celebrated = true
		outcome.ReadyToAdvance = true
		sess.appendTurn(RoleTutor, CelebrationMessage)
		outcome.Messages = append(outcome.Messages, CelebrationMessage)
	}

	// Frustration support is an independent predicate and may co-occur
	// with the celebration in the same turn.
	if out.Frustrated {
		sess.appendTurn(RoleTutor, SupportMessage)
		outcome.Messages = append(outcome.Messages, SupportMessage)
	}

	return outcome
}

func (a *Assessor) generate(ctx context.Context, lessonContent string, turns []Turn, studentMessage string, seemsTired bool) (*turnOutput, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeTutoring)

	req := llm.Request{
		System: tutorSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildTurnUserMessage(lessonContent, turns, studentMessage, seemsTired)},
		},
		Schema:      TurnSchema,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("assessment turn: %w", err)
	}

	var out turnOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse assessment response: %w", err)
	}
	return &out, nil
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
