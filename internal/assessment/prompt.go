package assessment

import (
	"fmt"
	"strings"
)

const tutorSystemPrompt = `You are an empathetic AI tutor for Lumen Academy, a vocational micro-learning platform. Your goal is to assess student understanding through natural conversation and provide supportive, practical guidance.`

// Fixed conversation texts. The fallback must read like a normal tutor
// message — a tutoring chat never dead-ends on an error.
const (
	// Greeting opens every assessment session.
	Greeting = "Great job finishing this lesson! I'm here to help you master this material. Let's chat about what you learned — tell me something interesting you picked up, or ask me anything!"

	// FallbackReply substitutes for a failed generative call.
	FallbackReply = "I had a small hiccup there. Could you try saying that again?"

	// CelebrationMessage is appended once per session when mastery first
	// crosses the threshold.
	CelebrationMessage = "Excellent work! You've demonstrated strong understanding of this material. Ready to move on to the next lesson?"

	// SupportMessage is appended when the student appears frustrated.
	SupportMessage = "No rush at all! Learning takes time, and you're doing great. Want to take a break and come back tomorrow fresh? Sometimes that's the best way to let things sink in."
)

func buildTurnUserMessage(lessonContent string, turns []Turn, studentMessage string, seemsTired bool) string {
	var b strings.Builder

	b.WriteString("Lesson Content:\n")
	b.WriteString(lessonContent)
	b.WriteString("\n\nConversation History:\n")
	if len(turns) == 0 {
		b.WriteString("(none)\n")
	} else {
		for _, t := range turns {
			label := "Tutor"
			if t.Role == RoleStudent {
				label = "Student"
			}
			b.WriteString(fmt.Sprintf("%s: %s\n", label, t.Text))
		}
	}

	b.WriteString(fmt.Sprintf("\nStudent's Latest Message: %s\n", studentMessage))

	if seemsTired {
		b.WriteString("\nIMPORTANT: The student seems tired or frustrated. Keep your reply SHORT (1-2 sentences), encouraging, and suggest taking a break if needed.\n")
	}

	b.WriteString(`
Your task:
1. Respond naturally to the student's message.
2. Silently estimate their understanding of the lesson (0-100 mastery score). Never tell them the number.
3. If your estimate is below 85, ask a thoughtful follow-up question to gauge mastery.
4. Flag whether the student appears frustrated.
5. Be encouraging, concise, and practical.`)

	return b.String()
}
