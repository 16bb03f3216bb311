package structurer

import (
	"fmt"
	"strings"
)

const structureSystemPrompt = `You are an expert course designer for Lumen Academy, specializing in micro-learning for vocational training. You transform raw teacher-supplied content into short, practical lessons for adult learners.`

func buildStructureUserMessage(title, content string, variant Variant) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Course Title: %s\n\n", title))
	b.WriteString("Content:\n")
	b.WriteString(content)
	b.WriteString("\n\n")

	b.WriteString(`Instructions:
1. Split the content into 5-12 micro-lessons of approximately 5 minutes each.
2. Tag every lesson with exactly one format: "theory" (explanation), "visual" (slides/infographic), "video" (demonstration), "chat" (AI conversation), or "mental_practice" (mental rehearsal).
3. Use only facts present in the source content. Do not invent material.
4. End the course with a "mental_practice" lesson that lets the learner rehearse the whole skill.
5. Content should be clear, actionable, and beginner-friendly. Focus on practical skills and real-world application.`)

	if variant == VariantModular {
		b.WriteString("\n6. Group related lessons into 2-4 named modules, keeping the overall lesson order.")
	}

	return b.String()
}
