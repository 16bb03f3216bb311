package assessment

import "github.com/lumenacademy/lumen/internal/llm"

// TurnSchema defines the JSON schema for one assessed tutoring turn.
var TurnSchema = &llm.Schema{
	Name:        "tutor-turn",
	Description: "A tutor reply with a silent mastery estimate and frustration flag",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reply": map[string]any{
				"type":        "string",
				"description": "Natural, encouraging response to the student's message",
			},
			"mastery_score": map[string]any{
				"type":        "number",
				"description": "Silent 0-100 estimate of the student's understanding of the lesson",
			},
			"frustrated": map[string]any{
				"type":        "boolean",
				"description": "Whether the student appears tired or frustrated",
			},
		},
		"required":             []any{"reply", "mastery_score"},
		"additionalProperties": false,
	},
}
