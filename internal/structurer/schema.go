package structurer

import "github.com/lumenacademy/lumen/internal/llm"

// lessonProperties is the shared per-lesson shape for both response schemas.
var lessonProperties = map[string]any{
	"id": map[string]any{
		"type":        "string",
		"description": "Lesson identifier, e.g. l1",
	},
	"title": map[string]any{
		"type":        "string",
		"description": "Short, action-oriented lesson title",
	},
	"format": map[string]any{
		"type":        "string",
		"enum":        []any{"theory", "visual", "video", "chat", "mental_practice"},
		"description": "Delivery format for this lesson",
	},
	"content": map[string]any{
		"type":        "string",
		"description": "Full lesson content, clear and beginner-friendly",
	},
	"duration": map[string]any{
		"type":        "number",
		"description": "Estimated duration in minutes",
	},
}

func lessonArray() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":                 "object",
			"properties":           lessonProperties,
			"required":             []any{"title", "format", "content"},
			"additionalProperties": false,
		},
	}
}

// FlatLessonsSchema is the simple response shape: one ordered lessons array.
var FlatLessonsSchema = &llm.Schema{
	Name:        "course-lessons",
	Description: "An ordered list of micro-lessons structured from raw course content",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"lessons": lessonArray(),
		},
		"required":             []any{"lessons"},
		"additionalProperties": false,
	},
}

// ModularLessonsSchema is the richer response shape: lessons grouped under
// named modules. The pipeline flattens it into the same canonical list.
var ModularLessonsSchema = &llm.Schema{
	Name:        "course-modules",
	Description: "Micro-lessons grouped into modules, structured from raw course content",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"modules": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Module title",
						},
						"lessons": lessonArray(),
					},
					"required":             []any{"lessons"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"modules"},
		"additionalProperties": false,
	},
}
