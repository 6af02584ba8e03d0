package generator

import "github.com/abhisek/langcoach/internal/llm"

// ExercisesSchema defines the JSON schema for exercise generation responses.
// Every object lists all of its properties as required with no extras, as
// strict structured-output modes demand.
var ExercisesSchema = &llm.Schema{
	Name:        "fill-in-exercises",
	Description: "A set of fill-in-the-blank language exercises with answers and hints",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"exercises": map[string]any{
				"type":        "array",
				"description": "The generated exercises, in the order they should be played",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"exercise": map[string]any{
							"type":        "string",
							"description": "One or two sentences in the target language with each blank written as ___",
						},
						"answers": map[string]any{
							"type":        "array",
							"description": "Accepted answers. Repeat a position to accept several answers for one blank.",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"position": map[string]any{
										"type":        "integer",
										"minimum":     0,
										"description": "Zero-based index of the blank among the ___ markers",
									},
									"answer": map[string]any{
										"type":        "string",
										"description": "The word or phrase that fills the blank",
									},
									"explanation": map[string]any{
										"type":        "string",
										"description": "Why this answer is correct, in the learner's language",
									},
									"baseForm": map[string]any{
										"type":        "string",
										"description": "Dictionary form of the answer, e.g. the infinitive of a verb",
									},
								},
								"required":             []any{"position", "answer", "explanation", "baseForm"},
								"additionalProperties": false,
							},
						},
						"hints": map[string]any{
							"type":        "array",
							"description": "Progressive hints, vaguest first. Empty when hints are not requested.",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"evidence": map[string]any{
										"type":        "integer",
										"minimum":     1,
										"description": "Reveal order; 1 is the vaguest hint",
									},
									"hint": map[string]any{
										"type":        "string",
										"description": "Hint text in the learner's language",
									},
								},
								"required":             []any{"evidence", "hint"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"exercise", "answers", "hints"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"exercises"},
		"additionalProperties": false,
	},
}
