package author

import (
	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/llm"
)

// TemplateSchema is the structured output requested from the provider.
var TemplateSchema = &llm.Schema{
	Name:        "sentence-templates",
	Description: "French practice sentences with one parenthesised infinitive to conjugate",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sentences": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "The sentence with the verb written as its infinitive in parentheses, e.g. \"Nous (parler) au voisin.\"",
						},
						"subject": map[string]any{
							"type":        "string",
							"description": "The grammatical subject of the parenthesised verb exactly as it appears in the text",
						},
						"tenses": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string", "enum": tenseEnum()},
							"description": "Tenses in which the sentence reads naturally",
						},
					},
					"required":             []any{"text", "subject", "tenses"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"sentences"},
		"additionalProperties": false,
	},
}

func tenseEnum() []any {
	ts := conjugation.AllTenses()
	out := make([]any, len(ts))
	for i, t := range ts {
		out[i] = string(t)
	}
	return out
}
