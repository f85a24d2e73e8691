package llm

import (
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema_SentenceTemplates(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sentences": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 10.0,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text":    map[string]any{"type": "string", "description": "sentence with (infinitive)"},
						"subject": map[string]any{"type": "string"},
						"tenses": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string", "enum": []any{"present", "imparfait"}},
						},
						"weight": map[string]any{"type": "number"},
						"person": map[string]any{"type": "integer"},
						"formal": map[string]any{"type": "boolean"},
					},
					"required":             []string{"text", "subject", "tenses"},
					"additionalProperties": false,
				},
			},
		},
		"required": []any{"sentences"},
	}

	schema := buildGeminiSchema(def)
	if schema.Type != genai.TypeObject || len(schema.Required) != 1 {
		t.Fatalf("root = %+v", schema)
	}
	sentences := schema.Properties["sentences"]
	items := sentences.Items
	if sentences.Type != genai.TypeArray || items == nil {
		t.Fatalf("sentences = %+v", sentences)
	}
	if sentences.MinItems == nil || *sentences.MinItems != 1 || sentences.MaxItems == nil || *sentences.MaxItems != 10 {
		t.Errorf("item bounds = %v..%v", sentences.MinItems, sentences.MaxItems)
	}
	if len(items.Required) != 3 || len(items.Properties) != 6 {
		t.Errorf("item required=%v properties=%d", items.Required, len(items.Properties))
	}
	if items.Properties["text"].Description != "sentence with (infinitive)" {
		t.Errorf("text description = %q", items.Properties["text"].Description)
	}
	tenses := items.Properties["tenses"]
	if tenses.Items == nil || len(tenses.Items.Enum) != 2 || tenses.Items.Enum[1] != "imparfait" {
		t.Errorf("tenses = %+v", tenses)
	}
	for name, want := range map[string]genai.Type{
		"weight": genai.TypeNumber,
		"person": genai.TypeInteger,
		"formal": genai.TypeBoolean,
	} {
		if got := items.Properties[name].Type; got != want {
			t.Errorf("%s type = %s, want %s", name, got, want)
		}
	}
}

func TestMapGeminiError(t *testing.T) {
	tests := []struct {
		code int
		want any
	}{
		{429, new(*ErrRateLimit)},
		{503, new(*ErrProviderUnavailable)},
		{403, new(*ErrRejected)},
	}
	for _, tt := range tests {
		err := mapGeminiError(&genai.APIError{Code: tt.code, Message: "nope"})
		if !errors.As(err, tt.want) {
			t.Errorf("code %d: error = %T, want %T", tt.code, err, tt.want)
		}
	}

	var unavail *ErrProviderUnavailable
	if err := mapGeminiError(errors.New("dial tcp: refused")); !errors.As(err, &unavail) {
		t.Errorf("transport error = %T, want ErrProviderUnavailable", err)
	}
}

func TestGeminiResponseHelpers(t *testing.T) {
	truncated := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonMaxTokens}},
	}
	if got := mapGeminiStopReason(truncated); got != StopMaxTokens {
		t.Errorf("stop reason = %q, want %q", got, StopMaxTokens)
	}
	if got := mapGeminiStopReason(&genai.GenerateContentResponse{}); got != StopEnd {
		t.Errorf("stop reason without candidates = %q", got)
	}

	blocked := &genai.GenerateContentResponse{
		PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: "SAFETY"},
	}
	if got := geminiBlockReason(blocked); !strings.Contains(got, "SAFETY") {
		t.Errorf("block reason = %q", got)
	}
	if got := geminiBlockReason(&genai.GenerateContentResponse{}); got != "" {
		t.Errorf("block reason without feedback = %q", got)
	}
}
