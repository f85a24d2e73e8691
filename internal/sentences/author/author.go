// Package author asks an LLM provider for new sentence templates and
// keeps only those that pass schema and consistency checks.
package author

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/grading"
	"github.com/abhisek/verbiz/internal/llm"
	"github.com/abhisek/verbiz/internal/sentences"
)

// Purpose labels authoring requests in the LLM event log.
const Purpose = "sentence-author"

// ErrNoTemplates is returned when every generated sentence was rejected.
var ErrNoTemplates = errors.New("no usable sentences generated")

// Config controls the Author.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Count is the number of sentences requested when Input.Count is 0.
	Count int

	// MaxExisting caps how many stored sentences are listed in the
	// prompt for deduplication.
	MaxExisting int
}

// DefaultConfig returns the recommended authoring defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.8,
		Count:       5,
		MaxExisting: 20,
	}
}

// Input describes one authoring request.
type Input struct {
	Infinitive string
	Tenses     []conjugation.Tense
	Count      int
	Existing   []string // texts already stored for this verb
}

func (in Input) count(cfg Config) int {
	if in.Count > 0 {
		return in.Count
	}
	return cfg.Count
}

// Rejection records a generated sentence that was discarded.
type Rejection struct {
	Text   string
	Reason string
}

// Result holds the accepted templates and what was discarded.
type Result struct {
	Templates []sentences.Template
	Rejected  []Rejection
}

// Author generates sentence templates through an LLM provider.
type Author struct {
	provider llm.Provider
	config   Config
}

// New creates an Author.
func New(provider llm.Provider, cfg Config) *Author {
	return &Author{provider: provider, config: cfg}
}

type output struct {
	Sentences []struct {
		Text    string   `json:"text"`
		Subject string   `json:"subject"`
		Tenses  []string `json:"tenses"`
	} `json:"sentences"`
}

// Generate requests sentences for one verb. Accepted templates carry the
// verb at the placeholder matching its infinitive and only the requested
// tenses the provider vouched for. Templates have no ID; the store assigns
// one on insert.
func (a *Author) Generate(ctx context.Context, in Input) (*Result, error) {
	in.Infinitive = strings.TrimSpace(in.Infinitive)
	if in.Infinitive == "" {
		return nil, fmt.Errorf("author: empty infinitive")
	}
	if len(in.Tenses) == 0 {
		return nil, fmt.Errorf("author: no tenses for %q", in.Infinitive)
	}

	resp, err := a.provider.Generate(ctx, llm.Request{
		Purpose:     Purpose,
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(in, a.config)}},
		Schema:      TemplateSchema,
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw output
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	seen := make(map[string]bool, len(in.Existing)+len(raw.Sentences))
	for _, s := range in.Existing {
		seen[grading.Normalize(s)] = true
	}

	res := &Result{}
	for _, s := range raw.Sentences {
		t, reason := a.accept(in, s.Text, s.Subject, s.Tenses)
		if reason == "" && seen[grading.Normalize(t.Text)] {
			reason = "duplicate sentence"
		}
		if reason != "" {
			res.Rejected = append(res.Rejected, Rejection{Text: s.Text, Reason: reason})
			continue
		}
		seen[grading.Normalize(t.Text)] = true
		res.Templates = append(res.Templates, t)
	}

	if len(res.Templates) == 0 {
		return res, fmt.Errorf("%w for %q (%d rejected)", ErrNoTemplates, in.Infinitive, len(res.Rejected))
	}
	return res, nil
}

// accept builds a template or returns why it cannot be used.
func (a *Author) accept(in Input, text, subject string, tenses []string) (sentences.Template, string) {
	text = strings.TrimSpace(text)
	subject = strings.TrimSpace(subject)

	pos := -1
	for i, hole := range sentences.Placeholders(text) {
		if grading.Normalize(hole) == grading.Normalize(in.Infinitive) {
			pos = i
			break
		}
	}
	if pos < 0 {
		return sentences.Template{}, fmt.Sprintf("no (%s) placeholder", in.Infinitive)
	}
	if subject != "" && !strings.Contains(strings.ToLower(text), strings.ToLower(subject)) {
		return sentences.Template{}, fmt.Sprintf("subject %q not in sentence", subject)
	}

	var kept []conjugation.Tense
	for _, s := range tenses {
		t := conjugation.Tense(s)
		if slices.Contains(in.Tenses, t) && !slices.Contains(kept, t) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return sentences.Template{}, "no requested tense"
	}

	t := sentences.Template{
		Text:   text,
		Verbs:  []sentences.Slot{{Infinitive: sentences.Placeholders(text)[pos], Position: pos, Subject: subject}},
		Tenses: kept,
	}
	if err := t.Validate(); err != nil {
		return sentences.Template{}, err.Error()
	}
	return t, ""
}
