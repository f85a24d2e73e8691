package author

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write short French sentences for verb conjugation practice.

Rules:
- Each sentence contains the requested verb exactly once, written as its infinitive in parentheses, e.g. "Les enfants (jouer) dans le parc."
- Write the infinitive exactly as given, including any reflexive "se".
- No other parentheses appear in the sentence.
- The subject is explicit and appears in the sentence. Prefer nouns and noun phrases ("Le boulanger", "Mes cousins") over bare third-person pronouns.
- Only list tenses in which the sentence reads naturally, chosen from the requested ones.
- Vary themes: nature, people, work, places, food, technology, education.
- Do not repeat any sentence from the "already stored" list.`

// buildUserMessage describes one authoring request.
func buildUserMessage(in Input, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Verb: %s\n", in.Infinitive)
	names := make([]string, len(in.Tenses))
	for i, t := range in.Tenses {
		names[i] = fmt.Sprintf("%s (%s)", t, t.DisplayName())
	}
	fmt.Fprintf(&b, "Tenses: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, "Sentences wanted: %d\n", in.count(cfg))

	b.WriteString("\nAlready stored:\n")
	b.WriteString(numbered(in.Existing, cfg.MaxExisting))
	return b.String()
}

// numbered lists the last max entries, or "None".
func numbered(items []string, max int) string {
	if len(items) == 0 {
		return "None"
	}
	if max > 0 && len(items) > max {
		items = items[len(items)-max:]
	}

	var b strings.Builder
	for i, s := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}
