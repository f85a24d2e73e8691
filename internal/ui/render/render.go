// Package render formats verbiz data for the terminal.
package render

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/rounds"
	"github.com/abhisek/verbiz/internal/sentences"
	"github.com/abhisek/verbiz/internal/session"
	"github.com/abhisek/verbiz/internal/store"
	"github.com/abhisek/verbiz/internal/ui/theme"
	"github.com/abhisek/verbiz/internal/verbs"
)

// Table renders rows under headers with the shared table style.
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.HeaderCell
			}
			return theme.Cell
		})
	return t.String()
}

// Progress renders a bar for pct in [0,1] whose total width, label and
// percentage included, is width.
func Progress(label string, pct float64, width int) string {
	var b strings.Builder
	if label != "" {
		b.WriteString(theme.Body.Render(label))
		b.WriteString("  ")
	}

	bar := max(width-lipgloss.Width(b.String())-6, 4)
	filled := min(max(int(float64(bar)*pct), 0), bar)

	b.WriteString(theme.ProgressFilled.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", bar-filled)))
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  %3d%%", int(pct*100))))
	return b.String()
}

// Conjugation renders a person-by-tense grid for v. Tenses without forms
// are skipped; an empty list shows every tense the verb has.
func Conjugation(v *verbs.Verb, tenses []conjugation.Tense) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(v.Infinitive))
	if v.Translation != "" {
		b.WriteString(theme.Subtitle.Render("  " + v.Translation))
	}
	b.WriteString("\n")

	var meta []string
	if v.Auxiliary != "" {
		meta = append(meta, "auxiliaire: "+v.Auxiliary)
	}
	if v.PastParticiple != "" {
		meta = append(meta, "participe passé: "+v.PastParticiple)
	}
	if v.PresentParticiple != "" {
		meta = append(meta, "participe présent: "+v.PresentParticiple)
	}
	if len(meta) > 0 {
		b.WriteString(theme.Hint.Render(strings.Join(meta, " · ")))
		b.WriteString("\n")
	}

	if v.Conjugations == nil {
		b.WriteString(theme.Hint.Render("no conjugations stored"))
		return b.String()
	}
	if len(tenses) == 0 {
		tenses = v.Conjugations.Tenses()
	}

	headers := []string{""}
	var shown []conjugation.Tense
	for _, t := range tenses {
		if v.Conjugations.HasForms(t) {
			shown = append(shown, t)
			headers = append(headers, t.DisplayName())
		}
	}
	if len(shown) == 0 {
		b.WriteString(theme.Hint.Render("no forms for the requested tenses"))
		return b.String()
	}

	rows := make([][]string, 0, conjugation.NumPersons)
	for _, p := range conjugation.AllPersons() {
		row := []string{p.Pronoun()}
		for _, t := range shown {
			row = append(row, v.Form(t, p))
		}
		rows = append(rows, row)
	}
	b.WriteString(Table(headers, rows))
	return b.String()
}

// Question renders one question. With reveal the expected answers follow.
func Question(n int, q *rounds.Question, reveal bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render(fmt.Sprintf("%d.", n)), theme.Body.Render(q.Prompt))

	for i, o := range q.Options {
		fmt.Fprintf(&b, "   %s %s\n", theme.Subtitle.Render(fmt.Sprintf("%d)", i+1)), o)
	}
	for _, s := range q.Slots {
		line := "   " + theme.Subtitle.Render(s.Label) + " ______"
		if reveal {
			line += " " + theme.Correct.Render(s.Answer)
		}
		b.WriteString(line + "\n")
	}
	if reveal && len(q.Slots) == 0 {
		fmt.Fprintf(&b, "   %s %s\n", theme.Hint.Render("→"), theme.Correct.Render(q.Answer))
	}
	return b.String()
}

// Batch renders every question in b.
func Batch(b *rounds.Batch, reveal bool) string {
	var out strings.Builder
	title := fmt.Sprintf("%s · %d/%d steps", b.Mode, b.Len(), b.Requested)
	out.WriteString(theme.Title.Render(title))
	out.WriteString("\n\n")
	for i := range b.Questions {
		out.WriteString(Question(i+1, &b.Questions[i], reveal))
		out.WriteString("\n")
	}
	return strings.TrimRight(out.String(), "\n")
}

// Step renders a graded step.
func Step(r session.StepResult) string {
	var b strings.Builder
	if r.Correct() {
		b.WriteString(theme.Correct.Render("✓ correct"))
	} else {
		b.WriteString(theme.Incorrect.Render("✗ incorrect"))
	}
	fmt.Fprintf(&b, "  %d/%d\n", r.Score, r.MaxScore)

	for i, want := range r.Expected {
		var got string
		if i < len(r.Inputs) {
			got = r.Inputs[i]
		}
		mark := theme.Correct.Render("✓")
		if !r.Result.Correct[i] {
			mark = theme.Incorrect.Render("✗")
		}
		fmt.Fprintf(&b, "   %s %-16s %s\n", mark, got, theme.Hint.Render(want))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Summary renders a finished or in-progress session.
func Summary(s session.Summary) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("%s summary", s.Mode)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Score: %d / %d\n", s.Score, s.MaxScore)
	fmt.Fprintf(&b, "Steps: %d correct of %d answered (%d total)\n", s.CorrectSteps, s.Answered, s.Steps)
	fmt.Fprintf(&b, "Time:  %s\n", s.Duration.Round(100*time.Millisecond))
	pct := 0.0
	if s.MaxScore > 0 {
		pct = float64(s.Score) / float64(s.MaxScore)
	}
	b.WriteString(Progress("", pct, 40))
	return theme.Card.Render(b.String())
}

// ModeStats renders per-mode aggregates.
func ModeStats(stats []store.ModeStat) string {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.Mode,
			fmt.Sprint(s.Rounds),
			fmt.Sprintf("%d/%d", s.CorrectSteps, s.Steps),
			fmt.Sprintf("%.0f%%", s.Accuracy()*100),
			fmt.Sprintf("%d/%d", s.Score, s.MaxScore),
			fmt.Sprint(s.BestScore),
		})
	}
	return Table([]string{"Mode", "Rounds", "Steps", "Accuracy", "Score", "Best"}, rows)
}

// Verbs renders a verb listing.
func Verbs(vs []*verbs.Verb) string {
	rows := make([][]string, 0, len(vs))
	for _, v := range vs {
		tenses := 0
		if v.Conjugations != nil {
			tenses = len(v.Conjugations.Tenses())
		}
		rows = append(rows, []string{v.Infinitive, v.Translation, v.Auxiliary, v.Category, fmt.Sprint(tenses)})
	}
	return Table([]string{"Infinitive", "Translation", "Aux", "Category", "Tenses"}, rows)
}

// Sentences renders a template listing.
func Sentences(ts []sentences.Template) string {
	rows := make([][]string, 0, len(ts))
	for _, t := range ts {
		var vs []string
		for _, s := range t.Verbs {
			vs = append(vs, s.Infinitive)
		}
		tenses := make([]string, len(t.Tenses))
		for i, tense := range t.Tenses {
			tenses[i] = string(tense)
		}
		rows = append(rows, []string{t.Text, strings.Join(vs, ", "), strings.Join(tenses, ", ")})
	}
	return Table([]string{"Sentence", "Verbs", "Tenses"}, rows)
}
