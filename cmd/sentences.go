package cmd

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/sentences"
	"github.com/abhisek/verbiz/internal/sentences/author"
	"github.com/abhisek/verbiz/internal/ui/render"
	"github.com/abhisek/verbiz/internal/ui/theme"
	"github.com/abhisek/verbiz/internal/verbs"
)

var sentencesCmd = &cobra.Command{
	Use:   "sentences",
	Short: "Manage sentence templates for the sentence challenge",
}

var sentencesImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import sentence templates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		ts, err := sentences.LoadJSON(f)
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.Store.SentenceRepo().Add(cmd.Context(), "import", ts...)
		if err != nil {
			return err
		}
		printf(cmd, "Imported %d of %d sentences (%d already stored)\n", n, len(ts), len(ts)-n)
		return nil
	},
}

var sentencesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sentence templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ts, err := a.Store.SentenceRepo().List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(ts) == 0 {
			printOut(cmd, "No sentences stored.")
			return nil
		}
		printOut(cmd, render.Sentences(ts))
		return nil
	},
}

var sentencesAuthorCmd = &cobra.Command{
	Use:   "author <verb>",
	Short: "Generate new sentence templates for a verb with the configured LLM",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tenseArgs, _ := cmd.Flags().GetStringSlice("tenses")
		count, _ := cmd.Flags().GetInt("count")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		tenses, err := conjugation.ParseTenses(tenseArgs)
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		au, err := a.Author()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), a.Config.LLM.Timeout)
		defer cancel()

		existing, err := existingTexts(ctx, a.Store.SentenceRepo(), args[0])
		if err != nil {
			return err
		}

		res, err := au.Generate(ctx, author.Input{
			Infinitive: args[0],
			Tenses:     tenses,
			Count:      count,
			Existing:   existing,
		})
		if res != nil {
			for _, r := range res.Rejected {
				printOut(cmd, theme.Hint.Render(fmt.Sprintf("rejected: %s (%s)", r.Text, r.Reason)))
			}
		}
		if err != nil {
			return err
		}

		printOut(cmd, render.Sentences(res.Templates))
		if dryRun {
			return nil
		}
		n, err := a.Store.SentenceRepo().Add(ctx, author.Purpose, res.Templates...)
		if err != nil {
			return err
		}
		printf(cmd, "Stored %d new sentences\n", n)
		return nil
	},
}

// existingTexts lists stored sentences that use infinitive.
func existingTexts(ctx context.Context, repo interface {
	List(context.Context, int) ([]sentences.Template, error)
}, infinitive string) ([]string, error) {
	all, err := repo.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	key := verbs.Key(infinitive)
	var out []string
	for _, t := range all {
		if slices.ContainsFunc(t.Verbs, func(s sentences.Slot) bool { return verbs.Key(s.Infinitive) == key }) {
			out = append(out, t.Text)
		}
	}
	return out, nil
}

func init() {
	sentencesListCmd.Flags().IntP("limit", "n", 50, "Number of sentences to show (0 = all)")

	sentencesAuthorCmd.Flags().StringSliceP("tenses", "t", []string{"present", "imparfait", "futur_simple", "passe_compose"}, "Tenses the sentences should support")
	sentencesAuthorCmd.Flags().IntP("count", "c", 0, "Number of sentences to request (default from author config)")
	sentencesAuthorCmd.Flags().Bool("dry-run", false, "Print generated sentences without storing them")

	sentencesCmd.AddCommand(sentencesImportCmd)
	sentencesCmd.AddCommand(sentencesListCmd)
	sentencesCmd.AddCommand(sentencesAuthorCmd)
}
