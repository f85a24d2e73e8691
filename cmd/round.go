package cmd

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/rounds"
	"github.com/abhisek/verbiz/internal/session"
	"github.com/abhisek/verbiz/internal/ui/render"
)

var roundCmd = &cobra.Command{
	Use:   "round <mode>",
	Short: "Generate a practice round",
	Long: `Generate a practice round and print it.

Modes: find-error, matching, fill-grid, speed-race, random-grid, sentence, participle.

With --answer the round is played immediately: pass one --answer per step,
separating the slots of multi-answer steps with "|". Choice steps accept the
option number or its text. The graded round is recorded for ` + "`verbiz stats`" + `.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := rounds.ParseMode(args[0])
		if err != nil {
			return err
		}
		verbArgs, _ := cmd.Flags().GetStringSlice("verbs")
		tenseArgs, _ := cmd.Flags().GetStringSlice("tenses")
		steps, _ := cmd.Flags().GetInt("steps")
		participle, _ := cmd.Flags().GetString("participle")
		asJSON, _ := cmd.Flags().GetBool("json")
		reveal, _ := cmd.Flags().GetBool("reveal")
		answers, _ := cmd.Flags().GetStringArray("answer")

		tenses, err := conjugation.ParseTenses(tenseArgs)
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if steps <= 0 {
			steps = a.Config.Game.DefaultSteps
		}
		if len(verbArgs) == 0 {
			vs, err := a.Store.VerbRepo().All(ctx)
			if err != nil {
				return err
			}
			for _, v := range vs {
				verbArgs = append(verbArgs, v.Infinitive)
			}
		}

		reg, err := a.Registry(ctx)
		if err != nil {
			return err
		}
		batch, err := reg.Generate(ctx, mode, rounds.Request{
			Verbs:      verbArgs,
			Tenses:     tenses,
			Steps:      steps,
			Participle: rounds.ParticipleKind(participle),
		})
		if err != nil {
			return err
		}

		if len(answers) == 0 {
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(batch)
			}
			printOut(cmd, render.Batch(batch, reveal))
			return nil
		}

		s, err := a.NewSession(batch)
		if err != nil {
			return err
		}
		// Steps without an answer expire with no input.
		for i := 0; !s.Done(); i++ {
			q := s.Current()
			var res session.StepResult
			if i < len(answers) {
				res, err = s.Submit(ctx, strings.Split(answers[i], "|")...)
			} else {
				res, err = s.Expire(ctx)
			}
			if err != nil {
				return err
			}
			if !asJSON {
				printOut(cmd, render.Question(i+1, q, false))
				printOut(cmd, render.Step(res))
				printOut(cmd)
			}
		}

		sum := s.Summary()
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sum)
		}
		printOut(cmd, render.Summary(sum))
		return nil
	},
}

func init() {
	roundCmd.Flags().StringSliceP("verbs", "v", nil, "Verb pool (default: every stored verb)")
	roundCmd.Flags().StringSliceP("tenses", "t", []string{"present", "imparfait", "futur_simple"}, "Tense pool")
	roundCmd.Flags().IntP("steps", "n", 0, "Number of steps (default from game.default_steps)")
	roundCmd.Flags().String("participle", "", "Participle kind for the participle mode: past or present (default random)")
	roundCmd.Flags().Bool("json", false, "Print JSON instead of a table")
	roundCmd.Flags().Bool("reveal", false, "Show expected answers")
	roundCmd.Flags().StringArrayP("answer", "a", nil, "Answer for the next step; repeat per step")
	roundCmd.Flags().Uint64("seed", 0, "Random seed for reproducible rounds (0 = configured seed)")
}
