package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/verbiz/internal/conjugation"
	"github.com/abhisek/verbiz/internal/ui/render"
)

var conjugateCmd = &cobra.Command{
	Use:   "conjugate <verb> [tense...]",
	Short: "Show a verb's conjugation table",
	Long: "Show a verb's conjugation table. Tenses are identifiers or French labels:\n  " +
		tenseHelp(),
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tenses, err := conjugation.ParseTenses(args[1:])
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		v, err := a.Store.VerbRepo().ByInfinitive(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("verb %q not found", args[0])
		}
		printOut(cmd, render.Conjugation(v, tenses))
		return nil
	},
}

func tenseHelp() string {
	var parts []string
	for _, t := range conjugation.AllTenses() {
		parts = append(parts, fmt.Sprintf("%s (%s)", t, t.DisplayName()))
	}
	return strings.Join(parts, "\n  ")
}
