package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/verbiz/internal/grading"
	"github.com/abhisek/verbiz/internal/ui/theme"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <expected> <answer>",
	Short: "Check an answer the way rounds grade it",
	Long:  "Check an answer the way rounds grade it: case, surrounding spaces and Unicode composition are ignored, accents are not.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if grading.IsCorrect(args[1], args[0]) {
			printOut(cmd, theme.Correct.Render("✓ correct"))
			return nil
		}
		printOut(cmd, theme.Incorrect.Render("✗ incorrect"), theme.Hint.Render("expected "+grading.Normalize(args[0])))
		return nil
	},
}
