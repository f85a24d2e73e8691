package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/verbiz/internal/ui/render"
	"github.com/abhisek/verbiz/internal/verbs"
)

var verbsCmd = &cobra.Command{
	Use:   "verbs",
	Short: "Manage the verb store",
}

var verbsImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import verbs with flat conjugation records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		c, err := verbs.LoadJSON(f)
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.Store.VerbRepo().Upsert(cmd.Context(), c.All()...)
		if err != nil {
			return err
		}
		printf(cmd, "Imported %d verbs from %s\n", n, args[0])
		return nil
	},
}

var verbsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored verbs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		vs, err := a.Store.VerbRepo().All(cmd.Context())
		if err != nil {
			return err
		}
		if len(vs) == 0 {
			printOut(cmd, "No verbs stored.")
			return nil
		}
		printOut(cmd, render.Verbs(vs))
		return nil
	},
}

var verbsShowCmd = &cobra.Command{
	Use:   "show <verb>",
	Short: "Show a verb with every stored tense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		printOut(cmd, render.Conjugation(v, nil))
		return nil
	},
}

func init() {
	verbsCmd.AddCommand(verbsImportCmd)
	verbsCmd.AddCommand(verbsListCmd)
	verbsCmd.AddCommand(verbsShowCmd)
}
