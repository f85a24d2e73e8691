// Package cmd implements the verbiz command line.
package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/verbiz/internal/app"
)

var rootCmd = &cobra.Command{
	Use:           "verbiz",
	Short:         "French verb conjugation trainer",
	Long:          "verbiz looks up French conjugations and generates practice rounds from a local verb and sentence store.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and prints a friendly error on failure.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		lipgloss.Fprintln(rootCmd.ErrOrStderr(), explain(err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VERBIZ_DB)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides VERBIZ_CONFIG)")

	rootCmd.AddCommand(conjugateCmd)
	rootCmd.AddCommand(verbsCmd)
	rootCmd.AddCommand(sentencesCmd)
	rootCmd.AddCommand(roundCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// openApp builds the application from persistent flags. Callers close it.
func openApp(cmd *cobra.Command) (*app.App, error) {
	opts := app.Options{}
	opts.DBPath, _ = cmd.Flags().GetString("db")
	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	if cmd.Flags().Lookup("seed") != nil {
		opts.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	return app.New(cmd.Context(), opts)
}

// printOut writes styled output to stdout, downsampling colors for the
// terminal.
func printOut(cmd *cobra.Command, a ...any) {
	lipgloss.Fprintln(cmd.OutOrStdout(), a...)
}

func printf(cmd *cobra.Command, format string, a ...any) {
	lipgloss.Fprint(cmd.OutOrStdout(), fmt.Sprintf(format, a...))
}
