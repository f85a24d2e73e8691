package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/verbiz/internal/store"
	"github.com/abhisek/verbiz/internal/ui/render"
	"github.com/abhisek/verbiz/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics per mode and recent rounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		recent, _ := cmd.Flags().GetInt("recent")
		mode, _ := cmd.Flags().GetString("mode")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		stats, err := a.Store.EventRepo().ModeStats(ctx)
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			printOut(cmd, "No rounds recorded yet. Play one with `verbiz round <mode> --answer ...`.")
			return nil
		}
		printOut(cmd, theme.Title.Render("By mode"))
		printOut(cmd, render.ModeStats(stats))

		if recent <= 0 {
			return nil
		}
		evs, err := a.Store.EventRepo().QueryRounds(ctx, store.QueryOpts{Limit: recent, Mode: mode})
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(evs))
		for _, e := range evs {
			rows = append(rows, []string{
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				e.Mode,
				fmt.Sprintf("%d/%d", e.CorrectSteps, e.Steps),
				fmt.Sprintf("%d/%d", e.Score, e.MaxScore),
				fmt.Sprintf("%.1fs", float64(e.DurationMs)/1000),
			})
		}
		printOut(cmd)
		printOut(cmd, theme.Title.Render("Recent rounds"))
		printOut(cmd, render.Table([]string{"When", "Mode", "Steps", "Score", "Time"}, rows))
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("recent", "n", 10, "Number of recent rounds to list (0 = none)")
	statsCmd.Flags().StringP("mode", "m", "", "Only list recent rounds of this mode")
}
