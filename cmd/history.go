package cmd

import (
	"fmt"

	"kijko/pkg/config"
	"kijko/pkg/history"
	"kijko/pkg/ui"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent launches",
	Long: `Show recent dev server launches and aggregate statistics.

Example:
  kijko history
  kijko history --limit 20`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "number of launches to show")
}

func runHistory(cmd *cobra.Command, args []string) {
	h, err := history.Load(config.HistoryPath())
	checkError(err)

	stats := h.GetStats()
	if stats.TotalLaunches == 0 {
		ui.Info("No launches recorded yet")
		return
	}

	ui.Section("Recent Launches")
	for _, r := range h.Recent(historyLimit) {
		detail := fmt.Sprintf("PID %-8d port %-6d %s", r.PID, r.Port, r.Status)
		if r.Duration > 0 {
			detail += fmt.Sprintf(" (%dms)", r.Duration)
		}
		if r.Error != "" {
			detail += " - " + r.Error
		}
		ui.PrintTable(r.StartTime.Format("2006-01-02 15:04"), detail)
	}
	ui.NewLine()

	ui.PrintStatusLine("Total", fmt.Sprintf("%d", stats.TotalLaunches))
	ui.PrintStatusLine("Completed", fmt.Sprintf("%d", stats.Completed))
	ui.PrintStatusLine("Failed", fmt.Sprintf("%d", stats.Failed))
}
