package cmd

import (
	"errors"
	"fmt"
	"os"

	"kijko/pkg/config"
	"kijko/pkg/process"
	"kijko/pkg/ui"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the Kijko dev server is running",
	Long: `Show the state of the tracked dev server.

Reads the PID marker file and probes the recorded process. Reporting only;
stale markers are left for "kijko start" to clean up.

Example:
  kijko status`,
	Args: cobra.NoArgs,
	Run:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile)
	checkError(err)

	pid, err := process.ReadPIDFile(cfg.PIDFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			ui.Info("Kijko is not running")
			return
		}
		ui.WarningF("PID file %s has invalid content", cfg.PIDFile)
		return
	}

	if !process.Alive(pid) {
		ui.WarningF("Kijko is not running (stale PID %d in marker file)", pid)
		return
	}

	ui.Success(fmt.Sprintf("Kijko is running (PID %d)", pid))
	ui.PrintStatusLine("URL", cfg.URL())
	ui.PrintStatusLine("PID file", cfg.PIDFile)
}
