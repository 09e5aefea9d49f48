package cmd

import (
	"errors"
	"os"

	"kijko/pkg/config"
	"kijko/pkg/process"
	"kijko/pkg/ui"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the tracked Kijko dev server",
	Long: `Stop the dev server recorded in the PID marker file.

Sends SIGTERM to the server's process group, waits briefly for a graceful
shutdown, then force-kills if needed. The marker file is removed either way.

Example:
  kijko stop`,
	Args: cobra.NoArgs,
	Run:  runStop,
}

func runStop(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile)
	checkError(err)

	pid, err := process.ReadPIDFile(cfg.PIDFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			ui.Info("Kijko is not running")
			return
		}
		ui.Warning("Removing invalid PID file")
		ui.FatalError(process.RemovePIDFile(cfg.PIDFile))
		return
	}

	if !process.Alive(pid) {
		ui.InfoF("Kijko is not running (removing stale PID %d)", pid)
		ui.FatalError(process.RemovePIDFile(cfg.PIDFile))
		return
	}

	ui.Loading("Stopping Kijko...")
	ui.FatalError(process.Stop(cfg.PIDFile))
	ui.Success("Kijko stopped")
}
