package cmd

import (
	"fmt"
	"os"

	"kijko/pkg/config"
	"kijko/pkg/doctor"
	"kijko/pkg/ui"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the launch environment",
	Long: `Run diagnostic checks on the Kijko launch environment.

Verifies the Node toolchain, the nvm installation, the app directory, the
PID marker file, and the dev server port.

Example:
  kijko doctor`,
	Args: cobra.NoArgs,
	Run:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile)
	checkError(err)

	ui.Section("Environment Checks")

	checks := doctor.Run(cfg)
	for _, c := range checks {
		line := fmt.Sprintf("%s: %s", c.Name, c.Detail)
		if c.OK {
			ui.CheckMark(line)
		} else {
			ui.CrossMark(line)
		}
	}
	ui.NewLine()

	if doctor.HasFailures(checks) {
		ui.Error("Some checks failed")
		os.Exit(1)
	}
	ui.Success("Environment looks good")
}
