package cmd

import (
	"kijko/pkg/config"
	"kijko/pkg/launcher"

	"github.com/spf13/cobra"
)

var noBrowser bool

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Kijko dev server",
	Long: `Start the Kijko development server and stream its output.

If a tracked instance is already running, no new server is started; the
browser is opened at the running instance instead. A stale or invalid PID
marker is cleaned up automatically before a fresh launch.

The launcher blocks until the dev server exits. Stop it from another
terminal with "kijko stop".

Examples:
  kijko start                 # Launch and open the browser
  kijko start --no-browser    # Launch without opening the browser`,
	Args: cobra.NoArgs,
	Run:  runStart,
}

func init() {
	startCmd.Flags().BoolVar(&noBrowser, "no-browser", false, "do not open the browser")
}

func runStart(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile)
	checkError(err)

	l := launcher.New(cfg)
	l.SkipBrowser = noBrowser
	checkError(l.Run())
}
