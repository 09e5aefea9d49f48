package launcher

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"kijko/pkg/config"
	"kijko/pkg/history"
	"kijko/pkg/process"
	"kijko/pkg/ui"

	"github.com/pkg/browser"
)

// Launcher starts the Kijko dev server, tracks it through the PID marker
// file, and mirrors its output until it exits. The function fields are seams
// for tests; New wires the real implementations.
type Launcher struct {
	cfg *config.Config

	// Alive probes whether a PID refers to a live process
	Alive func(pid int) bool
	// OpenBrowser opens the given URL in the default browser
	OpenBrowser func(url string) error
	// Out receives the child's mirrored output
	Out io.Writer
	// BrowserDelay is how long to wait after spawn before opening the browser
	BrowserDelay time.Duration
	// HistoryPath is where launch records are written; empty disables history
	HistoryPath string
	// SkipBrowser suppresses the browser open entirely
	SkipBrowser bool
}

// New creates a Launcher with the real OS-facing implementations
func New(cfg *config.Config) *Launcher {
	return &Launcher{
		cfg:          cfg,
		Alive:        process.Alive,
		OpenBrowser:  browser.OpenURL,
		Out:          os.Stdout,
		BrowserDelay: time.Duration(cfg.BrowserDelay) * time.Second,
		HistoryPath:  config.HistoryPath(),
	}
}

// Run executes a single launch: verify the toolchain, detect an existing
// instance, spawn the dev server, persist its PID, open the browser, and
// stream the child's output until it exits. A non-nil error maps to exit
// code 1 in the command layer.
func (l *Launcher) Run() error {
	cfg := l.cfg

	ui.Section("Kijko Launcher")
	ui.PrintStatusLine("App directory", cfg.AppDir)
	ui.PrintStatusLine("Node binary", cfg.NodePath())
	ui.PrintStatusLine("NPM binary", cfg.NpmPath())
	ui.NewLine()

	if _, err := os.Stat(cfg.NodePath()); err != nil {
		return fmt.Errorf("Node.js not found at %s, check your Node.js installation", cfg.NodePath())
	}
	if _, err := os.Stat(cfg.NpmPath()); err != nil {
		return fmt.Errorf("NPM not found at %s, check your Node.js installation", cfg.NpmPath())
	}

	if pid, running := l.runningPID(); running {
		ui.InfoF("Kijko is already running (PID %d)", pid)
		l.openBrowser()
		return nil
	}

	return l.spawnAndMonitor()
}

// runningPID reads the marker file and probes the recorded process. Invalid
// and stale markers are removed so the caller can proceed with a fresh spawn.
func (l *Launcher) runningPID() (int, bool) {
	pid, err := process.ReadPIDFile(l.cfg.PIDFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			ui.WarningF("Removing invalid PID file %s", l.cfg.PIDFile)
			_ = process.RemovePIDFile(l.cfg.PIDFile)
		}
		return 0, false
	}

	if l.Alive(pid) {
		return pid, true
	}

	ui.WarningF("Removing stale PID file (PID %d is gone)", pid)
	_ = process.RemovePIDFile(l.cfg.PIDFile)
	return 0, false
}

func (l *Launcher) spawnAndMonitor() error {
	cfg := l.cfg

	ui.Rocket("Starting Kijko...")

	cmd := process.Command(cfg.LaunchCommand(), cfg.AppDir, cfg.Env())

	// Merge stderr into stdout so the child's logs stream as one feed
	pr, pw, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("failed to create output pipe: %w", err)
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return fmt.Errorf("failed to start dev server: %w", err)
	}
	// The child holds its own copy of the write end now
	pw.Close()

	pid := cmd.Process.Pid
	if err := process.WritePIDFile(cfg.PIDFile, pid); err != nil {
		_ = cmd.Process.Kill()
		pr.Close()
		return err
	}

	ui.Success(fmt.Sprintf("Kijko started (PID %d)", pid))
	ui.InfoF("PID saved to %s", cfg.PIDFile)

	recordID := l.recordLaunch(pid)

	if l.BrowserDelay > 0 {
		ui.Loading("Waiting for server to start...")
		time.Sleep(l.BrowserDelay)
	}
	l.openBrowser()

	// Mirror the child's combined output until the stream closes
	scanner := bufio.NewScanner(pr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fmt.Fprintln(l.Out, scanner.Text())
	}
	pr.Close()

	waitErr := cmd.Wait()

	if err := process.RemovePIDFile(cfg.PIDFile); err != nil {
		ui.WarningF("%v", err)
	}
	l.finalizeLaunch(recordID, waitErr)

	if waitErr != nil {
		ui.WarningF("Dev server exited: %v", waitErr)
	} else {
		ui.Info("Dev server exited")
	}
	// A monitored run that reached child exit is a successful launch
	return nil
}

func (l *Launcher) openBrowser() {
	if l.SkipBrowser || l.OpenBrowser == nil {
		return
	}
	url := l.cfg.URL()
	ui.InfoF("Opening %s", url)
	if err := l.OpenBrowser(url); err != nil {
		ui.WarningF("Could not open browser: %v", err)
	}
}

// recordLaunch appends a launch record to the history file. History is best
// effort and never fails the launch.
func (l *Launcher) recordLaunch(pid int) string {
	if l.HistoryPath == "" {
		return ""
	}
	h, err := history.Load(l.HistoryPath)
	if err != nil {
		ui.WarningF("Could not load launch history: %v", err)
		return ""
	}
	id := h.Add(pid, l.cfg.Port)
	if err := h.Save(); err != nil {
		ui.WarningF("Could not save launch history: %v", err)
		return ""
	}
	return id
}

func (l *Launcher) finalizeLaunch(recordID string, waitErr error) {
	if recordID == "" {
		return
	}
	h, err := history.Load(l.HistoryPath)
	if err != nil {
		return
	}
	status := "completed"
	if waitErr != nil {
		status = "failed"
	}
	h.Finalize(recordID, status, waitErr)
	if err := h.Save(); err != nil {
		ui.WarningF("Could not save launch history: %v", err)
	}
}
