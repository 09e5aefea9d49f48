//go:build windows

package process

import (
	"fmt"
	"os"
	"os/exec"
	"time"
)

// Command builds a shell invocation of the given command string.
// Note: process group isolation (Setpgid) is not available on Windows;
// child processes may outlive the parent.
func Command(command, dir string, env []string) *exec.Cmd {
	cmd := exec.Command("cmd", "/C", command)
	cmd.Dir = dir
	cmd.Env = env
	return cmd
}

// Alive reports whether a process with the given PID is running.
// On Windows FindProcess always succeeds; use tasklist to verify.
func Alive(pid int) bool {
	out, err := exec.Command("tasklist", "/FI", fmt.Sprintf("PID eq %d", pid), "/NH").Output()
	if err != nil {
		return false
	}
	return len(out) > 0 && string(out) != "INFO: No tasks are running which match the specified criteria.\r\n"
}

// Stop kills the process recorded in pidFile and removes the file
func Stop(pidFile string) error {
	pid, err := ReadPIDFile(pidFile)
	if err != nil {
		return err
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		_ = os.Remove(pidFile)
		return nil
	}

	if err := proc.Kill(); err != nil {
		_ = os.Remove(pidFile)
		return fmt.Errorf("failed to kill process %d: %w", pid, err)
	}

	time.Sleep(200 * time.Millisecond)
	_ = os.Remove(pidFile)
	return nil
}
