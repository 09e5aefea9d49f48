//go:build !windows

package process

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// Command builds a shell invocation of the given command string. The child
// runs in its own process group so Stop can terminate it together with
// anything it forks (npm spawns the actual vite process).
func Command(command, dir string, env []string) *exec.Cmd {
	cmd := exec.Command("bash", "-c", command)
	cmd.Dir = dir
	cmd.Env = env
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	return cmd
}

// Alive checks whether a process with the given PID is running by sending
// signal 0 (a no-op that still returns ESRCH if the process doesn't exist).
// EPERM means the process exists but belongs to another user.
func Alive(pid int) bool {
	err := syscall.Kill(pid, 0)
	return err == nil || err == syscall.EPERM
}

// Stop sends SIGTERM to the process group recorded in pidFile, waits up to
// 5 seconds, then sends SIGKILL if the process is still running. Removes the
// PID file.
func Stop(pidFile string) error {
	pid, err := ReadPIDFile(pidFile)
	if err != nil {
		return err
	}

	// Send SIGTERM to the entire process group (negative PID)
	pgid := -pid
	if err := syscall.Kill(pgid, syscall.SIGTERM); err != nil && err != syscall.ESRCH {
		// Process may already be gone; treat ESRCH as success
		_ = os.Remove(pidFile)
		return fmt.Errorf("failed to send SIGTERM to %d: %w", pid, err)
	}

	// Wait up to 5 seconds for graceful shutdown
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if !Alive(pid) {
			break
		}
		time.Sleep(200 * time.Millisecond)
	}

	// Force kill if still running
	if Alive(pid) {
		_ = syscall.Kill(pgid, syscall.SIGKILL)
	}

	_ = os.Remove(pidFile)
	return nil
}
