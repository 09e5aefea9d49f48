package doctor

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"kijko/pkg/config"
	"kijko/pkg/process"
)

// Check is a single diagnostic result
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Run executes all environment checks for the given configuration
func Run(cfg *config.Config) []Check {
	pidCheck := checkPIDFile(cfg.PIDFile)
	return []Check{
		checkFile("Node binary", cfg.NodePath()),
		checkFile("NPM binary", cfg.NpmPath()),
		checkFile("nvm init script", cfg.NvmScript()),
		checkAppDir(cfg.AppDir),
		pidCheck,
		checkPort(cfg, pidCheck),
	}
}

// HasFailures reports whether any check failed
func HasFailures(checks []Check) bool {
	for _, c := range checks {
		if !c.OK {
			return true
		}
	}
	return false
}

func checkFile(name, path string) Check {
	if _, err := os.Stat(path); err != nil {
		return Check{Name: name, OK: false, Detail: fmt.Sprintf("not found at %s", path)}
	}
	return Check{Name: name, OK: true, Detail: path}
}

func checkAppDir(dir string) Check {
	stat, err := os.Stat(dir)
	if err != nil || !stat.IsDir() {
		return Check{Name: "App directory", OK: false, Detail: fmt.Sprintf("not found at %s", dir)}
	}
	if _, err := os.Stat(filepath.Join(dir, "package.json")); err != nil {
		return Check{Name: "App directory", OK: false, Detail: fmt.Sprintf("%s has no package.json", dir)}
	}
	return Check{Name: "App directory", OK: true, Detail: dir}
}

func checkPIDFile(path string) Check {
	pid, err := process.ReadPIDFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Check{Name: "PID file", OK: true, Detail: "no tracked process"}
		}
		return Check{Name: "PID file", OK: false, Detail: fmt.Sprintf("invalid content in %s (cleaned on next start)", path)}
	}
	if process.Alive(pid) {
		return Check{Name: "PID file", OK: true, Detail: fmt.Sprintf("dev server running (PID %d)", pid)}
	}
	return Check{Name: "PID file", OK: false, Detail: fmt.Sprintf("stale PID %d (cleaned on next start)", pid)}
}

// checkPort probes whether the configured port is free. When the tracked dev
// server is running the port is expected to be busy, which is fine.
func checkPort(cfg *config.Config, pidCheck Check) Check {
	name := fmt.Sprintf("Port %d", cfg.Port)

	ln, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", cfg.Port))
	if err == nil {
		ln.Close()
		return Check{Name: name, OK: true, Detail: "available"}
	}

	if pidCheck.OK && pidCheck.Detail != "no tracked process" {
		return Check{Name: name, OK: true, Detail: "in use by the tracked dev server"}
	}
	return Check{Name: name, OK: false, Detail: "in use by another process"}
}
