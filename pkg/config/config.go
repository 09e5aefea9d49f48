package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPort is the port the Vite dev server listens on
	DefaultPort = 5173

	// DefaultNodeVersion is the nvm-managed Node version the app is pinned to
	DefaultNodeVersion = "24.4.1"

	pidFileName = "kijko-app.pid"
)

// Config holds the launch parameters for the Kijko dev server.
// It is resolved once at startup and treated as immutable afterwards.
type Config struct {
	AppDir       string `yaml:"app_dir"`       // working directory of the web app
	PIDFile      string `yaml:"pid_file"`      // marker file recording the tracked PID
	NodeBin      string `yaml:"node_bin"`      // bin directory of the selected Node install
	NvmDir       string `yaml:"nvm_dir"`       // nvm installation root
	NodeVersion  string `yaml:"node_version"`  // version passed to `nvm use`
	Port         int    `yaml:"port"`          // dev server port
	StartCommand string `yaml:"start_command"` // overrides the nvm/npm launch sequence
	BrowserDelay int    `yaml:"browser_delay"` // seconds to wait before opening the browser
}

// Default returns the built-in configuration, mirroring the standard
// single-developer Kijko setup (nvm under $HOME, app under ~/Projects).
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return &Config{
		AppDir:       filepath.Join(home, "Projects", "Kijko", "MVP", "MVP_Kijko"),
		PIDFile:      filepath.Join(os.TempDir(), pidFileName),
		NvmDir:       filepath.Join(home, ".nvm"),
		NodeVersion:  DefaultNodeVersion,
		Port:         DefaultPort,
		BrowserDelay: 3,
	}
}

// Load resolves the effective configuration: built-in defaults, then the YAML
// file at path (or ~/.kijko/config.yml if path is empty and it exists), then
// an optional .env file in the working directory, then KIJKO_* environment
// variables. The result is validated before it is returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if p := DefaultConfigPath(); fileExists(p) {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Optional .env next to wherever the launcher is invoked from
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	// Derive the Node bin directory from the nvm layout unless set explicitly
	if cfg.NodeBin == "" {
		cfg.NodeBin = filepath.Join(cfg.NvmDir, "versions", "node", "v"+cfg.NodeVersion, "bin")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides fields from KIJKO_* environment variables
func (c *Config) applyEnv() error {
	if v := os.Getenv("KIJKO_APP_DIR"); v != "" {
		c.AppDir = v
	}
	if v := os.Getenv("KIJKO_PID_FILE"); v != "" {
		c.PIDFile = v
	}
	if v := os.Getenv("KIJKO_NODE_BIN"); v != "" {
		c.NodeBin = v
	}
	if v := os.Getenv("KIJKO_NVM_DIR"); v != "" {
		c.NvmDir = v
	}
	if v := os.Getenv("KIJKO_NODE_VERSION"); v != "" {
		c.NodeVersion = v
	}
	if v := os.Getenv("KIJKO_START_COMMAND"); v != "" {
		c.StartCommand = v
	}
	if v := os.Getenv("KIJKO_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid KIJKO_PORT %q: %w", v, err)
		}
		c.Port = port
	}
	return nil
}

// Validate checks the configuration for values that can never work
func (c *Config) Validate() error {
	if c.AppDir == "" {
		return fmt.Errorf("app_dir cannot be empty")
	}
	if c.PIDFile == "" {
		return fmt.Errorf("pid_file cannot be empty")
	}
	if c.NvmDir == "" {
		return fmt.Errorf("nvm_dir cannot be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range (1-65535)", c.Port)
	}
	if c.BrowserDelay < 0 {
		return fmt.Errorf("browser_delay cannot be negative")
	}
	return nil
}

// NodePath returns the path to the node binary
func (c *Config) NodePath() string {
	return filepath.Join(c.NodeBin, "node")
}

// NpmPath returns the path to the npm binary
func (c *Config) NpmPath() string {
	return filepath.Join(c.NodeBin, "npm")
}

// NvmScript returns the path to the nvm init script
func (c *Config) NvmScript() string {
	return filepath.Join(c.NvmDir, "nvm.sh")
}

// URL returns the local URL the dev server will be reachable at
func (c *Config) URL() string {
	return fmt.Sprintf("http://localhost:%d", c.Port)
}

// LaunchCommand returns the shell command that starts the dev server.
// The default sources nvm so that version-manager shims resolve correctly.
func (c *Config) LaunchCommand() string {
	if c.StartCommand != "" {
		return c.StartCommand
	}
	return fmt.Sprintf("source %s && nvm use %s && npm run dev", c.NvmScript(), c.NodeVersion)
}

// Env returns the child process environment: the parent environment with the
// Node bin directory prepended to PATH and the nvm locator variables set.
func (c *Config) Env() []string {
	env := os.Environ()
	env = append(env, fmt.Sprintf("PATH=%s%c%s", c.NodeBin, os.PathListSeparator, os.Getenv("PATH")))
	env = append(env, fmt.Sprintf("NVM_BIN=%s", c.NodeBin))
	env = append(env, fmt.Sprintf("NVM_DIR=%s", c.NvmDir))
	return env
}

// DefaultConfigPath returns the path of the optional user config file
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kijko", "config.yml")
}

// HistoryPath returns the path of the launch history file
func HistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "kijko-history.json")
	}
	return filepath.Join(home, ".kijko", "history.json")
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
