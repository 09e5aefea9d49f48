package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearKijkoEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"KIJKO_APP_DIR", "KIJKO_PID_FILE", "KIJKO_NODE_BIN", "KIJKO_NVM_DIR",
		"KIJKO_NODE_VERSION", "KIJKO_START_COMMAND", "KIJKO_PORT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Port != DefaultPort {
		t.Errorf("Expected default port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.NodeVersion != DefaultNodeVersion {
		t.Errorf("Expected default node version %s, got %s", DefaultNodeVersion, cfg.NodeVersion)
	}
	if !strings.HasSuffix(cfg.PIDFile, "kijko-app.pid") {
		t.Errorf("Expected PID file to end with kijko-app.pid, got %s", cfg.PIDFile)
	}
	if cfg.BrowserDelay != 3 {
		t.Errorf("Expected browser delay of 3 seconds, got %d", cfg.BrowserDelay)
	}
}

func TestLoadYAMLOverride(t *testing.T) {
	clearKijkoEnv(t)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")
	content := `
app_dir: /srv/kijko
port: 3000
node_version: "22.1.0"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AppDir != "/srv/kijko" {
		t.Errorf("Expected app_dir /srv/kijko, got %s", cfg.AppDir)
	}
	if cfg.Port != 3000 {
		t.Errorf("Expected port 3000, got %d", cfg.Port)
	}
	// NodeBin should be derived from the overridden version
	if !strings.Contains(cfg.NodeBin, "v22.1.0") {
		t.Errorf("Expected NodeBin derived from v22.1.0, got %s", cfg.NodeBin)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	clearKijkoEnv(t)
	t.Setenv("KIJKO_PORT", "8080")
	t.Setenv("KIJKO_APP_DIR", "/opt/kijko")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080 from env, got %d", cfg.Port)
	}
	if cfg.AppDir != "/opt/kijko" {
		t.Errorf("Expected app dir /opt/kijko from env, got %s", cfg.AppDir)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	clearKijkoEnv(t)
	t.Setenv("KIJKO_PORT", "not-a-number")

	if _, err := Load(""); err == nil {
		t.Error("Expected error for non-numeric KIJKO_PORT")
	}
}

func TestValidatePortRange(t *testing.T) {
	tests := []struct {
		port    int
		wantErr bool
	}{
		{5173, false},
		{1, false},
		{65535, false},
		{0, true},
		{-1, true},
		{70000, true},
	}

	for _, tt := range tests {
		cfg := Default()
		cfg.Port = tt.port
		err := cfg.Validate()
		if tt.wantErr && err == nil {
			t.Errorf("Expected error for port %d", tt.port)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("Unexpected error for port %d: %v", tt.port, err)
		}
	}
}

func TestLaunchCommand(t *testing.T) {
	cfg := Default()

	cmd := cfg.LaunchCommand()
	if !strings.Contains(cmd, "nvm.sh") {
		t.Errorf("Expected launch command to source nvm.sh, got: %s", cmd)
	}
	if !strings.Contains(cmd, "nvm use "+DefaultNodeVersion) {
		t.Errorf("Expected launch command to select node version, got: %s", cmd)
	}
	if !strings.Contains(cmd, "npm run dev") {
		t.Errorf("Expected launch command to run npm dev script, got: %s", cmd)
	}

	cfg.StartCommand = "echo custom"
	if cfg.LaunchCommand() != "echo custom" {
		t.Errorf("Expected start_command override, got: %s", cfg.LaunchCommand())
	}
}

func TestEnvContainsNvmVariables(t *testing.T) {
	cfg := Default()
	cfg.NodeBin = "/opt/node/bin"
	cfg.NvmDir = "/opt/nvm"

	var foundBin, foundDir, foundPath bool
	for _, entry := range cfg.Env() {
		switch {
		case entry == "NVM_BIN=/opt/node/bin":
			foundBin = true
		case entry == "NVM_DIR=/opt/nvm":
			foundDir = true
		case strings.HasPrefix(entry, "PATH=/opt/node/bin"):
			foundPath = true
		}
	}
	if !foundBin {
		t.Error("Expected NVM_BIN in child environment")
	}
	if !foundDir {
		t.Error("Expected NVM_DIR in child environment")
	}
	if !foundPath {
		t.Error("Expected PATH to be prefixed with the node bin directory")
	}
}

func TestURL(t *testing.T) {
	cfg := Default()
	cfg.Port = 5173
	if cfg.URL() != "http://localhost:5173" {
		t.Errorf("Unexpected URL: %s", cfg.URL())
	}
}
