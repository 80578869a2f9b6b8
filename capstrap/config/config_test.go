package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capstrap.ini")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.ini"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1, cfg.Concurrency)
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `[logging]
level = debug
file = /var/log/capstrap.log
format = json

[bootstrap]
next_command = netcapture --menu
concurrency = 4
report = /var/log/capstrap-report.json

[ssh]
user = ops
port = 2222

[hosts]
sensor-1 = 10.0.0.5
sensor-2 = 10.0.0.6
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/var/log/capstrap.log", cfg.LogFile)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "netcapture --menu", cfg.NextCommand)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "/var/log/capstrap-report.json", cfg.ReportFile)
	assert.Equal(t, "ops", cfg.SSHUser)
	assert.Equal(t, "2222", cfg.SSHPort)
	assert.Equal(t, []string{"10.0.0.5", "10.0.0.6"}, cfg.Hosts)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `[logging]
level = warning
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warning", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 1, cfg.Concurrency)
	assert.Empty(t, cfg.Hosts)
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "not an ini file at all\njust text\n")

	_, err := Load(path)
	assert.Error(t, err)
}
