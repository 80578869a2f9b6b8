// Package config loads operator defaults for the bootstrap from an INI
// file. Command-line flags always win over file values.
package config

import (
	"errors"
	"os"

	"gopkg.in/ini.v1"
)

// DefaultPath is where a site-wide bootstrap configuration lives.
const DefaultPath = "/etc/capstrap/capstrap.ini"

// Config carries everything an unattended bootstrap run needs.
type Config struct {
	// [logging]
	LogLevel  string
	LogFile   string
	LogFormat string

	// [bootstrap]
	NextCommand string
	Concurrency int
	ReportFile  string

	// [ssh]
	SSHUser string
	SSHPort string

	// [hosts] fleet members, one `label = address` entry per host.
	Hosts []string
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		LogLevel:    "info",
		LogFormat:   "text",
		Concurrency: 1,
	}
}

// Load reads the file at path over the defaults. A missing file is not
// an error; unattended installs rarely ship one.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return cfg, err
	}

	logging := file.Section("logging")
	cfg.LogLevel = logging.Key("level").MustString(cfg.LogLevel)
	cfg.LogFile = logging.Key("file").String()
	cfg.LogFormat = logging.Key("format").MustString(cfg.LogFormat)

	boot := file.Section("bootstrap")
	cfg.NextCommand = boot.Key("next_command").String()
	cfg.Concurrency = boot.Key("concurrency").MustInt(cfg.Concurrency)
	cfg.ReportFile = boot.Key("report").String()

	sshSection := file.Section("ssh")
	cfg.SSHUser = sshSection.Key("user").String()
	cfg.SSHPort = sshSection.Key("port").String()

	for _, key := range file.Section("hosts").Keys() {
		cfg.Hosts = append(cfg.Hosts, key.String())
	}

	return cfg, nil
}
