package config

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"time"
)

const (
	SectionReservedSlots  = "reserved-slots"
	SectionCustomMessages = "custom-messages"

	defaultLocale = "en"
)

// Config mirrors the operator-authored configuration file.
//
//	change-ping-packet: default
//	locale: en
//	reserved-slots:
//	  guild-leader: 3
//	  vip: 7
//	custom-messages:
//	  0: "The server is full"
//	  5: "Only VIPs may join now"
type Config struct {
	// ChangePingPacket makes the advertised capacity one above the current occupancy
	// while the server is full. Accepts true, false or "default" (true).
	ChangePingPacket any `yaml:"change-ping-packet"`

	// Locale selects the bundled default rejection message, e.g. "en" or "pt_BR".
	Locale string `yaml:"locale"`

	// ReservedSlots maps a capability name to the remaining-slots boundary it guards.
	ReservedSlots *Section `yaml:"reserved-slots"`

	// CustomMessages maps a remaining-slots boundary to the rejection message shown at it.
	CustomMessages *Section `yaml:"custom-messages"`

	// Telemetry configures periodic stat logs and Prometheus counters.
	// If nil, telemetry is disabled.
	Telemetry *TelemetryCfg `yaml:"telemetry"`

	// Reload configures polling of the configuration file for live changes.
	// If nil, the configuration is read once.
	Reload *ReloadCfg `yaml:"reload"`
}

func (cfg *Config) AdjustConfig() {
	if cfg.ReservedSlots == nil {
		cfg.ReservedSlots = NewSection()
	}
	if cfg.CustomMessages == nil {
		cfg.CustomMessages = NewSection()
	}
	if cfg.Locale == "" {
		cfg.Locale = defaultLocale
	}

	if cfg.Telemetry.Enabled() && cfg.Telemetry.Interval <= 0 {
		cfg.Telemetry.Interval = defaultTelemetryInterval
	}

	if cfg.Reload.Enabled() && cfg.Reload.Interval <= 0 {
		cfg.Reload.Interval = defaultReloadInterval
	}
}

func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	if cfg.Reload.Enabled() && cfg.Reload.Path == "" {
		cfg.Reload.Path = path
	}

	return cfg, nil
}

// ParseConfig decodes a configuration document. An empty document yields defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.AdjustConfig()
	return cfg, nil
}

const (
	defaultTelemetryInterval = 5 * time.Second
	defaultReloadInterval    = time.Second
)

type TelemetryCfg struct {
	// Interval between two stat log lines. Default: 5s.
	Interval time.Duration `yaml:"interval"`
}

func (cfg *TelemetryCfg) Enabled() bool {
	return cfg != nil
}

type ReloadCfg struct {
	// Path of the file to watch. Filled by LoadConfig when empty.
	Path string `yaml:"path"`

	// Interval between two polls of the file. Default: 1s.
	Interval time.Duration `yaml:"interval"`
}

func (cfg *ReloadCfg) Enabled() bool {
	return cfg != nil
}
