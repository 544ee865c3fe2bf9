package config

import (
	"fmt"
	"os"

	"github.com/jsphweid/scorekit/constants"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the defaults used by the CLI and the server.
type Config struct {
	// Project logger
	Logger *logrus.Logger `yaml:"-"`

	LogLevel string `yaml:"log_level"`

	// Ticks per quarter note for rendered files
	Resolution  uint16 `yaml:"resolution"`
	Velocity    uint8  `yaml:"velocity"`
	ChordLength uint64 `yaml:"chord_length"`
	Start       uint64 `yaml:"start"`

	OutDir     string `yaml:"out_dir"`
	ListenAddr string `yaml:"listen_addr"`

	// Origins allowed to call the server. Empty means any.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// NewConfig returns a Config with reasonable defaults for real usage.
func NewConfig() Config {
	var cfg Config
	cfg.setDefaults()
	return cfg
}

// Load reads a YAML config file and fills in anything it leaves out. An empty
// path gives the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return NewConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config file %v: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse config file %v: %w", path, err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (cfg *Config) setDefaults() {
	if cfg.LogLevel == "" {
		cfg.LogLevel = constants.DefaultLogLevel
	}
	if cfg.Resolution == 0 {
		cfg.Resolution = constants.DefaultResolution
	}
	if cfg.Velocity == 0 {
		cfg.Velocity = constants.DefaultVelocity
	}
	if cfg.ChordLength == 0 {
		cfg.ChordLength = constants.DefaultChordLength
	}
	if cfg.Start == 0 {
		cfg.Start = constants.DefaultStart
	}
	if cfg.OutDir == "" {
		cfg.OutDir = constants.GetOutDir()
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = constants.DefaultListenAddr
	}
}
