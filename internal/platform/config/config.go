package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the host-process configuration. Everything has a working default;
// a config.yaml in the data directory overrides individual fields.
type Config struct {
	DataDir string `yaml:"-"`
	DBPath  string `yaml:"-"`

	// ProviderManifest locates the sensor provider manifest. Relative paths
	// resolve against the data directory.
	ProviderManifest string `yaml:"provider_manifest"`

	Screen ScreenConfig `yaml:"screen"`
	Focus  FocusConfig  `yaml:"focus"`
	Sound  SoundConfig  `yaml:"sound"`
}

type ScreenConfig struct {
	IdleThresholdSeconds int `yaml:"idle_threshold_seconds"`
	CheckpointSeconds    int `yaml:"checkpoint_seconds"`
	MinSegmentSeconds    int `yaml:"min_segment_seconds"`
}

type FocusConfig struct {
	PollSeconds       int `yaml:"poll_seconds"`
	CheckpointSeconds int `yaml:"checkpoint_seconds"`
	MinSessionSeconds int `yaml:"min_session_seconds"`
	IdleIgnoreSeconds int `yaml:"idle_ignore_seconds"`
}

type SoundConfig struct {
	PollSeconds       int     `yaml:"poll_seconds"`
	CheckpointSeconds int     `yaml:"checkpoint_seconds"`
	MinSessionSeconds int     `yaml:"min_session_seconds"`
	SilenceFloor      float64 `yaml:"silence_floor"`
}

const fileName = "config.yaml"

func defaults(dataDir string) Config {
	return Config{
		DataDir:          dataDir,
		DBPath:           filepath.Join(dataDir, "dwell.db"),
		ProviderManifest: "provider.yaml",
		Screen: ScreenConfig{
			IdleThresholdSeconds: 300,
			CheckpointSeconds:    300,
			MinSegmentSeconds:    30,
		},
		Focus: FocusConfig{
			PollSeconds:       60,
			CheckpointSeconds: 300,
			MinSessionSeconds: 30,
			IdleIgnoreSeconds: 60,
		},
		Sound: SoundConfig{
			PollSeconds:       10,
			CheckpointSeconds: 300,
			MinSessionSeconds: 30,
			SilenceFloor:      0.01,
		},
	}
}

// Load resolves the configuration for dataDir, applying config.yaml on top of
// the defaults when the file exists.
func Load(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data directory is required")
	}
	cfg := defaults(dataDir)

	raw, err := os.ReadFile(filepath.Join(dataDir, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.DataDir = dataDir
	cfg.DBPath = filepath.Join(dataDir, "dwell.db")
	if !filepath.IsAbs(cfg.ProviderManifest) {
		cfg.ProviderManifest = filepath.Join(dataDir, cfg.ProviderManifest)
	}
	return cfg, nil
}
