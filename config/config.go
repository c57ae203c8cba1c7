package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	ListConfig     *ListConfig     `yaml:"list"`
	PipelineConfig *PipelineConfig `yaml:"pipeline"`
	LogLevel       string          `yaml:"log_level"`
}

func New() *AppConfig {
	return &AppConfig{
		ListConfig:     NewListConfig(),
		PipelineConfig: NewPipelineConfig(),
		LogLevel:       "info",
	}
}

// Load returns the defaults overlaid with the YAML file at path. Keys
// missing from the file keep their default values.
func Load(path string) (*AppConfig, error) {
	cfg := New()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config '%v'", path)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config '%v'", path)
	}

	// an empty section decodes as null and drops the defaults
	if cfg.ListConfig == nil {
		cfg.ListConfig = NewListConfig()
	}
	if cfg.PipelineConfig == nil {
		cfg.PipelineConfig = NewPipelineConfig()
	}
	if err := cfg.PipelineConfig.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config '%v'", path)
	}
	return cfg, nil
}
