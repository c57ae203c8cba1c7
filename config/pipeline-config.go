package config

import "github.com/pkg/errors"

type PipelineConfig struct {
	LookaheadDepth   int   `yaml:"lookahead_depth"`
	BFrames          int   `yaml:"bframes"`
	KeyframeInterval int32 `yaml:"keyframe_interval"`
	MaxRefs          int   `yaml:"max_refs"`
}

func NewPipelineConfig() *PipelineConfig {
	return &PipelineConfig{
		LookaheadDepth:   8,
		BFrames:          3,
		KeyframeInterval: 60,
		MaxRefs:          4,
	}
}

func (c *PipelineConfig) Validate() error {
	switch {
	case c.BFrames < 0:
		return errors.Errorf("bframes must not be negative, got %v", c.BFrames)
	case c.LookaheadDepth < c.BFrames+1:
		return errors.Errorf("lookahead_depth %v is shorter than a mini-GOP of %v frames", c.LookaheadDepth, c.BFrames+1)
	case c.KeyframeInterval < 1:
		return errors.Errorf("keyframe_interval must be positive, got %v", c.KeyframeInterval)
	case c.MaxRefs < 2:
		return errors.Errorf("max_refs must be at least 2, got %v", c.MaxRefs)
	}
	return nil
}
