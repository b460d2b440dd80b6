package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/slgem/slgem/engine"
	"github.com/slgem/slgem/render"
)

// Config holds the optional YAML settings file
type Config struct {
	Loop struct {
		TargetFPS  uint `yaml:"target_fps"`
		MaxUpdates uint `yaml:"max_updates"`
	} `yaml:"loop"`
	View struct {
		ViewportWidth  int  `yaml:"viewport_width"`
		ViewportHeight int  `yaml:"viewport_height"`
		ShowGrid       bool `yaml:"show_grid"`
	} `yaml:"view"`
	Audio struct {
		Muted bool `yaml:"muted"`
	} `yaml:"audio"`
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the settings used when no file is present
func DefaultConfig() Config {
	var cfg Config
	loop := engine.DefaultLoopConfig()
	cfg.Loop.TargetFPS = loop.TargetFPS
	cfg.Loop.MaxUpdates = loop.MaxUpdates

	view := render.DefaultMapViewOptions()
	cfg.View.ViewportWidth = view.ViewportWidth
	cfg.View.ViewportHeight = view.ViewportHeight
	cfg.View.ShowGrid = view.ShowGrid

	cfg.LogLevel = "info"
	return cfg
}

// LoadConfig reads a YAML settings file over the defaults.
// A missing file is not an error; a malformed one is
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoopConfig converts the file settings into the loop's configuration
func (c Config) LoopConfig() engine.LoopConfig {
	return engine.LoopConfig{
		TargetFPS:  c.Loop.TargetFPS,
		MaxUpdates: c.Loop.MaxUpdates,
	}
}

// ViewOptions converts the file settings into map view options
func (c Config) ViewOptions() render.MapViewOptions {
	opts := render.DefaultMapViewOptions()
	opts.ViewportWidth = c.View.ViewportWidth
	opts.ViewportHeight = c.View.ViewportHeight
	opts.ShowGrid = c.View.ShowGrid
	return opts
}
