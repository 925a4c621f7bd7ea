// Package config loads application settings from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"infinivox/internal/world"
)

// Settings is the root of the configuration file.
type Settings struct {
	Window WindowSettings `yaml:"window"`
	World  world.Config   `yaml:"world"`
}

// WindowSettings configures the application window.
type WindowSettings struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Default returns the settings used when no config file is given.
func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Width:  1200,
			Height: 800,
			Title:  "Infinite Voxel World",
		},
		World: world.DefaultConfig(),
	}
}

// Load reads settings from a YAML file, filling omitted fields from the
// defaults. An empty path returns the defaults unchanged.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	s.normalize()
	return s, nil
}

func (s *Settings) normalize() {
	if s.Window.Width < 320 {
		s.Window.Width = 320
	}
	if s.Window.Height < 240 {
		s.Window.Height = 240
	}
	if s.Window.Title == "" {
		s.Window.Title = "Infinite Voxel World"
	}
	s.World.Normalize()
}
