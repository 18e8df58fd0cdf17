package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds viewer settings read from cineboard.toml.
type Config struct {
	Window WindowConfig `toml:"window"`
	View   ViewConfig   `toml:"view"`
}

// WindowConfig controls the initial desktop window.
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// ViewConfig bounds pan/zoom on the interactive surface.
type ViewConfig struct {
	MinZoom float64 `toml:"min_zoom"`
	MaxZoom float64 `toml:"max_zoom"`
}

func defaultConfig() *Config {
	return &Config{
		Window: WindowConfig{Width: 1280, Height: 800, Title: "cineboard"},
		View:   ViewConfig{MinZoom: 0.25, MaxZoom: 4.0},
	}
}

// loadConfig reads the config file, falling back to defaults when it
// does not exist.
func loadConfig(path string) *Config {
	cfg := defaultConfig()
	if path == "" {
		path = "cineboard.toml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = toml.Unmarshal(data, cfg)
	if cfg.View.MinZoom <= 0 {
		cfg.View.MinZoom = 0.25
	}
	if cfg.View.MaxZoom < cfg.View.MinZoom {
		cfg.View.MaxZoom = cfg.View.MinZoom
	}
	return cfg
}
