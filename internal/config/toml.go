// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Home   HomeConfig   `toml:"home"`
	Review ReviewConfig `toml:"review"`
	Speech SpeechConfig `toml:"speech"`
	Player PlayerConfig `toml:"player"`
	Data   DataConfig   `toml:"data"`
	Input  InputConfig  `toml:"input"`
}

// HomeConfig maps flashcard settings.
type HomeConfig struct {
	IntervalMs *int  `toml:"interval-ms"`
	AutoPlay   *bool `toml:"autoplay"`
	Sound      *bool `toml:"sound"`
}

// ReviewConfig maps review settings.
type ReviewConfig struct {
	Mode   *string `toml:"mode"`
	Random *bool   `toml:"random"`
}

// SpeechConfig maps text-to-speech settings.
type SpeechConfig struct {
	Command *string  `toml:"command"`
	Voice   *string  `toml:"voice"`
	Rate    *float64 `toml:"rate"`
	Volume  *float64 `toml:"volume"`
}

// PlayerConfig maps video player settings.
type PlayerConfig struct {
	Command *string `toml:"command"`
	Socket  *string `toml:"socket"`
}

// DataConfig maps the content location.
type DataConfig struct {
	Dir *string `toml:"dir"`
}

// InputConfig maps pointer input settings.
type InputConfig struct {
	SwipeThreshold *int `toml:"swipe-threshold"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
