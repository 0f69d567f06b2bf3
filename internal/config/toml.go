// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Generator  GeneratorConfig  `toml:"generator"`
	Translator TranslatorConfig `toml:"translator"`
	Log        LogConfig        `toml:"log"`
}

// GeneratorConfig maps generator-related settings.
type GeneratorConfig struct {
	Length  *int  `toml:"length"`
	Upper   *bool `toml:"upper"`
	Lower   *bool `toml:"lower"`
	Numbers *bool `toml:"numbers"`
	Symbols *bool `toml:"symbols"`
	Auto    *bool `toml:"auto"`
}

// TranslatorConfig maps translator-related settings.
type TranslatorConfig struct {
	Lang     *string   `toml:"lang"`
	Endpoint *string   `toml:"endpoint"`
	Timeout  *Duration `toml:"timeout"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
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
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
