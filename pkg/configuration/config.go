// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package configuration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codesee-io/codesee-action/api/configuration"
	"github.com/codesee-io/codesee-action/pkg/constants"
	"gopkg.in/yaml.v3"
)

var ErrFileExists = fmt.Errorf("file %s exists, not overwriting (specify '--force' to overwrite)", constants.ConfigFilename)

// DefaultConfig is what a run does when nothing is configured
func DefaultConfig() configuration.Config {
	return configuration.Config{
		Step:      constants.DefaultStep,
		Languages: map[string]bool{},
	}
}

// GenerateConfig writes the default config file into dir
func GenerateConfig(dir string, forceWrite bool) error {
	path := filepath.Join(dir, constants.ConfigFilename)

	_, err := os.Stat(path)
	if err == nil && !forceWrite {
		return ErrFileExists
	}

	return write(path, DefaultConfig())
}

// UpdateConfig adds missing settings to the config file in dir and keeps the ones
// already set. Without a file it writes the defaults.
func UpdateConfig(dir string) error {
	path := filepath.Join(dir, constants.ConfigFilename)
	cfg := DefaultConfig()

	existing, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return fmt.Errorf("error reading %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(existing, &cfg); err != nil {
			return fmt.Errorf("error parsing %s: %w", path, err)
		}
		if cfg.Languages == nil {
			cfg.Languages = map[string]bool{}
		}
	}

	return write(path, cfg)
}

// LoadConfig reads the config file in dir
func LoadConfig(dir string) (configuration.Config, error) {
	path := filepath.Join(dir, constants.ConfigFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		return configuration.Config{}, fmt.Errorf("error reading %s: %w", path, err)
	}

	var cfg configuration.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return configuration.Config{}, fmt.Errorf("error parsing %s: %w", path, err)
	}
	return cfg, nil
}

func write(path string, cfg configuration.Config) error {
	cfgYaml, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config yaml: %w", err)
	}

	return os.WriteFile(path, cfgYaml, 0600)
}
