package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the search directories.
const FileName = "memchain.yaml"

// Load loads the gameplay configuration.
// Search order: customPath -> ~/.memchain/configs/memchain.yaml -> ./configs/memchain.yaml -> embedded default.
// Values missing from a file keep their defaults. A custom path ending in
// .toml is decoded as TOML. The result is validated.
func Load(customPath string) (GameplayConfig, error) {
	cfg, err := load(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func load(customPath string) (GameplayConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decode(customPath, data)
		if err != nil {
			return Default(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(userCfgPath, data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	local := filepath.Join("configs", FileName)
	if data, err := os.ReadFile(local); err == nil {
		if cfg, err := decode(local, data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decode(FileName, defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decode parses data over the hard-coded defaults.
func decode(path string, data []byte) (GameplayConfig, error) {
	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".memchain", "configs", filename)
}
