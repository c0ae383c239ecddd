package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional rebload.yaml file. Everything in it can also
// be given on the command line; flags win.
type Config struct {
	// Extensions lists the file suffixes treated as Rebol scripts.
	Extensions []string `yaml:"extensions"`

	// Index is the path of the script index database.
	Index string `yaml:"index"`

	// Relax loads scripts with error cells instead of failing.
	Relax bool `yaml:"relax"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() *Config {
	return &Config{
		Extensions: []string{".r", ".reb", ".rebol"},
		Index:      "rebload-index.db",
	}
}

// LoadConfig reads the config file. Resolution order: the explicit
// path, then $REBLOAD_CONFIG, then ./rebload.yaml. A missing default
// file is not an error; a missing explicit one is.
func LoadConfig(configPath string, getenv func(string) string) (*Config, error) {
	path := configPath
	explicit := path != ""
	if path == "" {
		path = getenv("REBLOAD_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = "rebload.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
