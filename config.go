package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = ".econogramrc"
	envPrefix      = "econogram"
)

type Config struct {
	SaveDirectory    string `yaml:"save_directory" envconfig:"SAVE_DIRECTORY"`
	ShowParentGuides bool   `yaml:"show_parent_guides" envconfig:"SHOW_PARENT_GUIDES"`
	ExportQuality    string `yaml:"export_quality" envconfig:"EXPORT_QUALITY"`
	LogFile          string `yaml:"log_file" envconfig:"LOG_FILE"`
	Confirmations    bool   `yaml:"confirmations" envconfig:"CONFIRMATIONS"`
}

func defaultConfig() *Config {
	return &Config{
		ExportQuality: "normal",
		Confirmations: true,
	}
}

// loadConfig reads ~/.econogramrc and ECONOGRAM_* overrides. A missing or
// broken file leaves the defaults in place.
func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		config := defaultConfig()
		_ = config.applyEnv()
		return config
	}

	config, err := loadConfigFrom(filepath.Join(homeDir, configFileName))
	if err != nil {
		config = defaultConfig()
		_ = config.applyEnv()
	}
	config.expandPaths(homeDir)
	return config
}

// loadConfigFrom reads a YAML config file. A file that does not exist is not
// an error.
func loadConfigFrom(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	if err := envconfig.Process(envPrefix, c); err != nil {
		return fmt.Errorf("config environment: %w", err)
	}
	return nil
}

func (c *Config) expandPaths(homeDir string) {
	expand := func(value string) string {
		if value == "" {
			return value
		}
		if strings.HasPrefix(value, "~") {
			value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
		}
		if !filepath.IsAbs(value) {
			if absPath, err := filepath.Abs(value); err == nil {
				value = absPath
			}
		}
		return value
	}
	c.SaveDirectory = expand(c.SaveDirectory)
	c.LogFile = expand(c.LogFile)
}

func (c *Config) Quality() ExportQuality {
	if strings.EqualFold(c.ExportQuality, "high") {
		return ExportHigh
	}
	return ExportNormal
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
