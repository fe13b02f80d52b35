package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Import   ImportConfig   `yaml:"import"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"THUMBFIX_DB_DRIVER"`
	DSN    string `yaml:"dsn" env:"THUMBFIX_DB_DSN"`
}

type DefaultsConfig struct {
	PostType   string `yaml:"post_type"`
	Amount     int    `yaml:"amount"`
	FetchLimit int    `yaml:"fetch_limit"`
}

type ImportConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
}

func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver: "sqlite3",
		},
		Defaults: DefaultsConfig{
			PostType:   "post",
			Amount:     500,
			FetchLimit: 1,
		},
		Import: ImportConfig{
			TimeoutSeconds: 30,
			UserAgent:      "thumbfix/0.1",
		},
	}
}

func Dir() string {
	if dir := os.Getenv("THUMBFIX_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".thumbfix")
}

func DBPath() string {
	return filepath.Join(Dir(), "thumbfix.db")
}

func configPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func Load() (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Environment variables win over the config file.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

func Save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath(), data, 0644)
}

// DatabaseDSN resolves the configured driver and DSN, defaulting the
// sqlite path to the thumbfix home directory.
func (c *Config) DatabaseDSN() (driver, dsn string) {
	driver = c.Database.Driver
	if driver == "" {
		driver = "sqlite3"
	}
	dsn = c.Database.DSN
	if dsn == "" && driver == "sqlite3" {
		dsn = DBPath()
	}
	return driver, dsn
}
