package main

import (
	"fmt"
	"os"
	"time"

	"github.com/poiesic/scout/ai"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML file named by --config. Flags given on
// the command line take precedence over its values.
type fileConfig struct {
	DB           string        `yaml:"db"`
	AI           aiFileConfig  `yaml:"ai"`
	ParseTimeout time.Duration `yaml:"parse_timeout"`
}

type aiFileConfig struct {
	Host  string `yaml:"host"`
	Model string `yaml:"model"`
	Token string `yaml:"token"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.ParseTimeout < 0 {
		return nil, fmt.Errorf("parse_timeout must not be negative")
	}
	return cfg, nil
}

// settings are the resolved flag and file values a command runs with.
type settings struct {
	dbPath       string
	ai           *ai.Config
	parseTimeout time.Duration
}

func resolveSettings(c *cli.Context) (*settings, error) {
	file, err := loadFileConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	s := &settings{
		dbPath:       file.DB,
		ai:           ai.DefaultConfig(),
		parseTimeout: file.ParseTimeout,
	}
	if c.IsSet("db") {
		s.dbPath = c.String("db")
	}
	if s.dbPath == "" {
		return nil, fmt.Errorf("database path is required: use --db or set db in the config file")
	}

	if file.AI.Host != "" {
		s.ai.Host = file.AI.Host
	}
	if file.AI.Model != "" {
		s.ai.Model = file.AI.Model
	}
	if file.AI.Token != "" {
		s.ai.Token = file.AI.Token
	}
	if c.IsSet("ai-host") {
		s.ai.Host = c.String("ai-host")
	}
	if c.IsSet("ai-model") {
		s.ai.Model = c.String("ai-model")
	}
	if c.IsSet("parse-timeout") {
		s.parseTimeout = c.Duration("parse-timeout")
	}
	if err := s.ai.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return s, nil
}
