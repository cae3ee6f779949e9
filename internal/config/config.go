package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config file is named explicitly.
const DefaultPath = "impgraph.yaml"

type Config struct {
	Project struct {
		Name string `yaml:"name"` // overrides the directory-derived project name
	} `yaml:"project"`
	Scan struct {
		Ignore   []string `yaml:"ignore"` // directory names to skip
		Language string   `yaml:"language"`
	} `yaml:"scan"`
	Analysis struct {
		Workers          int    `yaml:"workers"`
		DefinitionPolicy string `yaml:"definition_policy"` // "method-aware" or "legacy"
	} `yaml:"analysis"`
	Render struct {
		Format string `yaml:"format"`
		View   bool   `yaml:"view"`
	} `yaml:"render"`
	Style struct {
		Seed int64 `yaml:"seed"` // 0 means a new seed per run
	} `yaml:"style"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	cfg := &Config{}
	cfg.Scan.Language = "python"
	cfg.Analysis.Workers = 1
	cfg.Analysis.DefinitionPolicy = "method-aware"
	cfg.Log.Level = "info"
	return cfg
}

// LoadConfig layers .env, the YAML file at path and IMPGRAPH_* environment
// variables over the defaults. An empty path reads DefaultPath if present.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// 3. Override with Environment Variables if present
	if name := os.Getenv("IMPGRAPH_PROJECT_NAME"); name != "" {
		cfg.Project.Name = name
	}
	if format := os.Getenv("IMPGRAPH_FORMAT"); format != "" {
		cfg.Render.Format = format
	}
	if level := os.Getenv("IMPGRAPH_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if workers := os.Getenv("IMPGRAPH_WORKERS"); workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil {
			return nil, fmt.Errorf("invalid IMPGRAPH_WORKERS %q: %w", workers, err)
		}
		cfg.Analysis.Workers = n
	}

	if cfg.Analysis.Workers < 1 {
		cfg.Analysis.Workers = 1
	}
	return cfg, nil
}
