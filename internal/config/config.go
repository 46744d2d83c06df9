// Package config loads the run configuration: file locations plus the
// optional reconciliation block. YAML is the default, JSON is selected by
// extension.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Filter mirrors the inclusive-bound row filter of the reconcile block.
type Filter struct {
	Column string `yaml:"column" json:"column"`
	Min    string `yaml:"min" json:"min"`
	Max    string `yaml:"max" json:"max"`
}

// Reconcile configures the aggregate cross-check between the primary and
// the secondary source.
type Reconcile struct {
	SumColumn   string   `yaml:"sum_column" json:"sum_column"`
	CountColumn string   `yaml:"count_column" json:"count_column"`
	JoinColumns []string `yaml:"join_columns" json:"join_columns"`
	Filter      *Filter  `yaml:"filter" json:"filter"`
}

// Config is the full run configuration.
type Config struct {
	SchemaFile  string     `yaml:"schema_file" json:"schema_file"`
	CSVFile     string     `yaml:"csv_file" json:"csv_file"`
	ParquetFile string     `yaml:"parquet_file" json:"parquet_file"`
	ReportFile  string     `yaml:"report_file" json:"report_file"`
	Workers     int        `yaml:"workers" json:"workers"`
	Reconcile   *Reconcile `yaml:"reconcile" json:"reconcile"`
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.SchemaFile == "" {
		return errors.New("schema_file is required")
	}
	if c.CSVFile == "" {
		return errors.New("csv_file is required")
	}
	if c.ReportFile == "" {
		return errors.New("report_file is required")
	}
	if c.Reconcile != nil && c.ParquetFile == "" {
		return errors.New("reconcile requires parquet_file")
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	return nil
}
