// Package config loads the preflight project configuration: where the
// sheet files live, watch-mode behavior, and output preferences. Files
// carry a schema header so version or type mismatches fail early with a
// clear message instead of silently misreading fields.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CurrentSchemaVersion is the newest config layout this build understands.
const CurrentSchemaVersion = 1

// FileType is the required file_type marker for a preflight config.
const FileType = "preflight_config"

// Header identifies a config file before the rest of it is decoded.
type Header struct {
	SchemaVersion int    `yaml:"schema_version"`
	FileType      string `yaml:"file_type"`
}

// Config is the full project configuration.
type Config struct {
	Header  `yaml:",inline"`
	Project ProjectConfig `yaml:"project"`
	Sheets  SheetsConfig  `yaml:"sheets"`
	Watch   WatchConfig   `yaml:"watch"`
	Output  OutputConfig  `yaml:"output"`
}

type ProjectConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// SheetsConfig names the input files per entity type. Any entry may be
// empty; a missing sheet validates as an empty row collection.
type SheetsConfig struct {
	Clients string `yaml:"clients"`
	Tasks   string `yaml:"tasks"`
	Workers string `yaml:"workers"`
}

type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
}

// Defaults applied when fields are left unset.
const (
	DefaultDebounceMS = 300
	DefaultFormat     = "text"
)

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(content)
}

// Parse decodes config bytes, checking the schema header first.
func Parse(content []byte) (*Config, error) {
	var header Header
	if err := yaml.Unmarshal(content, &header); err != nil {
		return nil, fmt.Errorf("parse config header: %w", err)
	}
	if err := header.validate(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Watch.DebounceMS <= 0 {
		cfg.Watch.DebounceMS = DefaultDebounceMS
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultFormat
	}
	return &cfg, nil
}

func (h Header) validate() error {
	if h.SchemaVersion < 1 {
		return fmt.Errorf("invalid schema_version %d (must be >= 1)", h.SchemaVersion)
	}
	if h.SchemaVersion > CurrentSchemaVersion {
		return fmt.Errorf("unsupported schema_version %d (max supported: %d)", h.SchemaVersion, CurrentSchemaVersion)
	}
	if h.FileType == "" {
		return fmt.Errorf("missing file_type")
	}
	if h.FileType != FileType {
		return fmt.Errorf("file_type mismatch: got %q, expected %q", h.FileType, FileType)
	}
	return nil
}
