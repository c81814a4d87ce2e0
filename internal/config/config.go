// ABOUTME: Settings loading with global + project YAML config merge
// ABOUTME: Project values override global; BLOCKPIX_CONFIG selects a single explicit file

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values applied after merging.
const (
	DefaultMaxFileSize = 64 << 20
	DefaultConcurrency = 4
)

// Settings holds the merged configuration.
type Settings struct {
	// Filter is the resample filter name; empty selects the package default.
	Filter string `yaml:"filter,omitempty"`
	// Sharpen is the unsharp-mask amount applied before resampling; 0 disables.
	Sharpen     float64 `yaml:"sharpen,omitempty"`
	MaxFileSize int64   `yaml:"max_file_size,omitempty"`
	Concurrency int     `yaml:"concurrency,omitempty"`
}

// Load reads and merges global and project-local settings. When the
// BLOCKPIX_CONFIG environment variable is set, only that file is read.
func Load(projectRoot string) (*Settings, error) {
	if explicit := os.Getenv(EnvConfig); explicit != "" {
		return LoadFile(explicit)
	}

	global, err := loadFile(GlobalConfigFile())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(global, project)
	return finish(merged)
}

// LoadFile reads a single settings file. A missing file is an error.
func LoadFile(path string) (*Settings, error) {
	s, err := loadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return finish(s)
}

func finish(s *Settings) (*Settings, error) {
	ResolveEnvVars(s)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.applyDefaults()
	return s, nil
}

// loadFile reads Settings from a YAML file. Returns zero Settings alongside
// the error if the file cannot be read.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	s, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// parse decodes YAML strictly so that misspelled keys are reported.
func parse(data []byte) (*Settings, error) {
	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &s, nil
}

// merge overlays project settings onto global settings.
// Non-zero project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.Filter != "" {
		result.Filter = project.Filter
	}
	if project.Sharpen != 0 {
		result.Sharpen = project.Sharpen
	}
	if project.MaxFileSize != 0 {
		result.MaxFileSize = project.MaxFileSize
	}
	if project.Concurrency != 0 {
		result.Concurrency = project.Concurrency
	}

	return &result
}

// Validate rejects negative numeric settings.
func (s *Settings) Validate() error {
	switch {
	case s.Sharpen < 0:
		return fmt.Errorf("sharpen must be >= 0, got %g", s.Sharpen)
	case s.MaxFileSize < 0:
		return fmt.Errorf("max_file_size must be >= 0, got %d", s.MaxFileSize)
	case s.Concurrency < 0:
		return fmt.Errorf("concurrency must be >= 0, got %d", s.Concurrency)
	}
	return nil
}

func (s *Settings) applyDefaults() {
	if s.MaxFileSize == 0 {
		s.MaxFileSize = DefaultMaxFileSize
	}
	if s.Concurrency == 0 {
		s.Concurrency = DefaultConcurrency
	}
}
