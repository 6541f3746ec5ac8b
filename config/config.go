// Package config reads the optional unstable.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up by default.
const FileName = "unstable.yaml"

// SupportedMajor is the newest configuration major version understood.
const SupportedMajor = "v1"

// Config represents the optional unstable.yaml configuration.
type Config struct {
	Version     string            `yaml:"version,omitempty"`
	Wordlist    string            `yaml:"wordlist,omitempty"`
	Content     string            `yaml:"content,omitempty"`
	ContentFile string            `yaml:"content_file,omitempty"`
	Value       int               `yaml:"value,omitempty"`
	Style       string            `yaml:"style,omitempty"`
	Theme       map[string]string `yaml:"theme,omitempty"`
	Tick        string            `yaml:"tick,omitempty"`
}

// Resolved contains configuration values with defaults applied.
type Resolved struct {
	Path     string
	Wordlist string
	Content  string
	Value    int
	Style    string
	Theme    map[string]string
	Tick     time.Duration
}

// Defaults returns the values used when nothing is configured.
func Defaults() Resolved {
	return Resolved{
		Style: "monokai",
		Tick:  time.Second,
		Theme: map[string]string{},
	}
}

// LoadOptional reads path if present. A missing file yields an empty Config.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Resolve loads path (if present) and resolves defaults.
// Relative wordlist and content_file paths are taken from the file's
// directory.
func Resolve(path string) (*Resolved, error) {
	if path == "" {
		path = FileName
	}
	cfg, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}
	if err := validateVersion(cfg.Version); err != nil {
		return nil, err
	}

	resolved := Defaults()
	resolved.Path = path
	dir := filepath.Dir(path)

	if loc := strings.TrimSpace(cfg.Wordlist); loc != "" {
		resolved.Wordlist = relative(dir, loc)
	}
	resolved.Content = cfg.Content
	if file := strings.TrimSpace(cfg.ContentFile); file != "" {
		data, err := os.ReadFile(relative(dir, file))
		if err != nil {
			return nil, fmt.Errorf("failed to read content_file: %w", err)
		}
		resolved.Content = string(data)
	}
	if cfg.Value < 0 {
		return nil, fmt.Errorf("value must not be negative, got %d", cfg.Value)
	}
	resolved.Value = cfg.Value
	if style := strings.TrimSpace(cfg.Style); style != "" {
		resolved.Style = style
	}
	for class, color := range cfg.Theme {
		resolved.Theme[class] = color
	}
	if tick := strings.TrimSpace(cfg.Tick); tick != "" {
		d, err := time.ParseDuration(tick)
		if err != nil {
			return nil, fmt.Errorf("invalid tick %q: %w", tick, err)
		}
		resolved.Tick = d
	}
	return &resolved, nil
}

func validateVersion(version string) error {
	version = strings.TrimSpace(version)
	if version == "" {
		return nil
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return fmt.Errorf("invalid config version %q", version)
	}
	if semver.Compare(semver.Major(version), SupportedMajor) > 0 {
		return fmt.Errorf("config version %s is newer than supported %s", version, SupportedMajor)
	}
	return nil
}

// relative resolves loc against dir unless it is absolute or a URL.
func relative(dir, loc string) string {
	if strings.Contains(loc, "://") || filepath.IsAbs(loc) {
		return loc
	}
	return filepath.Join(dir, loc)
}
