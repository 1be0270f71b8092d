package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-remder/internal/fileutil"
	"github.com/alnah/go-remder/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Config holds all configuration for page rendering.
type Config struct {
	Cache   CacheConfig   `yaml:"cache"`
	Render  RenderConfig  `yaml:"render"`
	Engine  EngineConfig  `yaml:"engine"`
	Style   StyleConfig   `yaml:"style"`
	Browser BrowserConfig `yaml:"browser"`
}

// CacheConfig defines cache storage options.
type CacheConfig struct {
	Dir string `yaml:"dir"` // Empty = REMDER_CACHE_DIR env, then temp directory
}

// RenderConfig defines diagram rendering bounds.
type RenderConfig struct {
	TimeoutSeconds int `yaml:"timeoutSeconds"` // 0 = default budget
	MaxRenders     int `yaml:"maxRenders"`     // 0 = default cap
}

// EngineConfig selects the diagram engine. ServerURL takes priority over
// Command when both are set.
type EngineConfig struct {
	ServerURL string `yaml:"serverURL"` // PlantUML-compatible HTTP server
	Command   string `yaml:"command"`   // Local executable (default "plantuml")
}

// StyleConfig defines page styling options.
type StyleConfig struct {
	Name string `yaml:"name"` // Embedded style name (empty = default)
}

// BrowserConfig defines how rendered pages are opened.
type BrowserConfig struct {
	Command string `yaml:"command"` // Open command tried before the default chain
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-remder/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-remder", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
