// Package config handles reading and writing ~/.dojoterm/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for ~/.dojoterm/config.yaml.
type Config struct {
	Version int          `yaml:"version"`
	Server  ServerConfig `yaml:"server"`
	Editor  EditorConfig `yaml:"editor"`
	Voice   VoiceConfig  `yaml:"voice"`
}

// ServerConfig holds connection settings for the practice server.
type ServerConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"` // seconds, per request
}

// EditorConfig controls the code editor panel.
type EditorConfig struct {
	// Languages is the fixed option set for the language control.
	// Matching against a problem's declared language is case-insensitive.
	Languages []string `yaml:"languages"`
}

// VoiceConfig controls the voice assistant subsystem.
type VoiceConfig struct {
	Enabled      bool   `yaml:"enabled"`
	StreamURL    string `yaml:"stream_url"` // websocket transcription endpoint
	APIKey       string `yaml:"api_key"`
	Language     string `yaml:"language"`      // recognition locale, e.g. en-US
	VoicePrefix  string `yaml:"voice_prefix"`  // synthesis voice language prefix
	SynthCommand string `yaml:"synth_command"` // espeak-ng compatible binary
}

const configDir = ".dojoterm"
const configFile = "config.yaml"

// Dir returns the dojoterm config directory inside home, creating it if needed.
func Dir(home string) (string, error) {
	dir := filepath.Join(home, configDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return dir, nil
}

// ReadConfig reads config.yaml from the dojoterm directory inside home.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(home string) (*Config, error) {
	path := filepath.Join(home, configDir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to config.yaml in the dojoterm directory inside home.
// Creates the directory if it does not exist.
func WriteConfig(home string, cfg *Config) error {
	dir, err := Dir(home)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dir, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 30,
		},
		Editor: EditorConfig{
			Languages: []string{"python", "java"},
		},
		Voice: VoiceConfig{
			Enabled:      true,
			Language:     "en-US",
			VoicePrefix:  "en",
			SynthCommand: "espeak-ng",
		},
	}
}
