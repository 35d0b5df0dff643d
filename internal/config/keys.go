package config

import (
	"errors"
	"os"
	"strings"
)

// ErrNoAPIKey is returned when no API key is configured.
var ErrNoAPIKey = errors.New("no Anthropic API key configured")

// envAPIKeys are checked in order before the config file.
var envAPIKeys = []string{"ANTHROPIC_API_KEY", EnvPrefix + "_ANTHROPIC_API_KEY"}

// GetAPIKey returns the Anthropic API key.
// It checks in order: environment variables, config file.
func GetAPIKey(cfg *Config) (string, error) {
	if key := envAPIKey(); key != "" {
		return key, nil
	}
	if key := configAPIKey(cfg); key != "" {
		return key, nil
	}
	return "", ErrNoAPIKey
}

// ValidateAPIKey performs basic format validation on an API key.
// It does not verify the key with Anthropic's API.
func ValidateAPIKey(key string) error {
	if key == "" {
		return ErrNoAPIKey
	}
	if !strings.HasPrefix(key, "sk-ant-") {
		return errors.New("invalid API key format: expected 'sk-ant-' prefix")
	}
	if len(key) < 20 {
		return errors.New("invalid API key format: key too short")
	}
	return nil
}

// MaskAPIKey returns a masked version of the API key for display.
// Shows the first 7 characters (sk-ant-) and last 4 characters.
func MaskAPIKey(key string) string {
	switch {
	case key == "":
		return "(not set)"
	case len(key) <= 15:
		return "***"
	default:
		return key[:7] + "..." + key[len(key)-4:]
	}
}

// KeySource represents where an API key was loaded from.
type KeySource string

const (
	KeySourceEnv     KeySource = "environment"
	KeySourceConfig  KeySource = "config_file"
	KeySourceBedrock KeySource = "aws_bedrock"
	KeySourceNone    KeySource = "none"
)

// GetAPIKeySource returns where credentials will come from.
// Bedrock uses AWS credentials and needs no Anthropic key.
func GetAPIKeySource(cfg *Config) KeySource {
	switch {
	case cfg != nil && cfg.Anthropic.UseBedrock:
		return KeySourceBedrock
	case envAPIKey() != "":
		return KeySourceEnv
	case configAPIKey(cfg) != "":
		return KeySourceConfig
	default:
		return KeySourceNone
	}
}

// HasCredentials reports whether live agents can be used.
func HasCredentials(cfg *Config) bool {
	return GetAPIKeySource(cfg) != KeySourceNone
}

func envAPIKey() string {
	for _, name := range envAPIKeys {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}
	return ""
}

// configAPIKey returns the config key unless it is an unresolved ${VAR} reference.
func configAPIKey(cfg *Config) string {
	if cfg == nil || cfg.Anthropic.APIKey == "" {
		return ""
	}
	key := os.ExpandEnv(cfg.Anthropic.APIKey)
	if strings.HasPrefix(key, "${") {
		return ""
	}
	return key
}
