package config

import (
	"errors"
	"testing"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, name := range envAPIKeys {
		t.Setenv(name, "")
	}
}

func TestGetAPIKey(t *testing.T) {
	t.Run("from environment variable", func(t *testing.T) {
		clearKeyEnv(t)
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant-env-key")

		key, err := GetAPIKey(&Config{Anthropic: AnthropicConfig{APIKey: "sk-ant-config-key"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key != "sk-ant-env-key" {
			t.Errorf("expected 'sk-ant-env-key', got %q", key)
		}
	})

	t.Run("from prefixed environment variable", func(t *testing.T) {
		clearKeyEnv(t)
		t.Setenv("ALPHAAGENT_ANTHROPIC_API_KEY", "sk-ant-prefixed")

		key, err := GetAPIKey(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key != "sk-ant-prefixed" {
			t.Errorf("expected 'sk-ant-prefixed', got %q", key)
		}
	})

	t.Run("from config", func(t *testing.T) {
		clearKeyEnv(t)

		key, err := GetAPIKey(&Config{Anthropic: AnthropicConfig{APIKey: "sk-ant-config-key"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key != "sk-ant-config-key" {
			t.Errorf("expected 'sk-ant-config-key', got %q", key)
		}
	})

	t.Run("unresolved reference", func(t *testing.T) {
		clearKeyEnv(t)

		_, err := GetAPIKey(&Config{Anthropic: AnthropicConfig{APIKey: "${ALPHAAGENT_UNSET_KEY_VAR}"}})
		if !errors.Is(err, ErrNoAPIKey) {
			t.Errorf("expected ErrNoAPIKey, got %v", err)
		}
	})

	t.Run("no key configured", func(t *testing.T) {
		clearKeyEnv(t)

		_, err := GetAPIKey(&Config{})
		if !errors.Is(err, ErrNoAPIKey) {
			t.Errorf("expected ErrNoAPIKey, got %v", err)
		}
	})
}

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid key", "sk-ant-REDACTED", false},
		{"empty key", "", true},
		{"wrong prefix", "sk-openai-abcdefghijklmnop", true},
		{"too short", "sk-ant-abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAPIKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"", "(not set)"},
		{"short", "***"},
		{"sk-ant-REDACTED", "sk-ant-...mnop"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := MaskAPIKey(tt.key); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestGetAPIKeySource(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		cfg      *Config
		expected KeySource
	}{
		{"none", "", &Config{}, KeySourceNone},
		{"nil config", "", nil, KeySourceNone},
		{"environment", "sk-ant-env", &Config{}, KeySourceEnv},
		{"config file", "", &Config{Anthropic: AnthropicConfig{APIKey: "sk-ant-file"}}, KeySourceConfig},
		{"bedrock", "sk-ant-env", &Config{Anthropic: AnthropicConfig{UseBedrock: true}}, KeySourceBedrock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearKeyEnv(t)
			if tt.env != "" {
				t.Setenv("ANTHROPIC_API_KEY", tt.env)
			}
			if got := GetAPIKeySource(tt.cfg); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
			if got := HasCredentials(tt.cfg); got != (tt.expected != KeySourceNone) {
				t.Errorf("expected HasCredentials=%v, got %v", tt.expected != KeySourceNone, got)
			}
		})
	}
}
