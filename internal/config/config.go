// Package config handles configuration loading and management for alphaagent.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ShayCichocki/alphaagent/internal/pipeline"
	"github.com/ShayCichocki/alphaagent/pkg/models"
)

const (
	// ProjectConfigName is the project-level override file searched from cwd upwards.
	ProjectConfigName = ".alphaagent.yaml"
	// EnvPrefix prefixes environment overrides (ALPHAAGENT_PIPELINE_STAGE_STAGGER, ...).
	EnvPrefix = "ALPHAAGENT"

	// DefaultFastModel serves the extraction-style agents.
	DefaultFastModel = "claude-haiku-4-5-20251001"
	// DefaultReasoningModel serves the hedging, debate and judge agents.
	DefaultReasoningModel = "claude-sonnet-4-5-20250929"
)

// Config holds all configuration for alphaagent.
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Models    ModelsConfig    `mapstructure:"models"`
	Agents    AgentsConfig    `mapstructure:"agents"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	TUI       TUIConfig       `mapstructure:"tui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey     string `mapstructure:"api_key"`
	UseBedrock bool   `mapstructure:"use_bedrock"`
	AWSRegion  string `mapstructure:"aws_region"`
	AWSProfile string `mapstructure:"aws_profile"`
}

// ModelsConfig maps model tiers to concrete model identifiers.
type ModelsConfig struct {
	Fast      string `mapstructure:"fast"`
	Reasoning string `mapstructure:"reasoning"`
}

// AgentsConfig holds agent runner settings.
type AgentsConfig struct {
	// Language is the default output language (EN or CN).
	Language string `mapstructure:"language"`
	// CallTimeout bounds a single agent call.
	CallTimeout time.Duration `mapstructure:"call_timeout"`
	// Mock forces the mock generator even when a key is configured.
	Mock bool `mapstructure:"mock"`
	// MockMinLatency and MockMaxLatency bound the simulated mock delay.
	MockMinLatency time.Duration `mapstructure:"mock_min_latency"`
	MockMaxLatency time.Duration `mapstructure:"mock_max_latency"`
}

// PipelineConfig holds orchestrator settings.
type PipelineConfig struct {
	StageStagger  time.Duration `mapstructure:"stage_stagger"`
	SynthesisGate string        `mapstructure:"synthesis_gate"`
	EventBuffer   int           `mapstructure:"event_buffer"`
}

// TUIConfig holds TUI display settings.
type TUIConfig struct {
	AltScreen bool `mapstructure:"alt_screen"`
}

// LoggingConfig holds debug logging settings.
type LoggingConfig struct {
	// DebugFile enables the pipeline debug log when non-empty.
	DebugFile string `mapstructure:"debug_file"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, ALPHAAGENT_*)
// 2. Project config (.alphaagent.yaml in current directory or parent)
// 3. User config (~/.config/alphaagent/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading project config %s: %w", projectConfig, err)
		}
		if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	bindEnv(v)
	return unmarshal(v)
}

// LoadFromPath loads configuration from a specific path, applying
// the same defaults and environment overrides as Load.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	bindEnv(v)
	return unmarshal(v)
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	return SaveToPath(cfg, GetUserConfigPath())
}

// SaveToPath writes the configuration to path, creating parent directories.
func SaveToPath(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)
	v.Set("anthropic.use_bedrock", cfg.Anthropic.UseBedrock)
	v.Set("anthropic.aws_region", cfg.Anthropic.AWSRegion)
	v.Set("anthropic.aws_profile", cfg.Anthropic.AWSProfile)
	v.Set("models.fast", cfg.Models.Fast)
	v.Set("models.reasoning", cfg.Models.Reasoning)
	v.Set("agents.language", cfg.Agents.Language)
	v.Set("agents.call_timeout", cfg.Agents.CallTimeout.String())
	v.Set("agents.mock", cfg.Agents.Mock)
	v.Set("agents.mock_min_latency", cfg.Agents.MockMinLatency.String())
	v.Set("agents.mock_max_latency", cfg.Agents.MockMaxLatency.String())
	v.Set("pipeline.stage_stagger", cfg.Pipeline.StageStagger.String())
	v.Set("pipeline.synthesis_gate", cfg.Pipeline.SynthesisGate)
	v.Set("pipeline.event_buffer", cfg.Pipeline.EventBuffer)
	v.Set("tui.alt_screen", cfg.TUI.AltScreen)
	v.Set("logging.debug_file", cfg.Logging.DebugFile)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Validate checks values that viper cannot type-check.
func (c *Config) Validate() error {
	var errs []error
	if !c.Language().Valid() {
		errs = append(errs, fmt.Errorf("agents.language: unknown language %q (want EN or CN)", c.Agents.Language))
	}
	if !c.GatePolicy().Valid() {
		errs = append(errs, fmt.Errorf("pipeline.synthesis_gate: unknown policy %q", c.Pipeline.SynthesisGate))
	}
	durations := []struct {
		key string
		d   time.Duration
	}{
		{"agents.call_timeout", c.Agents.CallTimeout},
		{"agents.mock_min_latency", c.Agents.MockMinLatency},
		{"agents.mock_max_latency", c.Agents.MockMaxLatency},
		{"pipeline.stage_stagger", c.Pipeline.StageStagger},
	}
	for _, d := range durations {
		if d.d < 0 {
			errs = append(errs, fmt.Errorf("%s: must not be negative, got %v", d.key, d.d))
		}
	}
	if c.Agents.MockMaxLatency < c.Agents.MockMinLatency {
		errs = append(errs, fmt.Errorf("agents.mock_max_latency: %v is below mock_min_latency %v",
			c.Agents.MockMaxLatency, c.Agents.MockMinLatency))
	}
	if c.Pipeline.EventBuffer < 0 {
		errs = append(errs, fmt.Errorf("pipeline.event_buffer: must not be negative, got %d", c.Pipeline.EventBuffer))
	}
	return errors.Join(errs...)
}

// Language returns the configured output language, upper-cased.
func (c *Config) Language() models.Language {
	return models.Language(strings.ToUpper(strings.TrimSpace(c.Agents.Language)))
}

// GatePolicy returns the configured synthesis gate policy.
func (c *Config) GatePolicy() pipeline.GatePolicy {
	return pipeline.GatePolicy(strings.ToLower(strings.TrimSpace(c.Pipeline.SynthesisGate)))
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Models: ModelsConfig{
			Fast:      DefaultFastModel,
			Reasoning: DefaultReasoningModel,
		},
		Agents: AgentsConfig{
			Language:       string(models.LanguageEN),
			CallTimeout:    90 * time.Second,
			MockMinLatency: time.Second,
			MockMaxLatency: 3 * time.Second,
		},
		Pipeline: PipelineConfig{
			StageStagger:  pipeline.DefaultStageStagger,
			SynthesisGate: string(pipeline.GateBestEffort),
			EventBuffer:   pipeline.DefaultEventBuffer,
		},
		TUI: TUIConfig{
			AltScreen: true,
		},
	}
}

// setDefaults configures default values from Default.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.use_bedrock", false)
	v.SetDefault("anthropic.aws_region", "")
	v.SetDefault("anthropic.aws_profile", "")

	v.SetDefault("models.fast", d.Models.Fast)
	v.SetDefault("models.reasoning", d.Models.Reasoning)

	v.SetDefault("agents.language", d.Agents.Language)
	v.SetDefault("agents.call_timeout", d.Agents.CallTimeout.String())
	v.SetDefault("agents.mock", false)
	v.SetDefault("agents.mock_min_latency", d.Agents.MockMinLatency.String())
	v.SetDefault("agents.mock_max_latency", d.Agents.MockMaxLatency.String())

	v.SetDefault("pipeline.stage_stagger", d.Pipeline.StageStagger.String())
	v.SetDefault("pipeline.synthesis_gate", d.Pipeline.SynthesisGate)
	v.SetDefault("pipeline.event_buffer", d.Pipeline.EventBuffer)

	v.SetDefault("tui.alt_screen", d.TUI.AltScreen)
	v.SetDefault("logging.debug_file", "")
}

// bindEnv maps ALPHAAGENT_SECTION_KEY variables and ANTHROPIC_API_KEY onto config keys.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY", EnvPrefix+"_ANTHROPIC_API_KEY")
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)
	cfg.Logging.DebugFile = os.ExpandEnv(cfg.Logging.DebugFile)

	return cfg, nil
}

// getUserConfigDir returns the XDG config directory for alphaagent.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "alphaagent")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "alphaagent")
	}
	return filepath.Join(home, ".config", "alphaagent")
}

// findProjectConfig searches for .alphaagent.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ProjectConfigName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}
