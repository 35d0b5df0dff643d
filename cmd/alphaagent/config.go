package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/alphaagent/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify alphaagent configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/alphaagent/config.yaml
Project-specific overrides can be placed in .alphaagent.yaml`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch len(args) {
		case 0:
			for _, key := range configKeys {
				value, _ := getConfigValue(cfg, key)
				fmt.Fprintf(out, "%s: %s\n", key, value)
			}
			fmt.Fprintf(out, "\napi key source: %s\n", config.GetAPIKeySource(cfg))
			if path := config.GetProjectConfigPath(); path != "" {
				fmt.Fprintf(out, "project config: %s\n", path)
			}
			fmt.Fprintf(out, "user config: %s\n", config.GetUserConfigPath())
			return nil
		case 1:
			value, err := getConfigValue(cfg, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, value)
			return nil
		default:
			if err := setConfigValue(cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Fprintf(out, "Set %s = %s\n", args[0], args[1])
			return nil
		}
	},
}

// configKeys lists the settable keys in display order.
var configKeys = []string{
	"anthropic.api_key",
	"anthropic.use_bedrock",
	"anthropic.aws_region",
	"anthropic.aws_profile",
	"models.fast",
	"models.reasoning",
	"agents.language",
	"agents.call_timeout",
	"agents.mock",
	"agents.mock_min_latency",
	"agents.mock_max_latency",
	"pipeline.stage_stagger",
	"pipeline.synthesis_gate",
	"pipeline.event_buffer",
	"tui.alt_screen",
	"logging.debug_file",
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		return config.MaskAPIKey(cfg.Anthropic.APIKey), nil
	case "anthropic.use_bedrock":
		return strconv.FormatBool(cfg.Anthropic.UseBedrock), nil
	case "anthropic.aws_region":
		return cfg.Anthropic.AWSRegion, nil
	case "anthropic.aws_profile":
		return cfg.Anthropic.AWSProfile, nil
	case "models.fast":
		return cfg.Models.Fast, nil
	case "models.reasoning":
		return cfg.Models.Reasoning, nil
	case "agents.language":
		return string(cfg.Language()), nil
	case "agents.call_timeout":
		return cfg.Agents.CallTimeout.String(), nil
	case "agents.mock":
		return strconv.FormatBool(cfg.Agents.Mock), nil
	case "agents.mock_min_latency":
		return cfg.Agents.MockMinLatency.String(), nil
	case "agents.mock_max_latency":
		return cfg.Agents.MockMaxLatency.String(), nil
	case "pipeline.stage_stagger":
		return cfg.Pipeline.StageStagger.String(), nil
	case "pipeline.synthesis_gate":
		return string(cfg.GatePolicy()), nil
	case "pipeline.event_buffer":
		return strconv.Itoa(cfg.Pipeline.EventBuffer), nil
	case "tui.alt_screen":
		return strconv.FormatBool(cfg.TUI.AltScreen), nil
	case "logging.debug_file":
		return cfg.Logging.DebugFile, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		if err := config.ValidateAPIKey(value); err != nil {
			return err
		}
		cfg.Anthropic.APIKey = value
	case "anthropic.use_bedrock":
		return setBool(&cfg.Anthropic.UseBedrock, key, value)
	case "anthropic.aws_region":
		cfg.Anthropic.AWSRegion = value
	case "anthropic.aws_profile":
		cfg.Anthropic.AWSProfile = value
	case "models.fast":
		cfg.Models.Fast = value
	case "models.reasoning":
		cfg.Models.Reasoning = value
	case "agents.language":
		cfg.Agents.Language = strings.ToUpper(value)
	case "agents.call_timeout":
		return setDuration(&cfg.Agents.CallTimeout, key, value)
	case "agents.mock":
		return setBool(&cfg.Agents.Mock, key, value)
	case "agents.mock_min_latency":
		return setDuration(&cfg.Agents.MockMinLatency, key, value)
	case "agents.mock_max_latency":
		return setDuration(&cfg.Agents.MockMaxLatency, key, value)
	case "pipeline.stage_stagger":
		return setDuration(&cfg.Pipeline.StageStagger, key, value)
	case "pipeline.synthesis_gate":
		cfg.Pipeline.SynthesisGate = strings.ToLower(value)
	case "pipeline.event_buffer":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		cfg.Pipeline.EventBuffer = n
	case "tui.alt_screen":
		return setBool(&cfg.TUI.AltScreen, key, value)
	case "logging.debug_file":
		cfg.Logging.DebugFile = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

func setDuration(dst *time.Duration, key, value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	*dst = d
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for %s: %w", key, err)
	}
	*dst = b
	return nil
}
