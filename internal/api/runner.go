package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ShayCichocki/alphaagent/pkg/models"
)

const (
	defaultMaxTokens   = 8192
	defaultTemperature = 0.2
)

// RunnerConfig selects the model per tier and the sampling settings.
type RunnerConfig struct {
	// FastModel serves models.ModelTierFast prompts.
	FastModel anthropic.Model
	// ReasoningModel serves models.ModelTierReasoning prompts.
	ReasoningModel anthropic.Model
	// MaxTokens caps each response. Zero means 8192.
	MaxTokens int64
	// Temperature is the sampling temperature. Zero means 0.2.
	Temperature float64
}

// Runner sends structured-output prompts and decodes the JSON answer.
type Runner struct {
	client      *Client
	tiers       map[models.ModelTier]anthropic.Model
	maxTokens   int64
	temperature float64
}

// NewRunner creates a runner over client.
func NewRunner(client *Client, cfg RunnerConfig) *Runner {
	fast := cfg.FastModel
	if fast == "" {
		fast = anthropic.ModelClaudeHaiku4_5_20251001
	}
	reasoning := cfg.ReasoningModel
	if reasoning == "" {
		reasoning = client.Model()
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	return &Runner{
		client: client,
		tiers: map[models.ModelTier]anthropic.Model{
			models.ModelTierFast:      client.TranslateModel(fast),
			models.ModelTierReasoning: client.TranslateModel(reasoning),
		},
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// ModelFor returns the model used for a tier. Unknown tiers use the
// client's default model.
func (r *Runner) ModelFor(tier models.ModelTier) anthropic.Model {
	if m, ok := r.tiers[tier]; ok {
		return m
	}
	return r.client.Model()
}

// Run executes a prompt and returns the text response.
func (r *Runner) Run(ctx context.Context, p models.Prompt) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       r.ModelFor(p.Tier),
		MaxTokens:   r.maxTokens,
		Temperature: anthropic.Float(r.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(p.User)),
		},
	}
	if p.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: p.System}}
	}

	resp, err := r.client.inner.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%s: API call failed: %w", p.Agent, err)
	}

	r.client.Tracker().Add(p.Agent, resp.Usage.InputTokens, resp.Usage.OutputTokens)

	var result strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			result.WriteString(variant.Text)
		}
	}

	return result.String(), nil
}

// Generate executes a prompt and decodes the JSON object in the answer
// into target.
func (r *Runner) Generate(ctx context.Context, p models.Prompt, target any) error {
	response, err := r.Run(ctx, p)
	if err != nil {
		return err
	}
	if err := DecodeJSON(response, target); err != nil {
		return fmt.Errorf("%s: %w", p.Agent, err)
	}
	return nil
}

// ExtractJSON returns the outermost JSON object or array in a model
// response, skipping any prose or code fences around it.
func ExtractJSON(response string) (string, error) {
	jsonStart := strings.Index(response, "{")
	jsonEnd := strings.LastIndex(response, "}")
	if arr := strings.Index(response, "["); arr != -1 && (jsonStart == -1 || arr < jsonStart) {
		jsonStart = arr
		jsonEnd = strings.LastIndex(response, "]")
	}

	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		return "", fmt.Errorf("no valid JSON found in response: %s", truncate(response, 200))
	}
	return response[jsonStart : jsonEnd+1], nil
}

// DecodeJSON extracts and unmarshals the JSON in response.
func DecodeJSON(response string, target any) error {
	jsonStr, err := ExtractJSON(response)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("parse JSON: %w (response: %s)", err, truncate(jsonStr, 200))
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
