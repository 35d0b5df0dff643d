package main

import (
	"fmt"
	"log"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ShayCichocki/alphaagent/internal/agent"
	"github.com/ShayCichocki/alphaagent/internal/api"
	"github.com/ShayCichocki/alphaagent/internal/config"
	"github.com/ShayCichocki/alphaagent/internal/pipeline"
)

// Agent backends.
const (
	modeLive = "live"
	modeMock = "mock"
)

// runtime bundles the orchestrator with the pieces the commands report on.
type runtime struct {
	cfg     *config.Config
	orch    *pipeline.Orchestrator
	logger  *pipeline.DebugLogger
	mode    string
	tracker *api.TokenTracker
}

// loadConfig loads configuration and applies the global flags.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if langFlag != "" {
		cfg.Agents.Language = langFlag
	}
	if forceMock {
		cfg.Agents.Mock = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newRuntime builds an orchestrator from config. Forced failures imply
// mock mode.
func newRuntime(failures []string) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newRuntimeFromConfig(cfg, failures)
}

func newRuntimeFromConfig(cfg *config.Config, failures []string) (*runtime, error) {
	for _, name := range failures {
		if _, err := pipeline.ParseTaskName(name); err != nil {
			return nil, fmt.Errorf("--fail: %w", err)
		}
	}

	logger, err := pipeline.NewDebugLogger(cfg.Logging.DebugFile)
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}

	rt := &runtime{cfg: cfg, logger: logger}
	gen, err := rt.generator(failures)
	if err != nil {
		logger.Close()
		return nil, err
	}

	gate, err := pipeline.SynthesisGate(cfg.GatePolicy())
	if err != nil {
		logger.Close()
		return nil, err
	}

	rt.orch = pipeline.New(
		agent.NewRunner(gen, cfg.Agents.CallTimeout),
		pipeline.WithStageStagger(cfg.Pipeline.StageStagger),
		pipeline.WithSynthesisGate(gate),
		pipeline.WithEventBuffer(cfg.Pipeline.EventBuffer),
		pipeline.WithLogger(logger),
	)
	logger.Log("[alphaagent] runtime ready: mode=%s gate=%s language=%s", rt.mode, cfg.GatePolicy(), cfg.Language())
	return rt, nil
}

// generator selects the live API runner or the mock.
func (rt *runtime) generator(failures []string) (agent.Generator, error) {
	cfg := rt.cfg
	if cfg.Agents.Mock || len(failures) > 0 || !config.HasCredentials(cfg) {
		rt.mode = modeMock
		if !cfg.Agents.Mock && len(failures) == 0 {
			log.Printf("[alphaagent] no API key configured; using mock agents")
		}
		return agent.NewMockGenerator(
			agent.WithLatency(cfg.Agents.MockMinLatency, cfg.Agents.MockMaxLatency),
			agent.WithFailures(failures...),
		), nil
	}

	key, _ := config.GetAPIKey(cfg)
	client, err := api.NewClient(api.ClientConfig{
		Model:         anthropic.Model(cfg.Models.Reasoning),
		APIKey:        key,
		UseAWSBedrock: cfg.Anthropic.UseBedrock,
		AWSRegion:     cfg.Anthropic.AWSRegion,
		AWSProfile:    cfg.Anthropic.AWSProfile,
	})
	if err != nil {
		return nil, fmt.Errorf("create API client: %w", err)
	}

	rt.mode = modeLive
	rt.tracker = client.Tracker()
	return api.NewRunner(client, api.RunnerConfig{
		FastModel:      anthropic.Model(cfg.Models.Fast),
		ReasoningModel: anthropic.Model(cfg.Models.Reasoning),
	}), nil
}

// Close shuts the orchestrator down and flushes the debug log.
func (rt *runtime) Close() {
	rt.orch.Close()
	if rt.tracker != nil {
		in, out := rt.tracker.Total()
		rt.logger.Log("[alphaagent] tokens: %d in, %d out, ~$%.4f", in, out, rt.tracker.Cost())
	}
	rt.logger.Close()
}
