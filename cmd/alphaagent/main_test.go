package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/ShayCichocki/alphaagent/internal/config"
	"github.com/ShayCichocki/alphaagent/internal/pipeline"
	"github.com/ShayCichocki/alphaagent/internal/watchlist"
	"github.com/ShayCichocki/alphaagent/pkg/models"
)

var testStock = models.StockContext{Ticker: "NVDA", Language: models.LanguageEN}

// mockConfig returns a config that runs instantly on mock agents.
func mockConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Agents.Mock = true
	cfg.Agents.MockMinLatency = 0
	cfg.Agents.MockMaxLatency = 0
	cfg.Pipeline.StageStagger = 0
	cfg.Pipeline.EventBuffer = 1000
	return cfg
}

func newTestRuntime(t *testing.T, failures ...string) *runtime {
	t.Helper()
	rt, err := newRuntimeFromConfig(mockConfig(t), failures)
	if err != nil {
		t.Fatalf("newRuntimeFromConfig failed: %v", err)
	}
	t.Cleanup(rt.Close)
	return rt
}

func TestNewRuntime_MockMode(t *testing.T) {
	rt := newTestRuntime(t)
	if rt.mode != modeMock {
		t.Errorf("expected mock mode, got %q", rt.mode)
	}
	if rt.tracker != nil {
		t.Error("expected no token tracker in mock mode")
	}
}

func TestNewRuntime_RejectsUnknownFailure(t *testing.T) {
	_, err := newRuntimeFromConfig(mockConfig(t), []string{"sentiment"})
	if err == nil || !strings.Contains(err.Error(), "--fail") {
		t.Errorf("expected --fail error, got %v", err)
	}
}

func TestAnalyzeOnce_JSON(t *testing.T) {
	rt := newTestRuntime(t)

	var out, progress bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := analyzeOnce(ctx, rt.orch, testStock, &out, &progress, formatJSON); err != nil {
		t.Fatalf("analyzeOnce failed: %v", err)
	}

	var state pipeline.RunState
	if err := json.Unmarshal(out.Bytes(), &state); err != nil {
		t.Fatalf("expected valid json report, got %v:\n%s", err, out.String())
	}
	if state.Judge.Status != models.TaskStatusSuccess {
		t.Errorf("expected judge success, got %s (%s)", state.Judge.Status, state.Judge.ErrorMessage)
	}
	if state.Stock.Ticker != "NVDA" {
		t.Errorf("expected NVDA, got %q", state.Stock.Ticker)
	}
	if !strings.Contains(progress.String(), "judge") {
		t.Errorf("expected judge progress line, got:\n%s", progress.String())
	}
}

func TestAnalyzeOnce_CriticalFailure(t *testing.T) {
	rt := newTestRuntime(t, "quant")

	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := analyzeOnce(ctx, rt.orch, testStock, &out, &bytes.Buffer{}, formatText)
	if !errors.Is(err, errNoRecommendation) {
		t.Fatalf("expected errNoRecommendation, got %v", err)
	}
	if !strings.Contains(out.String(), "No recommendation") {
		t.Errorf("expected text report to explain missing recommendation, got:\n%s", out.String())
	}
}

func TestWriteReport(t *testing.T) {
	rt := newTestRuntime(t, "debate")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	state, err := rt.orch.Run(ctx, testStock)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeReport(&buf, state, formatText); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"NVDA", "industry", "debate", "Decision:", "Forecast:"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("expected text report to contain %q, got:\n%s", want, buf.String())
			}
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeReport(&buf, state, formatYAML); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var decoded map[string]any
		if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("expected valid yaml, got %v", err)
		}
		debate, ok := decoded["debate"].(map[string]any)
		if !ok {
			t.Fatalf("expected debate section, got %T", decoded["debate"])
		}
		if debate["failure"] != string(models.FailureTask) {
			t.Errorf("expected debate failure %q, got %v", models.FailureTask, debate["failure"])
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := writeReport(&bytes.Buffer{}, state, "xml"); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestConfigValues(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		key      string
		value    string
		expected string
		wantErr  bool
	}{
		{"agents.language", "cn", "CN", false},
		{"pipeline.stage_stagger", "1s", "1s", false},
		{"pipeline.synthesis_gate", "ALL_REQUIRED", "all_required", false},
		{"pipeline.event_buffer", "250", "250", false},
		{"tui.alt_screen", "false", "false", false},
		{"anthropic.api_key", "sk-ant-REDACTED", "sk-ant-...mnop", false},
		{"anthropic.api_key", "not-a-key", "", true},
		{"agents.call_timeout", "soon", "", true},
		{"nope.key", "x", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			err := setConfigValue(cfg, tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, err := getConfigValue(cfg, tt.key)
			if err != nil {
				t.Fatalf("unexpected get error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}

	for _, key := range configKeys {
		if _, err := getConfigValue(cfg, key); err != nil {
			t.Errorf("expected listed key %s to be readable, got %v", key, err)
		}
	}
}

type fakeChanges struct {
	changes chan []watchlist.Entry
	errs    chan error
}

func (f *fakeChanges) Changes() <-chan []watchlist.Entry { return f.changes }
func (f *fakeChanges) Errors() <-chan error              { return f.errs }

func TestWatchLoop_CancelsPreviousPass(t *testing.T) {
	src := &fakeChanges{changes: make(chan []watchlist.Entry), errs: make(chan error)}

	var mu sync.Mutex
	var cancelled []string
	started := make(chan string, 2)

	pass := func(ctx context.Context, entries []watchlist.Entry) {
		started <- entries[0].Ticker
		<-ctx.Done()
		mu.Lock()
		cancelled = append(cancelled, entries[0].Ticker)
		mu.Unlock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watchLoop(ctx, src, io.Discard, pass) }()

	src.changes <- []watchlist.Entry{{Ticker: "NVDA"}}
	if got := <-started; got != "NVDA" {
		t.Fatalf("expected first pass for NVDA, got %s", got)
	}
	src.changes <- []watchlist.Entry{{Ticker: "AAPL"}}
	if got := <-started; got != "AAPL" {
		t.Fatalf("expected second pass for AAPL, got %s", got)
	}

	mu.Lock()
	if len(cancelled) != 1 || cancelled[0] != "NVDA" {
		t.Errorf("expected NVDA pass to be cancelled before AAPL started, got %v", cancelled)
	}
	mu.Unlock()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("watchLoop did not return after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(cancelled) != 2 {
		t.Errorf("expected both passes cancelled on exit, got %v", cancelled)
	}
}

func TestWatchLoop_ReportsErrorsToWriter(t *testing.T) {
	src := &fakeChanges{changes: make(chan []watchlist.Entry), errs: make(chan error)}

	var errOut bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, src, &errOut, func(context.Context, []watchlist.Entry) {})
	}()

	src.errs <- errors.New("permission denied")
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watchLoop did not return after cancel")
	}

	if got := errOut.String(); got != "watchlist: permission denied\n" {
		t.Errorf("expected watchlist error on the writer, got %q", got)
	}
}

func TestAnalyzeEntries(t *testing.T) {
	rt := newTestRuntime(t)
	go func() {
		for range rt.orch.Events() {
		}
	}()

	var out, errOut bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entries := []watchlist.Entry{{Ticker: "NVDA"}, {Ticker: "0700.HK", Market: "HK"}}
	analyzeEntries(ctx, rt.orch, entries, models.LanguageEN, &out, &errOut, formatText)

	for _, want := range []string{"NVDA", "0700.HK (HK)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected report for %s, got:\n%s", want, out.String())
		}
	}
	if errOut.Len() != 0 {
		t.Errorf("expected no errors, got:\n%s", errOut.String())
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range []string{formatText, formatJSON, formatYAML} {
		if !validFormat(f) {
			t.Errorf("expected %q to be valid", f)
		}
	}
	if validFormat("csv") {
		t.Error("expected csv to be invalid")
	}
}
