package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ShayCichocki/alphaagent/pkg/models"
)

func TestMockGenerator_ProducesValidPayloads(t *testing.T) {
	r := NewRunner(NewMockGenerator(WithLatency(0, 0), WithSeed(42)), time.Second)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		quant, err := r.Quant(ctx, stock)
		if err != nil {
			t.Fatalf("Quant: %v", err)
		}
		if _, err := r.Backtest(ctx, stock, *quant); err != nil {
			t.Fatalf("Backtest: %v", err)
		}
		if _, err := r.Industry(ctx, stock); err != nil {
			t.Fatalf("Industry: %v", err)
		}
		if _, err := r.Judge(ctx, models.SynthesisInput{Stock: stock}); err != nil {
			t.Fatalf("Judge: %v", err)
		}
	}
}

func TestMockGenerator_Failures(t *testing.T) {
	mock := NewMockGenerator(WithLatency(0, 0), WithFailures("news"))

	var out models.NewsReport
	err := mock.Generate(context.Background(), models.Prompt{Agent: "news"}, &out)
	if !errors.Is(err, ErrMockFailure) {
		t.Errorf("expected ErrMockFailure, got %v", err)
	}
	if mock.Calls("news") != 1 {
		t.Errorf("expected one call, got %d", mock.Calls("news"))
	}
}

func TestMockGenerator_UnsupportedTarget(t *testing.T) {
	mock := NewMockGenerator(WithLatency(0, 0))

	var out string
	if err := mock.Generate(context.Background(), models.Prompt{Agent: "x"}, &out); err == nil {
		t.Error("expected error for unsupported target")
	}
}

func TestMockGenerator_Latency(t *testing.T) {
	mock := NewMockGenerator(WithLatency(30*time.Millisecond, 40*time.Millisecond))

	start := time.Now()
	var out models.HedgingReport
	if err := mock.Generate(context.Background(), models.Prompt{Agent: "hedging"}, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("expected at least 30ms of latency, got %v", elapsed)
	}
}
