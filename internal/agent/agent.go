// Package agent implements the analysis agents on top of a text-generation
// backend.
package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ShayCichocki/alphaagent/internal/pipeline"
	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// ErrInvalidPayload is wrapped by every payload validation failure.
var ErrInvalidPayload = errors.New("invalid payload")

// Generator answers one prompt by decoding structured output into target.
// api.Runner and MockGenerator implement it.
type Generator interface {
	Generate(ctx context.Context, p models.Prompt, target any) error
}

// Runner implements pipeline.Agents. Each method builds the agent's prompt,
// calls the generator under its own timeout and validates the payload.
type Runner struct {
	gen     Generator
	timeout time.Duration
}

var _ pipeline.Agents = (*Runner)(nil)

// NewRunner creates a runner. A zero timeout uses DefaultCallTimeout; a
// negative one disables the per-call timeout.
func NewRunner(gen Generator, timeout time.Duration) *Runner {
	if timeout == 0 {
		timeout = DefaultCallTimeout
	}
	return &Runner{gen: gen, timeout: timeout}
}

// generate runs one prompt and validates the decoded payload.
func generate[T any](ctx context.Context, r *Runner, p models.Prompt, validate func(*T) error) (*T, error) {
	ctx, cancel := withCallTimeout(ctx, r.timeout)
	defer cancel()

	var out T
	if err := r.gen.Generate(ctx, p, &out); err != nil {
		return nil, err
	}
	if err := validate(&out); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", p.Agent, ErrInvalidPayload, err)
	}
	return &out, nil
}

// Industry analyzes the sector and the broad market.
func (r *Runner) Industry(ctx context.Context, stock models.StockContext) (*models.IndustryReport, error) {
	return generate(ctx, r, industryPrompt(stock), validateIndustry)
}

// News digests the last 30 days of headlines.
func (r *Runner) News(ctx context.Context, stock models.StockContext) (*models.NewsReport, error) {
	return generate(ctx, r, newsPrompt(stock), validateNews)
}

// Quant audits the four dominant technical metrics.
func (r *Runner) Quant(ctx context.Context, stock models.StockContext) (*models.QuantReport, error) {
	return generate(ctx, r, quantPrompt(stock), validateQuant)
}

// Competitor maps the closest peers.
func (r *Runner) Competitor(ctx context.Context, stock models.StockContext) (*models.CompetitorReport, error) {
	return generate(ctx, r, competitorPrompt(stock), validateCompetitor)
}

// Hedging proposes ways to protect a long position.
func (r *Runner) Hedging(ctx context.Context, stock models.StockContext) (*models.HedgingReport, error) {
	return generate(ctx, r, hedgingPrompt(stock), validateHedging)
}

// Debate simulates a bull/bear exchange.
func (r *Runner) Debate(ctx context.Context, stock models.StockContext) (*models.DebateReport, error) {
	return generate(ctx, r, debatePrompt(stock), validateDebate)
}

// Backtest grades past calls against the quant signals.
func (r *Runner) Backtest(ctx context.Context, stock models.StockContext, quant models.QuantReport) (*models.BacktestReport, error) {
	p, err := backtestPrompt(stock, quant)
	if err != nil {
		return nil, err
	}
	return generate(ctx, r, p, validateBacktest)
}

// Judge synthesizes every available report into the final decision.
func (r *Runner) Judge(ctx context.Context, input models.SynthesisInput) (*models.JudgeReport, error) {
	p, err := judgePrompt(input)
	if err != nil {
		return nil, err
	}
	return generate(ctx, r, p, validateJudge)
}
