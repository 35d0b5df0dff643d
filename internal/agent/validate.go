package agent

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// fieldErrors collects every problem with a payload.
type fieldErrors []error

func (f *fieldErrors) require(ok bool, field, format string, args ...any) {
	if !ok {
		*f = append(*f, fmt.Errorf("%s: "+format, append([]any{field}, args...)...))
	}
}

func (f *fieldErrors) text(field, value string) {
	f.require(strings.TrimSpace(value) != "", field, "required")
}

func (f fieldErrors) err() error {
	return errors.Join(f...)
}

func validateIndustry(r *models.IndustryReport) error {
	var f fieldErrors
	f.require(r.SectorTrend.Valid(), "sectorTrend", "unknown value %q", r.SectorTrend)
	f.require(r.RegulatoryRisk.Valid(), "regulatoryRisk", "unknown value %q", r.RegulatoryRisk)
	f.text("marketOutlook", r.MarketOutlook)
	f.text("summary", r.Summary)
	return f.err()
}

func validateNews(r *models.NewsReport) error {
	var f fieldErrors
	f.require(r.Sentiment.Valid(), "sentiment", "unknown value %q", r.Sentiment)
	f.require(r.ImpactHorizon.Valid(), "impactHorizon", "unknown value %q", r.ImpactHorizon)
	f.require(len(r.TopEvents) > 0, "topEvents", "at least one event required")
	f.text("summary", r.Summary)
	return f.err()
}

func validateQuant(r *models.QuantReport) error {
	var f fieldErrors
	f.require(r.CurrentPrice > 0 && !math.IsInf(r.CurrentPrice, 0), "currentPrice", "must be positive, got %v", r.CurrentPrice)
	f.require(r.TrendSignal.Valid(), "trendSignal", "unknown value %q", r.TrendSignal)
	f.require(r.VolatilitySignal.Valid(), "volatilitySignal", "unknown value %q", r.VolatilitySignal)
	f.require(r.VolumeSignal.Valid(), "volumeSignal", "unknown value %q", r.VolumeSignal)
	f.require(r.ValuationSignal.Valid(), "valuationSignal", "unknown value %q", r.ValuationSignal)
	return f.err()
}

func validateCompetitor(r *models.CompetitorReport) error {
	var f fieldErrors
	f.require(len(r.TopCompetitors) > 0, "topCompetitors", "at least one competitor required")
	for i, c := range r.TopCompetitors {
		f.text(fmt.Sprintf("topCompetitors[%d].name", i), c.Name)
	}
	f.require(r.MarketPosition.Valid(), "marketPosition", "unknown value %q", r.MarketPosition)
	return f.err()
}

func validateHedging(r *models.HedgingReport) error {
	var f fieldErrors
	f.text("primaryStrategy.type", r.PrimaryStrategy.Type)
	f.require(r.PrimaryStrategy.Cost.Valid(), "primaryStrategy.cost", "unknown value %q", r.PrimaryStrategy.Cost)
	if r.AlternativeStrategy.Type != "" {
		f.require(r.AlternativeStrategy.Cost.Valid(), "alternativeStrategy.cost", "unknown value %q", r.AlternativeStrategy.Cost)
	}
	f.text("rationale", r.Rationale)
	return f.err()
}

func validateDebate(r *models.DebateReport) error {
	var f fieldErrors
	f.text("topic", r.Topic)
	f.require(len(r.Turns) > 0, "turns", "at least one turn required")
	for i, turn := range r.Turns {
		f.require(turn.Speaker.Valid(), fmt.Sprintf("turns[%d].speaker", i), "unknown value %q", turn.Speaker)
	}
	f.text("conclusion", r.Conclusion)
	return f.err()
}

func validateBacktest(r *models.BacktestReport) error {
	var f fieldErrors
	f.require(r.Score >= 0 && r.Score <= 100, "score", "must be within 0-100, got %d", r.Score)
	f.require(r.Bias.Valid(), "bias", "unknown value %q", r.Bias)
	return f.err()
}

// validateJudge also rescales a confidence given as a percentage.
func validateJudge(r *models.JudgeReport) error {
	if r.Confidence > 1 && r.Confidence <= 100 {
		r.Confidence /= 100
	}
	var f fieldErrors
	f.require(r.Decision.Valid(), "decision", "unknown value %q", r.Decision)
	f.require(r.Valuation.Valid(), "valuation", "unknown value %q", r.Valuation)
	f.require(r.Confidence >= 0 && r.Confidence <= 1, "confidence", "must be within 0-1, got %v", r.Confidence)
	f.text("reasoning", r.Reasoning)
	f.require(r.Forecast.TargetPrice >= 0, "forecast.targetPrice", "must not be negative")
	return f.err()
}
