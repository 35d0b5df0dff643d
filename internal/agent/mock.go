package agent

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// ErrMockFailure is returned for agents configured to fail.
var ErrMockFailure = errors.New("simulated agent failure")

// MockGenerator produces plausible randomized payloads after a simulated
// network delay. It is used when no API key is configured.
type MockGenerator struct {
	minLatency time.Duration
	maxLatency time.Duration

	mu    sync.Mutex
	rng   *rand.Rand
	fail  map[string]bool
	calls map[string]int
}

// MockOption configures a MockGenerator.
type MockOption func(*MockGenerator)

// WithLatency sets the simulated latency range.
func WithLatency(minLatency, maxLatency time.Duration) MockOption {
	return func(m *MockGenerator) {
		if maxLatency < minLatency {
			maxLatency = minLatency
		}
		m.minLatency, m.maxLatency = minLatency, maxLatency
	}
}

// WithFailures makes the named agents fail every call.
func WithFailures(agents ...string) MockOption {
	return func(m *MockGenerator) {
		for _, a := range agents {
			m.fail[a] = true
		}
	}
}

// WithSeed makes the generated values deterministic.
func WithSeed(seed uint64) MockOption {
	return func(m *MockGenerator) {
		m.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// NewMockGenerator creates a mock with 1-3s latency.
func NewMockGenerator(opts ...MockOption) *MockGenerator {
	m := &MockGenerator{
		minLatency: time.Second,
		maxLatency: 3 * time.Second,
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		fail:       make(map[string]bool),
		calls:      make(map[string]int),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Calls returns how many times agent was called.
func (m *MockGenerator) Calls(agent string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[agent]
}

// Generate implements Generator.
func (m *MockGenerator) Generate(ctx context.Context, p models.Prompt, target any) error {
	m.mu.Lock()
	m.calls[p.Agent]++
	delay := m.minLatency
	if span := m.maxLatency - m.minLatency; span > 0 {
		delay += time.Duration(m.rng.Int64N(int64(span)))
	}
	shouldFail := m.fail[p.Agent]
	m.mu.Unlock()

	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", p.Agent, ctx.Err())
		}
	}
	if shouldFail {
		return fmt.Errorf("%s: %w", p.Agent, ErrMockFailure)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fill(target)
}

func pick[T any](rng *rand.Rand, values ...T) T {
	return values[rng.IntN(len(values))]
}

// fill writes a randomized payload into target. Callers hold m.mu.
func (m *MockGenerator) fill(target any) error {
	rng := m.rng
	switch out := target.(type) {
	case *models.IndustryReport:
		*out = models.IndustryReport{
			SectorTrend:    pick(rng, models.SectorBullish, models.SectorNeutral, models.SectorBearish),
			MarketOutlook:  "The broad index is consolidating near all-time highs, though inflation data suggests caution.",
			IndustryGrowth: "The sub-sector is projected to grow 18% YoY, driven by AI adoption.",
			RegulatoryRisk: pick(rng, models.LevelLow, models.LevelMedium, models.LevelHigh),
			Summary:        "The industry is undergoing a structural shift, while broad market volatility may limit near-term upside.",
		}
	case *models.NewsReport:
		*out = models.NewsReport{
			Sentiment: pick(rng, models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative),
			TopEvents: []string{
				"Quarterly earnings beat expectations by 15%",
				"CEO announces a strategic partnership with a major tech firm",
				"Regulatory approval granted for a new product line",
			},
			ImpactHorizon: pick(rng, models.HorizonShort, models.HorizonMedium, models.HorizonLong),
			Summary:       "News flow is dominated by earnings surprises and expansion announcements, with some geopolitical headwinds.",
		}
	case *models.QuantReport:
		*out = models.QuantReport{
			CurrentPrice:     150.25 + rng.Float64()*10,
			TrendSignal:      pick(rng, models.TrendStrongUp, models.TrendWeakUp, models.TrendNeutral, models.TrendDown),
			VolatilitySignal: pick(rng, models.VolatilityLow, models.VolatilityMedium, models.VolatilityHigh),
			VolumeSignal:     pick(rng, models.VolumeHigh, models.VolumeNeutral, models.VolumeLow),
			ValuationSignal:  pick(rng, models.ValuationCheap, models.ValuationSignalFair, models.ValuationExpensive),
		}
	case *models.CompetitorReport:
		*out = models.CompetitorReport{
			TopCompetitors: []models.Competitor{
				{Name: "MegaCorp Inc", Ticker: "MCORP", Comparison: "Larger market cap, slower growth"},
				{Name: "InnovateTech", Ticker: "INNO", Comparison: "Higher valuation, better margins"},
				{Name: "Legacy Systems", Ticker: "LGCY", Comparison: "Value play, high dividend yield"},
			},
			MarketPosition: pick(rng, models.PositionLeader, models.PositionChallenger, models.PositionNiche),
		}
	case *models.HedgingReport:
		*out = models.HedgingReport{
			PrimaryStrategy: models.HedgeStrategy{
				Type:        "Protective Put",
				Description: "Buy OTM puts to limit downside while keeping upside.",
				Cost:        models.LevelMedium,
			},
			AlternativeStrategy: models.HedgeStrategy{
				Type:        "Covered Call",
				Description: "Sell OTM calls to generate income against minor losses.",
				Cost:        models.LevelLow,
			},
			Rationale: "Implied volatility is elevated, so a protective put gives the best cover against a sharp downturn.",
		}
	case *models.DebateReport:
		*out = models.DebateReport{
			Topic: "Is the stock a buy at current levels?",
			Turns: []models.DebateTurn{
				{Speaker: models.SpeakerBull, Argument: "The new AI initiative is expanding margins faster than the market realizes."},
				{Speaker: models.SpeakerBear, Argument: "That growth is priced in, and regulation hangs over the biggest market."},
				{Speaker: models.SpeakerBull, Argument: "Regulation is a known risk and the balance sheet can absorb any fine."},
				{Speaker: models.SpeakerBear, Argument: "User growth has stalled; without new users the multiple must compress."},
			},
			Conclusion: "The bull case rests on margins, the bear case on growth; the debate is unresolved.",
		}
	case *models.BacktestReport:
		*out = models.BacktestReport{
			Score: 60 + rng.IntN(31),
			Bias:  pick(rng, models.BiasOptimistic, models.BiasNeutral, models.BiasPessimistic),
			Lessons: []string{
				"Rate hikes compressed valuation multiples more than expected.",
				"Revenue growth persistence was overestimated last quarter.",
			},
			PastPrediction: "Bullish divergence not confirmed by volume.",
		}
	case *models.JudgeReport:
		decision := pick(rng, models.DecisionBuy, models.DecisionHold, models.DecisionAvoid, models.DecisionWatch)
		price := 145.5
		*out = models.JudgeReport{
			Decision:        decision,
			Confidence:      0.6 + rng.Float64()*0.3,
			Valuation:       pick(rng, models.ValuationUnderpriced, models.ValuationFair, models.ValuationOverpriced),
			MarketConsensus: "The market has priced in the earnings beat and expects 10% growth.",
			UniqueInsight:   "Margin expansion from the new AI vertical looks underestimated.",
			KeyDrivers:      []string{"Strong earnings momentum", "Favorable industry tailwinds", "Attractive relative valuation"},
			Risks:           []string{"Macroeconomic volatility", "Potential regulatory headwinds"},
			Reasoning:       fmt.Sprintf("Across all agents the stock presents a %s opportunity; technicals align with fundamentals.", decision),
			Forecast: models.PriceForecast{
				CurrentPrice: price,
				TargetPrice:  price * 1.15,
				BullCase:     price * 1.3,
				BearCase:     price * 0.85,
				Timeframe:    "3 Months",
			},
		}
	default:
		return fmt.Errorf("mock generator: unsupported target %T", target)
	}
	return nil
}
