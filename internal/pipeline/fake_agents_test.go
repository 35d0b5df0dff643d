package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// fakeAgents returns canned payloads. Failures, panics and blocking are
// configured per task; blocking can be limited to one ticker.
type fakeAgents struct {
	mu sync.Mutex

	fail    map[TaskName]error
	panics  map[TaskName]bool
	block   map[TaskName]chan struct{}
	blockOn string

	calls       map[TaskName]int
	startedAt   map[TaskName]time.Time
	judgeInputs []models.SynthesisInput
}

func newFakeAgents() *fakeAgents {
	return &fakeAgents{
		fail:      make(map[TaskName]error),
		panics:    make(map[TaskName]bool),
		block:     make(map[TaskName]chan struct{}),
		calls:     make(map[TaskName]int),
		startedAt: make(map[TaskName]time.Time),
	}
}

func (f *fakeAgents) callCount(name TaskName) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAgents) started(name TaskName) time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.startedAt[name]
}

func (f *fakeAgents) inputs() []models.SynthesisInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.SynthesisInput(nil), f.judgeInputs...)
}

// call records the invocation and applies the configured behaviour. A
// blocked call waits for its release channel and ignores ctx so late
// settlements can be exercised.
func (f *fakeAgents) call(name TaskName, stock models.StockContext) error {
	f.mu.Lock()
	f.calls[name]++
	if _, ok := f.startedAt[name]; !ok {
		f.startedAt[name] = time.Now()
	}
	release := f.block[name]
	if f.blockOn != "" && f.blockOn != stock.Ticker {
		release = nil
	}
	err := f.fail[name]
	shouldPanic := f.panics[name]
	f.mu.Unlock()

	if release != nil {
		<-release
	}
	if shouldPanic {
		panic("boom")
	}
	return err
}

func (f *fakeAgents) Industry(_ context.Context, stock models.StockContext) (*models.IndustryReport, error) {
	if err := f.call(TaskIndustry, stock); err != nil {
		return nil, err
	}
	return &models.IndustryReport{
		SectorTrend:    models.SectorBullish,
		MarketOutlook:  "broad index near highs",
		IndustryGrowth: "12% CAGR",
		RegulatoryRisk: models.LevelLow,
		Summary:        "strong sector backdrop",
	}, nil
}

func (f *fakeAgents) News(_ context.Context, stock models.StockContext) (*models.NewsReport, error) {
	if err := f.call(TaskNews, stock); err != nil {
		return nil, err
	}
	return &models.NewsReport{
		Sentiment:     models.SentimentPositive,
		TopEvents:     []string{"record quarter", "new product line"},
		ImpactHorizon: models.HorizonShort,
		Summary:       "upbeat coverage",
	}, nil
}

func (f *fakeAgents) Quant(_ context.Context, stock models.StockContext) (*models.QuantReport, error) {
	if err := f.call(TaskQuant, stock); err != nil {
		return nil, err
	}
	return &models.QuantReport{
		CurrentPrice:     152.3,
		TrendSignal:      models.TrendStrongUp,
		VolatilitySignal: models.VolatilityMedium,
		VolumeSignal:     models.VolumeHigh,
		ValuationSignal:  models.ValuationSignalFair,
	}, nil
}

func (f *fakeAgents) Competitor(_ context.Context, stock models.StockContext) (*models.CompetitorReport, error) {
	if err := f.call(TaskCompetitor, stock); err != nil {
		return nil, err
	}
	return &models.CompetitorReport{
		TopCompetitors: []models.Competitor{{Name: "Rival", Ticker: "RVL", Comparison: "smaller"}},
		MarketPosition: models.PositionLeader,
	}, nil
}

func (f *fakeAgents) Hedging(_ context.Context, stock models.StockContext) (*models.HedgingReport, error) {
	if err := f.call(TaskHedging, stock); err != nil {
		return nil, err
	}
	return &models.HedgingReport{
		PrimaryStrategy: models.HedgeStrategy{Type: "Protective Put", Description: "3-month 10% OTM put", Cost: models.LevelMedium},
		Rationale:       "caps downside",
	}, nil
}

func (f *fakeAgents) Debate(_ context.Context, stock models.StockContext) (*models.DebateReport, error) {
	if err := f.call(TaskDebate, stock); err != nil {
		return nil, err
	}
	return &models.DebateReport{
		Topic:      "Is growth priced in?",
		Turns:      []models.DebateTurn{{Speaker: models.SpeakerBull, Argument: "margins expand"}},
		Conclusion: "bull case slightly stronger",
	}, nil
}

func (f *fakeAgents) Backtest(_ context.Context, stock models.StockContext, quant models.QuantReport) (*models.BacktestReport, error) {
	if err := f.call(TaskBacktest, stock); err != nil {
		return nil, err
	}
	return &models.BacktestReport{
		Score:          70,
		Bias:           models.BiasOptimistic,
		Lessons:        []string{"discounted volume divergence"},
		PastPrediction: fmt.Sprintf("BUY at %.2f", quant.CurrentPrice),
	}, nil
}

func (f *fakeAgents) Judge(_ context.Context, input models.SynthesisInput) (*models.JudgeReport, error) {
	f.mu.Lock()
	f.judgeInputs = append(f.judgeInputs, input)
	f.mu.Unlock()
	if err := f.call(TaskJudge, input.Stock); err != nil {
		return nil, err
	}
	return &models.JudgeReport{
		Decision:   models.DecisionBuy,
		Confidence: 0.78,
		Valuation:  models.ValuationFair,
		KeyDrivers: []string{"sector tailwind"},
		Risks:      []string{"valuation"},
		Reasoning:  "signals align",
		Forecast:   models.PriceForecast{CurrentPrice: input.Quant.CurrentPrice, TargetPrice: 170, Timeframe: "6 months"},
	}, nil
}
