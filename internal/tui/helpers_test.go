package tui

import (
	"time"

	"github.com/ShayCichocki/alphaagent/internal/pipeline"
	"github.com/ShayCichocki/alphaagent/pkg/models"
)

var testStock = models.StockContext{Ticker: "NVDA", Language: models.LanguageEN}

func pending[T any](name pipeline.TaskName, at time.Time) pipeline.TaskResult[T] {
	return pipeline.TaskResult[T]{Name: name, Status: models.TaskStatusPending, UpdatedAt: at}
}

// runningState builds a freshly reset snapshot for epoch.
func runningState(epoch uint64, started time.Time) pipeline.RunState {
	return pipeline.RunState{
		RunID:      "run",
		Epoch:      epoch,
		Stock:      testStock,
		IsRunning:  true,
		StartedAt:  started,
		Industry:   pending[models.IndustryReport](pipeline.TaskIndustry, started),
		News:       pending[models.NewsReport](pipeline.TaskNews, started),
		Quant:      pending[models.QuantReport](pipeline.TaskQuant, started),
		Competitor: pending[models.CompetitorReport](pipeline.TaskCompetitor, started),
		Hedging:    pending[models.HedgingReport](pipeline.TaskHedging, started),
		Debate:     pending[models.DebateReport](pipeline.TaskDebate, started),
		Backtest:   pending[models.BacktestReport](pipeline.TaskBacktest, started),
		Judge:      pending[models.JudgeReport](pipeline.TaskJudge, started),
	}
}

func sampleJudge() *models.JudgeReport {
	return &models.JudgeReport{
		Decision:   models.DecisionBuy,
		Confidence: 0.72,
		Valuation:  models.ValuationFair,
		KeyDrivers: []string{"datacenter demand"},
		Risks:      []string{"export controls"},
		Reasoning:  "Signals align.",
		Forecast: models.PriceForecast{
			CurrentPrice: 120,
			TargetPrice:  140,
			BullCase:     160,
			BearCase:     95,
			Timeframe:    "12 months",
		},
	}
}
