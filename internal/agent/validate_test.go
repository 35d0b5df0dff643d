package agent

import (
	"testing"

	"github.com/ShayCichocki/alphaagent/pkg/models"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		check   func() error
		wantErr bool
	}{
		{
			name: "quant non-positive price",
			check: func() error {
				return validateQuant(&models.QuantReport{
					TrendSignal: models.TrendNeutral, VolatilitySignal: models.VolatilityLow,
					VolumeSignal: models.VolumeNeutral, ValuationSignal: models.ValuationCheap,
				})
			},
			wantErr: true,
		},
		{
			name: "news without events",
			check: func() error {
				return validateNews(&models.NewsReport{Sentiment: models.SentimentNeutral, ImpactHorizon: models.HorizonLong, Summary: "x"})
			},
			wantErr: true,
		},
		{
			name: "debate with unknown speaker",
			check: func() error {
				return validateDebate(&models.DebateReport{Topic: "t", Conclusion: "c", Turns: []models.DebateTurn{{Speaker: "Moderator"}}})
			},
			wantErr: true,
		},
		{
			name: "hedging without alternative",
			check: func() error {
				return validateHedging(&models.HedgingReport{
					PrimaryStrategy: models.HedgeStrategy{Type: "Put", Cost: models.LevelHigh},
					Rationale:       "r",
				})
			},
		},
		{
			name:    "backtest score out of range",
			check:   func() error { return validateBacktest(&models.BacktestReport{Score: 140, Bias: models.BiasNeutral}) },
			wantErr: true,
		},
		{
			name: "judge confidence out of range",
			check: func() error {
				return validateJudge(&models.JudgeReport{Decision: models.DecisionWatch, Valuation: models.ValuationUnknown, Confidence: 250, Reasoning: "r"})
			},
			wantErr: true,
		},
		{
			name: "competitor without peers",
			check: func() error {
				return validateCompetitor(&models.CompetitorReport{MarketPosition: models.PositionLaggard})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
