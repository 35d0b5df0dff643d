package pipeline

import (
	"fmt"
	"strings"

	"github.com/ShayCichocki/alphaagent/pkg/models"
)

func summarizeIndustry(r *models.IndustryReport) string {
	return fmt.Sprintf("%s sector, regulatory risk %s", r.SectorTrend, r.RegulatoryRisk)
}

func summarizeNews(r *models.NewsReport) string {
	return fmt.Sprintf("%s sentiment, %d events, %s-term impact", r.Sentiment, len(r.TopEvents), r.ImpactHorizon)
}

func summarizeQuant(r *models.QuantReport) string {
	return fmt.Sprintf("%.2f, %s, valuation %s", r.CurrentPrice, r.TrendSignal, r.ValuationSignal)
}

func summarizeCompetitor(r *models.CompetitorReport) string {
	names := make([]string, 0, len(r.TopCompetitors))
	for _, c := range r.TopCompetitors {
		names = append(names, c.Name)
	}
	return fmt.Sprintf("%s vs %s", r.MarketPosition, strings.Join(names, ", "))
}

func summarizeHedging(r *models.HedgingReport) string {
	return fmt.Sprintf("%s (%s cost)", r.PrimaryStrategy.Type, r.PrimaryStrategy.Cost)
}

func summarizeDebate(r *models.DebateReport) string {
	return fmt.Sprintf("%d turns on %q", len(r.Turns), r.Topic)
}

func summarizeBacktest(r *models.BacktestReport) string {
	return fmt.Sprintf("score %d, %s bias", r.Score, r.Bias)
}

func summarizeJudge(r *models.JudgeReport) string {
	return fmt.Sprintf("%s at %.0f%% confidence, %s", r.Decision, r.Confidence*100, r.Valuation)
}
