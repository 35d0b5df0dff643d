package models

// IndustryReport is the industry agent's view of the sector and broad market.
type IndustryReport struct {
	// SectorTrend is the direction of the sub-sector.
	SectorTrend SectorTrend `json:"sectorTrend" yaml:"sector_trend"`
	// MarketOutlook describes the relevant broad market index.
	MarketOutlook string `json:"marketOutlook" yaml:"market_outlook"`
	// IndustryGrowth describes market size, CAGR and demand drivers.
	IndustryGrowth string `json:"industryGrowth" yaml:"industry_growth"`
	// RegulatoryRisk rates sector-specific regulatory exposure.
	RegulatoryRisk Level `json:"regulatoryRisk" yaml:"regulatory_risk"`
	// Summary combines the market backdrop with industry dynamics.
	Summary string `json:"summary" yaml:"summary"`
}

// NewsReport is the news agent's digest of the last 30 days.
type NewsReport struct {
	// Sentiment is the overall tone of the headlines.
	Sentiment Sentiment `json:"sentiment" yaml:"sentiment"`
	// TopEvents lists the most relevant headlines.
	TopEvents []string `json:"topEvents" yaml:"top_events"`
	// ImpactHorizon is how long the news is expected to matter.
	ImpactHorizon Horizon `json:"impactHorizon" yaml:"impact_horizon"`
	// Summary is a short narrative of the news flow.
	Summary string `json:"summary" yaml:"summary"`
}

// QuantReport is the quant agent's four dominant metrics.
type QuantReport struct {
	// CurrentPrice is the last observed price.
	CurrentPrice float64 `json:"currentPrice" yaml:"current_price"`
	// TrendSignal compares price to the 50-day moving average.
	TrendSignal TrendSignal `json:"trendSignal" yaml:"trend_signal"`
	// VolatilitySignal rates beta or daily range.
	VolatilitySignal VolatilitySignal `json:"volatilitySignal" yaml:"volatility_signal"`
	// VolumeSignal rates participation.
	VolumeSignal VolumeSignal `json:"volumeSignal" yaml:"volume_signal"`
	// ValuationSignal compares P/E to history.
	ValuationSignal ValuationSignal `json:"valuationSignal" yaml:"valuation_signal"`
}

// Competitor is one peer identified by the competitor agent.
type Competitor struct {
	Name       string `json:"name" yaml:"name"`
	Ticker     string `json:"ticker" yaml:"ticker"`
	Comparison string `json:"comparison" yaml:"comparison"`
}

// CompetitorReport is the competitor agent's landscape summary.
type CompetitorReport struct {
	// TopCompetitors lists the closest peers.
	TopCompetitors []Competitor `json:"topCompetitors" yaml:"top_competitors"`
	// MarketPosition is the stock's standing among them.
	MarketPosition MarketPosition `json:"marketPosition" yaml:"market_position"`
}

// HedgeStrategy is one way to protect a long position.
type HedgeStrategy struct {
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Cost        Level  `json:"cost" yaml:"cost"`
}

// HedgingReport is the hedging agent's risk-management proposal.
type HedgingReport struct {
	PrimaryStrategy     HedgeStrategy `json:"primaryStrategy" yaml:"primary_strategy"`
	AlternativeStrategy HedgeStrategy `json:"alternativeStrategy" yaml:"alternative_strategy"`
	Rationale           string        `json:"rationale" yaml:"rationale"`
}

// DebateTurn is a single argument in the bull/bear debate.
type DebateTurn struct {
	Speaker  Speaker `json:"speaker" yaml:"speaker"`
	Argument string  `json:"argument" yaml:"argument"`
}

// DebateReport is the simulated bull/bear debate.
type DebateReport struct {
	Topic      string       `json:"topic" yaml:"topic"`
	Turns      []DebateTurn `json:"turns" yaml:"turns"`
	Conclusion string       `json:"conclusion" yaml:"conclusion"`
}

// BacktestReport grades previous calls against the quant signals.
type BacktestReport struct {
	// Score is the historical accuracy score (0-100).
	Score int `json:"score" yaml:"score"`
	// Bias is the systematic lean of past predictions.
	Bias Bias `json:"bias" yaml:"bias"`
	// Lessons lists what past calls got wrong.
	Lessons []string `json:"lessons" yaml:"lessons"`
	// PastPrediction restates the prediction being graded.
	PastPrediction string `json:"pastPrediction" yaml:"past_prediction"`
}

// PriceForecast is the judge's target range.
type PriceForecast struct {
	CurrentPrice float64 `json:"currentPrice" yaml:"current_price"`
	TargetPrice  float64 `json:"targetPrice" yaml:"target_price"`
	BullCase     float64 `json:"bullCase" yaml:"bull_case"`
	BearCase     float64 `json:"bearCase" yaml:"bear_case"`
	Timeframe    string  `json:"timeframe" yaml:"timeframe"`
}

// JudgeReport is the synthesis agent's final decision.
type JudgeReport struct {
	// Decision is the final Buy/Hold/Avoid/Watch call.
	Decision Decision `json:"decision" yaml:"decision"`
	// Confidence is in [0, 1].
	Confidence float64 `json:"confidence" yaml:"confidence"`
	// Valuation is the judge's view of price versus value.
	Valuation Valuation `json:"valuation" yaml:"valuation"`
	// MarketConsensus describes what the market already prices in.
	MarketConsensus string `json:"marketConsensus,omitempty" yaml:"market_consensus,omitempty"`
	// UniqueInsight is where the judge disagrees with consensus.
	UniqueInsight string `json:"uniqueInsight,omitempty" yaml:"unique_insight,omitempty"`
	// KeyDrivers lists the reasons behind the decision.
	KeyDrivers []string `json:"keyDrivers" yaml:"key_drivers"`
	// Risks lists what could invalidate the decision.
	Risks []string `json:"risks" yaml:"risks"`
	// Reasoning explains how conflicting signals were weighed.
	Reasoning string `json:"reasoning" yaml:"reasoning"`
	// Forecast is the price target range.
	Forecast PriceForecast `json:"forecast" yaml:"forecast"`
}
