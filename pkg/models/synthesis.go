package models

// SynthesisInput is what the judge receives once the synthesis gate opens.
//
// Critical reports are always present. Optional reports are nil when the
// producing agent failed or was blocked; nil means "unavailable", not an error.
type SynthesisInput struct {
	Stock StockContext `json:"stock" yaml:"stock"`

	Industry IndustryReport `json:"industryReport" yaml:"industry_report"`
	News     NewsReport     `json:"newsReport" yaml:"news_report"`
	Quant    QuantReport    `json:"quantReport" yaml:"quant_report"`

	Competitor *CompetitorReport `json:"competitorReport,omitempty" yaml:"competitor_report,omitempty"`
	Hedging    *HedgingReport    `json:"riskManagement,omitempty" yaml:"risk_management,omitempty"`
	Debate     *DebateReport     `json:"debate,omitempty" yaml:"debate,omitempty"`
	Backtest   *BacktestReport   `json:"backtest,omitempty" yaml:"backtest,omitempty"`
}
