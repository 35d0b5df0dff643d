package models

// Decision is the judge's final call.
type Decision string

const (
	DecisionBuy   Decision = "BUY"
	DecisionHold  Decision = "HOLD"
	DecisionAvoid Decision = "AVOID"
	DecisionWatch Decision = "WATCH"
)

// Valid returns true if the decision is a known value.
func (d Decision) Valid() bool {
	switch d {
	case DecisionBuy, DecisionHold, DecisionAvoid, DecisionWatch:
		return true
	default:
		return false
	}
}

// Valuation is the judge's view of price versus value.
type Valuation string

const (
	ValuationUnderpriced Valuation = "UNDERPRICED"
	ValuationFair        Valuation = "FAIR"
	ValuationOverpriced  Valuation = "OVERPRICED"
	ValuationUnknown     Valuation = "UNKNOWN"
)

// Valid returns true if the valuation is a known value.
func (v Valuation) Valid() bool {
	switch v {
	case ValuationUnderpriced, ValuationFair, ValuationOverpriced, ValuationUnknown:
		return true
	default:
		return false
	}
}

// Sentiment is the overall tone of recent news.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentNegative Sentiment = "NEGATIVE"
)

// Valid returns true if the sentiment is a known value.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	default:
		return false
	}
}

// SectorTrend is the direction of the stock's sector.
type SectorTrend string

const (
	SectorBullish SectorTrend = "Bullish"
	SectorNeutral SectorTrend = "Neutral"
	SectorBearish SectorTrend = "Bearish"
)

// Valid returns true if the trend is a known value.
func (t SectorTrend) Valid() bool {
	switch t {
	case SectorBullish, SectorNeutral, SectorBearish:
		return true
	default:
		return false
	}
}

// Level is a coarse Low/Medium/High rating used for risk and cost.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Valid returns true if the level is a known value.
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	default:
		return false
	}
}

// Horizon is how long a news impact is expected to last.
type Horizon string

const (
	HorizonShort  Horizon = "Short"
	HorizonMedium Horizon = "Medium"
	HorizonLong   Horizon = "Long"
)

// Valid returns true if the horizon is a known value.
func (h Horizon) Valid() bool {
	switch h {
	case HorizonShort, HorizonMedium, HorizonLong:
		return true
	default:
		return false
	}
}

// TrendSignal compares price to its 50-day moving average.
type TrendSignal string

const (
	TrendStrongUp TrendSignal = "Strong Uptrend"
	TrendWeakUp   TrendSignal = "Weak Uptrend"
	TrendNeutral  TrendSignal = "Neutral"
	TrendDown     TrendSignal = "Downtrend"
)

// Valid returns true if the signal is a known value.
func (t TrendSignal) Valid() bool {
	switch t {
	case TrendStrongUp, TrendWeakUp, TrendNeutral, TrendDown:
		return true
	default:
		return false
	}
}

// VolatilitySignal rates beta / daily range.
type VolatilitySignal string

const (
	VolatilityLow    VolatilitySignal = "Low (Stable)"
	VolatilityMedium VolatilitySignal = "Medium"
	VolatilityHigh   VolatilitySignal = "High (Risky)"
)

// Valid returns true if the signal is a known value.
func (v VolatilitySignal) Valid() bool {
	switch v {
	case VolatilityLow, VolatilityMedium, VolatilityHigh:
		return true
	default:
		return false
	}
}

// VolumeSignal rates market participation.
type VolumeSignal string

const (
	VolumeHigh    VolumeSignal = "High (Confirmed)"
	VolumeNeutral VolumeSignal = "Neutral"
	VolumeLow     VolumeSignal = "Low (Diverging)"
)

// Valid returns true if the signal is a known value.
func (v VolumeSignal) Valid() bool {
	switch v {
	case VolumeHigh, VolumeNeutral, VolumeLow:
		return true
	default:
		return false
	}
}

// ValuationSignal compares P/E to its history.
type ValuationSignal string

const (
	ValuationCheap      ValuationSignal = "Cheap"
	ValuationSignalFair ValuationSignal = "Fair"
	ValuationExpensive  ValuationSignal = "Expensive"
)

// Valid returns true if the signal is a known value.
func (v ValuationSignal) Valid() bool {
	switch v {
	case ValuationCheap, ValuationSignalFair, ValuationExpensive:
		return true
	default:
		return false
	}
}

// MarketPosition is the stock's standing against competitors.
type MarketPosition string

const (
	PositionLeader     MarketPosition = "Leader"
	PositionChallenger MarketPosition = "Challenger"
	PositionLaggard    MarketPosition = "Laggard"
	PositionNiche      MarketPosition = "Niche Player"
)

// Valid returns true if the position is a known value.
func (p MarketPosition) Valid() bool {
	switch p {
	case PositionLeader, PositionChallenger, PositionLaggard, PositionNiche:
		return true
	default:
		return false
	}
}

// Speaker is a side in the bull/bear debate.
type Speaker string

const (
	SpeakerBull Speaker = "Bull"
	SpeakerBear Speaker = "Bear"
)

// Valid returns true if the speaker is a known value.
func (s Speaker) Valid() bool {
	return s == SpeakerBull || s == SpeakerBear
}

// Bias is the systematic lean found by a backtest of past calls.
type Bias string

const (
	BiasOptimistic  Bias = "Optimistic"
	BiasNeutral     Bias = "Neutral"
	BiasPessimistic Bias = "Pessimistic"
)

// Valid returns true if the bias is a known value.
func (b Bias) Valid() bool {
	switch b {
	case BiasOptimistic, BiasNeutral, BiasPessimistic:
		return true
	default:
		return false
	}
}
