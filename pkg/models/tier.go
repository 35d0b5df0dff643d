package models

// ModelTier selects which text-generation model an agent uses.
type ModelTier string

const (
	// ModelTierFast is for retrieval-style agents that favour latency.
	ModelTierFast ModelTier = "fast"
	// ModelTierReasoning is for agents that weigh arguments or synthesize.
	ModelTierReasoning ModelTier = "reasoning"
)

// Valid returns true if the tier is a known value.
func (t ModelTier) Valid() bool {
	switch t {
	case ModelTierFast, ModelTierReasoning:
		return true
	default:
		return false
	}
}
