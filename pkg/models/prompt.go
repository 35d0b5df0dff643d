package models

// Prompt is one structured-output request to the text-generation service.
type Prompt struct {
	// Agent names the caller, for logs and token accounting.
	Agent string
	// Tier selects the fast or the reasoning model.
	Tier ModelTier
	// System carries the role and output-language instruction.
	System string
	// User carries the task and the required JSON shape.
	User string
}
