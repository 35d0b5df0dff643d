package tui

import (
	"github.com/ShayCichocki/alphaagent/internal/pipeline"
	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// SnapshotMsg carries a RunState published by the store.
type SnapshotMsg struct {
	State pipeline.RunState
}

// EventMsg carries a single pipeline event for the activity log.
type EventMsg struct {
	Event pipeline.PipelineEvent
}

// StockSubmittedMsg is sent when the user submits a ticker.
type StockSubmittedMsg struct {
	Stock models.StockContext
}

// ErrorMsg surfaces a failure outside the pipeline (for example a rejected start).
type ErrorMsg struct {
	Err error
}
