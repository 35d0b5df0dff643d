package pipeline

import (
	"time"

	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// EventType names an entry in the pipeline activity stream.
type EventType string

const (
	EventRunStarted    EventType = "run_started"
	EventStageStarted  EventType = "stage_started"
	EventTaskStarted   EventType = "task_started"
	EventTaskSucceeded EventType = "task_succeeded"
	EventTaskFailed    EventType = "task_failed"
	EventTaskBlocked   EventType = "task_blocked"
	EventStageSettled  EventType = "stage_settled"
	EventGateEvaluated EventType = "gate_evaluated"
	EventRunCompleted  EventType = "run_completed"
	EventRunSuperseded EventType = "run_superseded"
)

// PipelineEvent is one entry of the activity stream returned by
// Orchestrator.Events. The stream is informational; RunState is the
// source of truth.
type PipelineEvent struct {
	// Type is the kind of event.
	Type EventType
	// RunID and Epoch identify the run that emitted it.
	RunID string
	Epoch uint64
	// Stock is the run's input.
	Stock models.StockContext
	// Stage is set for stage and gate events.
	Stage string
	// Task is set for task events.
	Task TaskName
	// Message is a human-readable description.
	Message string
	// Error is set for failed and blocked tasks.
	Error error
	// Duration is the task or stage wall time, when known.
	Duration time.Duration
	// Timestamp is when the event was emitted.
	Timestamp time.Time
}
