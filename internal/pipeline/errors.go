package pipeline

import "errors"

var (
	// ErrDependencyFailed marks a task that a dependency gate refused to run.
	ErrDependencyFailed = errors.New("dependency failed")
	// ErrOrchestrationFailed marks a task still pending when its run ended.
	ErrOrchestrationFailed = errors.New("orchestration failed")
	// ErrSuperseded is returned when a newer run replaced the one being waited on.
	ErrSuperseded = errors.New("run superseded by a newer reset")
	// ErrEmptyPayload is returned when an agent reports success without a payload.
	ErrEmptyPayload = errors.New("agent returned no payload")
	// ErrStoreClosed is returned when the store's state loop has stopped.
	ErrStoreClosed = errors.New("state store closed")
	// ErrClosed is returned by Start after the orchestrator has been closed.
	ErrClosed = errors.New("orchestrator closed")
)
