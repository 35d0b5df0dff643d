package models

// TaskStatus represents the settlement state of a pipeline task.
type TaskStatus string

const (
	// TaskStatusPending indicates the task has not settled in the current run.
	TaskStatusPending TaskStatus = "pending"
	// TaskStatusSuccess indicates the task produced a validated payload.
	TaskStatusSuccess TaskStatus = "success"
	// TaskStatusError indicates the task failed or was never allowed to run.
	TaskStatusError TaskStatus = "error"
)

// Valid returns true if the status is a known value.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusSuccess, TaskStatusError:
		return true
	default:
		return false
	}
}

// Settled returns true once the task has left the pending state.
func (s TaskStatus) Settled() bool {
	return s == TaskStatusSuccess || s == TaskStatusError
}

// FailureKind classifies why a task ended in TaskStatusError.
type FailureKind string

const (
	// FailureNone is the zero value for tasks that have not failed.
	FailureNone FailureKind = ""
	// FailureTask means the agent's own call failed.
	FailureTask FailureKind = "task_failed"
	// FailureDependency means a dependency gate blocked the task from running.
	FailureDependency FailureKind = "dependency_failed"
	// FailureOrchestration means the run ended while the task was still pending.
	FailureOrchestration FailureKind = "orchestration_failed"
)

// Valid returns true if the kind is a known value.
func (k FailureKind) Valid() bool {
	switch k {
	case FailureNone, FailureTask, FailureDependency, FailureOrchestration:
		return true
	default:
		return false
	}
}
