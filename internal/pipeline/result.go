package pipeline

import (
	"fmt"
	"time"

	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// TaskResult is the settlement record for one task in one run.
type TaskResult[T any] struct {
	// Name is the task that owns this slot.
	Name TaskName `json:"name" yaml:"name"`
	// Status is pending until the task settles exactly once.
	Status models.TaskStatus `json:"status" yaml:"status"`
	// Payload is set only on success.
	Payload *T `json:"payload,omitempty" yaml:"payload,omitempty"`
	// ErrorMessage is set only on error.
	ErrorMessage string `json:"error,omitempty" yaml:"error,omitempty"`
	// Failure classifies the error.
	Failure models.FailureKind `json:"failure,omitempty" yaml:"failure,omitempty"`
	// UpdatedAt is when the slot last changed.
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated_at"`
}

func pendingResult[T any](name TaskName, at time.Time) TaskResult[T] {
	return TaskResult[T]{Name: name, Status: models.TaskStatusPending, UpdatedAt: at}
}

// succeed moves a pending slot to success. It reports false if the slot
// had already settled.
func (r *TaskResult[T]) succeed(payload *T, at time.Time) bool {
	if r.Status != models.TaskStatusPending {
		return false
	}
	r.Status = models.TaskStatusSuccess
	r.Payload = payload
	r.UpdatedAt = at
	return true
}

// fail moves a pending slot to error. It reports false if the slot had
// already settled.
func (r *TaskResult[T]) fail(kind models.FailureKind, msg string, at time.Time) bool {
	if r.Status != models.TaskStatusPending {
		return false
	}
	if msg == "" {
		msg = string(kind)
	}
	r.Status = models.TaskStatusError
	r.ErrorMessage = msg
	r.Failure = kind
	r.UpdatedAt = at
	return true
}

// Succeeded reports whether the slot holds a payload.
func (r TaskResult[T]) Succeeded() bool {
	return r.Status == models.TaskStatusSuccess
}

// Validate checks the status/payload/error invariants of the slot.
func (r TaskResult[T]) Validate() error {
	switch r.Status {
	case models.TaskStatusPending:
		if r.Payload != nil || r.ErrorMessage != "" {
			return fmt.Errorf("%s: pending slot carries a payload or error", r.Name)
		}
	case models.TaskStatusSuccess:
		if r.Payload == nil || r.ErrorMessage != "" {
			return fmt.Errorf("%s: success requires a payload and no error", r.Name)
		}
	case models.TaskStatusError:
		if r.Payload != nil || r.ErrorMessage == "" {
			return fmt.Errorf("%s: error requires a message and no payload", r.Name)
		}
		if !r.Failure.Valid() || r.Failure == models.FailureNone {
			return fmt.Errorf("%s: error without a failure kind", r.Name)
		}
	default:
		return fmt.Errorf("%s: unknown status %q", r.Name, r.Status)
	}
	return nil
}

func (r TaskResult[T]) view(summarize func(*T) string) TaskView {
	v := TaskView{
		Name:         r.Name,
		Status:       r.Status,
		ErrorMessage: r.ErrorMessage,
		Failure:      r.Failure,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.Payload != nil && summarize != nil {
		v.Summary = summarize(r.Payload)
	}
	return v
}
