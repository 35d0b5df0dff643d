package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/panics"

	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// TaskName identifies a task and its slot in RunState.
type TaskName string

const (
	TaskIndustry   TaskName = "industry"
	TaskNews       TaskName = "news"
	TaskQuant      TaskName = "quant"
	TaskCompetitor TaskName = "competitor"
	TaskHedging    TaskName = "hedging"
	TaskDebate     TaskName = "debate"
	TaskBacktest   TaskName = "backtest"
	TaskJudge      TaskName = "judge"
)

// KnownTasks returns every task name in display order.
func KnownTasks() []TaskName {
	return []TaskName{
		TaskIndustry, TaskNews, TaskQuant,
		TaskCompetitor, TaskHedging, TaskDebate,
		TaskBacktest, TaskJudge,
	}
}

// Valid returns true if the name has a slot in RunState.
func (n TaskName) Valid() bool {
	for _, k := range KnownTasks() {
		if n == k {
			return true
		}
	}
	return false
}

// ParseTaskName converts user input into a TaskName.
func ParseTaskName(s string) (TaskName, error) {
	n := TaskName(s)
	if !n.Valid() {
		return "", fmt.Errorf("unknown task %q", s)
	}
	return n, nil
}

// settlement is the message a settling task sends to the store. apply
// mutates only the task's own slot and reports false if it had already
// settled.
type settlement struct {
	task  TaskName
	apply func(s *RunState, at time.Time) bool
}

// Slot binds a task name to its typed field in RunState.
type Slot[T any] struct {
	Name  TaskName
	field func(*RunState) *TaskResult[T]
}

// Get returns the slot's result from a snapshot.
func (s Slot[T]) Get(state RunState) TaskResult[T] {
	return *s.field(&state)
}

func (s Slot[T]) succeed(payload *T) settlement {
	return settlement{task: s.Name, apply: func(st *RunState, at time.Time) bool {
		return s.field(st).succeed(payload, at)
	}}
}

func (s Slot[T]) fail(kind models.FailureKind, err error) settlement {
	msg := err.Error()
	return settlement{task: s.Name, apply: func(st *RunState, at time.Time) bool {
		return s.field(st).fail(kind, msg, at)
	}}
}

// Task is one unit of a Stage. Tasks are created per run by the
// orchestrator through NewJob.
type Task interface {
	// Name returns the slot this task settles.
	Name() TaskName
	// Err returns the settled error, nil on success.
	Err() error

	execute(ctx context.Context) settlement
	reject(err error) settlement
}

// Job runs one agent call and keeps its typed result for later stages.
type Job[T any] struct {
	slot Slot[T]
	fn   func(ctx context.Context) (*T, error)

	value *T
	err   error
}

// NewJob creates a task that settles slot with the result of fn.
func NewJob[T any](slot Slot[T], fn func(ctx context.Context) (*T, error)) *Job[T] {
	return &Job[T]{slot: slot, fn: fn}
}

// Name implements Task.
func (j *Job[T]) Name() TaskName { return j.slot.Name }

// Err implements Task. It is only meaningful after the job's stage settled.
func (j *Job[T]) Err() error { return j.err }

// Value returns the payload once the job's stage has settled.
func (j *Job[T]) Value() (*T, bool) {
	return j.value, j.err == nil && j.value != nil
}

func (j *Job[T]) execute(ctx context.Context) settlement {
	var (
		value *T
		err   error
		pc    panics.Catcher
	)
	pc.Try(func() { value, err = j.fn(ctx) })
	if r := pc.Recovered(); r != nil {
		value, err = nil, fmt.Errorf("panic: %v", r.Value)
	}
	if err == nil && value == nil {
		err = ErrEmptyPayload
	}
	if err != nil {
		j.value, j.err = nil, err
		return j.slot.fail(models.FailureTask, err)
	}
	j.value, j.err = value, nil
	return j.slot.succeed(value)
}

func (j *Job[T]) reject(err error) settlement {
	j.value, j.err = nil, err
	return j.slot.fail(models.FailureDependency, err)
}
