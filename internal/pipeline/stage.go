package pipeline

import (
	"fmt"
	"time"

	"github.com/sourcegraph/conc"
)

// Stage names.
const (
	StageSignals      = "signals"
	StagePerspectives = "perspectives"
	StageBacktest     = "backtest"
	StageSynthesis    = "synthesis"
)

// Stage is a set of tasks launched together.
type Stage struct {
	Name  string
	Tasks []Task
}

// StageOutcome records how each task of a settled stage ended. A nil error
// means success.
type StageOutcome struct {
	Stage  string
	Errors map[TaskName]error
}

// Tasks returns the stage's task names in sorted order.
func (o StageOutcome) Tasks() []TaskName {
	names := make([]TaskName, 0, len(o.Errors))
	for name := range o.Errors {
		names = append(names, name)
	}
	sortTasks(names)
	return names
}

// Failed returns the names of tasks that did not succeed, sorted.
func (o StageOutcome) Failed() []TaskName {
	var names []TaskName
	for name, err := range o.Errors {
		if err != nil {
			names = append(names, name)
		}
	}
	sortTasks(names)
	return names
}

// runStage launches every task of the stage at once and waits for all of
// them. Each settlement is published by the store before its task event
// is emitted.
func (r *run) runStage(stage Stage) StageOutcome {
	start := time.Now()
	r.emit(PipelineEvent{
		Type:    EventStageStarted,
		Stage:   stage.Name,
		Message: fmt.Sprintf("launching %d tasks", len(stage.Tasks)),
	})

	errs := make([]error, len(stage.Tasks))
	var wg conc.WaitGroup
	for i, task := range stage.Tasks {
		wg.Go(func() {
			taskStart := time.Now()
			r.emit(PipelineEvent{Type: EventTaskStarted, Stage: stage.Name, Task: task.Name()})

			st := task.execute(r.ctx)
			r.store.settle(r.epoch, st)
			errs[i] = task.Err()

			ev := PipelineEvent{
				Type:     EventTaskSucceeded,
				Stage:    stage.Name,
				Task:     task.Name(),
				Duration: time.Since(taskStart),
			}
			if errs[i] != nil {
				ev.Type = EventTaskFailed
				ev.Error = errs[i]
				ev.Message = errs[i].Error()
				r.logger.Log("[run %s] task %s failed: %v", r.id, task.Name(), errs[i])
			}
			r.emit(ev)
		})
	}
	wg.Wait()

	outcome := newOutcome(stage, errs)
	r.emit(PipelineEvent{
		Type:     EventStageSettled,
		Stage:    stage.Name,
		Message:  settledMessage(outcome),
		Duration: time.Since(start),
	})
	return outcome
}

// rejectStage marks every task of a gated stage as blocked without
// running it.
func (r *run) rejectStage(stage Stage, decision GateDecision) StageOutcome {
	errs := make([]error, len(stage.Tasks))
	for i, task := range stage.Tasks {
		r.store.settle(r.epoch, task.reject(ErrDependencyFailed))
		errs[i] = ErrDependencyFailed
		r.emit(PipelineEvent{
			Type:    EventTaskBlocked,
			Stage:   stage.Name,
			Task:    task.Name(),
			Error:   ErrDependencyFailed,
			Message: decision.Reason(),
		})
	}
	r.logger.Log("[run %s] stage %s blocked: %s", r.id, stage.Name, decision.Reason())
	return newOutcome(stage, errs)
}

func newOutcome(stage Stage, errs []error) StageOutcome {
	o := StageOutcome{Stage: stage.Name, Errors: make(map[TaskName]error, len(stage.Tasks))}
	for i, task := range stage.Tasks {
		o.Errors[task.Name()] = errs[i]
	}
	return o
}

func settledMessage(o StageOutcome) string {
	failed := o.Failed()
	if len(failed) == 0 {
		return fmt.Sprintf("%d/%d succeeded", len(o.Errors), len(o.Errors))
	}
	return fmt.Sprintf("%d/%d succeeded, failed: %s", len(o.Errors)-len(failed), len(o.Errors), joinTasks(failed))
}
