package pipeline

import (
	"fmt"
	"sort"
	"strings"
)

// GateDecision is the result of evaluating a dependency gate.
type GateDecision struct {
	// Proceed is true when the gated stage may run.
	Proceed bool
	// Failed lists required tasks that did not succeed.
	Failed []TaskName
	// Unavailable lists optional tasks that did not succeed.
	Unavailable []TaskName
}

// Reason describes the decision for logs and events.
func (d GateDecision) Reason() string {
	var parts []string
	if d.Proceed {
		parts = append(parts, "proceed")
	} else {
		parts = append(parts, "blocked")
	}
	if len(d.Failed) > 0 {
		parts = append(parts, "failed: "+joinTasks(d.Failed))
	}
	if len(d.Unavailable) > 0 {
		parts = append(parts, "unavailable: "+joinTasks(d.Unavailable))
	}
	return strings.Join(parts, "; ")
}

// Gate decides whether a stage may run given the outcomes of the stages
// it depends on. Every referenced outcome must be fully settled.
type Gate interface {
	Evaluate(outcomes ...StageOutcome) GateDecision
}

// AllRequired proceeds only if every listed task succeeded. With no tasks
// listed, every task present in the outcomes is required.
type AllRequired struct {
	Tasks []TaskName
}

// Evaluate implements Gate.
func (g AllRequired) Evaluate(outcomes ...StageOutcome) GateDecision {
	required := g.Tasks
	if len(required) == 0 {
		required = outcomeTasks(outcomes)
	}
	var d GateDecision
	for _, name := range required {
		if !succeeded(name, outcomes) {
			d.Failed = append(d.Failed, name)
		}
	}
	d.Proceed = len(d.Failed) == 0
	return d
}

// BestEffort proceeds when every critical task succeeded and reports failed
// optional tasks as unavailable. With no optional tasks listed, every
// non-critical task present in the outcomes is optional.
type BestEffort struct {
	Critical []TaskName
	Optional []TaskName
}

// Evaluate implements Gate.
func (g BestEffort) Evaluate(outcomes ...StageOutcome) GateDecision {
	var d GateDecision
	critical := make(map[TaskName]bool, len(g.Critical))
	for _, name := range g.Critical {
		critical[name] = true
		if !succeeded(name, outcomes) {
			d.Failed = append(d.Failed, name)
		}
	}

	optional := g.Optional
	if len(optional) == 0 {
		for _, name := range outcomeTasks(outcomes) {
			if !critical[name] {
				optional = append(optional, name)
			}
		}
	}
	for _, name := range optional {
		if !succeeded(name, outcomes) {
			d.Unavailable = append(d.Unavailable, name)
		}
	}
	d.Proceed = len(d.Failed) == 0
	return d
}

// GatePolicy selects the synthesis gate from configuration.
type GatePolicy string

const (
	GateBestEffort  GatePolicy = "best_effort"
	GateAllRequired GatePolicy = "all_required"
)

// Valid returns true if the policy is a known value.
func (p GatePolicy) Valid() bool {
	return p == GateBestEffort || p == GateAllRequired
}

// CriticalTasks are the feeders the judge cannot run without.
func CriticalTasks() []TaskName {
	return []TaskName{TaskIndustry, TaskNews, TaskQuant}
}

// OptionalTasks are the feeders the judge can do without.
func OptionalTasks() []TaskName {
	return []TaskName{TaskCompetitor, TaskHedging, TaskDebate, TaskBacktest}
}

// SynthesisGate builds the gate in front of the judge for a policy.
func SynthesisGate(policy GatePolicy) (Gate, error) {
	switch policy {
	case GateBestEffort, "":
		return BestEffort{Critical: CriticalTasks(), Optional: OptionalTasks()}, nil
	case GateAllRequired:
		return AllRequired{Tasks: append(CriticalTasks(), OptionalTasks()...)}, nil
	default:
		return nil, fmt.Errorf("unknown synthesis gate policy %q", policy)
	}
}

// succeeded reports whether name settled successfully in any outcome. A
// task missing from every outcome counts as failed.
func succeeded(name TaskName, outcomes []StageOutcome) bool {
	for _, o := range outcomes {
		if err, ok := o.Errors[name]; ok {
			return err == nil
		}
	}
	return false
}

func outcomeTasks(outcomes []StageOutcome) []TaskName {
	var names []TaskName
	for _, o := range outcomes {
		names = append(names, o.Tasks()...)
	}
	return names
}

func joinTasks(names []TaskName) string {
	s := make([]string, len(names))
	for i, n := range names {
		s[i] = string(n)
	}
	return strings.Join(s, ", ")
}

func sortTasks(names []TaskName) {
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
}
