package pipeline

import (
	"errors"
	"time"

	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// RunPhase is the lifecycle position of the current run.
type RunPhase string

const (
	PhaseIdle      RunPhase = "idle"
	PhaseRunning   RunPhase = "running"
	PhaseCompleted RunPhase = "completed"
)

// RunState is the observable state of one pipeline run. Values handed out
// by the store are snapshots; payload pointers inside them are never
// mutated after settlement.
type RunState struct {
	// RunID uniquely identifies the run.
	RunID string `json:"runId" yaml:"run_id"`
	// Epoch increments on every reset.
	Epoch uint64 `json:"epoch" yaml:"epoch"`
	// Stock is the run's input.
	Stock models.StockContext `json:"stock" yaml:"stock"`
	// IsRunning is true from reset until the run completes.
	IsRunning bool `json:"isRunning" yaml:"is_running"`
	// StartedAt is when the run was reset.
	StartedAt time.Time `json:"startedAt" yaml:"started_at"`
	// CompletedAt is zero while the run is in progress.
	CompletedAt time.Time `json:"completedAt,omitempty" yaml:"completed_at,omitempty"`

	Industry   TaskResult[models.IndustryReport]   `json:"industry" yaml:"industry"`
	News       TaskResult[models.NewsReport]       `json:"news" yaml:"news"`
	Quant      TaskResult[models.QuantReport]      `json:"quant" yaml:"quant"`
	Competitor TaskResult[models.CompetitorReport] `json:"competitor" yaml:"competitor"`
	Hedging    TaskResult[models.HedgingReport]    `json:"hedging" yaml:"hedging"`
	Debate     TaskResult[models.DebateReport]     `json:"debate" yaml:"debate"`
	Backtest   TaskResult[models.BacktestReport]   `json:"backtest" yaml:"backtest"`
	Judge      TaskResult[models.JudgeReport]      `json:"judge" yaml:"judge"`
}

// Typed slots, one per task.
var (
	IndustrySlot = Slot[models.IndustryReport]{Name: TaskIndustry,
		field: func(s *RunState) *TaskResult[models.IndustryReport] { return &s.Industry }}
	NewsSlot = Slot[models.NewsReport]{Name: TaskNews,
		field: func(s *RunState) *TaskResult[models.NewsReport] { return &s.News }}
	QuantSlot = Slot[models.QuantReport]{Name: TaskQuant,
		field: func(s *RunState) *TaskResult[models.QuantReport] { return &s.Quant }}
	CompetitorSlot = Slot[models.CompetitorReport]{Name: TaskCompetitor,
		field: func(s *RunState) *TaskResult[models.CompetitorReport] { return &s.Competitor }}
	HedgingSlot = Slot[models.HedgingReport]{Name: TaskHedging,
		field: func(s *RunState) *TaskResult[models.HedgingReport] { return &s.Hedging }}
	DebateSlot = Slot[models.DebateReport]{Name: TaskDebate,
		field: func(s *RunState) *TaskResult[models.DebateReport] { return &s.Debate }}
	BacktestSlot = Slot[models.BacktestReport]{Name: TaskBacktest,
		field: func(s *RunState) *TaskResult[models.BacktestReport] { return &s.Backtest }}
	JudgeSlot = Slot[models.JudgeReport]{Name: TaskJudge,
		field: func(s *RunState) *TaskResult[models.JudgeReport] { return &s.Judge }}
)

func newRunState(runID string, epoch uint64, stock models.StockContext, at time.Time) RunState {
	return RunState{
		RunID:      runID,
		Epoch:      epoch,
		Stock:      stock,
		IsRunning:  true,
		StartedAt:  at,
		Industry:   pendingResult[models.IndustryReport](TaskIndustry, at),
		News:       pendingResult[models.NewsReport](TaskNews, at),
		Quant:      pendingResult[models.QuantReport](TaskQuant, at),
		Competitor: pendingResult[models.CompetitorReport](TaskCompetitor, at),
		Hedging:    pendingResult[models.HedgingReport](TaskHedging, at),
		Debate:     pendingResult[models.DebateReport](TaskDebate, at),
		Backtest:   pendingResult[models.BacktestReport](TaskBacktest, at),
		Judge:      pendingResult[models.JudgeReport](TaskJudge, at),
	}
}

// Phase derives the lifecycle phase from the snapshot.
func (s RunState) Phase() RunPhase {
	switch {
	case s.RunID == "":
		return PhaseIdle
	case s.IsRunning:
		return PhaseRunning
	default:
		return PhaseCompleted
	}
}

// TaskView is an untyped projection of one slot for generic observers.
type TaskView struct {
	Name         TaskName           `json:"name"`
	Status       models.TaskStatus  `json:"status"`
	ErrorMessage string             `json:"error,omitempty"`
	Failure      models.FailureKind `json:"failure,omitempty"`
	UpdatedAt    time.Time          `json:"updatedAt"`
	// Summary is a one-line description of a successful payload.
	Summary string `json:"summary,omitempty"`
}

// Tasks returns a view of every slot in KnownTasks order.
func (s RunState) Tasks() []TaskView {
	if s.RunID == "" {
		return nil
	}
	return []TaskView{
		s.Industry.view(summarizeIndustry),
		s.News.view(summarizeNews),
		s.Quant.view(summarizeQuant),
		s.Competitor.view(summarizeCompetitor),
		s.Hedging.view(summarizeHedging),
		s.Debate.view(summarizeDebate),
		s.Backtest.view(summarizeBacktest),
		s.Judge.view(summarizeJudge),
	}
}

// Task returns the view of a single slot.
func (s RunState) Task(name TaskName) (TaskView, bool) {
	for _, v := range s.Tasks() {
		if v.Name == name {
			return v, true
		}
	}
	return TaskView{}, false
}

// Pending returns the names of slots that have not settled.
func (s RunState) Pending() []TaskName {
	var names []TaskName
	for _, v := range s.Tasks() {
		if v.Status == models.TaskStatusPending {
			names = append(names, v.Name)
		}
	}
	return names
}

// Validate checks every slot and the run-level invariants.
func (s RunState) Validate() error {
	if s.RunID == "" {
		return nil
	}
	errs := []error{
		s.Industry.Validate(),
		s.News.Validate(),
		s.Quant.Validate(),
		s.Competitor.Validate(),
		s.Hedging.Validate(),
		s.Debate.Validate(),
		s.Backtest.Validate(),
		s.Judge.Validate(),
	}
	if !s.IsRunning && len(s.Pending()) > 0 {
		errs = append(errs, errors.New("completed run has pending slots"))
	}
	return errors.Join(errs...)
}

// sweepPending fails every pending slot and returns their names.
func (s *RunState) sweepPending(kind models.FailureKind, msg string, at time.Time) []TaskName {
	swept := s.Pending()
	for _, name := range swept {
		s.failSlot(name, kind, msg, at)
	}
	return swept
}

func (s *RunState) failSlot(name TaskName, kind models.FailureKind, msg string, at time.Time) bool {
	switch name {
	case TaskIndustry:
		return s.Industry.fail(kind, msg, at)
	case TaskNews:
		return s.News.fail(kind, msg, at)
	case TaskQuant:
		return s.Quant.fail(kind, msg, at)
	case TaskCompetitor:
		return s.Competitor.fail(kind, msg, at)
	case TaskHedging:
		return s.Hedging.fail(kind, msg, at)
	case TaskDebate:
		return s.Debate.fail(kind, msg, at)
	case TaskBacktest:
		return s.Backtest.fail(kind, msg, at)
	case TaskJudge:
		return s.Judge.fail(kind, msg, at)
	}
	return false
}
