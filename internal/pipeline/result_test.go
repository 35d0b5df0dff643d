package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/ShayCichocki/alphaagent/pkg/models"
)

func TestTaskResult_SettlesOnce(t *testing.T) {
	now := time.Now()
	r := pendingResult[models.NewsReport](TaskNews, now)

	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid pending slot, got %v", err)
	}
	if !r.succeed(&models.NewsReport{Sentiment: models.SentimentNeutral}, now.Add(time.Second)) {
		t.Fatal("expected first settlement to apply")
	}
	if r.fail(models.FailureTask, "late failure", now.Add(2*time.Second)) {
		t.Error("expected second settlement to be ignored")
	}
	if r.Status != models.TaskStatusSuccess {
		t.Errorf("expected status success, got %s", r.Status)
	}
	if r.ErrorMessage != "" {
		t.Errorf("expected no error message, got %q", r.ErrorMessage)
	}
	if !r.UpdatedAt.Equal(now.Add(time.Second)) {
		t.Errorf("expected UpdatedAt from first settlement, got %v", r.UpdatedAt)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("expected valid success slot, got %v", err)
	}
}

func TestTaskResult_Fail(t *testing.T) {
	r := pendingResult[models.QuantReport](TaskQuant, time.Now())
	if !r.fail(models.FailureDependency, ErrDependencyFailed.Error(), time.Now()) {
		t.Fatal("expected failure to apply")
	}
	if r.ErrorMessage != "dependency failed" {
		t.Errorf("expected message %q, got %q", "dependency failed", r.ErrorMessage)
	}
	if r.Failure != models.FailureDependency {
		t.Errorf("expected failure %s, got %s", models.FailureDependency, r.Failure)
	}
	if r.succeed(&models.QuantReport{}, time.Now()) {
		t.Error("expected success after failure to be ignored")
	}
	if r.Payload != nil {
		t.Error("expected payload to stay nil")
	}
}

func TestTaskResult_Validate(t *testing.T) {
	tests := []struct {
		name    string
		result  TaskResult[models.DebateReport]
		wantErr string
	}{
		{
			name:    "pending with payload",
			result:  TaskResult[models.DebateReport]{Name: TaskDebate, Status: models.TaskStatusPending, Payload: &models.DebateReport{}},
			wantErr: "pending slot",
		},
		{
			name:    "success without payload",
			result:  TaskResult[models.DebateReport]{Name: TaskDebate, Status: models.TaskStatusSuccess},
			wantErr: "success requires",
		},
		{
			name:    "error without message",
			result:  TaskResult[models.DebateReport]{Name: TaskDebate, Status: models.TaskStatusError, Failure: models.FailureTask},
			wantErr: "error requires",
		},
		{
			name:    "error without kind",
			result:  TaskResult[models.DebateReport]{Name: TaskDebate, Status: models.TaskStatusError, ErrorMessage: "x"},
			wantErr: "failure kind",
		},
		{
			name:    "unknown status",
			result:  TaskResult[models.DebateReport]{Name: TaskDebate, Status: "running"},
			wantErr: "unknown status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestRunState_TasksAndPhase(t *testing.T) {
	var idle RunState
	if idle.Phase() != PhaseIdle {
		t.Errorf("expected idle phase, got %s", idle.Phase())
	}
	if idle.Tasks() != nil {
		t.Errorf("expected no tasks when idle, got %v", idle.Tasks())
	}

	stock := models.StockContext{Ticker: "AAPL", Language: models.LanguageEN}
	s := newRunState("run-1", 1, stock, time.Now())
	if s.Phase() != PhaseRunning {
		t.Errorf("expected running phase, got %s", s.Phase())
	}

	views := s.Tasks()
	known := KnownTasks()
	if len(views) != len(known) {
		t.Fatalf("expected %d views, got %d", len(known), len(views))
	}
	for i, v := range views {
		if v.Name != known[i] {
			t.Errorf("expected task %d to be %s, got %s", i, known[i], v.Name)
		}
		if v.Status != models.TaskStatusPending {
			t.Errorf("expected %s pending, got %s", v.Name, v.Status)
		}
	}

	s.Quant.succeed(&models.QuantReport{CurrentPrice: 10, TrendSignal: models.TrendDown, ValuationSignal: models.ValuationCheap}, time.Now())
	v, ok := s.Task(TaskQuant)
	if !ok {
		t.Fatal("expected quant view")
	}
	if v.Summary != "10.00, Downtrend, valuation Cheap" {
		t.Errorf("unexpected summary %q", v.Summary)
	}

	swept := s.sweepPending(models.FailureOrchestration, "orchestration failed", time.Now())
	if len(swept) != len(known)-1 {
		t.Errorf("expected %d swept slots, got %v", len(known)-1, swept)
	}
	s.IsRunning = false
	if s.Phase() != PhaseCompleted {
		t.Errorf("expected completed phase, got %s", s.Phase())
	}
	if err := s.Validate(); err != nil {
		t.Errorf("expected valid completed state, got %v", err)
	}
	if len(s.Pending()) != 0 {
		t.Errorf("expected no pending slots, got %v", s.Pending())
	}
}

func TestParseTaskName(t *testing.T) {
	for _, name := range KnownTasks() {
		got, err := ParseTaskName(string(name))
		if err != nil {
			t.Errorf("unexpected error for %s: %v", name, err)
		}
		if got != name {
			t.Errorf("expected %s, got %s", name, got)
		}
	}
	if _, err := ParseTaskName("oracle"); err == nil {
		t.Error("expected error for unknown task")
	}
}
