package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/alphaagent/internal/pipeline"
	"github.com/ShayCichocki/alphaagent/pkg/models"
)

func TestNewApp(t *testing.T) {
	app := NewApp(models.LanguageEN)

	if app.Init() == nil {
		t.Error("expected Init to return focus and spinner commands")
	}
	view := app.View()
	if !strings.Contains(view, "No analysis yet") {
		t.Errorf("expected idle hint in view, got:\n%s", view)
	}
}

func TestApp_SnapshotRendersCards(t *testing.T) {
	app := NewApp(models.LanguageEN)
	started := time.Now()

	state := runningState(1, started)
	state.Industry.Status = models.TaskStatusSuccess
	state.Industry.Payload = &models.IndustryReport{SectorTrend: models.SectorBullish, RegulatoryRisk: models.LevelLow}
	state.Industry.UpdatedAt = started.Add(time.Second)
	state.Quant.Status = models.TaskStatusError
	state.Quant.Failure = models.FailureTask
	state.Quant.ErrorMessage = "rate limited"
	state.Backtest.Status = models.TaskStatusError
	state.Backtest.Failure = models.FailureDependency
	state.Backtest.ErrorMessage = "dependency failed"

	app.Update(SnapshotMsg{State: state})
	view := app.View()

	for _, want := range []string{"Industry", "Bullish", iconDone, iconFailed, "rate limited", iconBlocked, "Blocked", iconRunning, "NVDA"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q, got:\n%s", want, view)
		}
	}
	if strings.Contains(view, "No analysis yet") {
		t.Error("expected idle hint to disappear once a run starts")
	}
}

func TestApp_IgnoresStaleSnapshot(t *testing.T) {
	app := NewApp(models.LanguageEN)
	now := time.Now()

	newer := runningState(2, now)
	newer.Stock = models.StockContext{Ticker: "AAPL", Language: models.LanguageEN}
	app.Update(SnapshotMsg{State: newer})

	stale := runningState(1, now)
	stale.IsRunning = false
	app.Update(SnapshotMsg{State: stale})

	if got := app.State(); got.Epoch != 2 || got.Stock.Ticker != "AAPL" {
		t.Errorf("expected epoch 2 AAPL to remain displayed, got epoch %d %s", got.Epoch, got.Stock.Ticker)
	}
}

func TestApp_ActivityLogTracksCurrentRun(t *testing.T) {
	app := NewApp(models.LanguageEN)
	now := time.Now()

	app.Update(EventMsg{Event: pipeline.PipelineEvent{Type: pipeline.EventTaskStarted, Epoch: 1, Task: pipeline.TaskNews, Timestamp: now}})
	app.Update(SnapshotMsg{State: runningState(2, now)})
	app.Update(EventMsg{Event: pipeline.PipelineEvent{Type: pipeline.EventTaskFailed, Epoch: 1, Task: pipeline.TaskQuant, Error: errors.New("late"), Timestamp: now}})
	app.Update(EventMsg{Event: pipeline.PipelineEvent{Type: pipeline.EventTaskStarted, Epoch: 2, Task: pipeline.TaskIndustry, Timestamp: now}})

	if app.activity.Len() != 1 {
		t.Fatalf("expected 1 entry for the current run, got %d", app.activity.Len())
	}
	view := app.View()
	if !strings.Contains(view, "industry started") {
		t.Errorf("expected current run event in view, got:\n%s", view)
	}
	if strings.Contains(view, "news started") || strings.Contains(view, "late") {
		t.Errorf("expected superseded run events to be dropped, got:\n%s", view)
	}
}

func TestApp_SubmitHandler(t *testing.T) {
	app := NewApp(models.LanguageEN)

	var got models.StockContext
	app.SetSubmitHandler(func(stock models.StockContext) { got = stock })

	app.Update(StockSubmittedMsg{Stock: testStock})
	if got.Ticker != "NVDA" {
		t.Errorf("expected handler to receive NVDA, got %q", got.Ticker)
	}
}

func TestApp_RerunUsesCurrentStock(t *testing.T) {
	app := NewApp(models.LanguageEN)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd != nil {
		t.Error("expected no re-run while idle")
	}

	app.Update(SnapshotMsg{State: runningState(1, time.Now())})
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatal("expected re-run command")
	}
	msg, ok := cmd().(StockSubmittedMsg)
	if !ok {
		t.Fatalf("expected StockSubmittedMsg, got %T", cmd())
	}
	if msg.Stock.Ticker != "NVDA" {
		t.Errorf("expected re-run of NVDA, got %q", msg.Stock.Ticker)
	}
}

func TestApp_ErrorMsg(t *testing.T) {
	app := NewApp(models.LanguageEN)
	app.Update(ErrorMsg{Err: errors.New("orchestrator closed")})

	if view := app.View(); !strings.Contains(view, "Error: orchestrator closed") {
		t.Errorf("expected error in view, got:\n%s", view)
	}
}

func TestApp_Quit(t *testing.T) {
	app := NewApp(models.LanguageEN)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
	if app.View() != "Goodbye!\n" {
		t.Errorf("expected goodbye view, got %q", app.View())
	}
}

func TestApp_CompletedShowsReport(t *testing.T) {
	app := NewApp(models.LanguageEN)
	started := time.Now()

	state := runningState(1, started)
	state.IsRunning = false
	state.CompletedAt = started.Add(3 * time.Second)
	state.Judge.Status = models.TaskStatusSuccess
	state.Judge.Payload = sampleJudge()
	state.Judge.UpdatedAt = state.CompletedAt

	app.Update(SnapshotMsg{State: state})
	view := app.View()
	for _, want := range []string{"completed in", "Final Report", "BUY"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q, got:\n%s", want, view)
		}
	}
}
