package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/alphaagent/internal/pipeline"
)

// ActivityLog keeps the recent events of the run being displayed.
type ActivityLog struct {
	entries []pipeline.PipelineEvent
	epoch   uint64
	maxKeep int
	visible int

	titleStyle lipgloss.Style
	timeStyle  lipgloss.Style
	infoStyle  lipgloss.Style
	warnStyle  lipgloss.Style
	errorStyle lipgloss.Style
	msgStyle   lipgloss.Style
}

// NewActivityLog creates an ActivityLog showing the last 8 entries.
func NewActivityLog() *ActivityLog {
	return &ActivityLog{
		maxKeep: 200,
		visible: 8,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")),
		timeStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		infoStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")), // Green
		warnStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")), // Orange
		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")), // Red
		msgStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
	}
}

// SetEpoch switches the log to a new run, dropping entries of older runs.
func (l *ActivityLog) SetEpoch(epoch uint64) {
	if epoch <= l.epoch {
		return
	}
	l.epoch = epoch
	kept := l.entries[:0]
	for _, e := range l.entries {
		if e.Epoch >= epoch {
			kept = append(kept, e)
		}
	}
	l.entries = kept
}

// Add records an event. Events from superseded runs are ignored and
// returns false.
func (l *ActivityLog) Add(ev pipeline.PipelineEvent) bool {
	if ev.Epoch < l.epoch {
		return false
	}
	if ev.Epoch > l.epoch {
		l.SetEpoch(ev.Epoch)
	}
	l.entries = append(l.entries, ev)
	if len(l.entries) > l.maxKeep {
		l.entries = l.entries[len(l.entries)-l.maxKeep:]
	}
	return true
}

// Len returns the number of retained entries.
func (l *ActivityLog) Len() int {
	return len(l.entries)
}

// View renders the most recent entries.
func (l *ActivityLog) View() string {
	if len(l.entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(l.titleStyle.Render("Activity Log"))
	b.WriteString("\n")

	start := 0
	if len(l.entries) > l.visible {
		start = len(l.entries) - l.visible
	}
	for _, ev := range l.entries[start:] {
		ts := l.timeStyle.Render(ev.Timestamp.Format("15:04:05"))
		b.WriteString(fmt.Sprintf("  %s %s\n", ts, l.style(ev.Type).Render(describe(ev))))
	}
	return b.String()
}

func (l *ActivityLog) style(t pipeline.EventType) lipgloss.Style {
	switch t {
	case pipeline.EventTaskFailed:
		return l.errorStyle
	case pipeline.EventTaskBlocked, pipeline.EventRunSuperseded:
		return l.warnStyle
	case pipeline.EventTaskSucceeded, pipeline.EventRunCompleted:
		return l.infoStyle
	default:
		return l.msgStyle
	}
}

// describe renders a one-line description of an event.
func describe(ev pipeline.PipelineEvent) string {
	switch ev.Type {
	case pipeline.EventRunStarted:
		return "run started for " + ev.Stock.Display()
	case pipeline.EventStageStarted:
		return "stage " + ev.Stage + " started"
	case pipeline.EventTaskStarted:
		return string(ev.Task) + " started"
	case pipeline.EventTaskSucceeded:
		return fmt.Sprintf("%s succeeded in %s", ev.Task, formatDuration(ev.Duration))
	case pipeline.EventTaskFailed:
		return fmt.Sprintf("%s failed: %s", ev.Task, ev.Error)
	case pipeline.EventTaskBlocked:
		return fmt.Sprintf("%s blocked: %s", ev.Task, ev.Error)
	case pipeline.EventGateEvaluated:
		return fmt.Sprintf("gate before %s: %s", ev.Stage, ev.Message)
	case pipeline.EventRunCompleted:
		return "run completed in " + formatDuration(ev.Duration)
	default:
		if ev.Message != "" {
			return string(ev.Type) + ": " + ev.Message
		}
		return string(ev.Type)
	}
}
