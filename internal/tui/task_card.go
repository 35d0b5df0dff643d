package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/alphaagent/internal/pipeline"
	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// Status icons for task states.
const (
	iconRunning = "[●]"
	iconDone    = "[✓]"
	iconFailed  = "[✗]"
	iconBlocked = "[⊘]"
	iconPending = "[○]"
)

// taskTitles are the card headings per task.
var taskTitles = map[pipeline.TaskName]string{
	pipeline.TaskIndustry:   "Industry",
	pipeline.TaskNews:       "News",
	pipeline.TaskQuant:      "Quant",
	pipeline.TaskCompetitor: "Competitors",
	pipeline.TaskHedging:    "Hedging",
	pipeline.TaskDebate:     "Debate",
	pipeline.TaskBacktest:   "Backtest",
	pipeline.TaskJudge:      "Judge",
}

// TaskCardData contains the data needed to render a task card.
type TaskCardData struct {
	// View is the task's slot as seen in the latest snapshot.
	View pipeline.TaskView
	// Running is true while the owning run has not completed.
	Running bool
	// StartedAt is when the owning run started.
	StartedAt time.Time
	// Spinner is the current spinner frame for in-flight tasks.
	Spinner string
}

// TaskCard renders a single task as a card.
type TaskCard struct {
	data  *TaskCardData
	width int

	borderStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	statusRunning lipgloss.Style
	statusDone    lipgloss.Style
	statusFailed  lipgloss.Style
	statusPending lipgloss.Style
	summaryStyle  lipgloss.Style
}

// NewTaskCard creates a new TaskCard instance.
func NewTaskCard() *TaskCard {
	return &TaskCard{
		width: 28,

		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")),

		statusRunning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")), // Blue

		statusDone: lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")), // Green

		statusFailed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")), // Red

		statusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")), // Gray

		summaryStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
	}
}

// SetData updates the card data.
func (c *TaskCard) SetData(data *TaskCardData) {
	c.data = data
}

// SetWidth updates the card width.
func (c *TaskCard) SetWidth(width int) {
	if width < 16 {
		width = 16
	}
	c.width = width
}

// Width returns the card width.
func (c *TaskCard) Width() int {
	return c.width
}

// View renders the task card.
func (c *TaskCard) View() string {
	inner := c.width - 4
	if c.data == nil {
		return c.borderStyle.Width(inner).Render("No task")
	}

	var b strings.Builder
	title := taskTitles[c.data.View.Name]
	if title == "" {
		title = string(c.data.View.Name)
	}
	b.WriteString(c.titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(c.renderStatus())
	b.WriteString("\n")

	detail := c.data.View.Summary
	if c.data.View.Status == models.TaskStatusError {
		detail = c.data.View.ErrorMessage
	}
	b.WriteString(c.summaryStyle.Render(truncate(detail, inner*2)))

	return c.borderStyle.Width(inner).Render(b.String())
}

// renderStatus renders the status line with icon and elapsed time.
func (c *TaskCard) renderStatus() string {
	v := c.data.View
	var icon, text string
	var style lipgloss.Style

	switch {
	case v.Status == models.TaskStatusSuccess:
		icon, text, style = iconDone, "Done", c.statusDone
	case v.Status == models.TaskStatusError && v.Failure == models.FailureDependency:
		icon, text, style = iconBlocked, "Blocked", c.statusFailed
	case v.Status == models.TaskStatusError:
		icon, text, style = iconFailed, "Failed", c.statusFailed
	case c.data.Running:
		icon, text, style = iconRunning, "Running", c.statusRunning
		if c.data.Spinner != "" {
			text = c.data.Spinner + " " + text
		}
	default:
		icon, text, style = iconPending, "Pending", c.statusPending
	}

	status := icon + " " + text
	if !c.data.StartedAt.IsZero() && v.Status.Settled() {
		status += " " + formatDuration(v.UpdatedAt.Sub(c.data.StartedAt))
	}
	return style.Render(status)
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}

// truncate shortens s to maxLen runes with an ellipsis.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
