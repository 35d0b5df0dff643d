package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/alphaagent/internal/pipeline"
	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// cardsPerRow is the number of task cards laid out side by side.
const cardsPerRow = 4

// App is the bubbletea model for the live pipeline observer.
type App struct {
	input    *StockInput
	spinner  spinner.Model
	card     *TaskCard
	report   *ReportPanel
	activity *ActivityLog

	// state is the latest snapshot at or above the current epoch.
	state pipeline.RunState
	// errMsg is the last error reported outside the pipeline.
	errMsg string

	width    int
	height   int
	quitting bool

	onSubmit func(models.StockContext)

	headerStyle lipgloss.Style
	mutedStyle  lipgloss.Style
	errorStyle  lipgloss.Style
}

// NewApp creates an App whose ticker input submits stocks in lang.
func NewApp(lang models.Language) *App {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	return &App{
		input:    NewStockInput(lang),
		spinner:  s,
		card:     NewTaskCard(),
		report:   NewReportPanel(),
		activity: NewActivityLog(),
		width:    120,

		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		mutedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
	}
}

// SetSubmitHandler sets the callback invoked when a ticker is submitted.
func (a *App) SetSubmitHandler(handler func(models.StockContext)) {
	a.onSubmit = handler
}

// State returns the snapshot currently displayed.
func (a *App) State() pipeline.RunState {
	return a.state
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.input.Focus(), a.spinner.Tick)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			a.quitting = true
			return a, tea.Quit
		case "ctrl+r":
			if a.state.Phase() != pipeline.PhaseIdle {
				stock := a.state.Stock
				return a, func() tea.Msg { return StockSubmittedMsg{Stock: stock} }
			}
			return a, nil
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.SetWidth(msg.Width)
		a.report.SetWidth(msg.Width)
		a.card.SetWidth(msg.Width / cardsPerRow)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case StockSubmittedMsg:
		a.errMsg = ""
		if a.onSubmit != nil {
			a.onSubmit(msg.Stock)
		}
		return a, nil

	case SnapshotMsg:
		a.applySnapshot(msg.State)
		return a, nil

	case EventMsg:
		a.activity.Add(msg.Event)
		return a, nil

	case ErrorMsg:
		if msg.Err != nil {
			a.errMsg = msg.Err.Error()
		}
		return a, nil
	}

	return a, nil
}

// applySnapshot keeps the newest epoch; a delayed snapshot of a
// superseded run never overwrites the current one.
func (a *App) applySnapshot(state pipeline.RunState) {
	if state.Epoch < a.state.Epoch {
		return
	}
	a.state = state
	a.activity.SetEpoch(state.Epoch)
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n\n")

	if a.state.Phase() == pipeline.PhaseIdle {
		b.WriteString(a.mutedStyle.Render("No analysis yet. Enter a ticker below to start."))
		b.WriteString("\n\n")
	} else {
		b.WriteString(a.renderCards())
		b.WriteString("\n")
		if report := a.report.View(a.state); report != "" {
			b.WriteString(report)
			b.WriteString("\n")
		}
	}

	if log := a.activity.View(); log != "" {
		b.WriteString(log)
		b.WriteString("\n")
	}
	if a.errMsg != "" {
		b.WriteString(a.errorStyle.Render("Error: " + a.errMsg))
		b.WriteString("\n")
	}

	b.WriteString(a.input.View())
	b.WriteString("\n")
	b.WriteString(a.mutedStyle.Render("enter: analyze  ctrl+r: re-run  esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func (a *App) renderHeader() string {
	title := a.headerStyle.Render("=== AlphaAgent ===")
	switch a.state.Phase() {
	case pipeline.PhaseRunning:
		return fmt.Sprintf("%s  %s %s", title, a.spinner.View(), a.state.Stock.Display())
	case pipeline.PhaseCompleted:
		elapsed := a.state.CompletedAt.Sub(a.state.StartedAt)
		return fmt.Sprintf("%s  %s  %s", title, a.state.Stock.Display(),
			a.mutedStyle.Render("completed in "+formatDuration(elapsed)))
	default:
		return title
	}
}

func (a *App) renderCards() string {
	tasks := a.state.Tasks()
	var rows []string
	var row []string
	for _, view := range tasks {
		a.card.SetData(&TaskCardData{
			View:      view,
			Running:   a.state.IsRunning,
			StartedAt: a.state.StartedAt,
			Spinner:   a.spinner.View(),
		})
		row = append(row, a.card.View())
		if len(row) == cardsPerRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
