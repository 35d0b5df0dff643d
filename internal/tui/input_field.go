package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// StockInput is a text input for entering "TICKER [MARKET]".
type StockInput struct {
	input    textinput.Model
	width    int
	language models.Language
	err      string
}

// NewStockInput creates a StockInput submitting stocks in the given language.
func NewStockInput(lang models.Language) *StockInput {
	ti := textinput.New()
	ti.Placeholder = "Enter a ticker (e.g. NVDA or 0700.HK HK) and press Enter..."
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 60

	return &StockInput{
		input:    ti,
		width:    80,
		language: lang,
	}
}

// SetWidth sets the width of the input field.
func (f *StockInput) SetWidth(width int) {
	f.width = width
	f.input.Width = width - 4 // prompt and padding
}

// ParseStock splits "TICKER [MARKET]" and normalizes it.
func ParseStock(text string, lang models.Language) (models.StockContext, error) {
	fields := strings.Fields(text)
	var ticker, market string
	if len(fields) > 0 {
		ticker = fields[0]
	}
	if len(fields) > 1 {
		market = fields[1]
	}
	return models.NewStockContext(ticker, market, lang)
}

// Update handles messages for the input field.
func (f *StockInput) Update(msg tea.Msg) (*StockInput, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		stock, err := ParseStock(f.input.Value(), f.language)
		if err != nil {
			f.err = err.Error()
			return f, nil
		}
		f.err = ""
		f.input.Reset()
		return f, func() tea.Msg {
			return StockSubmittedMsg{Stock: stock}
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// View renders the input field.
func (f *StockInput) View() string {
	promptStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(f.width - 2)

	view := boxStyle.Render(promptStyle.Render("> ") + f.input.View())
	if f.err != "" {
		view += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("  "+f.err)
	}
	return view
}

// Focus sets focus on the input field.
func (f *StockInput) Focus() tea.Cmd {
	return f.input.Focus()
}

// Value returns the current text.
func (f *StockInput) Value() string {
	return f.input.Value()
}
