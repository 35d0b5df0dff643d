package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/alphaagent/internal/pipeline"
	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// ReportPanel renders the judge's final report and the supporting
// debate, competitor and hedging details once they are available.
type ReportPanel struct {
	width int

	borderStyle lipgloss.Style
	headerStyle lipgloss.Style
	labelStyle  lipgloss.Style
	valueStyle  lipgloss.Style
	buyStyle    lipgloss.Style
	sellStyle   lipgloss.Style
	holdStyle   lipgloss.Style
	mutedStyle  lipgloss.Style
}

// NewReportPanel creates a new ReportPanel.
func NewReportPanel() *ReportPanel {
	return &ReportPanel{
		width: 80,

		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),

		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),

		labelStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		valueStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),

		buyStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34")),
		sellStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		holdStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),

		mutedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true),
	}
}

// SetWidth sets the panel width.
func (p *ReportPanel) SetWidth(width int) {
	p.width = width
}

// View renders the report for state, or nothing while the judge is pending.
func (p *ReportPanel) View(state pipeline.RunState) string {
	judge := state.Judge
	switch judge.Status {
	case models.TaskStatusPending:
		return ""
	case models.TaskStatusError:
		msg := "No recommendation: " + judge.ErrorMessage
		return p.borderStyle.Width(p.width - 4).Render(p.mutedStyle.Render(msg))
	}
	if judge.Payload == nil {
		return ""
	}

	var b strings.Builder
	r := judge.Payload

	b.WriteString(p.headerStyle.Render("Final Report: " + state.Stock.Display()))
	b.WriteString("\n\n")

	b.WriteString(p.decisionStyle(r.Decision).Render(string(r.Decision)))
	b.WriteString(p.valueStyle.Render(fmt.Sprintf("  confidence %.0f%%  valuation %s", r.Confidence*100, r.Valuation)))
	b.WriteString("\n")

	f := r.Forecast
	p.field(&b, "Forecast", fmt.Sprintf("%.2f -> %.2f (bear %.2f, bull %.2f) %s",
		f.CurrentPrice, f.TargetPrice, f.BearCase, f.BullCase, f.Timeframe))
	if r.MarketConsensus != "" {
		p.field(&b, "Consensus", r.MarketConsensus)
	}
	if r.UniqueInsight != "" {
		p.field(&b, "Insight", r.UniqueInsight)
	}
	p.list(&b, "Key drivers", r.KeyDrivers)
	p.list(&b, "Risks", r.Risks)
	p.field(&b, "Reasoning", r.Reasoning)

	if d := state.Debate.Payload; d != nil {
		b.WriteString("\n")
		b.WriteString(p.headerStyle.Render("Debate: " + d.Topic))
		b.WriteString("\n")
		for _, turn := range d.Turns {
			p.field(&b, string(turn.Speaker), turn.Argument)
		}
		p.field(&b, "Conclusion", d.Conclusion)
	}

	if c := state.Competitor.Payload; c != nil {
		b.WriteString("\n")
		b.WriteString(p.headerStyle.Render("Competitors (" + string(c.MarketPosition) + ")"))
		b.WriteString("\n")
		for _, comp := range c.TopCompetitors {
			p.field(&b, comp.Ticker, comp.Name+": "+comp.Comparison)
		}
	}

	if h := state.Hedging.Payload; h != nil {
		b.WriteString("\n")
		b.WriteString(p.headerStyle.Render("Hedging"))
		b.WriteString("\n")
		p.field(&b, "Primary", fmt.Sprintf("%s (%s cost): %s", h.PrimaryStrategy.Type, h.PrimaryStrategy.Cost, h.PrimaryStrategy.Description))
		if h.AlternativeStrategy.Type != "" {
			p.field(&b, "Alternative", fmt.Sprintf("%s (%s cost): %s", h.AlternativeStrategy.Type, h.AlternativeStrategy.Cost, h.AlternativeStrategy.Description))
		}
	}

	return p.borderStyle.Width(p.width - 4).Render(b.String())
}

func (p *ReportPanel) decisionStyle(d models.Decision) lipgloss.Style {
	switch d {
	case models.DecisionBuy:
		return p.buyStyle
	case models.DecisionAvoid:
		return p.sellStyle
	default:
		return p.holdStyle
	}
}

func (p *ReportPanel) field(b *strings.Builder, label, value string) {
	b.WriteString(p.labelStyle.Render(label + ": "))
	b.WriteString(p.valueStyle.Render(value))
	b.WriteString("\n")
}

func (p *ReportPanel) list(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(p.labelStyle.Render(label + ":"))
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString(p.valueStyle.Render("  - " + item))
		b.WriteString("\n")
	}
}
