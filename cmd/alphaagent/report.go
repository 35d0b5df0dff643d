package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"go.yaml.in/yaml/v3"

	"github.com/ShayCichocki/alphaagent/internal/pipeline"
	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// Output formats for analyze and watch.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validFormat(f string) bool {
	return f == formatText || f == formatJSON || f == formatYAML
}

// writeReport renders the final state of a run in the requested format.
func writeReport(w io.Writer, state pipeline.RunState, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(state); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(state); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case formatText, "":
		writeText(w, state)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

var (
	boldColor   = color.New(color.Bold)
	greenColor  = color.New(color.FgGreen)
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	faintColor  = color.New(color.Faint)
)

// writeText prints the task table followed by the judge's report.
func writeText(w io.Writer, state pipeline.RunState) {
	fmt.Fprintf(w, "%s %s  (run %s, %s)\n\n",
		boldColor.Sprint("AlphaAgent:"), state.Stock.Display(), shortID(state.RunID),
		state.CompletedAt.Sub(state.StartedAt).Round(10*time.Millisecond))

	for _, v := range state.Tasks() {
		symbol, c := statusSymbol(v)
		detail := v.Summary
		if v.Status == models.TaskStatusError {
			detail = v.ErrorMessage
		}
		fmt.Fprintf(w, "  %s %-10s %s\n", c.Sprint(symbol), v.Name, detail)
	}
	fmt.Fprintln(w)

	judge := state.Judge
	if !judge.Succeeded() {
		fmt.Fprintf(w, "%s %s\n", redColor.Sprint("No recommendation:"), judge.ErrorMessage)
		return
	}

	r := judge.Payload
	fmt.Fprintf(w, "%s %s  confidence %.0f%%  valuation %s\n",
		boldColor.Sprint("Decision:"), decisionColor(r.Decision).Sprint(r.Decision), r.Confidence*100, r.Valuation)
	f := r.Forecast
	fmt.Fprintf(w, "%s %.2f -> %.2f (bear %.2f, bull %.2f) %s\n",
		boldColor.Sprint("Forecast:"), f.CurrentPrice, f.TargetPrice, f.BearCase, f.BullCase, f.Timeframe)
	if r.MarketConsensus != "" {
		fmt.Fprintf(w, "%s %s\n", boldColor.Sprint("Consensus:"), r.MarketConsensus)
	}
	if r.UniqueInsight != "" {
		fmt.Fprintf(w, "%s %s\n", boldColor.Sprint("Insight:"), r.UniqueInsight)
	}
	writeList(w, "Key drivers", r.KeyDrivers)
	writeList(w, "Risks", r.Risks)
	fmt.Fprintf(w, "%s %s\n", boldColor.Sprint("Reasoning:"), r.Reasoning)
}

func writeList(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, boldColor.Sprint(label+":"))
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func statusSymbol(v pipeline.TaskView) (string, *color.Color) {
	switch {
	case v.Status == models.TaskStatusSuccess:
		return "✓", greenColor
	case v.Failure == models.FailureDependency:
		return "⊘", yellowColor
	case v.Status == models.TaskStatusError:
		return "✗", redColor
	default:
		return "○", faintColor
	}
}

func decisionColor(d models.Decision) *color.Color {
	switch d {
	case models.DecisionBuy:
		return greenColor
	case models.DecisionAvoid:
		return redColor
	default:
		return yellowColor
	}
}

// writeProgress prints one activity line for an event.
func writeProgress(w io.Writer, ev pipeline.PipelineEvent) {
	var line string
	switch ev.Type {
	case pipeline.EventTaskSucceeded:
		line = fmt.Sprintf("%s %s (%s)", greenColor.Sprint("✓"), ev.Task, ev.Duration.Round(time.Millisecond))
	case pipeline.EventTaskFailed:
		line = fmt.Sprintf("%s %s: %v", redColor.Sprint("✗"), ev.Task, ev.Error)
	case pipeline.EventTaskBlocked:
		line = fmt.Sprintf("%s %s: %v", yellowColor.Sprint("⊘"), ev.Task, ev.Error)
	case pipeline.EventGateEvaluated:
		line = fmt.Sprintf("%s gate before %s: %s", faintColor.Sprint("»"), ev.Stage, ev.Message)
	case pipeline.EventRunStarted:
		line = fmt.Sprintf("%s %s", faintColor.Sprint("»"), ev.Message)
	default:
		return
	}
	fmt.Fprintln(w, line)
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
