package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/alphaagent/internal/pipeline"
	"github.com/ShayCichocki/alphaagent/pkg/models"
)

var (
	analyzeMarket   string
	analyzeOutput   string
	analyzeFailures []string
	analyzeTUI      bool
	analyzeQuiet    bool
)

// errNoRecommendation marks a completed run whose judge did not succeed.
var errNoRecommendation = errors.New("no recommendation")

var analyzeCmd = &cobra.Command{
	Use:   "analyze <TICKER>",
	Short: "Run the pipeline once for a ticker",
	Long: `Run every agent for a ticker and print the final report.

Progress is written to stderr; the report goes to stdout in the chosen
format. The command exits non-zero when the judge produced no
recommendation.

Examples:
  alphaagent analyze NVDA
  alphaagent analyze 0700.HK --market HK --lang CN
  alphaagent analyze TSLA --output json
  alphaagent analyze AAPL --fail debate --fail quant`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !validFormat(analyzeOutput) {
			return fmt.Errorf("unknown output format %q (want text, json or yaml)", analyzeOutput)
		}

		ctx, stop := signalContext()
		defer stop()

		rt, err := newRuntime(analyzeFailures)
		if err != nil {
			return err
		}
		defer rt.Close()

		stock, err := models.NewStockContext(args[0], analyzeMarket, rt.cfg.Language())
		if err != nil {
			return err
		}

		if analyzeTUI {
			return runTUI(ctx, rt, &stock)
		}

		progress := io.Writer(os.Stderr)
		if analyzeQuiet {
			progress = io.Discard
		}
		return analyzeOnce(ctx, rt.orch, stock, cmd.OutOrStdout(), progress, analyzeOutput)
	},
}

// analyzeOnce runs one stock, streaming progress until the run finishes,
// and writes the report.
func analyzeOnce(ctx context.Context, orch *pipeline.Orchestrator, stock models.StockContext, out, progress io.Writer, format string) error {
	events := orch.Events()
	h, err := orch.Start(ctx, stock)
	if err != nil {
		return fmt.Errorf("start run: %w", err)
	}

loop:
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.Epoch == h.Epoch {
				writeProgress(progress, ev)
			}
		case <-h.Done():
			break loop
		}
	}
	drainProgress(events, h.Epoch, progress)

	// The run is done; Wait returns immediately.
	state, err := h.Wait(context.Background())
	if err != nil {
		return err
	}

	if err := writeReport(out, state, format); err != nil {
		return err
	}
	if !state.Judge.Succeeded() {
		return fmt.Errorf("%w: %s", errNoRecommendation, state.Judge.ErrorMessage)
	}
	return nil
}

// drainProgress prints the events still buffered for epoch.
func drainProgress(events <-chan pipeline.PipelineEvent, epoch uint64, progress io.Writer) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Epoch == epoch {
				writeProgress(progress, ev)
			}
		default:
			return
		}
	}
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeMarket, "market", "", "Listing market, e.g. US or HK")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", formatText, "Report format: text, json or yaml")
	analyzeCmd.Flags().StringSliceVar(&analyzeFailures, "fail", nil, "Force a mock failure for a task (repeatable; implies mock agents)")
	analyzeCmd.Flags().BoolVar(&analyzeTUI, "tui", false, "Watch the run in the TUI instead of printing progress")
	analyzeCmd.Flags().BoolVarP(&analyzeQuiet, "quiet", "q", false, "Suppress progress output")
}
