package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/alphaagent/internal/pipeline"
	"github.com/ShayCichocki/alphaagent/internal/watchlist"
	"github.com/ShayCichocki/alphaagent/pkg/models"
)

var (
	watchFile   string
	watchOutput string
	watchQuiet  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the pipeline whenever a watchlist file changes",
	Long: `Watch a watchlist file and analyze every ticker in it, one after another.

The file holds one "TICKER [MARKET]" per line; '#' starts a comment.
Saving the file abandons the current pass (including any run in flight)
and starts over with the new list.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !validFormat(watchOutput) {
			return fmt.Errorf("unknown output format %q (want text, json or yaml)", watchOutput)
		}

		ctx, stop := signalContext()
		defer stop()

		rt, err := newRuntime(nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		w, err := watchlist.NewWatcher(watchFile)
		if err != nil {
			return err
		}
		defer w.Close()

		progress := io.Writer(cmd.ErrOrStderr())
		if watchQuiet {
			progress = io.Discard
		}
		go func() {
			for ev := range rt.orch.Events() {
				writeProgress(progress, ev)
			}
		}()

		fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", w.Path())
		return watchLoop(ctx, w, cmd.ErrOrStderr(), func(ctx context.Context, entries []watchlist.Entry) {
			analyzeEntries(ctx, rt.orch, entries, rt.cfg.Language(), cmd.OutOrStdout(), cmd.ErrOrStderr(), watchOutput)
		})
	},
}

// changeSource is the part of watchlist.Watcher the loop needs.
type changeSource interface {
	Changes() <-chan []watchlist.Entry
	Errors() <-chan error
}

// watchLoop runs pass for every change, cancelling and awaiting the previous
// pass first. Watch errors are reported to errOut.
func watchLoop(ctx context.Context, src changeSource, errOut io.Writer, pass func(context.Context, []watchlist.Entry)) error {
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)
	stopPass := func() {
		if cancel != nil {
			cancel()
			<-done
		}
	}
	defer stopPass()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-src.Errors():
			fmt.Fprintf(errOut, "watchlist: %v\n", err)
		case entries := <-src.Changes():
			stopPass()
			var passCtx context.Context
			passCtx, cancel = context.WithCancel(ctx)
			done = make(chan struct{})
			go func(ctx context.Context, done chan struct{}) {
				defer close(done)
				pass(ctx, entries)
			}(passCtx, done)
		}
	}
}

// analyzeEntries runs each entry in order until ctx is cancelled or the
// run is superseded.
func analyzeEntries(ctx context.Context, orch *pipeline.Orchestrator, entries []watchlist.Entry, lang models.Language, out, errOut io.Writer, format string) {
	for _, e := range entries {
		if ctx.Err() != nil {
			return
		}
		stock, err := e.Stock(lang)
		if err != nil {
			fmt.Fprintf(errOut, "skip %q: %v\n", e.Ticker, err)
			continue
		}

		state, err := orch.Run(ctx, stock)
		switch {
		case errors.Is(err, pipeline.ErrSuperseded), errors.Is(err, context.Canceled), errors.Is(err, pipeline.ErrClosed):
			return
		case err != nil:
			fmt.Fprintf(errOut, "%s: %v\n", stock.Display(), err)
			continue
		}
		if err := writeReport(out, state, format); err != nil {
			fmt.Fprintf(errOut, "%s: %v\n", stock.Display(), err)
		}
		fmt.Fprintln(out)
	}
}

func init() {
	watchCmd.Flags().StringVarP(&watchFile, "file", "f", "watchlist.txt", "Watchlist file")
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", formatText, "Report format: text, json or yaml")
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Suppress progress output")
}
