package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/ShayCichocki/alphaagent/internal/tui"
	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// runTUI runs the interactive observer. When initial is set, a run for it
// starts right away; further tickers are entered in the TUI.
func runTUI(ctx context.Context, rt *runtime, initial *models.StockContext) (retErr error) {
	// Log output corrupts the display while the TUI is active.
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("PANIC in TUI: %v", r)
		}
	}()

	app := tui.NewApp(rt.cfg.Language())
	program := tui.NewProgram(app, rt.cfg.TUI.AltScreen)

	start := func(stock models.StockContext) {
		if _, err := rt.orch.Start(ctx, stock); err != nil {
			rt.logger.Log("[tui] start %s: %v", stock.Display(), err)
			// Called from Update; Send must not block the event loop.
			go program.Send(tui.ErrorMsg{Err: err})
		}
	}
	app.SetSubmitHandler(start)

	forwardCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go tui.Forward(forwardCtx, program, rt.orch)

	go func() {
		<-forwardCtx.Done()
		program.Quit()
	}()

	if initial != nil {
		start(*initial)
	}

	rt.logger.Log("[tui] starting program (mode=%s)", rt.mode)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
