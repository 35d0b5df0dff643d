// Package tui provides the terminal observer for alphaagent runs.
//
// The observer is read-only with respect to pipeline state: it renders the
// latest RunState snapshot and the activity log built from PipelineEvents.
// The only input it accepts is a ticker, which it hands to a submit
// handler that starts a new run (superseding any run in flight).
//
// Usage:
//
//	app := tui.NewApp(models.LanguageEN)
//	app.SetSubmitHandler(func(stock models.StockContext) {
//	    orch.Start(ctx, stock)
//	})
//	program := tui.NewProgram(app, true)
//	go tui.Forward(ctx, program, orch)
//	_, err := program.Run()
//
// Snapshots from older epochs and events from superseded runs are dropped,
// so the cards and the activity log always describe a single run.
package tui
