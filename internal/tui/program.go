package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/alphaagent/internal/pipeline"
)

// Sender accepts messages for a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Source is the observer surface of the orchestrator.
type Source interface {
	Subscribe() (<-chan pipeline.RunState, func())
	Events() <-chan pipeline.PipelineEvent
}

// NewProgram creates a bubbletea program for app.
func NewProgram(app *App, altScreen bool) *tea.Program {
	var opts []tea.ProgramOption
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	return tea.NewProgram(app, opts...)
}

// Forward relays snapshots and events from src to the program until ctx is
// done or both streams close.
func Forward(ctx context.Context, p Sender, src Source) {
	snapshots, unsubscribe := src.Subscribe()
	defer unsubscribe()
	events := src.Events()

	for snapshots != nil || events != nil {
		select {
		case <-ctx.Done():
			return
		case state, ok := <-snapshots:
			if !ok {
				snapshots = nil
				continue
			}
			p.Send(SnapshotMsg{State: state})
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			p.Send(EventMsg{Event: ev})
		}
	}
}
