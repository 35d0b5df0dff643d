package pipeline

import (
	"time"

	"github.com/google/uuid"
)

// DefaultStageStagger is the delay between launching the signals stage and
// the perspectives stage.
const DefaultStageStagger = 750 * time.Millisecond

// DefaultEventBuffer is the activity stream buffer size.
const DefaultEventBuffer = 100

// Option configures an Orchestrator. Use With* functions to create Options.
type Option func(*orchestratorOptions)

type orchestratorOptions struct {
	stagger       time.Duration
	synthesisGate Gate
	backtestGate  Gate
	logger        *DebugLogger
	eventBuffer   int
	eventTimeout  time.Duration
	newRunID      func() string
}

func defaultOptions() orchestratorOptions {
	return orchestratorOptions{
		stagger:       DefaultStageStagger,
		synthesisGate: BestEffort{Critical: CriticalTasks(), Optional: OptionalTasks()},
		backtestGate:  AllRequired{Tasks: []TaskName{TaskQuant}},
		eventBuffer:   DefaultEventBuffer,
		eventTimeout:  DefaultEventTimeout,
		newRunID:      uuid.NewString,
	}
}

// WithStageStagger sets the delay between the launches of the signals and
// perspectives stages. Zero launches them together.
func WithStageStagger(d time.Duration) Option {
	return func(o *orchestratorOptions) {
		if d < 0 {
			d = 0
		}
		o.stagger = d
	}
}

// WithSynthesisGate sets the gate in front of the judge.
func WithSynthesisGate(g Gate) Option {
	return func(o *orchestratorOptions) {
		if g != nil {
			o.synthesisGate = g
		}
	}
}

// WithBacktestGate sets the gate in front of the backtest stage. It is
// evaluated over the signals outcome only.
func WithBacktestGate(g Gate) Option {
	return func(o *orchestratorOptions) {
		if g != nil {
			o.backtestGate = g
		}
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *DebugLogger) Option {
	return func(o *orchestratorOptions) { o.logger = l }
}

// WithEventBuffer sets the activity stream buffer size.
func WithEventBuffer(n int) Option {
	return func(o *orchestratorOptions) { o.eventBuffer = n }
}

// WithEventTimeout sets how long an event waits for buffer space before it
// is dropped. Zero drops at once, for callers that read Events rarely or
// never.
func WithEventTimeout(d time.Duration) Option {
	return func(o *orchestratorOptions) {
		if d < 0 {
			d = 0
		}
		o.eventTimeout = d
	}
}

// WithRunIDGenerator replaces the uuid-based run ID generator.
func WithRunIDGenerator(fn func() string) Option {
	return func(o *orchestratorOptions) {
		if fn != nil {
			o.newRunID = fn
		}
	}
}
