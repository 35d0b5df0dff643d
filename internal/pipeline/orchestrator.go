package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// Agents produces every task payload. Implementations validate payload
// shape and own the timeout of their external calls.
type Agents interface {
	Industry(ctx context.Context, stock models.StockContext) (*models.IndustryReport, error)
	News(ctx context.Context, stock models.StockContext) (*models.NewsReport, error)
	Quant(ctx context.Context, stock models.StockContext) (*models.QuantReport, error)
	Competitor(ctx context.Context, stock models.StockContext) (*models.CompetitorReport, error)
	Hedging(ctx context.Context, stock models.StockContext) (*models.HedgingReport, error)
	Debate(ctx context.Context, stock models.StockContext) (*models.DebateReport, error)
	Backtest(ctx context.Context, stock models.StockContext, quant models.QuantReport) (*models.BacktestReport, error)
	Judge(ctx context.Context, input models.SynthesisInput) (*models.JudgeReport, error)
}

// Orchestrator runs the analysis pipeline for one stock at a time. Starting
// a new run supersedes the current one: its context is cancelled and its
// late settlements are discarded by the store.
type Orchestrator struct {
	agents        Agents
	store         *Store
	emitter       *EventEmitter
	logger        *DebugLogger
	stagger       time.Duration
	synthesisGate Gate
	backtestGate  Gate
	newRunID      func() string

	mu      sync.Mutex
	cancel  context.CancelFunc
	closed  bool
	running sync.WaitGroup
}

// New creates an orchestrator over agents.
func New(agents Agents, opts ...Option) *Orchestrator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	emitter := NewEventEmitter(o.eventBuffer)
	emitter.timeout = o.eventTimeout
	return &Orchestrator{
		agents:        agents,
		store:         NewStore(o.logger),
		emitter:       emitter,
		logger:        o.logger,
		stagger:       o.stagger,
		synthesisGate: o.synthesisGate,
		backtestGate:  o.backtestGate,
		newRunID:      o.newRunID,
	}
}

// Store returns the state store observers read from.
func (o *Orchestrator) Store() *Store { return o.store }

// Snapshot returns the latest RunState.
func (o *Orchestrator) Snapshot() RunState { return o.store.Snapshot() }

// Subscribe is shorthand for Store().Subscribe().
func (o *Orchestrator) Subscribe() (<-chan RunState, func()) { return o.store.Subscribe() }

// Events returns the activity stream. It is closed by Close. Callers must
// keep draining it: once the buffer is full each event stalls its task for
// up to the event timeout before being dropped. Callers that only read
// snapshots should use WithEventTimeout(0).
func (o *Orchestrator) Events() <-chan PipelineEvent { return o.emitter.Events() }

// DroppedEvents returns how many activity events were dropped.
func (o *Orchestrator) DroppedEvents() uint64 { return o.emitter.DroppedCount() }

// Run is a handle on one started run.
type Run struct {
	// ID is the run's unique identifier.
	ID string
	// Epoch is the store epoch the run writes to.
	Epoch uint64
	// Stock is the run's input.
	Stock models.StockContext

	done  chan struct{}
	final RunState
	err   error
}

// Done is closed once the run has completed or been superseded.
func (r *Run) Done() <-chan struct{} { return r.done }

// Wait blocks until the run finishes and returns its final state. It
// returns ErrSuperseded if a newer run replaced this one first.
func (r *Run) Wait(ctx context.Context) (RunState, error) {
	select {
	case <-r.done:
		return r.final, r.err
	case <-ctx.Done():
		return RunState{}, ctx.Err()
	}
}

// Start resets the store for stock and launches the pipeline in the
// background. Cancelling ctx cancels the run's agent calls; the run still
// completes with those tasks failed.
func (o *Orchestrator) Start(ctx context.Context, stock models.StockContext) (*Run, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil, ErrClosed
	}

	state, err := o.store.Reset(o.newRunID(), stock)
	if err != nil {
		return nil, fmt.Errorf("reset state: %w", err)
	}

	if o.cancel != nil {
		o.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	h := &Run{ID: state.RunID, Epoch: state.Epoch, Stock: state.Stock, done: make(chan struct{})}
	r := &run{
		ctx:     runCtx,
		id:      state.RunID,
		epoch:   state.Epoch,
		stock:   state.Stock,
		store:   o.store,
		emitter: o.emitter,
		logger:  o.logger,
	}

	o.running.Add(1)
	go func() {
		defer o.running.Done()
		defer cancel()
		o.execute(r, h)
	}()
	return h, nil
}

// Run starts a run and waits for it to finish.
func (o *Orchestrator) Run(ctx context.Context, stock models.StockContext) (RunState, error) {
	h, err := o.Start(ctx, stock)
	if err != nil {
		return RunState{}, err
	}
	return h.Wait(ctx)
}

// Close cancels the active run, waits for every started run to return, and
// then closes the event stream and the store.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	if o.cancel != nil {
		o.cancel()
	}
	o.mu.Unlock()

	o.running.Wait()
	o.emitter.Close()
	o.store.Close()
}

// run carries everything one pipeline execution needs.
type run struct {
	ctx     context.Context
	id      string
	epoch   uint64
	stock   models.StockContext
	store   *Store
	emitter *EventEmitter
	logger  *DebugLogger
}

func (r *run) emit(ev PipelineEvent) {
	ev.RunID = r.id
	ev.Epoch = r.epoch
	ev.Stock = r.stock
	r.emitter.Emit(ev)
}

// sleep waits for d or until the run is cancelled.
func (r *run) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-r.ctx.Done():
	}
}

func (o *Orchestrator) execute(r *run, h *Run) {
	start := time.Now()
	r.emit(PipelineEvent{Type: EventRunStarted, Message: "analyzing " + r.stock.Display()})
	r.logger.Log("[run %s] started for %s (epoch %d)", r.id, r.stock.Display(), r.epoch)

	var reason string
	defer func() {
		if p := recover(); p != nil {
			reason = fmt.Sprintf("%s: %v", ErrOrchestrationFailed, panicValue(p))
			r.logger.Log("[run %s] recovered: %s", r.id, reason)
		}
		o.finish(r, h, reason, time.Since(start))
	}()

	o.pipeline(r)
}

func (o *Orchestrator) finish(r *run, h *Run, reason string, elapsed time.Duration) {
	defer close(h.done)

	final, applied, err := r.store.complete(r.epoch, reason)
	switch {
	case err != nil:
		h.err = err
	case !applied:
		h.err = ErrSuperseded
		r.logger.Log("[run %s] superseded", r.id)
		r.emit(PipelineEvent{Type: EventRunSuperseded, Message: "superseded by a newer run", Duration: elapsed})
	default:
		h.final = final
		r.logger.Log("[run %s] completed in %s, judge %s", r.id, elapsed.Round(time.Millisecond), final.Judge.Status)
		msg := fmt.Sprintf("judge %s", final.Judge.Status)
		if reason != "" {
			msg = reason
		}
		r.emit(PipelineEvent{Type: EventRunCompleted, Message: msg, Duration: elapsed})
	}
}

// pipeline runs signals and perspectives with a staggered start, gates
// backtest on quant, and gates the judge on every feeder.
func (o *Orchestrator) pipeline(r *run) {
	stock := r.stock
	a := o.agents

	industry := NewJob(IndustrySlot, func(ctx context.Context) (*models.IndustryReport, error) {
		return a.Industry(ctx, stock)
	})
	news := NewJob(NewsSlot, func(ctx context.Context) (*models.NewsReport, error) {
		return a.News(ctx, stock)
	})
	quant := NewJob(QuantSlot, func(ctx context.Context) (*models.QuantReport, error) {
		return a.Quant(ctx, stock)
	})
	competitor := NewJob(CompetitorSlot, func(ctx context.Context) (*models.CompetitorReport, error) {
		return a.Competitor(ctx, stock)
	})
	hedging := NewJob(HedgingSlot, func(ctx context.Context) (*models.HedgingReport, error) {
		return a.Hedging(ctx, stock)
	})
	debate := NewJob(DebateSlot, func(ctx context.Context) (*models.DebateReport, error) {
		return a.Debate(ctx, stock)
	})
	backtest := NewJob(BacktestSlot, func(ctx context.Context) (*models.BacktestReport, error) {
		// gated rejects this stage unless quant has a value.
		q, _ := quant.Value()
		return a.Backtest(ctx, stock, *q)
	})
	var input models.SynthesisInput
	judge := NewJob(JudgeSlot, func(ctx context.Context) (*models.JudgeReport, error) {
		return a.Judge(ctx, input)
	})

	signals := Stage{Name: StageSignals, Tasks: []Task{industry, news, quant}}
	perspectives := Stage{Name: StagePerspectives, Tasks: []Task{competitor, hedging, debate}}
	backtesting := Stage{Name: StageBacktest, Tasks: []Task{backtest}}
	synthesis := Stage{Name: StageSynthesis, Tasks: []Task{judge}}

	var (
		wg              conc.WaitGroup
		signalsOut      StageOutcome
		perspectivesOut StageOutcome
	)
	// Stage goroutines never outlive the run, even when a gate panics.
	defer wg.WaitAndRecover()

	signalsDone := make(chan struct{})
	wg.Go(func() {
		defer close(signalsDone)
		signalsOut = r.runStage(signals)
	})
	r.sleep(o.stagger)
	wg.Go(func() {
		perspectivesOut = r.runStage(perspectives)
	})

	<-signalsDone
	var backtestMissing []TaskName
	if _, ok := quant.Value(); !ok {
		backtestMissing = []TaskName{TaskQuant}
	}
	backtestOut := r.gated(backtesting, o.backtestGate, backtestMissing, signalsOut)
	wg.Wait()

	decision := r.evaluate(StageSynthesis, o.synthesisGate, signalsOut, perspectivesOut, backtestOut)
	if !decision.Proceed {
		r.rejectStage(synthesis, decision)
		return
	}

	var err error
	input, err = buildSynthesisInput(stock, industry, news, quant, competitor, hedging, debate, backtest)
	if err != nil {
		var missing *missingCriticalError
		if errors.As(err, &missing) {
			decision = blockMissing(decision, missing.tasks)
		}
		r.rejectStage(synthesis, decision)
		return
	}
	r.runStage(synthesis)
}

// gated evaluates gate over outcomes and runs or rejects stage. A stage
// with missing inputs is rejected even if the gate lets it proceed.
func (r *run) gated(stage Stage, gate Gate, missing []TaskName, outcomes ...StageOutcome) StageOutcome {
	decision := r.evaluate(stage.Name, gate, outcomes...)
	if decision.Proceed && len(missing) > 0 {
		decision = blockMissing(decision, missing)
	}
	if !decision.Proceed {
		return r.rejectStage(stage, decision)
	}
	return r.runStage(stage)
}

func (r *run) evaluate(stage string, gate Gate, outcomes ...StageOutcome) GateDecision {
	decision := gate.Evaluate(outcomes...)
	r.logger.Log("[run %s] gate before %s: %s", r.id, stage, decision.Reason())
	r.emit(PipelineEvent{Type: EventGateEvaluated, Stage: stage, Message: decision.Reason()})
	return decision
}

// blockMissing turns d into a rejection that names the missing tasks.
func blockMissing(d GateDecision, missing []TaskName) GateDecision {
	d.Proceed = false
	failed := append([]TaskName(nil), d.Failed...)
	for _, name := range missing {
		if !slices.Contains(failed, name) {
			failed = append(failed, name)
		}
	}
	sortTasks(failed)
	d.Failed = failed
	return d
}

type missingCriticalError struct {
	tasks []TaskName
}

func (e *missingCriticalError) Error() string {
	return "missing critical inputs: " + joinTasks(e.tasks)
}

// buildSynthesisInput gathers payloads for the judge. Optional reports that
// did not succeed are left nil.
func buildSynthesisInput(
	stock models.StockContext,
	industry *Job[models.IndustryReport],
	news *Job[models.NewsReport],
	quant *Job[models.QuantReport],
	competitor *Job[models.CompetitorReport],
	hedging *Job[models.HedgingReport],
	debate *Job[models.DebateReport],
	backtest *Job[models.BacktestReport],
) (models.SynthesisInput, error) {
	in := models.SynthesisInput{Stock: stock}

	var missing []TaskName
	if v, ok := industry.Value(); ok {
		in.Industry = *v
	} else {
		missing = append(missing, TaskIndustry)
	}
	if v, ok := news.Value(); ok {
		in.News = *v
	} else {
		missing = append(missing, TaskNews)
	}
	if v, ok := quant.Value(); ok {
		in.Quant = *v
	} else {
		missing = append(missing, TaskQuant)
	}
	if len(missing) > 0 {
		return models.SynthesisInput{}, &missingCriticalError{tasks: missing}
	}

	if v, ok := competitor.Value(); ok {
		in.Competitor = v
	}
	if v, ok := hedging.Value(); ok {
		in.Hedging = v
	}
	if v, ok := debate.Value(); ok {
		in.Debate = v
	}
	if v, ok := backtest.Value(); ok {
		in.Backtest = v
	}
	return in, nil
}

func panicValue(p any) any {
	if rec, ok := p.(*panics.Recovered); ok {
		return rec.Value
	}
	return p
}
