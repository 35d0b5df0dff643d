package pipeline

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/ShayCichocki/alphaagent/pkg/models"
)

type storeEventKind int

const (
	storeReset storeEventKind = iota
	storeSettle
	storeComplete
	storeSubscribe
	storeUnsubscribe
)

type storeEvent struct {
	kind       storeEventKind
	epoch      uint64
	runID      string
	stock      models.StockContext
	settlement settlement
	reason     string
	sub        chan RunState
	reply      chan storeReply
}

type storeReply struct {
	state   RunState
	applied bool
}

// Store owns the current RunState. A single state loop applies resets and
// settlements in arrival order; everyone else sees immutable snapshots.
type Store struct {
	events  chan storeEvent
	done    chan struct{}
	stopped chan struct{}
	current atomic.Pointer[RunState]
	logger  *DebugLogger
	now     func() time.Time

	closeOnce sync.Once
}

// NewStore starts a store in the Idle phase. logger may be nil.
func NewStore(logger *DebugLogger) *Store {
	s := &Store{
		events:  make(chan storeEvent),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		logger:  logger,
		now:     time.Now,
	}
	s.current.Store(&RunState{})
	go s.loop()
	return s
}

// Snapshot returns the latest published state.
func (s *Store) Snapshot() RunState {
	return *s.current.Load()
}

// Epoch returns the epoch of the latest published state.
func (s *Store) Epoch() uint64 {
	return s.current.Load().Epoch
}

// Reset atomically replaces the whole state with a fresh run in which every
// slot is pending, and returns it. The new state's epoch is one greater
// than every previous epoch, so settlements from earlier runs are ignored
// from now on.
func (s *Store) Reset(runID string, stock models.StockContext) (RunState, error) {
	reply, err := s.request(storeEvent{kind: storeReset, runID: runID, stock: stock})
	if err != nil {
		return RunState{}, err
	}
	return reply.state, nil
}

// Subscribe returns a channel that receives the current snapshot and then
// every later one. Delivery is latest-wins: a slow reader skips
// intermediate snapshots but always receives the newest. Call the returned
// function to unsubscribe; the channel is closed afterwards.
func (s *Store) Subscribe() (<-chan RunState, func()) {
	ch := make(chan RunState, 1)
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			select {
			case s.events <- storeEvent{kind: storeUnsubscribe, sub: ch}:
			case <-s.stopped:
			}
		})
	}
	select {
	case s.events <- storeEvent{kind: storeSubscribe, sub: ch}:
	case <-s.stopped:
		close(ch)
	}
	return ch, cancel
}

// Close stops the state loop and closes every subscription. Snapshot keeps
// returning the last published state.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		<-s.stopped
	})
}

// settle applies one settlement and returns once the resulting snapshot is
// published, so callers may announce the settlement afterwards. applied is
// false for stale or duplicate settlements and after Close.
func (s *Store) settle(epoch uint64, st settlement) bool {
	reply, err := s.request(storeEvent{kind: storeSettle, epoch: epoch, settlement: st})
	return err == nil && reply.applied
}

// complete ends the run of the given epoch, failing every slot that is
// still pending. applied is false when the epoch is no longer current.
func (s *Store) complete(epoch uint64, reason string) (RunState, bool, error) {
	reply, err := s.request(storeEvent{kind: storeComplete, epoch: epoch, reason: reason})
	if err != nil {
		return RunState{}, false, err
	}
	return reply.state, reply.applied, nil
}

func (s *Store) request(ev storeEvent) (storeReply, error) {
	ev.reply = make(chan storeReply, 1)
	select {
	case s.events <- ev:
	case <-s.stopped:
		return storeReply{}, ErrStoreClosed
	}
	select {
	case r := <-ev.reply:
		return r, nil
	case <-s.stopped:
		return storeReply{}, ErrStoreClosed
	}
}

func (s *Store) loop() {
	defer close(s.stopped)

	state := RunState{}
	subs := make(map[chan RunState]struct{})

	publish := func() {
		snap := state
		s.current.Store(&snap)
		for ch := range subs {
			offer(ch, snap)
		}
	}

	for {
		select {
		case <-s.done:
			for ch := range subs {
				close(ch)
			}
			return
		case ev := <-s.events:
			switch ev.kind {
			case storeReset:
				state = newRunState(ev.runID, state.Epoch+1, ev.stock, s.now())
				s.logger.Log("[store] reset: run %s epoch %d for %s", state.RunID, state.Epoch, state.Stock.Display())
				publish()
				ev.reply <- storeReply{state: state, applied: true}

			case storeSettle:
				if ev.epoch != state.Epoch || !state.IsRunning {
					s.logger.Log("[store] discarded stale settlement for %s (epoch %d, current %d)", ev.settlement.task, ev.epoch, state.Epoch)
					ev.reply <- storeReply{state: state}
					continue
				}
				if !ev.settlement.apply(&state, s.now()) {
					s.logger.Log("[store] ignored duplicate settlement for %s (epoch %d)", ev.settlement.task, ev.epoch)
					ev.reply <- storeReply{state: state}
					continue
				}
				publish()
				ev.reply <- storeReply{state: state, applied: true}

			case storeComplete:
				if ev.epoch != state.Epoch || !state.IsRunning {
					ev.reply <- storeReply{state: state}
					continue
				}
				msg := ev.reason
				if msg == "" {
					msg = ErrOrchestrationFailed.Error()
				}
				now := s.now()
				if swept := state.sweepPending(models.FailureOrchestration, msg, now); len(swept) > 0 {
					s.logger.Log("[store] run %s completed with pending slots %v", state.RunID, swept)
				}
				state.IsRunning = false
				state.CompletedAt = now
				publish()
				ev.reply <- storeReply{state: state, applied: true}

			case storeSubscribe:
				subs[ev.sub] = struct{}{}
				offer(ev.sub, *s.current.Load())

			case storeUnsubscribe:
				if _, ok := subs[ev.sub]; ok {
					delete(subs, ev.sub)
					close(ev.sub)
				}
			}
		}
	}
}

// offer replaces whatever the single-slot channel holds with snap.
func offer(ch chan RunState, snap RunState) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}
