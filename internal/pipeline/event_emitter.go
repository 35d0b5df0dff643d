package pipeline

import (
	"log"
	"sync/atomic"
	"time"
)

// DefaultEventTimeout is how long Emit waits for buffer space before
// dropping an event.
const DefaultEventTimeout = 100 * time.Millisecond

// EventEmitter fans pipeline events into a buffered channel. A slow reader
// never stalls the pipeline: when the buffer stays full past the timeout
// the event is dropped and counted.
type EventEmitter struct {
	events       chan PipelineEvent
	timeout      time.Duration
	droppedCount atomic.Uint64
}

// NewEventEmitter creates an emitter with the given buffer size and
// DefaultEventTimeout.
func NewEventEmitter(bufferSize int) *EventEmitter {
	if bufferSize < 0 {
		bufferSize = 0
	}
	return &EventEmitter{
		events:  make(chan PipelineEvent, bufferSize),
		timeout: DefaultEventTimeout,
	}
}

// Emit sends an event, waiting up to the timeout for buffer space. With a
// zero timeout a full buffer drops the event at once.
func (e *EventEmitter) Emit(event PipelineEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case e.events <- event:
		return
	default:
	}

	if e.timeout > 0 {
		t := time.NewTimer(e.timeout)
		defer t.Stop()
		select {
		case e.events <- event:
			return
		case <-t.C:
		}
	}

	count := e.droppedCount.Add(1)
	if count%10 == 1 {
		log.Printf("[pipeline] WARNING: event channel full, dropped event (total dropped: %d): type=%s", count, event.Type)
	}
}

// DroppedCount returns how many events were dropped.
func (e *EventEmitter) DroppedCount() uint64 {
	return e.droppedCount.Load()
}

// Events returns the receive side of the stream.
func (e *EventEmitter) Events() <-chan PipelineEvent {
	return e.events
}

// Close closes the stream. No Emit may follow.
func (e *EventEmitter) Close() {
	close(e.events)
}
