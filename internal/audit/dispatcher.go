package audit

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const (
	ActionTokenAcquired            = "token_acquired"
	ActionTokenInvalidated         = "token_invalidated"
	ActionTokenExhausted           = "token_exhausted"
	ActionAvailabilityViewed       = "availability_viewed"
	ActionServiceAppointmentViewed = "service_appointment_viewed"
)

type Event struct {
	RequestID string
	Action    string
	Entity    string
	EntityID  string
	Metadata  any
}

// Recorder accepts audit events without blocking the caller.
type Recorder interface {
	Dispatch(ev Event)
}

// Sink is where the dispatcher worker writes events.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sink   Sink
	log    *zap.Logger
	queue  chan Event
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

const queueSize = 100

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			d.log.Warn("audit write failed", zap.String("action", ev.Action), zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		// never block a request on auditing
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}

// Nop discards every event. Used when no database is configured.
type Nop struct{}

func (Nop) Dispatch(Event) {}
