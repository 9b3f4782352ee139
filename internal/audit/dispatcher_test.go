package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	err    error
	block  chan struct{}
}

func (s *memorySink) Log(_ context.Context, ev Event) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, zap.NewNop())

	d.Dispatch(Event{Action: ActionTokenAcquired})
	d.Dispatch(Event{Action: ActionAvailabilityViewed, RequestID: "req-1"})
	d.Close()

	assert.Equal(t, []Event{
		{Action: ActionTokenAcquired},
		{Action: ActionAvailabilityViewed, RequestID: "req-1"},
	}, sink.events)
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	sink := &memorySink{block: make(chan struct{})}
	d := NewDispatcher(sink, zap.NewNop())

	// one event is held by the blocked worker, the rest fill the queue
	for i := 0; i < queueSize+10; i++ {
		d.Dispatch(Event{Action: ActionAvailabilityViewed})
	}
	close(sink.block)
	d.Close()

	assert.LessOrEqual(t, len(sink.events), queueSize+1)
	assert.GreaterOrEqual(t, len(sink.events), queueSize)
}

func TestDispatcherSurvivesSinkErrors(t *testing.T) {
	sink := &memorySink{err: errors.New("db down")}
	d := NewDispatcher(sink, zap.NewNop())

	d.Dispatch(Event{Action: ActionTokenExhausted})
	d.Dispatch(Event{Action: ActionTokenExhausted})
	d.Close()

	assert.Len(t, sink.events, 2)
}

func TestDispatchAfterCloseIsIgnored(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, zap.NewNop())
	d.Close()
	d.Close()

	d.Dispatch(Event{Action: ActionTokenAcquired})

	assert.Empty(t, sink.events)
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", RequestIDFrom(ctx))
	assert.Empty(t, RequestIDFrom(context.Background()))
}
