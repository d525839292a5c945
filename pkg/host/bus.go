package host

import (
	"context"
	"errors"
	"sync"
)

// ErrAlreadySubscribed is returned when a second data-ready handler is
// registered; the contract is exactly one handler per bus.
var ErrAlreadySubscribed = errors.New("data-ready handler already subscribed")

// DrawFunc handles one data-ready event. It runs to completion inside
// the dispatching call; the pipeline guarantees it never panics out.
type DrawFunc func(ctx context.Context, p *Payload)

// Bus delivers host data-ready events to the registered draw handler.
// Dispatch is synchronous: Publish returns when the draw has completed
// (or failed into the error state) and its output is mounted.
type Bus struct {
	mu      sync.RWMutex
	handler DrawFunc
}

// NewBus creates a bus with no handler.
func NewBus() *Bus {
	return &Bus{}
}

// SubscribeDataReady registers the draw handler. Exactly one handler is
// allowed; a second registration fails with ErrAlreadySubscribed.
func (b *Bus) SubscribeDataReady(fn DrawFunc) error {
	if fn == nil {
		return errors.New("nil draw handler")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handler != nil {
		return ErrAlreadySubscribed
	}
	b.handler = fn
	return nil
}

// Publish dispatches a data-ready event. Events published before any
// handler is subscribed are dropped; the host owns that ordering.
func (b *Bus) Publish(ctx context.Context, p *Payload) {
	b.mu.RLock()
	fn := b.handler
	b.mu.RUnlock()
	if fn != nil {
		fn(ctx, p)
	}
}
