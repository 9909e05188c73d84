// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within stale.
//
// Dispatch is synchronous: Publish* invokes every live subscriber before
// returning, on the caller's goroutine. Evaluation runs are therefore fully
// ordered with the events that trigger them.
package eventbus

import (
	"slices"
	"sync"

	"github.com/colonyops/stale/internal/core/config"
)

// Event identifies an event type on the bus.
type Event string

// All events published within stale.
const (
	// Keep list sorted A-Z
	EventConfigReloaded Event = "config.reloaded"
	EventFileModified   Event = "file.modified"
	EventViewActivated  Event = "view.activated"
)

// ViewActivatedPayload is emitted when a view becomes the active view.
type ViewActivatedPayload struct {
	Path string
}

// FileModifiedPayload is emitted when a note file is saved on disk.
type FileModifiedPayload struct {
	Path string
}

// ConfigReloadedPayload is emitted when configuration is reloaded.
type ConfigReloadedPayload struct {
	Config *config.Config
}

// EventBus dispatches typed events to subscribers.
type EventBus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[Event]map[uint64]func(any)
	hooks  hooks
}

// New constructs an empty EventBus.
func New() *EventBus {
	return &EventBus{
		subs: make(map[Event]map[uint64]func(any)),
	}
}

// Subscription is a scoped handle to a registered subscriber. Cancel
// deregisters it deterministically; cancelling twice is a no-op.
type Subscription struct {
	bus   *EventBus
	event Event
	id    uint64
}

// Cancel removes the subscriber from the bus.
func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.mu.Lock()
	if m, ok := s.bus.subs[s.event]; ok {
		delete(m, s.id)
	}
	s.bus.mu.Unlock()
	s.bus = nil
}

// SubscribeViewActivated registers a handler for view.activated events.
func (bus *EventBus) SubscribeViewActivated(fn func(ViewActivatedPayload)) *Subscription {
	return bus.subscribe(EventViewActivated, func(p any) {
		fn(p.(ViewActivatedPayload))
	})
}

// PublishViewActivated publishes a view.activated event.
func (bus *EventBus) PublishViewActivated(p ViewActivatedPayload) {
	bus.send(EventViewActivated, p)
}

// SubscribeFileModified registers a handler for file.modified events.
func (bus *EventBus) SubscribeFileModified(fn func(FileModifiedPayload)) *Subscription {
	return bus.subscribe(EventFileModified, func(p any) {
		fn(p.(FileModifiedPayload))
	})
}

// PublishFileModified publishes a file.modified event.
func (bus *EventBus) PublishFileModified(p FileModifiedPayload) {
	bus.send(EventFileModified, p)
}

// SubscribeConfigReloaded registers a handler for config.reloaded events.
func (bus *EventBus) SubscribeConfigReloaded(fn func(ConfigReloadedPayload)) *Subscription {
	return bus.subscribe(EventConfigReloaded, func(p any) {
		fn(p.(ConfigReloadedPayload))
	})
}

// PublishConfigReloaded publishes a config.reloaded event.
func (bus *EventBus) PublishConfigReloaded(p ConfigReloadedPayload) {
	bus.send(EventConfigReloaded, p)
}

func (bus *EventBus) subscribe(event Event, fn func(any)) *Subscription {
	bus.mu.Lock()
	bus.nextID++
	id := bus.nextID
	if bus.subs[event] == nil {
		bus.subs[event] = make(map[uint64]func(any))
	}
	bus.subs[event][id] = fn
	bus.mu.Unlock()

	bus.runOnSubscribe(event)

	return &Subscription{bus: bus, event: event, id: id}
}

// send dispatches an event to all current subscribers in registration order.
func (bus *EventBus) send(event Event, payload any) {
	bus.mu.RLock()
	ids := make([]uint64, 0, len(bus.subs[event]))
	for id := range bus.subs[event] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(any), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, bus.subs[event][id])
	}
	bus.mu.RUnlock()

	bus.runOnPublish(event, payload)

	for _, fn := range fns {
		bus.dispatch(event, payload, fn)
	}
}

func (bus *EventBus) dispatch(event Event, payload any, fn func(any)) {
	defer func() {
		if r := recover(); r != nil {
			bus.runOnPanic(event, payload, r)
		}
	}()
	fn(payload)
}
