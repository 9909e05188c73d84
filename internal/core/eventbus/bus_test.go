package eventbus

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishDeliversToSubscriber(t *testing.T) {
	bus := New()

	var got []string
	bus.SubscribeViewActivated(func(p ViewActivatedPayload) {
		got = append(got, p.Path)
	})

	bus.PublishViewActivated(ViewActivatedPayload{Path: "notes/a.md"})
	bus.PublishViewActivated(ViewActivatedPayload{Path: "notes/b.md"})

	assert.Equal(t, []string{"notes/a.md", "notes/b.md"}, got)
}

func TestEventBus_SubscribersCalledInRegistrationOrder(t *testing.T) {
	bus := New()

	var order []int
	bus.SubscribeFileModified(func(FileModifiedPayload) { order = append(order, 1) })
	bus.SubscribeFileModified(func(FileModifiedPayload) { order = append(order, 2) })
	bus.SubscribeFileModified(func(FileModifiedPayload) { order = append(order, 3) })

	bus.PublishFileModified(FileModifiedPayload{Path: "x.md"})

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestEventBus_EventsAreIsolated(t *testing.T) {
	bus := New()

	activated := 0
	modified := 0
	bus.SubscribeViewActivated(func(ViewActivatedPayload) { activated++ })
	bus.SubscribeFileModified(func(FileModifiedPayload) { modified++ })

	bus.PublishViewActivated(ViewActivatedPayload{})

	assert.Equal(t, 1, activated)
	assert.Equal(t, 0, modified)
}

func TestSubscription_Cancel_StopsDelivery(t *testing.T) {
	bus := New()

	calls := 0
	sub := bus.SubscribeConfigReloaded(func(ConfigReloadedPayload) { calls++ })

	bus.PublishConfigReloaded(ConfigReloadedPayload{})
	sub.Cancel()
	bus.PublishConfigReloaded(ConfigReloadedPayload{})

	assert.Equal(t, 1, calls)
}

func TestSubscription_Cancel_Twice_NoPanic(t *testing.T) {
	bus := New()
	sub := bus.SubscribeConfigReloaded(func(ConfigReloadedPayload) {})

	sub.Cancel()
	assert.NotPanics(t, sub.Cancel)

	var nilSub *Subscription
	assert.NotPanics(t, nilSub.Cancel)
}

func TestEventBus_SubscriberPanic_RecoveredAndHooked(t *testing.T) {
	bus := New()

	var recovered any
	bus.OnPanic(func(_ Event, _ any, r any) { recovered = r })

	bus.SubscribeViewActivated(func(ViewActivatedPayload) { panic("boom") })

	after := 0
	bus.SubscribeViewActivated(func(ViewActivatedPayload) { after++ })

	require.NotPanics(t, func() {
		bus.PublishViewActivated(ViewActivatedPayload{Path: "a.md"})
	})

	assert.Equal(t, "boom", recovered)
	assert.Equal(t, 1, after, "later subscribers still run after a panic")
}

func TestEventBus_OnPublishHook(t *testing.T) {
	bus := New()

	var events []Event
	bus.OnPublish(func(e Event, _ any) { events = append(events, e) })

	bus.PublishFileModified(FileModifiedPayload{Path: "x.md"})
	bus.PublishConfigReloaded(ConfigReloadedPayload{})

	assert.Equal(t, []Event{EventFileModified, EventConfigReloaded}, events)
}

func TestRegisterDebugLogger_NoPanic(t *testing.T) {
	bus := New()
	RegisterDebugLogger(bus, zerolog.Nop())

	bus.SubscribeViewActivated(func(ViewActivatedPayload) { panic("boom") })

	assert.NotPanics(t, func() {
		bus.PublishViewActivated(ViewActivatedPayload{Path: "a.md"})
	})
}
