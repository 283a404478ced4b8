package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, ch <-chan DomainEvent) DomainEvent {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		require.FailNow(t, "event not delivered")
		return nil
	}
}

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 2)
	b.Subscribe(EventPageChanged, func(e DomainEvent) { got <- e })
	b.Subscribe(EventScrollStopped, func(e DomainEvent) { got <- e })

	b.Publish(PageChangedEvent{Previous: 0, Current: 1, Title: "Two"})

	e := waitFor(t, got)
	assert.Equal(t, PageChangedEvent{Previous: 0, Current: 1, Title: "Two"}, e)
	assert.Empty(t, got)
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	defer b.Close()

	first := make(chan DomainEvent, 4)
	second := make(chan DomainEvent, 4)
	unsubscribe := b.Subscribe(EventScrollStarted, func(e DomainEvent) { first <- e })
	b.Subscribe(EventScrollStarted, func(e DomainEvent) { second <- e })

	unsubscribe()
	b.Publish(ScrollStartedEvent{Page: 2})

	waitFor(t, second)
	assert.Empty(t, first)
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, func(e DomainEvent) { got <- e })

	b.Publish(ErrorEvent{Message: "x"})

	assert.Equal(t, ErrorEvent{Message: "x"}, waitFor(t, got))
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New()
	got := make(chan DomainEvent, 1)
	b.Subscribe(EventConfigSaved, func(e DomainEvent) { got <- e })

	b.Close()
	b.Close()
	b.Publish(ConfigSavedEvent{Path: "x"})

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, got)
}
