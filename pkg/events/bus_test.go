package events

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/code-100-precent/LingCaptcha/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Lg = zap.NewNop()
	os.Exit(m.Run())
}

func collect(t *testing.T) (chan Event, EventHandler) {
	t.Helper()
	ch := make(chan Event, 8)
	return ch, func(event Event) error {
		ch <- event
		return nil
	}
}

func waitEvent(t *testing.T, ch chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestEventBus_PublishSubscribe(t *testing.T) {
	bus := &EventBus{handlers: map[string][]EventHandler{}}
	ch, handler := collect(t)
	bus.Subscribe(TypeChallengeIssued, handler)

	bus.Publish(Event{
		Type:   TypeChallengeIssued,
		Source: "captcha",
		Data:   map[string]interface{}{"forced": true},
	})

	ev := waitEvent(t, ch)
	assert.Equal(t, TypeChallengeIssued, ev.Type)
	assert.Equal(t, "captcha", ev.Source)
	assert.Equal(t, true, ev.Data["forced"])
	assert.False(t, ev.Timestamp.IsZero())
}

func TestEventBus_Wildcard(t *testing.T) {
	bus := &EventBus{handlers: map[string][]EventHandler{}}
	ch, handler := collect(t)
	bus.Subscribe("*", handler)

	bus.Publish(Event{Type: TypeChallengeVerified})
	bus.Publish(Event{Type: TypeChallengeFailed})

	seen := map[string]bool{}
	seen[waitEvent(t, ch).Type] = true
	seen[waitEvent(t, ch).Type] = true
	assert.True(t, seen[TypeChallengeVerified])
	assert.True(t, seen[TypeChallengeFailed])
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := &EventBus{handlers: map[string][]EventHandler{}}
	ch, handler := collect(t)
	bus.Subscribe(TypeChallengeFailed, handler)
	bus.Unsubscribe(TypeChallengeFailed)

	bus.Publish(Event{Type: TypeChallengeFailed})

	select {
	case <-ch:
		t.Fatal("handler fired after unsubscribe")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEventBus_ConcurrentPublish(t *testing.T) {
	bus := &EventBus{handlers: map[string][]EventHandler{}}
	ch := make(chan Event, 64)
	bus.Subscribe(TypeChallengeIssued, func(event Event) error {
		ch <- event
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(Event{Type: TypeChallengeIssued})
		}()
	}
	wg.Wait()

	for i := 0; i < 16; i++ {
		waitEvent(t, ch)
	}
}

func TestGetEventBus_Singleton(t *testing.T) {
	require.Same(t, GetEventBus(), GetEventBus())
}
