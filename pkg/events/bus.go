package events

import (
	"sync"
	"time"

	"github.com/code-100-precent/LingCaptcha/pkg/logger"
	"go.uber.org/zap"
)

// Well-known event types published by the captcha core.
const (
	TypeChallengeIssued   = "captcha.issued"
	TypeChallengeVerified = "captcha.verified"
	TypeChallengeFailed   = "captcha.failed"
)

// Event system event
type Event struct {
	Type      string                 `json:"type"`      // Event type, e.g. "captcha.issued"
	Timestamp time.Time              `json:"timestamp"` // Event timestamp
	Data      map[string]interface{} `json:"data"`      // Event data
	Source    string                 `json:"source"`    // Event source
}

// EventHandler event handler function
type EventHandler func(event Event) error

// EventBus event bus
type EventBus struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
}

var globalEventBus *EventBus
var once sync.Once

// GetEventBus gets global event bus instance
func GetEventBus() *EventBus {
	once.Do(func() {
		globalEventBus = &EventBus{
			handlers: make(map[string][]EventHandler),
		}
	})
	return globalEventBus
}

// Subscribe subscribes to events
func (bus *EventBus) Subscribe(eventType string, handler EventHandler) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	bus.handlers[eventType] = append(bus.handlers[eventType], handler)
}

// Unsubscribe removes all handlers for the type
func (bus *EventBus) Unsubscribe(eventType string) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	delete(bus.handlers, eventType)
}

// Publish publishes an event. Handlers run asynchronously; a "*" subscription
// receives every event.
func (bus *EventBus) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	bus.mu.RLock()
	handlers := bus.handlers[event.Type]
	wildcardHandlers := bus.handlers["*"]
	allHandlers := make([]EventHandler, 0, len(handlers)+len(wildcardHandlers))
	allHandlers = append(allHandlers, handlers...)
	allHandlers = append(allHandlers, wildcardHandlers...)
	bus.mu.RUnlock()

	for _, handler := range allHandlers {
		go func(h EventHandler) {
			if err := h(event); err != nil {
				logger.Error("Event handler failed",
					zap.String("eventType", event.Type),
					zap.Error(err))
			}
		}(handler)
	}
}
