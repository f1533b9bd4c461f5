package eventbus

import (
	"runtime/debug"
	"sync"

	log "github.com/sirupsen/logrus"

	"genshinbook/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventNavigationStarted   = domain.EventNavigationStarted
	EventNavigationCompleted = domain.EventNavigationCompleted
	EventNavigationFailed    = domain.EventNavigationFailed
	EventNavigationDiscarded = domain.EventNavigationDiscarded
	EventConfigLoaded        = domain.EventConfigLoaded
	EventConfigSaved         = domain.EventConfigSaved
)

// Re-export domain event types
type NavigationStartedEvent = domain.NavigationStartedEvent
type NavigationCompletedEvent = domain.NavigationCompletedEvent
type NavigationFailedEvent = domain.NavigationFailedEvent
type NavigationDiscardedEvent = domain.NavigationDiscardedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup // dispatcher and in-flight handlers
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	log.Debugf("EventBus: Publishing event %s", event.Type())

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		log.Warnf("Event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher and waits for running handlers.
// Events still queued are discarded.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := b.handlers[event.Type()]
			handlersCopy := make([]EventHandler, 0, len(subs))
			for _, s := range subs {
				handlersCopy = append(handlersCopy, s.handler)
			}
			b.mu.RUnlock()

			for _, handler := range handlersCopy {
				b.wg.Add(1)
				go func(h EventHandler, eventType EventType) {
					defer b.wg.Done()
					defer func() {
						if r := recover(); r != nil {
							log.Errorf("Event handler panic for %s: %v\nStack: %s", eventType, r, debug.Stack())
						}
					}()
					h(event)
				}(handler, event.Type())
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}
