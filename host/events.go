// Package host models the browser window the positioner runs in: the layout
// viewport, page scroll, an optional visual viewport, event dispatch with
// abortable listeners, and the animation-frame queue.
//
// Everything here is driven explicitly. A GUI driver, a script runtime or a
// test calls Resize, ScrollTo and RunFrame; nothing happens on timers.
package host

import (
	"sync"
)

// Event types dispatched by Window and VisualViewport.
const (
	EventLoad   = "load"
	EventResize = "resize"
	EventScroll = "scroll"
)

// Event is a dispatched event.
type Event struct {
	Type   string
	Target *EventTarget
}

// Listener handles an event.
type Listener func(Event)

// ListenerOptions mirrors the options bag of addEventListener.
type ListenerOptions struct {
	// Signal removes the listener when aborted.
	Signal *AbortSignal
	// Once removes the listener after its first call.
	Once bool
	// Passive listeners promise not to cancel the event. Recorded only.
	Passive bool
}

// eventListener represents a registered event listener.
type eventListener struct {
	id       int
	callback Listener
	options  ListenerOptions
}

// EventTarget manages event listeners for a target.
type EventTarget struct {
	listeners map[string][]eventListener
	nextID    int
	mu        sync.RWMutex
}

// NewEventTarget creates a new EventTarget.
func NewEventTarget() *EventTarget {
	return &EventTarget{
		listeners: make(map[string][]eventListener),
	}
}

// AddEventListener registers fn for eventType and returns its id, or 0 when
// the signal is already aborted and nothing was registered.
func (et *EventTarget) AddEventListener(eventType string, fn Listener, opts ListenerOptions) int {
	if fn == nil {
		return 0
	}
	if opts.Signal != nil && opts.Signal.Aborted() {
		return 0
	}

	et.mu.Lock()
	et.nextID++
	id := et.nextID
	et.listeners[eventType] = append(et.listeners[eventType], eventListener{
		id:       id,
		callback: fn,
		options:  opts,
	})
	et.mu.Unlock()

	if opts.Signal != nil {
		opts.Signal.onAbort(func() {
			et.RemoveEventListener(eventType, id)
		})
	}
	return id
}

// RemoveEventListener unregisters the listener with the given id.
func (et *EventTarget) RemoveEventListener(eventType string, id int) {
	et.mu.Lock()
	defer et.mu.Unlock()

	listeners := et.listeners[eventType]
	for i, l := range listeners {
		if l.id == id {
			et.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of listeners registered for eventType.
func (et *EventTarget) ListenerCount(eventType string) int {
	et.mu.RLock()
	defer et.mu.RUnlock()
	return len(et.listeners[eventType])
}

// DispatchEvent calls the listeners for eventType in registration order.
// Listeners added during dispatch are not called for this event; listeners
// removed during dispatch are skipped.
func (et *EventTarget) DispatchEvent(eventType string) {
	et.mu.RLock()
	listeners := make([]eventListener, len(et.listeners[eventType]))
	copy(listeners, et.listeners[eventType])
	et.mu.RUnlock()

	ev := Event{Type: eventType, Target: et}
	for _, l := range listeners {
		if !et.registered(eventType, l.id) {
			continue
		}
		if l.options.Once {
			et.RemoveEventListener(eventType, l.id)
		}
		l.callback(ev)
	}
}

func (et *EventTarget) registered(eventType string, id int) bool {
	et.mu.RLock()
	defer et.mu.RUnlock()
	for _, l := range et.listeners[eventType] {
		if l.id == id {
			return true
		}
	}
	return false
}
