// Package bus provides the priority-ordered event bus that lets side-effect
// handlers (loot, quests, achievements, notifications) react to simulation
// events. A Bus is owned by its caller; there is no package-level instance.
package bus

import (
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Slepzs/oizys-keres/internal/core"
	"github.com/Slepzs/oizys-keres/internal/event"
)

// DefaultPriority is used by On callers that have no ordering preference.
const DefaultPriority = 100

// Context carries per-dispatch values to handlers.
type Context struct {
	Now int64 // unix ms of the tick that produced the events
}

// Handler reacts to one event. It returns the next state and any follow-up
// events, which are queued behind the events already pending. A nil slice
// means no follow-ups.
type Handler func(ev event.Event, state core.GameState, ctx Context) (core.GameState, []event.Event)

type listener struct {
	id       uint64
	priority int
	handler  Handler
}

// Bus routes events to listeners by type.
type Bus struct {
	mu         sync.RWMutex
	listeners  map[event.Type][]listener
	registered map[string]bool
	nextID     uint64
	maxEvents  int
	logger     *log.Logger
}

// New creates an empty bus. maxEvents bounds how many events one Dispatch
// call processes; zero or less means unbounded. logger may be nil.
func New(logger *log.Logger, maxEvents int) *Bus {
	return &Bus{
		listeners:  make(map[event.Type][]listener),
		registered: make(map[string]bool),
		maxEvents:  maxEvents,
		logger:     logger,
	}
}

// On subscribes handler to events of type t. Lower priorities run first;
// equal priorities run in subscription order. The returned function removes
// the subscription and is safe to call more than once.
func (b *Bus) On(t event.Type, handler Handler, priority int) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	ls := append(b.listeners[t], listener{id: id, priority: priority, handler: handler})
	// Stable sort keeps subscription order within a priority.
	slices.SortStableFunc(ls, func(a, b listener) int { return a.priority - b.priority })
	b.listeners[t] = ls

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.listeners[t] = slices.DeleteFunc(b.listeners[t], func(l listener) bool { return l.id == id })
	}
}

// Register runs setup once per key. Later calls with the same key do nothing
// and report false.
func (b *Bus) Register(key string, setup func(*Bus)) bool {
	b.mu.Lock()
	if b.registered[key] {
		b.mu.Unlock()
		return false
	}
	b.registered[key] = true
	b.mu.Unlock()

	setup(b)
	return true
}

// Registered reports whether key has been registered.
func (b *Bus) Registered(key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.registered[key]
}

// Dispatch processes events in FIFO order, running every listener of each
// event's type against the evolving state. Follow-up events returned by
// handlers are appended to the queue and handled in the same call.
func (b *Bus) Dispatch(events []event.Event, state core.GameState, ctx Context) core.GameState {
	state, _ = b.Process(events, state, ctx)
	return state
}

// Process is Dispatch that also returns every event it handled, follow-ups
// included, in processing order.
func (b *Bus) Process(events []event.Event, state core.GameState, ctx Context) (core.GameState, []event.Event) {
	queue := append([]event.Event(nil), events...)
	var handled []event.Event

	for len(queue) > 0 {
		if b.maxEvents > 0 && len(handled) >= b.maxEvents {
			if b.logger != nil {
				b.logger.Warn("bus: dispatch cascade truncated", "processed", len(handled), "dropped", len(queue))
			}
			break
		}
		ev := queue[0]
		queue = queue[1:]
		handled = append(handled, ev)

		for _, l := range b.snapshot(ev.Type()) {
			next, followUps := l.handler(ev, state, ctx)
			state = next
			queue = append(queue, followUps...)
		}
	}
	return state, handled
}

// Listeners returns how many handlers are subscribed to t.
func (b *Bus) Listeners(t event.Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[t])
}

// snapshot copies the listener list so handlers may subscribe or
// unsubscribe during dispatch.
func (b *Bus) snapshot(t event.Type) []listener {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.listeners[t])
}
