package ratbag

import (
	"sync"

	"github.com/google/uuid"
)

// Event is a single property change on a daemon object.
type Event struct {
	// EntityID is the object path of the changed object.
	EntityID string
	// Property is the D-Bus property name, or PropResync.
	Property string
	// Value is the new, decoded value.
	Value interface{}
}

// Handler receives events for a subscription.
type Handler func(Event)

// Token identifies a subscription.
type Token struct {
	id uuid.UUID
}

// String returns the token's UUID.
func (t Token) String() string {
	return t.id.String()
}

// Dispatcher runs fn on the control thread. The GTK front-end passes a
// glib.IdleAdd wrapper, the terminal UI sends a message to its program.
type Dispatcher func(fn func())

// InlineDispatcher runs fn on the calling goroutine.
func InlineDispatcher(fn func()) { fn() }

type subscription struct {
	token    Token
	entityID string
	property string
	handler  Handler
}

// Bus is the observer registry for daemon property changes.
//
// Events published from any goroutine are handed to the Dispatcher and
// delivered on the control thread. A publish that happens while a handler
// is running is queued behind the current event, never delivered
// re-entrantly.
type Bus struct {
	mu         sync.Mutex
	subs       []*subscription
	dispatch   Dispatcher
	queue      []Event
	delivering bool
}

// NewBus creates a bus delivering through dispatch, or inline when nil.
func NewBus(dispatch Dispatcher) *Bus {
	if dispatch == nil {
		dispatch = InlineDispatcher
	}
	return &Bus{dispatch: dispatch}
}

// Subscribe registers handler for changes of property on entityID.
// An empty property matches every property of the entity.
func (b *Bus) Subscribe(entityID, property string, handler Handler) Token {
	sub := &subscription{
		token:    Token{id: uuid.New()},
		entityID: entityID,
		property: property,
		handler:  handler,
	}
	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()
	return sub.token
}

// Unsubscribe removes the subscription. After it returns the handler is
// never called again, including for events already queued.
func (b *Bus) Unsubscribe(token Token) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub.token == token {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Watch subscribes fn to property values and returns a cancel func.
func (b *Bus) Watch(entityID, property string, fn func(value interface{})) (cancel func()) {
	token := b.Subscribe(entityID, property, func(ev Event) { fn(ev.Value) })
	var once sync.Once
	return func() {
		once.Do(func() { b.Unsubscribe(token) })
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Publish hands ev to the dispatcher.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	dispatch := b.dispatch
	b.mu.Unlock()
	dispatch(func() { b.deliver(ev) })
}

func (b *Bus) deliver(ev Event) {
	b.mu.Lock()
	if b.delivering {
		b.queue = append(b.queue, ev)
		b.mu.Unlock()
		return
	}
	b.delivering = true
	b.mu.Unlock()

	for {
		b.fanout(ev)

		b.mu.Lock()
		if len(b.queue) == 0 {
			b.delivering = false
			b.mu.Unlock()
			return
		}
		ev = b.queue[0]
		b.queue = b.queue[1:]
		b.mu.Unlock()
	}
}

func (b *Bus) fanout(ev Event) {
	b.mu.Lock()
	var matched []*subscription
	for _, sub := range b.subs {
		if sub.entityID == ev.EntityID && (sub.property == "" || sub.property == ev.Property) {
			matched = append(matched, sub)
		}
	}
	b.mu.Unlock()

	for _, sub := range matched {
		if !b.live(sub) {
			continue
		}
		sub.handler(ev)
	}
}

func (b *Bus) live(target *subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		if sub == target {
			return true
		}
	}
	return false
}
