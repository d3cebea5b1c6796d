package input

// Handle identifies one subscription on a Bus.
type Handle struct {
	typ EventType
	id  int
}

type subscriber struct {
	id int
	fn func(Event)
}

// Bus dispatches input events to subscribers. All calls happen on the
// main thread; there is no locking, matching the cooperative scheduling
// model of the frame loop.
type Bus struct {
	subs   map[EventType][]subscriber
	nextID int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[EventType][]subscriber)}
}

// Subscribe registers fn for events of the given type and returns a
// handle for Unsubscribe.
func (b *Bus) Subscribe(typ EventType, fn func(Event)) Handle {
	b.nextID++
	b.subs[typ] = append(b.subs[typ], subscriber{id: b.nextID, fn: fn})
	return Handle{typ: typ, id: b.nextID}
}

// Unsubscribe removes a subscription. Unknown handles are ignored.
func (b *Bus) Unsubscribe(h Handle) {
	list := b.subs[h.typ]
	for i, s := range list {
		if s.id == h.id {
			b.subs[h.typ] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Publish delivers an event to subscribers in registration order.
func (b *Bus) Publish(ev Event) {
	// Copy: a handler may unsubscribe itself during delivery.
	list := append([]subscriber(nil), b.subs[ev.Type]...)
	for _, s := range list {
		s.fn(ev)
	}
}

// SubscriberCount returns how many subscribers exist for a type.
func (b *Bus) SubscriberCount(typ EventType) int {
	return len(b.subs[typ])
}
