package cuckooindex

// EventType - Tags the structural change an Event reports
type EventType int

const (
	// ItemAdded - An item was stored at Event.To
	ItemAdded EventType = iota + 1
	// ItemMoved - An item was displaced from Event.From to Event.To by a relocation
	ItemMoved
	// ItemRemoved - An item was released from Event.From by Remove or Flush
	ItemRemoved
	// Flushed - Flush released Event.Count items at once, only raised with crt.FlushBulk
	Flushed
)

// String - Returns the event type name
func (E EventType) String() string {
	switch E {
	case ItemAdded:
		return "ITEM_ADDED"
	case ItemMoved:
		return "ITEM_MOVED"
	case ItemRemoved:
		return "ITEM_REMOVED"
	case Flushed:
		return "FLUSHED"
	default:
		return "UNKNOWN"
	}
}

// Event - Describes one structural change. Key and Value refer to the item concerned and are only valid
// for the duration of the Notify call.
type Event[V any] struct {
	Type  EventType
	From  Location
	To    Location
	Key   []byte
	Value V
	Count int
}

// Notifier - Receives events synchronously, before the operation causing them returns. Notify runs while
// the index lock is held, it must return quickly and must not call back into the index.
type Notifier[V any] interface {
	Notify(event Event[V])
}

// NotifierFunc - Adapts an ordinary function to the Notifier interface
type NotifierFunc[V any] func(event Event[V])

// Notify - Calls F(event)
func (F NotifierFunc[V]) Notify(event Event[V]) {
	F(event)
}

// notify - Delivers an event if a notifier was given
func (X *Index[V]) notify(event Event[V]) {
	if X.notifier != nil {
		X.notifier.Notify(event)
	}
}
