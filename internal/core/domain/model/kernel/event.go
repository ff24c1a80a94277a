package kernel

// Event is a fact recorded by an aggregate and published once the unit of
// work that produced it has committed.
type Event interface {
	// EventName identifies the kind of event, e.g. "order.status_changed".
	EventName() string

	// EventKey partitions events so that those of one aggregate stay ordered.
	EventKey() string
}
