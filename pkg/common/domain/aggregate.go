package domain

import "github.com/google/uuid"

// AggregateRoot is an Entity that buffers domain events until the caller
// has published them.
type AggregateRoot struct {
	Entity
	version int
	events  []Event
}

func NewAggregateRoot(id uuid.UUID) AggregateRoot {
	return AggregateRoot{Entity: NewEntity(id)}
}

func RestoreAggregateRoot(entity Entity, version int) AggregateRoot {
	return AggregateRoot{Entity: entity, version: version}
}

// Version is the persisted revision, 0 for an aggregate that was never stored.
func (a *AggregateRoot) Version() int { return a.version }

func (a *AggregateRoot) IncrementVersion() { a.version++ }

func (a *AggregateRoot) AddEvent(event Event) {
	a.events = append(a.events, event)
}

// Events returns pending events in emission order. The slice is a copy.
func (a *AggregateRoot) Events() []Event {
	events := make([]Event, len(a.events))
	copy(events, a.events)
	return events
}

func (a *AggregateRoot) ClearEvents() {
	a.events = nil
}

// PullEvents drains the buffer.
func (a *AggregateRoot) PullEvents() []Event {
	events := a.events
	a.events = nil
	return events
}
