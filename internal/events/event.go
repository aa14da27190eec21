// Package events carries job activity between the runner and its observers
// (websocket clients, metrics, the persisted event log).
package events

import "time"

// Entities an event can be about.
const (
	EntityJob     = "job"
	EntityHistory = "history"
)

// Event types. The prefix names the entity.
const (
	EventJobSubmitted = "job.submitted"
	EventJobProgress  = "job.progress"
	EventJobFile      = "job.file"
	EventJobFinished  = "job.finished"
	EventFileRenamed  = "file.renamed"
	EventFileUndone   = "file.undone"
)

// Event is anything published on the Bus.
type Event interface {
	EventType() string
	EntityType() string
	EntityID() string
	OccurredAt() time.Time
}

// BaseEvent is embedded by every concrete event and supplies the Event
// methods. Its JSON fields are shared by all websocket messages.
type BaseEvent struct {
	Type      string    `json:"type"`
	Entity    string    `json:"entity_type"`
	ID        string    `json:"entity_id"`
	Timestamp time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EntityType() string    { return e.Entity }
func (e BaseEvent) EntityID() string      { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent stamps an event about entity/id with the current UTC time.
func NewBaseEvent(typ, entity, id string) BaseEvent {
	return BaseEvent{Type: typ, Entity: entity, ID: id, Timestamp: time.Now().UTC()}
}

// JobEvent is shorthand for NewBaseEvent(typ, EntityJob, jobID).
func JobEvent(typ, jobID string) BaseEvent {
	return NewBaseEvent(typ, EntityJob, jobID)
}
