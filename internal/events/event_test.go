package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBaseEvent_ImplementsEvent(t *testing.T) {
	now := time.Now()
	e := BaseEvent{
		Type:      "test.event",
		Entity:    EntityJob,
		ID:        "42",
		Timestamp: now,
	}

	assert.Equal(t, "test.event", e.EventType())
	assert.Equal(t, EntityJob, e.EntityType())
	assert.Equal(t, "42", e.EntityID())
	assert.Equal(t, now, e.OccurredAt())
}

func TestNewBaseEvent(t *testing.T) {
	e := NewBaseEvent(EventJobSubmitted, EntityJob, "abc")

	assert.Equal(t, EventJobSubmitted, e.EventType())
	assert.Equal(t, EntityJob, e.EntityType())
	assert.Equal(t, "abc", e.EntityID())
	assert.False(t, e.OccurredAt().IsZero())
}

func TestJobEvent(t *testing.T) {
	e := JobEvent(EventJobFinished, "job-1")
	assert.Equal(t, EntityJob, e.EntityType())
	assert.Equal(t, "job-1", e.EntityID())
	assert.Equal(t, time.UTC, e.OccurredAt().Location())
}
