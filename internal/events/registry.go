package events

import (
	"fmt"
	"sync"

	"github.com/goccy/go-json"
)

// Registry decodes stored events back into their concrete types.
type Registry struct {
	decoders map[string]func(payload []byte) (Event, error)
}

// NewRegistry returns a registry that knows no types.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]func([]byte) (Event, error))}
}

// Register teaches r to decode eventType payloads as *T.
func Register[T any, PT interface {
	*T
	Event
}](r *Registry, eventType string) {
	r.decoders[eventType] = func(payload []byte) (Event, error) {
		var v T
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return PT(&v), nil
	}
}

// Unmarshal restores raw as its registered concrete type.
func (r *Registry) Unmarshal(raw RawEvent) (Event, error) {
	decode, ok := r.decoders[raw.EventType]
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", raw.EventType)
	}
	e, err := decode([]byte(raw.Payload))
	if err != nil {
		return nil, fmt.Errorf("unmarshal event payload (%s #%d): %w", raw.EventType, raw.ID, err)
	}
	return e, nil
}

// DefaultRegistry knows every job and history event. It is built once.
var DefaultRegistry = sync.OnceValue(func() *Registry {
	r := NewRegistry()
	Register[JobSubmitted](r, EventJobSubmitted)
	Register[JobProgress](r, EventJobProgress)
	Register[JobFile](r, EventJobFile)
	Register[JobFinished](r, EventJobFinished)
	Register[FileRenamed](r, EventFileRenamed)
	Register[FileUndone](r, EventFileUndone)
	return r
})
