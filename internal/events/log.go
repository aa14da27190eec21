package events

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// EventLog is the sqlite-backed record of published events. The websocket
// replays from it and GET /jobs/{id}/events reads it.
type EventLog struct {
	db  *sql.DB
	now func() time.Time
}

// NewEventLog returns an EventLog over db, which must carry the events table.
func NewEventLog(db *sql.DB) *EventLog {
	return &EventLog{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Append stores e with its JSON encoding as payload and returns the row id.
func (l *EventLog) Append(ctx context.Context, e Event) (int64, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", e.EventType(), err)
	}

	res, err := l.db.ExecContext(ctx,
		`INSERT INTO events (event_type, entity_type, entity_id, payload, occurred_at) VALUES (?, ?, ?, ?, ?)`,
		e.EventType(), e.EntityType(), e.EntityID(), string(payload), e.OccurredAt().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("append %s: %w", e.EventType(), err)
	}
	return res.LastInsertId()
}

// RawEvent is a stored event before Registry.Unmarshal restores its type.
type RawEvent struct {
	ID         int64
	EventType  string
	EntityType string
	EntityID   string
	Payload    string
	OccurredAt time.Time
}

// Filter narrows Query. Zero fields match everything.
type Filter struct {
	Since      time.Time
	EntityType string
	EntityID   string
	Limit      int // keeps the newest Limit rows
}

// Query returns matching events in insertion order.
func (l *EventLog) Query(ctx context.Context, f Filter) ([]RawEvent, error) {
	var where []string
	var args []any
	if !f.Since.IsZero() {
		where = append(where, "occurred_at >= ?")
		args = append(args, f.Since.UTC())
	}
	if f.EntityType != "" {
		where = append(where, "entity_type = ?")
		args = append(args, f.EntityType)
	}
	if f.EntityID != "" {
		where = append(where, "entity_id = ?")
		args = append(args, f.EntityID)
	}

	q := "SELECT id, event_type, entity_type, entity_id, payload, occurred_at FROM events"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	if f.Limit > 0 {
		q += " ORDER BY id DESC LIMIT ?"
		args = append(args, f.Limit)
	} else {
		q += " ORDER BY id"
	}

	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []RawEvent
	for rows.Next() {
		var e RawEvent
		if err := rows.Scan(&e.ID, &e.EventType, &e.EntityType, &e.EntityID, &e.Payload, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if f.Limit > 0 {
		slices.Reverse(out)
	}
	return out, nil
}

// Since returns every event at or after t.
func (l *EventLog) Since(ctx context.Context, t time.Time) ([]RawEvent, error) {
	return l.Query(ctx, Filter{Since: t})
}

// ForEntity returns the history of one job or history entry.
func (l *EventLog) ForEntity(ctx context.Context, entityType, entityID string) ([]RawEvent, error) {
	if entityID == "" {
		return nil, nil
	}
	return l.Query(ctx, Filter{EntityType: entityType, EntityID: entityID})
}

// Prune deletes events older than retention. A non-positive retention keeps
// everything.
func (l *EventLog) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	res, err := l.db.ExecContext(ctx, `DELETE FROM events WHERE occurred_at < ?`, l.now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("prune events: %w", err)
	}
	return res.RowsAffected()
}
