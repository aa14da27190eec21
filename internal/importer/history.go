// internal/importer/history.go
package importer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/vmunix/renamarr/internal/metadata"
)

// DefaultHistoryLimit is how many entries the store keeps.
const DefaultHistoryLimit = 100

// Operations recorded in history.
const (
	OpMove = "move"
	OpCopy = "copy"
)

// HistoryEntry is one completed rename.
type HistoryEntry struct {
	ID           int64               `json:"id"`
	JobID        string              `json:"job_id,omitempty"`
	OriginalPath string              `json:"original_path"`
	NewPath      string              `json:"new_path"`
	Operation    string              `json:"operation"`
	Match        *metadata.MatchInfo `json:"match_info,omitempty"`
	UndoneAt     *time.Time          `json:"undone_at,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// HistoryStore persists renames and reverses them. Undone entries form the
// redo stack and are discarded when a new rename is recorded.
type HistoryStore struct {
	db    *sql.DB
	ops   FileOps
	limit int

	mu sync.Mutex // serializes undo and redo
}

// NewHistoryStore creates a history store.
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db, limit: DefaultHistoryLimit}
}

// Add records a rename, dropping any redo entries and trimming old ones.
func (s *HistoryStore) Add(ctx context.Context, h *HistoryEntry) error {
	if h.Operation == "" {
		h.Operation = OpMove
	}
	var match any
	if h.Match != nil {
		data, err := json.Marshal(h.Match)
		if err != nil {
			return fmt.Errorf("marshal match: %w", err)
		}
		match = string(data)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM rename_history WHERE undone_at IS NOT NULL"); err != nil {
		return fmt.Errorf("clear redo entries: %w", err)
	}

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO rename_history (job_id, original_path, new_path, operation, match_info, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		h.JobID, h.OriginalPath, h.NewPath, h.Operation, match, now,
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	if err := prune(ctx, tx, s.limit); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	h.ID = id
	h.CreatedAt = now
	return nil
}

// List returns up to limit entries, newest first. limit <= 0 means all.
func (s *HistoryStore) List(ctx context.Context, limit int) ([]*HistoryEntry, error) {
	query := `SELECT id, job_id, original_path, new_path, operation, match_info, undone_at, created_at
		FROM rename_history ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*HistoryEntry
	for rows.Next() {
		h, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return results, nil
}

// CanUndo reports whether an entry is available to undo.
func (s *HistoryStore) CanUndo(ctx context.Context) (bool, error) {
	return s.exists(ctx, "undone_at IS NULL")
}

// CanRedo reports whether an undone entry is available to re-apply.
func (s *HistoryStore) CanRedo(ctx context.Context) (bool, error) {
	return s.exists(ctx, "undone_at IS NOT NULL")
}

// Undo reverses the most recent rename. A moved file is moved back; a copy is deleted.
func (s *HistoryStore) Undo(ctx context.Context) (*HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.first(ctx, "undone_at IS NULL ORDER BY id DESC")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNothingToUndo
	}
	if err != nil {
		return nil, err
	}

	if h.Operation == OpCopy {
		err = s.ops.Remove(h.NewPath)
	} else {
		err = s.ops.Move(h.NewPath, h.OriginalPath)
	}
	if err != nil {
		return nil, fmt.Errorf("undo %d: %w", h.ID, err)
	}

	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx, "UPDATE rename_history SET undone_at = ? WHERE id = ?", now, h.ID); err != nil {
		return nil, fmt.Errorf("mark undone: %w", err)
	}
	h.UndoneAt = &now
	return h, nil
}

// Redo re-applies the most recently undone rename.
func (s *HistoryStore) Redo(ctx context.Context) (*HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.first(ctx, "undone_at IS NOT NULL ORDER BY id ASC")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNothingToRedo
	}
	if err != nil {
		return nil, err
	}

	if h.Operation == OpCopy {
		err = s.ops.Copy(h.OriginalPath, h.NewPath)
	} else {
		err = s.ops.Move(h.OriginalPath, h.NewPath)
	}
	if err != nil {
		return nil, fmt.Errorf("redo %d: %w", h.ID, err)
	}

	if _, err := s.db.ExecContext(ctx, "UPDATE rename_history SET undone_at = NULL WHERE id = ?", h.ID); err != nil {
		return nil, fmt.Errorf("mark redone: %w", err)
	}
	h.UndoneAt = nil
	return h, nil
}

// Prune keeps the newest keep entries and returns how many were removed.
func (s *HistoryStore) Prune(ctx context.Context, keep int) (int64, error) {
	result, err := s.db.ExecContext(ctx, pruneSQL, keep)
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	return result.RowsAffected()
}

const pruneSQL = `DELETE FROM rename_history WHERE id NOT IN (
	SELECT id FROM rename_history ORDER BY id DESC LIMIT ?)`

func prune(ctx context.Context, tx *sql.Tx, keep int) error {
	if _, err := tx.ExecContext(ctx, pruneSQL, keep); err != nil {
		return fmt.Errorf("prune history: %w", err)
	}
	return nil
}

func (s *HistoryStore) exists(ctx context.Context, where string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rename_history WHERE "+where).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count history: %w", err)
	}
	return n > 0, nil
}

func (s *HistoryStore) first(ctx context.Context, clause string) (*HistoryEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, job_id, original_path, new_path, operation, match_info, undone_at, created_at
		FROM rename_history WHERE `+clause+` LIMIT 1`)
	return scanEntry(row)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*HistoryEntry, error) {
	h := &HistoryEntry{}
	var match sql.NullString
	var undone sql.NullTime
	if err := row.Scan(&h.ID, &h.JobID, &h.OriginalPath, &h.NewPath, &h.Operation, &match, &undone, &h.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan history: %w", err)
	}
	if match.Valid && match.String != "" {
		h.Match = &metadata.MatchInfo{}
		if err := json.Unmarshal([]byte(match.String), h.Match); err != nil {
			return nil, fmt.Errorf("decode match: %w", err)
		}
	}
	if undone.Valid {
		t := undone.Time
		h.UndoneAt = &t
	}
	return h, nil
}
