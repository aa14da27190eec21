// Package presets stores named naming schemes: a fixed set of built-ins for
// common media servers plus user presets kept in SQLite.
package presets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrPresetNotFound is returned when no preset has the requested name.
	ErrPresetNotFound = errors.New("preset not found")
	// ErrBuiltinPreset is returned when a built-in preset would be removed or renamed.
	ErrBuiltinPreset = errors.New("built-in presets cannot be modified")
	// ErrInvalidPreset is returned for an empty name or scheme.
	ErrInvalidPreset = errors.New("preset name and scheme are required")
)

// Prefix marks a naming scheme that refers to a preset by name.
const Prefix = "preset:"

// Preset is a named naming scheme.
type Preset struct {
	Name    string `json:"name"`
	Scheme  string `json:"scheme"`
	BuiltIn bool   `json:"builtin"`
}

// builtins are always listed first, in this order.
var builtins = []Preset{
	{Name: "Plex - Movie", Scheme: "{n} ({y})"},
	{Name: "Plex - Movie (folder)", Scheme: "{n} ({y})/{n} ({y})"},
	{Name: "Plex - TV", Scheme: "{n}/Season {s}/{n} - {s00e00} - {t}"},
	{Name: "Plex - TV (no title)", Scheme: "{n}/Season {s}/{n} - {s00e00}"},
	{Name: "Kodi - Movie", Scheme: "{n} ({y})/{n} ({y})"},
	{Name: "Kodi - TV", Scheme: "{n}/Season {s}/{n} S{s00e00}"},
	{Name: "Jellyfin - Movie", Scheme: "{n} ({y})"},
	{Name: "Jellyfin - TV", Scheme: "{n}/Season {s}/{s00e00} - {t}"},
	{Name: "FileBot Style", Scheme: "{n}.{y}.{vf}.{vc}.{af}"},
	{Name: "FileBot Style (TV)", Scheme: "{n}/Season {s}/{n}.{s00e00}.{vf}.{vc}.{af}"},
	{Name: "Anime - Simple", Scheme: "[{n}] {s00e00} - {t}"},
	{Name: "Anime - Detailed", Scheme: "[{n}] {s00e00} - {t} [{vf}][{vc}]"},
	{Name: "Simple", Scheme: "{n} ({y})"},
	{Name: "Detailed", Scheme: "{n} ({y}) [{vf}] [{vc}] [{af}] [{ac}]"},
	{Name: "Technical", Scheme: "{n}.{y}.{vf}.{vc}.{af}.{ac}"},
}

func builtin(name string) (Preset, bool) {
	for _, p := range builtins {
		if p.Name == name {
			p.BuiltIn = true
			return p, true
		}
	}
	return Preset{}, false
}

// Store merges built-in presets with user presets. A user preset with a
// built-in's name overrides it.
type Store struct {
	db *sql.DB
}

// NewStore creates a preset store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// List returns built-ins in their fixed order followed by user presets
// sorted by name. Overridden built-ins keep their position.
func (s *Store) List(ctx context.Context) ([]Preset, error) {
	user, err := s.userPresets(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(user))
	out := make([]Preset, 0, len(builtins)+len(user))
	for _, b := range builtins {
		p := b
		p.BuiltIn = true
		for _, u := range user {
			if u.Name == b.Name {
				p.Scheme = u.Scheme
				seen[u.Name] = true
			}
		}
		out = append(out, p)
	}
	for _, u := range user {
		if !seen[u.Name] {
			out = append(out, u)
		}
	}
	return out, nil
}

// Get returns the preset named name.
func (s *Store) Get(ctx context.Context, name string) (*Preset, error) {
	var p Preset
	err := s.db.QueryRowContext(ctx, `SELECT name, scheme FROM presets WHERE name = ?`, name).
		Scan(&p.Name, &p.Scheme)
	if err == nil {
		_, p.BuiltIn = builtin(name)
		return &p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get preset: %w", err)
	}
	if b, ok := builtin(name); ok {
		return &b, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
}

// Save creates or replaces a user preset.
func (s *Store) Save(ctx context.Context, name, scheme string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(scheme) == "" {
		return ErrInvalidPreset
	}
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO presets (name, scheme, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET scheme = excluded.scheme, updated_at = excluded.updated_at`,
		name, scheme, now, now,
	)
	if err != nil {
		return fmt.Errorf("save preset: %w", err)
	}
	return nil
}

// Delete removes a user preset. Deleting an override restores the built-in;
// deleting a plain built-in fails with ErrBuiltinPreset.
func (s *Store) Delete(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}
	if n, _ := result.RowsAffected(); n > 0 {
		return nil
	}
	if _, ok := builtin(name); ok {
		return fmt.Errorf("%w: %s", ErrBuiltinPreset, name)
	}
	return fmt.Errorf("%w: %s", ErrPresetNotFound, name)
}

// Rename gives a user preset a new name, replacing any user preset already
// using it.
func (s *Store) Rename(ctx context.Context, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrInvalidPreset
	}
	p, err := s.Get(ctx, oldName)
	if err != nil {
		return err
	}
	if p.BuiltIn {
		return fmt.Errorf("%w: %s", ErrBuiltinPreset, oldName)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM presets WHERE name = ?`, newName); err != nil {
		return fmt.Errorf("rename preset: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE presets SET name = ?, updated_at = ? WHERE name = ?`,
		newName, time.Now().UTC(), oldName); err != nil {
		return fmt.Errorf("rename preset: %w", err)
	}
	return tx.Commit()
}

// Resolve expands "preset:<name>" to the preset's scheme. Other schemes are
// returned unchanged.
func (s *Store) Resolve(ctx context.Context, scheme string) (string, error) {
	name, ok := strings.CutPrefix(scheme, Prefix)
	if !ok {
		return scheme, nil
	}
	p, err := s.Get(ctx, strings.TrimSpace(name))
	if err != nil {
		return "", err
	}
	return p.Scheme, nil
}

func (s *Store) userPresets(ctx context.Context) ([]Preset, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, scheme FROM presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	var out []Preset
	for rows.Next() {
		var p Preset
		if err := rows.Scan(&p.Name, &p.Scheme); err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
