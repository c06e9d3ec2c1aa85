package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"samm/internal/domain"
)

// RecordInstall appends an install attempt to the history
func (d *DB) RecordInstall(ev domain.InstallEvent) error {
	if ev.RecordedAt.IsZero() {
		ev.RecordedAt = time.Now()
	}
	_, err := d.Exec(`
		INSERT INTO install_events (game_id, component, kind, source, version, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ev.GameID, ev.Component, string(ev.Kind), string(ev.Source), ev.Version, ev.RecordedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("recording install of %s: %w", ev.Component, err)
	}
	return nil
}

// ListInstalls returns a game's install events, newest first. A limit of 0
// returns all of them.
func (d *DB) ListInstalls(gameID string, limit int) ([]domain.InstallEvent, error) {
	query := `
		SELECT game_id, component, kind, source, version, recorded_at
		FROM install_events
		WHERE game_id = ?
		ORDER BY id DESC`
	args := []any{gameID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing installs: %w", err)
	}
	defer rows.Close()

	var events []domain.InstallEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// LatestInstall returns the most recent event for a component, or nil
func (d *DB) LatestInstall(gameID, component string) (*domain.InstallEvent, error) {
	row := d.QueryRow(`
		SELECT game_id, component, kind, source, version, recorded_at
		FROM install_events
		WHERE game_id = ? AND component = ?
		ORDER BY id DESC
		LIMIT 1
	`, gameID, component)

	ev, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// PruneInstalls keeps the newest keep events per game and deletes the rest
func (d *DB) PruneInstalls(gameID string, keep int) (int64, error) {
	res, err := d.Exec(`
		DELETE FROM install_events
		WHERE game_id = ? AND id NOT IN (
			SELECT id FROM install_events WHERE game_id = ? ORDER BY id DESC LIMIT ?
		)
	`, gameID, gameID, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning installs: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (domain.InstallEvent, error) {
	var (
		ev         domain.InstallEvent
		kind, src  string
		recordedAt string
	)
	if err := s.Scan(&ev.GameID, &ev.Component, &kind, &src, &ev.Version, &recordedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ev, err
		}
		return ev, fmt.Errorf("scanning install event: %w", err)
	}
	ev.Kind = domain.ComponentKind(kind)
	ev.Source = domain.InstallSource(src)

	t, err := time.Parse(time.RFC3339Nano, recordedAt)
	if err != nil {
		return ev, fmt.Errorf("parsing recorded_at %q: %w", recordedAt, err)
	}
	ev.RecordedAt = t
	return ev, nil
}
