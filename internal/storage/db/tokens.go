package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// StoredToken is an API token saved for a remote host
type StoredToken struct {
	Host      string
	Token     string
	UpdatedAt time.Time
}

// SaveToken stores or replaces the token for host
func (d *DB) SaveToken(host, token string) error {
	_, err := d.Exec(`
		INSERT INTO api_tokens (host, token, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(host) DO UPDATE SET
			token = excluded.token,
			updated_at = excluded.updated_at
	`, host, token, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

// GetToken returns the token for host, or nil when none is stored
func (d *DB) GetToken(host string) (*StoredToken, error) {
	var (
		st      StoredToken
		updated int64
	)
	err := d.QueryRow("SELECT host, token, updated_at FROM api_tokens WHERE host = ?", host).
		Scan(&st.Host, &st.Token, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting token: %w", err)
	}
	st.UpdatedAt = time.Unix(updated, 0)
	return &st, nil
}

// DeleteToken removes the token for host
func (d *DB) DeleteToken(host string) error {
	if _, err := d.Exec("DELETE FROM api_tokens WHERE host = ?", host); err != nil {
		return fmt.Errorf("deleting token: %w", err)
	}
	return nil
}
