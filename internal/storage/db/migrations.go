package db

import "fmt"

var migrations = []func(*DB) error{
	migrateV1,
	migrateV2,
}

func (d *DB) migrate() error {
	if _, err := d.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	var version int
	if err := d.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version); err != nil {
		return fmt.Errorf("getting schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		if err := migrations[i](d); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := d.Exec("INSERT INTO schema_migrations (version) VALUES (?)", i+1); err != nil {
			return fmt.Errorf("recording migration %d: %w", i+1, err)
		}
	}

	return nil
}

// SchemaVersion returns the number of applied migrations
func (d *DB) SchemaVersion() (int, error) {
	var version int
	err := d.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	return version, err
}

func migrateV1(d *DB) error {
	statements := []string{
		`CREATE TABLE install_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			component TEXT NOT NULL,
			kind TEXT NOT NULL,
			source TEXT NOT NULL,
			version TEXT NOT NULL DEFAULT '',
			recorded_at TEXT NOT NULL
		)`,
		`CREATE INDEX idx_install_events_game ON install_events(game_id, component, id)`,
	}

	for _, stmt := range statements {
		if _, err := d.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func migrateV2(d *DB) error {
	// Tokens for remote APIs, keyed by host ("github")
	_, err := d.Exec(`
		CREATE TABLE api_tokens (
			host TEXT PRIMARY KEY,
			token TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	return err
}
