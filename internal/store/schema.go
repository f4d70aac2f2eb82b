package store

import "database/sql"

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS menu_order (
			position INTEGER PRIMARY KEY,
			label TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS refresh_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL DEFAULT '',
			refreshed_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_refresh_log_at ON refresh_log(refreshed_at);
	`)
	return err
}
