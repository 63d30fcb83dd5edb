package store

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS reservations (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			title         TEXT NOT NULL,
			owner_name    TEXT NOT NULL DEFAULT '',
			owner_email   TEXT NOT NULL DEFAULT '',
			resource_id   TEXT NOT NULL DEFAULT '',
			resource_name TEXT NOT NULL DEFAULT '',
			start_at      DATETIME NOT NULL,
			end_at        DATETIME NOT NULL,
			created_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
			CHECK(start_at < end_at)
		);

		CREATE INDEX IF NOT EXISTS idx_reservations_range ON reservations(start_at, end_at);
		CREATE INDEX IF NOT EXISTS idx_reservations_resource ON reservations(resource_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating reservations table: %w", err)
	}

	return nil
}
