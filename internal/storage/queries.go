package storage

const (
	// Postgres
	GetValueQuery = `
		SELECT value
		FROM kv_store
		WHERE key = $1
	`

	UpsertValueQuery = `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	// SQLite
	SQLiteCreateTableQuery = `
		CREATE TABLE IF NOT EXISTS kv_store (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`

	SQLiteGetValueQuery = `SELECT value FROM kv_store WHERE key = ?`

	SQLiteUpsertValueQuery = `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
)
