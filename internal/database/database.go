package database

import (
	"database/sql"
	"os"

	_ "github.com/lib/pq"
)

// Connect opens the console's local store. Only console state lives here
// (sessions, preferences); every domain entity stays on the backend.
func Connect() (*sql.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "postgres"
	}
	db, err := sql.Open(driver, os.Getenv("DB_CONNECTION_STRING"))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the local tables. Statements are kept portable so tests
// can run against an in-memory sqlite database.
func Migrate(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			expires_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS preferences (
			session_id TEXT PRIMARY KEY,
			theme TEXT NOT NULL DEFAULT 'system',
			compact BOOLEAN NOT NULL DEFAULT FALSE
		)`,
	}

	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			return err
		}
	}
	return nil
}
