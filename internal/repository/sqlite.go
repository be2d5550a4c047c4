package repository

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteDB creates and initializes a SQLite database
func NewSQLiteDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}

	// Create tables
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	schema := `
	-- Hero carousel slides
	CREATE TABLE IF NOT EXISTS hero_slides (
		id TEXT PRIMARY KEY,
		media_url TEXT NOT NULL,
		media_kind TEXT NOT NULL DEFAULT 'image',
		cta_label TEXT NOT NULL DEFAULT '',
		cta_url TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_hero_slides_position ON hero_slides(position);

	-- Featured posts
	CREATE TABLE IF NOT EXISTS featured_posts (
		id TEXT PRIMARY KEY,
		media_url TEXT NOT NULL,
		media_kind TEXT NOT NULL DEFAULT 'image',
		caption TEXT NOT NULL DEFAULT '',
		link TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_featured_posts_position ON featured_posts(position);

	-- Landing page stats
	CREATE TABLE IF NOT EXISTS stats (
		id TEXT PRIMARY KEY,
		icon TEXT NOT NULL DEFAULT 'star',
		title TEXT NOT NULL,
		value TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_stats_position ON stats(position);

	-- Countries
	CREATE TABLE IF NOT EXISTS countries (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_countries_name ON countries(name);

	-- Albums; images is one JSON array value per row
	CREATE TABLE IF NOT EXISTS albums (
		id TEXT PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		cover_url TEXT NOT NULL DEFAULT '',
		images TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_albums_slug ON albums(slug);

	-- News items
	CREATE TABLE IF NOT EXISTS news_items (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		body TEXT NOT NULL DEFAULT '',
		media_url TEXT NOT NULL DEFAULT '',
		published_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_news_published ON news_items(published_at);

	-- Sponsors
	CREATE TABLE IF NOT EXISTS sponsors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		logo_url TEXT NOT NULL,
		link TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sponsors_position ON sponsors(position);

	-- Contestant registrations; photo_paths is one JSON array value
	CREATE TABLE IF NOT EXISTS registrations (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL,
		photo_paths TEXT NOT NULL DEFAULT '[]',
		submitted_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_registrations_email ON registrations(email);
	CREATE INDEX IF NOT EXISTS idx_registrations_submitted ON registrations(submitted_at);

	-- Admin sessions (token hashes only)
	CREATE TABLE IF NOT EXISTS admin_sessions (
		id TEXT PRIMARY KEY,
		token_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		expires_at DATETIME NOT NULL,
		last_activity_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		ip_address TEXT,
		is_active INTEGER NOT NULL DEFAULT 1
	);

	CREATE INDEX IF NOT EXISTS idx_admin_sessions_token_hash ON admin_sessions(token_hash);
	CREATE INDEX IF NOT EXISTS idx_admin_sessions_expires ON admin_sessions(expires_at);

	-- Admin passcode hash (single row)
	CREATE TABLE IF NOT EXISTS admin_credentials (
		id INTEGER PRIMARY KEY DEFAULT 1,
		passcode_hash TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CHECK (id = 1)
	);
	`

	_, err := db.Exec(schema)
	return err
}
