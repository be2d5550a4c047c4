package repository

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// NewPostgresDB creates and initializes a PostgreSQL database connection
func NewPostgresDB(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	// Create tables
	if err := createPostgresTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func createPostgresTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS hero_slides (
		id TEXT PRIMARY KEY,
		media_url TEXT NOT NULL,
		media_kind TEXT NOT NULL DEFAULT 'image',
		cta_label TEXT NOT NULL DEFAULT '',
		cta_url TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_hero_slides_position ON hero_slides(position);

	CREATE TABLE IF NOT EXISTS featured_posts (
		id TEXT PRIMARY KEY,
		media_url TEXT NOT NULL,
		media_kind TEXT NOT NULL DEFAULT 'image',
		caption TEXT NOT NULL DEFAULT '',
		link TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_featured_posts_position ON featured_posts(position);

	CREATE TABLE IF NOT EXISTS stats (
		id TEXT PRIMARY KEY,
		icon TEXT NOT NULL DEFAULT 'star',
		title TEXT NOT NULL,
		value TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_stats_position ON stats(position);

	CREATE TABLE IF NOT EXISTS countries (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_countries_name ON countries(name);

	CREATE TABLE IF NOT EXISTS albums (
		id TEXT PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		cover_url TEXT NOT NULL DEFAULT '',
		images TEXT NOT NULL DEFAULT '[]',
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_albums_slug ON albums(slug);

	CREATE TABLE IF NOT EXISTS news_items (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		body TEXT NOT NULL DEFAULT '',
		media_url TEXT NOT NULL DEFAULT '',
		published_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_news_published ON news_items(published_at);

	CREATE TABLE IF NOT EXISTS sponsors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		logo_url TEXT NOT NULL,
		link TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_sponsors_position ON sponsors(position);

	CREATE TABLE IF NOT EXISTS registrations (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL,
		photo_paths TEXT NOT NULL DEFAULT '[]',
		submitted_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_registrations_email ON registrations(email);
	CREATE INDEX IF NOT EXISTS idx_registrations_submitted ON registrations(submitted_at);

	CREATE TABLE IF NOT EXISTS admin_sessions (
		id TEXT PRIMARY KEY,
		token_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		expires_at TIMESTAMP NOT NULL,
		last_activity_at TIMESTAMP NOT NULL DEFAULT NOW(),
		ip_address TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	);

	CREATE INDEX IF NOT EXISTS idx_admin_sessions_token_hash ON admin_sessions(token_hash);
	CREATE INDEX IF NOT EXISTS idx_admin_sessions_expires ON admin_sessions(expires_at);

	CREATE TABLE IF NOT EXISTS admin_credentials (
		id INTEGER PRIMARY KEY DEFAULT 1,
		passcode_hash TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
		CHECK (id = 1)
	);
	`

	_, err := db.Exec(schema)
	return err
}
