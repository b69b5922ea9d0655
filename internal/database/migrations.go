package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		google_id VARCHAR(255) UNIQUE NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL DEFAULT '',
		nickname VARCHAR(255) NOT NULL DEFAULT '',
		year INTEGER CHECK (year BETWEEN 1 AND 4),
		department VARCHAR(255) NOT NULL DEFAULT '',
		profile_completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	// author_id deliberately has no ON DELETE CASCADE: notes outlive their
	// author through this API's surface.
	`CREATE TABLE IF NOT EXISTS notes (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		text TEXT NOT NULL,
		category VARCHAR(50) NOT NULL DEFAULT 'For You',
		author_id UUID NOT NULL REFERENCES users(id),
		author_nickname VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_category_created_at ON notes(category, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_author_id ON notes(author_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
