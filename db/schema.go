package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema создает все таблицы приложения.
// Можно вызывать повторно - везде IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            SERIAL PRIMARY KEY,
    username      TEXT NOT NULL,
    discord_name  TEXT,
    role          TEXT NOT NULL DEFAULT 'player' CHECK (role IN ('admin', 'organizer', 'player')),
    password_hash TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT users_username_key UNIQUE (username)
);

CREATE TABLE IF NOT EXISTS badges (
    id           SERIAL PRIMARY KEY,
    code         TEXT NOT NULL,
    display_name TEXT NOT NULL,
    hue          INTEGER,
    image_key    TEXT,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT badges_code_key UNIQUE (code)
);

CREATE TABLE IF NOT EXISTS badge_managers (
    badge_id INTEGER NOT NULL REFERENCES badges(id) ON DELETE CASCADE,
    user_id  INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    CONSTRAINT badge_managers_pkey PRIMARY KEY (badge_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_badge_managers_user_id ON badge_managers(user_id);

CREATE TABLE IF NOT EXISTS badge_owners (
    badge_id INTEGER NOT NULL REFERENCES badges(id) ON DELETE CASCADE,
    user_id  INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    count    INTEGER NOT NULL CHECK (count BETWEEN 1 AND 100),
    CONSTRAINT badge_owners_pkey PRIMARY KEY (badge_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_badge_owners_user_id ON badge_owners(user_id);

CREATE TABLE IF NOT EXISTS tournaments (
    id         SERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    status     TEXT NOT NULL DEFAULT 'soon' CHECK (status IN ('soon', 'registration', 'active', 'completed', 'canceled')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tournament_teams (
    id            SERIAL PRIMARY KEY,
    tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
    name          TEXT NOT NULL,
    invite_code   TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT tournament_teams_invite_code_key UNIQUE (invite_code)
);

CREATE INDEX IF NOT EXISTS idx_tournament_teams_tournament_id ON tournament_teams(tournament_id);

CREATE TABLE IF NOT EXISTS tournament_team_members (
    team_id    INTEGER NOT NULL REFERENCES tournament_teams(id) ON DELETE CASCADE,
    user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    is_owner   BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT tournament_team_members_pkey PRIMARY KEY (team_id, user_id)
);

CREATE UNIQUE INDEX IF NOT EXISTS tournament_team_members_one_owner
    ON tournament_team_members(team_id) WHERE is_owner;
`
