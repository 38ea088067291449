package sqlstore

import (
	"context"

	"github.com/cockroachdb/errors"
)

// PostgreSQL gets the same tables from db/migrations.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		player_id          INTEGER PRIMARY KEY,
		name               TEXT NOT NULL,
		position           TEXT,
		height             TEXT,
		weight             INTEGER,
		current_team       TEXT,
		birth_date         TEXT,
		birth_place        TEXT,
		death_date         TEXT,
		college            TEXT,
		high_school        TEXT,
		draft_team         TEXT,
		draft_round        INTEGER,
		draft_position     INTEGER,
		draft_year         INTEGER,
		current_salary     INTEGER,
		hof_induction_year INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS game_stats (
		player_id                       INTEGER NOT NULL,
		game_id                         TEXT NOT NULL,
		year                            INTEGER NOT NULL,
		date                            TEXT NOT NULL,
		game_number                     INTEGER NOT NULL DEFAULT 0,
		age                             TEXT NOT NULL DEFAULT '',
		team                            TEXT NOT NULL DEFAULT '',
		game_location                   TEXT NOT NULL,
		opponent                        TEXT NOT NULL DEFAULT '',
		game_won                        BOOLEAN NOT NULL DEFAULT 0,
		player_team_score               INTEGER NOT NULL DEFAULT 0,
		opponent_score                  INTEGER NOT NULL DEFAULT 0,
		passing_attempts                INTEGER NOT NULL DEFAULT 0,
		passing_completions             INTEGER NOT NULL DEFAULT 0,
		passing_yards                   INTEGER NOT NULL DEFAULT 0,
		passing_rating                  REAL NOT NULL DEFAULT 0,
		passing_touchdowns              INTEGER NOT NULL DEFAULT 0,
		passing_interceptions           INTEGER NOT NULL DEFAULT 0,
		passing_sacks                   INTEGER NOT NULL DEFAULT 0,
		passing_sacks_yards_lost        INTEGER NOT NULL DEFAULT 0,
		rushing_attempts                INTEGER NOT NULL DEFAULT 0,
		rushing_yards                   INTEGER NOT NULL DEFAULT 0,
		rushing_touchdowns              INTEGER NOT NULL DEFAULT 0,
		receiving_targets               INTEGER NOT NULL DEFAULT 0,
		receiving_receptions            INTEGER NOT NULL DEFAULT 0,
		receiving_yards                 INTEGER NOT NULL DEFAULT 0,
		receiving_touchdowns            INTEGER NOT NULL DEFAULT 0,
		kick_return_attempts            INTEGER NOT NULL DEFAULT 0,
		kick_return_yards               INTEGER NOT NULL DEFAULT 0,
		kick_return_touchdowns          INTEGER NOT NULL DEFAULT 0,
		punt_return_attempts            INTEGER NOT NULL DEFAULT 0,
		punt_return_yards               INTEGER NOT NULL DEFAULT 0,
		punt_return_touchdowns          INTEGER NOT NULL DEFAULT 0,
		defense_sacks                   REAL NOT NULL DEFAULT 0,
		defense_tackles                 INTEGER NOT NULL DEFAULT 0,
		defense_tackle_assists          INTEGER NOT NULL DEFAULT 0,
		defense_interceptions           INTEGER NOT NULL DEFAULT 0,
		defense_interception_yards      INTEGER NOT NULL DEFAULT 0,
		defense_interception_touchdowns INTEGER NOT NULL DEFAULT 0,
		defense_safeties                INTEGER NOT NULL DEFAULT 0,
		point_after_attempts            INTEGER NOT NULL DEFAULT 0,
		point_after_makes               INTEGER NOT NULL DEFAULT 0,
		field_goal_attempts             INTEGER NOT NULL DEFAULT 0,
		field_goal_makes                INTEGER NOT NULL DEFAULT 0,
		punting_attempts                INTEGER NOT NULL DEFAULT 0,
		punting_yards                   INTEGER NOT NULL DEFAULT 0,
		punting_blocked                 INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (player_id, game_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_game_stats_year ON game_stats (year)`,
}

func ensureSQLiteSchema(ctx context.Context, db *DB) error {
	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "create sqlite schema")
		}
	}
	return nil
}
