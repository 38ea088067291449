package sqlstore

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pfr-scraper/internal/domain/gamelog"
	"github.com/riskibarqy/pfr-scraper/internal/domain/player"
)

// CorpusStore replaces both exported tables together.
type CorpusStore struct {
	db       *DB
	profiles *ProfileRepository
	games    *GameStatRepository
}

func NewCorpusStore(db *DB) *CorpusStore {
	return &CorpusStore{
		db:       db,
		profiles: NewProfileRepository(db),
		games:    NewGameStatRepository(db),
	}
}

func (s *CorpusStore) Replace(ctx context.Context, profiles []player.Profile, games []gamelog.GameStat) error {
	return withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := s.profiles.replace(ctx, tx, profiles); err != nil {
			return err
		}
		return s.games.replace(ctx, tx, games)
	})
}
