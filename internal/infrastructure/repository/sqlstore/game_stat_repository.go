package sqlstore

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pfr-scraper/internal/domain/gamelog"
	qb "github.com/riskibarqy/pfr-scraper/internal/platform/querybuilder"
)

const gameStatsTable = "game_stats"

type GameStatRepository struct {
	db *DB
}

func NewGameStatRepository(db *DB) *GameStatRepository {
	return &GameStatRepository{db: db}
}

func (r *GameStatRepository) ReplaceAll(ctx context.Context, games []gamelog.GameStat) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return r.replace(ctx, tx, games)
	})
}

func (r *GameStatRepository) replace(ctx context.Context, tx *sqlx.Tx, games []gamelog.GameStat) error {
	query, args, err := qb.DeleteFrom(gameStatsTable).Format(r.db.format).ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete game stats query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "delete game stats")
	}

	rows := make([]gameStatTableModel, 0, len(games))
	for _, g := range games {
		rows = append(rows, gameStatToRow(g))
	}
	for start := 0; start < len(rows); start += insertBatch {
		end := min(start+insertBatch, len(rows))
		query, args, err := qb.InsertModels(gameStatsTable, rows[start:end], r.db.format)
		if err != nil {
			return errors.Wrap(err, "build insert game stats query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "insert game stats %d..%d", start, end)
		}
	}
	return nil
}

// ListByPlayer returns one player's games in season order.
func (r *GameStatRepository) ListByPlayer(ctx context.Context, playerID int64) ([]gamelog.GameStat, error) {
	cols, err := qb.Columns(gameStatTableModel{})
	if err != nil {
		return nil, err
	}
	query, args, err := qb.Select(cols...).From(gameStatsTable).
		Where(qb.Eq("player_id", playerID)).
		OrderBy("year", "date", "game_id").
		Format(r.db.format).
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select game stats query")
	}

	var rows []gameStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrapf(err, "select game stats of player %d", playerID)
	}

	out := make([]gamelog.GameStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GameStatRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := qb.Select("COUNT(*)").From(gameStatsTable).Format(r.db.format).ToSQL()
	if err != nil {
		return 0, errors.Wrap(err, "build count game stats query")
	}
	var n int64
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, errors.Wrap(err, "count game stats")
	}
	return n, nil
}
