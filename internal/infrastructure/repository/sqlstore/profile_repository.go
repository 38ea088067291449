package sqlstore

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pfr-scraper/internal/domain/player"
	qb "github.com/riskibarqy/pfr-scraper/internal/platform/querybuilder"
)

const (
	profilesTable = "profiles"
	insertBatch   = 200
)

type ProfileRepository struct {
	db *DB
}

func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// ReplaceAll swaps the table contents for profiles in one transaction.
func (r *ProfileRepository) ReplaceAll(ctx context.Context, profiles []player.Profile) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return r.replace(ctx, tx, profiles)
	})
}

func (r *ProfileRepository) replace(ctx context.Context, tx *sqlx.Tx, profiles []player.Profile) error {
	query, args, err := qb.DeleteFrom(profilesTable).Format(r.db.format).ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete profiles query")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "delete profiles")
	}

	rows := make([]profileTableModel, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, profileToRow(p))
	}
	for start := 0; start < len(rows); start += insertBatch {
		end := min(start+insertBatch, len(rows))
		query, args, err := qb.InsertModels(profilesTable, rows[start:end], r.db.format)
		if err != nil {
			return errors.Wrap(err, "build insert profiles query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "insert profiles %d..%d", start, end)
		}
	}
	return nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]player.Profile, error) {
	cols, err := qb.Columns(profileTableModel{})
	if err != nil {
		return nil, err
	}
	query, args, err := qb.Select(cols...).From(profilesTable).
		OrderBy("player_id").
		Format(r.db.format).
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select profiles query")
	}

	var rows []profileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select profiles")
	}

	out := make([]player.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
