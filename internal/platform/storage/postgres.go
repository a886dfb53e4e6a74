package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/MichalMitros/crm-console/internal/platform/models"
	"github.com/MichalMitros/crm-console/internal/platform/storage/gen/postgres/public/table"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/crm-console/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
)

// DefaultHistoryLimit is number of snapshots listed when limit is not positive.
const DefaultHistoryLimit = 30

//go:embed schema.sql
var schema string

// Postgres is storage for dashboard stats history.
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB) Postgres {
	return Postgres{
		db: db,
	}
}

// Migrate creates tables used by Postgres if they don't exist.
func (p Postgres) Migrate(ctx context.Context) error {
	return runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("can't apply schema: %w", err)
		}
		return nil
	})
}

// RecordStats stores stats taken at provided time.
func (p Postgres) RecordStats(ctx context.Context, takenAt time.Time, stats models.Stats) error {
	snapshot := toDBStatsSnapshot(takenAt, stats)

	_, err := table.StatsSnapshot.INSERT(table.StatsSnapshot.MutableColumns).
		MODEL(snapshot).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't insert stats snapshot: %w", err)
	}

	return nil
}

// ListStats returns up to limit latest snapshots, newest first.
func (p Postgres) ListStats(ctx context.Context, limit int) ([]models.StatsSnapshot, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	snapshots := []pgmodels.StatsSnapshot{}
	err := table.StatsSnapshot.SELECT(table.StatsSnapshot.AllColumns).
		ORDER_BY(
			table.StatsSnapshot.TakenAt.DESC(),
			table.StatsSnapshot.ID.DESC(),
		).
		LIMIT(int64(limit)).
		QueryContext(ctx, p.db, &snapshots)
	if err != nil {
		return nil, fmt.Errorf("can't select stats snapshots: %w", err)
	}

	return lo.Map(snapshots, func(s pgmodels.StatsSnapshot, _ int) models.StatsSnapshot {
		return fromDBStatsSnapshot(s)
	}), nil
}

// PruneStats deletes snapshots taken before provided time and returns number of deleted snapshots.
func (p Postgres) PruneStats(ctx context.Context, before time.Time) (int64, error) {
	res, err := table.StatsSnapshot.DELETE().
		WHERE(table.StatsSnapshot.TakenAt.LT(pg.TimestampzT(before))).
		ExecContext(ctx, p.db)
	if err != nil {
		return 0, fmt.Errorf("can't delete stats snapshots: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("can't get number of deleted stats snapshots: %w", err)
	}

	return deleted, nil
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}
