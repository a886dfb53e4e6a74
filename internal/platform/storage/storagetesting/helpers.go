package storagetesting

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/MichalMitros/crm-console/internal/platform/storage"
	pgmodels "github.com/MichalMitros/crm-console/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/crm-console/internal/platform/storage/gen/postgres/public/table"
	"github.com/go-jet/jet/v2/qrm"

	_ "github.com/lib/pq"
)

// Open opens connection to DB and makes sure schema exists.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("please provide database URL via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	if err := storage.NewPostgres(db).Migrate(context.Background()); err != nil {
		t.Fatal("can't migrate database", err)
	}

	return db
}

// InsertStatsSnapshots is a helper test function to insert stats snapshots.
func InsertStatsSnapshots(t *testing.T, exc qrm.Executable, snapshots ...pgmodels.StatsSnapshot) {
	t.Helper()

	if len(snapshots) == 0 {
		return
	}

	toInsert := make([]pgmodels.StatsSnapshot, 0, len(snapshots))
	toInsert = append(toInsert, snapshots...)

	_, err := table.StatsSnapshot.INSERT(table.StatsSnapshot.MutableColumns).MODELS(toInsert).Exec(exc)
	if err != nil {
		t.Fatal("can't insert stats snapshots", err)
	}
}

// GetStatsSnapshots is a helper test function to get all stats snapshots ordered by ID.
func GetStatsSnapshots(t *testing.T, queryable qrm.Queryable) []pgmodels.StatsSnapshot {
	t.Helper()

	snapshots := []pgmodels.StatsSnapshot{}
	err := table.StatsSnapshot.SELECT(table.StatsSnapshot.AllColumns).
		WHERE(table.StatsSnapshot.ID.IS_NOT_NULL()).
		ORDER_BY(table.StatsSnapshot.ID.ASC()).
		Query(queryable, &snapshots)
	if err != nil {
		t.Fatal("can't get stats snapshots", err)
	}

	return snapshots
}

// CleanupData is a helper test function to delete all stored data.
func CleanupData(t *testing.T, exc qrm.Executable) {
	t.Helper()

	_, err := table.StatsSnapshot.DELETE().WHERE(table.StatsSnapshot.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete stats snapshots data", err)
	}
}
