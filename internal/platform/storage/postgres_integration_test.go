package storage_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/MichalMitros/crm-console/internal/platform/models"
	"github.com/MichalMitros/crm-console/internal/platform/storage"
	pgmodels "github.com/MichalMitros/crm-console/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/crm-console/internal/platform/storage/storagetesting"
	_ "github.com/lib/pq"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

var loc = func() *time.Location {
	loc, err := time.LoadLocation("Etc/UTC")
	if err != nil {
		panic(err)
	}
	return loc
}()

func TestPostgresIntegration(t *testing.T) {
	suite.Run(t, new(PostgresTestSuite))
}

type PostgresTestSuite struct {
	suite.Suite
	DB *sql.DB
}

func (s *PostgresTestSuite) SetupSuite() {
	s.DB = storagetesting.Open(s.T())
	storagetesting.CleanupData(s.T(), s.DB)
}

func (s *PostgresTestSuite) TearDownSuite() {
	storagetesting.CleanupData(s.T(), s.DB)
	if err := s.DB.Close(); err != nil {
		s.FailNow("close DB", err)
	}
}

func (s *PostgresTestSuite) TestIntegrationRecordStats() {
	defer storagetesting.CleanupData(s.T(), s.DB)
	storagetesting.CleanupData(s.T(), s.DB)

	takenAt := time.Date(2024, time.April, 1, 1, 1, 1, 0, loc)

	tests := map[string]struct {
		stats models.Stats
		want  pgmodels.StatsSnapshot
	}{
		"with products": {
			stats: models.Stats{
				TotalRevenue:   135393.5,
				TotalCustomers: 87,
				ActiveDeals:    142,
				ConversionRate: 32.5,
				TotalProducts:  lo.ToPtr(40),
			},
			want: pgmodels.StatsSnapshot{
				TakenAt:        takenAt,
				TotalRevenue:   135393.5,
				TotalCustomers: 87,
				ActiveDeals:    142,
				ConversionRate: 32.5,
				TotalProducts:  lo.ToPtr(int32(40)),
			},
		},
		"without products": {
			stats: models.Stats{
				TotalRevenue:   10,
				TotalCustomers: 1,
			},
			want: pgmodels.StatsSnapshot{
				TakenAt:        takenAt,
				TotalRevenue:   10,
				TotalCustomers: 1,
			},
		},
	}

	for name, tt := range tests {
		s.Run(name, func() {
			storagetesting.CleanupData(s.T(), s.DB)
			post := storage.NewPostgres(s.DB)

			err := post.RecordStats(context.TODO(), takenAt, tt.stats)

			s.Require().NoError(err, "shouldn't return any error")
			state := storagetesting.GetStatsSnapshots(s.T(), s.DB)
			s.Require().Len(state, 1, "should store one snapshot")
			state[0].ID = 0
			state[0].TakenAt = state[0].TakenAt.In(loc)
			s.Equal(tt.want, state[0], "should store correct snapshot")
		})
	}
}

func (s *PostgresTestSuite) TestIntegrationListStats() {
	defer storagetesting.CleanupData(s.T(), s.DB)
	storagetesting.CleanupData(s.T(), s.DB)

	first := time.Date(2024, time.April, 1, 1, 0, 0, 0, loc)
	storagetesting.InsertStatsSnapshots(s.T(), s.DB,
		pgmodels.StatsSnapshot{TakenAt: first, TotalRevenue: 1},
		pgmodels.StatsSnapshot{TakenAt: first.Add(2 * time.Hour), TotalRevenue: 3, TotalProducts: lo.ToPtr(int32(7))},
		pgmodels.StatsSnapshot{TakenAt: first.Add(time.Hour), TotalRevenue: 2},
	)

	tests := map[string]struct {
		limit       int
		wantRevenue []float64
	}{
		"newest first": {
			limit:       10,
			wantRevenue: []float64{3, 2, 1},
		},
		"limited": {
			limit:       2,
			wantRevenue: []float64{3, 2},
		},
		"default limit": {
			limit:       0,
			wantRevenue: []float64{3, 2, 1},
		},
	}

	for name, tt := range tests {
		s.Run(name, func() {
			post := storage.NewPostgres(s.DB)

			got, err := post.ListStats(context.TODO(), tt.limit)

			s.Require().NoError(err, "shouldn't return any error")
			s.Equal(tt.wantRevenue, lo.Map(got, func(snapshot models.StatsSnapshot, _ int) float64 {
				return snapshot.Stats.TotalRevenue
			}), "should list snapshots in correct order")
			s.Equal(lo.ToPtr(7), got[0].Stats.TotalProducts, "should convert total products")
			s.True(first.Add(2*time.Hour).Equal(got[0].TakenAt), "should keep time of snapshot")
		})
	}
}

func (s *PostgresTestSuite) TestIntegrationPruneStats() {
	defer storagetesting.CleanupData(s.T(), s.DB)
	storagetesting.CleanupData(s.T(), s.DB)

	cutoff := time.Date(2024, time.April, 1, 0, 0, 0, 0, loc)
	storagetesting.InsertStatsSnapshots(s.T(), s.DB,
		pgmodels.StatsSnapshot{TakenAt: cutoff.Add(-48 * time.Hour), TotalRevenue: 1},
		pgmodels.StatsSnapshot{TakenAt: cutoff.Add(-time.Second), TotalRevenue: 2},
		pgmodels.StatsSnapshot{TakenAt: cutoff, TotalRevenue: 3},
		pgmodels.StatsSnapshot{TakenAt: cutoff.Add(time.Hour), TotalRevenue: 4},
	)

	post := storage.NewPostgres(s.DB)

	deleted, err := post.PruneStats(context.TODO(), cutoff)

	s.Require().NoError(err, "shouldn't return any error")
	s.Equal(int64(2), deleted, "should return correct number of deleted snapshots")
	state := storagetesting.GetStatsSnapshots(s.T(), s.DB)
	s.Equal([]float64{3, 4}, lo.Map(state, func(snapshot pgmodels.StatsSnapshot, _ int) float64 {
		return snapshot.TotalRevenue
	}), "should keep snapshots taken at or after cutoff")
}
