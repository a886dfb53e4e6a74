package storage

import (
	"time"

	"github.com/MichalMitros/crm-console/internal/platform/models"

	pgmodels "github.com/MichalMitros/crm-console/internal/platform/storage/gen/postgres/public/model"
)

//go:generate make -C ../../../ generate-db

// toDBStatsSnapshot converts stats taken at provided time into postgres stats snapshot model.
func toDBStatsSnapshot(takenAt time.Time, stats models.Stats) *pgmodels.StatsSnapshot {
	snapshot := &pgmodels.StatsSnapshot{
		TakenAt:        takenAt.UTC(),
		TotalRevenue:   stats.TotalRevenue,
		TotalCustomers: int32(stats.TotalCustomers),
		ActiveDeals:    int32(stats.ActiveDeals),
		ConversionRate: stats.ConversionRate,
	}

	if stats.TotalProducts != nil {
		total := int32(*stats.TotalProducts)
		snapshot.TotalProducts = &total
	}

	return snapshot
}

func fromDBStatsSnapshot(s pgmodels.StatsSnapshot) models.StatsSnapshot {
	snapshot := models.StatsSnapshot{
		ID:      int(s.ID),
		TakenAt: s.TakenAt,
		Stats: models.Stats{
			TotalRevenue:   s.TotalRevenue,
			TotalCustomers: int(s.TotalCustomers),
			ActiveDeals:    int(s.ActiveDeals),
			ConversionRate: s.ConversionRate,
		},
	}

	if s.TotalProducts != nil {
		total := int(*s.TotalProducts)
		snapshot.Stats.TotalProducts = &total
	}

	return snapshot
}
