package service

import (
	"context"
	"log"
	"time"

	"github.com/limbo/healthlog/internal/stats"
	"github.com/limbo/healthlog/pkg/entity"
)

// OwnerStores hands out stores bound to one owner. RecordsService implements it.
type OwnerStores interface {
	ForOwner(ownerID string) (*OwnerScopedStore, error)
}

// StatsService loads owner-scoped records and hands them to the stats engine.
// It has no storage access of its own.
type StatsService struct {
	stores   OwnerStores
	settings stats.Settings
	clock    func() time.Time
}

func NewStatsService(stores OwnerStores, settings stats.Settings, opts ...Option) *StatsService {
	if stores == nil {
		log.Fatal("provided nil owner stores")
	}
	o := applyOptions(opts)
	return &StatsService{
		stores:   stores,
		settings: settings,
		clock:    o.clock,
	}
}

func (ss *StatsService) Settings() stats.Settings { return ss.settings }

func (ss *StatsService) load(ctx context.Context, ownerID string, from *time.Time) ([]*entity.Record, error) {
	store, err := ss.stores.ForOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return store.All(ctx, entity.RecordFilter{From: from})
}

func (ss *StatsService) Overview(ctx context.Context, ownerID string) (*entity.PeriodSummary, error) {
	records, err := ss.load(ctx, ownerID, nil)
	if err != nil {
		return nil, err
	}
	summary := stats.Summarize(records, ss.clock(), ss.settings)
	return &summary, nil
}

func (ss *StatsService) Daily(ctx context.Context, ownerID string, days int) (*entity.DailyStats, error) {
	if err := stats.ValidateLookback("days", days); err != nil {
		return nil, err
	}
	now := ss.clock()
	from := stats.WindowStart(now, ss.settings, entity.Day, days)
	records, err := ss.load(ctx, ownerID, &from)
	if err != nil {
		return nil, err
	}
	buckets, summary, err := stats.Daily(records, now, ss.settings, days)
	if err != nil {
		return nil, err
	}
	return &entity.DailyStats{Days: buckets, Summary: summary}, nil
}

func (ss *StatsService) Weekly(ctx context.Context, ownerID string, weeks int) ([]entity.Bucket, error) {
	if err := stats.ValidateLookback("weeks", weeks); err != nil {
		return nil, err
	}
	now := ss.clock()
	from := stats.WindowStart(now, ss.settings, entity.Week, weeks)
	records, err := ss.load(ctx, ownerID, &from)
	if err != nil {
		return nil, err
	}
	return stats.Weekly(records, now, ss.settings, weeks)
}

func (ss *StatsService) Monthly(ctx context.Context, ownerID string, months int) ([]entity.Bucket, error) {
	if err := stats.ValidateLookback("months", months); err != nil {
		return nil, err
	}
	now := ss.clock()
	from := stats.WindowStart(now, ss.settings, entity.Month, months)
	records, err := ss.load(ctx, ownerID, &from)
	if err != nil {
		return nil, err
	}
	return stats.Monthly(records, now, ss.settings, months)
}

func (ss *StatsService) Quality(ctx context.Context, ownerID string) (*entity.QualityStats, error) {
	records, err := ss.load(ctx, ownerID, nil)
	if err != nil {
		return nil, err
	}
	q := stats.Quality(records)
	return &q, nil
}

func (ss *StatsService) Frequency(ctx context.Context, ownerID string, days int) ([]entity.TrendPoint, error) {
	if err := stats.ValidateTrendWindow(days); err != nil {
		return nil, err
	}
	now := ss.clock()
	from := stats.WindowStart(now, ss.settings, entity.Day, days)
	records, err := ss.load(ctx, ownerID, &from)
	if err != nil {
		return nil, err
	}
	return stats.Trend(records, now, ss.settings, days)
}
