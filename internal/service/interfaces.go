package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/limbo/healthlog/pkg/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_service.go -package=mocks

type RecordsServiceI interface {
	// Validates input and stores a record owned by ownerID
	Create(ctx context.Context, ownerID string, input entity.RecordInput) (*entity.Record, error)
	// Records of other owners are reported as errorvalues.ErrRecordNotFound
	Get(ctx context.Context, ownerID string, id uuid.UUID) (*entity.Record, error)
	Update(ctx context.Context, ownerID string, id uuid.UUID, patch entity.RecordPatch) (*entity.Record, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
	// Returns how many of ids were deleted; foreign and missing ids are skipped
	DeleteMany(ctx context.Context, ownerID string, ids []uuid.UUID) (int, error)
	List(ctx context.Context, ownerID string, opts entity.ListOptions) (*entity.RecordsPage, error)
}

type StatsServiceI interface {
	Overview(ctx context.Context, ownerID string) (*entity.PeriodSummary, error)
	Daily(ctx context.Context, ownerID string, days int) (*entity.DailyStats, error)
	Weekly(ctx context.Context, ownerID string, weeks int) ([]entity.Bucket, error)
	Monthly(ctx context.Context, ownerID string, months int) ([]entity.Bucket, error)
	Quality(ctx context.Context, ownerID string) (*entity.QualityStats, error)
	Frequency(ctx context.Context, ownerID string, days int) ([]entity.TrendPoint, error)
}
