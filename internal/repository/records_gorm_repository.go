package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/healthlog/internal/error_values"
	"github.com/limbo/healthlog/pkg/cleanup"
	"github.com/limbo/healthlog/pkg/entity"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type recordModel struct {
	ID            string    `gorm:"primaryKey;type:text"`
	OwnerID       string    `gorm:"type:text;not null;index:idx_records_owner_occurred,priority:1"`
	OccurredAt    time.Time `gorm:"not null;index:idx_records_owner_occurred,priority:2"`
	QualityRating int       `gorm:"not null;check:records_quality_rating_check,quality_rating BETWEEN 1 AND 7"`
	Notes         *string   `gorm:"type:text;check:records_notes_check,notes IS NULL OR length(notes) <= 500"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (recordModel) TableName() string { return recordsTable }

func toModel(owner string, r *entity.Record) *recordModel {
	return &recordModel{
		ID:            r.ID.String(),
		OwnerID:       owner,
		OccurredAt:    r.OccurredAt.UTC(),
		QualityRating: r.QualityRating,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
}

func (m *recordModel) toEntity() (*entity.Record, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	r := &entity.Record{
		ID:            id,
		OwnerID:       m.OwnerID,
		OccurredAt:    m.OccurredAt,
		QualityRating: m.QualityRating,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	normalizeTimes(r)
	return r, nil
}

// GormRecordsRepository stores records in an embedded SQLite database.
type GormRecordsRepository struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if needed) the database at path and migrates the records table.
func OpenSQLite(path string, logger *slog.Logger) (*gorm.DB, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
		dsn = fmt.Sprintf("%s?_pragma=busy_timeout(5000)", path)
	}
	if logger == nil {
		logger = slog.Default()
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(
			slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// SQLite serializes writers, and an in-memory database lives in one connection.
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&recordModel{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return db, nil
}

func NewGormRecordsRepo(path string, logger *slog.Logger) (*GormRecordsRepository, error) {
	db, err := OpenSQLite(path, logger)
	if err != nil {
		return nil, err
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing sqlite",
		F: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	return NewGormRecordsRepoWithDB(db), nil
}

func NewGormRecordsRepoWithDB(db *gorm.DB) *GormRecordsRepository {
	return &GormRecordsRepository{db: db}
}

// ownedBy is the only entry point for queries on the records table.
// The owner condition is the first clause of every statement.
func ownedBy(db *gorm.DB, owner string) *gorm.DB {
	return db.Model(&recordModel{}).Where("owner_id = ?", owner)
}

func (gr *GormRecordsRepository) owned(ctx context.Context, owner string) *gorm.DB {
	return ownedBy(gr.db.WithContext(ctx), owner)
}

func applyGormFilter(q *gorm.DB, f entity.RecordFilter) *gorm.DB {
	if f.From != nil {
		q = q.Where("occurred_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("occurred_at <= ?", f.To.UTC())
	}
	return q
}

func (gr *GormRecordsRepository) Create(ctx context.Context, record *entity.Record) error {
	if err := gr.db.WithContext(ctx).Create(toModel(record.OwnerID, record)).Error; err != nil {
		return mapGormError("create record", err)
	}
	return nil
}

func (gr *GormRecordsRepository) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (*entity.Record, error) {
	var m recordModel
	if err := gr.owned(ctx, ownerID).Where("id = ?", id.String()).First(&m).Error; err != nil {
		return nil, mapGormError("get record", err)
	}
	r, err := m.toEntity()
	if err != nil {
		return nil, errorvalues.NewStorageError("get record", err)
	}
	return r, nil
}

func (gr *GormRecordsRepository) List(ctx context.Context, ownerID string, filter entity.RecordFilter, limit, offset int) ([]*entity.Record, error) {
	q := applyGormFilter(gr.owned(ctx, ownerID), filter).Limit(limit).Offset(offset)
	return gr.find(q, "list records")
}

func (gr *GormRecordsRepository) ListAll(ctx context.Context, ownerID string, filter entity.RecordFilter) ([]*entity.Record, error) {
	return gr.find(applyGormFilter(gr.owned(ctx, ownerID), filter), "list all records")
}

func (gr *GormRecordsRepository) find(q *gorm.DB, op string) ([]*entity.Record, error) {
	var models []recordModel
	if err := q.Order("occurred_at DESC").Order("id DESC").Find(&models).Error; err != nil {
		return nil, mapGormError(op, err)
	}
	records := make([]*entity.Record, 0, len(models))
	for i := range models {
		r, err := models[i].toEntity()
		if err != nil {
			return nil, errorvalues.NewStorageError(op, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func (gr *GormRecordsRepository) Count(ctx context.Context, ownerID string, filter entity.RecordFilter) (int, error) {
	var total int64
	if err := applyGormFilter(gr.owned(ctx, ownerID), filter).Count(&total).Error; err != nil {
		return 0, mapGormError("count records", err)
	}
	return int(total), nil
}

func (gr *GormRecordsRepository) Update(ctx context.Context, ownerID string, id uuid.UUID, changes entity.RecordChanges) (*entity.Record, error) {
	values := map[string]any{"updated_at": changes.UpdatedAt.UTC()}
	if changes.OccurredAt != nil {
		values["occurred_at"] = changes.OccurredAt.UTC()
	}
	if changes.QualityRating != nil {
		values["quality_rating"] = *changes.QualityRating
	}
	if changes.Notes != nil {
		values["notes"] = *changes.Notes
	}
	var m recordModel
	err := gr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := ownedBy(tx, ownerID).Where("id = ?", id.String()).Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errorvalues.ErrRecordNotFound
		}
		return ownedBy(tx, ownerID).Where("id = ?", id.String()).First(&m).Error
	})
	if err != nil {
		return nil, mapGormError("update record", err)
	}
	r, err := m.toEntity()
	if err != nil {
		return nil, errorvalues.NewStorageError("update record", err)
	}
	return r, nil
}

func (gr *GormRecordsRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	res := gr.owned(ctx, ownerID).Where("id = ?", id.String()).Delete(&recordModel{})
	if res.Error != nil {
		return mapGormError("delete record", res.Error)
	}
	if res.RowsAffected == 0 {
		return errorvalues.ErrRecordNotFound
	}
	return nil
}

func (gr *GormRecordsRepository) DeleteMany(ctx context.Context, ownerID string, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, id.String())
	}
	res := gr.owned(ctx, ownerID).Where("id IN ?", values).Delete(&recordModel{})
	if res.Error != nil {
		return 0, mapGormError("delete records", res.Error)
	}
	return int(res.RowsAffected), nil
}

func (gr *GormRecordsRepository) DeleteAll(ctx context.Context, ownerID string) (int, error) {
	res := gr.owned(ctx, ownerID).Delete(&recordModel{})
	if res.Error != nil {
		return 0, mapGormError("delete owner records", res.Error)
	}
	return int(res.RowsAffected), nil
}

func mapGormError(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, errorvalues.ErrRecordNotFound):
		return errorvalues.ErrRecordNotFound
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return errorvalues.NewValidationError("record", "violates constraint")
	}
	return errorvalues.NewStorageError(op, err)
}
