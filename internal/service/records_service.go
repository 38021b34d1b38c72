package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/healthlog/internal/error_values"
	"github.com/limbo/healthlog/internal/repository"
	"github.com/limbo/healthlog/pkg/entity"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxBatchDelete  = 1000
)

// RecordsService is the entry point to record storage for an authenticated
// owner. Every call is routed through an OwnerScopedStore bound to that owner.
type RecordsService struct {
	repo  repository.RecordsRepositoryI
	clock func() time.Time
}

type Option func(*options)

type options struct {
	clock func() time.Time
}

// WithClock replaces time.Now as the source of the reference time.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func applyOptions(opts []Option) options {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = time.Now
	}
	return o
}

func NewRecordsService(recordsRepo repository.RecordsRepositoryI, opts ...Option) *RecordsService {
	if recordsRepo == nil {
		log.Fatal("provided nil recordsRepo")
	}
	o := applyOptions(opts)
	return &RecordsService{
		repo:  recordsRepo,
		clock: o.clock,
	}
}

// OwnerScopedStore is the capability to read and change the records of
// exactly one owner. It can only be obtained from RecordsService.ForOwner.
type OwnerScopedStore struct {
	owner string
	repo  repository.RecordsRepositoryI
	clock func() time.Time
}

// ForOwner binds the store to ownerID, which must come from the
// authenticated context.
func (rs *RecordsService) ForOwner(ownerID string) (*OwnerScopedStore, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, errorvalues.NewValidationError("owner_id", "is required")
	}
	return &OwnerScopedStore{owner: ownerID, repo: rs.repo, clock: rs.clock}, nil
}

func (s *OwnerScopedStore) Owner() string { return s.owner }

func (s *OwnerScopedStore) now() time.Time {
	return storedTime(s.clock())
}

// storedTime is t at the precision storage keeps. The reference time and
// occurred_at are compared at this precision.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func (s *OwnerScopedStore) Create(ctx context.Context, input entity.RecordInput) (*entity.Record, error) {
	now := s.now()
	input.OccurredAt = storedTime(input.OccurredAt)
	if err := validateStruct(WithNow(ctx, now), input); err != nil {
		return nil, err
	}
	record := &entity.Record{
		ID:            uuid.New(),
		OwnerID:       s.owner,
		OccurredAt:    input.OccurredAt,
		QualityRating: input.QualityRating,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, storageError("create record", err)
	}
	return record, nil
}

func (s *OwnerScopedStore) Get(ctx context.Context, id uuid.UUID) (*entity.Record, error) {
	record, err := s.repo.GetByID(ctx, s.owner, id)
	if err != nil {
		return nil, storageError("get record", err)
	}
	if record.OwnerID != s.owner {
		return nil, errorvalues.ErrRecordNotFound
	}
	return record, nil
}

// Update validates only the fields present in patch.
func (s *OwnerScopedStore) Update(ctx context.Context, id uuid.UUID, patch entity.RecordPatch) (*entity.Record, error) {
	if patch.IsEmpty() {
		return nil, errorvalues.NewValidationError("patch", "at least one field is required")
	}
	now := s.now()
	if patch.OccurredAt != nil {
		at := storedTime(*patch.OccurredAt)
		patch.OccurredAt = &at
	}
	if err := validateStruct(WithNow(ctx, now), patch); err != nil {
		return nil, err
	}
	record, err := s.repo.Update(ctx, s.owner, id, entity.RecordChanges{RecordPatch: patch, UpdatedAt: now})
	if err != nil {
		return nil, storageError("update record", err)
	}
	if record.OwnerID != s.owner {
		return nil, errorvalues.ErrRecordNotFound
	}
	return record, nil
}

func (s *OwnerScopedStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, s.owner, id); err != nil {
		return storageError("delete record", err)
	}
	return nil
}

// DeleteMany deletes the owner's records among ids. Ids that are missing or
// belong to someone else are skipped; the result counts what was deleted.
func (s *OwnerScopedStore) DeleteMany(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, errorvalues.NewValidationError("ids", "must not be empty")
	}
	if len(ids) > MaxBatchDelete {
		return 0, errorvalues.NewValidationError("ids", "must contain at most 1000 ids")
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	deleted, err := s.repo.DeleteMany(ctx, s.owner, unique)
	if err != nil {
		return 0, storageError("delete records", err)
	}
	return deleted, nil
}

func (s *OwnerScopedStore) List(ctx context.Context, opts entity.ListOptions) (*entity.RecordsPage, error) {
	page, pageSize := normalizePage(opts.Page, opts.PageSize)
	filter := entity.RecordFilter{From: opts.StartDate, To: opts.EndDate}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, errorvalues.NewValidationError("start_date", "must not be after end_date")
	}
	total, err := s.repo.Count(ctx, s.owner, filter)
	if err != nil {
		return nil, storageError("count records", err)
	}
	records := make([]*entity.Record, 0)
	if offset, ok := pageOffset(page, pageSize, total); ok {
		records, err = s.repo.List(ctx, s.owner, filter, pageSize, offset)
		if err != nil {
			return nil, storageError("list records", err)
		}
	}
	return &entity.RecordsPage{
		Records:    records,
		Pagination: paginate(page, pageSize, total),
	}, nil
}

// All returns every record of the owner matching filter.
func (s *OwnerScopedStore) All(ctx context.Context, filter entity.RecordFilter) ([]*entity.Record, error) {
	records, err := s.repo.ListAll(ctx, s.owner, filter)
	if err != nil {
		return nil, storageError("list all records", err)
	}
	return records, nil
}

// Purge deletes every record of the owner.
func (s *OwnerScopedStore) Purge(ctx context.Context) (int, error) {
	deleted, err := s.repo.DeleteAll(ctx, s.owner)
	if err != nil {
		return 0, storageError("purge owner", err)
	}
	return deleted, nil
}

func (rs *RecordsService) Create(ctx context.Context, ownerID string, input entity.RecordInput) (*entity.Record, error) {
	store, err := rs.ForOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return store.Create(ctx, input)
}

func (rs *RecordsService) Get(ctx context.Context, ownerID string, id uuid.UUID) (*entity.Record, error) {
	store, err := rs.ForOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return store.Get(ctx, id)
}

func (rs *RecordsService) Update(ctx context.Context, ownerID string, id uuid.UUID, patch entity.RecordPatch) (*entity.Record, error) {
	store, err := rs.ForOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return store.Update(ctx, id, patch)
}

func (rs *RecordsService) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	store, err := rs.ForOwner(ownerID)
	if err != nil {
		return err
	}
	return store.Delete(ctx, id)
}

func (rs *RecordsService) DeleteMany(ctx context.Context, ownerID string, ids []uuid.UUID) (int, error) {
	store, err := rs.ForOwner(ownerID)
	if err != nil {
		return 0, err
	}
	return store.DeleteMany(ctx, ids)
}

func (rs *RecordsService) List(ctx context.Context, ownerID string, opts entity.ListOptions) (*entity.RecordsPage, error) {
	store, err := rs.ForOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return store.List(ctx, opts)
}

// PurgeOwner is the admin path: it removes all records of one owner and
// nothing else.
func (rs *RecordsService) PurgeOwner(ctx context.Context, ownerID string) (int, error) {
	store, err := rs.ForOwner(ownerID)
	if err != nil {
		return 0, err
	}
	return store.Purge(ctx)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// pageOffset returns the offset of page, or false when the page starts
// past the last record.
func pageOffset(page, pageSize, total int) (int, bool) {
	if page-1 > (total-1)/pageSize {
		return 0, false
	}
	return (page - 1) * pageSize, total > 0
}

func paginate(page, pageSize, total int) entity.Pagination {
	totalPages := (total + pageSize - 1) / pageSize
	return entity.Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// storageError keeps typed errors and wraps anything else so raw
// collaborator errors never reach the caller.
func storageError(op string, err error) error {
	switch {
	case errors.Is(err, errorvalues.ErrRecordNotFound),
		errors.Is(err, errorvalues.ErrValidation),
		errors.Is(err, errorvalues.ErrStorage):
		return err
	}
	return errorvalues.NewStorageError(op, err)
}
