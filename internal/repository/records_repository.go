package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/healthlog/internal/error_values"
	"github.com/limbo/healthlog/pkg/cleanup"
	"github.com/limbo/healthlog/pkg/entity"
)

// Binds the transaction to one owner for the records row policy.
const setOwnerQuery = `SELECT set_config('app.owner_id', $1, true);`

// RecordsRepository stores records in PostgreSQL. Every statement runs in a
// transaction bound to the owner, so the row policy filters it a second time.
type RecordsRepository struct {
	conn PgConnection
}

func NewRecordsRepo(ctx context.Context, cfg DBConfig) (*RecordsRepository, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnString())
	if err != nil {
		return nil, errors.New("creating connection for recordsRepo error: " + err.Error())
	}
	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, errors.New("error while pinging connection for recordsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &RecordsRepository{
		conn: pool,
	}, nil
}

func NewRecordsRepoWithConn(conn PgConnection) *RecordsRepository {
	return &RecordsRepository{
		conn: conn,
	}
}

func (rr *RecordsRepository) withOwner(ctx context.Context, owner string, fn func(tx pgx.Tx) error) error {
	tx, err := rr.conn.Begin(ctx)
	if err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, setOwnerQuery, owner); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func (rr *RecordsRepository) Create(ctx context.Context, record *entity.Record) error {
	query, args, err := scopeFor(record.OwnerID).insert(record).ToSql()
	if err != nil {
		return errorvalues.NewStorageError("create record", err)
	}
	err = rr.withOwner(ctx, record.OwnerID, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query, args...)
		return err
	})
	if err != nil {
		return mapPgError("create record", err)
	}
	return nil
}

func (rr *RecordsRepository) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (*entity.Record, error) {
	query, args, err := scopeFor(ownerID).selectRecords().Where(squirrelID(id)).ToSql()
	if err != nil {
		return nil, errorvalues.NewStorageError("get record", err)
	}
	var record *entity.Record
	err = rr.withOwner(ctx, ownerID, func(tx pgx.Tx) error {
		record, err = scanRecord(tx.QueryRow(ctx, query, args...))
		return err
	})
	if err != nil {
		return nil, mapPgError("get record", err)
	}
	return record, nil
}

func (rr *RecordsRepository) List(ctx context.Context, ownerID string, filter entity.RecordFilter, limit, offset int) ([]*entity.Record, error) {
	builder := newestFirst(withFilter(scopeFor(ownerID).selectRecords(), filter)).
		Limit(uint64(limit)).
		Offset(uint64(offset))
	records, err := rr.queryRecords(ctx, ownerID, builder.ToSql)
	if err != nil {
		return nil, mapPgError("list records", err)
	}
	return records, nil
}

func (rr *RecordsRepository) ListAll(ctx context.Context, ownerID string, filter entity.RecordFilter) ([]*entity.Record, error) {
	builder := newestFirst(withFilter(scopeFor(ownerID).selectRecords(), filter))
	records, err := rr.queryRecords(ctx, ownerID, builder.ToSql)
	if err != nil {
		return nil, mapPgError("list all records", err)
	}
	return records, nil
}

func (rr *RecordsRepository) queryRecords(ctx context.Context, ownerID string, toSQL func() (string, []any, error)) ([]*entity.Record, error) {
	query, args, err := toSQL()
	if err != nil {
		return nil, err
	}
	records := make([]*entity.Record, 0)
	err = rr.withOwner(ctx, ownerID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			r, err := scanRecord(rows)
			if err != nil {
				return fmt.Errorf("unmarshalling record error: %w", err)
			}
			records = append(records, r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (rr *RecordsRepository) Count(ctx context.Context, ownerID string, filter entity.RecordFilter) (int, error) {
	query, args, err := withFilter(scopeFor(ownerID).count(), filter).ToSql()
	if err != nil {
		return 0, errorvalues.NewStorageError("count records", err)
	}
	var total int
	err = rr.withOwner(ctx, ownerID, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, args...).Scan(&total)
	})
	if err != nil {
		return 0, mapPgError("count records", err)
	}
	return total, nil
}

func (rr *RecordsRepository) Update(ctx context.Context, ownerID string, id uuid.UUID, changes entity.RecordChanges) (*entity.Record, error) {
	query, args, err := withChanges(scopeFor(ownerID).update(), changes).
		Where(squirrelID(id)).
		Suffix("RETURNING " + returningColumns()).
		ToSql()
	if err != nil {
		return nil, errorvalues.NewStorageError("update record", err)
	}
	var record *entity.Record
	err = rr.withOwner(ctx, ownerID, func(tx pgx.Tx) error {
		record, err = scanRecord(tx.QueryRow(ctx, query, args...))
		return err
	})
	if err != nil {
		return nil, mapPgError("update record", err)
	}
	return record, nil
}

func (rr *RecordsRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	deleted, err := rr.exec(ctx, ownerID, "delete record", func() (string, []any, error) {
		return scopeFor(ownerID).delete().Where(squirrelID(id)).ToSql()
	})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return errorvalues.ErrRecordNotFound
	}
	return nil
}

func (rr *RecordsRepository) DeleteMany(ctx context.Context, ownerID string, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return rr.exec(ctx, ownerID, "delete records", func() (string, []any, error) {
		return scopeFor(ownerID).delete().Where(squirrelIDs(ids)).ToSql()
	})
}

func (rr *RecordsRepository) DeleteAll(ctx context.Context, ownerID string) (int, error) {
	return rr.exec(ctx, ownerID, "delete owner records", scopeFor(ownerID).delete().ToSql)
}

func (rr *RecordsRepository) exec(ctx context.Context, ownerID, op string, toSQL func() (string, []any, error)) (int, error) {
	query, args, err := toSQL()
	if err != nil {
		return 0, errorvalues.NewStorageError(op, err)
	}
	var affected int64
	err = rr.withOwner(ctx, ownerID, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, mapPgError(op, err)
	}
	return int(affected), nil
}

func scanRecord(row pgx.Row) (*entity.Record, error) {
	var r entity.Record
	if err := row.Scan(&r.ID, &r.OwnerID, &r.OccurredAt, &r.QualityRating, &r.Notes, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	normalizeTimes(&r)
	return &r, nil
}

func mapPgError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errorvalues.ErrRecordNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		// Check violation
		case "23514":
			return errorvalues.NewValidationError(constraintField(pgErr.ConstraintName), "violates constraint")
		// Invalid text representation, e.g. malformed uuid
		case "22P02":
			return errorvalues.ErrRecordNotFound
		}
	}
	return errorvalues.NewStorageError(op, err)
}

func constraintField(constraint string) string {
	switch constraint {
	case "records_quality_rating_check":
		return "quality_rating"
	case "records_notes_check":
		return "notes"
	default:
		return "record"
	}
}
