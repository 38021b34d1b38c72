package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/healthlog/pkg/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_repository.go -package=mocks RecordsRepositoryI

// RecordsRepositoryI is the owner-keyed storage of records. Every method
// takes the owner explicitly; there is no way to address a record without it.
type RecordsRepositoryI interface {
	// Persists a record. record.OwnerID is the owner it is stored under
	Create(ctx context.Context, record *entity.Record) error
	// Returns errorvalues.ErrRecordNotFound when the owner has no record with id
	GetByID(ctx context.Context, ownerID string, id uuid.UUID) (*entity.Record, error)
	// Lists records newest first. Requires pagination params provided
	List(ctx context.Context, ownerID string, filter entity.RecordFilter, limit, offset int) ([]*entity.Record, error)
	Count(ctx context.Context, ownerID string, filter entity.RecordFilter) (int, error)
	// Lists every matching record, used by statistics
	ListAll(ctx context.Context, ownerID string, filter entity.RecordFilter) ([]*entity.Record, error)
	// Applies non-nil patch fields and returns the updated record
	Update(ctx context.Context, ownerID string, id uuid.UUID, changes entity.RecordChanges) (*entity.Record, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
	// Deletes the owner's records among ids and returns how many were removed
	DeleteMany(ctx context.Context, ownerID string, ids []uuid.UUID) (int, error)
	// Deletes every record of the owner
	DeleteAll(ctx context.Context, ownerID string) (int, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
	SSLMode  string
}

func (pgcfg *PGCfg) ConnString() string {
	connStr := fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
	if pgcfg.SSLMode != "" {
		connStr += "?sslmode=" + pgcfg.SSLMode
	}
	return connStr
}
