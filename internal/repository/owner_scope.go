package repository

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/limbo/healthlog/pkg/entity"
)

const recordsTable = "records"

var (
	psql          = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	recordColumns = []string{"id", "owner_id", "occurred_at", "quality_rating", "notes", "created_at", "updated_at"}
)

// ownerScope is the only source of statement builders for the records table.
// Each builder it hands out already carries the owner predicate, so any
// condition added later is ANDed onto it.
type ownerScope struct {
	owner string
}

func scopeFor(owner string) ownerScope {
	return ownerScope{owner: owner}
}

func (s ownerScope) ownerPredicate() squirrel.Eq {
	return squirrel.Eq{"owner_id": s.owner}
}

func (s ownerScope) selectRecords() squirrel.SelectBuilder {
	return psql.Select(recordColumns...).From(recordsTable).Where(s.ownerPredicate())
}

func (s ownerScope) count() squirrel.SelectBuilder {
	return psql.Select("COUNT(*)").From(recordsTable).Where(s.ownerPredicate())
}

func (s ownerScope) update() squirrel.UpdateBuilder {
	return psql.Update(recordsTable).Where(s.ownerPredicate())
}

func (s ownerScope) delete() squirrel.DeleteBuilder {
	return psql.Delete(recordsTable).Where(s.ownerPredicate())
}

// insert stores the record under the scope's owner, whatever r.OwnerID says.
func (s ownerScope) insert(r *entity.Record) squirrel.InsertBuilder {
	return psql.Insert(recordsTable).
		Columns(recordColumns...).
		Values(r.ID, s.owner, r.OccurredAt, r.QualityRating, r.Notes, r.CreatedAt, r.UpdatedAt)
}

func withFilter(b squirrel.SelectBuilder, f entity.RecordFilter) squirrel.SelectBuilder {
	if f.From != nil {
		b = b.Where(squirrel.GtOrEq{"occurred_at": f.From.UTC()})
	}
	if f.To != nil {
		b = b.Where(squirrel.LtOrEq{"occurred_at": f.To.UTC()})
	}
	return b
}

func withChanges(b squirrel.UpdateBuilder, c entity.RecordChanges) squirrel.UpdateBuilder {
	if c.OccurredAt != nil {
		b = b.Set("occurred_at", c.OccurredAt.UTC())
	}
	if c.QualityRating != nil {
		b = b.Set("quality_rating", *c.QualityRating)
	}
	if c.Notes != nil {
		b = b.Set("notes", *c.Notes)
	}
	return b.Set("updated_at", c.UpdatedAt.UTC())
}

func newestFirst(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	return b.OrderBy("occurred_at DESC", "id DESC")
}

func normalizeTimes(r *entity.Record) {
	r.OccurredAt = r.OccurredAt.UTC()
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
}

func squirrelID(id uuid.UUID) squirrel.Eq {
	return squirrel.Eq{"id": id.String()}
}

func squirrelIDs(ids []uuid.UUID) squirrel.Eq {
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, id.String())
	}
	return squirrel.Eq{"id": values}
}

func returningColumns() string {
	return strings.Join(recordColumns, ", ")
}
