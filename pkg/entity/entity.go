package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinQualityRating = 1
	MaxQualityRating = 7
	MaxNotesLength   = 500

	// Layout of bucket dates on the wire
	DateLayout = "2006-01-02"
)

type Record struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       string    `json:"owner_id"`
	OccurredAt    time.Time `json:"occurred_at"`
	QualityRating int       `json:"quality_rating"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RecordInput carries caller-supplied fields for a new record.
// Owner is never part of it: it comes from the authenticated context.
type RecordInput struct {
	OccurredAt    time.Time `json:"occurred_at" validate:"required,not_future"`
	QualityRating int       `json:"quality_rating" validate:"min=1,max=7"`
	Notes         *string   `json:"notes" validate:"omitnil,max=500"`
}

// RecordPatch is a partial update. Nil fields are left untouched.
type RecordPatch struct {
	OccurredAt    *time.Time `json:"occurred_at" validate:"omitnil,not_future"`
	QualityRating *int       `json:"quality_rating" validate:"omitnil,min=1,max=7"`
	Notes         *string    `json:"notes" validate:"omitnil,max=500"`
}

func (p RecordPatch) IsEmpty() bool {
	return p.OccurredAt == nil && p.QualityRating == nil && p.Notes == nil
}

// RecordChanges is what the storage layer applies on update.
type RecordChanges struct {
	RecordPatch
	UpdatedAt time.Time
}

// RecordFilter bounds occurred_at, both ends inclusive.
type RecordFilter struct {
	From *time.Time
	To   *time.Time
}

type ListOptions struct {
	Page      int
	PageSize  int
	StartDate *time.Time
	EndDate   *time.Time
}

type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

type RecordsPage struct {
	Records    []*Record  `json:"records"`
	Pagination Pagination `json:"pagination"`
}

type DailyStats struct {
	Days    []Bucket     `json:"days"`
	Summary DailySummary `json:"summary"`
}
