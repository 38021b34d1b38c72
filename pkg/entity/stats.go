package entity

import "time"

type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
)

// Bucket aggregates the records of one calendar period (day, week or month).
// Date is the first local day of the period, formatted as YYYY-MM-DD.
// AvgQuality is kept unrounded.
type Bucket struct {
	Date       string  `json:"date"`
	Count      int     `json:"count"`
	AvgQuality float64 `json:"avg_quality"`
	MinQuality int     `json:"min_quality"`
	MaxQuality int     `json:"max_quality"`
}

type DailySummary struct {
	TotalDays    int     `json:"total_days"`
	TotalRecords int     `json:"total_records"`
	AvgDaily     float64 `json:"avg_daily"`
	MaxDaily     int     `json:"max_daily"`
	MinDaily     int     `json:"min_daily"`
}

type PeriodSummary struct {
	TotalCount        int        `json:"total_count"`
	DailyAverage      float64    `json:"daily_average"`
	MostCommonQuality int        `json:"most_common_quality"`
	StreakDays        int        `json:"streak_days"`
	FirstRecordAt     *time.Time `json:"first_record_at"`
	LastRecordAt      *time.Time `json:"last_record_at"`
}

// QualityDistribution always holds every rating from 1 to 7.
type QualityDistribution map[int]int

func NewQualityDistribution() QualityDistribution {
	d := make(QualityDistribution, MaxQualityRating)
	for r := MinQualityRating; r <= MaxQualityRating; r++ {
		d[r] = 0
	}
	return d
}

func (d QualityDistribution) Total() int {
	total := 0
	for _, c := range d {
		total += c
	}
	return total
}

type QualityStats struct {
	Distribution QualityDistribution `json:"distribution"`
	TotalRecords int                 `json:"total_records"`
	MostCommon   int                 `json:"most_common"`
}

type TrendPoint struct {
	Date       string  `json:"date"`
	Count      int     `json:"count"`
	AvgQuality float64 `json:"avg_quality"`
}
