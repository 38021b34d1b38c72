// Package stats computes derived views of one owner's records.
//
// Every function is pure: the result depends only on the records passed in,
// the reference time and the Settings. Nothing here touches storage.
package stats

import (
	"math"
	"sort"
	"time"

	errorvalues "github.com/limbo/healthlog/internal/error_values"
	"github.com/limbo/healthlog/pkg/entity"
)

const (
	DefaultDailyDays    = 30
	DefaultWeeklyWeeks  = 4
	DefaultMonthlyCount = 6
	MaxLookback         = 366
)

// Trend windows accepted by Trend.
var TrendWindows = []int{7, 14, 30}

type accumulator struct {
	start time.Time
	count int
	sum   int
	min   int
	max   int
}

func (a *accumulator) add(rating int) {
	if a.count == 0 || rating < a.min {
		a.min = rating
	}
	if a.count == 0 || rating > a.max {
		a.max = rating
	}
	a.count++
	a.sum += rating
}

func (a *accumulator) bucket() entity.Bucket {
	b := entity.Bucket{
		Date:       dateKey(a.start),
		Count:      a.count,
		MinQuality: a.min,
		MaxQuality: a.max,
	}
	if a.count > 0 {
		b.AvgQuality = float64(a.sum) / float64(a.count)
	}
	return b
}

// aggregate groups records by period start. Only records whose period
// falls in [from, to] are kept; from and to are period starts.
func aggregate(records []*entity.Record, g entity.Granularity, loc *time.Location, from, to time.Time) map[string]*accumulator {
	groups := make(map[string]*accumulator)
	for _, r := range records {
		start := PeriodStart(r.OccurredAt, g, loc)
		if start.Before(from) || start.After(to) {
			continue
		}
		key := dateKey(start)
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{start: start}
			groups[key] = acc
		}
		acc.add(r.QualityRating)
	}
	return groups
}

func sortedBuckets(groups map[string]*accumulator) []entity.Bucket {
	buckets := make([]entity.Bucket, 0, len(groups))
	for _, acc := range groups {
		buckets = append(buckets, acc.bucket())
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date < buckets[j].Date })
	return buckets
}

// ValidateLookback checks the number of periods a windowed view covers.
func ValidateLookback(field string, n int) error {
	if n < 1 || n > MaxLookback {
		return errorvalues.NewValidationError(field, "must be between 1 and 366")
	}
	return nil
}

func ValidateTrendWindow(window int) error {
	for _, w := range TrendWindows {
		if w == window {
			return nil
		}
	}
	return errorvalues.NewValidationError("days", "must be one of 7, 14, 30")
}

// WindowStart returns the first instant covered by the n g-periods ending
// with the period containing now. Callers use it to bound what they load.
func WindowStart(now time.Time, s Settings, g entity.Granularity, n int) time.Time {
	return shift(PeriodStart(now, g, s.location()), g, -(n - 1))
}

// Buckets returns one bucket per period that holds at least one record,
// over the n periods ending with the period containing now. Ascending by date.
func Buckets(records []*entity.Record, now time.Time, s Settings, g entity.Granularity, n int) ([]entity.Bucket, error) {
	if err := ValidateLookback("periods", n); err != nil {
		return nil, err
	}
	loc := s.location()
	last := PeriodStart(now, g, loc)
	return sortedBuckets(aggregate(records, g, loc, WindowStart(now, s, g, n), last)), nil
}

// Daily returns the active day buckets of the last days days (today included)
// and a summary over them.
func Daily(records []*entity.Record, now time.Time, s Settings, days int) ([]entity.Bucket, entity.DailySummary, error) {
	if err := ValidateLookback("days", days); err != nil {
		return nil, entity.DailySummary{}, err
	}
	buckets, err := Buckets(records, now, s, entity.Day, days)
	if err != nil {
		return nil, entity.DailySummary{}, err
	}
	return buckets, summarizeDays(buckets), nil
}

func summarizeDays(buckets []entity.Bucket) entity.DailySummary {
	summary := entity.DailySummary{TotalDays: len(buckets)}
	for i, b := range buckets {
		summary.TotalRecords += b.Count
		if i == 0 || b.Count > summary.MaxDaily {
			summary.MaxDaily = b.Count
		}
		if i == 0 || b.Count < summary.MinDaily {
			summary.MinDaily = b.Count
		}
	}
	if summary.TotalDays > 0 {
		summary.AvgDaily = float64(summary.TotalRecords) / float64(summary.TotalDays)
	}
	return summary
}

func Weekly(records []*entity.Record, now time.Time, s Settings, weeks int) ([]entity.Bucket, error) {
	if err := ValidateLookback("weeks", weeks); err != nil {
		return nil, err
	}
	return Buckets(records, now, s, entity.Week, weeks)
}

func Monthly(records []*entity.Record, now time.Time, s Settings, months int) ([]entity.Bucket, error) {
	if err := ValidateLookback("months", months); err != nil {
		return nil, err
	}
	return Buckets(records, now, s, entity.Month, months)
}

// Trend returns exactly window points, one per day, oldest first.
// Days without records are present with zero count.
func Trend(records []*entity.Record, now time.Time, s Settings, window int) ([]entity.TrendPoint, error) {
	if err := ValidateTrendWindow(window); err != nil {
		return nil, err
	}
	loc := s.location()
	today := DayStart(now, loc)
	first := addDays(today, -(window - 1))
	groups := aggregate(records, entity.Day, loc, first, today)

	points := make([]entity.TrendPoint, 0, window)
	for day := first; !day.After(today); day = addDays(day, 1) {
		p := entity.TrendPoint{Date: dateKey(day)}
		if acc, ok := groups[p.Date]; ok {
			b := acc.bucket()
			p.Count = b.Count
			p.AvgQuality = b.AvgQuality
		}
		points = append(points, p)
	}
	return points, nil
}

// Streak counts consecutive active days ending today. A day without
// records today means no ongoing streak. The walk never exceeds the
// configured horizon.
func Streak(records []*entity.Record, now time.Time, s Settings) int {
	loc := s.location()
	active := make(map[string]struct{}, len(records))
	for _, r := range records {
		active[dateKey(DayStart(r.OccurredAt, loc))] = struct{}{}
	}
	today := DayStart(now, loc)
	streak := 0
	for i := 0; i < s.horizon(); i++ {
		if _, ok := active[dateKey(addDays(today, -i))]; !ok {
			break
		}
		streak++
	}
	return streak
}

// Distribution counts records per rating. All ratings 1..7 are present.
func Distribution(records []*entity.Record) entity.QualityDistribution {
	d := entity.NewQualityDistribution()
	for _, r := range records {
		if r.QualityRating < entity.MinQualityRating || r.QualityRating > entity.MaxQualityRating {
			continue
		}
		d[r.QualityRating]++
	}
	return d
}

// MostCommonQuality returns the most frequent rating. Ties go to the
// lowest rating. Zero when there are no records.
func MostCommonQuality(records []*entity.Record) int {
	return mostCommon(Distribution(records))
}

func mostCommon(d entity.QualityDistribution) int {
	best, bestCount := 0, 0
	for r := entity.MinQualityRating; r <= entity.MaxQualityRating; r++ {
		if d[r] > bestCount {
			best, bestCount = r, d[r]
		}
	}
	return best
}

func Quality(records []*entity.Record) entity.QualityStats {
	d := Distribution(records)
	return entity.QualityStats{
		Distribution: d,
		TotalRecords: d.Total(),
		MostCommon:   mostCommon(d),
	}
}

// DailyAverage is total / max(1, ceil(days since the first record)).
func DailyAverage(records []*entity.Record, now time.Time) float64 {
	if len(records) == 0 {
		return 0
	}
	first, _ := bounds(records)
	days := int(math.Ceil(now.Sub(first).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return float64(len(records)) / float64(days)
}

// bounds returns the earliest and latest occurrence. records must not be empty.
func bounds(records []*entity.Record) (time.Time, time.Time) {
	first, last := records[0].OccurredAt, records[0].OccurredAt
	for _, r := range records[1:] {
		if r.OccurredAt.Before(first) {
			first = r.OccurredAt
		}
		if r.OccurredAt.After(last) {
			last = r.OccurredAt
		}
	}
	return first, last
}

func Summarize(records []*entity.Record, now time.Time, s Settings) entity.PeriodSummary {
	summary := entity.PeriodSummary{
		TotalCount:        len(records),
		DailyAverage:      DailyAverage(records, now),
		MostCommonQuality: MostCommonQuality(records),
		StreakDays:        Streak(records, now, s),
	}
	if len(records) > 0 {
		first, last := bounds(records)
		summary.FirstRecordAt = &first
		summary.LastRecordAt = &last
	}
	return summary
}
