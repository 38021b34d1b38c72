package stats_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/healthlog/internal/error_values"
	"github.com/limbo/healthlog/internal/stats"
	"github.com/limbo/healthlog/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	utc = stats.DefaultSettings()
	// Wednesday
	now = time.Date(2025, time.March, 12, 15, 30, 0, 0, time.UTC)
)

func rec(at time.Time, rating int) *entity.Record {
	return &entity.Record{
		ID:            uuid.New(),
		OwnerID:       "owner",
		OccurredAt:    at,
		QualityRating: rating,
	}
}

func day(offset, hour int) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()+offset, hour, 0, 0, 0, time.UTC)
}

func TestExampleScenario(t *testing.T) {
	records := []*entity.Record{
		rec(day(0, 8), 4),
		rec(day(-1, 9), 2),
		rec(day(-1, 20), 2),
	}

	summary := stats.Summarize(records, now, utc)
	assert.Equal(t, 3, summary.TotalCount)
	assert.Equal(t, 2, summary.StreakDays)
	assert.Equal(t, 2, summary.MostCommonQuality)
	require.NotNil(t, summary.FirstRecordAt)
	assert.Equal(t, day(-1, 9), *summary.FirstRecordAt)
	assert.Equal(t, day(0, 8), *summary.LastRecordAt)

	buckets, daily, err := stats.Daily(records, now, utc, 7)
	require.NoError(t, err)
	assert.Equal(t, []entity.Bucket{
		{Date: "2025-03-11", Count: 2, AvgQuality: 2, MinQuality: 2, MaxQuality: 2},
		{Date: "2025-03-12", Count: 1, AvgQuality: 4, MinQuality: 4, MaxQuality: 4},
	}, buckets)
	assert.Equal(t, entity.DailySummary{TotalDays: 2, TotalRecords: 3, AvgDaily: 1.5, MaxDaily: 2, MinDaily: 1}, daily)

	assert.Equal(t, entity.QualityDistribution{1: 0, 2: 2, 3: 0, 4: 1, 5: 0, 6: 0, 7: 0}, stats.Distribution(records))
}

func TestStreak(t *testing.T) {
	testCases := []struct {
		Desc     string
		Records  []*entity.Record
		Settings stats.Settings
		Expected int
	}{
		{
			Desc:     "no records",
			Settings: utc,
			Expected: 0,
		},
		{
			Desc:     "start of today and one day earlier",
			Records:  []*entity.Record{rec(day(0, 0), 3), rec(day(-1, 0), 3)},
			Settings: utc,
			Expected: 2,
		},
		{
			Desc:     "today missing",
			Records:  []*entity.Record{rec(day(-1, 0), 3), rec(day(-2, 10), 3)},
			Settings: utc,
			Expected: 0,
		},
		{
			Desc:     "gap stops the run",
			Records:  []*entity.Record{rec(day(0, 1), 1), rec(day(-1, 1), 1), rec(day(-3, 1), 1)},
			Settings: utc,
			Expected: 2,
		},
		{
			Desc:     "several records on one day count once",
			Records:  []*entity.Record{rec(day(0, 1), 1), rec(day(0, 2), 1), rec(day(0, 3), 1)},
			Settings: utc,
			Expected: 1,
		},
		{
			Desc: "capped at horizon",
			Records: func() []*entity.Record {
				rs := []*entity.Record{}
				for i := 0; i < 20; i++ {
					rs = append(rs, rec(day(-i, 12), 5))
				}
				return rs
			}(),
			Settings: stats.Settings{Location: time.UTC, StreakHorizon: 10},
			Expected: 10,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			assert.Equal(t, tc.Expected, stats.Streak(tc.Records, now, tc.Settings))
		})
	}
}

func TestStreakUsesConfiguredZone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	s := stats.Settings{Location: tokyo, StreakHorizon: 365}
	// 2025-03-12 23:30 in Tokyo
	localNow := time.Date(2025, time.March, 12, 14, 30, 0, 0, time.UTC)
	records := []*entity.Record{
		// 2025-03-12 08:00 Tokyo, still 2025-03-11 in UTC
		rec(time.Date(2025, time.March, 11, 23, 0, 0, 0, time.UTC), 4),
		// 2025-03-11 10:00 Tokyo
		rec(time.Date(2025, time.March, 11, 1, 0, 0, 0, time.UTC), 4),
	}
	assert.Equal(t, 2, stats.Streak(records, localNow, s))
	assert.Equal(t, 0, stats.Streak(records, localNow, utc))
}

func TestMostCommonQuality(t *testing.T) {
	testCases := []struct {
		Desc     string
		Ratings  []int
		Expected int
	}{
		{Desc: "no records", Expected: 0},
		{Desc: "single", Ratings: []int{6}, Expected: 6},
		{Desc: "clear winner", Ratings: []int{3, 5, 5, 1}, Expected: 5},
		{Desc: "tie goes to lowest", Ratings: []int{7, 2, 7, 2, 4}, Expected: 2},
		{Desc: "all distinct", Ratings: []int{7, 6, 5}, Expected: 5},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			records := []*entity.Record{}
			for i, r := range tc.Ratings {
				records = append(records, rec(day(-i, 10), r))
			}
			assert.Equal(t, tc.Expected, stats.MostCommonQuality(records))
		})
	}
}

func TestDailyAverage(t *testing.T) {
	t.Run("no records", func(t *testing.T) {
		assert.Equal(t, 0.0, stats.DailyAverage(nil, now))
	})
	t.Run("first record less than a day ago", func(t *testing.T) {
		records := []*entity.Record{rec(now.Add(-time.Hour), 3), rec(now.Add(-time.Minute), 3)}
		assert.Equal(t, 2.0, stats.DailyAverage(records, now))
	})
	t.Run("partial days round up", func(t *testing.T) {
		// 2.5 days since first record -> 3 days
		records := []*entity.Record{
			rec(now.Add(-60*time.Hour), 3),
			rec(now.Add(-30*time.Hour), 3),
			rec(now.Add(-time.Hour), 3),
		}
		assert.Equal(t, 1.0, stats.DailyAverage(records, now))
	})
	t.Run("first record at now", func(t *testing.T) {
		assert.Equal(t, 1.0, stats.DailyAverage([]*entity.Record{rec(now, 2)}, now))
	})
}

func TestDistributionTotal(t *testing.T) {
	records := []*entity.Record{}
	for i := 0; i < 40; i++ {
		records = append(records, rec(day(-i%9, i%24), i%7+1))
	}
	q := stats.Quality(records)
	assert.Len(t, q.Distribution, 7)
	assert.Equal(t, len(records), q.TotalRecords)
	assert.Equal(t, len(records), q.Distribution.Total())
	for r := 1; r <= 7; r++ {
		_, ok := q.Distribution[r]
		assert.True(t, ok)
	}
	assert.Equal(t, entity.QualityDistribution{1: 0, 2: 0, 3: 0, 4: 0, 5: 0, 6: 0, 7: 0}, stats.Distribution(nil))
}

func TestBucketCompleteness(t *testing.T) {
	records := []*entity.Record{}
	for i := 0; i < 60; i++ {
		records = append(records, rec(now.Add(-time.Duration(i)*7*time.Hour), i%7+1))
	}
	buckets, summary, err := stats.Daily(records, now, utc, 7)
	require.NoError(t, err)

	windowStart := stats.DayStart(now, time.UTC).AddDate(0, 0, -6)
	expected := 0
	for _, r := range records {
		if !r.OccurredAt.Before(windowStart) {
			expected++
		}
	}
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, expected, total)
	assert.Equal(t, expected, summary.TotalRecords)
}

func TestWeekly(t *testing.T) {
	records := []*entity.Record{
		// Monday of the current week, 00:00
		rec(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), 2),
		rec(time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC), 6),
		// Sunday of the previous week
		rec(time.Date(2025, time.March, 9, 23, 59, 0, 0, time.UTC), 5),
		// out of a 2 week window
		rec(time.Date(2025, time.February, 28, 12, 0, 0, 0, time.UTC), 1),
	}
	buckets, err := stats.Weekly(records, now, utc, 2)
	require.NoError(t, err)
	assert.Equal(t, []entity.Bucket{
		{Date: "2025-03-03", Count: 1, AvgQuality: 5, MinQuality: 5, MaxQuality: 5},
		{Date: "2025-03-10", Count: 2, AvgQuality: 4, MinQuality: 2, MaxQuality: 6},
	}, buckets)

	_, err = stats.Weekly(records, now, utc, 0)
	assert.ErrorIs(t, err, errorvalues.ErrValidation)
}

func TestMonthly(t *testing.T) {
	records := []*entity.Record{
		rec(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), 3),
		rec(time.Date(2025, time.January, 31, 23, 0, 0, 0, time.UTC), 4),
		rec(time.Date(2025, time.January, 2, 1, 0, 0, 0, time.UTC), 7),
		rec(time.Date(2024, time.December, 31, 1, 0, 0, 0, time.UTC), 1),
	}
	buckets, err := stats.Monthly(records, now, utc, 3)
	require.NoError(t, err)
	assert.Equal(t, []entity.Bucket{
		{Date: "2025-01-01", Count: 2, AvgQuality: 5.5, MinQuality: 4, MaxQuality: 7},
		{Date: "2025-03-01", Count: 1, AvgQuality: 3, MinQuality: 3, MaxQuality: 3},
	}, buckets)
}

func TestTrend(t *testing.T) {
	records := []*entity.Record{
		rec(day(0, 8), 4),
		rec(day(-2, 8), 1),
		rec(day(-2, 9), 2),
		rec(day(-10, 9), 7),
	}
	t.Run("dense and ascending", func(t *testing.T) {
		points, err := stats.Trend(records, now, utc, 7)
		require.NoError(t, err)
		assert.Equal(t, []entity.TrendPoint{
			{Date: "2025-03-06"},
			{Date: "2025-03-07"},
			{Date: "2025-03-08"},
			{Date: "2025-03-09"},
			{Date: "2025-03-10", Count: 2, AvgQuality: 1.5},
			{Date: "2025-03-11"},
			{Date: "2025-03-12", Count: 1, AvgQuality: 4},
		}, points)
	})
	t.Run("matches daily buckets", func(t *testing.T) {
		points, err := stats.Trend(records, now, utc, 14)
		require.NoError(t, err)
		assert.Len(t, points, 14)
		buckets, _, err := stats.Daily(records, now, utc, 14)
		require.NoError(t, err)
		byDate := map[string]entity.Bucket{}
		for _, b := range buckets {
			byDate[b.Date] = b
		}
		for _, p := range points {
			b := byDate[p.Date]
			assert.Equal(t, b.Count, p.Count)
			assert.Equal(t, b.AvgQuality, p.AvgQuality)
		}
	})
	t.Run("unsupported window", func(t *testing.T) {
		_, err := stats.Trend(records, now, utc, 10)
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
}

func TestDSTTransitionKeepsCalendarDays(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	s := stats.Settings{Location: berlin, StreakHorizon: 365}
	// clocks go forward on 2025-03-30 in Berlin
	localNow := time.Date(2025, time.March, 31, 12, 0, 0, 0, berlin)
	records := []*entity.Record{
		rec(time.Date(2025, time.March, 31, 0, 30, 0, 0, berlin), 3),
		rec(time.Date(2025, time.March, 30, 23, 30, 0, 0, berlin), 3),
		rec(time.Date(2025, time.March, 29, 0, 10, 0, 0, berlin), 3),
	}
	assert.Equal(t, 3, stats.Streak(records, localNow, s))

	points, err := stats.Trend(records, localNow, s, 7)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-25", points[0].Date)
	assert.Equal(t, "2025-03-31", points[6].Date)
}

func TestNewSettings(t *testing.T) {
	testCases := []struct {
		Desc     string
		TimeZone string
		Horizon  int
		Error    error
	}{
		{Desc: "valid", TimeZone: "Europe/Moscow", Horizon: 365},
		{Desc: "empty zone is utc", TimeZone: "", Horizon: 30},
		{Desc: "unknown zone", TimeZone: "Mars/Olympus", Horizon: 365, Error: errorvalues.ErrConfiguration},
		{Desc: "host local zone", TimeZone: "Local", Horizon: 365, Error: errorvalues.ErrConfiguration},
		{Desc: "host local zone any case", TimeZone: " local ", Horizon: 365, Error: errorvalues.ErrConfiguration},
		{Desc: "zero horizon", TimeZone: "UTC", Horizon: 0, Error: errorvalues.ErrConfiguration},
		{Desc: "negative horizon", TimeZone: "UTC", Horizon: -1, Error: errorvalues.ErrConfiguration},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			s, err := stats.NewSettings(tc.TimeZone, tc.Horizon)
			if tc.Error != nil {
				assert.ErrorIs(t, err, tc.Error)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, s.Location)
			assert.Equal(t, tc.Horizon, s.StreakHorizon)
		})
	}
}

func TestLookbackOutOfRange(t *testing.T) {
	records := []*entity.Record{rec(day(0, 8), 4)}
	for _, n := range []int{0, -1, stats.MaxLookback + 1} {
		buckets, summary, err := stats.Daily(records, now, utc, n)
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
		assert.Nil(t, buckets)
		assert.Zero(t, summary)

		buckets, err = stats.Buckets(records, now, utc, entity.Day, n)
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
		assert.Nil(t, buckets)
	}
	buckets, _, err := stats.Daily(records, now, utc, stats.MaxLookback)
	require.NoError(t, err)
	assert.Len(t, buckets, 1)
}
