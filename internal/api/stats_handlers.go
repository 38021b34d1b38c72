package api

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	errorvalues "github.com/limbo/healthlog/internal/error_values"
	"github.com/limbo/healthlog/internal/stats"
	"github.com/limbo/healthlog/pkg/entity"
	"github.com/limbo/healthlog/pkg/httputil"
)

type BucketsResponse struct {
	Periods int             `json:"periods"`
	Buckets []entity.Bucket `json:"buckets"`
}

type FrequencyResponse struct {
	Days   int                 `json:"days"`
	Points []entity.TrendPoint `json:"points"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundBuckets(buckets []entity.Bucket) []entity.Bucket {
	out := make([]entity.Bucket, len(buckets))
	for i, b := range buckets {
		b.AvgQuality = round2(b.AvgQuality)
		out[i] = b
	}
	return out
}

// cachedView serves view from the stats cache when possible. Cache
// failures only cost a recomputation.
func cachedView[T any](ctx context.Context, s *Server, logger *slog.Logger, ownerID, view string, compute func(context.Context) (T, error)) (T, error) {
	if s.statsCache != nil {
		var cached T
		hit, err := s.statsCache.Get(ctx, ownerID, view, &cached)
		if err != nil {
			logger.Warn("stats cache read failed", slog.String("view", view), slog.String("error", err.Error()))
		} else if hit {
			return cached, nil
		}
	}
	value, err := compute(ctx)
	if err != nil {
		return value, err
	}
	if s.statsCache != nil {
		if err := s.statsCache.Set(ctx, ownerID, view, value); err != nil {
			logger.Warn("stats cache write failed", slog.String("view", view), slog.String("error", err.Error()))
		}
	}
	return value, nil
}

func windowParam(r *http.Request, name string, def int) (int, *errorvalues.ValidationError) {
	verr := &errorvalues.ValidationError{}
	n := intParam(r.URL.Query().Get(name), def, name, verr)
	if !verr.Empty() {
		return 0, verr
	}
	return n, nil
}

func (s *Server) StatsOverview(w http.ResponseWriter, r *http.Request) {
	const action = "get stats overview"
	logger := GetLoggerFromCtx(r.Context())
	ownerID, ok := owner(w, r, logger, action)
	if !ok {
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	summary, err := cachedView(ctx, s, logger, ownerID, "overview", func(ctx context.Context) (entity.PeriodSummary, error) {
		summary, err := s.statsService.Overview(ctx, ownerID)
		if err != nil {
			return entity.PeriodSummary{}, err
		}
		summary.DailyAverage = round2(summary.DailyAverage)
		return *summary, nil
	})
	if err != nil {
		writeServiceError(w, logger, action, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, summary)
}

func (s *Server) StatsDaily(w http.ResponseWriter, r *http.Request) {
	const action = "get daily stats"
	logger := GetLoggerFromCtx(r.Context())
	ownerID, ok := owner(w, r, logger, action)
	if !ok {
		return
	}
	days, verr := windowParam(r, "days", stats.DefaultDailyDays)
	if verr != nil {
		writeBadRequest(w, logger, action, verr)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	daily, err := cachedView(ctx, s, logger, ownerID, "daily:"+strconv.Itoa(days), func(ctx context.Context) (entity.DailyStats, error) {
		daily, err := s.statsService.Daily(ctx, ownerID, days)
		if err != nil {
			return entity.DailyStats{}, err
		}
		daily.Days = roundBuckets(daily.Days)
		daily.Summary.AvgDaily = round2(daily.Summary.AvgDaily)
		return *daily, nil
	})
	if err != nil {
		writeServiceError(w, logger, action, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, daily)
}

func (s *Server) StatsWeekly(w http.ResponseWriter, r *http.Request) {
	s.bucketStats(w, r, "get weekly stats", "weeks", stats.DefaultWeeklyWeeks, s.statsService.Weekly)
}

func (s *Server) StatsMonthly(w http.ResponseWriter, r *http.Request) {
	s.bucketStats(w, r, "get monthly stats", "months", stats.DefaultMonthlyCount, s.statsService.Monthly)
}

func (s *Server) bucketStats(w http.ResponseWriter, r *http.Request, action, param string, def int,
	load func(ctx context.Context, ownerID string, n int) ([]entity.Bucket, error)) {
	logger := GetLoggerFromCtx(r.Context())
	ownerID, ok := owner(w, r, logger, action)
	if !ok {
		return
	}
	n, verr := windowParam(r, param, def)
	if verr != nil {
		writeBadRequest(w, logger, action, verr)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	resp, err := cachedView(ctx, s, logger, ownerID, param+":"+strconv.Itoa(n), func(ctx context.Context) (BucketsResponse, error) {
		buckets, err := load(ctx, ownerID, n)
		if err != nil {
			return BucketsResponse{}, err
		}
		return BucketsResponse{Periods: n, Buckets: roundBuckets(buckets)}, nil
	})
	if err != nil {
		writeServiceError(w, logger, action, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, resp)
}

func (s *Server) StatsQuality(w http.ResponseWriter, r *http.Request) {
	const action = "get quality stats"
	logger := GetLoggerFromCtx(r.Context())
	ownerID, ok := owner(w, r, logger, action)
	if !ok {
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	quality, err := cachedView(ctx, s, logger, ownerID, "quality", func(ctx context.Context) (entity.QualityStats, error) {
		quality, err := s.statsService.Quality(ctx, ownerID)
		if err != nil {
			return entity.QualityStats{}, err
		}
		return *quality, nil
	})
	if err != nil {
		writeServiceError(w, logger, action, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, quality)
}

func (s *Server) StatsFrequency(w http.ResponseWriter, r *http.Request) {
	const action = "get frequency stats"
	logger := GetLoggerFromCtx(r.Context())
	ownerID, ok := owner(w, r, logger, action)
	if !ok {
		return
	}
	days, verr := windowParam(r, "days", stats.TrendWindows[0])
	if verr != nil {
		writeBadRequest(w, logger, action, verr)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	resp, err := cachedView(ctx, s, logger, ownerID, "frequency:"+strconv.Itoa(days), func(ctx context.Context) (FrequencyResponse, error) {
		points, err := s.statsService.Frequency(ctx, ownerID, days)
		if err != nil {
			return FrequencyResponse{}, err
		}
		for i := range points {
			points[i].AvgQuality = round2(points[i].AvgQuality)
		}
		return FrequencyResponse{Days: days, Points: points}, nil
	})
	if err != nil {
		writeServiceError(w, logger, action, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, resp)
}
