package api_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/limbo/healthlog/internal/api"
	errorvalues "github.com/limbo/healthlog/internal/error_values"
	"github.com/limbo/healthlog/internal/service/mocks"
	"github.com/limbo/healthlog/pkg/entity"
	jwtservice "github.com/limbo/healthlog/pkg/jwt_service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	ownerID    = "owner-a"
)

type testEnv struct {
	server  *api.Server
	records *mocks.MockRecordsServiceI
	stats   *mocks.MockStatsServiceI
	token   string
}

func setup(t *testing.T, cache api.StatsCacheI) testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	jwtService := jwtservice.New(testSecret)
	token, err := jwtService.GenerateToken(ownerID)
	require.NoError(t, err)
	env := testEnv{
		records: mocks.NewMockRecordsServiceI(ctrl),
		stats:   mocks.NewMockStatsServiceI(ctrl),
		token:   token,
	}
	env.server = api.New(&api.ServicesList{
		RecordsService: env.records,
		StatsService:   env.stats,
		JwtService:     jwtService,
		StatsCache:     cache,
	})
	return env
}

func (e testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := sonic.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+e.token)
	rr := httptest.NewRecorder()
	e.server.ServeHTTP(rr, req)
	return rr
}

type errorBody struct {
	Code    int                      `json:"code"`
	Message string                   `json:"message"`
	Errors  []errorvalues.FieldError `json:"errors"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, sonic.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	env := setup(t, nil)
	rr := httptest.NewRecorder()
	env.server.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestAuth(t *testing.T) {
	env := setup(t, nil)
	expired, err := jwtservice.New(testSecret).WithTTL(-time.Minute).GenerateToken(ownerID)
	require.NoError(t, err)

	testCases := []struct {
		Desc   string
		Header string
	}{
		{Desc: "no header"},
		{Desc: "not bearer", Header: "Basic abc"},
		{Desc: "garbage token", Header: "Bearer abc"},
		{Desc: "expired token", Header: "Bearer " + expired},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/records", nil)
			if tc.Header != "" {
				req.Header.Set("Authorization", tc.Header)
			}
			rr := httptest.NewRecorder()
			env.server.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestCreateRecordHandler(t *testing.T) {
	env := setup(t, nil)
	occurred := time.Date(2025, time.March, 12, 8, 0, 0, 0, time.UTC)

	testCases := []struct {
		Desc         string
		Body         any
		Status       int
		Fields       []string
		MockPrepFunc func()
	}{
		{
			Desc:   "created",
			Body:   entity.RecordInput{OccurredAt: occurred, QualityRating: 4},
			Status: http.StatusCreated,
			MockPrepFunc: func() {
				env.records.EXPECT().Create(gomock.Any(), ownerID, entity.RecordInput{OccurredAt: occurred, QualityRating: 4}).
					Return(&entity.Record{ID: uuid.New(), OwnerID: ownerID, OccurredAt: occurred, QualityRating: 4}, nil)
			},
		},
		{
			Desc:         "owner in body is rejected",
			Body:         `{"occurred_at":"2025-03-12T08:00:00Z","quality_rating":4,"owner_id":"owner-b"}`,
			Status:       http.StatusBadRequest,
			MockPrepFunc: func() {},
		},
		{
			Desc:         "invalid body",
			Body:         `{"quality_rating":`,
			Status:       http.StatusBadRequest,
			MockPrepFunc: func() {},
		},
		{
			Desc:   "every field error listed",
			Body:   entity.RecordInput{OccurredAt: occurred, QualityRating: 9},
			Status: http.StatusBadRequest,
			Fields: []string{"occurred_at", "quality_rating"},
			MockPrepFunc: func() {
				verr := errorvalues.NewValidationError("occurred_at", "must not be in the future")
				verr.Add("quality_rating", "must be between 1 and 7")
				env.records.EXPECT().Create(gomock.Any(), ownerID, gomock.Any()).Return(nil, verr)
			},
		},
		{
			Desc:   "storage failure is generic",
			Body:   entity.RecordInput{OccurredAt: occurred, QualityRating: 4},
			Status: http.StatusInternalServerError,
			MockPrepFunc: func() {
				env.records.EXPECT().Create(gomock.Any(), ownerID, gomock.Any()).
					Return(nil, errorvalues.NewStorageError("create record", errors.New("connection refused")))
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := env.do(t, http.MethodPost, "/api/v1/records", tc.Body)
			assert.Equal(t, tc.Status, rr.Code)
			assert.NotContains(t, rr.Body.String(), "connection refused")
			if len(tc.Fields) > 0 {
				body := decode[errorBody](t, rr)
				fields := []string{}
				for _, fe := range body.Errors {
					fields = append(fields, fe.Field)
				}
				assert.ElementsMatch(t, tc.Fields, fields)
			}
		})
	}
}

func TestRecordByIDHandlers(t *testing.T) {
	env := setup(t, nil)
	id := uuid.New()
	path := "/api/v1/records/" + id.String()

	t.Run("get", func(t *testing.T) {
		env.records.EXPECT().Get(gomock.Any(), ownerID, id).Return(&entity.Record{ID: id, OwnerID: ownerID, QualityRating: 3}, nil)
		rr := env.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, id, decode[entity.Record](t, rr).ID)
	})
	t.Run("get foreign or missing", func(t *testing.T) {
		env.records.EXPECT().Get(gomock.Any(), ownerID, id).Return(nil, errorvalues.ErrRecordNotFound)
		rr := env.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
	t.Run("invalid id", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/api/v1/records/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
	t.Run("patch", func(t *testing.T) {
		rating := 6
		env.records.EXPECT().Update(gomock.Any(), ownerID, id, entity.RecordPatch{QualityRating: &rating}).
			Return(&entity.Record{ID: id, OwnerID: ownerID, QualityRating: 6}, nil)
		rr := env.do(t, http.MethodPatch, path, `{"quality_rating":6}`)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 6, decode[entity.Record](t, rr).QualityRating)
	})
	t.Run("delete", func(t *testing.T) {
		env.records.EXPECT().Delete(gomock.Any(), ownerID, id).Return(nil)
		rr := env.do(t, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
	t.Run("delete context error", func(t *testing.T) {
		env.records.EXPECT().Delete(gomock.Any(), ownerID, id).
			Return(errorvalues.NewStorageError("delete record", context.DeadlineExceeded))
		rr := env.do(t, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestBatchDeleteHandler(t *testing.T) {
	env := setup(t, nil)
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	env.records.EXPECT().DeleteMany(gomock.Any(), ownerID, ids).Return(1, nil)

	rr := env.do(t, http.MethodPost, "/api/v1/records/batch-delete", api.BatchDeleteRequest{IDs: ids})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decode[api.BatchDeleteResponse](t, rr).DeletedCount)
}

func TestListRecordsHandler(t *testing.T) {
	env := setup(t, nil)

	t.Run("query parsed", func(t *testing.T) {
		start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, time.March, 10, 23, 59, 59, 999999000, time.UTC)
		env.records.EXPECT().List(gomock.Any(), ownerID, entity.ListOptions{
			Page: 2, PageSize: 10, StartDate: &start, EndDate: &end,
		}).Return(&entity.RecordsPage{
			Records:    []*entity.Record{},
			Pagination: entity.Pagination{Page: 2, PageSize: 10, Total: 15, TotalPages: 2, HasPrev: true},
		}, nil)
		rr := env.do(t, http.MethodGet, "/api/v1/records?page=2&page_size=10&start_date=2025-03-01&end_date=2025-03-10", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		page := decode[entity.RecordsPage](t, rr)
		assert.Equal(t, 15, page.Pagination.Total)
		assert.True(t, page.Pagination.HasPrev)
	})
	t.Run("bad query", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/api/v1/records?page=x&start_date=yesterday", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Len(t, decode[errorBody](t, rr).Errors, 2)
	})
	t.Run("start after end", func(t *testing.T) {
		env.records.EXPECT().List(gomock.Any(), ownerID, gomock.Any()).
			Return(nil, errorvalues.NewValidationError("start_date", "must not be after end_date"))
		rr := env.do(t, http.MethodGet, "/api/v1/records?start_date=2025-03-10&end_date=2025-03-01", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestStatsHandlers(t *testing.T) {
	env := setup(t, nil)

	t.Run("overview rounds averages", func(t *testing.T) {
		env.stats.EXPECT().Overview(gomock.Any(), ownerID).Return(&entity.PeriodSummary{TotalCount: 7, DailyAverage: 2.3333333}, nil)
		rr := env.do(t, http.MethodGet, "/api/v1/stats/overview", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 2.33, decode[entity.PeriodSummary](t, rr).DailyAverage)
	})
	t.Run("daily default window", func(t *testing.T) {
		env.stats.EXPECT().Daily(gomock.Any(), ownerID, 30).Return(&entity.DailyStats{
			Days: []entity.Bucket{{Date: "2025-03-12", Count: 3, AvgQuality: 11.0 / 3, MinQuality: 3, MaxQuality: 5}},
		}, nil)
		rr := env.do(t, http.MethodGet, "/api/v1/stats/daily", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 3.67, decode[entity.DailyStats](t, rr).Days[0].AvgQuality)
	})
	t.Run("weekly", func(t *testing.T) {
		env.stats.EXPECT().Weekly(gomock.Any(), ownerID, 8).Return([]entity.Bucket{}, nil)
		rr := env.do(t, http.MethodGet, "/api/v1/stats/weekly?weeks=8", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 8, decode[api.BucketsResponse](t, rr).Periods)
	})
	t.Run("monthly out of range", func(t *testing.T) {
		env.stats.EXPECT().Monthly(gomock.Any(), ownerID, 0).Return(nil, errorvalues.NewValidationError("months", "must be between 1 and 366"))
		rr := env.do(t, http.MethodGet, "/api/v1/stats/monthly?months=0", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
	t.Run("quality", func(t *testing.T) {
		dist := entity.NewQualityDistribution()
		dist[2] = 2
		env.stats.EXPECT().Quality(gomock.Any(), ownerID).Return(&entity.QualityStats{Distribution: dist, TotalRecords: 2, MostCommon: 2}, nil)
		rr := env.do(t, http.MethodGet, "/api/v1/stats/quality", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 2, decode[entity.QualityStats](t, rr).Distribution[2])
	})
	t.Run("frequency", func(t *testing.T) {
		env.stats.EXPECT().Frequency(gomock.Any(), ownerID, 14).Return(make([]entity.TrendPoint, 14), nil)
		rr := env.do(t, http.MethodGet, "/api/v1/stats/frequency?days=14", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decode[api.FrequencyResponse](t, rr).Points, 14)
	})
	t.Run("frequency not a number", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/api/v1/stats/frequency?days=week", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

type memoryCache struct {
	mu    sync.Mutex
	views map[string]map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{views: map[string]map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, ownerID, view string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.views[ownerID][view]
	if !ok {
		return false, nil
	}
	return true, sonic.Unmarshal(data, dst)
}

func (c *memoryCache) Set(_ context.Context, ownerID, view string, value any) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.views[ownerID] == nil {
		c.views[ownerID] = map[string][]byte{}
	}
	c.views[ownerID][view] = data
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, ownerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.views, ownerID)
	return nil
}

func TestStatsCache(t *testing.T) {
	cache := newMemoryCache()
	env := setup(t, cache)

	env.stats.EXPECT().Overview(gomock.Any(), ownerID).Return(&entity.PeriodSummary{TotalCount: 1}, nil).Times(1)
	for range 2 {
		rr := env.do(t, http.MethodGet, "/api/v1/stats/overview", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 1, decode[entity.PeriodSummary](t, rr).TotalCount)
	}

	env.records.EXPECT().Create(gomock.Any(), ownerID, gomock.Any()).Return(&entity.Record{ID: uuid.New(), OwnerID: ownerID}, nil)
	rr := env.do(t, http.MethodPost, "/api/v1/records", `{"occurred_at":"2025-03-12T08:00:00Z","quality_rating":4}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	env.stats.EXPECT().Overview(gomock.Any(), ownerID).Return(&entity.PeriodSummary{TotalCount: 2}, nil).Times(1)
	rr = env.do(t, http.MethodGet, "/api/v1/stats/overview", nil)
	assert.Equal(t, 2, decode[entity.PeriodSummary](t, rr).TotalCount)
}
