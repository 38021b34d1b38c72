package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/healthlog/internal/error_values"
	"github.com/limbo/healthlog/pkg/entity"
	"github.com/limbo/healthlog/pkg/httputil"
)

type BatchDeleteRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type BatchDeleteResponse struct {
	DeletedCount int `json:"deleted_count"`
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := sonic.ConfigDefault.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError maps service errors to responses. Rejected input and
// missing records are expected outcomes and logged at info.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, action string, err error) {
	var verr *errorvalues.ValidationError
	switch {
	case errors.As(err, &verr):
		logger.Info(action+" rejected: validation failed", slog.String("error", verr.Error()))
		httputil.WriteFieldErrorsResponse(w, "validation failed", verr.Errors)
	case errors.Is(err, errorvalues.ErrRecordNotFound):
		logger.Info(action + " error: record not found")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "record not found", nil)
	default:
		attrs := []any{slog.String("error", err.Error())}
		var serr *errorvalues.StorageError
		if errors.As(err, &serr) && serr.Cause() != nil {
			attrs = append(attrs, slog.String("cause", serr.Cause().Error()))
		}
		logger.Error(action+" error: service error", attrs...)
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while trying to "+action, nil)
	}
}

func writeBadRequest(w http.ResponseWriter, logger *slog.Logger, action string, verr *errorvalues.ValidationError) {
	logger.Info(action+" rejected: bad request", slog.String("error", verr.Error()))
	httputil.WriteFieldErrorsResponse(w, "invalid request", verr.Errors)
}

// owner returns the authenticated owner or answers 401.
func owner(w http.ResponseWriter, r *http.Request, logger *slog.Logger, action string) (string, bool) {
	ownerID, err := GetOwnerFromContext(r)
	if err != nil {
		logger.Info(action + " error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return "", false
	}
	return ownerID, true
}

func recordID(w http.ResponseWriter, r *http.Request, logger *slog.Logger, action string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, logger, action, errorvalues.NewValidationError("id", "must be a valid uuid"))
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.requestTimeout)
}

func (s *Server) invalidateStats(ctx context.Context, logger *slog.Logger, ownerID string) {
	if s.statsCache == nil {
		return
	}
	if err := s.statsCache.Invalidate(ctx, ownerID); err != nil {
		logger.Warn("stats cache invalidation failed", slog.String("error", err.Error()))
	}
}

func (s *Server) CreateRecord(w http.ResponseWriter, r *http.Request) {
	const action = "create record"
	logger := GetLoggerFromCtx(r.Context())
	ownerID, ok := owner(w, r, logger, action)
	if !ok {
		return
	}
	var input entity.RecordInput
	if err := decodeBody(r, &input); err != nil {
		logger.Info("create record error: invalid request body", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	record, err := s.recordsService.Create(ctx, ownerID, input)
	if err != nil {
		writeServiceError(w, logger, action, err)
		return
	}
	s.invalidateStats(ctx, logger, ownerID)
	httputil.WriteJSONResponse(w, http.StatusCreated, record)
	logger.Info("record created", slog.String("record_id", record.ID.String()))
}

func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
	const action = "get record"
	logger := GetLoggerFromCtx(r.Context())
	ownerID, ok := owner(w, r, logger, action)
	if !ok {
		return
	}
	id, ok := recordID(w, r, logger, action)
	if !ok {
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	record, err := s.recordsService.Get(ctx, ownerID, id)
	if err != nil {
		writeServiceError(w, logger, action, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, record)
}

func (s *Server) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	const action = "update record"
	logger := GetLoggerFromCtx(r.Context())
	ownerID, ok := owner(w, r, logger, action)
	if !ok {
		return
	}
	id, ok := recordID(w, r, logger, action)
	if !ok {
		return
	}
	var patch entity.RecordPatch
	if err := decodeBody(r, &patch); err != nil {
		logger.Info("update record error: invalid request body", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	record, err := s.recordsService.Update(ctx, ownerID, id, patch)
	if err != nil {
		writeServiceError(w, logger, action, err)
		return
	}
	s.invalidateStats(ctx, logger, ownerID)
	httputil.WriteJSONResponse(w, http.StatusOK, record)
	logger.Info("record updated", slog.String("record_id", id.String()))
}

func (s *Server) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	const action = "delete record"
	logger := GetLoggerFromCtx(r.Context())
	ownerID, ok := owner(w, r, logger, action)
	if !ok {
		return
	}
	id, ok := recordID(w, r, logger, action)
	if !ok {
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	if err := s.recordsService.Delete(ctx, ownerID, id); err != nil {
		writeServiceError(w, logger, action, err)
		return
	}
	s.invalidateStats(ctx, logger, ownerID)
	w.WriteHeader(http.StatusNoContent)
	logger.Info("record deleted", slog.String("record_id", id.String()))
}

func (s *Server) DeleteRecords(w http.ResponseWriter, r *http.Request) {
	const action = "delete records"
	logger := GetLoggerFromCtx(r.Context())
	ownerID, ok := owner(w, r, logger, action)
	if !ok {
		return
	}
	var req BatchDeleteRequest
	if err := decodeBody(r, &req); err != nil {
		logger.Info("delete records error: invalid request body", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	deleted, err := s.recordsService.DeleteMany(ctx, ownerID, req.IDs)
	if err != nil {
		writeServiceError(w, logger, action, err)
		return
	}
	if deleted > 0 {
		s.invalidateStats(ctx, logger, ownerID)
	}
	httputil.WriteJSONResponse(w, http.StatusOK, BatchDeleteResponse{DeletedCount: deleted})
	logger.Info("records deleted", slog.Int("requested", len(req.IDs)), slog.Int("deleted", deleted))
}

func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request) {
	const action = "list records"
	logger := GetLoggerFromCtx(r.Context())
	ownerID, ok := owner(w, r, logger, action)
	if !ok {
		return
	}
	opts, verr := parseListOptions(r)
	if verr != nil {
		writeBadRequest(w, logger, action, verr)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	page, err := s.recordsService.List(ctx, ownerID, opts)
	if err != nil {
		writeServiceError(w, logger, action, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, page)
}

func parseListOptions(r *http.Request) (entity.ListOptions, *errorvalues.ValidationError) {
	q := r.URL.Query()
	verr := &errorvalues.ValidationError{}
	var opts entity.ListOptions
	opts.Page = intParam(q.Get("page"), 0, "page", verr)
	opts.PageSize = intParam(q.Get("page_size"), 0, "page_size", verr)
	opts.StartDate = dateParam(q.Get("start_date"), false, "start_date", verr)
	opts.EndDate = dateParam(q.Get("end_date"), true, "end_date", verr)
	if !verr.Empty() {
		return opts, verr
	}
	return opts, nil
}

func intParam(raw string, def int, field string, verr *errorvalues.ValidationError) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		verr.Add(field, "must be an integer")
		return def
	}
	return n
}

// dateParam accepts RFC 3339 or YYYY-MM-DD (UTC). A bare end date covers
// the whole day.
func dateParam(raw string, endOfDay bool, field string, verr *errorvalues.ValidationError) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return &t
	}
	t, err := time.Parse(entity.DateLayout, raw)
	if err != nil {
		verr.Add(field, "must be an RFC 3339 timestamp or YYYY-MM-DD date")
		return nil
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Microsecond)
	}
	return &t
}
