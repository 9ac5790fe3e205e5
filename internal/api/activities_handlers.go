package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/timely/internal/error_values"
	"github.com/limbo/timely/internal/service"
	"github.com/limbo/timely/pkg/entity"
	"github.com/limbo/timely/pkg/httputil"
)

type ActivityRequest struct {
	CategoryID  uuid.UUID `json:"category_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Mood        string    `json:"mood"`
	EnergyLevel int       `json:"energy_level"`
	Notes       string    `json:"notes"`
}

type GetActivitiesResponse struct {
	UserID     string             `json:"uid"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Activities []*entity.Activity `json:"activities"`
}

func (req *ActivityRequest) toService() *service.ActivityRequest {
	return &service.ActivityRequest{
		CategoryID:  req.CategoryID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Mood:        req.Mood,
		EnergyLevel: req.EnergyLevel,
		Notes:       req.Notes,
	}
}

// writeActivityError maps service sentinels to client statuses. Overlaps are
// conflicts the user can correct, never server faults.
func writeActivityError(w http.ResponseWriter, logger *slog.Logger, action string, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrValidation):
		logger.Error(action + " error: invalid payload")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, errorvalues.ErrInvalidInterval):
		logger.Error(action + " error: end before start")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, errorvalues.ErrInvalidInterval.Error(), nil)
	case errors.Is(err, errorvalues.ErrActivityOverlap):
		logger.Error(action + " error: overlapping interval")
		httputil.WriteErrorResponse(w, http.StatusConflict, errorvalues.ErrActivityOverlap.Error(), nil)
	case errors.Is(err, errorvalues.ErrActivityNotFound):
		logger.Error(action + " error: unexist activity")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "activity doesn't exist", nil)
	case errors.Is(err, errorvalues.ErrWrongOwner):
		logger.Error(action + " error: activity has different owner")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "activity doesn't exist", nil)
	case errors.Is(err, errorvalues.ErrCategoryNotFound):
		logger.Error(action + " error: unexist category")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "category doesn't exist", nil)
	case errors.Is(err, errorvalues.ErrUserNotFound):
		logger.Error(action + " error: unexist user")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
	default:
		logger.Error(action+" error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create activity error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req ActivityRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create activity error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	activity, err := s.activityService.CreateActivity(ctx, uid, req.toService())
	if err != nil {
		writeActivityError(w, logger, "create activity", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, activity)
	logger.Info("activity created")
}

func (s *Server) GetActivities(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get activities error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	activities, err := s.activityService.GetUserActivities(ctx, uid, service.PaginationOpts{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error("getting activities list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting activities list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetActivitiesResponse{
		UserID:     uid.String(),
		Page:       page,
		Limit:      limit,
		Activities: activities,
	})
	logger.Info("activities provided")
}

func (s *Server) GetActivity(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get activity error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get activity error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid activity id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	activity, err := s.activityService.GetActivity(ctx, id, uid)
	if err != nil {
		writeActivityError(w, logger, "get activity", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, activity)
	logger.Info("activity provided")
}

func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update activity error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("update activity error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid activity id in path value", nil)
		return
	}
	var req ActivityRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update activity error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	activity, err := s.activityService.UpdateActivity(ctx, id, uid, req.toService())
	if err != nil {
		writeActivityError(w, logger, "update activity", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, activity)
	logger.Info("activity updated")
}

func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("activity deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("activity deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid activity id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.activityService.DeleteActivity(ctx, id, uid)
	if err != nil {
		writeActivityError(w, logger, "activity deletion", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"deleted": id.String()})
	logger.Info("activity deleted")
}
