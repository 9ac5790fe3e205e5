package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/timely/internal/error_values"
	"github.com/limbo/timely/internal/service"
	"github.com/limbo/timely/pkg/entity"
	"github.com/limbo/timely/pkg/httputil"
)

type CategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type GetCategoriesResponse struct {
	UserID     string             `json:"uid"`
	Categories []*entity.Category `json:"categories"`
}

func writeCategoryError(w http.ResponseWriter, logger *slog.Logger, action string, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrValidation):
		logger.Error(action + " error: invalid payload")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, errorvalues.ErrCategoryNotFound):
		logger.Error(action + " error: unexist category")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "category doesn't exist", nil)
	case errors.Is(err, errorvalues.ErrWrongOwner):
		logger.Error(action + " error: category has different owner")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "category doesn't exist", nil)
	case errors.Is(err, errorvalues.ErrDefaultReadOnly):
		logger.Error(action + " error: attempt to modify default category")
		httputil.WriteErrorResponse(w, http.StatusForbidden, errorvalues.ErrDefaultReadOnly.Error(), nil)
	case errors.Is(err, errorvalues.ErrUserNotFound):
		logger.Error(action + " error: unexist user")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
	default:
		logger.Error(action+" error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func (s *Server) CreateCategory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create category error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req CategoryRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create category error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	category, err := s.categoryService.CreateCategory(ctx, uid, &service.CategoryRequest{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		writeCategoryError(w, logger, "create category", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, category)
	logger.Info("category created")
}

func (s *Server) GetCategories(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get categories error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	categories, err := s.categoryService.GetVisibleCategories(ctx, uid)
	if err != nil {
		logger.Error("getting categories list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting categories list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetCategoriesResponse{
		UserID:     uid.String(),
		Categories: categories,
	})
	logger.Info("categories provided")
}

func (s *Server) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update category error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("update category error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid category id in path value", nil)
		return
	}
	var req CategoryRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update category error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	category, err := s.categoryService.UpdateCategory(ctx, id, uid, &service.CategoryRequest{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		writeCategoryError(w, logger, "update category", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, category)
	logger.Info("category updated")
}

func (s *Server) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("category deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("category deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid category id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.categoryService.DeleteCategory(ctx, id, uid)
	if err != nil {
		writeCategoryError(w, logger, "category deletion", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"deleted": id.String()})
	logger.Info("category deleted")
}
