package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/timely/internal/error_values"
	"github.com/limbo/timely/internal/service"
	"github.com/limbo/timely/pkg/httputil"
	"github.com/limbo/timely/pkg/timeutil"
)

// localAnchor resolves the date and tz query params into a local midnight
// anchor. Empty date means today in the requested timezone.
func localAnchor(dateStr, tzName string) (time.Time, error) {
	loc, err := timeutil.LoadLocation(tzName)
	if err != nil {
		return time.Time{}, err
	}
	var d time.Time
	if dateStr == "" {
		d = time.Now().In(loc)
	} else {
		d, err = timeutil.ParseDate(dateStr)
		if err != nil {
			return time.Time{}, err
		}
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc), nil
}

func writeReportError(w http.ResponseWriter, logger *slog.Logger, action string, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrInvalidDate):
		logger.Error(action + " error: invalid date param")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, errorvalues.ErrInvalidDate.Error(), nil)
	case errors.Is(err, errorvalues.ErrInvalidTimezone):
		logger.Error(action + " error: invalid tz param")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, errorvalues.ErrInvalidTimezone.Error(), nil)
	case errors.Is(err, errorvalues.ErrInvalidCategoryList):
		logger.Error(action + " error: invalid categories param")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, errorvalues.ErrInvalidCategoryList.Error(), nil)
	default:
		logger.Error(action+" error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while building report", nil)
	}
}

func (s *Server) DailyReport(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("daily report error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	tzName := r.URL.Query().Get("tz")
	anchor, err := localAnchor(r.URL.Query().Get("date"), tzName)
	if err != nil {
		writeReportError(w, logger, "daily report", err)
		return
	}
	utcStart, utcEnd, err := timeutil.LocalRangeToUTC(timeutil.DateLabel(anchor), "", tzName)
	if err != nil {
		writeReportError(w, logger, "daily report", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	report, err := s.reportService.Generate(ctx, uid, utcStart, utcEnd, timeutil.DateLabel(anchor))
	if err != nil {
		writeReportError(w, logger, "daily report", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, report)
	logger.Info("daily report provided")
}

func (s *Server) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("weekly report error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	tzName := r.URL.Query().Get("tz")
	anchor, err := localAnchor(r.URL.Query().Get("date"), tzName)
	if err != nil {
		writeReportError(w, logger, "weekly report", err)
		return
	}
	monday := timeutil.StartOfISOWeek(anchor)
	sunday := monday.AddDate(0, 0, 6)
	utcStart, utcEnd, err := timeutil.LocalRangeToUTC(timeutil.DateLabel(monday), timeutil.DateLabel(monday.AddDate(0, 0, 7)), tzName)
	if err != nil {
		writeReportError(w, logger, "weekly report", err)
		return
	}
	label := timeutil.DateLabel(monday) + " to " + timeutil.DateLabel(sunday)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	report, err := s.reportService.Generate(ctx, uid, utcStart, utcEnd, label)
	if err != nil {
		writeReportError(w, logger, "weekly report", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, report)
	logger.Info("weekly report provided")
}

func (s *Server) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("monthly report error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	tzName := r.URL.Query().Get("tz")
	anchor, err := localAnchor(r.URL.Query().Get("date"), tzName)
	if err != nil {
		writeReportError(w, logger, "monthly report", err)
		return
	}
	first := timeutil.StartOfMonth(anchor)
	nextFirst := first.AddDate(0, 1, 0)
	utcStart, utcEnd, err := timeutil.LocalRangeToUTC(timeutil.DateLabel(first), timeutil.DateLabel(nextFirst), tzName)
	if err != nil {
		writeReportError(w, logger, "monthly report", err)
		return
	}
	label := timeutil.DateLabel(first) + " to " + timeutil.DateLabel(nextFirst.AddDate(0, 0, -1))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	report, err := s.reportService.Generate(ctx, uid, utcStart, utcEnd, label)
	if err != nil {
		writeReportError(w, logger, "monthly report", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, report)
	logger.Info("monthly report provided")
}

func (s *Server) CategoryTrends(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("category trends error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	query := r.URL.Query()
	categoryIDs, err := parseCategoryList(query.Get("categories"))
	if err != nil {
		writeReportError(w, logger, "category trends", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	trend, err := s.trendService.CategoryTrend(ctx, uid, &service.TrendRequest{
		Type:        query.Get("type"),
		Date:        query.Get("date"),
		Timezone:    query.Get("tz"),
		CategoryIDs: categoryIDs,
	})
	if err != nil {
		writeReportError(w, logger, "category trends", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, trend)
	logger.Info("category trends provided")
}

func parseCategoryList(raw string) ([]uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, errorvalues.ErrInvalidCategoryList
		}
		ids = append(ids, id)
	}
	return ids, nil
}
