package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/limbo/timely/internal/api"
	errorvalues "github.com/limbo/timely/internal/error_values"
	"github.com/limbo/timely/internal/service"
	"github.com/limbo/timely/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ReportServiceMock struct {
	state mockState
	// captured args of the last Generate call
	gotStart  time.Time
	gotEnd    time.Time
	gotPeriod string
}

func (rsmock *ReportServiceMock) Generate(ctx context.Context, uid uuid.UUID, utcStart, utcEnd time.Time, periodLabel string) (*entity.Report, error) {
	if rsmock.state == stateError {
		return nil, errors.New("mocked error")
	}
	rsmock.gotStart = utcStart
	rsmock.gotEnd = utcEnd
	rsmock.gotPeriod = periodLabel
	return &entity.Report{
		Period: periodLabel,
	}, nil
}

type TrendServiceMock struct {
	state mockState
	// captured request of the last CategoryTrend call
	gotReq *service.TrendRequest
}

func (tsmock *TrendServiceMock) CategoryTrend(ctx context.Context, uid uuid.UUID, req *service.TrendRequest) (*entity.CategoryTrend, error) {
	switch tsmock.state {
	case stateError:
		return nil, errors.New("mocked error")
	case stateNotFound:
		return nil, errorvalues.ErrInvalidTimezone
	}
	tsmock.gotReq = req
	return &entity.CategoryTrend{
		Type: req.Type,
		Data: []entity.CategoryTrendSeries{},
	}, nil
}

func reportRequest(target string, authorized bool) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	if authorized {
		r = r.WithContext(context.WithValue(r.Context(), "User-ID", userID))
	}
	return r
}

func TestDailyReportHandler(t *testing.T) {
	mock := ReportServiceMock{}
	serv := api.New(&api.ServicesList{
		ReportService: &mock,
	})
	t.Run("window follows the timezone", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := reportRequest("/api/v1/reports/daily?date=2024-06-01&tz=America/New_York", true)
		serv.DailyReport(rr, r)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		assert.Equal(t, time.Date(2024, 6, 1, 4, 0, 0, 0, time.UTC), mock.gotStart)
		assert.Equal(t, time.Date(2024, 6, 2, 4, 0, 0, 0, time.UTC), mock.gotEnd)
		assert.Equal(t, "2024-06-01", mock.gotPeriod)
	})
	t.Run("UTC by default", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := reportRequest("/api/v1/reports/daily?date=2024-06-01", true)
		serv.DailyReport(rr, r)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), mock.gotStart)
		assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), mock.gotEnd)
	})
	t.Run("invalid date", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := reportRequest("/api/v1/reports/daily?date=junk", true)
		serv.DailyReport(rr, r)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("invalid timezone", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := reportRequest("/api/v1/reports/daily?date=2024-06-01&tz=Mars/Olympus", true)
		serv.DailyReport(rr, r)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("unauthorized", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := reportRequest("/api/v1/reports/daily?date=2024-06-01", false)
		serv.DailyReport(rr, r)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
	t.Run("service error", func(t *testing.T) {
		mock.state = stateError
		rr := httptest.NewRecorder()
		r := reportRequest("/api/v1/reports/daily?date=2024-06-01", true)
		serv.DailyReport(rr, r)
		assert.Equal(t, http.StatusInternalServerError, rr.Result().StatusCode)
	})
}

func TestWeeklyReportHandler(t *testing.T) {
	mock := ReportServiceMock{}
	serv := api.New(&api.ServicesList{
		ReportService: &mock,
	})
	t.Run("monday to sunday around the anchor", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := reportRequest("/api/v1/reports/weekly?date=2024-05-15", true)
		serv.WeeklyReport(rr, r)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		assert.Equal(t, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), mock.gotStart)
		assert.Equal(t, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), mock.gotEnd)
		assert.Equal(t, "2024-05-13 to 2024-05-19", mock.gotPeriod)
	})
	t.Run("sunday anchors to its own week", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := reportRequest("/api/v1/reports/weekly?date=2024-05-19", true)
		serv.WeeklyReport(rr, r)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		assert.Equal(t, "2024-05-13 to 2024-05-19", mock.gotPeriod)
	})
	t.Run("invalid date", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := reportRequest("/api/v1/reports/weekly?date=15-05-2024", true)
		serv.WeeklyReport(rr, r)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
}

func TestMonthlyReportHandler(t *testing.T) {
	mock := ReportServiceMock{}
	serv := api.New(&api.ServicesList{
		ReportService: &mock,
	})
	t.Run("first to last day of month", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := reportRequest("/api/v1/reports/monthly?date=2024-05-15", true)
		serv.MonthlyReport(rr, r)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), mock.gotStart)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), mock.gotEnd)
		assert.Equal(t, "2024-05-01 to 2024-05-31", mock.gotPeriod)
	})
	t.Run("february", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := reportRequest("/api/v1/reports/monthly?date=2024-02-10", true)
		serv.MonthlyReport(rr, r)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		assert.Equal(t, "2024-02-01 to 2024-02-29", mock.gotPeriod)
	})
	t.Run("unauthorized", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := reportRequest("/api/v1/reports/monthly", false)
		serv.MonthlyReport(rr, r)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
}

func TestCategoryTrendsHandler(t *testing.T) {
	mock := TrendServiceMock{}
	serv := api.New(&api.ServicesList{
		TrendService: &mock,
	})
	first, second := uuid.New(), uuid.New()
	t.Run("query params reach the service", func(t *testing.T) {
		rr := httptest.NewRecorder()
		target := "/api/v1/reports/trends?type=weekly&date=2024-05-15&tz=Europe/Berlin&categories=" + first.String() + "," + second.String()
		r := reportRequest(target, true)
		serv.CategoryTrends(rr, r)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		require.NotNil(t, mock.gotReq)
		assert.Equal(t, "weekly", mock.gotReq.Type)
		assert.Equal(t, "2024-05-15", mock.gotReq.Date)
		assert.Equal(t, "Europe/Berlin", mock.gotReq.Timezone)
		assert.Equal(t, []uuid.UUID{first, second}, mock.gotReq.CategoryIDs)
		var trend entity.CategoryTrend
		err := sonic.ConfigDefault.NewDecoder(rr.Body).Decode(&trend)
		require.NoError(t, err)
		assert.Equal(t, "weekly", trend.Type)
	})
	t.Run("empty filter means all categories", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := reportRequest("/api/v1/reports/trends?type=daily", true)
		serv.CategoryTrends(rr, r)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		require.NotNil(t, mock.gotReq)
		assert.Equal(t, 0, len(mock.gotReq.CategoryIDs))
	})
	t.Run("malformed category list", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := reportRequest("/api/v1/reports/trends?categories=not-a-uuid", true)
		serv.CategoryTrends(rr, r)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("invalid timezone from service", func(t *testing.T) {
		mock.state = stateNotFound
		rr := httptest.NewRecorder()
		r := reportRequest("/api/v1/reports/trends?tz=Mars/Olympus", true)
		serv.CategoryTrends(rr, r)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
		mock.state = stateSuccess
	})
	t.Run("unauthorized", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := reportRequest("/api/v1/reports/trends", false)
		serv.CategoryTrends(rr, r)
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
}
