package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/timely/pkg/entity"
)

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type CategoryRequest struct {
	Name  string `validate:"required,min=1,max=100"`
	Color string `validate:"required,hex_color"`
}

type ActivityRequest struct {
	CategoryID  uuid.UUID `validate:"required"`
	StartTime   time.Time `validate:"required"`
	EndTime     time.Time `validate:"required"`
	Mood        string    `validate:"required,mood"`
	EnergyLevel int       `validate:"min=0,max=10"`
	Notes       string    `validate:"max=2000"`
}

type TrendRequest struct {
	// Type is one of daily, weekly, monthly. Anything else falls back to daily.
	Type string
	// Date anchors the lookback window, YYYY-MM-DD. Empty means today.
	Date string
	// Timezone is the IANA name buckets are derived in. Empty means UTC.
	Timezone string
	// CategoryIDs restricts the series. Empty means all visible categories.
	CategoryIDs []uuid.UUID
}

type PaginationOpts struct {
	Limit  int
	Offset int
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, name, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type CategoryServiceI interface {
	// Creates a category owned by uid. is_default is forced to false
	CreateCategory(ctx context.Context, uid uuid.UUID, req *CategoryRequest) (*entity.Category, error)
	// Lists categories visible to uid: own plus shared defaults
	GetVisibleCategories(ctx context.Context, uid uuid.UUID) ([]*entity.Category, error)
	// Updates an owned, non-default category
	UpdateCategory(ctx context.Context, id, uid uuid.UUID, req *CategoryRequest) (*entity.Category, error)
	// Deletes an owned, non-default category
	DeleteCategory(ctx context.Context, id, uid uuid.UUID) error
}

type ActivityServiceI interface {
	// Validates the interval and the no-overlap invariant, then persists
	CreateActivity(ctx context.Context, uid uuid.UUID, req *ActivityRequest) (*entity.Activity, error)
	GetActivity(ctx context.Context, id, uid uuid.UUID) (*entity.Activity, error)
	// Lists uid's activities. Requires pagination params provided
	GetUserActivities(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Activity, error)
	// Re-validates interval and overlap, excluding the activity's own row
	UpdateActivity(ctx context.Context, id, uid uuid.UUID, req *ActivityRequest) (*entity.Activity, error)
	DeleteActivity(ctx context.Context, id, uid uuid.UUID) error
}

type ReportServiceI interface {
	// Sums per-category hours over uid's activities intersecting
	// [utcStart, utcEnd) and fills the uncovered remainder as "undefined"
	Generate(ctx context.Context, uid uuid.UUID, utcStart, utcEnd time.Time, periodLabel string) (*entity.Report, error)
}

type TrendServiceI interface {
	// Produces fixed-length per-category hour series over the lookback
	// window the request's granularity defines
	CategoryTrend(ctx context.Context, uid uuid.UUID, req *TrendRequest) (*entity.CategoryTrend, error)
}
