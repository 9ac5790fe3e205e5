package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/timely/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
}

type CategoriesRepositoryI interface {
	// Creates new category. Only Name, Color, UserID are necessary
	Create(ctx context.Context, category *entity.Category) (uuid.UUID, error)
	// Searches category with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	// Lists categories visible to user: owned plus shared defaults
	GetVisible(ctx context.Context, uid uuid.UUID) ([]*entity.Category, error)
	// Updates name and color of category by ID
	Update(ctx context.Context, category *entity.Category) error
	// Deletes category with id
	Delete(ctx context.Context, id uuid.UUID) error
}

type ActivitiesRepositoryI interface {
	// Creates new activity. The per-author no-overlap invariant is checked
	// inside the same transaction as the insert, under an advisory lock
	// keyed by the author
	Create(ctx context.Context, activity *entity.Activity) (uuid.UUID, error)
	// Searches activity with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error)
	// Lists activities owned by author. Requires pagination params provided
	GetByAuthorID(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*entity.Activity, error)
	// Updates activity by ID. Overlap check excludes the activity's own row
	Update(ctx context.Context, activity *entity.Activity) error
	// Deletes activity with id
	Delete(ctx context.Context, id uuid.UUID) error
	// Provides author's activities intersecting [start, end) with category
	// names joined in, for report aggregation
	GetByAuthorAndInterval(ctx context.Context, authorID uuid.UUID, start, end time.Time) ([]entity.ActivitySlice, error)
	// Provides author's activities starting within [start, end), optionally
	// restricted to a category id set, for trend aggregation
	GetByAuthorStartingIn(ctx context.Context, authorID uuid.UUID, categoryIDs []uuid.UUID, start, end time.Time) ([]entity.ActivitySlice, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
