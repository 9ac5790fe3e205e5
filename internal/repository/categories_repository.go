package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/timely/internal/error_values"
	"github.com/limbo/timely/pkg/cleanup"
	"github.com/limbo/timely/pkg/entity"
)

type CategoriesRepository struct {
	conn PgConnection
}

func NewCategoriesRepo(cfg DBConfig) *CategoriesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for categoriesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for categoriesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &CategoriesRepository{
		conn: pool,
	}
}

func NewCategoriesRepoWithConn(conn PgConnection) *CategoriesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for categoriesRepo: " + err.Error())
	}
	return &CategoriesRepository{
		conn: conn,
	}
}

func (cr *CategoriesRepository) Create(ctx context.Context, category *entity.Category) (uuid.UUID, error) {
	var id uuid.UUID
	row := cr.conn.QueryRow(ctx, `INSERT INTO categories (name, color, user_id, is_default) VALUES ($1, $2, $3, false) RETURNING id;`,
		category.Name,
		category.Color,
		category.UserID,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrOwnerNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating category db error: " + err.Error())
	}
	return id, nil
}

func (cr *CategoriesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	category.ID = id
	row := cr.conn.QueryRow(ctx, `SELECT name, color, user_id, is_default FROM categories WHERE id = $1;`, id)
	if err := row.Scan(&category.Name, &category.Color, &category.UserID, &category.IsDefault); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrCategoryNotFound
		}
		return nil, errors.New("getting category by id error: " + err.Error())
	}
	return &category, nil
}

func (cr *CategoriesRepository) GetVisible(ctx context.Context, uid uuid.UUID) ([]*entity.Category, error) {
	categories := make([]*entity.Category, 0)
	rows, err := cr.conn.Query(ctx, `SELECT id, name, color, user_id, is_default
		FROM categories WHERE user_id = $1 OR user_id IS NULL ORDER BY is_default DESC, name;`, uid)
	if err != nil {
		return nil, errors.New("getting visible categories error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		c := entity.Category{}
		err = rows.Scan(&c.ID, &c.Name, &c.Color, &c.UserID, &c.IsDefault)
		if err != nil {
			return nil, errors.New("unmarshalling category error: " + err.Error())
		}
		categories = append(categories, &c)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return categories, nil
}

func (cr *CategoriesRepository) Update(ctx context.Context, category *entity.Category) error {
	ct, err := cr.conn.Exec(ctx, `UPDATE categories SET name = $1, color = $2 WHERE id = $3;`,
		category.Name, category.Color, category.ID,
	)
	if err != nil {
		return errors.New("error updating category: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrCategoryNotFound
	}
	return nil
}

func (cr *CategoriesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := cr.conn.Exec(ctx, `DELETE FROM categories WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting category: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrCategoryNotFound
	}
	return nil
}
