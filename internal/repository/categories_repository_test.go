package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/timely/internal/error_values"
	"github.com/limbo/timely/internal/repository"
	"github.com/limbo/timely/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

func testCategory() *entity.Category {
	return &entity.Category{
		Name:  "Deep work",
		Color: "#112233",
		UserID: uuid.NullUUID{
			UUID:  authorID,
			Valid: true,
		},
	}
}

func TestCreateCategory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewCategoriesRepoWithConn(mock)
	category := testCategory()
	cid := uuid.New()
	query := regexp.QuoteMeta(`INSERT INTO categories (name, color, user_id, is_default) VALUES ($1, $2, $3, false) RETURNING id;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(category.Name, category.Color, category.UserID).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(cid))
		id, err := repo.Create(ctx, category)
		assert.NoError(t, err)
		assert.Equal(t, cid, id)
	})
	t.Run("owner doesn't exist", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(category.Name, category.Color, category.UserID).
			WillReturnError(&pgconn.PgError{Code: "23503"})
		_, err := repo.Create(ctx, category)
		assert.ErrorIs(t, err, errorvalues.ErrOwnerNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(category.Name, category.Color, category.UserID).
			WillReturnError(errors.New("db error"))
		_, err := repo.Create(ctx, category)
		assert.Error(t, err)
	})
}

func TestGetCategoryByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewCategoriesRepoWithConn(mock)
	category := testCategory()
	category.ID = uuid.New()
	query := regexp.QuoteMeta(`SELECT name, color, user_id, is_default FROM categories WHERE id = $1;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(category.ID).
			WillReturnRows(pgxmock.NewRows([]string{"name", "color", "user_id", "is_default"}).
				AddRow(category.Name, category.Color, category.UserID, category.IsDefault),
			)
		result, err := repo.GetByID(ctx, category.ID)
		assert.NoError(t, err)
		assert.Equal(t, *category, *result)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(category.ID).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.GetByID(ctx, category.ID)
		assert.ErrorIs(t, err, errorvalues.ErrCategoryNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(category.ID).
			WillReturnError(errors.New("db error"))
		_, err := repo.GetByID(ctx, category.ID)
		assert.Error(t, err)
	})
}

func TestGetVisibleCategories(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewCategoriesRepoWithConn(mock)
	query := regexp.QuoteMeta(`SELECT id, name, color, user_id, is_default
		FROM categories WHERE user_id = $1 OR user_id IS NULL ORDER BY is_default DESC, name;`)
	defaultCategory := &entity.Category{
		ID:        uuid.New(),
		Name:      "Work",
		Color:     "#4F8EF7",
		IsDefault: true,
	}
	ownCategory := testCategory()
	ownCategory.ID = uuid.New()
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(authorID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "color", "user_id", "is_default"}).
				AddRow(defaultCategory.ID, defaultCategory.Name, defaultCategory.Color, defaultCategory.UserID, defaultCategory.IsDefault).
				AddRow(ownCategory.ID, ownCategory.Name, ownCategory.Color, ownCategory.UserID, ownCategory.IsDefault),
			)
		result, err := repo.GetVisible(ctx, authorID)
		assert.NoError(t, err)
		assert.Equal(t, []*entity.Category{defaultCategory, ownCategory}, result)
	})
	t.Run("no categories", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(authorID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "color", "user_id", "is_default"}))
		result, err := repo.GetVisible(ctx, authorID)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(result))
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(authorID).
			WillReturnError(errors.New("db error"))
		_, err := repo.GetVisible(ctx, authorID)
		assert.Error(t, err)
	})
}

func TestUpdateCategory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewCategoriesRepoWithConn(mock)
	category := testCategory()
	category.ID = uuid.New()
	query := regexp.QuoteMeta(`UPDATE categories SET name = $1, color = $2 WHERE id = $3;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(category.Name, category.Color, category.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		err := repo.Update(ctx, category)
		assert.NoError(t, err)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(category.Name, category.Color, category.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		err := repo.Update(ctx, category)
		assert.ErrorIs(t, err, errorvalues.ErrCategoryNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(category.Name, category.Color, category.ID).
			WillReturnError(errors.New("db error"))
		err := repo.Update(ctx, category)
		assert.Error(t, err)
	})
}

func TestDeleteCategory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewCategoriesRepoWithConn(mock)
	cid := uuid.New()
	query := regexp.QuoteMeta(`DELETE FROM categories WHERE id = $1;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(cid).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		err := repo.Delete(ctx, cid)
		assert.NoError(t, err)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(cid).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		err := repo.Delete(ctx, cid)
		assert.ErrorIs(t, err, errorvalues.ErrCategoryNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(cid).
			WillReturnError(errors.New("db error"))
		err := repo.Delete(ctx, cid)
		assert.Error(t, err)
	})
}
