package service

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/timely/internal/error_values"
	"github.com/limbo/timely/internal/repository"
	"github.com/limbo/timely/pkg/entity"
)

type CategoryService struct {
	repo repository.CategoriesRepositoryI
}

func NewCategoryService(categoriesRepo repository.CategoriesRepositoryI) *CategoryService {
	if categoriesRepo == nil {
		log.Fatal("provided nil categoriesRepo")
	}
	return &CategoryService{
		repo: categoriesRepo,
	}
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	if validationError, ok := err.(validator.ValidationErrors); ok {
		// Field errors are joined under the sentinel so handlers can
		// answer with a client status instead of a server fault
		joined := error(errorvalues.ErrValidation)
		for _, fieldErr := range validationError {
			joined = errors.Join(joined, fieldErr)
		}
		return joined
	}
	return errors.New("validation unexpected error: " + err.Error())
}

func (cs *CategoryService) CreateCategory(ctx context.Context, uid uuid.UUID, req *CategoryRequest) (*entity.Category, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	// is_default is server-controlled, user categories are never default
	c := entity.Category{
		Name:   req.Name,
		Color:  req.Color,
		UserID: uuid.NullUUID{UUID: uid, Valid: true},
	}
	id, err := cs.repo.Create(ctx, &c)
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("categories repository error: " + err.Error())
	}
	category, err := cs.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, errors.New("categories repository error: " + err.Error())
	}
	return category, nil
}

func (cs *CategoryService) GetVisibleCategories(ctx context.Context, uid uuid.UUID) ([]*entity.Category, error) {
	categories, err := cs.repo.GetVisible(ctx, uid)
	if err != nil {
		return nil, errors.New("categories repository error: " + err.Error())
	}
	return categories, nil
}

func (cs *CategoryService) UpdateCategory(ctx context.Context, id, uid uuid.UUID, req *CategoryRequest) (*entity.Category, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	category, err := cs.ownedCategory(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	category.Name = req.Name
	category.Color = req.Color
	err = cs.repo.Update(ctx, category)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, errors.New("categories repository error: " + err.Error())
	}
	return category, nil
}

func (cs *CategoryService) DeleteCategory(ctx context.Context, id, uid uuid.UUID) error {
	_, err := cs.ownedCategory(ctx, id, uid)
	if err != nil {
		return err
	}
	err = cs.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryNotFound) {
			return err
		}
		return errors.New("categories repository error: " + err.Error())
	}
	return nil
}

// ownedCategory loads a category and asserts uid may modify it: shared
// defaults and foreign categories are off limits.
func (cs *CategoryService) ownedCategory(ctx context.Context, id, uid uuid.UUID) (*entity.Category, error) {
	category, err := cs.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, errors.New("categories repository error: " + err.Error())
	}
	if category.IsDefault {
		return nil, errorvalues.ErrDefaultReadOnly
	}
	if !category.UserID.Valid || category.UserID.UUID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	return category, nil
}
