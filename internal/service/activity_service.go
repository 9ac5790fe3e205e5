package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/timely/internal/error_values"
	"github.com/limbo/timely/internal/repository"
	"github.com/limbo/timely/pkg/entity"
)

type ActivityService struct {
	repo           repository.ActivitiesRepositoryI
	categoriesRepo repository.CategoriesRepositoryI
}

func NewActivityService(activitiesRepo repository.ActivitiesRepositoryI, categoriesRepo repository.CategoriesRepositoryI) *ActivityService {
	if activitiesRepo == nil || categoriesRepo == nil {
		log.Fatal("on activity service provided nil repos")
	}
	return &ActivityService{
		repo:           activitiesRepo,
		categoriesRepo: categoriesRepo,
	}
}

// checkInterval guards the end > start invariant before the store is touched.
func checkInterval(start, end time.Time) error {
	if !end.After(start) {
		return errorvalues.ErrInvalidInterval
	}
	return nil
}

func (as *ActivityService) CreateActivity(ctx context.Context, uid uuid.UUID, req *ActivityRequest) (*entity.Activity, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	if err := checkInterval(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if err := as.checkCategoryVisible(ctx, req.CategoryID, uid); err != nil {
		return nil, err
	}
	a := entity.Activity{
		AuthorID:    uid,
		CategoryID:  req.CategoryID,
		StartTime:   req.StartTime.UTC(),
		EndTime:     req.EndTime.UTC(),
		Mood:        req.Mood,
		EnergyLevel: req.EnergyLevel,
		Notes:       req.Notes,
	}
	id, err := as.repo.Create(ctx, &a)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrActivityOverlap):
			return nil, errorvalues.ErrActivityOverlap
		case errors.Is(err, errorvalues.ErrCategoryNotFound):
			return nil, errorvalues.ErrCategoryNotFound
		case errors.Is(err, errorvalues.ErrOwnerNotFound):
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("activities repository error: " + err.Error())
	}
	activity, err := as.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrActivityNotFound) {
			return nil, err
		}
		return nil, errors.New("activities repository error: " + err.Error())
	}
	return activity, nil
}

func (as *ActivityService) GetActivity(ctx context.Context, id, uid uuid.UUID) (*entity.Activity, error) {
	return as.ownedActivity(ctx, id, uid)
}

func (as *ActivityService) GetUserActivities(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Activity, error) {
	activities, err := as.repo.GetByAuthorID(ctx, uid, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("activities repository error: " + err.Error())
	}
	return activities, nil
}

func (as *ActivityService) UpdateActivity(ctx context.Context, id, uid uuid.UUID, req *ActivityRequest) (*entity.Activity, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	if err := checkInterval(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	activity, err := as.ownedActivity(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	if err := as.checkCategoryVisible(ctx, req.CategoryID, uid); err != nil {
		return nil, err
	}
	activity.CategoryID = req.CategoryID
	activity.StartTime = req.StartTime.UTC()
	activity.EndTime = req.EndTime.UTC()
	activity.Mood = req.Mood
	activity.EnergyLevel = req.EnergyLevel
	activity.Notes = req.Notes
	err = as.repo.Update(ctx, activity)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrActivityOverlap):
			return nil, errorvalues.ErrActivityOverlap
		case errors.Is(err, errorvalues.ErrActivityNotFound):
			return nil, err
		case errors.Is(err, errorvalues.ErrCategoryNotFound):
			return nil, err
		}
		return nil, errors.New("activities repository error: " + err.Error())
	}
	return as.repo.GetByID(ctx, id)
}

func (as *ActivityService) DeleteActivity(ctx context.Context, id, uid uuid.UUID) error {
	_, err := as.ownedActivity(ctx, id, uid)
	if err != nil {
		return err
	}
	err = as.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrActivityNotFound) {
			return err
		}
		return errors.New("activities repository error: " + err.Error())
	}
	return nil
}

func (as *ActivityService) ownedActivity(ctx context.Context, id, uid uuid.UUID) (*entity.Activity, error) {
	activity, err := as.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrActivityNotFound) {
			return nil, err
		}
		return nil, errors.New("activities repository error: " + err.Error())
	}
	if activity.AuthorID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	return activity, nil
}

func (as *ActivityService) checkCategoryVisible(ctx context.Context, categoryID, uid uuid.UUID) error {
	category, err := as.categoriesRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryNotFound) {
			return err
		}
		return errors.New("categories repository error: " + err.Error())
	}
	if category.IsDefault {
		return nil
	}
	if !category.UserID.Valid || category.UserID.UUID != uid {
		// foreign categories stay indistinguishable from missing ones
		return errorvalues.ErrCategoryNotFound
	}
	return nil
}
