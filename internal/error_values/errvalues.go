package errorvalues

import "errors"

var (
	ErrValidation = errors.New("invalid request payload")

	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrCategoryNotFound = errors.New("category doesn't exist")
	ErrWrongOwner       = errors.New("record belongs to a different user")
	ErrDefaultReadOnly  = errors.New("default categories can't be modified")

	ErrActivityNotFound = errors.New("activity doesn't exist")
	ErrActivityOverlap  = errors.New("activity times overlap with an existing activity")
	ErrInvalidInterval  = errors.New("end time must be after start time")
	ErrOwnerNotFound    = errors.New("owner of the record doesn't exist")

	ErrInvalidDate         = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimezone     = errors.New("unknown timezone name")
	ErrInvalidCategoryList = errors.New("invalid category id list")
)
