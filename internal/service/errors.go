package service

import (
	"errors"
	"fmt"
)

// Failures returned to the caller. None of them is fatal.
var (
	ErrDuplicateID         = errors.New("course id already exists")
	ErrAlreadyEnrolled     = errors.New("already enrolled in this course")
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseFull          = errors.New("course is full")
	ErrAuthorizationDenied = errors.New("access denied")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// CourseFullError carries the seat counts of a full course. It matches ErrCourseFull.
type CourseFullError struct {
	CourseID string
	Name     string
	Enrolled int
	Capacity int
}

func (e *CourseFullError) Error() string {
	return fmt.Sprintf("course '%s' is full! (%d/%d seats)", e.Name, e.Enrolled, e.Capacity)
}

func (e *CourseFullError) Is(target error) bool {
	return target == ErrCourseFull
}

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
