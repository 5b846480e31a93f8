package service

import (
	"fmt"
	"strings"
	"sync"

	"github.com/s/courseEnrollment/internal/auth"
	"github.com/s/courseEnrollment/internal/models"
	"github.com/s/courseEnrollment/internal/storage"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	Username string
	Role     models.Role
}

// Service composes the three stores and applies the enrollment rules.
type Service struct {
	// mu serializes multi-step mutations (check-then-write, two-table cascade).
	mu sync.Mutex

	courses     *storage.CourseStore
	enrollments *storage.EnrollmentStore
	users       *storage.UserStore
	passwords   auth.PasswordHasher
}

func New(courses *storage.CourseStore, enrollments *storage.EnrollmentStore, users *storage.UserStore, passwords auth.PasswordHasher) *Service {
	if passwords == nil {
		passwords = auth.PlainHasher{}
	}
	return &Service{
		courses:     courses,
		enrollments: enrollments,
		users:       users,
		passwords:   passwords,
	}
}

// anyAuthenticated as a required role admits every logged-in actor.
const anyAuthenticated = models.RoleGuest

// requireRole fails closed: an actor without a username or a known role never passes.
// validKey reports whether a course id or username can travel as one URL path
// segment, which the delete routes rely on.
func validKey(s string) bool {
	return !strings.Contains(s, "/")
}

func requireRole(actor Actor, required models.Role) error {
	if actor.Username == "" || !actor.Role.Valid() {
		return fmt.Errorf("%w: authentication required", ErrAuthorizationDenied)
	}
	if required != anyAuthenticated && actor.Role != required {
		return fmt.Errorf("%w: %s privileges required", ErrAuthorizationDenied, required)
	}
	return nil
}
