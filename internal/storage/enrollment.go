package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/s/courseEnrollment/internal/models"
)

// EnrollmentStore owns the enrollment table. It performs no validation;
// duplicate and capacity checks belong to the caller.
type EnrollmentStore struct {
	mu      sync.Mutex
	backend LineBackend
}

func NewEnrollmentStore(backend LineBackend) *EnrollmentStore {
	return &EnrollmentStore{backend: backend}
}

// List groups students by course id, preserving table order inside each group.
func (s *EnrollmentStore) List(ctx context.Context) (models.Enrollments, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.backend.ReadLines(ctx)
	if err != nil {
		return models.Enrollments{}, fmt.Errorf("failed to list enrollments: %w", err)
	}

	enrollments := models.NewEnrollments()
	for _, line := range lines {
		e, ok := DecodeEnrollmentLine(line)
		if !ok {
			continue
		}
		enrollments.Add(e.CourseID, e.Student)
	}
	return enrollments, nil
}

func (s *EnrollmentStore) Add(ctx context.Context, student, courseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := EncodeEnrollment(models.Enrollment{Student: student, CourseID: courseID})
	if err := s.backend.AppendLine(ctx, line); err != nil {
		return fmt.Errorf("failed to enroll %s in %s: %w", student, courseID, err)
	}
	return nil
}

// Remove drops every line equal to student,courseID.
func (s *EnrollmentStore) Remove(ctx context.Context, student, courseID string) (int, error) {
	target := EncodeEnrollment(models.Enrollment{Student: student, CourseID: courseID})
	return s.rewrite(ctx, func(line string) bool {
		return line == target
	})
}

// RemoveAllForCourse drops every enrollment of courseID.
func (s *EnrollmentStore) RemoveAllForCourse(ctx context.Context, courseID string) (int, error) {
	return s.rewrite(ctx, func(line string) bool {
		e, ok := DecodeEnrollmentLine(line)
		return ok && e.CourseID == courseID
	})
}

// rewrite keeps the trimmed, non-empty lines for which drop is false. The table is only
// written when at least one line is dropped.
func (s *EnrollmentStore) rewrite(ctx context.Context, drop func(line string) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.backend.ReadLines(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read enrollments: %w", err)
	}

	kept := make([]string, 0, len(lines))
	removed := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if drop(line) {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	if removed == 0 {
		return 0, nil
	}

	if err := s.backend.WriteLines(ctx, kept); err != nil {
		return 0, fmt.Errorf("failed to rewrite enrollments: %w", err)
	}
	return removed, nil
}
