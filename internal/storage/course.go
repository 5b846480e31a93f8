package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/s/courseEnrollment/internal/models"
)

// CourseStore owns the course table.
type CourseStore struct {
	mu      sync.Mutex
	backend LineBackend
}

func NewCourseStore(backend LineBackend) *CourseStore {
	return &CourseStore{backend: backend}
}

// List reads the whole table on every call. Malformed lines are skipped.
func (s *CourseStore) List(ctx context.Context) ([]models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(ctx)
}

func (s *CourseStore) list(ctx context.Context) ([]models.Course, error) {
	lines, err := s.backend.ReadLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	courses := make([]models.Course, 0, len(lines))
	for _, line := range lines {
		if c, ok := DecodeCourseLine(line); ok {
			courses = append(courses, c)
		}
	}
	return courses, nil
}

// Get returns the course with the given id, if any.
func (s *CourseStore) Get(ctx context.Context, id string) (models.Course, bool, error) {
	courses, err := s.List(ctx)
	if err != nil {
		return models.Course{}, false, err
	}
	for _, c := range courses {
		if c.ID == id {
			return c, true, nil
		}
	}
	return models.Course{}, false, nil
}

// Add appends the course. The caller checks id uniqueness.
func (s *CourseStore) Add(ctx context.Context, c models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.AppendLine(ctx, EncodeCourse(c)); err != nil {
		return fmt.Errorf("failed to add course %s: %w", c.ID, err)
	}
	return nil
}

// Delete rewrites the table without the course. It reports whether a course was removed;
// when nothing matches the table is left untouched.
func (s *CourseStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	courses, err := s.list(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]string, 0, len(courses))
	removed := false
	for _, c := range courses {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, EncodeCourse(c))
	}
	if !removed {
		return false, nil
	}

	if err := s.backend.WriteLines(ctx, kept); err != nil {
		return false, fmt.Errorf("failed to delete course %s: %w", id, err)
	}
	return true, nil
}
