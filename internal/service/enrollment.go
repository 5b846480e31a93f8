package service

import (
	"context"
	"strings"

	"github.com/s/courseEnrollment/internal/models"
)

// EnrollResult describes a successful enrollment.
type EnrollResult struct {
	Course         models.Course `json:"course"`
	SeatsRemaining int           `json:"seats_remaining"`
}

// MyCoursesStats summarises a student's enrollments.
type MyCoursesStats struct {
	TotalEnrolled  int `json:"total_enrolled"`
	TotalAvailable int `json:"total_available"`
	CanEnroll      int `json:"can_enroll"`
}

// Enroll signs the student up for courseID. Checks run in this order: already
// enrolled, course exists, capacity left.
func (s *Service) Enroll(ctx context.Context, actor Actor, courseID string) (EnrollResult, error) {
	if err := requireRole(actor, models.RoleStudent); err != nil {
		return EnrollResult{}, err
	}
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return EnrollResult{}, invalidInput("course_id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	enrollments, err := s.enrollments.List(ctx)
	if err != nil {
		return EnrollResult{}, err
	}
	if enrollments.Has(courseID, actor.Username) {
		return EnrollResult{}, ErrAlreadyEnrolled
	}

	course, ok, err := s.courses.Get(ctx, courseID)
	if err != nil {
		return EnrollResult{}, err
	}
	if !ok {
		return EnrollResult{}, ErrCourseNotFound
	}

	enrolled := enrollments.Count(courseID)
	if enrolled >= course.Capacity {
		return EnrollResult{}, &CourseFullError{
			CourseID: course.ID,
			Name:     course.Name,
			Enrolled: enrolled,
			Capacity: course.Capacity,
		}
	}

	if err := s.enrollments.Add(ctx, actor.Username, courseID); err != nil {
		return EnrollResult{}, err
	}
	return EnrollResult{
		Course:         course,
		SeatsRemaining: course.Capacity - enrolled - 1,
	}, nil
}

// Unenroll removes the student's enrollment, if there is one, and returns the
// course name for display. The raw id is returned when the course no longer exists.
func (s *Service) Unenroll(ctx context.Context, actor Actor, courseID string) (string, error) {
	if err := requireRole(actor, models.RoleStudent); err != nil {
		return "", err
	}
	courseID = strings.TrimSpace(courseID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.enrollments.Remove(ctx, actor.Username, courseID); err != nil {
		return "", err
	}

	course, ok, err := s.courses.Get(ctx, courseID)
	if err != nil {
		return "", err
	}
	if !ok {
		return courseID, nil
	}
	return course.Name, nil
}

// DeleteEnrollment is the administrative removal of one enrollment. The course
// does not have to exist.
func (s *Service) DeleteEnrollment(ctx context.Context, actor Actor, student, courseID string) (int, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return 0, err
	}
	student, courseID = strings.TrimSpace(student), strings.TrimSpace(courseID)

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enrollments.Remove(ctx, student, courseID)
}

// MyCourses lists the courses the student is enrolled in, in course table order.
func (s *Service) MyCourses(ctx context.Context, actor Actor) ([]models.Course, MyCoursesStats, error) {
	if err := requireRole(actor, models.RoleStudent); err != nil {
		return nil, MyCoursesStats{}, err
	}

	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, MyCoursesStats{}, err
	}
	enrollments, err := s.enrollments.List(ctx)
	if err != nil {
		return nil, MyCoursesStats{}, err
	}

	mine := make([]models.Course, 0)
	for _, c := range courses {
		if enrollments.Has(c.ID, actor.Username) {
			mine = append(mine, c)
		}
	}
	return mine, MyCoursesStats{
		TotalEnrolled:  len(mine),
		TotalAvailable: len(courses),
		CanEnroll:      len(courses) - len(mine),
	}, nil
}
