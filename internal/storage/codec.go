package storage

import (
	"strconv"
	"strings"

	"github.com/s/courseEnrollment/internal/models"
)

// Delimiter separates fields in every table line.
const Delimiter = ","

// DecodeCourseLine parses course_id,name,instructor,added_by[,fee[,notes[,capacity]]].
// Lines with fewer than four fields, or with a capacity that is not a positive
// integer, are skipped (ok == false).
func DecodeCourseLine(line string) (models.Course, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return models.Course{}, false
	}

	parts := strings.Split(line, Delimiter)
	if len(parts) < 4 {
		return models.Course{}, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var opts models.CourseOptions
	if len(parts) > 4 {
		opts.Fee = parts[4]
	}
	if len(parts) > 5 {
		opts.Notes = parts[5]
	}
	if len(parts) > 6 {
		capacity, ok := models.ParseCapacity(parts[6])
		if !ok {
			return models.Course{}, false
		}
		opts.Capacity = capacity
	}

	return models.NewCourse(parts[0], parts[1], parts[2], parts[3], opts), true
}

// EncodeCourse is the inverse of DecodeCourseLine. The result has no trailing newline.
func EncodeCourse(c models.Course) string {
	c = models.NewCourse(c.ID, c.Name, c.Instructor, c.AddedBy, models.CourseOptions{
		Fee:      c.Fee,
		Notes:    c.Notes,
		Capacity: c.Capacity,
	})
	return strings.Join([]string{
		c.ID,
		c.Name,
		c.Instructor,
		c.AddedBy,
		c.Fee,
		c.Notes,
		strconv.Itoa(c.Capacity),
	}, Delimiter)
}

// DecodeEnrollmentLine parses student_username,course_id. Everything after the
// first delimiter belongs to the course id.
func DecodeEnrollmentLine(line string) (models.Enrollment, bool) {
	line = strings.TrimSpace(line)
	student, courseID, found := strings.Cut(line, Delimiter)
	if !found {
		return models.Enrollment{}, false
	}
	return models.Enrollment{Student: student, CourseID: courseID}, true
}

func EncodeEnrollment(e models.Enrollment) string {
	return e.Student + Delimiter + e.CourseID
}

// DecodeUserLine parses username,password,role. The role takes whatever follows
// the second delimiter.
func DecodeUserLine(line string) (models.User, bool) {
	line = strings.TrimSpace(line)
	parts := strings.SplitN(line, Delimiter, 3)
	if len(parts) != 3 {
		return models.User{}, false
	}
	return models.User{
		Username: parts[0],
		Password: parts[1],
		Role:     models.Role(parts[2]),
	}, true
}

func EncodeUser(u models.User) string {
	return strings.Join([]string{u.Username, u.Password, string(u.Role)}, Delimiter)
}

// ValidField reports whether s can be stored in a table line without
// corrupting the field layout.
func ValidField(s string) bool {
	return !strings.ContainsAny(s, Delimiter+"\r\n")
}
