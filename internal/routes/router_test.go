package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/s/courseEnrollment/internal/auth"
	"github.com/s/courseEnrollment/internal/handlers"
	"github.com/s/courseEnrollment/internal/service"
	"github.com/s/courseEnrollment/internal/storage"
)

type testServer struct {
	*httptest.Server
	courses     *storage.MemoryBackend
	enrollments *storage.MemoryBackend
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	courses := storage.NewMemoryBackend()
	enrollments := storage.NewMemoryBackend()
	svc := service.New(
		storage.NewCourseStore(courses),
		storage.NewEnrollmentStore(enrollments),
		storage.NewUserStore(storage.NewMemoryBackend(
			"root,toor,Admin",
			"alice,pw,Student",
			"bob,pw,Student",
		)),
		auth.PlainHasher{},
	)
	h := handlers.NewHandler(svc, handlers.NewSessionStore("test-session-key", false))

	server := httptest.NewServer(SetupRouter(h))
	t.Cleanup(server.Close)
	return &testServer{Server: server, courses: courses, enrollments: enrollments}
}

// newClient returns a client with its own cookie jar.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, c *http.Client, method, url string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func login(t *testing.T, s *testServer, username, password string) *http.Client {
	t.Helper()
	c := newClient(t)
	code, body := doJSON(t, c, "POST", s.URL+"/api/login", map[string]string{
		"username": username, "password": password,
	})
	if code != http.StatusOK {
		t.Fatalf("Login as %s failed: %d %v", username, code, body)
	}
	return c
}

func TestHealth(t *testing.T) {
	s := setupTestServer(t)

	resp, err := http.Get(s.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("Expected a request id header")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := setupTestServer(t)

	code, _ := doJSON(t, newClient(t), "POST", s.URL+"/api/login", map[string]string{
		"username": "root", "password": "wrong",
	})
	if code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", code)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	s := setupTestServer(t)
	c := newClient(t)

	code, body := doJSON(t, c, "POST", s.URL+"/api/register", map[string]string{
		"username": "carol", "password": "pw", "confirm_password": "pw", "role": "Student",
	})
	if code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d %v", code, body)
	}

	code, _ = doJSON(t, c, "POST", s.URL+"/api/register", map[string]string{
		"username": "carol", "password": "pw", "confirm_password": "pw", "role": "Student",
	})
	if code != http.StatusConflict {
		t.Errorf("Expected 409 for taken username, got %d", code)
	}

	code, _ = doJSON(t, c, "POST", s.URL+"/api/register", map[string]string{
		"username": "dave", "password": "pw", "confirm_password": "nope", "role": "Student",
	})
	if code != http.StatusBadRequest {
		t.Errorf("Expected 400 for password mismatch, got %d", code)
	}

	login(t, s, "carol", "pw")
}

func TestRoleGuards(t *testing.T) {
	s := setupTestServer(t)
	anonymous := newClient(t)
	student := login(t, s, "alice", "pw")
	adminClient := login(t, s, "root", "toor")

	tests := []struct {
		name   string
		client *http.Client
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"anonymous lists courses", anonymous, "GET", "/api/courses", nil, http.StatusUnauthorized},
		{"anonymous enrolls", anonymous, "POST", "/api/enroll", map[string]string{"course_id": "X"}, http.StatusUnauthorized},
		{"student creates course", student, "POST", "/api/courses", map[string]string{"cid": "X", "name": "X", "instructor": "X"}, http.StatusForbidden},
		{"student deletes course", student, "DELETE", "/api/courses/X", nil, http.StatusForbidden},
		{"admin enrolls", adminClient, "POST", "/api/enroll", map[string]string{"course_id": "X"}, http.StatusForbidden},
		{"admin lists my courses", adminClient, "GET", "/api/my-courses", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := doJSON(t, tt.client, tt.method, s.URL+tt.path, tt.body)
			if code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, code)
			}
		})
	}
}

func TestEnrollmentFlow(t *testing.T) {
	s := setupTestServer(t)
	adminClient := login(t, s, "root", "toor")
	alice := login(t, s, "alice", "pw")
	bob := login(t, s, "bob", "pw")

	code, body := doJSON(t, adminClient, "POST", s.URL+"/api/courses", map[string]string{
		"cid": "CS101", "name": "Intro to CS", "instructor": "Dr. Smith", "capacity": "1",
	})
	if code != http.StatusCreated {
		t.Fatalf("Create course: expected 201, got %d %v", code, body)
	}

	code, _ = doJSON(t, adminClient, "POST", s.URL+"/api/courses", map[string]string{
		"cid": "CS101", "name": "Again", "instructor": "Dr. Smith",
	})
	if code != http.StatusConflict {
		t.Errorf("Duplicate course: expected 409, got %d", code)
	}

	code, body = doJSON(t, alice, "POST", s.URL+"/api/enroll", map[string]string{"course_id": "CS101"})
	if code != http.StatusOK {
		t.Fatalf("Enroll: expected 200, got %d %v", code, body)
	}
	if body["seats_remaining"] != float64(0) {
		t.Errorf("Expected 0 seats remaining, got %v", body["seats_remaining"])
	}

	code, _ = doJSON(t, alice, "POST", s.URL+"/api/enroll", map[string]string{"course_id": "CS101"})
	if code != http.StatusConflict {
		t.Errorf("Second enroll: expected 409, got %d", code)
	}

	code, body = doJSON(t, bob, "POST", s.URL+"/api/enroll", map[string]string{"course_id": "CS101"})
	if code != http.StatusConflict {
		t.Errorf("Full course: expected 409, got %d %v", code, body)
	}

	code, _ = doJSON(t, bob, "POST", s.URL+"/api/enroll", map[string]string{"course_id": "NOPE"})
	if code != http.StatusNotFound {
		t.Errorf("Unknown course: expected 404, got %d", code)
	}

	code, body = doJSON(t, alice, "GET", s.URL+"/api/courses?search=intro", nil)
	if code != http.StatusOK {
		t.Fatalf("List courses: expected 200, got %d", code)
	}
	courses, _ := body["courses"].([]interface{})
	if len(courses) != 1 {
		t.Fatalf("Expected 1 course, got %v", body["courses"])
	}
	stats, _ := body["stats"].(map[string]interface{})
	if stats["my_courses"] != float64(1) || stats["available_courses"] != float64(0) {
		t.Errorf("Unexpected stats %v", stats)
	}

	code, body = doJSON(t, alice, "GET", s.URL+"/api/my-courses", nil)
	if code != http.StatusOK {
		t.Fatalf("My courses: expected 200, got %d", code)
	}
	if mine, _ := body["courses"].([]interface{}); len(mine) != 1 {
		t.Errorf("Expected 1 enrolled course, got %v", body["courses"])
	}

	code, _ = doJSON(t, alice, "POST", s.URL+"/api/unenroll", map[string]string{"course_id": "CS101"})
	if code != http.StatusOK {
		t.Errorf("Unenroll: expected 200, got %d", code)
	}
	code, _ = doJSON(t, alice, "POST", s.URL+"/api/unenroll", map[string]string{"course_id": "CS101"})
	if code != http.StatusOK {
		t.Errorf("Second unenroll: expected 200, got %d", code)
	}

	code, _ = doJSON(t, bob, "POST", s.URL+"/api/enroll", map[string]string{"course_id": "CS101"})
	if code != http.StatusOK {
		t.Errorf("Enroll after seat freed: expected 200, got %d", code)
	}

	code, _ = doJSON(t, adminClient, "DELETE", s.URL+"/api/courses/CS101/enrollments/bob", nil)
	if code != http.StatusOK {
		t.Errorf("Delete enrollment: expected 200, got %d", code)
	}
	if n := len(s.enrollments.Lines()); n != 0 {
		t.Errorf("Expected no enrollments, got %d", n)
	}

	code, _ = doJSON(t, adminClient, "DELETE", s.URL+"/api/courses/CS101", nil)
	if code != http.StatusOK {
		t.Errorf("Delete course: expected 200, got %d", code)
	}
	code, _ = doJSON(t, adminClient, "DELETE", s.URL+"/api/courses/CS101", nil)
	if code != http.StatusNotFound {
		t.Errorf("Delete missing course: expected 404, got %d", code)
	}
}

func TestLogout(t *testing.T) {
	s := setupTestServer(t)
	c := login(t, s, "alice", "pw")

	code, _ := doJSON(t, c, "POST", s.URL+"/api/logout", nil)
	if code != http.StatusOK {
		t.Fatalf("Logout: expected 200, got %d", code)
	}

	code, _ = doJSON(t, c, "GET", s.URL+"/api/courses", nil)
	if code != http.StatusUnauthorized {
		t.Errorf("Expected 401 after logout, got %d", code)
	}
}

func TestInvalidJSON(t *testing.T) {
	s := setupTestServer(t)
	c := login(t, s, "alice", "pw")

	req, _ := http.NewRequest("POST", s.URL+"/api/enroll", bytes.NewBufferString("{not json"))
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}

func TestSessionCookieSurvivesPlainHTTP(t *testing.T) {
	s := setupTestServer(t)
	c := login(t, s, "root", "toor")

	code, body := doJSON(t, c, "GET", s.URL+"/api/courses", nil)
	if code != http.StatusOK {
		t.Fatalf("Expected the session to carry over after login, got %d %v", code, body)
	}
}

func TestSlashInIDs(t *testing.T) {
	s := setupTestServer(t)
	adminClient := login(t, s, "root", "toor")

	code, _ := doJSON(t, adminClient, "POST", s.URL+"/api/courses", map[string]string{
		"cid": "CS/101", "name": "Slashed", "instructor": "Dr. Smith",
	})
	if code != http.StatusBadRequest {
		t.Errorf("Create course with '/': expected 400, got %d", code)
	}

	code, _ = doJSON(t, newClient(t), "POST", s.URL+"/api/register", map[string]string{
		"username": "a/b", "password": "pw", "confirm_password": "pw", "role": "Student",
	})
	if code != http.StatusBadRequest {
		t.Errorf("Register with '/': expected 400, got %d", code)
	}

	// Rows written before the check must still be removable.
	ctx := context.Background()
	s.courses.AppendLine(ctx, "OLD/1,Legacy,Dr. Who,root")
	s.enrollments.AppendLine(ctx, "x/y,OLD/1")
	s.enrollments.AppendLine(ctx, "alice,OLD/1")

	code, body := doJSON(t, adminClient, "DELETE", s.URL+"/api/courses/OLD%2F1/enrollments/x%2Fy", nil)
	if code != http.StatusOK {
		t.Fatalf("Delete enrollment: expected 200, got %d %v", code, body)
	}
	if lines := s.enrollments.Lines(); len(lines) != 1 || lines[0] != "alice,OLD/1" {
		t.Errorf("Unexpected enrollments %v", lines)
	}

	code, body = doJSON(t, adminClient, "DELETE", s.URL+"/api/courses/OLD%2F1", nil)
	if code != http.StatusOK {
		t.Fatalf("Delete course: expected 200, got %d %v", code, body)
	}
	if len(s.courses.Lines()) != 0 || len(s.enrollments.Lines()) != 0 {
		t.Errorf("Expected course and enrollments gone, got %v / %v", s.courses.Lines(), s.enrollments.Lines())
	}
}
