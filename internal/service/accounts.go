package service

import (
	"context"
	"errors"
	"strings"

	"github.com/s/courseEnrollment/internal/auth"
	"github.com/s/courseEnrollment/internal/models"
	"github.com/s/courseEnrollment/internal/storage"
)

// Registration is the sign-up form.
type Registration struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
}

// Register creates a user. The username must be free and the role one of Admin or Student.
func (s *Service) Register(ctx context.Context, reg Registration) (models.User, error) {
	username := strings.TrimSpace(reg.Username)
	role := models.Role(strings.TrimSpace(reg.Role))

	if username == "" || reg.Password == "" || role == models.RoleGuest {
		return models.User{}, invalidInput("all fields are required")
	}
	if reg.Password != reg.ConfirmPassword {
		return models.User{}, ErrPasswordMismatch
	}
	if !role.Valid() {
		return models.User{}, invalidInput("role must be Admin or Student")
	}
	if !storage.ValidField(username) || !storage.ValidField(reg.Password) {
		return models.User{}, invalidInput("username and password must not contain commas or line breaks")
	}
	if !validKey(username) {
		return models.User{}, invalidInput("username must not contain '/'")
	}

	stored, err := s.passwords.Hash(reg.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return models.User{}, invalidInput("password must be at most 72 bytes")
	}
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists, err := s.users.Get(ctx, username)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrUsernameTaken
	}

	user := models.User{Username: username, Password: stored, Role: role}
	if err := s.users.Add(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login checks the credentials and returns the actor to store in the session.
func (s *Service) Login(ctx context.Context, username, password string) (Actor, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Actor{}, ErrInvalidCredentials
	}

	user, ok, err := s.users.Get(ctx, username)
	if err != nil {
		return Actor{}, err
	}
	if !ok || !s.passwords.Compare(user.Password, password) {
		return Actor{}, ErrInvalidCredentials
	}
	return Actor{Username: user.Username, Role: user.Role}, nil
}
