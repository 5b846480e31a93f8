package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Scheme names accepted by NewPasswordHasher.
const (
	SchemePlain  = "plain"
	SchemeBcrypt = "bcrypt"
)

// ErrPasswordTooLong is returned by BcryptHasher for passwords over 72 bytes.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// PasswordHasher turns a password into the value stored in the user table and
// checks login attempts against it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) bool
}

func NewPasswordHasher(scheme string) (PasswordHasher, error) {
	switch scheme {
	case "", SchemePlain:
		return PlainHasher{}, nil
	case SchemeBcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}

// PlainHasher stores passwords as given. This keeps users.txt readable by older
// deployments but offers no protection if the file leaks.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlainHasher) Compare(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// BcryptHasher stores bcrypt hashes. Stored values that are not bcrypt hashes are
// compared as plain text, so users registered before the switch can still log in.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (h BcryptHasher) Compare(stored, password string) bool {
	if !isBcryptHash(stored) {
		return PlainHasher{}.Compare(stored, password)
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
