package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher(t *testing.T) {
	tests := []struct {
		scheme  string
		wantErr bool
	}{
		{"", false},
		{SchemePlain, false},
		{SchemeBcrypt, false},
		{"md5", true},
	}

	for _, tt := range tests {
		t.Run(tt.scheme, func(t *testing.T) {
			_, err := NewPasswordHasher(tt.scheme)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewPasswordHasher(%q) error = %v, wantErr %v", tt.scheme, err, tt.wantErr)
			}
		})
	}
}

func TestPlainHasher(t *testing.T) {
	h := PlainHasher{}
	stored, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if stored != "secret" {
		t.Errorf("Expected plain value to be stored, got %q", stored)
	}
	if !h.Compare(stored, "secret") {
		t.Error("Expected matching password to compare equal")
	}
	if h.Compare(stored, "Secret") {
		t.Error("Expected different password to be rejected")
	}
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	stored, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if stored == "secret" || !strings.HasPrefix(stored, "$2") {
		t.Errorf("Expected bcrypt hash, got %q", stored)
	}
	if strings.Contains(stored, ",") {
		t.Errorf("Hash must not contain the table delimiter: %q", stored)
	}
	if !h.Compare(stored, "secret") {
		t.Error("Expected matching password to compare equal")
	}
	if h.Compare(stored, "wrong") {
		t.Error("Expected wrong password to be rejected")
	}
}

func TestBcryptHasher_LegacyPlainValue(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	if !h.Compare("legacy", "legacy") {
		t.Error("Expected plain stored value to still match")
	}
	if h.Compare("legacy", "other") {
		t.Error("Expected plain stored value to reject other passwords")
	}
}

func TestBcryptHasher_PasswordTooLong(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}
	if _, err := h.Hash(strings.Repeat("x", 80)); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("Expected ErrPasswordTooLong, got %v", err)
	}
	if _, err := h.Hash(strings.Repeat("x", 72)); err != nil {
		t.Errorf("72 bytes should hash, got %v", err)
	}
}
