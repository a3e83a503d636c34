package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Service wraps admin authentication rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate validates username/password credentials. Stored
// passwords are bcrypt hashes; rows predating the hashing rollout hold
// plaintext and are compared directly, then rehashed on successful
// login so the plaintext disappears over time.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Admin, error) {
	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if isBcryptHash(admin.Password) {
		if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		return admin, nil
	}

	if admin.Password != password {
		return nil, ErrInvalidCredentials
	}
	if hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); err == nil {
		// Best effort; a failed upgrade leaves the legacy row in place.
		_, _ = s.repo.UpdatePassword(ctx, username, string(hashed))
	}
	return admin, nil
}

// ChangePassword re-authenticates with the current password and on
// success replaces it with a hash of the new one. Returns false when
// the current password does not match.
func (s *Service) ChangePassword(ctx context.Context, username, current, newPassword string) (bool, error) {
	if _, err := s.Authenticate(ctx, username, current); err != nil {
		return false, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	return s.repo.UpdatePassword(ctx, username, string(hashed))
}

func isBcryptHash(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}
