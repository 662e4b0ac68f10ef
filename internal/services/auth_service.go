package services

import (
	"time"

	"dukkan/internal/domain"
	"dukkan/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier checks a password against a user record. The store
// ships two implementations: MockVerifier, which accepts any non-empty
// password (the demo accounts are not real credentials), and
// BcryptVerifier for a proper check against the seeded hashes.
type CredentialVerifier interface {
	Verify(u *domain.User, password string) bool
}

// MockVerifier waves through any non-empty password. Placeholder only;
// select AUTH_MODE=strict to enforce real hashes.
type MockVerifier struct{}

func (MockVerifier) Verify(_ *domain.User, password string) bool { return password != "" }

type BcryptVerifier struct{}

func (BcryptVerifier) Verify(u *domain.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) == nil
}

func VerifierFor(mode string) CredentialVerifier {
	if mode == "strict" {
		return BcryptVerifier{}
	}
	return MockVerifier{}
}

type AuthService struct {
	Users    *repos.UserRepo
	Verifier CredentialVerifier
	Delay    time.Duration
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	pause(s.Delay)
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !s.Verifier.Verify(u, password) {
		return nil, ErrInvalidCredentials
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// Logout is idempotent: unbinding an already-unbound session succeeds.
func (s *AuthService) Logout(sid string) error {
	pause(s.Delay)
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
