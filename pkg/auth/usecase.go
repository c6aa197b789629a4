package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase describes registration, authentication and current-user
// resolution behavior.
type AuthUseCase interface {
	Register(ctx context.Context, email, password, businessName string) (User, error)
	Login(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context, email string) (User, error)
}

type authService struct {
	repo   UserRepository
	tokens TokenGenerator
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, tokens TokenGenerator) AuthUseCase {
	return &authService{repo: repo, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, email, password, businessName string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	// If user exists, fail fast (best-effort check; see DESIGN.md on the
	// check-then-create race)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrUserAlreadyExists
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New().String(),
		Email:        email,
		BusinessName: businessName,
		BusinessID:   newBusinessID(),
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Unknown email and wrong password are indistinguishable to the caller.
		return "", ErrInvalidCredentials
	}
	if !verifyPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Generate(ctx, user)
}

func (s *authService) CurrentUser(ctx context.Context, email string) (User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// newBusinessID mints an opaque tenant identifier.
func newBusinessID() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "biz_" + hex[:12]
}

// preparePassword reduces passwords over bcrypt's 72-byte input limit to
// a fixed-length SHA-256 hex digest. It must be applied identically on
// the hash and verify paths, or long passwords never verify.
func preparePassword(password string) []byte {
	if len(password) > 72 {
		sum := sha256.Sum256([]byte(password))
		return []byte(hex.EncodeToString(sum[:]))
	}
	return []byte(password)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(preparePassword(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), preparePassword(password)) == nil
}
