package service

import (
	"context"         // Request-scoped cancellation
	"crypto/sha256"   // Password pre-hash
	"encoding/base64" // Pre-hash encoding
	"errors"          // Error inspection
	"fmt"             // Error wrapping
	"strings"         // Input trimming

	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/store"  // Persistence
	"finance_tracker/internal/utils"  // Token signing

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// CredentialService registers users, checks passwords and issues session tokens
type CredentialService struct {
	users  store.UserStore
	secret string
	cost   int
}

// NewCredentialService builds the service; tokens always live for utils.DefaultTokenTTL
func NewCredentialService(users store.UserStore, secret string) *CredentialService {
	return &CredentialService{users: users, secret: secret, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost, mostly so tests run quickly
func (s *CredentialService) WithHashCost(cost int) *CredentialService {
	s.cost = cost
	return s
}

// Register stores a new user with a bcrypt hash of password
func (s *CredentialService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = store.NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}

	// Check up front so the common duplicate case does not depend on driver error text
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email %s: %w", email, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword(passwordKey(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{Name: name, Email: email, Password: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the password for email and returns a signed token
func (s *CredentialService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err // ErrNotFound when no such email
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), passwordKey(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := utils.GenerateJWT(user.ID, s.secret, utils.DefaultTokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// Me returns the user behind an authenticated id
func (s *CredentialService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// passwordKey digests the password to 44 bytes, under bcrypt's 72 byte input limit
func passwordKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
