package store

import (
	"context" // Request-scoped cancellation
	"errors"  // Error inspection
	"fmt"     // Error wrapping
	"strings" // Email normalization

	"finance_tracker/internal/domain" // Importing domain models

	"github.com/google/uuid" // Record identifiers
	"gorm.io/gorm"           // GORM ORM library
)

// GormUserStore keeps users in a relational table through GORM
type GormUserStore struct {
	db *gorm.DB
}

// NewUserStore returns a UserStore backed by db
func NewUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

// NormalizeEmail lower-cases and trims an address so lookups are case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts the user, assigning an id; a taken email yields ErrConflict
func (s *GormUserStore) Create(ctx context.Context, user *domain.User) error {
	user.Email = NormalizeEmail(user.Email)
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return fmt.Errorf("email %s: %w", user.Email, domain.ErrConflict)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail looks a user up by normalized email
func (s *GormUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	return userResult(&user, err)
}

// GetByID looks a user up by id
func (s *GormUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	return userResult(&user, err)
}

func userResult(user *domain.User, err error) (*domain.User, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

// isUniqueViolation covers drivers that do not translate duplicate-key errors
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
