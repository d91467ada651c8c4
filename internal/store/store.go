// Package store persists users and transactions. Every transaction query is
// scoped by the owning user.
package store

import (
	"context" // Request-scoped cancellation
	"time"    // Date ranges

	"finance_tracker/internal/domain" // Importing domain models
)

// UserStore defines persistence operations for users
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// TransactionStore defines persistence operations for transactions
type TransactionStore interface {
	Add(ctx context.Context, tx *domain.Transaction) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error)
	ListByOwnerInRange(ctx context.Context, ownerID string, start, end time.Time) ([]domain.Transaction, error)
	DeleteByID(ctx context.Context, ownerID, transactionID string) error
}
