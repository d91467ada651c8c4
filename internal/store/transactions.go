package store

import (
	"context" // Request-scoped cancellation
	"errors"  // Error inspection
	"fmt"     // Error wrapping
	"time"    // Date ranges

	"finance_tracker/internal/domain" // Importing domain models

	"github.com/google/uuid" // Record identifiers
	"gorm.io/gorm"           // GORM ORM library
)

// GormTransactionStore keeps transactions in a relational table through GORM
type GormTransactionStore struct {
	db *gorm.DB
}

// NewTransactionStore returns a TransactionStore backed by db
func NewTransactionStore(db *gorm.DB) *GormTransactionStore {
	return &GormTransactionStore{db: db}
}

// Add validates and persists tx; the store does not enforce enums on its own
func (s *GormTransactionStore) Add(ctx context.Context, tx *domain.Transaction) error {
	tx.Normalize()
	if err := tx.Validate(); err != nil {
		return err
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListByOwner returns all of the owner's transactions, most recent first
func (s *GormTransactionStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	txs := []domain.Transaction{} // Non-nil so an empty list encodes as []
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("date desc").
		Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// ListByOwnerInRange returns the owner's transactions dated within [start, end]
func (s *GormTransactionStore) ListByOwnerInRange(ctx context.Context, ownerID string, start, end time.Time) ([]domain.Transaction, error) {
	txs := []domain.Transaction{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", ownerID, start.UTC(), end.UTC()).
		Order("date desc").
		Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions in range: %w", err)
	}
	return txs, nil
}

// DeleteByID removes a transaction after checking that ownerID owns it
func (s *GormTransactionStore) DeleteByID(ctx context.Context, ownerID, transactionID string) error {
	var tx domain.Transaction
	err := s.db.WithContext(ctx).Where("id = ?", transactionID).First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("transaction %s: %w", transactionID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("query transaction: %w", err)
	}
	// Ownership is checked here, not left to the delete filter
	if tx.UserID != ownerID {
		return fmt.Errorf("transaction %s: %w", transactionID, domain.ErrForbidden)
	}
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", transactionID, ownerID).Delete(&domain.Transaction{})
	if res.Error != nil {
		return fmt.Errorf("delete transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("transaction %s: %w", transactionID, domain.ErrNotFound) // Deleted concurrently
	}
	return nil
}
