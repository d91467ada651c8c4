package api

import (
	"context"  // Cache calls
	"fmt"      // Error wrapping
	"net/http" // HTTP status codes
	"strconv"  // Query parsing
	"strings"  // Date detection
	"time"     // Date ranges

	"finance_tracker/internal/domain"     // Importing domain models
	"finance_tracker/internal/middleware" // Authenticated user lookup
	"finance_tracker/internal/store"      // Transaction persistence
	"finance_tracker/internal/summary"    // Aggregation
	"finance_tracker/internal/utils"      // Cache

	"github.com/gin-gonic/gin"       // Gin web framework
	"github.com/shopspring/decimal" // Exact amounts
	"github.com/sirupsen/logrus"     // Logging library
)

// AddTransactionRequest is the body of POST /api/transaction/add
type AddTransactionRequest struct {
	TransactionType string           `json:"transactionType" binding:"required"` // credit or debit
	Category        string           `json:"category" binding:"required"`        // Closed-set label
	Amount          *decimal.Decimal `json:"amount" binding:"required"`          // Pointer so 0 is accepted
	Date            string           `json:"date" binding:"required"`            // RFC 3339 or YYYY-MM-DD
	Notes           string           `json:"notes"`                              // Optional
}

// SummaryRequest is the body of POST /api/transaction/transactions-summary
type SummaryRequest struct {
	StartDate string `json:"startDate" binding:"required"` // Inclusive lower bound
	EndDate   string `json:"endDate" binding:"required"`   // Inclusive upper bound
}

// TransactionHandlers serves the /api/transaction routes
type TransactionHandlers struct {
	store store.TransactionStore
	cache *utils.Cache
	log   *logrus.Logger
}

// NewTransactionHandlers wires the handlers to their collaborators
func NewTransactionHandlers(txs store.TransactionStore, cache *utils.Cache, log *logrus.Logger) *TransactionHandlers {
	return &TransactionHandlers{store: txs, cache: cache, log: log}
}

// Add records a new transaction for the authenticated user
func (h *TransactionHandlers) Add(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	var req AddTransactionRequest // Bind JSON request to struct
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "add transaction", "transactionType, category, amount and date are required", err)
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		respondError(c, h.log, "add transaction", "Transaction", err)
		return
	}
	tx := &domain.Transaction{
		UserID:   userID,                                      // Owner from the token, never the body
		Type:     domain.TransactionType(req.TransactionType), // Checked by Validate
		Category: domain.Category(req.Category),               // Checked by Validate
		Amount:   *req.Amount,                                 // Must be >= 0
		Date:     date,                                        // UTC
		Notes:    req.Notes,                                   // Trimmed by the store
	}
	if err := h.store.Add(c.Request.Context(), tx); err != nil {
		respondError(c, h.log, "add transaction", "Transaction", err)
		return
	}
	h.invalidate(c.Request.Context(), userID)
	h.log.WithFields(logrus.Fields{
		"user_id":        userID,      // Owner
		"transaction_id": tx.ID,       // New record
		"type":           tx.Type,     // credit or debit
		"category":       tx.Category, // Label
		"amount":         tx.Amount,   // Amount
	}).Info("Transaction added")
	c.JSON(http.StatusCreated, gin.H{"message": "Transaction added successfully", "transaction": tx})
}

// Delete removes one of the authenticated user's transactions
func (h *TransactionHandlers) Delete(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	id := c.Param("id")
	if err := h.store.DeleteByID(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.log, "delete transaction", "Transaction", err)
		return
	}
	h.invalidate(c.Request.Context(), userID)
	h.log.WithFields(logrus.Fields{
		"user_id":        userID, // Owner
		"transaction_id": id,     // Deleted record
	}).Info("Transaction deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// View lists all of the user's transactions, most recent first
func (h *TransactionHandlers) View(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	ctx := c.Request.Context()
	gen, cached := h.generation(ctx, userID)
	key := utils.TransactionsKey(userID, gen)

	var txs []domain.Transaction
	if cached && h.cacheGet(ctx, key, &txs) {
		c.JSON(http.StatusOK, txs)
		return
	}
	txs, err := h.store.ListByOwner(ctx, userID)
	if err != nil {
		respondError(c, h.log, "view transactions", "Transaction", err)
		return
	}
	if cached {
		h.cacheSet(ctx, key, txs)
	}
	c.JSON(http.StatusOK, txs)
}

// TotalBalance returns credits minus debits over all of the user's transactions
func (h *TransactionHandlers) TotalBalance(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	ctx := c.Request.Context()
	gen, cached := h.generation(ctx, userID)
	key := utils.BalanceKey(userID, gen)

	var balance decimal.Decimal
	if cached && h.cacheGet(ctx, key, &balance) {
		c.JSON(http.StatusOK, gin.H{"balance": balance})
		return
	}
	txs, err := h.store.ListByOwner(ctx, userID)
	if err != nil {
		respondError(c, h.log, "total balance", "Transaction", err)
		return
	}
	balance = summary.Balance(txs)
	if cached {
		h.cacheSet(ctx, key, balance)
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// Summary totals credits, debits and categories between two dates
func (h *TransactionHandlers) Summary(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	var req SummaryRequest // Bind JSON request to struct
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "transactions summary", "startDate and endDate are required", err)
		return
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		respondError(c, h.log, "transactions summary", "Transaction", err)
		return
	}
	txs, err := h.store.ListByOwnerInRange(c.Request.Context(), userID, start, end)
	if err != nil {
		respondError(c, h.log, "transactions summary", "Transaction", err)
		return
	}
	c.JSON(http.StatusOK, summary.Summarize(txs))
}

// TaxSummary returns the income received in one calendar month
func (h *TransactionHandlers) TaxSummary(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	month, errM := strconv.Atoi(c.Query("month"))
	year, errY := strconv.Atoi(c.Query("year"))
	if errM != nil || errY != nil {
		respondError(c, h.log, "tax summary", "Transaction",
			fmt.Errorf("%w: month and year must be integers", domain.ErrValidation))
		return
	}
	start, end, err := summary.MonthBounds(month, year)
	if err != nil {
		respondError(c, h.log, "tax summary", "Transaction", err)
		return
	}
	txs, err := h.store.ListByOwnerInRange(c.Request.Context(), userID, start, end)
	if err != nil {
		respondError(c, h.log, "tax summary", "Transaction", err)
		return
	}
	total, err := summary.MonthlyIncome(txs, month, year)
	if err != nil {
		respondError(c, h.log, "tax summary", "Transaction", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalIncome": total})
}

// Categories lists the accepted category labels
func (h *TransactionHandlers) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"income":  domain.IncomeCategories,
		"expense": domain.ExpenseCategories,
	})
}

// parseRange parses inclusive bounds; a date-only end covers that whole day
func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := domain.ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := domain.ParseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !strings.Contains(endStr, "T") {
		end = end.Add(24*time.Hour - time.Millisecond)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startDate must not be after endDate", domain.ErrValidation)
	}
	return start, end, nil
}

// generation reads the user's cache generation before any database read.
// ok is false when the cache is off or unreachable, and the caller then skips it.
func (h *TransactionHandlers) generation(ctx context.Context, userID string) (gen int64, ok bool) {
	if !h.cache.Enabled() {
		return 0, false
	}
	gen, err := h.cache.Generation(ctx, userID)
	if err != nil {
		h.log.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("Cache generation read failed")
		return 0, false
	}
	return gen, true
}

// cacheGet reports a hit; Redis errors are logged and treated as a miss
func (h *TransactionHandlers) cacheGet(ctx context.Context, key string, dest any) bool {
	found, err := h.cache.Get(ctx, key, dest)
	if err != nil {
		h.log.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache read failed")
		return false
	}
	return found
}

func (h *TransactionHandlers) cacheSet(ctx context.Context, key string, value any) {
	if err := h.cache.Set(ctx, key, value); err != nil {
		h.log.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache write failed")
	}
}

func (h *TransactionHandlers) invalidate(ctx context.Context, userID string) {
	if err := h.cache.InvalidateUser(ctx, userID); err != nil {
		h.log.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("Cache invalidation failed")
	}
}
