// Package summary derives totals from a user's transactions. Every function
// is pure: no I/O, no mutation of its input.
package summary

import (
	"fmt"  // Error wrapping
	"time" // Month bounds

	"finance_tracker/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Exact money arithmetic
)

// Summary holds credit/debit totals and per-category totals
type Summary struct {
	TotalCredit     decimal.Decimal                     `json:"totalCredit"`
	TotalDebit      decimal.Decimal                     `json:"totalDebit"`
	CategorySummary map[domain.Category]decimal.Decimal `json:"categorySummary"`
}

// Summarize totals credits and debits, and sums every category regardless of type.
// Categories that do not occur are absent from CategorySummary.
func Summarize(txs []domain.Transaction) Summary {
	s := Summary{CategorySummary: make(map[domain.Category]decimal.Decimal)}
	for _, tx := range txs {
		switch tx.Type {
		case domain.Credit:
			s.TotalCredit = s.TotalCredit.Add(tx.Amount)
		case domain.Debit:
			s.TotalDebit = s.TotalDebit.Add(tx.Amount)
		}
		s.CategorySummary[tx.Category] = s.CategorySummary[tx.Category].Add(tx.Amount) // Both types add positively
	}
	return s
}

// Balance adds credits and subtracts debits over the whole set
func Balance(txs []domain.Transaction) decimal.Decimal {
	var sum decimal.Decimal
	for _, tx := range txs {
		switch tx.Type {
		case domain.Credit:
			sum = sum.Add(tx.Amount)
		case domain.Debit:
			sum = sum.Sub(tx.Amount)
		}
	}
	return sum
}

// MonthBounds returns the first and last second of month/year in UTC
func MonthBounds(month, year int) (start, end time.Time, err error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month must be between 1 and 12", domain.ErrValidation)
	}
	if year < 1 || year > 9999 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid year %d", domain.ErrValidation, year)
	}
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).Add(-time.Second) // 23:59:59 on the last day
	return start, end, nil
}

// MonthlyIncome sums credit amounts dated within the month, bounds inclusive
func MonthlyIncome(txs []domain.Transaction, month, year int) (decimal.Decimal, error) {
	start, end, err := MonthBounds(month, year)
	if err != nil {
		return decimal.Zero, err
	}
	var total decimal.Decimal
	for _, tx := range txs {
		if tx.Type != domain.Credit {
			continue
		}
		d := tx.Date.UTC()
		if d.Before(start) || d.After(end) {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total, nil
}
