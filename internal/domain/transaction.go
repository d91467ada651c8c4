package domain

import (
	"fmt"     // Error wrapping
	"strings" // Notes trimming
	"time"    // Transaction dates

	"github.com/shopspring/decimal" // Exact money amounts
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true // Amounts are JSON numbers
}

// TransactionType says whether a transaction adds to or subtracts from the balance
type TransactionType string

// Transaction types
const (
	Credit TransactionType = "credit" // Inflow
	Debit  TransactionType = "debit"  // Outflow
)

// Category is one of the fixed income or expense labels
type Category string

// Income categories
const (
	ClientPayments     Category = "clientPayments"
	Royalties          Category = "royalties"
	AffiliateEarnings  Category = "affiliateEarnings"
	FreelancePlatforms Category = "freelancePlatforms"
	PassiveIncome      Category = "passiveIncome"
)

// Expense categories
const (
	SoftwareSubscriptions Category = "softwareSubscriptions"
	Marketing             Category = "marketing"
	OfficeSupplies        Category = "officeSupplies"
	InternetPhone         Category = "internetPhone"
	Education             Category = "education"
	Transportation        Category = "transportation"
	CoWorkingSpace        Category = "coWorkingSpace"
	FreelancePlatformFees Category = "freelancePlatformFees"
	WebsiteHosting        Category = "websiteHosting"
	BusinessMeals         Category = "businessMeals"
	TaxAccounting         Category = "taxAccounting"
	InsuranceLegal        Category = "insuranceLegal"
	Miscellaneous         Category = "miscellaneous"
)

// MaxNotesLength is the longest notes value accepted after trimming
const MaxNotesLength = 500

// AmountScale is the number of decimal places kept for an amount
const AmountScale = 4

// IncomeCategories lists income labels in display order
var IncomeCategories = []Category{
	ClientPayments, Royalties, AffiliateEarnings, FreelancePlatforms, PassiveIncome,
}

// ExpenseCategories lists expense labels in display order
var ExpenseCategories = []Category{
	SoftwareSubscriptions, Marketing, OfficeSupplies, InternetPhone, Education,
	Transportation, CoWorkingSpace, FreelancePlatformFees, WebsiteHosting,
	BusinessMeals, TaxAccounting, InsuranceLegal, Miscellaneous,
}

var knownCategories = func() map[Category]struct{} {
	m := make(map[Category]struct{}, len(IncomeCategories)+len(ExpenseCategories))
	for _, c := range IncomeCategories {
		m[c] = struct{}{}
	}
	for _, c := range ExpenseCategories {
		m[c] = struct{}{}
	}
	return m
}()

// Valid reports whether t is credit or debit
func (t TransactionType) Valid() bool {
	return t == Credit || t == Debit
}

// Valid reports whether c belongs to the closed category set
func (c Category) Valid() bool {
	_, ok := knownCategories[c]
	return ok
}

// Transaction Model
type Transaction struct {
	ID       string          `gorm:"primaryKey;size:36" json:"id"`                                  // UUID primary key
	UserID   string          `gorm:"size:36;not null;index:idx_user_date,priority:1" json:"userId"`  // Owning user
	Type     TransactionType `gorm:"column:transaction_type;size:8;not null" json:"transactionType"` // credit or debit
	Category Category        `gorm:"size:32;not null" json:"category"`                              // Closed-set label
	Amount   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`                      // Always >= 0
	Date     time.Time       `gorm:"not null;index:idx_user_date,priority:2,sort:desc" json:"date"`  // When it happened
	Notes    string          `gorm:"size:500" json:"notes,omitempty"`                               // Optional free text
	User     *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`        // Owner relation
}

// Normalize trims free text, rounds the amount to AmountScale and moves the date to UTC
func (t *Transaction) Normalize() {
	t.Notes = strings.TrimSpace(t.Notes)
	t.Amount = t.Amount.Round(AmountScale)
	t.Date = t.Date.UTC()
}

// Validate enforces the enum, amount and notes constraints before anything is stored
func (t *Transaction) Validate() error {
	if t.UserID == "" {
		return fmt.Errorf("%w: transaction has no owner", ErrValidation)
	}
	if !t.Type.Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", ErrValidation, t.Type)
	}
	if !t.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, t.Category)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if len([]rune(t.Notes)) > MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrValidation, MaxNotesLength)
	}
	return nil
}

// ParseDate accepts RFC 3339 timestamps or plain calendar dates (YYYY-MM-DD)
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrValidation)
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
}
