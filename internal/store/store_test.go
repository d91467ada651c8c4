package store

import (
	"context"
	"testing"
	"time"

	"finance_tracker/internal/domain"
	"finance_tracker/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// StoreTestSuite runs the GORM stores against an in-memory database
type StoreTestSuite struct {
	suite.Suite
	users *GormUserStore
	txs   *GormTransactionStore
	ctx   context.Context
	alice *domain.User
	bob   *domain.User
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

// SetupTest runs before each test
func (s *StoreTestSuite) SetupTest() {
	gdb := testutil.NewDB(s.T())
	s.users = NewUserStore(gdb)
	s.txs = NewTransactionStore(gdb)
	s.ctx = context.Background()

	s.alice = &domain.User{Name: "Alice", Email: "alice@example.com", Password: "hash"}
	s.bob = &domain.User{Name: "Bob", Email: "bob@example.com", Password: "hash"}
	require.NoError(s.T(), s.users.Create(s.ctx, s.alice))
	require.NoError(s.T(), s.users.Create(s.ctx, s.bob))
}

func (s *StoreTestSuite) add(owner *domain.User, typ domain.TransactionType, cat domain.Category, amount string, date time.Time) *domain.Transaction {
	tx := &domain.Transaction{UserID: owner.ID, Type: typ, Category: cat, Amount: decimal.RequireFromString(amount), Date: date}
	require.NoError(s.T(), s.txs.Add(s.ctx, tx))
	return tx
}

func (s *StoreTestSuite) TestCreateUserAssignsIDAndNormalizesEmail() {
	u := &domain.User{Name: "Carol", Email: "  Carol@Example.COM ", Password: "hash"}
	require.NoError(s.T(), s.users.Create(s.ctx, u))
	assert.NotEmpty(s.T(), u.ID)
	assert.Equal(s.T(), "carol@example.com", u.Email)

	found, err := s.users.GetByEmail(s.ctx, "CAROL@example.com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), u.ID, found.ID)

	byID, err := s.users.GetByID(s.ctx, u.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Carol", byID.Name)
}

func (s *StoreTestSuite) TestCreateUserDuplicateEmail() {
	err := s.users.Create(s.ctx, &domain.User{Name: "Other", Email: "ALICE@example.com", Password: "x"})
	assert.ErrorIs(s.T(), err, domain.ErrConflict)
}

func (s *StoreTestSuite) TestGetUserNotFound() {
	_, err := s.users.GetByEmail(s.ctx, "nobody@example.com")
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
	_, err = s.users.GetByID(s.ctx, "missing")
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *StoreTestSuite) TestAddRejectsUnknownEnums() {
	err := s.txs.Add(s.ctx, &domain.Transaction{UserID: s.alice.ID, Type: "refund", Category: domain.Marketing, Amount: decimal.NewFromInt(1), Date: time.Now()})
	assert.ErrorIs(s.T(), err, domain.ErrValidation)

	err = s.txs.Add(s.ctx, &domain.Transaction{UserID: s.alice.ID, Type: domain.Debit, Category: "groceries", Amount: decimal.NewFromInt(1), Date: time.Now()})
	assert.ErrorIs(s.T(), err, domain.ErrValidation)

	list, err := s.txs.ListByOwner(s.ctx, s.alice.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), list)
}

func (s *StoreTestSuite) TestAddTrimsNotes() {
	tx := &domain.Transaction{UserID: s.alice.ID, Type: domain.Debit, Category: domain.BusinessMeals, Amount: decimal.RequireFromString("12.5"), Date: time.Now(), Notes: "  dinner  "}
	require.NoError(s.T(), s.txs.Add(s.ctx, tx))
	assert.NotEmpty(s.T(), tx.ID)

	list, err := s.txs.ListByOwner(s.ctx, s.alice.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), "dinner", list[0].Notes)
}

func (s *StoreTestSuite) TestFractionalAmountsRoundTrip() {
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	s.add(s.alice, domain.Credit, domain.ClientPayments, "0.1", base)
	s.add(s.alice, domain.Credit, domain.Royalties, "0.2", base.Add(time.Hour))
	s.add(s.alice, domain.Debit, domain.Marketing, "1234.5678", base.Add(2*time.Hour))

	list, err := s.txs.ListByOwner(s.ctx, s.alice.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 3)
	assert.Equal(s.T(), "1234.5678", list[0].Amount.String())
	assert.Equal(s.T(), "0.2", list[1].Amount.String())
	assert.Equal(s.T(), "0.1", list[2].Amount.String())
	assert.Equal(s.T(), "0.3", list[1].Amount.Add(list[2].Amount).String())
}

func (s *StoreTestSuite) TestListByOwnerIsScopedAndSortedByDateDesc() {
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	s.add(s.alice, domain.Credit, domain.ClientPayments, "100", base)
	s.add(s.alice, domain.Debit, domain.Marketing, "30", base.Add(48*time.Hour))
	s.add(s.alice, domain.Credit, domain.Royalties, "50", base.Add(-48*time.Hour))
	s.add(s.bob, domain.Credit, domain.Royalties, "999", base)

	list, err := s.txs.ListByOwner(s.ctx, s.alice.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 3)
	assert.Equal(s.T(), domain.Marketing, list[0].Category)
	assert.Equal(s.T(), domain.ClientPayments, list[1].Category)
	assert.Equal(s.T(), domain.Royalties, list[2].Category)
	for _, tx := range list {
		assert.Equal(s.T(), s.alice.ID, tx.UserID)
	}
}

func (s *StoreTestSuite) TestListByOwnerInRangeIsInclusive() {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	s.add(s.alice, domain.Credit, domain.ClientPayments, "1", start)
	s.add(s.alice, domain.Credit, domain.ClientPayments, "2", end)
	s.add(s.alice, domain.Credit, domain.ClientPayments, "4", end.Add(time.Second))
	s.add(s.alice, domain.Credit, domain.ClientPayments, "8", start.Add(-time.Second))
	s.add(s.bob, domain.Credit, domain.ClientPayments, "16", start)

	list, err := s.txs.ListByOwnerInRange(s.ctx, s.alice.ID, start, end)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 2)
	assert.Equal(s.T(), "2", list[0].Amount.String())
	assert.Equal(s.T(), "1", list[1].Amount.String())
}

func (s *StoreTestSuite) TestDeleteByID() {
	tx := s.add(s.alice, domain.Debit, domain.Education, "20", time.Now())

	require.NoError(s.T(), s.txs.DeleteByID(s.ctx, s.alice.ID, tx.ID))

	list, err := s.txs.ListByOwner(s.ctx, s.alice.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), list)

	err = s.txs.DeleteByID(s.ctx, s.alice.ID, tx.ID)
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *StoreTestSuite) TestDeleteByIDOtherOwnerIsForbidden() {
	tx := s.add(s.alice, domain.Debit, domain.Education, "20", time.Now())

	err := s.txs.DeleteByID(s.ctx, s.bob.ID, tx.ID)
	assert.ErrorIs(s.T(), err, domain.ErrForbidden)

	list, err := s.txs.ListByOwner(s.ctx, s.alice.ID)
	require.NoError(s.T(), err)
	assert.Len(s.T(), list, 1, "transaction must survive a foreign delete")
}
