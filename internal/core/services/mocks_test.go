package services_test

import (
	"context"

	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock BranchRepository ---

type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) ListBranches(ctx context.Context, branchID string) ([]domain.Branch, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) RenameBranch(ctx context.Context, branchID, name string) (*domain.Branch, error) {
	args := m.Called(ctx, branchID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) SumBranchBalances(ctx context.Context, branchIDs []string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, branchIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

var _ ports.BranchRepository = (*MockBranchRepository)(nil)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, branchID string) ([]domain.Account, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SetAccountActive(ctx context.Context, accountID string, active bool) error {
	args := m.Called(ctx, accountID, active)
	return args.Error(0)
}

func (m *MockAccountRepository) SumAccountBalances(ctx context.Context, accountIDs []string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

var _ ports.AccountRepository = (*MockAccountRepository)(nil)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ ports.UserRepository = (*MockUserRepository)(nil)

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error) {
	args := m.Called(ctx, txn)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) SaveTransfer(ctx context.Context, debit, credit domain.Transaction) (*domain.TxLink, map[string]decimal.Decimal, error) {
	args := m.Called(ctx, debit, credit)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.TxLink), args.Get(1).(map[string]decimal.Decimal), args.Error(2)
}

func (m *MockLedgerRepository) BalanceOf(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactions(ctx context.Context, filter ports.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) FindLinkByTxID(ctx context.Context, txID string) (*domain.TxLink, error) {
	args := m.Called(ctx, txID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TxLink), args.Error(1)
}

var _ ports.LedgerRepository = (*MockLedgerRepository)(nil)

// --- Mock MetricsRepository ---

type MockMetricsRepository struct {
	mock.Mock
}

func (m *MockMetricsRepository) Totals(ctx context.Context, filter domain.MetricsFilter) (domain.MetricsTotals, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.MetricsTotals), args.Error(1)
}

func (m *MockMetricsRepository) PeriodSeries(ctx context.Context, filter domain.MetricsFilter, maxBuckets int) ([]domain.PeriodBucket, error) {
	args := m.Called(ctx, filter, maxBuckets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PeriodBucket), args.Error(1)
}

var _ ports.MetricsRepository = (*MockMetricsRepository)(nil)
