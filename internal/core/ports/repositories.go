package ports

import (
	"context"
	"time"

	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// BranchRepository handles persistence for branches.
type BranchRepository interface {
	// SaveBranch inserts a branch. Returns apperrors.ErrDuplicate when the name is taken.
	SaveBranch(ctx context.Context, branch domain.Branch) error
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)
	// ListBranches returns branches ordered by name. A non-empty branchID
	// restricts the result to that single branch (STAFF scoping).
	ListBranches(ctx context.Context, branchID string) ([]domain.Branch, error)
	// RenameBranch updates a branch name. ErrNotFound when missing, ErrDuplicate on name conflict.
	RenameBranch(ctx context.Context, branchID, name string) (*domain.Branch, error)
	// SumBranchBalances derives per-branch net totals over all ledger entries.
	SumBranchBalances(ctx context.Context, branchIDs []string) (map[string]decimal.Decimal, error)
}

// AccountRepository handles persistence for accounts.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	// FindAccountsByIDsForUpdate locks the account rows for the duration of tx.
	// Must be called within a transaction; returns ErrNotFound if any id is missing.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
	// ListAccounts returns accounts newest first, optionally restricted to one branch.
	ListAccounts(ctx context.Context, branchID string) ([]domain.Account, error)
	// SetAccountActive flips the active flag. Inactive accounts reject all new ledger entries.
	SetAccountActive(ctx context.Context, accountID string, active bool) error
	// SumAccountBalances derives balances for the given accounts by summing their entries.
	SumAccountBalances(ctx context.Context, accountIDs []string) (map[string]decimal.Decimal, error)
}

// UserRepository handles persistence for users.
type UserRepository interface {
	// SaveUser inserts a user. Returns apperrors.ErrDuplicate when the email is taken.
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TransactionFilter narrows a ledger entry listing.
type TransactionFilter struct {
	BranchID  string
	AccountID string
	UserID    string
	TxType    domain.TxType
	From      time.Time
	To        time.Time
	Limit     int
	Offset    int
}

// LedgerRepository owns the append-only transactions table and tx_links.
// It is the only component that writes ledger entries; nothing updates or
// deletes them afterwards.
type LedgerRepository interface {
	// SaveEntry appends one entry inside a single DB transaction: it locks the
	// account row, re-checks the active flag, enforces the no-overdraft
	// precondition for negative amounts, inserts the entry, and derives the
	// post-write balance before committing. Returns that balance.
	SaveEntry(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error)
	// SaveTransfer appends the debit and credit legs plus their TxLink inside a
	// single DB transaction, enforcing the source balance precondition under
	// row locks. Returns the link and the post-write balances of both accounts
	// keyed by account id. All three writes succeed or none do.
	SaveTransfer(ctx context.Context, debit, credit domain.Transaction) (*domain.TxLink, map[string]decimal.Decimal, error)
	// BalanceOf derives an account balance as the sum of its entries at the
	// instant of read. Unknown or empty accounts yield zero.
	BalanceOf(ctx context.Context, accountID string) (decimal.Decimal, error)
	// ListTransactions returns entries newest first.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
	// FindLinkByTxID resolves the TxLink a transfer leg belongs to.
	FindLinkByTxID(ctx context.Context, txID string) (*domain.TxLink, error)
}

// MetricsRepository is the read-only aggregation path over the ledger.
type MetricsRepository interface {
	// Totals sums income (positive entries), outflow (negative entries) and net
	// over the filtered range.
	Totals(ctx context.Context, filter domain.MetricsFilter) (domain.MetricsTotals, error)
	// PeriodSeries buckets entries with date_trunc at the filter's granularity,
	// most recent first, capped at maxBuckets.
	PeriodSeries(ctx context.Context, filter domain.MetricsFilter, maxBuckets int) ([]domain.PeriodBucket, error)
}

// RepositoryProvider bundles all repositories for dependency injection.
type RepositoryProvider struct {
	BranchRepo  BranchRepository
	AccountRepo AccountRepository
	UserRepo    UserRepository
	LedgerRepo  LedgerRepository
	MetricsRepo MetricsRepository
}
