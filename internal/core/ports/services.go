package ports

import (
	"context"

	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/cashbookvn/cashbook_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerService is the ledger engine: the only component that appends entries.
type LedgerService interface {
	Deposit(ctx context.Context, actor *domain.AuthUser, req dto.DepositRequest) (*dto.EntryResponse, error)
	Withdraw(ctx context.Context, actor *domain.AuthUser, req dto.WithdrawRequest) (*dto.EntryResponse, error)
	OrderPayment(ctx context.Context, actor *domain.AuthUser, req dto.OrderPaymentRequest) (*dto.EntryResponse, error)
	Transfer(ctx context.Context, actor *domain.AuthUser, req dto.TransferRequest) (*dto.TransferResponse, error)
	ListTransactions(ctx context.Context, actor *domain.AuthUser, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
	// BalanceOf derives an account balance; unknown accounts yield zero.
	BalanceOf(ctx context.Context, actor *domain.AuthUser, accountID string) (decimal.Decimal, error)
}

// AccountService manages the account registry.
type AccountService interface {
	CreateAccount(ctx context.Context, actor *domain.AuthUser, req dto.CreateAccountRequest) (*dto.AccountResponse, error)
	ListAccounts(ctx context.Context, actor *domain.AuthUser, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error)
	DeactivateAccount(ctx context.Context, actor *domain.AuthUser, accountID string) error
}

// BranchService manages branches.
type BranchService interface {
	CreateBranch(ctx context.Context, actor *domain.AuthUser, req dto.CreateBranchRequest) (*dto.BranchResponse, error)
	ListBranches(ctx context.Context, actor *domain.AuthUser) (*dto.ListBranchesResponse, error)
	RenameBranch(ctx context.Context, actor *domain.AuthUser, branchID string, req dto.RenameBranchRequest) (*dto.BranchResponse, error)
}

// UserService manages registration and credential checks.
type UserService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	// Authenticate verifies credentials and returns the user, or
	// apperrors.ErrUnauthenticated on any mismatch.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*dto.UserResponse, error)
}

// MetricsService is the read-only aggregation facade over the ledger.
type MetricsService interface {
	Summary(ctx context.Context, actor *domain.AuthUser, params dto.MetricsSummaryParams) (*dto.MetricsSummaryResponse, error)
}

// ServiceContainer bundles all services for route registration.
type ServiceContainer struct {
	Ledger  LedgerService
	Account AccountService
	Branch  BranchService
	User    UserService
	Metrics MetricsService
}
