package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/cashbookvn/cashbook_backend/internal/dto"
	"github.com/cashbookvn/cashbook_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService manages the account registry. It never touches ledger
// entries; balances it reports are derived through the repository's
// aggregation query.
type accountService struct {
	accountRepo ports.AccountRepository
	branchRepo  ports.BranchRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo ports.AccountRepository, branchRepo ports.BranchRepository) ports.AccountService {
	return &accountService{
		accountRepo: accountRepo,
		branchRepo:  branchRepo,
	}
}

var _ ports.AccountService = (*accountService)(nil)

// CreateAccount registers a new account under a branch. OWNER only.
func (s *accountService) CreateAccount(ctx context.Context, actor *domain.AuthUser, req dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(actor, OpManage, ""); err != nil {
		return nil, err
	}

	// The owning branch must exist before anything can hang off it.
	if _, err := s.branchRepo.FindBranchByID(ctx, req.BranchID); err != nil {
		return nil, err
	}

	account := domain.Account{
		AccountID:   uuid.NewString(),
		BranchID:    req.BranchID,
		Name:        req.Name,
		AccountType: req.AccountType,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   actor.UserID,
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("branch_id", req.BranchID))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("branch_id", account.BranchID))
	res := dto.ToAccountResponse(&account, decimal.Zero)
	return &res, nil
}

// ListAccounts returns accounts with their derived balances, newest first.
// STAFF listings are pinned to the home branch.
func (s *accountService) ListAccounts(ctx context.Context, actor *domain.AuthUser, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	branchID, err := ScopeToBranch(actor, params.BranchID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, branchID)
	if err != nil {
		return nil, err
	}

	accountIDs := make([]string, len(accounts))
	for i, acc := range accounts {
		accountIDs[i] = acc.AccountID
	}
	balances, err := s.accountRepo.SumAccountBalances(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	res := make([]dto.AccountResponse, len(accounts))
	for i := range accounts {
		balance, ok := balances[accounts[i].AccountID]
		if !ok {
			balance = decimal.Zero
		}
		res[i] = dto.ToAccountResponse(&accounts[i], balance)
	}

	return &dto.ListAccountsResponse{Accounts: res}, nil
}

// DeactivateAccount disables an account. OWNER only. An inactive account
// rejects every new ledger entry; its history stays intact.
func (s *accountService) DeactivateAccount(ctx context.Context, actor *domain.AuthUser, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(actor, OpManage, ""); err != nil {
		return err
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.SetAccountActive(ctx, accountID, false); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
