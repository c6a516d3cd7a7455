package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cashbookvn/cashbook_backend/internal/apperrors"
	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/cashbookvn/cashbook_backend/internal/dto"
	"github.com/cashbookvn/cashbook_backend/internal/middleware"
	"github.com/cashbookvn/cashbook_backend/internal/utils/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService is the ledger engine. It validates inputs, applies the
// authorization guard, resolves account state, and delegates the atomic
// write (balance precondition + insert under row locks) to the repository.
type ledgerService struct {
	accountRepo ports.AccountRepository
	ledgerRepo  ports.LedgerRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(accountRepo ports.AccountRepository, ledgerRepo ports.LedgerRepository) ports.LedgerService {
	return &ledgerService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ ports.LedgerService = (*ledgerService)(nil)

func requireActor(actor *domain.AuthUser) error {
	if actor == nil || actor.UserID == "" {
		return apperrors.ErrUnauthenticated
	}
	return nil
}

// requireActiveAccount resolves an account and rejects inactive ones.
func (s *ledgerService) requireActiveAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountInactive, accountID)
	}
	return account, nil
}

// Deposit appends one positive DEPOSIT entry. OWNER may deposit into any
// branch; STAFF only into accounts of the home branch.
func (s *ledgerService) Deposit(ctx context.Context, actor *domain.AuthUser, req dto.DepositRequest) (*dto.EntryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := money.ValidatePositiveAmount(req.Amount); err != nil {
		return nil, err
	}

	account, err := s.requireActiveAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, OpDeposit, account.BranchID); err != nil {
		logger.Warn("Deposit rejected by authorization guard", slog.String("account_id", req.AccountID))
		return nil, err
	}

	txn := domain.Transaction{
		TxID:      uuid.NewString(),
		AccountID: account.AccountID,
		BranchID:  account.BranchID,
		UserID:    actor.UserID,
		TxType:    domain.TxDeposit,
		Amount:    req.Amount,
		Note:      req.Note,
		CreatedAt: time.Now().UTC(),
	}

	balance, err := s.ledgerRepo.SaveEntry(ctx, txn)
	if err != nil {
		return nil, err
	}

	logger.Info("Deposit recorded", slog.String("tx_id", txn.TxID), slog.String("account_id", account.AccountID))
	return &dto.EntryResponse{Transaction: dto.ToTransactionResponse(&txn), Balance: balance}, nil
}

// Withdraw appends one negative WITHDRAW entry. OWNER only; fails with
// ErrInsufficientFunds when the derived balance does not cover the amount.
func (s *ledgerService) Withdraw(ctx context.Context, actor *domain.AuthUser, req dto.WithdrawRequest) (*dto.EntryResponse, error) {
	return s.appendOutflow(ctx, actor, OpWithdraw, domain.TxWithdraw, req.AccountID, req.Amount, req.Note, nil)
}

// OrderPayment appends one negative ORDER_PAYMENT entry carrying the order id
// in its metadata. OWNER only, same balance precondition as Withdraw.
func (s *ledgerService) OrderPayment(ctx context.Context, actor *domain.AuthUser, req dto.OrderPaymentRequest) (*dto.EntryResponse, error) {
	if req.OrderID == "" {
		return nil, fmt.Errorf("%w: orderId is required", apperrors.ErrValidation)
	}
	meta := &domain.TxMeta{OrderID: req.OrderID}
	return s.appendOutflow(ctx, actor, OpOrderPayment, domain.TxOrderPayment, req.AccountID, req.Amount, req.Note, meta)
}

// appendOutflow is the shared path of the OWNER-only single-entry debits.
// Authorization fires before any account lookup.
func (s *ledgerService) appendOutflow(ctx context.Context, actor *domain.AuthUser, op Operation, txType domain.TxType, accountID string, amount decimal.Decimal, note string, meta *domain.TxMeta) (*dto.EntryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := money.ValidatePositiveAmount(amount); err != nil {
		return nil, err
	}
	if err := Authorize(actor, op, ""); err != nil {
		logger.Warn("Outflow rejected by authorization guard", slog.String("operation", string(op)), slog.String("account_id", accountID))
		return nil, err
	}

	account, err := s.requireActiveAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		TxID:      uuid.NewString(),
		AccountID: account.AccountID,
		BranchID:  account.BranchID,
		UserID:    actor.UserID,
		TxType:    txType,
		Amount:    amount.Neg(),
		Note:      note,
		Meta:      meta,
		CreatedAt: time.Now().UTC(),
	}

	balance, err := s.ledgerRepo.SaveEntry(ctx, txn)
	if err != nil {
		return nil, err
	}

	logger.Info("Outflow recorded", slog.String("tx_id", txn.TxID), slog.String("tx_type", string(txType)), slog.String("account_id", account.AccountID))
	return &dto.EntryResponse{Transaction: dto.ToTransactionResponse(&txn), Balance: balance}, nil
}

// Transfer atomically appends a debit leg, a credit leg, and the TxLink tying
// them together. The two legs sum to exactly zero by construction; cross-branch
// moves require the explicit allowCrossBranch opt-in.
func (s *ledgerService) Transfer(ctx context.Context, actor *domain.AuthUser, req dto.TransferRequest) (*dto.TransferResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := money.ValidatePositiveAmount(req.Amount); err != nil {
		return nil, err
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: cannot transfer within the same account", apperrors.ErrValidation)
	}
	if err := Authorize(actor, OpTransfer, ""); err != nil {
		logger.Warn("Transfer rejected by authorization guard")
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{req.FromAccountID, req.ToAccountID})
	if err != nil {
		return nil, err
	}
	fromAccount, fromOK := accounts[req.FromAccountID]
	toAccount, toOK := accounts[req.ToAccountID]
	if !fromOK || !toOK {
		return nil, fmt.Errorf("%w: accounts not found", apperrors.ErrNotFound)
	}
	if !fromAccount.IsActive {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountInactive, fromAccount.AccountID)
	}
	if !toAccount.IsActive {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountInactive, toAccount.AccountID)
	}

	crossBranch := fromAccount.BranchID != toAccount.BranchID
	if crossBranch && !req.AllowCrossBranch {
		return nil, apperrors.ErrCrossBranchNotAllowed
	}

	now := time.Now().UTC()
	debitMeta := &domain.TxMeta{Direction: domain.DirectionOutbound}
	creditMeta := &domain.TxMeta{Direction: domain.DirectionInbound}
	if crossBranch {
		debitMeta.CrossBranch = true
		debitMeta.ToBranchID = toAccount.BranchID
		creditMeta.CrossBranch = true
		creditMeta.FromBranchID = fromAccount.BranchID
	}

	debit := domain.Transaction{
		TxID:      uuid.NewString(),
		AccountID: fromAccount.AccountID,
		BranchID:  fromAccount.BranchID,
		UserID:    actor.UserID,
		TxType:    domain.TxTransfer,
		Amount:    req.Amount.Neg(),
		Note:      req.Note,
		Meta:      debitMeta,
		CreatedAt: now,
	}
	credit := domain.Transaction{
		TxID:      uuid.NewString(),
		AccountID: toAccount.AccountID,
		BranchID:  toAccount.BranchID,
		UserID:    actor.UserID,
		TxType:    domain.TxTransfer,
		Amount:    req.Amount,
		Note:      req.Note,
		Meta:      creditMeta,
		CreatedAt: now,
	}

	link, balances, err := s.ledgerRepo.SaveTransfer(ctx, debit, credit)
	if err != nil {
		return nil, err
	}

	logger.Info("Transfer recorded",
		slog.String("link_id", link.LinkID),
		slog.String("from_account_id", fromAccount.AccountID),
		slog.String("to_account_id", toAccount.AccountID),
		slog.Bool("cross_branch", crossBranch),
	)

	return &dto.TransferResponse{
		Debit:    dto.ToTransactionResponse(&debit),
		Credit:   dto.ToTransactionResponse(&credit),
		Balances: balances,
	}, nil
}

// ListTransactions returns ledger entries newest first. STAFF listings are
// silently pinned to the home branch.
func (s *ledgerService) ListTransactions(ctx context.Context, actor *domain.AuthUser, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	branchID, err := ScopeToBranch(actor, params.BranchID)
	if err != nil {
		return nil, err
	}

	filter := ports.TransactionFilter{
		BranchID:  branchID,
		AccountID: params.AccountID,
		UserID:    params.UserID,
		TxType:    domain.TxType(params.Type),
		Limit:     params.Limit,
		Offset:    params.Offset,
	}
	if params.From != "" {
		from, parseErr := time.ParseInLocation("2006-01-02", params.From, time.UTC)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: invalid from date", apperrors.ErrValidation)
		}
		filter.From = from
	}
	if params.To != "" {
		to, parseErr := time.ParseInLocation("2006-01-02", params.To, time.UTC)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: invalid to date", apperrors.ErrValidation)
		}
		// Inclusive calendar date: entries up to the end of that day.
		filter.To = to.Add(24 * time.Hour)
	}

	txns, err := s.ledgerRepo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := dto.ToListTransactionsResponse(txns)
	return &res, nil
}

// BalanceOf derives an account's current balance. The balance of an unknown
// account is conventionally zero; only writes reject unknown accounts.
func (s *ledgerService) BalanceOf(ctx context.Context, actor *domain.AuthUser, accountID string) (decimal.Decimal, error) {
	if err := requireActor(actor); err != nil {
		return decimal.Zero, err
	}

	if actor.Role == domain.RoleStaff {
		account, err := s.accountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return decimal.Zero, nil
			}
			return decimal.Zero, err
		}
		if authErr := Authorize(actor, OpRead, account.BranchID); authErr != nil {
			return decimal.Zero, authErr
		}
	}

	return s.ledgerRepo.BalanceOf(ctx, accountID)
}
