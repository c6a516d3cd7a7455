package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cashbookvn/cashbook_backend/internal/apperrors"
	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxLedgerRepository owns the append-only transactions table and tx_links.
// All writes run inside a single DB transaction with the affected account
// rows locked, so the balance precondition cannot be raced past.
type PgxLedgerRepository struct {
	BaseRepository
	accountRepo ports.AccountRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo ports.AccountRepository) ports.LedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ ports.LedgerRepository = (*PgxLedgerRepository)(nil)

// SaveEntry appends one ledger entry. The account row is locked, the active
// flag re-checked, and for negative amounts the derived balance must cover
// the debit before the insert goes through.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	accounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{txn.AccountID})
	if err != nil {
		return decimal.Zero, err
	}
	account := accounts[txn.AccountID]
	if !account.IsActive {
		return decimal.Zero, fmt.Errorf("%w: account %s", apperrors.ErrAccountInactive, txn.AccountID)
	}

	if txn.Amount.IsNegative() {
		balance, balErr := sumBalanceTx(ctx, tx, txn.AccountID)
		if balErr != nil {
			return decimal.Zero, balErr
		}
		if balance.Add(txn.Amount).IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, txn.AccountID)
		}
	}

	if err := insertEntry(ctx, tx, txn); err != nil {
		return decimal.Zero, err
	}

	balance, err := sumBalanceTx(ctx, tx, txn.AccountID)
	if err != nil {
		return decimal.Zero, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// SaveTransfer appends both legs and the TxLink in one DB transaction.
// Account rows are locked in sorted id order so concurrent opposing
// transfers cannot deadlock.
func (r *PgxLedgerRepository) SaveTransfer(ctx context.Context, debit, credit domain.Transaction) (*domain.TxLink, map[string]decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	ids := []string{debit.AccountID, credit.AccountID}
	sort.Strings(ids)
	accounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, nil, err
	}
	for _, id := range ids {
		if !accounts[id].IsActive {
			return nil, nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountInactive, id)
		}
	}

	sourceBalance, err := sumBalanceTx(ctx, tx, debit.AccountID)
	if err != nil {
		return nil, nil, err
	}
	if sourceBalance.Add(debit.Amount).IsNegative() {
		return nil, nil, fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, debit.AccountID)
	}

	if err := insertEntry(ctx, tx, debit); err != nil {
		return nil, nil, err
	}
	if err := insertEntry(ctx, tx, credit); err != nil {
		return nil, nil, err
	}

	link := domain.TxLink{
		LinkID:     uuid.NewString(),
		DebitTxID:  debit.TxID,
		CreditTxID: credit.TxID,
		CreatedAt:  debit.CreatedAt,
	}
	linkQuery := `
		INSERT INTO tx_links (link_id, debit_tx_id, credit_tx_id, created_at)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := tx.Exec(ctx, linkQuery, link.LinkID, link.DebitTxID, link.CreditTxID, link.CreatedAt); err != nil {
		return nil, nil, fmt.Errorf("failed to save transfer link: %w", err)
	}

	balances := make(map[string]decimal.Decimal, 2)
	for _, id := range []string{debit.AccountID, credit.AccountID} {
		balance, balErr := sumBalanceTx(ctx, tx, id)
		if balErr != nil {
			return nil, nil, balErr
		}
		balances[id] = balance
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return &link, balances, nil
}

func insertEntry(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	var metaJSON []byte
	if txn.Meta != nil {
		var err error
		metaJSON, err = json.Marshal(txn.Meta)
		if err != nil {
			return fmt.Errorf("failed to marshal transaction meta: %w", err)
		}
	}

	query := `
		INSERT INTO transactions (tx_id, account_id, branch_id, user_id, tx_type, amount, note, meta, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		txn.TxID,
		txn.AccountID,
		txn.BranchID,
		txn.UserID,
		txn.TxType,
		txn.Amount,
		txn.Note,
		metaJSON,
		txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save ledger entry: %w", err)
	}
	return nil
}

func sumBalanceTx(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE account_id = $1;`
	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, query, accountID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to derive account balance: %w", err)
	}
	return balance, nil
}

func (r *PgxLedgerRepository) BalanceOf(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE account_id = $1;`
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to derive account balance: %w", err)
	}
	return balance, nil
}

func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, filter ports.TransactionFilter) ([]domain.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT tx_id, account_id, branch_id, user_id, tx_type, amount, note, meta, created_at
		FROM transactions
	`)

	conditions := []string{}
	args := []any{}
	addCondition := func(clause string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, clause+"$"+strconv.Itoa(len(args)))
	}

	if filter.BranchID != "" {
		addCondition("branch_id = ", filter.BranchID)
	}
	if filter.AccountID != "" {
		addCondition("account_id = ", filter.AccountID)
	}
	if filter.UserID != "" {
		addCondition("user_id = ", filter.UserID)
	}
	if filter.TxType != "" {
		addCondition("tx_type = ", filter.TxType)
	}
	if !filter.From.IsZero() {
		addCondition("created_at >= ", filter.From)
	}
	if !filter.To.IsZero() {
		addCondition("created_at < ", filter.To)
	}

	if len(conditions) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC, tx_id DESC")

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}
	sb.WriteString(";")

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		var txn domain.Transaction
		var metaJSON []byte
		err := rows.Scan(
			&txn.TxID,
			&txn.AccountID,
			&txn.BranchID,
			&txn.UserID,
			&txn.TxType,
			&txn.Amount,
			&txn.Note,
			&metaJSON,
			&txn.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		if len(metaJSON) > 0 {
			var meta domain.TxMeta
			if err := json.Unmarshal(metaJSON, &meta); err != nil {
				return nil, fmt.Errorf("failed to unmarshal transaction meta: %w", err)
			}
			txn.Meta = &meta
		}
		txns = append(txns, txn)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}
	return txns, nil
}

func (r *PgxLedgerRepository) FindLinkByTxID(ctx context.Context, txID string) (*domain.TxLink, error) {
	query := `
		SELECT link_id, debit_tx_id, credit_tx_id, created_at
		FROM tx_links
		WHERE debit_tx_id = $1 OR credit_tx_id = $1;
	`
	var link domain.TxLink
	err := r.Pool.QueryRow(ctx, query, txID).Scan(&link.LinkID, &link.DebitTxID, &link.CreditTxID, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transfer link for transaction %s", apperrors.ErrNotFound, txID)
		}
		return nil, fmt.Errorf("failed to find transfer link: %w", err)
	}
	return &link, nil
}
