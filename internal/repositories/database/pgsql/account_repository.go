package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cashbookvn/cashbook_backend/internal/apperrors"
	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) ports.AccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ ports.AccountRepository = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.AccountID,
		&account.BranchID,
		&account.Name,
		&account.AccountType,
		&account.IsActive,
		&account.CreatedAt,
		&account.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (account_id, branch_id, name, account_type, is_active, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.BranchID,
		account.Name,
		account.AccountType,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT account_id, branch_id, name, account_type, is_active, created_at, created_by
		FROM accounts
		WHERE account_id = $1;
	`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return account, nil
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT account_id, branch_id, name, account_type, is_active, created_at, created_by
		FROM accounts
		WHERE account_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

// FindAccountsByIDsForUpdate locks the account rows for the duration of tx.
// Must be called within a transaction; returns ErrNotFound if any id is missing.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT account_id, branch_id, name, account_type, is_active, created_at, created_by
		FROM accounts
		WHERE account_id = ANY($1)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	defer rows.Close()

	accountsMap, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}

	if len(accountsMap) != len(accountIDs) {
		missing := []string{}
		for _, id := range accountIDs {
			if _, found := accountsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		return nil, fmt.Errorf("%w: accounts %s", apperrors.ErrNotFound, strings.Join(missing, ", "))
	}

	return accountsMap, nil
}

func collectAccounts(rows pgx.Rows) (map[string]domain.Account, error) {
	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		var account domain.Account
		err := rows.Scan(
			&account.AccountID,
			&account.BranchID,
			&account.Name,
			&account.AccountType,
			&account.IsActive,
			&account.CreatedAt,
			&account.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accountsMap[account.AccountID] = account
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", rows.Err())
	}
	return accountsMap, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, branchID string) ([]domain.Account, error) {
	query := `
		SELECT account_id, branch_id, name, account_type, is_active, created_at, created_by
		FROM accounts
	`
	args := []any{}
	if branchID != "" {
		query += ` WHERE branch_id = $1`
		args = append(args, branchID)
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var account domain.Account
		err := rows.Scan(
			&account.AccountID,
			&account.BranchID,
			&account.Name,
			&account.AccountType,
			&account.IsActive,
			&account.CreatedAt,
			&account.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", rows.Err())
	}
	return accounts, nil
}

func (r *PgxAccountRepository) SetAccountActive(ctx context.Context, accountID string, active bool) error {
	query := `
		UPDATE accounts
		SET is_active = $1
		WHERE account_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, active, accountID)
	if err != nil {
		return fmt.Errorf("failed to update account active flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

// SumAccountBalances derives balances for the given accounts by summing their
// ledger entries. Accounts with no entries are absent from the result map.
func (r *PgxAccountRepository) SumAccountBalances(ctx context.Context, accountIDs []string) (map[string]decimal.Decimal, error) {
	balances := make(map[string]decimal.Decimal)
	if len(accountIDs) == 0 {
		return balances, nil
	}

	query := `
		SELECT account_id, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE account_id = ANY($1)
		GROUP BY account_id;
	`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query account balances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var accountID string
		var balance decimal.Decimal
		if err := rows.Scan(&accountID, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan account balance row: %w", err)
		}
		balances[accountID] = balance
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account balance rows: %w", rows.Err())
	}
	return balances, nil
}
