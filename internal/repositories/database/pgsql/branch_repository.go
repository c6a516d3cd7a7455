package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cashbookvn/cashbook_backend/internal/apperrors"
	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const uniqueViolationCode = "23505"

type PgxBranchRepository struct {
	BaseRepository
}

func newPgxBranchRepository(pool *pgxpool.Pool) ports.BranchRepository {
	return &PgxBranchRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ ports.BranchRepository = (*PgxBranchRepository)(nil)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func (r *PgxBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	query := `
		INSERT INTO branches (branch_id, name, created_at, created_by)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query, branch.BranchID, branch.Name, branch.CreatedAt, branch.CreatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: branch name %q is taken", apperrors.ErrDuplicate, branch.Name)
		}
		return fmt.Errorf("failed to save branch: %w", err)
	}
	return nil
}

func (r *PgxBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	query := `
		SELECT branch_id, name, created_at, created_by
		FROM branches
		WHERE branch_id = $1;
	`
	var branch domain.Branch
	err := r.Pool.QueryRow(ctx, query, branchID).Scan(
		&branch.BranchID,
		&branch.Name,
		&branch.CreatedAt,
		&branch.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: branch %s", apperrors.ErrNotFound, branchID)
		}
		return nil, fmt.Errorf("failed to find branch by ID %s: %w", branchID, err)
	}
	return &branch, nil
}

func (r *PgxBranchRepository) ListBranches(ctx context.Context, branchID string) ([]domain.Branch, error) {
	query := `
		SELECT branch_id, name, created_at, created_by
		FROM branches
	`
	args := []any{}
	if branchID != "" {
		query += ` WHERE branch_id = $1`
		args = append(args, branchID)
	}
	query += ` ORDER BY name ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	defer rows.Close()

	branches := []domain.Branch{}
	for rows.Next() {
		var branch domain.Branch
		if err := rows.Scan(&branch.BranchID, &branch.Name, &branch.CreatedAt, &branch.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan branch row: %w", err)
		}
		branches = append(branches, branch)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating branch rows: %w", rows.Err())
	}
	return branches, nil
}

func (r *PgxBranchRepository) RenameBranch(ctx context.Context, branchID, name string) (*domain.Branch, error) {
	query := `
		UPDATE branches
		SET name = $1
		WHERE branch_id = $2
		RETURNING branch_id, name, created_at, created_by;
	`
	var branch domain.Branch
	err := r.Pool.QueryRow(ctx, query, name, branchID).Scan(
		&branch.BranchID,
		&branch.Name,
		&branch.CreatedAt,
		&branch.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: branch %s", apperrors.ErrNotFound, branchID)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: branch name %q is taken", apperrors.ErrDuplicate, name)
		}
		return nil, fmt.Errorf("failed to rename branch %s: %w", branchID, err)
	}
	return &branch, nil
}

// SumBranchBalances derives per-branch net totals over all ledger entries.
// Branches with no entries are absent from the result map.
func (r *PgxBranchRepository) SumBranchBalances(ctx context.Context, branchIDs []string) (map[string]decimal.Decimal, error) {
	totals := make(map[string]decimal.Decimal)
	if len(branchIDs) == 0 {
		return totals, nil
	}

	query := `
		SELECT branch_id, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE branch_id = ANY($1)
		GROUP BY branch_id;
	`
	rows, err := r.Pool.Query(ctx, query, branchIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query branch balances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var branchID string
		var total decimal.Decimal
		if err := rows.Scan(&branchID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan branch balance row: %w", err)
		}
		totals[branchID] = total
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating branch balance rows: %w", rows.Err())
	}
	return totals, nil
}
