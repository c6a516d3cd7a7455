package pgsql

import (
	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgsql-backed repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) ports.RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool)
	return ports.RepositoryProvider{
		BranchRepo:  newPgxBranchRepository(pool),
		AccountRepo: accountRepo,
		UserRepo:    newPgxUserRepository(pool),
		LedgerRepo:  newPgxLedgerRepository(pool, accountRepo),
		MetricsRepo: newPgxMetricsRepository(pool),
	}
}
