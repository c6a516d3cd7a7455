package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMetricsRepository struct {
	BaseRepository
}

func newPgxMetricsRepository(pool *pgxpool.Pool) ports.MetricsRepository {
	return &PgxMetricsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ ports.MetricsRepository = (*PgxMetricsRepository)(nil)

// truncUnits maps a GroupBy to its date_trunc field. Anything outside this
// map never reaches the query text.
var truncUnits = map[domain.GroupBy]string{
	domain.GroupByDay:   "day",
	domain.GroupByMonth: "month",
	domain.GroupByYear:  "year",
}

func metricsConditions(filter domain.MetricsFilter) (string, []any) {
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
	if !filter.From.IsZero() {
		addCondition("created_at >= ", filter.From)
	}
	if !filter.To.IsZero() {
		addCondition("created_at <= ", filter.To)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *PgxMetricsRepository) Totals(ctx context.Context, filter domain.MetricsFilter) (domain.MetricsTotals, error) {
	where, args := metricsConditions(filter)
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN amount < 0 THEN amount ELSE 0 END), 0) AS outflow,
			COALESCE(SUM(amount), 0) AS net
		FROM transactions` + where + `;`

	var totals domain.MetricsTotals
	err := r.Pool.QueryRow(ctx, query, args...).Scan(&totals.Income, &totals.Outflow, &totals.Net)
	if err != nil {
		return domain.MetricsTotals{}, fmt.Errorf("failed to aggregate ledger totals: %w", err)
	}
	return totals, nil
}

func (r *PgxMetricsRepository) PeriodSeries(ctx context.Context, filter domain.MetricsFilter, maxBuckets int) ([]domain.PeriodBucket, error) {
	unit, ok := truncUnits[filter.GroupBy]
	if !ok {
		return nil, fmt.Errorf("unsupported grouping %q", filter.GroupBy)
	}

	where, args := metricsConditions(filter)
	args = append(args, maxBuckets)
	query := `
		SELECT
			date_trunc('` + unit + `', created_at) AS period,
			COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN amount < 0 THEN amount ELSE 0 END), 0) AS outflow,
			COALESCE(SUM(amount), 0) AS net
		FROM transactions` + where + `
		GROUP BY period
		ORDER BY period DESC
		LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ledger period series: %w", err)
	}
	defer rows.Close()

	buckets := []domain.PeriodBucket{}
	for rows.Next() {
		var bucket domain.PeriodBucket
		if err := rows.Scan(&bucket.Period, &bucket.Income, &bucket.Outflow, &bucket.Net); err != nil {
			return nil, fmt.Errorf("failed to scan period bucket row: %w", err)
		}
		buckets = append(buckets, bucket)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating period bucket rows: %w", rows.Err())
	}
	return buckets, nil
}
