package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cashbookvn/cashbook_backend/internal/apperrors"
	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/cashbookvn/cashbook_backend/internal/dto"
)

// maxPeriodBuckets caps the time-bucketed series returned by Summary.
const maxPeriodBuckets = 90

// metricsService is the read-only aggregation path over the ledger. Every
// number is derived from the transactions table at read time; there is no
// caching layer between a write and the next read.
type metricsService struct {
	metricsRepo ports.MetricsRepository
}

// NewMetricsService creates a new MetricsService.
func NewMetricsService(metricsRepo ports.MetricsRepository) ports.MetricsService {
	return &metricsService{metricsRepo: metricsRepo}
}

var _ ports.MetricsService = (*metricsService)(nil)

// Summary computes totals, dashboard highlights and the bucketed series for
// the requested range. STAFF is implicitly scoped to the home branch; the
// range defaults to the current UTC month.
func (s *metricsService) Summary(ctx context.Context, actor *domain.AuthUser, params dto.MetricsSummaryParams) (*dto.MetricsSummaryResponse, error) {
	branchID, err := ScopeToBranch(actor, params.BranchID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	effectiveFrom := monthStart
	if params.From != "" {
		from, parseErr := time.ParseInLocation("2006-01-02", params.From, time.UTC)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: invalid from date", apperrors.ErrValidation)
		}
		effectiveFrom = from
	}
	effectiveTo := now
	if params.To != "" {
		to, parseErr := time.ParseInLocation("2006-01-02", params.To, time.UTC)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: invalid to date", apperrors.ErrValidation)
		}
		// Inclusive calendar date: range runs to the end of that day.
		effectiveTo = to.Add(24*time.Hour - time.Nanosecond)
	}

	groupBy := domain.GroupBy(params.GroupBy)
	if groupBy == "" {
		groupBy = domain.GroupByDay
	}

	baseFilter := domain.MetricsFilter{
		BranchID:  branchID,
		AccountID: params.AccountID,
		GroupBy:   groupBy,
	}

	rangeFilter := baseFilter
	rangeFilter.From = effectiveFrom
	rangeFilter.To = effectiveTo
	totals, err := s.metricsRepo.Totals(ctx, rangeFilter)
	if err != nil {
		return nil, err
	}

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	todayFilter := baseFilter
	todayFilter.From = todayStart
	todayFilter.To = todayStart.Add(24*time.Hour - time.Nanosecond)
	todayTotals, err := s.metricsRepo.Totals(ctx, todayFilter)
	if err != nil {
		return nil, err
	}

	monthFilter := baseFilter
	monthFilter.From = monthStart
	monthFilter.To = monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
	monthTotals, err := s.metricsRepo.Totals(ctx, monthFilter)
	if err != nil {
		return nil, err
	}

	periods := []dto.PeriodBucketResponse{}
	if groupBy != domain.GroupByNone {
		buckets, seriesErr := s.metricsRepo.PeriodSeries(ctx, rangeFilter, maxPeriodBuckets)
		if seriesErr != nil {
			return nil, seriesErr
		}
		periods = make([]dto.PeriodBucketResponse, len(buckets))
		for i, b := range buckets {
			periods[i] = dto.PeriodBucketResponse{
				Period:  b.Period,
				Income:  b.Income,
				Outflow: b.Outflow,
				Net:     b.Net,
			}
		}
	}

	return &dto.MetricsSummaryResponse{
		Totals: totals,
		Highlights: dto.MetricsHighlights{
			TodayIncome:     todayTotals.Income,
			ThisMonthIncome: monthTotals.Income,
			ThisMonthNet:    monthTotals.Net,
		},
		Periods: periods,
		Range: dto.MetricsRangeResponse{
			From:    effectiveFrom,
			To:      effectiveTo,
			GroupBy: groupBy,
		},
	}, nil
}
