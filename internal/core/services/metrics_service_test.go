package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/cashbookvn/cashbook_backend/internal/core/services"
	"github.com/cashbookvn/cashbook_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MetricsServiceTestSuite struct {
	suite.Suite
	mockMetricsRepo *MockMetricsRepository
	service         ports.MetricsService
}

func (s *MetricsServiceTestSuite) SetupTest() {
	s.mockMetricsRepo = new(MockMetricsRepository)
	s.service = services.NewMetricsService(s.mockMetricsRepo)
}

func (s *MetricsServiceTestSuite) TestSummary_DefaultsToCurrentMonth() {
	ctx := context.Background()
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	totals := domain.MetricsTotals{
		Income:  decimal.NewFromInt(500_000),
		Outflow: decimal.NewFromInt(-200_000),
		Net:     decimal.NewFromInt(300_000),
	}
	// Range totals, today's totals, and month totals are three separate sums.
	s.mockMetricsRepo.On("Totals", ctx, mock.MatchedBy(func(f domain.MetricsFilter) bool {
		return !f.From.Before(monthStart)
	})).Return(totals, nil).Times(3)
	s.mockMetricsRepo.On("PeriodSeries", ctx, mock.Anything, 90).
		Return([]domain.PeriodBucket{}, nil).Once()

	res, err := s.service.Summary(ctx, ownerActor(), dto.MetricsSummaryParams{GroupBy: "day"})

	s.Require().NoError(err)
	s.True(res.Totals.Net.Equal(decimal.NewFromInt(300_000)))
	s.True(res.Highlights.TodayIncome.Equal(decimal.NewFromInt(500_000)))
	s.True(res.Highlights.ThisMonthNet.Equal(decimal.NewFromInt(300_000)))
	s.Equal(domain.GroupByDay, res.Range.GroupBy)
	s.True(res.Range.From.Equal(monthStart))
	s.mockMetricsRepo.AssertExpectations(s.T())
}

func (s *MetricsServiceTestSuite) TestSummary_GroupByNoneSkipsSeries() {
	ctx := context.Background()

	s.mockMetricsRepo.On("Totals", ctx, mock.AnythingOfType("domain.MetricsFilter")).
		Return(domain.MetricsTotals{}, nil).Times(3)

	res, err := s.service.Summary(ctx, ownerActor(), dto.MetricsSummaryParams{GroupBy: "none"})

	s.Require().NoError(err)
	s.Empty(res.Periods)
	s.mockMetricsRepo.AssertNotCalled(s.T(), "PeriodSeries", mock.Anything, mock.Anything, mock.Anything)
}

func (s *MetricsServiceTestSuite) TestSummary_StaffPinnedToHomeBranch() {
	ctx := context.Background()
	home := uuid.NewString()
	other := uuid.NewString()

	s.mockMetricsRepo.On("Totals", ctx, mock.MatchedBy(func(f domain.MetricsFilter) bool {
		return f.BranchID == home
	})).Return(domain.MetricsTotals{}, nil).Times(3)
	s.mockMetricsRepo.On("PeriodSeries", ctx, mock.MatchedBy(func(f domain.MetricsFilter) bool {
		return f.BranchID == home
	}), 90).Return([]domain.PeriodBucket{}, nil).Once()

	// The requested branch filter is ignored for staff.
	_, err := s.service.Summary(ctx, staffActor(home), dto.MetricsSummaryParams{
		BranchID: other,
		GroupBy:  "month",
	})

	s.Require().NoError(err)
	s.mockMetricsRepo.AssertExpectations(s.T())
}

func (s *MetricsServiceTestSuite) TestSummary_ExplicitRangeInclusiveTo() {
	ctx := context.Background()

	wantFrom := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC).Add(24*time.Hour - time.Nanosecond)
	s.mockMetricsRepo.On("Totals", ctx, mock.MatchedBy(func(f domain.MetricsFilter) bool {
		return f.From.Equal(wantFrom) && f.To.Equal(wantTo)
	})).Return(domain.MetricsTotals{}, nil).Once()
	s.mockMetricsRepo.On("Totals", ctx, mock.AnythingOfType("domain.MetricsFilter")).
		Return(domain.MetricsTotals{}, nil).Times(2)
	s.mockMetricsRepo.On("PeriodSeries", ctx, mock.Anything, 90).
		Return([]domain.PeriodBucket{}, nil).Once()

	res, err := s.service.Summary(ctx, ownerActor(), dto.MetricsSummaryParams{
		From:    "2026-02-01",
		To:      "2026-02-28",
		GroupBy: "day",
	})

	s.Require().NoError(err)
	s.True(res.Range.From.Equal(wantFrom))
	s.True(res.Range.To.Equal(wantTo))
}

func TestMetricsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MetricsServiceTestSuite))
}
