package dto

import (
	"time"

	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MetricsSummaryParams are the query parameters of the metrics summary read.
// The date filters are calendar dates; the range defaults to the current UTC
// month when absent.
type MetricsSummaryParams struct {
	BranchID  string `form:"branchId" binding:"omitempty,uuid"`
	AccountID string `form:"accountId" binding:"omitempty,uuid"`
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	GroupBy   string `form:"groupBy,default=day" binding:"omitempty,oneof=day month year none"`
}

// MetricsHighlights are the dashboard headline numbers.
type MetricsHighlights struct {
	TodayIncome     decimal.Decimal `json:"todaysIncome"`
	ThisMonthIncome decimal.Decimal `json:"thisMonthIncome"`
	ThisMonthNet    decimal.Decimal `json:"thisMonthNet"`
}

// PeriodBucketResponse is one element of the time-bucketed series.
type PeriodBucketResponse struct {
	Period  time.Time       `json:"period"`
	Income  decimal.Decimal `json:"income"`
	Outflow decimal.Decimal `json:"outflow"`
	Net     decimal.Decimal `json:"net"`
}

// MetricsRangeResponse echoes the effective range of the aggregation.
type MetricsRangeResponse struct {
	From    time.Time      `json:"from"`
	To      time.Time      `json:"to"`
	GroupBy domain.GroupBy `json:"groupBy"`
}

// MetricsSummaryResponse is the full metrics summary payload.
type MetricsSummaryResponse struct {
	Totals     domain.MetricsTotals   `json:"totals"`
	Highlights MetricsHighlights      `json:"highlights"`
	Periods    []PeriodBucketResponse `json:"periods"`
	Range      MetricsRangeResponse   `json:"range"`
}
