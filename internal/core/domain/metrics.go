package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GroupBy is the bucketing granularity for metric series.
type GroupBy string

const (
	GroupByDay   GroupBy = "day"
	GroupByMonth GroupBy = "month"
	GroupByYear  GroupBy = "year"
	GroupByNone  GroupBy = "none"
)

// MetricsFilter narrows the set of ledger entries an aggregation runs over.
// Zero values mean "no constraint" for the optional fields.
type MetricsFilter struct {
	BranchID  string
	AccountID string
	From      time.Time
	To        time.Time
	GroupBy   GroupBy
}

// MetricsTotals holds summed amounts over a filtered entry set.
type MetricsTotals struct {
	Income  decimal.Decimal `json:"income"`
	Outflow decimal.Decimal `json:"outflow"`
	Net     decimal.Decimal `json:"net"`
}

// PeriodBucket is one time bucket of a grouped series.
type PeriodBucket struct {
	Period  time.Time       `json:"period"`
	Income  decimal.Decimal `json:"income"`
	Outflow decimal.Decimal `json:"outflow"`
	Net     decimal.Decimal `json:"net"`
}
