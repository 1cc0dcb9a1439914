package dto

import "github.com/shopspring/decimal"

// CategorySummary is one slice of the per-category breakdown.
type CategorySummary struct {
	Category       string          `json:"category"`
	Total          decimal.Decimal `json:"total"`
	FormattedTotal string          `json:"formattedTotal"`
	Count          int64           `json:"count"`
}

// MonthlySummaryResponse aggregates a user's activity for one month.
type MonthlySummaryResponse struct {
	Year             int               `json:"year"`
	Month            int               `json:"month"`
	TotalIncome      decimal.Decimal   `json:"totalIncome"`
	TotalExpense     decimal.Decimal   `json:"totalExpense"`
	Balance          decimal.Decimal   `json:"balance"`
	FormattedBalance string            `json:"formattedBalance"`
	ByCategory       []CategorySummary `json:"byCategory"`
}

// MonthlySummaryParams defines query parameters for the dashboard summary.
type MonthlySummaryParams struct {
	Year  int `form:"year" binding:"required,min=2000,max=2100"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}
