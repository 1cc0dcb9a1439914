package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/utils"
)

// reportingService builds dashboard aggregates from the repository's
// summarization queries. Amounts are formatted with the principal's
// preferred currency.
type reportingService struct {
	txRepo portsrepo.TransactionReporter
}

// NewReportingService creates a new reporting service.
func NewReportingService(txRepo portsrepo.TransactionReporter) portssvc.ReportingSvcFacade {
	return &reportingService{txRepo: txRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) MonthlySummary(ctx context.Context, principal *domain.User, year int, month int) (*dto.MonthlySummaryResponse, error) {
	incomes, err := s.txRepo.SummarizeMonth(ctx, domain.KindIncome, principal.UserID, year, time.Month(month))
	if err != nil {
		return nil, fmt.Errorf("summarizing income: %w", err)
	}
	expenses, err := s.txRepo.SummarizeMonth(ctx, domain.KindExpense, principal.UserID, year, time.Month(month))
	if err != nil {
		return nil, fmt.Errorf("summarizing expenses: %w", err)
	}

	currency := principal.Preferences.Currency
	totalIncome := sumTotals(incomes)
	totalExpense := sumTotals(expenses)
	balance := totalIncome.Sub(totalExpense)

	resp := &dto.MonthlySummaryResponse{
		Year:             year,
		Month:            month,
		TotalIncome:      totalIncome,
		TotalExpense:     totalExpense,
		Balance:          balance,
		FormattedBalance: utils.FormatAmount(balance, currency),
		ByCategory:       make([]dto.CategorySummary, 0, len(incomes)+len(expenses)),
	}
	for _, ct := range incomes {
		resp.ByCategory = append(resp.ByCategory, toCategorySummary(ct, currency))
	}
	for _, ct := range expenses {
		resp.ByCategory = append(resp.ByCategory, toCategorySummary(ct, currency))
	}
	return resp, nil
}

func sumTotals(totals []domain.CategoryTotal) decimal.Decimal {
	sum := decimal.Zero
	for _, ct := range totals {
		sum = sum.Add(ct.Total)
	}
	return sum
}

func toCategorySummary(ct domain.CategoryTotal, currency string) dto.CategorySummary {
	return dto.CategorySummary{
		Category:       ct.Category,
		Total:          ct.Total,
		FormattedTotal: utils.FormatAmount(ct.Total, currency),
		Count:          ct.Count,
	}
}
