package service

import (
	"ledger/internal/analytics"
	"ledger/internal/dto"
	"ledger/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DashboardService turns an analysis into the dashboard view. It has no
// state of its own; the same input always gives the same view.
type DashboardService struct {
	opts   analytics.Options
	logger *zap.Logger
}

func NewDashboardService(opts analytics.Options, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		opts:   opts,
		logger: logger,
	}
}

// Build renders result, or the sample statement when result is nil.
func (s *DashboardService) Build(result *models.AnalysisResult) *dto.DashboardResponse {
	source := dto.SourceBackend
	if result == nil {
		source = dto.SourceSample
		result = analytics.Summarize(analytics.SampleTransactions(), s.opts)
	}

	idle := result.IdleCash
	netBalance := idle.TotalIncome - idle.MonthlyBurn

	insight := idle.Recommendation
	if insight == "" && idle.InvestableSurplus > 0 {
		insight = analytics.Recommendation(idle.InvestableSurplus, s.opts.SafetyBufferPct)
	}

	count := result.TransactionCount
	if count == 0 {
		count = len(result.Transactions)
	}
	s.logger.Debug("Building dashboard",
		zap.String("source", source),
		zap.Int("transactions", count),
		zap.Int("categories", len(result.Categories)),
	)

	return &dto.DashboardResponse{
		Source: source,
		KPIs: dto.KPIs{
			TotalIncome:            idle.TotalIncome,
			MonthlyBurn:            idle.MonthlyBurn,
			NetBalance:             netBalance,
			SafetyBuffer:           idle.SafetyBuffer,
			InvestableSurplus:      idle.InvestableSurplus,
			TransactionCount:       count,
			Period:                 result.Period,
			TotalIncomeLabel:       analytics.FormatMoney(idle.TotalIncome),
			MonthlyBurnLabel:       analytics.FormatMoney(idle.MonthlyBurn),
			NetBalanceLabel:        analytics.FormatMoney(netBalance),
			InvestableSurplusLabel: analytics.FormatMoney(idle.InvestableSurplus),
		},
		Categories:    CategoryBars(result.Categories),
		Subscriptions: summarizeSubscriptions(result.Subscriptions),
		Yield:         projectYield(idle.InvestableSurplus),
		Insight:       insight,
		Transactions:  transactionRows(result.Transactions),
	}
}

// CategoryBars scales every bar against the largest category.
func CategoryBars(categories []models.CategorySummary) []dto.CategoryBar {
	var maxTotal float64
	for _, c := range categories {
		if c.Total > maxTotal {
			maxTotal = c.Total
		}
	}

	bars := make([]dto.CategoryBar, 0, len(categories))
	for _, c := range categories {
		var width float64
		if maxTotal > 0 && c.Total > 0 {
			width = c.Total / maxTotal * 100
		}
		bars = append(bars, dto.CategoryBar{
			Name:        c.Name,
			Total:       c.Total,
			TotalLabel:  analytics.FormatMoney(c.Total),
			Count:       c.Count,
			PctOfSpend:  c.PctOfSpend,
			PctLabel:    analytics.FormatPercent(c.PctOfSpend),
			BarWidthPct: width,
		})
	}
	return bars
}

func summarizeSubscriptions(subs []models.Subscription) dto.SubscriptionsSummary {
	monthly := decimal.Zero
	items := make([]dto.SubscriptionRow, 0, len(subs))
	for _, sub := range subs {
		monthly = monthly.Add(decimal.NewFromFloat(sub.Amount))
		items = append(items, dto.SubscriptionRow{Desc: sub.Desc, Amount: sub.Amount, Date: sub.Date})
	}
	annual := monthly.Mul(decimal.NewFromInt(12))

	monthlyTotal, _ := monthly.Round(2).Float64()
	annualTotal, _ := annual.Round(2).Float64()
	return dto.SubscriptionsSummary{
		Items:        items,
		MonthlyTotal: monthlyTotal,
		AnnualTotal:  annualTotal,
		AnnualLabel:  analytics.FormatMoney(annualTotal),
	}
}

func projectYield(surplus float64) dto.YieldProjection {
	y := analytics.ProjectYield(surplus)
	principal := surplus
	if principal < 0 {
		principal = 0
	}
	return dto.YieldProjection{
		Principal:      principal,
		LiquidRatePct:  analytics.LiquidFundRate * 100,
		SavingsRatePct: analytics.SavingsRate * 100,
		LiquidMonthly:  y.LiquidMonthly,
		SavingsMonthly: y.SavingsMonthly,
		LiquidAnnual:   y.LiquidAnnual,
		SavingsAnnual:  y.SavingsAnnual,
		MonthlyGain:    y.MonthlyGain,
	}
}

func transactionRows(txns []models.Transaction) []dto.TransactionRow {
	rows := make([]dto.TransactionRow, 0, len(txns))
	for _, t := range txns {
		signed := t.Amount
		if t.IsDebit() {
			signed = -t.Amount
		}
		rows = append(rows, dto.TransactionRow{
			Date:         t.Date,
			Desc:         t.Desc,
			Amount:       t.Amount,
			SignedAmount: signed,
			Type:         string(t.Type),
			Category:     t.Category,
		})
	}
	return rows
}
