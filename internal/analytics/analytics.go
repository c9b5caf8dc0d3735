// Package analytics aggregates a classified transaction list into the
// figures shown on the dashboard: idle cash, category totals, subscriptions
// and the statement period.
package analytics

import (
	"sort"
	"strings"
	"time"

	"ledger/internal/models"

	"github.com/shopspring/decimal"
)

const (
	DefaultSafetyBufferPct = 0.20
	LiquidFundRate         = 0.07
	SavingsRate            = 0.03

	uncategorised = "Uncategorised"
	unknownPeriod = "Unknown period"
	dateLayout    = "2006-01-02"
)

var subscriptionKeywords = []string{"subscription", "subscriptions", "streaming", "saas"}

// Options tune the idle cash computation.
type Options struct {
	SafetyBufferPct float64
}

func DefaultOptions() Options {
	return Options{SafetyBufferPct: DefaultSafetyBufferPct}
}

// IdleCash sums debits and credits and keeps a safety buffer out of the
// positive balance before reporting the investable surplus.
func IdleCash(txns []models.Transaction, opts Options) models.IdleCash {
	burn := decimal.Zero
	income := decimal.Zero
	for _, t := range txns {
		amount := decimal.NewFromFloat(t.Amount)
		switch {
		case t.IsDebit():
			burn = burn.Add(amount)
		case t.IsCredit():
			income = income.Add(amount)
		}
	}

	balance := income.Sub(burn)
	buffer := balance.Mul(decimal.NewFromFloat(opts.SafetyBufferPct))
	surplus := balance.Sub(buffer)

	idle := models.IdleCash{
		MonthlyBurn:       round(burn, 2),
		TotalIncome:       round(income, 2),
		Balance:           round(balance, 2),
		SafetyBuffer:      round(buffer, 2),
		InvestableSurplus: round(surplus, 2),
	}
	if surplus.IsPositive() {
		idle.Recommendation = Recommendation(idle.InvestableSurplus, opts.SafetyBufferPct)
	}
	return idle
}

// Subscriptions returns the transactions whose category marks them as a
// recurring charge.
func Subscriptions(txns []models.Transaction) []models.Subscription {
	subs := make([]models.Subscription, 0)
	for _, t := range txns {
		category := strings.ToLower(t.Category)
		for _, kw := range subscriptionKeywords {
			if strings.Contains(category, kw) {
				subs = append(subs, models.Subscription{Desc: t.Desc, Amount: t.Amount, Date: t.Date})
				break
			}
		}
	}
	return subs
}

// CategorySummary groups debits by category, descending by total. Categories
// with equal totals keep the order in which they first appear.
func CategorySummary(txns []models.Transaction) []models.CategorySummary {
	type bucket struct {
		name  string
		total decimal.Decimal
		count int
	}

	spend := decimal.Zero
	index := make(map[string]int)
	var buckets []*bucket
	for _, t := range txns {
		if !t.IsDebit() {
			continue
		}
		name := t.Category
		if name == "" {
			name = uncategorised
		}
		i, ok := index[name]
		if !ok {
			i = len(buckets)
			index[name] = i
			buckets = append(buckets, &bucket{name: name, total: decimal.Zero})
		}
		amount := decimal.NewFromFloat(t.Amount)
		buckets[i].total = buckets[i].total.Add(amount)
		buckets[i].count++
		spend = spend.Add(amount)
	}
	if spend.IsZero() {
		spend = decimal.NewFromInt(1)
	}

	summary := make([]models.CategorySummary, 0, len(buckets))
	for _, b := range buckets {
		summary = append(summary, models.CategorySummary{
			Name:       b.name,
			Total:      round(b.total, 2),
			Count:      b.count,
			PctOfSpend: round(b.total.Div(spend).Mul(decimal.NewFromInt(100)), 1),
		})
	}
	sort.SliceStable(summary, func(i, j int) bool {
		return summary[i].Total > summary[j].Total
	})
	return summary
}

// InferPeriod describes the date range covered by the transactions. Dates
// that are not YYYY-MM-DD are ignored.
func InferPeriod(txns []models.Transaction) string {
	var lo, hi time.Time
	for _, t := range txns {
		d, err := time.Parse(dateLayout, t.Date)
		if err != nil {
			continue
		}
		if lo.IsZero() || d.Before(lo) {
			lo = d
		}
		if hi.IsZero() || d.After(hi) {
			hi = d
		}
	}
	if lo.IsZero() {
		return unknownPeriod
	}
	if lo.Year() == hi.Year() && lo.Month() == hi.Month() {
		return lo.Format("January 2006")
	}
	return lo.Format("02 Jan") + " – " + hi.Format("02 Jan 2006")
}

// Summarize builds a complete analysis from classified transactions.
func Summarize(txns []models.Transaction, opts Options) *models.AnalysisResult {
	copied := make([]models.Transaction, len(txns))
	copy(copied, txns)

	return &models.AnalysisResult{
		Transactions:     copied,
		Categories:       CategorySummary(copied),
		IdleCash:         IdleCash(copied, opts),
		Subscriptions:    Subscriptions(copied),
		TransactionCount: len(copied),
		Period:           InferPeriod(copied),
	}
}

func round(d decimal.Decimal, places int32) float64 {
	f, _ := d.Round(places).Float64()
	return f
}
