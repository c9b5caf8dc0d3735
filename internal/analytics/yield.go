package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const currencySymbol = "₹"

var printer = message.NewPrinter(language.English)

// Yield is the projected return on an amount at the liquid fund and savings
// account rates.
type Yield struct {
	LiquidMonthly  float64 `json:"liquid_monthly"`
	SavingsMonthly float64 `json:"savings_monthly"`
	LiquidAnnual   float64 `json:"liquid_annual"`
	SavingsAnnual  float64 `json:"savings_annual"`
	MonthlyGain    float64 `json:"monthly_gain"`
}

func ProjectYield(amount float64) Yield {
	if amount <= 0 {
		return Yield{}
	}
	principal := decimal.NewFromFloat(amount)
	liquidAnnual := principal.Mul(decimal.NewFromFloat(LiquidFundRate))
	savingsAnnual := principal.Mul(decimal.NewFromFloat(SavingsRate))
	twelve := decimal.NewFromInt(12)
	liquidMonthly := liquidAnnual.Div(twelve)
	savingsMonthly := savingsAnnual.Div(twelve)

	return Yield{
		LiquidMonthly:  round(liquidMonthly, 2),
		SavingsMonthly: round(savingsMonthly, 2),
		LiquidAnnual:   round(liquidAnnual, 2),
		SavingsAnnual:  round(savingsAnnual, 2),
		MonthlyGain:    round(liquidMonthly.Sub(savingsMonthly), 2),
	}
}

// Recommendation phrases the idle cash advice for a positive surplus.
func Recommendation(surplus, bufferPct float64) string {
	y := ProjectYield(surplus)
	return fmt.Sprintf(
		"You have %s in investable surplus after your monthly burn and a %.0f%% safety buffer. "+
			"Moving this to a risk-free Liquid Fund or Digital Gold could yield ~%s/month (%.0f%% p.a.) "+
			"vs. ~%s/month sitting idle in savings (%.0f%% p.a.).",
		FormatMoney(surplus), bufferPct*100,
		FormatMoney(y.LiquidMonthly), LiquidFundRate*100,
		FormatMoney(y.SavingsMonthly), SavingsRate*100,
	)
}

// FormatMoney renders a whole-rupee amount with thousands separators.
func FormatMoney(amount float64) string {
	rounded, _ := decimal.NewFromFloat(amount).Round(0).Float64()
	if rounded < 0 {
		return "-" + currencySymbol + printer.Sprintf("%.0f", -rounded)
	}
	return currencySymbol + printer.Sprintf("%.0f", rounded)
}

func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}
