package dto

const (
	SourceBackend = "backend"
	SourceSample  = "sample"
)

// DashboardResponse is everything a client needs to paint the dashboard
// without further arithmetic.
type DashboardResponse struct {
	Source        string               `json:"source"`
	KPIs          KPIs                 `json:"kpis"`
	Categories    []CategoryBar        `json:"categories"`
	Subscriptions SubscriptionsSummary `json:"subscriptions"`
	Yield         YieldProjection      `json:"yield"`
	Insight       string               `json:"insight,omitempty"`
	Transactions  []TransactionRow     `json:"transactions"`
}

type KPIs struct {
	TotalIncome       float64 `json:"total_income"`
	MonthlyBurn       float64 `json:"monthly_burn"`
	NetBalance        float64 `json:"net_balance"`
	SafetyBuffer      float64 `json:"safety_buffer"`
	InvestableSurplus float64 `json:"investable_surplus"`
	TransactionCount  int     `json:"transaction_count"`
	Period            string  `json:"period"`

	TotalIncomeLabel       string `json:"total_income_label"`
	MonthlyBurnLabel       string `json:"monthly_burn_label"`
	NetBalanceLabel        string `json:"net_balance_label"`
	InvestableSurplusLabel string `json:"investable_surplus_label"`
}

type CategoryBar struct {
	Name        string  `json:"name"`
	Total       float64 `json:"total"`
	TotalLabel  string  `json:"total_label"`
	Count       int     `json:"count"`
	PctOfSpend  float64 `json:"pct_of_spend"`
	PctLabel    string  `json:"pct_label"`
	BarWidthPct float64 `json:"bar_width_pct"`
}

type SubscriptionRow struct {
	Desc   string  `json:"desc"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

type SubscriptionsSummary struct {
	Items        []SubscriptionRow `json:"items"`
	MonthlyTotal float64           `json:"monthly_total"`
	AnnualTotal  float64           `json:"annual_total"`
	AnnualLabel  string            `json:"annual_label"`
}

type YieldProjection struct {
	Principal      float64 `json:"principal"`
	LiquidRatePct  float64 `json:"liquid_rate_pct"`
	SavingsRatePct float64 `json:"savings_rate_pct"`
	LiquidMonthly  float64 `json:"liquid_monthly"`
	SavingsMonthly float64 `json:"savings_monthly"`
	LiquidAnnual   float64 `json:"liquid_annual"`
	SavingsAnnual  float64 `json:"savings_annual"`
	MonthlyGain    float64 `json:"monthly_gain"`
}

type TransactionRow struct {
	Date         string  `json:"date"`
	Desc         string  `json:"desc"`
	Amount       float64 `json:"amount"`
	SignedAmount float64 `json:"signed_amount"`
	Type         string  `json:"type"`
	Category     string  `json:"category"`
}
