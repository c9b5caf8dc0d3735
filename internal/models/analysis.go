package models

type TransactionType string

const (
	TransactionDebit  TransactionType = "Debit"
	TransactionCredit TransactionType = "Credit"
)

// Transaction is one statement line as classified by the analysis backend.
type Transaction struct {
	Date     string          `json:"date"`
	Desc     string          `json:"desc"`
	Amount   float64         `json:"amount"`
	Type     TransactionType `json:"type"`
	Category string          `json:"category,omitempty"`
}

func (t Transaction) IsDebit() bool {
	return t.Type == TransactionDebit
}

func (t Transaction) IsCredit() bool {
	return t.Type == TransactionCredit
}

type IdleCash struct {
	MonthlyBurn       float64 `json:"monthly_burn"`
	TotalIncome       float64 `json:"total_income"`
	Balance           float64 `json:"balance"`
	SafetyBuffer      float64 `json:"safety_buffer"`
	InvestableSurplus float64 `json:"investable_surplus"`
	Recommendation    string  `json:"recommendation,omitempty"`
}

type CategorySummary struct {
	Name       string  `json:"name"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	PctOfSpend float64 `json:"pct_of_spend"`
}

type Subscription struct {
	Desc   string  `json:"desc"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

// AnalysisResult is the payload returned by the analysis backend for one
// statement. It is never mutated after it is received.
type AnalysisResult struct {
	Transactions     []Transaction     `json:"transactions"`
	Categories       []CategorySummary `json:"categories"`
	IdleCash         IdleCash          `json:"idle_cash"`
	Subscriptions    []Subscription    `json:"subscriptions"`
	TransactionCount int               `json:"transaction_count"`
	Period           string            `json:"period,omitempty"`
}
