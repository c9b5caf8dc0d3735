package analytics

import "ledger/internal/models"

// SampleTransactions is the demo statement summarised on the dashboard
// before any upload has completed.
func SampleTransactions() []models.Transaction {
	return []models.Transaction{
		{Date: "2026-10-01", Desc: "Zomato Bangalore", Amount: 685, Type: models.TransactionDebit, Category: "Dining & Local Eats"},
		{Date: "2026-10-02", Desc: "Salary Payout — Oct", Amount: 100253, Type: models.TransactionCredit, Category: "Income"},
		{Date: "2026-10-03", Desc: "Varalakshi Tiffins", Amount: 180, Type: models.TransactionDebit, Category: "Dining & Local Eats"},
		{Date: "2026-10-04", Desc: "Zerodha Buy Order", Amount: 15000, Type: models.TransactionDebit, Category: "Investments"},
		{Date: "2026-10-05", Desc: "Ola Cabs", Amount: 340, Type: models.TransactionDebit, Category: "Commute & Transport"},
		{Date: "2026-10-06", Desc: "YouTube Premium", Amount: 189, Type: models.TransactionDebit, Category: "Streaming Subscriptions"},
		{Date: "2026-10-07", Desc: "Rameshwaram Café", Amount: 520, Type: models.TransactionDebit, Category: "Dining & Local Eats"},
		{Date: "2026-10-08", Desc: "BESCOM Electric Bill", Amount: 1200, Type: models.TransactionDebit, Category: "Household Utilities"},
		{Date: "2026-10-09", Desc: "Amazon Order", Amount: 2340, Type: models.TransactionDebit, Category: "Online Shopping"},
		{Date: "2026-10-10", Desc: "Google One Storage", Amount: 130, Type: models.TransactionDebit, Category: "Streaming Subscriptions"},
		{Date: "2026-10-11", Desc: "Namma Metro Recharge", Amount: 500, Type: models.TransactionDebit, Category: "Commute & Transport"},
		{Date: "2026-10-12", Desc: "Swiggy Order", Amount: 430, Type: models.TransactionDebit, Category: "Dining & Local Eats"},
		{Date: "2026-10-13", Desc: "LIC Premium", Amount: 4500, Type: models.TransactionDebit, Category: "Insurance & Protection"},
		{Date: "2026-10-14", Desc: "Spotify Premium", Amount: 119, Type: models.TransactionDebit, Category: "Streaming Subscriptions"},
		{Date: "2026-10-15", Desc: "Rapido Bike", Amount: 95, Type: models.TransactionDebit, Category: "Commute & Transport"},
		{Date: "2026-10-16", Desc: "Blinkit Groceries", Amount: 1640, Type: models.TransactionDebit, Category: "Dining & Local Eats"},
		{Date: "2026-10-17", Desc: "Groww MF SIP", Amount: 5000, Type: models.TransactionDebit, Category: "Investments"},
		{Date: "2026-10-18", Desc: "Netflix Subscription", Amount: 649, Type: models.TransactionDebit, Category: "Streaming Subscriptions"},
		{Date: "2026-10-19", Desc: "PhonePe UPI — Mom", Amount: 3000, Type: models.TransactionDebit, Category: "Family Remittances"},
		{Date: "2026-10-20", Desc: "BBMP Property Tax", Amount: 6200, Type: models.TransactionDebit, Category: "Household Utilities"},
	}
}
