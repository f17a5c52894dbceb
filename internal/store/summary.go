package store

import "github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/models"

// Summary is the income/expense total pair returned by list and dashboard
// endpoints.
type Summary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
}

// Summarize accumulates amounts in a single pass: income into TotalIncome,
// everything else into TotalExpense.
func Summarize(txs []models.Transaction) Summary {
	var sum Summary
	for i := range txs {
		if txs[i].Type == models.TypeIncome {
			sum.TotalIncome += txs[i].Amount
		} else {
			sum.TotalExpense += txs[i].Amount
		}
	}
	return sum
}
