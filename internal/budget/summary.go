package budget

import (
	"upbudget/internal/core"
)

// Summarize folds a transaction stream into total debits versus total
// credits. Negative amounts accumulate as expenses (absolute value),
// positive amounts as incoming money. No classification involved.
func Summarize(transactions []core.Transaction) core.ExpenseSummary {
	var s core.ExpenseSummary
	for _, tx := range transactions {
		if tx.Amount.IsNegative() {
			s.TotalExpenses = s.TotalExpenses.Add(tx.Amount.Abs())
		} else {
			s.TotalIncoming = s.TotalIncoming.Add(tx.Amount)
		}
	}
	return s
}
