package core

import (
	"github.com/shopspring/decimal"
)

type (
	// Transaction is a single bank transaction as reported by the upstream API.
	// Amount is signed: negative values are debits (spending), positive values
	// are credits (incoming money). Immutable once fetched.
	Transaction struct {
		Date        string
		Description string
		Amount      decimal.Decimal
		AccountID   string
	}

	// BudgetCategory is a named budget bucket with an allocated limit and
	// the spend accumulated against it during one request.
	BudgetCategory struct {
		Name         string
		Allocated    decimal.Decimal
		Spent        decimal.Decimal
		Transactions []Transaction
	}

	// ExpenseSummary is the net-position view over a transaction stream:
	// total debits versus total credits, no classification involved.
	ExpenseSummary struct {
		TotalExpenses decimal.Decimal
		TotalIncoming decimal.Decimal
	}

	// Account is an upstream bank account with its current balance.
	Account struct {
		ID          string
		DisplayName string
		Balance     Balance
	}

	Balance struct {
		Value        decimal.Decimal
		CurrencyCode string
	}
)

// IsDebit reports whether the transaction is spending (negative amount).
func (t Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// Remaining returns allocated minus spent. Negative means over budget;
// the rendering layer flags that, this never clamps.
func (c BudgetCategory) Remaining() decimal.Decimal {
	return c.Allocated.Sub(c.Spent)
}

// OverBudget reports whether spending exceeded the allocation.
func (c BudgetCategory) OverBudget() bool {
	return c.Spent.GreaterThan(c.Allocated)
}

// NetPosition returns incoming minus expenses for the period.
func (s ExpenseSummary) NetPosition() decimal.Decimal {
	return s.TotalIncoming.Sub(s.TotalExpenses)
}
