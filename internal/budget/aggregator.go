package budget

import (
	"github.com/shopspring/decimal"

	"upbudget/internal/core"
)

// Allocation is a category name with its monthly budget limit.
type Allocation struct {
	Name   string
	Amount decimal.Decimal
}

// DefaultAllocations returns the fixed catalog used when no overrides are
// configured.
func DefaultAllocations() []Allocation {
	return []Allocation{
		{"Groceries", decimal.NewFromInt(500)},
		{"Transportation", decimal.NewFromInt(200)},
		{"Entertainment", decimal.NewFromInt(150)},
		{"Utilities", decimal.NewFromInt(300)},
		{"Dining Out", decimal.NewFromInt(250)},
	}
}

// NewCatalog builds a fresh per-request category set from allocations, each
// starting at zero spend with an empty transaction list.
func NewCatalog(allocations []Allocation) []core.BudgetCategory {
	catalog := make([]core.BudgetCategory, 0, len(allocations))
	for _, a := range allocations {
		catalog = append(catalog, core.BudgetCategory{
			Name:      a.Name,
			Allocated: a.Amount,
			Spent:     decimal.Zero,
		})
	}
	return catalog
}

// Aggregate folds transactions into the catalog in arrival order: each one
// is classified by description and abs(amount) is added to the matching
// category's spend. Transactions classified into a name missing from the
// catalog land in an "Other" category created once with zero allocation and
// appended after the catalog's own entries. The input catalog is not
// mutated; a new model is returned with the original category order.
func Aggregate(transactions []core.Transaction, catalog []core.BudgetCategory) []core.BudgetCategory {
	result := make([]core.BudgetCategory, len(catalog))
	copy(result, catalog)

	byName := make(map[string]int, len(result))
	for i, c := range result {
		byName[c.Name] = i
	}

	for _, tx := range transactions {
		name := CategoryFor(tx.Description)
		idx, ok := byName[name]
		if !ok {
			// Unmatched names collapse into the overflow bucket.
			idx, ok = byName[CategoryOther]
			if !ok {
				result = append(result, core.BudgetCategory{
					Name:      CategoryOther,
					Allocated: decimal.Zero,
					Spent:     decimal.Zero,
				})
				idx = len(result) - 1
				byName[CategoryOther] = idx
			}
		}
		result[idx].Spent = result[idx].Spent.Add(tx.Amount.Abs())
		result[idx].Transactions = append(result[idx].Transactions, tx)
	}

	return result
}
