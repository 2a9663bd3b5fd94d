package budget

import (
	"testing"

	"github.com/shopspring/decimal"

	"upbudget/internal/core"
)

func tx(desc string, amount string) core.Transaction {
	return core.Transaction{
		Date:        "2024-06-02T10:00:00Z",
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
	}
}

func findCategory(t *testing.T, cats []core.BudgetCategory, name string) core.BudgetCategory {
	t.Helper()
	for _, c := range cats {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("category %s not found", name)
	return core.BudgetCategory{}
}

func TestAggregate(t *testing.T) {
	txs := []core.Transaction{
		tx("Woolworths", "-52.30"),
		tx("Uber trip", "-18.00"),
		tx("Woolworths", "-10.70"),
		tx("Salary", "2500.00"),
	}
	out := Aggregate(txs, NewCatalog(DefaultAllocations()))

	groceries := findCategory(t, out, "Groceries")
	if !groceries.Spent.Equal(decimal.RequireFromString("63.00")) {
		t.Fatalf("groceries spent: expected 63.00, got %s", groceries.Spent)
	}
	if len(groceries.Transactions) != 2 {
		t.Fatalf("groceries transactions: expected 2, got %d", len(groceries.Transactions))
	}
	if groceries.Transactions[0].Amount.String() != "-52.3" {
		t.Fatalf("transactions must keep arrival order")
	}

	transport := findCategory(t, out, "Transportation")
	if !transport.Spent.Equal(decimal.RequireFromString("18.00")) {
		t.Fatalf("transportation spent: expected 18.00, got %s", transport.Spent)
	}

	// Credits still land in a category by abs(amount).
	other := findCategory(t, out, "Other")
	if !other.Spent.Equal(decimal.RequireFromString("2500.00")) {
		t.Fatalf("other spent: expected 2500.00, got %s", other.Spent)
	}
}

// Sum of spent across all categories equals the sum of absolute amounts of
// all input transactions.
func TestAggregateConservation(t *testing.T) {
	txs := []core.Transaction{
		tx("Woolworths", "-12.00"),
		tx("Netflix", "-15.99"),
		tx("mystery shop", "-7.50"),
		tx("refund", "3.25"),
		tx("KFC", "-21.80"),
	}
	out := Aggregate(txs, NewCatalog(DefaultAllocations()))

	var spent, abs decimal.Decimal
	for _, c := range out {
		spent = spent.Add(c.Spent)
	}
	for _, x := range txs {
		abs = abs.Add(x.Amount.Abs())
	}
	if !spent.Equal(abs) {
		t.Fatalf("conservation violated: spent %s, abs total %s", spent, abs)
	}
}

func TestAggregateOverflowCategoryCreatedOnce(t *testing.T) {
	txs := []core.Transaction{
		tx("rent", "-800.00"),
		tx("mystery", "-20.00"),
	}
	out := Aggregate(txs, NewCatalog(DefaultAllocations()))

	count := 0
	for _, c := range out {
		if c.Name == CategoryOther {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one Other category, got %d", count)
	}

	other := findCategory(t, out, CategoryOther)
	if !other.Allocated.IsZero() {
		t.Fatalf("overflow category allocation must be zero, got %s", other.Allocated)
	}
	if !other.Spent.Equal(decimal.RequireFromString("820.00")) {
		t.Fatalf("overflow spent: expected 820.00, got %s", other.Spent)
	}
	if out[len(out)-1].Name != CategoryOther {
		t.Fatalf("overflow category must be appended last, got %s", out[len(out)-1].Name)
	}
}

func TestAggregatePreservesCatalogOrder(t *testing.T) {
	out := Aggregate([]core.Transaction{tx("mystery", "-1.00")}, NewCatalog(DefaultAllocations()))
	want := []string{"Groceries", "Transportation", "Entertainment", "Utilities", "Dining Out", "Other"}
	if len(out) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(out))
	}
	for i, name := range want {
		if out[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, out[i].Name)
		}
	}
}

func TestAggregateDoesNotMutateCatalog(t *testing.T) {
	catalog := NewCatalog(DefaultAllocations())
	Aggregate([]core.Transaction{tx("Woolworths", "-10.00")}, catalog)
	if !catalog[0].Spent.IsZero() {
		t.Fatalf("input catalog must stay untouched, got spent %s", catalog[0].Spent)
	}
}

func TestRemainingMayGoNegative(t *testing.T) {
	out := Aggregate([]core.Transaction{tx("Netflix", "-180.00")}, NewCatalog(DefaultAllocations()))
	ent := findCategory(t, out, "Entertainment")
	if !ent.Remaining().Equal(decimal.RequireFromString("-30.00")) {
		t.Fatalf("remaining: expected -30.00, got %s", ent.Remaining())
	}
	if !ent.OverBudget() {
		t.Fatal("category must report over budget")
	}
}
