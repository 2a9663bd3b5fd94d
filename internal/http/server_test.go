package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"upbudget/internal/core"
	"upbudget/internal/upbank"
)

type stubProvider struct {
	categories []core.BudgetCategory
	summary    core.ExpenseSummary
	accounts   []core.Account
	accountTxs []core.Transaction
	err        error
}

func (p *stubProvider) MonthBudget(ctx context.Context) ([]core.BudgetCategory, error) {
	return p.categories, p.err
}

func (p *stubProvider) MonthSummary(ctx context.Context) (core.ExpenseSummary, error) {
	return p.summary, p.err
}

func (p *stubProvider) AccountTransactions(ctx context.Context, accountID string) ([]core.Transaction, error) {
	return p.accountTxs, p.err
}

func (p *stubProvider) Accounts(ctx context.Context) ([]core.Account, error) {
	return p.accounts, p.err
}

func newTestServer(t *testing.T, provider BudgetProvider) *Server {
	t.Helper()
	s := NewServer(":0", provider, nil)
	t.Cleanup(func() {
		_ = s.Shutdown(context.Background())
	})
	return s
}

func get(s *Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	rec := get(s, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())

	rec = get(s, "/readyz")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBudgetPage(t *testing.T) {
	provider := &stubProvider{
		categories: []core.BudgetCategory{
			{
				Name:      "Groceries",
				Allocated: decimal.NewFromInt(500),
				Spent:     decimal.RequireFromString("63.00"),
				Transactions: []core.Transaction{
					{Date: "2024-06-02T10:00:00Z", Description: "Woolworths", Amount: decimal.RequireFromString("-63.00")},
				},
			},
			{
				Name:      "Entertainment",
				Allocated: decimal.NewFromInt(150),
				Spent:     decimal.RequireFromString("180.00"),
			},
		},
	}
	s := newTestServer(t, provider)

	rec := get(s, "/budget")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, "Groceries")
	require.Contains(t, body, "$500.00")
	require.Contains(t, body, "$63.00")
	require.Contains(t, body, "Woolworths")
	// Over-budget category flagged distinctly.
	require.Contains(t, body, "text-danger")
	require.Contains(t, body, "$-30.00")
}

func TestExpensesPage(t *testing.T) {
	provider := &stubProvider{
		summary: core.ExpenseSummary{
			TotalExpenses: decimal.RequireFromString("70.00"),
			TotalIncoming: decimal.RequireFromString("30.00"),
		},
	}
	s := newTestServer(t, provider)

	rec := get(s, "/expenses")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "$70.00")
	require.Contains(t, body, "$30.00")
	require.Contains(t, body, "$-40.00")
}

func TestFetchErrorRendersErrorPage(t *testing.T) {
	provider := &stubProvider{err: &upbank.FetchError{StatusCode: 500, Body: "upstream exploded"}}
	s := newTestServer(t, provider)

	rec := get(s, "/budget")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Contains(t, rec.Body.String(), "Error Fetching Transactions")
	require.Contains(t, rec.Body.String(), "upstream exploded")
}

func TestAccountTransactionsRequiresAccountID(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	rec := get(s, "/balances")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "account_id")
}

func TestAccountTransactionsPage(t *testing.T) {
	provider := &stubProvider{
		accountTxs: []core.Transaction{
			{Date: "2024-06-03T09:00:00Z", Description: "Uber", Amount: decimal.RequireFromString("-18.00"), AccountID: "acc-1"},
		},
	}
	s := newTestServer(t, provider)

	rec := get(s, "/balances?account_id=acc-1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "acc-1")
	require.Contains(t, body, "Uber")
	// Rendered as absolute value.
	require.Contains(t, body, "$18.00")
}

func TestAccountsPage(t *testing.T) {
	provider := &stubProvider{
		accounts: []core.Account{
			{ID: "acc-1", DisplayName: "Spending", Balance: core.Balance{Value: decimal.RequireFromString("1024.50"), CurrencyCode: "AUD"}},
		},
	}
	s := newTestServer(t, provider)

	rec := get(s, "/accounts")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Spending")

	rec = get(s, "/allbalances")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "$1024.50 AUD")
}

func TestIndexPage(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	rec := get(s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Bank Dashboard")

	rec = get(s, "/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	rec := get(s, "/")
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 60; i++ {
		require.True(t, rl.allow("10.0.0.1"), "request %d should pass", i)
	}
	require.False(t, rl.allow("10.0.0.1"), "61st request within a minute must be limited")
	require.True(t, rl.allow("10.0.0.2"), "other clients are unaffected")
}

func TestErrorDetailIsEscaped(t *testing.T) {
	provider := &stubProvider{err: &upbank.FetchError{StatusCode: 500, Body: "<script>alert(1)</script>"}}
	s := newTestServer(t, provider)

	rec := get(s, "/budget")
	require.NotContains(t, rec.Body.String(), "<script>")
	require.True(t, strings.Contains(rec.Body.String(), "&lt;script&gt;"))
}
