package http

import (
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"upbudget/internal/core"
	applog "upbudget/internal/log"
	"upbudget/internal/upbank"
)

// View models passed to the templates. Amounts arrive pre-formatted so the
// templates stay dumb.
type (
	transactionView struct {
		Date        string
		Description string
		Amount      string
	}

	categoryView struct {
		Name         string
		Anchor       string
		Allocated    string
		Spent        string
		Remaining    string
		OverBudget   bool
		Transactions []transactionView
	}

	accountView struct {
		ID          string
		DisplayName string
		Balance     string
	}
)

func formatAmount(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.render(w, r, "index.html", nil)
}

func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	categories, err := s.provider.MonthBudget(r.Context())
	if err != nil {
		s.renderFetchError(w, r, err)
		return
	}

	views := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		cv := categoryView{
			Name:       c.Name,
			Anchor:     strings.ReplaceAll(c.Name, " ", "-"),
			Allocated:  formatAmount(c.Allocated),
			Spent:      formatAmount(c.Spent),
			Remaining:  formatAmount(c.Remaining()),
			OverBudget: c.OverBudget(),
		}
		for _, tx := range c.Transactions {
			cv.Transactions = append(cv.Transactions, transactionView{
				Date:        tx.Date,
				Description: tx.Description,
				Amount:      formatAmount(tx.Amount),
			})
		}
		views = append(views, cv)
	}

	now := time.Now()
	s.render(w, r, "budget.html", struct {
		Month      int
		Year       int
		Categories []categoryView
	}{int(now.Month()), now.Year(), views})
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	summary, err := s.provider.MonthSummary(r.Context())
	if err != nil {
		s.renderFetchError(w, r, err)
		return
	}

	now := time.Now()
	net := summary.NetPosition()
	s.render(w, r, "expenses.html", struct {
		Month         int
		Year          int
		TotalExpenses string
		TotalIncoming string
		NetPosition   string
		NetNegative   bool
	}{
		Month:         int(now.Month()),
		Year:          now.Year(),
		TotalExpenses: formatAmount(summary.TotalExpenses),
		TotalIncoming: formatAmount(summary.TotalIncoming),
		NetPosition:   formatAmount(net),
		NetNegative:   net.IsNegative(),
	})
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.provider.Accounts(r.Context())
	if err != nil {
		s.renderFetchError(w, r, err)
		return
	}
	s.render(w, r, "accounts.html", struct {
		Accounts []accountView
	}{accountViews(accounts)})
}

func (s *Server) handleAllBalances(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.provider.Accounts(r.Context())
	if err != nil {
		s.renderFetchError(w, r, err)
		return
	}
	s.render(w, r, "balances.html", struct {
		Accounts []accountView
	}{accountViews(accounts)})
}

func accountViews(accounts []core.Account) []accountView {
	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, accountView{
			ID:          a.ID,
			DisplayName: a.DisplayName,
			Balance:     formatAmount(a.Balance.Value) + " " + a.Balance.CurrencyCode,
		})
	}
	return views
}

func (s *Server) handleAccountTransactions(w http.ResponseWriter, r *http.Request) {
	accountID := strings.TrimSpace(r.URL.Query().Get("account_id"))
	if accountID == "" {
		s.renderError(w, r, http.StatusBadRequest, "Missing account", "The account_id query parameter is required.")
		return
	}

	txs, err := s.provider.AccountTransactions(r.Context(), accountID)
	if err != nil {
		s.renderFetchError(w, r, err)
		return
	}

	views := make([]transactionView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, transactionView{
			Date:        tx.Date,
			Description: tx.Description,
			Amount:      formatAmount(tx.Amount.Abs()),
		})
	}
	s.render(w, r, "account_transactions.html", struct {
		AccountID    string
		Transactions []transactionView
	}{accountID, views})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution failed",
			applog.FieldError, err, "template", name)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// renderFetchError maps an upstream failure to a user-visible error page.
// Fetch errors surface as 502 with the upstream response text; they are
// never retried here.
func (s *Server) renderFetchError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "Upstream fetch failed",
		applog.FieldError, err, applog.FieldPath, r.URL.Path)

	var fetchErr *upbank.FetchError
	if errors.As(err, &fetchErr) {
		s.renderError(w, r, http.StatusBadGateway, "Error Fetching Transactions", fetchErr.Body)
		return
	}
	s.renderError(w, r, http.StatusBadGateway, "Error Fetching Transactions", err.Error())
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, title, detail string) {
	if s.templates == nil {
		http.Error(w, title+": "+detail, status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, "error.html", struct {
		Title  string
		Detail string
	}{title, detail}); err != nil {
		s.logger.ErrorContext(r.Context(), "Error template failed", applog.FieldError, err)
		_, _ = w.Write([]byte("<h1>" + template.HTMLEscapeString(title) + "</h1>"))
	}
}
