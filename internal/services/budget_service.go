// Package services orchestrates the monthly pipeline: compute the month
// window, pull the transaction stream from the bank, classify and
// aggregate it into the budget model or fold it into the expense summary.
package services

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"upbudget/internal/budget"
	"upbudget/internal/cache"
	"upbudget/internal/core"
	applog "upbudget/internal/log"
	"upbudget/internal/upbank"
)

// TransactionSource is the upstream capability the service needs: fetch a
// selected transaction stream and list accounts.
type TransactionSource interface {
	Transactions(ctx context.Context, opts upbank.ListOptions) ([]core.Transaction, error)
	Accounts(ctx context.Context) ([]core.Account, error)
}

// BudgetService computes the per-request budget and summary models. The
// fetched stream is cached briefly per window+filters so the budget and
// expense views of the same month share one pagination run, and identical
// concurrent fetches are collapsed through singleflight. Category catalogs
// are built fresh per request; no state survives beyond the cache.
type BudgetService struct {
	source      TransactionSource
	allocations []budget.Allocation
	streams     *cache.LRU[[]core.Transaction]
	group       singleflight.Group
	logger      *applog.Logger
	now         func() time.Time
}

func NewBudgetService(source TransactionSource, allocations []budget.Allocation, streams *cache.LRU[[]core.Transaction], logger *applog.Logger) *BudgetService {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentService)
	}
	return &BudgetService{
		source:      source,
		allocations: allocations,
		streams:     streams,
		logger:      logger,
		now:         time.Now,
	}
}

// MonthBudget fetches the current month's transactions and aggregates them
// into the category catalog.
func (s *BudgetService) MonthBudget(ctx context.Context) ([]core.BudgetCategory, error) {
	window := core.CurrentMonthWindow(s.now())
	txs, err := s.fetch(ctx, upbank.ListOptions{Window: window})
	if err != nil {
		return nil, err
	}
	return budget.Aggregate(txs, budget.NewCatalog(s.allocations)), nil
}

// MonthSummary folds the current month's settled transactions into total
// expenses versus incoming money.
func (s *BudgetService) MonthSummary(ctx context.Context) (core.ExpenseSummary, error) {
	window := core.CurrentMonthWindow(s.now())
	txs, err := s.fetch(ctx, upbank.ListOptions{Window: window, SettledOnly: true})
	if err != nil {
		return core.ExpenseSummary{}, err
	}
	return budget.Summarize(txs), nil
}

// AccountTransactions returns the current month's settled transactions
// scoped to one account.
func (s *BudgetService) AccountTransactions(ctx context.Context, accountID string) ([]core.Transaction, error) {
	window := core.CurrentMonthWindow(s.now())
	return s.fetch(ctx, upbank.ListOptions{Window: window, SettledOnly: true, AccountID: accountID})
}

// Accounts lists the accounts visible to the configured token.
func (s *BudgetService) Accounts(ctx context.Context) ([]core.Account, error) {
	return s.source.Accounts(ctx)
}

// fetch returns the stream for the selection, serving it from the cache
// when fresh and collapsing concurrent identical fetches into one upstream
// pagination run. Cached streams are treated as immutable.
func (s *BudgetService) fetch(ctx context.Context, opts upbank.ListOptions) ([]core.Transaction, error) {
	key := opts.Key()
	if txs, ok := s.streams.Get(key); ok {
		s.logger.DebugContext(ctx, "Transaction stream cache hit",
			applog.FieldCacheKey, key,
			applog.FieldTransactionCount, len(txs))
		return txs, nil
	}

	v, err, shared := s.group.Do(key, func() (any, error) {
		if txs, ok := s.streams.Get(key); ok {
			return txs, nil
		}
		txs, err := s.source.Transactions(ctx, opts)
		if err != nil {
			return nil, err
		}
		s.streams.Set(key, txs)
		return txs, nil
	})
	if err != nil {
		return nil, err
	}

	txs := v.([]core.Transaction)
	s.logger.DebugContext(ctx, "Transaction stream fetched",
		applog.FieldCacheKey, key,
		applog.FieldTransactionCount, len(txs),
		"shared", shared)
	return txs, nil
}
