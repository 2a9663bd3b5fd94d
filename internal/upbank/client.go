// Package upbank is a client for the Up banking REST API: bearer-token
// authentication, cursor-following pagination over the transactions
// endpoint, and the accounts listing. Pages are fetched strictly
// sequentially; the cursor of each page comes from the previous response.
package upbank

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"upbudget/internal/core"
	applog "upbudget/internal/log"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.up.com.au/api/v1"

// Config carries the connection settings injected at construction time.
// The token comes from process configuration, never read ambiently here.
type Config struct {
	BaseURL  string
	Token    string
	PageSize int
	Timeout  time.Duration
}

// Client talks to the bank API. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	pageSize   int
	logger     *applog.Logger
}

// New builds a client. Zero config fields fall back to defaults
// (production base URL, page size 100, 10s per-page timeout).
func New(cfg Config, logger *applog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentUpbank)
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		pageSize:   cfg.PageSize,
		logger:     logger,
	}
}

// ListOptions selects which transactions a fetch covers.
type ListOptions struct {
	Window core.MonthWindow
	// SettledOnly adds filter[status]=SETTLED, excluding pending
	// transactions.
	SettledOnly bool
	// AccountID, when set, keeps only transactions whose account
	// relationship matches. Transactions with no account relationship are
	// dropped, not treated as errors.
	AccountID string
}

// Key returns a stable cache identifier for the selection.
func (o ListOptions) Key() string {
	return o.Window.Key() + "/settled=" + strconv.FormatBool(o.SettledOnly) + "/account=" + o.AccountID
}

func (c *Client) firstPageURL(opts ListOptions) string {
	q := url.Values{}
	q.Set("filter[since]", opts.Window.SinceParam())
	q.Set("filter[until]", opts.Window.UntilParam())
	if opts.SettledOnly {
		q.Set("filter[status]", "SETTLED")
	}
	q.Set("page[size]", strconv.Itoa(c.pageSize))
	return c.baseURL + "/transactions?" + q.Encode()
}

// Pager yields transaction pages on demand, so callers decide how much of
// the stream to pull. Next returns the next page in arrival order and
// ok=false once the stream is exhausted.
type Pager struct {
	client *Client
	opts   ListOptions
	next   string
	done   bool
	pages  int
}

// Pager starts a lazy pagination run over the selected transactions.
func (c *Client) Pager(opts ListOptions) *Pager {
	return &Pager{
		client: c,
		opts:   opts,
		next:   c.firstPageURL(opts),
	}
}

// Next fetches one page. A payload without a data array terminates the
// stream (not an error); a non-2xx response or transport failure aborts
// the whole run with a *FetchError carrying the response body.
func (p *Pager) Next(ctx context.Context) ([]core.Transaction, bool, error) {
	if p.done {
		return nil, false, nil
	}

	body, err := p.client.get(ctx, p.next)
	if err != nil {
		p.done = true
		return nil, false, err
	}

	page, err := decodeTransactionsPage(body)
	if err != nil {
		p.done = true
		return nil, false, fmt.Errorf("decode transactions page: %w", err)
	}
	if page.Data == nil {
		// No data array at all: the stream is over.
		p.done = true
		return nil, false, nil
	}

	txs := make([]core.Transaction, 0, len(*page.Data))
	for _, res := range *page.Data {
		tx := res.asTransaction()
		if p.opts.AccountID != "" && tx.AccountID != p.opts.AccountID {
			continue
		}
		txs = append(txs, tx)
	}

	p.pages++
	if page.Links.Next != nil && *page.Links.Next != "" {
		p.next = *page.Links.Next
	} else {
		p.done = true
	}

	p.client.logger.DebugContext(ctx, "Fetched transactions page",
		applog.FieldPage, p.pages,
		applog.FieldTransactionCount, len(txs),
		applog.FieldHasMore, !p.done)

	return txs, true, nil
}

// Transactions drains a full pagination run and returns the flat stream in
// page-arrival order. The API's own ordering is preserved, never re-sorted.
func (c *Client) Transactions(ctx context.Context, opts ListOptions) ([]core.Transaction, error) {
	pager := c.Pager(opts)
	var all []core.Transaction
	for {
		page, ok, err := pager.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return all, nil
		}
		all = append(all, page...)
	}
}

// Accounts lists the accounts visible to the token, with display names and
// current balances.
func (c *Client) Accounts(ctx context.Context) ([]core.Account, error) {
	body, err := c.get(ctx, c.baseURL+"/accounts")
	if err != nil {
		return nil, err
	}
	page, err := decodeAccountsPage(body)
	if err != nil {
		return nil, fmt.Errorf("decode accounts page: %w", err)
	}
	accounts := make([]core.Account, 0, len(page.Data))
	for _, res := range page.Data {
		accounts = append(accounts, res.asAccount())
	}
	return accounts, nil
}

// get issues one authorized GET. Transport failures and non-2xx statuses
// are both unified under *FetchError.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{Body: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{StatusCode: resp.StatusCode, Body: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
