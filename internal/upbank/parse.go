package upbank

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"upbudget/internal/core"
)

// Wire types mirror the API's JSON:API payloads. Data is a pointer so a
// payload without a data array at all (end of stream) can be told apart
// from an empty page.
type (
	transactionsPage struct {
		Data  *[]transactionResource `json:"data"`
		Links pageLinks              `json:"links"`
	}

	pageLinks struct {
		Next *string `json:"next"`
	}

	transactionResource struct {
		ID         string `json:"id"`
		Attributes struct {
			Description string `json:"description"`
			CreatedAt   string `json:"createdAt"`
			Amount      struct {
				Value        string `json:"value"`
				CurrencyCode string `json:"currencyCode"`
			} `json:"amount"`
		} `json:"attributes"`
		Relationships struct {
			Account struct {
				Data *struct {
					ID string `json:"id"`
				} `json:"data"`
			} `json:"account"`
		} `json:"relationships"`
	}

	accountsPage struct {
		Data []accountResource `json:"data"`
	}

	accountResource struct {
		ID         string `json:"id"`
		Attributes struct {
			DisplayName string `json:"displayName"`
			Balance     struct {
				Value        string `json:"value"`
				CurrencyCode string `json:"currencyCode"`
			} `json:"balance"`
		} `json:"attributes"`
	}
)

func decodeTransactionsPage(body []byte) (transactionsPage, error) {
	var page transactionsPage
	err := json.Unmarshal(body, &page)
	return page, err
}

func decodeAccountsPage(body []byte) (accountsPage, error) {
	var page accountsPage
	err := json.Unmarshal(body, &page)
	return page, err
}

// asTransaction maps a wire resource to the domain type with the default
// substitution policy: an unparseable amount degrades to zero, absent
// strings stay empty, a missing account relationship leaves AccountID
// empty. Malformed fields never fail the fetch.
func (r transactionResource) asTransaction() core.Transaction {
	amount, err := decimal.NewFromString(r.Attributes.Amount.Value)
	if err != nil {
		amount = decimal.Zero
	}
	tx := core.Transaction{
		Date:        r.Attributes.CreatedAt,
		Description: r.Attributes.Description,
		Amount:      amount,
	}
	if acc := r.Relationships.Account.Data; acc != nil {
		tx.AccountID = acc.ID
	}
	return tx
}

// asAccount maps a wire account to the domain type. The display name
// degrades to "Unknown" and the balance to zero when absent.
func (r accountResource) asAccount() core.Account {
	name := r.Attributes.DisplayName
	if name == "" {
		name = "Unknown"
	}
	value, err := decimal.NewFromString(r.Attributes.Balance.Value)
	if err != nil {
		value = decimal.Zero
	}
	return core.Account{
		ID:          r.ID,
		DisplayName: name,
		Balance: core.Balance{
			Value:        value,
			CurrencyCode: r.Attributes.Balance.CurrencyCode,
		},
	}
}
