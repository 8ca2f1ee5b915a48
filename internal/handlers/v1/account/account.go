package account

import (
	"github.com/carson-networks/bank-server/internal/service"
)

// Account is the API response model for an account.
type Account struct {
	ID       string `json:"id" doc:"Account UUID"`
	Number   string `json:"number" doc:"Public account number used as a transfer destination"`
	Balance  string `json:"balance" doc:"Decimal balance"`
	Currency string `json:"currency" doc:"ISO currency code"`
}

func FromService(accounts []service.Account) []Account {
	out := make([]Account, len(accounts))
	for i, a := range accounts {
		out[i] = Account{
			ID:       a.ID.String(),
			Number:   a.Number,
			Balance:  a.Balance.StringFixed(2),
			Currency: a.Currency,
		}
	}
	return out
}
