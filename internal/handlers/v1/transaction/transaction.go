package transaction

import (
	"time"

	"github.com/carson-networks/bank-server/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID            string `json:"id" doc:"Transaction UUID"`
	AccountNumber string `json:"accountNumber" doc:"Number of the account this leg belongs to"`
	Amount        string `json:"amount" doc:"Signed decimal amount, negative for debits"`
	Type          string `json:"type" enum:"transfer,scheduled_transfer" doc:"Transaction type"`
	Category      string `json:"category,omitempty" doc:"Optional category"`
	Note          string `json:"note,omitempty" doc:"Optional note"`
	CreatedAt     string `json:"createdAt" doc:"RFC3339 creation time"`
}

func FromService(txs []service.Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	for i, tx := range txs {
		out[i] = Transaction{
			ID:            tx.ID.String(),
			AccountNumber: tx.AccountNumber,
			Amount:        tx.Amount.StringFixed(2),
			Type:          tx.Type,
			Category:      tx.Category,
			Note:          tx.Note,
			CreatedAt:     tx.CreatedAt.Format(time.RFC3339),
		}
	}
	return out
}
