package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction types written by transfers.
const (
	TransactionTypeTransfer          = "transfer"
	TransactionTypeScheduledTransfer = "scheduled_transfer"
)

// Transaction represents a transaction record joined with its account number.
type Transaction struct {
	ID            uuid.UUID        `db:"id"`
	AccountID     uuid.UUID        `db:"account_id"`
	AccountNumber string           `db:"account_number"`
	Amount        decimal.Decimal  `db:"amount"`
	Type          string           `db:"type"`
	Category      null.Val[string] `db:"category"`
	Note          null.Val[string] `db:"note"`
	CreatedAt     time.Time        `db:"created_at"`
}

// TransactionCreate is the input for appending a transaction leg.
type TransactionCreate struct {
	AccountID uuid.UUID
	Amount    decimal.Decimal // signed: credit positive, debit negative
	Type      string
	Category  null.Val[string]
	Note      null.Val[string]
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	UserID uuid.UUID
	Limit  int // zero means no limit
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
type ITransactionTable interface {
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	ListByUser(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
}
