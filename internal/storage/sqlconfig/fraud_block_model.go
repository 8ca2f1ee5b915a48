package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// FraudBlock records a transfer attempt stopped by the fraud check.
type FraudBlock struct {
	ID                uuid.UUID       `db:"id"`
	AccountID         uuid.UUID       `db:"account_id"`
	DestinationNumber string          `db:"destination_number"`
	Amount            decimal.Decimal `db:"amount"`
	Reason            string          `db:"reason"`
	CreatedAt         time.Time       `db:"created_at"`
}

type FraudBlockCreate struct {
	AccountID         uuid.UUID
	DestinationNumber string
	Amount            decimal.Decimal
	Reason            string
}

type IFraudBlockTable interface {
	Insert(ctx context.Context, create *FraudBlockCreate) (uuid.UUID, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*FraudBlock, error)
}
