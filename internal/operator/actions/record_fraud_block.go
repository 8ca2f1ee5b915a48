package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-server/internal/storage"
	"github.com/carson-networks/bank-server/internal/storage/sqlconfig"
)

// RecordFraudBlock persists a blocked transfer attempt. It runs as its own
// unit of work because the blocked transfer itself was rolled back.
type RecordFraudBlock struct {
	AccountID         uuid.UUID
	DestinationNumber string
	Amount            decimal.Decimal
	Reason            string

	ID uuid.UUID
}

func (r *RecordFraudBlock) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.FraudBlocks.Insert(ctx, &sqlconfig.FraudBlockCreate{
		AccountID:         r.AccountID,
		DestinationNumber: r.DestinationNumber,
		Amount:            r.Amount,
		Reason:            r.Reason,
	})
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}
