package actions

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-server/internal/storage"
	"github.com/carson-networks/bank-server/internal/storage/sqlconfig"
)

// ScheduleTransfer stores a PENDING transfer for the sweep. Funds are not
// checked here; settlement decides at execution time.
type ScheduleTransfer struct {
	UserID          uuid.UUID
	FromAccountID   uuid.UUID
	ToAccountNumber string
	Amount          decimal.Decimal
	ExecuteAt       time.Time

	ID uuid.UUID
}

func (s *ScheduleTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := ValidateAmount(s.Amount); err != nil {
		return err
	}

	destination, err := writer.Accounts.FindByNumber(ctx, s.ToAccountNumber)
	if errors.Is(err, sqlconfig.ErrNotFound) {
		return ErrDestinationNotFound
	}
	if err != nil {
		return err
	}

	source, err := writer.Accounts.FindByID(ctx, s.FromAccountID, false)
	if errors.Is(err, sqlconfig.ErrNotFound) {
		return ErrSourceNotFound
	}
	if err != nil {
		return err
	}
	if !source.OwnedBy(s.UserID) {
		return ErrAccountNotOwned
	}
	if source.ID == destination.ID {
		return ErrSameAccount
	}

	id, err := writer.ScheduledTransfers.Insert(ctx, &sqlconfig.ScheduledTransferCreate{
		FromAccountID: source.ID,
		ToAccountID:   destination.ID,
		Amount:        s.Amount,
		ExecuteAt:     s.ExecuteAt.UTC(),
	})
	if err != nil {
		return err
	}

	s.ID = id
	return nil
}
