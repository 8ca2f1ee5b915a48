package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bank-server/internal/storage"
	"github.com/carson-networks/bank-server/internal/storage/sqlconfig"
)

// CreateVirtualCard issues a card to OwnerID. There is no per-user limit.
type CreateVirtualCard struct {
	OwnerID   uuid.UUID
	NewNumber func() string

	Card sqlconfig.VirtualCard
}

func (c *CreateVirtualCard) Perform(ctx context.Context, writer *storage.Writer) error {
	newNumber := c.NewNumber
	if newNumber == nil {
		newNumber = NewVirtualCardNumber
	}

	create := &sqlconfig.VirtualCardCreate{
		OwnerID: c.OwnerID,
		Number:  newNumber(),
		Expiry:  virtualCardExpiry,
		CVV:     virtualCardCVV,
	}
	id, err := writer.VirtualCards.Insert(ctx, create)
	if err != nil {
		return err
	}

	c.Card = sqlconfig.VirtualCard{
		ID:      id,
		OwnerID: create.OwnerID,
		Number:  create.Number,
		Expiry:  create.Expiry,
		CVV:     create.CVV,
	}
	return nil
}
