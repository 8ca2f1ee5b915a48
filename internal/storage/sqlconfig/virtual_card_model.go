package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// VirtualCard represents a virtual_cards record.
type VirtualCard struct {
	ID        uuid.UUID `db:"id"`
	OwnerID   uuid.UUID `db:"owner_id"`
	Number    string    `db:"number"`
	Expiry    string    `db:"expiry"`
	CVV       string    `db:"cvv"`
	CreatedAt time.Time `db:"created_at"`
}

// VirtualCardCreate is the input for issuing a card.
type VirtualCardCreate struct {
	OwnerID uuid.UUID
	Number  string
	Expiry  string
	CVV     string
}

type IVirtualCardTable interface {
	Insert(ctx context.Context, create *VirtualCardCreate) (uuid.UUID, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*VirtualCard, error)
}
