package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Account represents an account record.
type Account struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.NullUUID   `db:"user_id"`
	Number    string          `db:"number"`
	Balance   decimal.Decimal `db:"balance"`
	Currency  string          `db:"currency"`
	CreatedAt time.Time       `db:"created_at"`
}

// OwnedBy reports whether the account belongs to userID. Unowned accounts belong to nobody.
func (a *Account) OwnedBy(userID uuid.UUID) bool {
	return a.UserID.Valid && a.UserID.UUID == userID
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	UserID   uuid.NullUUID
	Number   string
	Balance  decimal.Decimal
	Currency string
}

// IAccountTable defines the interface for account storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
type IAccountTable interface {
	FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*Account, error)
	FindByNumber(ctx context.Context, number string) (*Account, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Account, error)
	Insert(ctx context.Context, create *AccountCreate) (uuid.UUID, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}
