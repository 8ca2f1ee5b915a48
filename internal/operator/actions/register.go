package actions

import (
	"context"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-server/internal/storage"
	"github.com/carson-networks/bank-server/internal/storage/sqlconfig"
)

const DefaultCurrency = "INR"

// DefaultStartingBalance is credited to the account opened at registration.
var DefaultStartingBalance = decimal.NewFromInt(1000)

// Register creates a user and its first account in one unit of work.
type Register struct {
	Name            string
	Email           string
	PasswordHash    string
	IsAdmin         bool
	StartingBalance decimal.Decimal
	Currency        string
	NewNumber       func() string

	UserID        uuid.UUID
	AccountID     uuid.UUID
	AccountNumber string
}

func (r *Register) Perform(ctx context.Context, writer *storage.Writer) error {
	email := strings.ToLower(strings.TrimSpace(r.Email))

	_, err := writer.Users.FindByEmail(ctx, email)
	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, sqlconfig.ErrNotFound) {
		return err
	}

	userID, err := writer.Users.Insert(ctx, &sqlconfig.UserCreate{
		Name:         r.Name,
		Email:        email,
		PasswordHash: r.PasswordHash,
		IsAdmin:      r.IsAdmin,
	})
	if sqlconfig.IsUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return err
	}

	newNumber := r.NewNumber
	if newNumber == nil {
		newNumber = NewAccountNumber
	}
	currency := r.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	number := newNumber()
	accountID, err := writer.Accounts.Insert(ctx, &sqlconfig.AccountCreate{
		UserID:   uuid.NullUUID{UUID: userID, Valid: true},
		Number:   number,
		Balance:  r.StartingBalance,
		Currency: currency,
	})
	if err != nil {
		return err
	}

	r.UserID = userID
	r.AccountID = accountID
	r.AccountNumber = number
	return nil
}
