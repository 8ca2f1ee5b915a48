package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-server/internal/storage/sqlconfig"
)

// User represents a user in the service layer. The password hash never leaves storage.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	IsAdmin   bool
	CreatedAt time.Time
}

// Account represents an account in the service layer.
type Account struct {
	ID        uuid.UUID
	Number    string
	Balance   decimal.Decimal
	Currency  string
	CreatedAt time.Time
}

// Transaction represents one leg as shown in history.
type Transaction struct {
	ID            uuid.UUID
	AccountID     uuid.UUID
	AccountNumber string
	Amount        decimal.Decimal
	Type          string
	Category      string
	Note          string
	CreatedAt     time.Time
}

type VirtualCard struct {
	ID        uuid.UUID
	Number    string
	Expiry    string
	CVV       string
	CreatedAt time.Time
}

func userFromStorage(row *sqlconfig.User) User {
	return User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		IsAdmin:   row.IsAdmin,
		CreatedAt: row.CreatedAt,
	}
}

func accountFromStorage(row *sqlconfig.Account) Account {
	return Account{
		ID:        row.ID,
		Number:    row.Number,
		Balance:   row.Balance,
		Currency:  row.Currency,
		CreatedAt: row.CreatedAt,
	}
}

func transactionFromStorage(row *sqlconfig.Transaction) Transaction {
	return Transaction{
		ID:            row.ID,
		AccountID:     row.AccountID,
		AccountNumber: row.AccountNumber,
		Amount:        row.Amount,
		Type:          row.Type,
		Category:      row.Category.GetOrZero(),
		Note:          row.Note.GetOrZero(),
		CreatedAt:     row.CreatedAt,
	}
}

func virtualCardFromStorage(row *sqlconfig.VirtualCard) VirtualCard {
	return VirtualCard{
		ID:        row.ID,
		Number:    row.Number,
		Expiry:    row.Expiry,
		CVV:       row.CVV,
		CreatedAt: row.CreatedAt,
	}
}
