package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-server/internal/fraud"
	"github.com/carson-networks/bank-server/internal/storage"
	"github.com/carson-networks/bank-server/internal/storage/sqlconfig"
)

// Transfer moves Amount from one of the user's accounts to the account with
// the public number ToAccountNumber.
type Transfer struct {
	UserID          uuid.UUID
	FromAccountID   uuid.UUID
	ToAccountNumber string
	Amount          decimal.Decimal
	Note            null.Val[string]
	Category        null.Val[string]
	Fraud           fraud.Checker

	// Filled by Perform.
	Source      *sqlconfig.Account
	Destination *sqlconfig.Account
	Verdict     fraud.Verdict
}

func (t *Transfer) Perform(ctx context.Context, writer *storage.Writer) error {
	t.Source, t.Destination, t.Verdict = nil, nil, fraud.Verdict{}

	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}

	destination, err := writer.Accounts.FindByNumber(ctx, t.ToAccountNumber)
	if errors.Is(err, sqlconfig.ErrNotFound) {
		return ErrDestinationNotFound
	}
	if err != nil {
		return err
	}

	source, destination, err := lockAccounts(ctx, writer.Accounts, t.FromAccountID, destination.ID)
	if err != nil {
		return err
	}
	if !source.OwnedBy(t.UserID) {
		return ErrAccountNotOwned
	}
	if source.ID == destination.ID {
		return ErrSameAccount
	}

	if source.Balance.LessThan(t.Amount) {
		return ErrInsufficientFunds
	}

	checker := t.Fraud
	if checker == nil {
		checker = fraud.NewThresholdRule(fraud.DefaultThreshold)
	}
	if verdict := checker.Check(t.Amount, source); verdict.Blocked {
		t.Verdict = verdict
		return ErrFraudBlocked
	}

	debit := &sqlconfig.TransactionCreate{
		Type:     sqlconfig.TransactionTypeTransfer,
		Category: t.Category,
		Note:     t.Note,
	}
	credit := &sqlconfig.TransactionCreate{
		Type:     sqlconfig.TransactionTypeTransfer,
		Category: t.Category,
		Note:     null.From(fmt.Sprintf("From %s", source.Number)),
	}
	if err := moveFunds(ctx, writer, source, destination, t.Amount, debit, credit); err != nil {
		return err
	}

	t.Source = source
	t.Destination = destination
	return nil
}
