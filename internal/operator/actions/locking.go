package actions

import (
	"bytes"
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-server/internal/storage"
	"github.com/carson-networks/bank-server/internal/storage/sqlconfig"
)

// lockAccounts locks source and destination FOR UPDATE in ascending id order so
// two transfers crossing the same pair cannot deadlock.
func lockAccounts(ctx context.Context, accounts sqlconfig.IAccountTable, sourceID, destinationID uuid.UUID) (*sqlconfig.Account, *sqlconfig.Account, error) {
	type lockItem struct {
		id          uuid.UUID
		notFoundErr error
		account     **sqlconfig.Account
	}

	if sourceID == destinationID {
		account, err := accounts.FindByID(ctx, sourceID, true)
		if errors.Is(err, sqlconfig.ErrNotFound) {
			return nil, nil, ErrSourceNotFound
		}
		if err != nil {
			return nil, nil, err
		}
		return account, account, nil
	}

	var source, destination *sqlconfig.Account
	order := []lockItem{
		{id: sourceID, notFoundErr: ErrSourceNotFound, account: &source},
		{id: destinationID, notFoundErr: ErrDestinationNotFound, account: &destination},
	}
	if bytes.Compare(destinationID.Bytes(), sourceID.Bytes()) < 0 {
		order[0], order[1] = order[1], order[0]
	}

	for _, item := range order {
		account, err := accounts.FindByID(ctx, item.id, true)
		if errors.Is(err, sqlconfig.ErrNotFound) {
			return nil, nil, item.notFoundErr
		}
		if err != nil {
			return nil, nil, err
		}
		*item.account = account
	}

	return source, destination, nil
}

// moveFunds applies both balance changes and appends both legs. The legs'
// account and amount fields are filled in here.
func moveFunds(
	ctx context.Context,
	writer *storage.Writer,
	source, destination *sqlconfig.Account,
	amount decimal.Decimal,
	debit, credit *sqlconfig.TransactionCreate,
) error {
	newSourceBalance := source.Balance.Sub(amount)
	if err := writer.Accounts.UpdateBalance(ctx, source.ID, newSourceBalance); err != nil {
		return err
	}

	newDestinationBalance := destination.Balance.Add(amount)
	if err := writer.Accounts.UpdateBalance(ctx, destination.ID, newDestinationBalance); err != nil {
		return err
	}

	debit.AccountID = source.ID
	debit.Amount = amount.Neg()
	if _, err := writer.Transactions.Insert(ctx, debit); err != nil {
		return err
	}

	credit.AccountID = destination.ID
	credit.Amount = amount
	if _, err := writer.Transactions.Insert(ctx, credit); err != nil {
		return err
	}

	source.Balance = newSourceBalance
	destination.Balance = newDestinationBalance
	return nil
}
