package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/bank-server/internal/storage/sqlconfig"
)

// Transactor ends a unit of work.
type Transactor interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer exposes every table bound to one database transaction.
type Writer struct {
	Tx                 Transactor
	Users              sqlconfig.IUserTable
	Accounts           sqlconfig.IAccountTable
	Transactions       sqlconfig.ITransactionTable
	VirtualCards       sqlconfig.IVirtualCardTable
	ScheduledTransfers sqlconfig.IScheduledTransferTable
	FraudBlocks        sqlconfig.IFraudBlockTable
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		Tx:                 tx,
		Users:              sqlconfig.NewUsersTable(tx),
		Accounts:           sqlconfig.NewAccountsTable(tx),
		Transactions:       sqlconfig.NewTransactionsTable(tx),
		VirtualCards:       sqlconfig.NewVirtualCardsTable(tx),
		ScheduledTransfers: sqlconfig.NewScheduledTransfersTable(tx),
		FraudBlocks:        sqlconfig.NewFraudBlocksTable(tx),
	}
}

func (w *Writer) Commit() error {
	return w.Tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.Tx.Rollback(context.Background())
}
