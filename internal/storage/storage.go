package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/bank-server/internal/config"
	"github.com/carson-networks/bank-server/internal/storage/sqlconfig"
)

// Storage is the read side over the connection pool. Writes go through Write.
type Storage struct {
	DB                 *sql.DB
	exec               bob.DB
	Users              sqlconfig.IUserTable
	Accounts           sqlconfig.IAccountTable
	Transactions       sqlconfig.ITransactionTable
	VirtualCards       sqlconfig.IVirtualCardTable
	ScheduledTransfers sqlconfig.IScheduledTransferTable
	FraudBlocks        sqlconfig.IFraudBlockTable
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

// New wraps an already opened database.
func New(db *sql.DB) *Storage {
	exec := bob.NewDB(db)
	return &Storage{
		DB:                 db,
		exec:               exec,
		Users:              sqlconfig.NewUsersTable(exec),
		Accounts:           sqlconfig.NewAccountsTable(exec),
		Transactions:       sqlconfig.NewTransactionsTable(exec),
		VirtualCards:       sqlconfig.NewVirtualCardsTable(exec),
		ScheduledTransfers: sqlconfig.NewScheduledTransfersTable(exec),
		FraudBlocks:        sqlconfig.NewFraudBlocksTable(exec),
	}
}

// Write opens a unit of work. The caller must Commit or Rollback the Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.exec.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
