package actions

import (
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/bank-server/internal/storage"
	"github.com/carson-networks/bank-server/internal/storage/sqlconfig"
	"github.com/carson-networks/bank-server/internal/storage/sqlconfig/mocks"
)

type testTables struct {
	users        *mocks.UserTable
	accounts     *mocks.AccountTable
	transactions *mocks.TransactionTable
	cards        *mocks.VirtualCardTable
	scheduled    *mocks.ScheduledTransferTable
	fraudBlocks  *mocks.FraudBlockTable
}

func newTestWriter(t *testing.T) (*storage.Writer, *testTables) {
	t.Helper()
	tables := &testTables{
		users:        &mocks.UserTable{},
		accounts:     &mocks.AccountTable{},
		transactions: &mocks.TransactionTable{},
		cards:        &mocks.VirtualCardTable{},
		scheduled:    &mocks.ScheduledTransferTable{},
		fraudBlocks:  &mocks.FraudBlockTable{},
	}
	t.Cleanup(func() {
		tables.users.AssertExpectations(t)
		tables.accounts.AssertExpectations(t)
		tables.transactions.AssertExpectations(t)
		tables.cards.AssertExpectations(t)
		tables.scheduled.AssertExpectations(t)
		tables.fraudBlocks.AssertExpectations(t)
	})

	writer := &storage.Writer{
		Users:              tables.users,
		Accounts:           tables.accounts,
		Transactions:       tables.transactions,
		VirtualCards:       tables.cards,
		ScheduledTransfers: tables.scheduled,
		FraudBlocks:        tables.fraudBlocks,
	}
	return writer, tables
}

func newAccount(owner uuid.UUID, number, balance string) *sqlconfig.Account {
	return &sqlconfig.Account{
		ID:       uuid.Must(uuid.NewV4()),
		UserID:   uuid.NullUUID{UUID: owner, Valid: owner != uuid.Nil},
		Number:   number,
		Balance:  decimal.RequireFromString(balance),
		Currency: DefaultCurrency,
	}
}

func decimalEq(want string) interface{} {
	expected := decimal.RequireFromString(want)
	return mock.MatchedBy(func(got decimal.Decimal) bool { return got.Equal(expected) })
}
