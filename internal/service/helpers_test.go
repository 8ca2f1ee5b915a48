package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/bank-server/internal/operator/actions"
	"github.com/carson-networks/bank-server/internal/storage"
	"github.com/carson-networks/bank-server/internal/storage/sqlconfig/mocks"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	return m.Called(ctx, action).Error(0)
}

type testDeps struct {
	store        *storage.Storage
	operator     *mockProcessor
	users        *mocks.UserTable
	accounts     *mocks.AccountTable
	transactions *mocks.TransactionTable
	cards        *mocks.VirtualCardTable
	scheduled    *mocks.ScheduledTransferTable
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	deps := &testDeps{
		operator:     &mockProcessor{},
		users:        &mocks.UserTable{},
		accounts:     &mocks.AccountTable{},
		transactions: &mocks.TransactionTable{},
		cards:        &mocks.VirtualCardTable{},
		scheduled:    &mocks.ScheduledTransferTable{},
	}
	deps.store = &storage.Storage{
		Users:              deps.users,
		Accounts:           deps.accounts,
		Transactions:       deps.transactions,
		VirtualCards:       deps.cards,
		ScheduledTransfers: deps.scheduled,
	}
	t.Cleanup(func() {
		deps.operator.AssertExpectations(t)
		deps.users.AssertExpectations(t)
		deps.accounts.AssertExpectations(t)
		deps.transactions.AssertExpectations(t)
		deps.cards.AssertExpectations(t)
		deps.scheduled.AssertExpectations(t)
	})
	return deps
}

// isAction matches a queued action of type T.
func isAction[T actions.IAction]() interface{} {
	return mock.MatchedBy(func(a actions.IAction) bool {
		_, ok := a.(T)
		return ok
	})
}
