// Package mocks holds testify mocks of the sqlconfig table interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/bank-server/internal/storage/sqlconfig"
)

var (
	_ sqlconfig.IUserTable              = (*UserTable)(nil)
	_ sqlconfig.IAccountTable           = (*AccountTable)(nil)
	_ sqlconfig.ITransactionTable       = (*TransactionTable)(nil)
	_ sqlconfig.IVirtualCardTable       = (*VirtualCardTable)(nil)
	_ sqlconfig.IScheduledTransferTable = (*ScheduledTransferTable)(nil)
	_ sqlconfig.IFraudBlockTable        = (*FraudBlockTable)(nil)
)

func idResult(args mock.Arguments) (uuid.UUID, error) {
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}

type UserTable struct {
	mock.Mock
}

func (m *UserTable) FindByID(ctx context.Context, id uuid.UUID) (*sqlconfig.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*sqlconfig.User)
	return user, args.Error(1)
}

func (m *UserTable) FindByEmail(ctx context.Context, email string) (*sqlconfig.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*sqlconfig.User)
	return user, args.Error(1)
}

func (m *UserTable) Insert(ctx context.Context, create *sqlconfig.UserCreate) (uuid.UUID, error) {
	return idResult(m.Called(ctx, create))
}

func (m *UserTable) List(ctx context.Context) ([]*sqlconfig.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*sqlconfig.User)
	return users, args.Error(1)
}

type AccountTable struct {
	mock.Mock
}

func (m *AccountTable) FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*sqlconfig.Account, error) {
	args := m.Called(ctx, id, forUpdate)
	account, _ := args.Get(0).(*sqlconfig.Account)
	return account, args.Error(1)
}

func (m *AccountTable) FindByNumber(ctx context.Context, number string) (*sqlconfig.Account, error) {
	args := m.Called(ctx, number)
	account, _ := args.Get(0).(*sqlconfig.Account)
	return account, args.Error(1)
}

func (m *AccountTable) ListByUser(ctx context.Context, userID uuid.UUID) ([]*sqlconfig.Account, error) {
	args := m.Called(ctx, userID)
	accounts, _ := args.Get(0).([]*sqlconfig.Account)
	return accounts, args.Error(1)
}

func (m *AccountTable) Insert(ctx context.Context, create *sqlconfig.AccountCreate) (uuid.UUID, error) {
	return idResult(m.Called(ctx, create))
}

func (m *AccountTable) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	return m.Called(ctx, id, balance).Error(0)
}

type TransactionTable struct {
	mock.Mock
}

func (m *TransactionTable) Insert(ctx context.Context, create *sqlconfig.TransactionCreate) (uuid.UUID, error) {
	return idResult(m.Called(ctx, create))
}

func (m *TransactionTable) ListByUser(ctx context.Context, filter *sqlconfig.TransactionFilter) ([]*sqlconfig.Transaction, error) {
	args := m.Called(ctx, filter)
	txs, _ := args.Get(0).([]*sqlconfig.Transaction)
	return txs, args.Error(1)
}

type VirtualCardTable struct {
	mock.Mock
}

func (m *VirtualCardTable) Insert(ctx context.Context, create *sqlconfig.VirtualCardCreate) (uuid.UUID, error) {
	return idResult(m.Called(ctx, create))
}

func (m *VirtualCardTable) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*sqlconfig.VirtualCard, error) {
	args := m.Called(ctx, ownerID)
	cards, _ := args.Get(0).([]*sqlconfig.VirtualCard)
	return cards, args.Error(1)
}

type ScheduledTransferTable struct {
	mock.Mock
}

func (m *ScheduledTransferTable) Insert(ctx context.Context, create *sqlconfig.ScheduledTransferCreate) (uuid.UUID, error) {
	return idResult(m.Called(ctx, create))
}

func (m *ScheduledTransferTable) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*sqlconfig.ScheduledTransfer, error) {
	args := m.Called(ctx, id)
	st, _ := args.Get(0).(*sqlconfig.ScheduledTransfer)
	return st, args.Error(1)
}

func (m *ScheduledTransferTable) ListDue(ctx context.Context, now time.Time) ([]*sqlconfig.ScheduledTransfer, error) {
	args := m.Called(ctx, now)
	due, _ := args.Get(0).([]*sqlconfig.ScheduledTransfer)
	return due, args.Error(1)
}

func (m *ScheduledTransferTable) Settle(ctx context.Context, id uuid.UUID, settle *sqlconfig.ScheduledTransferSettle) error {
	return m.Called(ctx, id, settle).Error(0)
}

type FraudBlockTable struct {
	mock.Mock
}

func (m *FraudBlockTable) Insert(ctx context.Context, create *sqlconfig.FraudBlockCreate) (uuid.UUID, error) {
	return idResult(m.Called(ctx, create))
}

func (m *FraudBlockTable) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*sqlconfig.FraudBlock, error) {
	args := m.Called(ctx, accountID)
	blocks, _ := args.Get(0).([]*sqlconfig.FraudBlock)
	return blocks, args.Error(1)
}
