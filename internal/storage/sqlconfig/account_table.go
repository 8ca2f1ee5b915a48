package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

const accountsTable = "accounts"

var accountColumns = []any{"id", "user_id", "number", "balance", "currency", "created_at"}

// Ensure AccountsTable implements IAccountTable at compile time.
var _ IAccountTable = (*AccountsTable)(nil)

// AccountsTable provides access to the accounts table.
type AccountsTable struct {
	exec bob.Executor
}

// NewAccountsTable creates an AccountsTable on the given executor, either the
// pool or an open transaction.
func NewAccountsTable(exec bob.Executor) *AccountsTable {
	return &AccountsTable{exec: exec}
}

// FindByID retrieves an account by primary key. With forUpdate the row stays
// locked until the surrounding transaction ends.
func (t *AccountsTable) FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(accountColumns...),
		sm.From(accountsTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}
	return t.findOne(ctx, queryMods...)
}

// FindByNumber retrieves an account by its public account number.
func (t *AccountsTable) FindByNumber(ctx context.Context, number string) (*Account, error) {
	return t.findOne(ctx,
		sm.Columns(accountColumns...),
		sm.From(accountsTable),
		sm.Where(psql.Quote("number").EQ(psql.Arg(number))),
	)
}

func (t *AccountsTable) findOne(ctx context.Context, queryMods ...bob.Mod[*dialect.SelectQuery]) (*Account, error) {
	row, err := bob.One(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[Account]())
	if err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}

// ListByUser returns the accounts owned by userID, oldest first.
func (t *AccountsTable) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Account, error) {
	q := psql.Select(
		sm.Columns(accountColumns...),
		sm.From(accountsTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[Account]())
	if err != nil {
		return nil, err
	}
	result := make([]*Account, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// Insert creates a new account and returns its generated ID.
func (t *AccountsTable) Insert(ctx context.Context, create *AccountCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into(accountsTable, "user_id", "number", "balance", "currency"),
		im.Values(
			psql.Arg(create.UserID),
			psql.Arg(create.Number),
			psql.Arg(create.Balance),
			psql.Arg(create.Currency),
		),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
}

// UpdateBalance updates the balance for a given account.
func (t *AccountsTable) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	q := psql.Update(
		um.Table(accountsTable),
		um.SetCol("balance").ToArg(balance),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}
