package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const transactionsTable = "transactions"

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// Insert appends a transaction leg and returns its generated ID.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into(transactionsTable, "account_id", "amount", "type", "category", "note"),
		im.Values(
			psql.Arg(create.AccountID),
			psql.Arg(create.Amount),
			psql.Arg(create.Type),
			psql.Arg(create.Category),
			psql.Arg(create.Note),
		),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
}

// ListByUser returns the transactions of every account owned by the filter's
// user, newest first.
func (t *TransactionsTable) ListByUser(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(
			"transactions.id",
			"transactions.account_id",
			"accounts.number AS account_number",
			"transactions.amount",
			"transactions.type",
			"transactions.category",
			"transactions.note",
			"transactions.created_at",
		),
		sm.From(transactionsTable),
		sm.InnerJoin(accountsTable).On(psql.Quote("accounts", "id").EQ(psql.Quote("transactions", "account_id"))),
		sm.Where(psql.Quote("accounts", "user_id").EQ(psql.Arg(filter.UserID))),
		sm.OrderBy(psql.Quote("transactions", "created_at")).Desc(),
		sm.OrderBy(psql.Quote("transactions", "id")).Desc(),
	}
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit))
	}

	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[Transaction]())
	if err != nil {
		return nil, err
	}
	result := make([]*Transaction, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
