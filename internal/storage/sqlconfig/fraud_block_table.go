package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const fraudBlocksTable = "fraud_blocks"

var _ IFraudBlockTable = (*FraudBlocksTable)(nil)

type FraudBlocksTable struct {
	exec bob.Executor
}

func NewFraudBlocksTable(exec bob.Executor) *FraudBlocksTable {
	return &FraudBlocksTable{exec: exec}
}

func (t *FraudBlocksTable) Insert(ctx context.Context, create *FraudBlockCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into(fraudBlocksTable, "account_id", "destination_number", "amount", "reason"),
		im.Values(
			psql.Arg(create.AccountID),
			psql.Arg(create.DestinationNumber),
			psql.Arg(create.Amount),
			psql.Arg(create.Reason),
		),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
}

func (t *FraudBlocksTable) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*FraudBlock, error) {
	q := psql.Select(
		sm.Columns("id", "account_id", "destination_number", "amount", "reason", "created_at"),
		sm.From(fraudBlocksTable),
		sm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
		sm.OrderBy("created_at").Desc(),
	)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[FraudBlock]())
	if err != nil {
		return nil, err
	}
	result := make([]*FraudBlock, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
