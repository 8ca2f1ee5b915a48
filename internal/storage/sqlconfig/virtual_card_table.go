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

const virtualCardsTable = "virtual_cards"

var _ IVirtualCardTable = (*VirtualCardsTable)(nil)

type VirtualCardsTable struct {
	exec bob.Executor
}

func NewVirtualCardsTable(exec bob.Executor) *VirtualCardsTable {
	return &VirtualCardsTable{exec: exec}
}

func (t *VirtualCardsTable) Insert(ctx context.Context, create *VirtualCardCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into(virtualCardsTable, "owner_id", "number", "expiry", "cvv"),
		im.Values(
			psql.Arg(create.OwnerID),
			psql.Arg(create.Number),
			psql.Arg(create.Expiry),
			psql.Arg(create.CVV),
		),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
}

func (t *VirtualCardsTable) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*VirtualCard, error) {
	q := psql.Select(
		sm.Columns("id", "owner_id", "number", "expiry", "cvv", "created_at"),
		sm.From(virtualCardsTable),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[VirtualCard]())
	if err != nil {
		return nil, err
	}
	result := make([]*VirtualCard, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
