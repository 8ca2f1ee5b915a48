package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

const scheduledTransfersTable = "scheduled_transfers"

var scheduledTransferColumns = []any{
	"id", "from_account_id", "to_account_id", "amount", "execute_at",
	"status", "failure_reason", "settled_at", "created_at",
}

var _ IScheduledTransferTable = (*ScheduledTransfersTable)(nil)

type ScheduledTransfersTable struct {
	exec bob.Executor
}

func NewScheduledTransfersTable(exec bob.Executor) *ScheduledTransfersTable {
	return &ScheduledTransfersTable{exec: exec}
}

// Insert stores a new PENDING scheduled transfer.
func (t *ScheduledTransfersTable) Insert(ctx context.Context, create *ScheduledTransferCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into(scheduledTransfersTable, "from_account_id", "to_account_id", "amount", "execute_at", "status"),
		im.Values(
			psql.Arg(create.FromAccountID),
			psql.Arg(create.ToAccountID),
			psql.Arg(create.Amount),
			psql.Arg(create.ExecuteAt),
			psql.Arg(string(ScheduledStatusPending)),
		),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
}

// FindByIDForUpdate locks the row until the surrounding transaction ends.
func (t *ScheduledTransfersTable) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ScheduledTransfer, error) {
	q := psql.Select(
		sm.Columns(scheduledTransferColumns...),
		sm.From(scheduledTransfersTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[ScheduledTransfer]())
	if err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}

// ListDue returns PENDING transfers whose execute_at is not after now, oldest first.
func (t *ScheduledTransfersTable) ListDue(ctx context.Context, now time.Time) ([]*ScheduledTransfer, error) {
	q := psql.Select(
		sm.Columns(scheduledTransferColumns...),
		sm.From(scheduledTransfersTable),
		sm.Where(psql.Quote("status").EQ(psql.Arg(string(ScheduledStatusPending)))),
		sm.Where(psql.Quote("execute_at").LTE(psql.Arg(now))),
		sm.OrderBy("execute_at").Asc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[ScheduledTransfer]())
	if err != nil {
		return nil, err
	}
	result := make([]*ScheduledTransfer, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// Settle writes a terminal status. Only PENDING rows are updated; settling a
// row that is already terminal returns ErrNotFound.
func (t *ScheduledTransfersTable) Settle(ctx context.Context, id uuid.UUID, settle *ScheduledTransferSettle) error {
	q := psql.Update(
		um.Table(scheduledTransfersTable),
		um.SetCol("status").ToArg(string(settle.Status)),
		um.SetCol("failure_reason").ToArg(settle.FailureReason),
		um.SetCol("settled_at").ToArg(settle.SettledAt),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("status").EQ(psql.Arg(string(ScheduledStatusPending)))),
	)
	result, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}
