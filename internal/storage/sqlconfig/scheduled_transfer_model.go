package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// ScheduledStatus is the lifecycle state of a scheduled transfer.
// PENDING moves exactly once to COMPLETED or FAILED.
type ScheduledStatus string

const (
	ScheduledStatusPending   ScheduledStatus = "PENDING"
	ScheduledStatusCompleted ScheduledStatus = "COMPLETED"
	ScheduledStatusFailed    ScheduledStatus = "FAILED"
)

// ScheduledTransfer represents a scheduled_transfers record.
type ScheduledTransfer struct {
	ID            uuid.UUID           `db:"id"`
	FromAccountID uuid.UUID           `db:"from_account_id"`
	ToAccountID   uuid.UUID           `db:"to_account_id"`
	Amount        decimal.Decimal     `db:"amount"`
	ExecuteAt     time.Time           `db:"execute_at"`
	Status        ScheduledStatus     `db:"status"`
	FailureReason null.Val[string]    `db:"failure_reason"`
	SettledAt     null.Val[time.Time] `db:"settled_at"`
	CreatedAt     time.Time           `db:"created_at"`
}

// ScheduledTransferCreate is the input for scheduling a transfer.
type ScheduledTransferCreate struct {
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        decimal.Decimal
	ExecuteAt     time.Time
}

// ScheduledTransferSettle is the terminal state written by settlement.
type ScheduledTransferSettle struct {
	Status        ScheduledStatus
	FailureReason null.Val[string]
	SettledAt     time.Time
}

type IScheduledTransferTable interface {
	Insert(ctx context.Context, create *ScheduledTransferCreate) (uuid.UUID, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ScheduledTransfer, error)
	ListDue(ctx context.Context, now time.Time) ([]*ScheduledTransfer, error)
	Settle(ctx context.Context, id uuid.UUID, settle *ScheduledTransferSettle) error
}
