package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bank-server/internal/storage"
	"github.com/carson-networks/bank-server/internal/storage/sqlconfig"
)

// SettlementStatus classifies what settlement did with one scheduled transfer.
type SettlementStatus string

const (
	SettlementCompleted SettlementStatus = "completed"
	SettlementFailed    SettlementStatus = "failed"
	SettlementSkipped   SettlementStatus = "skipped"
)

const (
	ReasonInsufficientFunds = "insufficient funds"
	ReasonAccountNotFound   = "account not found"
)

// SettlementOutcome is the typed result for one scheduled transfer.
type SettlementOutcome struct {
	ScheduledTransferID uuid.UUID
	Status              SettlementStatus
	Reason              string
}

// SettleScheduledTransfer applies one due scheduled transfer. No fraud check
// and no number lookup: both accounts are already bound by id. A row that is
// no longer PENDING when locked is skipped, so concurrent sweeps settle it once.
type SettleScheduledTransfer struct {
	ID  uuid.UUID
	Now time.Time

	Outcome SettlementOutcome
}

func (s *SettleScheduledTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	s.Outcome = SettlementOutcome{ScheduledTransferID: s.ID}

	scheduled, err := writer.ScheduledTransfers.FindByIDForUpdate(ctx, s.ID)
	if errors.Is(err, sqlconfig.ErrNotFound) {
		s.Outcome.Status = SettlementSkipped
		s.Outcome.Reason = "scheduled transfer not found"
		return nil
	}
	if err != nil {
		return err
	}
	if scheduled.Status != sqlconfig.ScheduledStatusPending {
		s.Outcome.Status = SettlementSkipped
		s.Outcome.Reason = fmt.Sprintf("already %s", scheduled.Status)
		return nil
	}

	source, destination, err := lockAccounts(ctx, writer.Accounts, scheduled.FromAccountID, scheduled.ToAccountID)
	if errors.Is(err, ErrSourceNotFound) || errors.Is(err, ErrDestinationNotFound) {
		return s.fail(ctx, writer, ReasonAccountNotFound)
	}
	if err != nil {
		return err
	}

	if source.Balance.LessThan(scheduled.Amount) {
		return s.fail(ctx, writer, ReasonInsufficientFunds)
	}

	debit := &sqlconfig.TransactionCreate{
		Type: sqlconfig.TransactionTypeScheduledTransfer,
		Note: null.From(fmt.Sprintf("Scheduled -> %s", destination.Number)),
	}
	credit := &sqlconfig.TransactionCreate{
		Type: sqlconfig.TransactionTypeScheduledTransfer,
		Note: null.From(fmt.Sprintf("Scheduled from %s", source.Number)),
	}
	if err := moveFunds(ctx, writer, source, destination, scheduled.Amount, debit, credit); err != nil {
		return err
	}

	err = writer.ScheduledTransfers.Settle(ctx, s.ID, &sqlconfig.ScheduledTransferSettle{
		Status:    sqlconfig.ScheduledStatusCompleted,
		SettledAt: s.settledAt(),
	})
	if err != nil {
		return err
	}

	s.Outcome.Status = SettlementCompleted
	return nil
}

func (s *SettleScheduledTransfer) fail(ctx context.Context, writer *storage.Writer, reason string) error {
	err := writer.ScheduledTransfers.Settle(ctx, s.ID, &sqlconfig.ScheduledTransferSettle{
		Status:        sqlconfig.ScheduledStatusFailed,
		FailureReason: null.From(reason),
		SettledAt:     s.settledAt(),
	})
	if err != nil {
		return err
	}

	s.Outcome.Status = SettlementFailed
	s.Outcome.Reason = reason
	return nil
}

func (s *SettleScheduledTransfer) settledAt() time.Time {
	if s.Now.IsZero() {
		return time.Now().UTC()
	}
	return s.Now.UTC()
}

// FailScheduledTransfer marks a still-PENDING scheduled transfer FAILED with
// Reason. Used after settlement itself errored and was rolled back.
type FailScheduledTransfer struct {
	ID     uuid.UUID
	Reason string
	Now    time.Time

	Updated bool
}

func (f *FailScheduledTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	f.Updated = false

	scheduled, err := writer.ScheduledTransfers.FindByIDForUpdate(ctx, f.ID)
	if errors.Is(err, sqlconfig.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if scheduled.Status != sqlconfig.ScheduledStatusPending {
		return nil
	}

	settledAt := f.Now
	if settledAt.IsZero() {
		settledAt = time.Now()
	}
	err = writer.ScheduledTransfers.Settle(ctx, f.ID, &sqlconfig.ScheduledTransferSettle{
		Status:        sqlconfig.ScheduledStatusFailed,
		FailureReason: null.From(f.Reason),
		SettledAt:     settledAt.UTC(),
	})
	if err != nil {
		return err
	}

	f.Updated = true
	return nil
}
