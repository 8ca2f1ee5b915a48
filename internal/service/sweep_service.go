package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/bank-server/internal/operator/actions"
	"github.com/carson-networks/bank-server/internal/storage"
)

// SweepReport summarises one sweep. Processed counts completed transfers.
type SweepReport struct {
	Processed int
	Outcomes  []actions.SettlementOutcome
}

// SweepService settles due scheduled transfers, one unit of work each.
type SweepService struct {
	storage  *storage.Storage
	operator actionProcessor
	logger   *logrus.Logger
}

func NewSweepService(store *storage.Storage, op actionProcessor, logger *logrus.Logger) *SweepService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SweepService{
		storage:  store,
		operator: op,
		logger:   logger,
	}
}

// Sweep settles every PENDING transfer due at now. A failing item is marked
// FAILED with the cause and the sweep moves on; only listing errors and
// context cancellation abort it.
func (s *SweepService) Sweep(ctx context.Context, now time.Time) (*SweepReport, error) {
	due, err := s.storage.ScheduledTransfers.ListDue(ctx, now)
	if err != nil {
		return nil, err
	}

	report := &SweepReport{Outcomes: make([]actions.SettlementOutcome, 0, len(due))}
	for _, scheduled := range due {
		settle := &actions.SettleScheduledTransfer{ID: scheduled.ID, Now: now}
		err := s.operator.Process(ctx, settle)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			report.Outcomes = append(report.Outcomes, s.failItem(ctx, scheduled.ID.String(), settle, err, now))
			continue
		}

		if settle.Outcome.Status == actions.SettlementCompleted {
			report.Processed++
		}
		report.Outcomes = append(report.Outcomes, settle.Outcome)
	}

	if len(due) > 0 {
		s.logger.WithFields(logrus.Fields{
			"due":       len(due),
			"processed": report.Processed,
		}).Info("SweepService.Sweep.done")
	}
	return report, nil
}

func (s *SweepService) failItem(ctx context.Context, id string, settle *actions.SettleScheduledTransfer, cause error, now time.Time) actions.SettlementOutcome {
	entry := s.logger.WithField("scheduledTransferID", id).WithError(cause)
	entry.Error("SweepService.Sweep.settle error")

	fail := &actions.FailScheduledTransfer{ID: settle.ID, Reason: cause.Error(), Now: now}
	if err := s.operator.Process(ctx, fail); err != nil {
		entry.WithField("failError", err.Error()).Error("SweepService.Sweep.mark failed error")
		return actions.SettlementOutcome{
			ScheduledTransferID: settle.ID,
			Status:              actions.SettlementFailed,
			Reason:              cause.Error(),
		}
	}

	if !fail.Updated {
		return actions.SettlementOutcome{
			ScheduledTransferID: settle.ID,
			Status:              actions.SettlementSkipped,
			Reason:              "settled elsewhere",
		}
	}
	return actions.SettlementOutcome{
		ScheduledTransferID: settle.ID,
		Status:              actions.SettlementFailed,
		Reason:              cause.Error(),
	}
}
