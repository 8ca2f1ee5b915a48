package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/bank-server/internal/fraud"
	"github.com/carson-networks/bank-server/internal/operator/actions"
	"github.com/carson-networks/bank-server/internal/storage"
)

// TransferRequest is one submitted transfer. A non-nil ExecuteAt schedules it
// instead of moving money now.
type TransferRequest struct {
	UserID          uuid.UUID
	FromAccountID   uuid.UUID
	ToAccountNumber string
	Amount          decimal.Decimal
	Note            string
	Category        string
	ExecuteAt       *time.Time
}

type TransferResult struct {
	Scheduled           bool
	ScheduledTransferID uuid.UUID
	SourceBalance       decimal.Decimal
}

// TransferService runs immediate and scheduled transfers.
type TransferService struct {
	storage  *storage.Storage
	operator actionProcessor
	fraud    fraud.Checker
	logger   *logrus.Logger
}

func NewTransferService(store *storage.Storage, op actionProcessor, opts Options) *TransferService {
	opts = opts.withDefaults()
	return &TransferService{
		storage:  store,
		operator: op,
		fraud:    opts.Fraud,
		logger:   opts.Logger,
	}
}

// SourceAccounts lists the accounts the user can send from.
func (s *TransferService) SourceAccounts(ctx context.Context, userID uuid.UUID) ([]Account, error) {
	rows, err := s.storage.Accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	accounts := make([]Account, len(rows))
	for i, row := range rows {
		accounts[i] = accountFromStorage(row)
	}
	return accounts, nil
}

func (s *TransferService) Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	if req.ExecuteAt != nil {
		return s.schedule(ctx, req)
	}

	action := &actions.Transfer{
		UserID:          req.UserID,
		FromAccountID:   req.FromAccountID,
		ToAccountNumber: strings.TrimSpace(req.ToAccountNumber),
		Amount:          req.Amount,
		Note:            optionalString(req.Note),
		Category:        optionalString(req.Category),
		Fraud:           s.fraud,
	}
	err := s.operator.Process(ctx, action)
	if errors.Is(err, actions.ErrFraudBlocked) {
		s.recordFraudBlock(ctx, req, action.Verdict)
		return nil, fmt.Errorf("%w: %s", actions.ErrFraudBlocked, action.Verdict.Reason)
	}
	if err != nil {
		return nil, err
	}

	return &TransferResult{SourceBalance: action.Source.Balance}, nil
}

func (s *TransferService) schedule(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	action := &actions.ScheduleTransfer{
		UserID:          req.UserID,
		FromAccountID:   req.FromAccountID,
		ToAccountNumber: strings.TrimSpace(req.ToAccountNumber),
		Amount:          req.Amount,
		ExecuteAt:       *req.ExecuteAt,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	return &TransferResult{Scheduled: true, ScheduledTransferID: action.ID}, nil
}

// recordFraudBlock commits the audit row on its own; the blocked transfer was
// rolled back. A failure here is logged and does not change the response.
func (s *TransferService) recordFraudBlock(ctx context.Context, req TransferRequest, verdict fraud.Verdict) {
	fields := logrus.Fields{
		"userID":            req.UserID.String(),
		"fromAccountID":     req.FromAccountID.String(),
		"destinationNumber": req.ToAccountNumber,
		"amount":            req.Amount.String(),
		"reason":            verdict.Reason,
	}
	s.logger.WithFields(fields).Warn("TransferService.Transfer.fraud blocked")

	block := &actions.RecordFraudBlock{
		AccountID:         req.FromAccountID,
		DestinationNumber: req.ToAccountNumber,
		Amount:            req.Amount,
		Reason:            verdict.Reason,
	}
	if err := s.operator.Process(ctx, block); err != nil {
		s.logger.WithFields(fields).WithError(err).Error("TransferService.Transfer.record fraud block")
	}
}

func optionalString(s string) null.Val[string] {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.Val[string]{}
	}
	return null.From(s)
}
