package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/bank-server/internal/fraud"
	"github.com/carson-networks/bank-server/internal/operator/actions"
	"github.com/carson-networks/bank-server/internal/storage"
)

// actionProcessor runs an action in its own unit of work.
// *operator.OperatorDelegator satisfies it.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Options tunes the services. Zero values fall back to defaults.
type Options struct {
	Logger          *logrus.Logger
	Fraud           fraud.Checker
	IsAdminEmail    func(email string) bool
	StartingBalance decimal.Decimal
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	if o.Fraud == nil {
		o.Fraud = fraud.NewThresholdRule(fraud.DefaultThreshold)
	}
	if o.IsAdminEmail == nil {
		o.IsAdminEmail = func(string) bool { return false }
	}
	if o.StartingBalance.IsZero() {
		o.StartingBalance = actions.DefaultStartingBalance
	}
	return o
}

// Service holds all business logic services.
type Service struct {
	Auth      *AuthService
	Transfer  *TransferService
	Sweep     *SweepService
	Dashboard *DashboardService
	History   *HistoryService
	Cards     *CardService
	Admin     *AdminService
}

// NewService wires every service to the read storage and the operator.
func NewService(store *storage.Storage, op actionProcessor, opts Options) *Service {
	opts = opts.withDefaults()
	sweep := NewSweepService(store, op, opts.Logger)
	history := NewHistoryService(store)

	return &Service{
		Auth:      NewAuthService(store, op, opts),
		Transfer:  NewTransferService(store, op, opts),
		Sweep:     sweep,
		Dashboard: NewDashboardService(store, sweep, history, opts.Logger),
		History:   history,
		Cards:     NewCardService(store, op),
		Admin:     NewAdminService(store),
	}
}
