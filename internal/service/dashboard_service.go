package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/storage"
)

const (
	recentTransactionLimit = 10
	uncategorized          = "other"
)

type Dashboard struct {
	Accounts   []Account
	Recent     []Transaction
	Categories map[string]decimal.Decimal
	Sweep      *SweepReport
}

// DashboardService builds the overview page. Viewing it also runs the sweep.
type DashboardService struct {
	storage *storage.Storage
	sweep   *SweepService
	history *HistoryService
	logger  *logrus.Logger
}

func NewDashboardService(store *storage.Storage, sweep *SweepService, history *HistoryService, logger *logrus.Logger) *DashboardService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &DashboardService{
		storage: store,
		sweep:   sweep,
		history: history,
		logger:  logger,
	}
}

func (s *DashboardService) Dashboard(ctx context.Context, userID uuid.UUID, now time.Time) (*Dashboard, error) {
	var report *SweepReport
	err := logging.Timed(ctx, "sweepMs", func() error {
		var err error
		report, err = s.sweep.Sweep(ctx, now)
		return err
	})
	if err != nil {
		// The page still renders; the next view retries the sweep.
		s.logger.WithError(err).Error("DashboardService.Dashboard.sweep error")
	}

	rows, err := s.storage.Accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	accounts := make([]Account, len(rows))
	for i, row := range rows {
		accounts[i] = accountFromStorage(row)
	}

	recent, err := s.history.List(ctx, userID, recentTransactionLimit)
	if err != nil {
		return nil, err
	}
	logging.AddData(ctx, "recentCount", len(recent))

	return &Dashboard{
		Accounts:   accounts,
		Recent:     recent,
		Categories: categoryTotals(recent),
		Sweep:      report,
	}, nil
}

// categoryTotals sums absolute amounts per category; blank categories count as "other".
func categoryTotals(txs []Transaction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		category := tx.Category
		if category == "" {
			category = uncategorized
		}
		totals[category] = totals[category].Add(tx.Amount.Abs())
	}
	return totals
}
