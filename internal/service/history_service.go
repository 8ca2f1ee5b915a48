package service

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bank-server/internal/storage"
	"github.com/carson-networks/bank-server/internal/storage/sqlconfig"
)

var csvHeader = []string{"Date", "Account", "Type", "Amount", "Category", "Note"}

// HistoryService reads a user's transactions across all of their accounts.
type HistoryService struct {
	storage *storage.Storage
}

func NewHistoryService(store *storage.Storage) *HistoryService {
	return &HistoryService{storage: store}
}

// List returns the newest limit transactions, or all of them when limit is 0.
func (s *HistoryService) List(ctx context.Context, userID uuid.UUID, limit int) ([]Transaction, error) {
	rows, err := s.storage.Transactions.ListByUser(ctx, &sqlconfig.TransactionFilter{
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	txs := make([]Transaction, len(rows))
	for i, row := range rows {
		txs[i] = transactionFromStorage(row)
	}
	return txs, nil
}

// WriteCSV writes the full history, newest first, one row per transaction.
func (s *HistoryService) WriteCSV(ctx context.Context, userID uuid.UUID, out io.Writer) error {
	txs, err := s.List(ctx, userID, 0)
	if err != nil {
		return err
	}
	return writeTransactionsCSV(out, txs)
}

func writeTransactionsCSV(out io.Writer, txs []Transaction) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, tx := range txs {
		record := []string{
			tx.CreatedAt.UTC().Format(time.RFC3339),
			tx.AccountNumber,
			tx.Type,
			tx.Amount.StringFixed(2),
			tx.Category,
			tx.Note,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
