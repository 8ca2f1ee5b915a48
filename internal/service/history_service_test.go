package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/bank-server/internal/storage/sqlconfig"
)

func makeHistoryRows() []*sqlconfig.Transaction {
	return []*sqlconfig.Transaction{
		{
			ID:            uuid.Must(uuid.NewV4()),
			AccountNumber: "AC0000000001",
			Amount:        decimal.RequireFromString("-40.5"),
			Type:          sqlconfig.TransactionTypeTransfer,
			Category:      null.From("food"),
			Note:          null.From("lunch, with team"),
			CreatedAt:     time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:            uuid.Must(uuid.NewV4()),
			AccountNumber: "AC0000000001",
			Amount:        decimal.RequireFromString("100"),
			Type:          sqlconfig.TransactionTypeScheduledTransfer,
			Note:          null.From("Scheduled from AC0000000009"),
			CreatedAt:     time.Date(2026, 1, 1, 8, 30, 0, 0, time.UTC),
		},
	}
}

func TestHistory_List(t *testing.T) {
	deps := newTestDeps(t)
	svc := NewHistoryService(deps.store)

	userID := uuid.Must(uuid.NewV4())
	deps.transactions.On("ListByUser", mock.Anything, &sqlconfig.TransactionFilter{UserID: userID}).Return(makeHistoryRows(), nil)

	txs, err := svc.List(context.Background(), userID, 0)

	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "food", txs[0].Category)
	assert.Equal(t, "", txs[1].Category)
}

func TestHistory_WriteCSV(t *testing.T) {
	deps := newTestDeps(t)
	svc := NewHistoryService(deps.store)

	userID := uuid.Must(uuid.NewV4())
	deps.transactions.On("ListByUser", mock.Anything, &sqlconfig.TransactionFilter{UserID: userID}).Return(makeHistoryRows(), nil)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(context.Background(), userID, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Date", "Account", "Type", "Amount", "Category", "Note"}, records[0])
	assert.Equal(t, []string{"2026-01-02T12:00:00Z", "AC0000000001", "transfer", "-40.50", "food", "lunch, with team"}, records[1])
	assert.Equal(t, []string{"2026-01-01T08:30:00Z", "AC0000000001", "scheduled_transfer", "100.00", "", "Scheduled from AC0000000009"}, records[2])
}

func TestHistory_WriteCSVEmpty(t *testing.T) {
	deps := newTestDeps(t)
	svc := NewHistoryService(deps.store)

	deps.transactions.On("ListByUser", mock.Anything, mock.Anything).Return([]*sqlconfig.Transaction{}, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(context.Background(), uuid.Must(uuid.NewV4()), &buf))
	assert.Equal(t, "Date,Account,Type,Amount,Category,Note\n", buf.String())
}
