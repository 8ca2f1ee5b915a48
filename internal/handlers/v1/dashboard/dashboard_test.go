package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/bank-server/internal/handlers/v1/handlertest"
	"github.com/carson-networks/bank-server/internal/service"
)

type mockDashboardService struct {
	mock.Mock
}

func (m *mockDashboardService) Dashboard(ctx context.Context, userID uuid.UUID, now time.Time) (*service.Dashboard, error) {
	args := m.Called(ctx, userID, now)
	d, _ := args.Get(0).(*service.Dashboard)
	return d, args.Error(1)
}

func TestHTTP_Dashboard_Success(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mockSvc := new(mockDashboardService)
	mockSvc.On("Dashboard", mock.Anything, userID, now).Return(&service.Dashboard{
		Accounts: []service.Account{{ID: uuid.Must(uuid.NewV4()), Number: "AC0000000001", Balance: decimal.NewFromInt(900), Currency: "INR"}},
		Recent:   []service.Transaction{{ID: uuid.Must(uuid.NewV4()), Amount: decimal.NewFromInt(-100), Type: "transfer", Category: "food"}},
		Categories: map[string]decimal.Decimal{
			"other": decimal.NewFromInt(5),
			"food":  decimal.NewFromInt(100),
		},
		Sweep: &service.SweepReport{Processed: 2},
	}, nil)

	h := NewHandler(mockSvc)
	h.Now = func() time.Time { return now }
	resp := handlertest.NewAuthedAPI(t, userID, h).Get("/dashboard")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body DashboardResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Accounts, 1)
	assert.Len(t, body.Recent, 1)
	assert.Equal(t, []CategoryTotal{{Category: "food", Total: "100.00"}, {Category: "other", Total: "5.00"}}, body.Categories)
	assert.Equal(t, 2, body.Settled)
}

func TestHTTP_Dashboard_LoggedOut(t *testing.T) {
	mockSvc := new(mockDashboardService)

	resp := handlertest.NewAPI(t, NewHandler(mockSvc)).Get("/dashboard")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestHTTP_Dashboard_ServiceError(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockSvc := new(mockDashboardService)
	mockSvc.On("Dashboard", mock.Anything, userID, mock.Anything).Return(nil, errors.New("database unavailable"))

	resp := handlertest.NewAuthedAPI(t, userID, NewHandler(mockSvc)).Get("/dashboard")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
