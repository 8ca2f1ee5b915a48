package dashboard

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bank-server/internal/handlers/v1/account"
	"github.com/carson-networks/bank-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/service"
	"github.com/carson-networks/bank-server/internal/session"
)

type CategoryTotal struct {
	Category string `json:"category" doc:"Category name, \"other\" when unset"`
	Total    string `json:"total" doc:"Sum of absolute amounts"`
}

type DashboardResponse struct {
	Accounts   []account.Account         `json:"accounts"`
	Recent     []transaction.Transaction `json:"recent" doc:"Latest ten transactions, newest first"`
	Categories []CategoryTotal           `json:"categories" doc:"Totals over the recent transactions"`
	Settled    int                       `json:"settled" doc:"Scheduled transfers completed by this view"`
}

type DashboardOutput struct {
	Body DashboardResponse
}

type dashboardBuilder interface {
	Dashboard(ctx context.Context, userID uuid.UUID, now time.Time) (*service.Dashboard, error)
}

// Handler handles GET /dashboard.
type Handler struct {
	DashboardService dashboardBuilder
	Now              func() time.Time
}

func NewHandler(svc dashboardBuilder) *Handler {
	return &Handler{DashboardService: svc, Now: time.Now}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "dashboard",
		Method:      http.MethodGet,
		Path:        "/dashboard",
		Summary:     "Dashboard",
		Description: "Settles due scheduled transfers, then returns balances, recent activity and category totals.",
		Tags:        []string{"Dashboard"},
	}, h.handle)
}

func (h *Handler) handle(ctx context.Context, _ *struct{}) (*DashboardOutput, error) {
	userID, err := session.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	var dashboard *service.Dashboard
	err = logging.Timed(ctx, "dashboardMs", func() error {
		var err error
		dashboard, err = h.DashboardService.Dashboard(ctx, userID, h.Now())
		return err
	})
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to load dashboard", err)
	}

	resp := DashboardResponse{
		Accounts:   account.FromService(dashboard.Accounts),
		Recent:     transaction.FromService(dashboard.Recent),
		Categories: make([]CategoryTotal, 0, len(dashboard.Categories)),
	}
	for category, total := range dashboard.Categories {
		resp.Categories = append(resp.Categories, CategoryTotal{Category: category, Total: total.StringFixed(2)})
	}
	sort.Slice(resp.Categories, func(i, j int) bool {
		return resp.Categories[i].Category < resp.Categories[j].Category
	})
	if dashboard.Sweep != nil {
		resp.Settled = dashboard.Sweep.Processed
	}

	return &DashboardOutput{Body: resp}, nil
}
