package scheduled

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/service"
)

const TokenHeader = "X-Sweep-Token"

type ProcessScheduledInput struct {
	Token string `header:"X-Sweep-Token" doc:"Must equal SWEEP_TOKEN when one is configured"`
}

type Outcome struct {
	ID     string `json:"id" doc:"Scheduled transfer UUID"`
	Status string `json:"status" enum:"completed,failed,skipped"`
	Reason string `json:"reason,omitempty"`
}

type ProcessScheduledResponse struct {
	Processed int       `json:"processed" doc:"Number of transfers completed"`
	Status    string    `json:"status"`
	Outcomes  []Outcome `json:"outcomes"`
}

type ProcessScheduledOutput struct {
	Body ProcessScheduledResponse
}

type sweeper interface {
	Sweep(ctx context.Context, now time.Time) (*service.SweepReport, error)
}

// Handler handles GET /process-scheduled. An empty Token leaves it open.
type Handler struct {
	SweepService sweeper
	Token        string
	Now          func() time.Time
}

func NewHandler(svc sweeper, token string) *Handler {
	return &Handler{SweepService: svc, Token: token, Now: time.Now}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "process-scheduled",
		Method:      http.MethodGet,
		Path:        "/process-scheduled",
		Summary:     "Run the scheduled transfer sweep",
		Description: "Settles every due scheduled transfer and reports per-item outcomes.",
		Tags:        []string{"Scheduled"},
	}, h.handle)
}

func (h *Handler) handle(ctx context.Context, input *ProcessScheduledInput) (*ProcessScheduledOutput, error) {
	if h.Token != "" && subtle.ConstantTimeCompare([]byte(input.Token), []byte(h.Token)) != 1 {
		return nil, huma.NewError(http.StatusUnauthorized, "missing or invalid "+TokenHeader)
	}

	report, err := h.SweepService.Sweep(ctx, h.Now())
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to process scheduled transfers", err)
	}
	logging.AddData(ctx, "processed", report.Processed)

	resp := ProcessScheduledResponse{
		Processed: report.Processed,
		Status:    "ok",
		Outcomes:  make([]Outcome, len(report.Outcomes)),
	}
	for i, o := range report.Outcomes {
		resp.Outcomes[i] = Outcome{
			ID:     o.ScheduledTransferID.String(),
			Status: string(o.Status),
			Reason: o.Reason,
		}
	}
	return &ProcessScheduledOutput{Body: resp}, nil
}
