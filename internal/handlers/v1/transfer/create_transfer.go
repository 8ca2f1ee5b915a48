package transfer

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/operator/actions"
	"github.com/carson-networks/bank-server/internal/service"
	"github.com/carson-networks/bank-server/internal/session"
)

// CreateTransferBody is the request body for a transfer.
type CreateTransferBody struct {
	FromAccount     string `json:"fromAccount" required:"true" format:"uuid" doc:"Source account UUID"`
	ToAccountNumber string `json:"toAccountNumber" required:"true" minLength:"1" doc:"Destination account number"`
	Amount          string `json:"amount" required:"true" doc:"Positive decimal amount"`
	Note            string `json:"note,omitempty" doc:"Optional note for the debit leg"`
	Category        string `json:"category,omitempty" doc:"Optional category"`
	ScheduleDate    string `json:"scheduleDate,omitempty" doc:"ISO-8601 date or date-time; schedules the transfer instead of running it now"`
}

// CreateTransferInput is the Huma input for a transfer.
type CreateTransferInput struct {
	Body CreateTransferBody
}

type CreateTransferResponse struct {
	Status              string `json:"status" enum:"completed,scheduled" doc:"What happened to the transfer"`
	Balance             string `json:"balance,omitempty" doc:"Source balance after an immediate transfer"`
	ScheduledTransferID string `json:"scheduledTransferID,omitempty" doc:"UUID of the scheduled transfer"`
}

// CreateTransferOutput is the Huma output for a transfer.
type CreateTransferOutput struct {
	Status int
	Body   CreateTransferResponse
}

type transferer interface {
	Transfer(ctx context.Context, req service.TransferRequest) (*service.TransferResult, error)
}

// CreateTransferHandler handles POST /transfer.
type CreateTransferHandler struct {
	TransferService transferer
}

func NewCreateTransferHandler(svc transferer) *CreateTransferHandler {
	return &CreateTransferHandler{TransferService: svc}
}

func (h *CreateTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transfer",
		Method:        http.MethodPost,
		Path:          "/transfer",
		Summary:       "Create transfer",
		Description:   "Moves money to another account now, or schedules it when scheduleDate is set.",
		Tags:          []string{"Transfers"},
		DefaultStatus: http.StatusOK,
	}, h.handle)
}

var scheduleLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

// parseScheduleDate accepts ISO-8601 with or without time and zone. Values
// without a zone are UTC.
func parseScheduleDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	var lastErr error
	for _, layout := range scheduleLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return &parsed, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// parseCreateTransferInput parses and validates the API input.
func parseCreateTransferInput(userID uuid.UUID, input *CreateTransferInput) (service.TransferRequest, error) {
	fromAccountID, err := uuid.FromString(input.Body.FromAccount)
	if err != nil {
		return service.TransferRequest{}, huma.NewError(http.StatusBadRequest, "invalid fromAccount", err)
	}

	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return service.TransferRequest{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	if err := actions.ValidateAmount(amount); err != nil {
		return service.TransferRequest{}, huma.NewError(http.StatusBadRequest, err.Error())
	}

	executeAt, err := parseScheduleDate(input.Body.ScheduleDate)
	if err != nil {
		return service.TransferRequest{}, huma.NewError(http.StatusBadRequest, "invalid scheduleDate", err)
	}

	return service.TransferRequest{
		UserID:          userID,
		FromAccountID:   fromAccountID,
		ToAccountNumber: input.Body.ToAccountNumber,
		Amount:          amount,
		Note:            input.Body.Note,
		Category:        input.Body.Category,
		ExecuteAt:       executeAt,
	}, nil
}

func (h *CreateTransferHandler) handle(ctx context.Context, input *CreateTransferInput) (*CreateTransferOutput, error) {
	userID, err := session.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	req, err := parseCreateTransferInput(userID, input)
	if err != nil {
		return nil, err
	}
	logging.AddData(ctx, "scheduled", req.ExecuteAt != nil)

	var result *service.TransferResult
	err = logging.Timed(ctx, "transferMs", func() error {
		var err error
		result, err = h.TransferService.Transfer(ctx, req)
		return err
	})
	if err != nil {
		return nil, transferError(err)
	}

	if result.Scheduled {
		return &CreateTransferOutput{
			Status: http.StatusCreated,
			Body: CreateTransferResponse{
				Status:              "scheduled",
				ScheduledTransferID: result.ScheduledTransferID.String(),
			},
		}, nil
	}

	return &CreateTransferOutput{
		Status: http.StatusOK,
		Body: CreateTransferResponse{
			Status:  "completed",
			Balance: result.SourceBalance.StringFixed(2),
		},
	}, nil
}

// transferError maps domain errors to problem responses.
func transferError(err error) error {
	switch {
	case errors.Is(err, actions.ErrInvalidAmount), errors.Is(err, actions.ErrSameAccount):
		return huma.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, actions.ErrDestinationNotFound), errors.Is(err, actions.ErrSourceNotFound):
		return huma.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, actions.ErrAccountNotOwned):
		return huma.NewError(http.StatusForbidden, err.Error())
	case errors.Is(err, actions.ErrInsufficientFunds):
		return huma.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, actions.ErrFraudBlocked):
		return huma.NewError(http.StatusUnprocessableEntity, actions.ErrFraudBlocked.Error())
	default:
		return huma.NewError(http.StatusInternalServerError, "failed to transfer", err)
	}
}
