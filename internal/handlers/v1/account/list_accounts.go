package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/service"
	"github.com/carson-networks/bank-server/internal/session"
)

// ListAccountsOutput is the Huma output for the transfer form's source accounts.
type ListAccountsOutput struct {
	Body struct {
		Accounts []Account `json:"accounts" doc:"Accounts the user can send from"`
	}
}

type accountLister interface {
	SourceAccounts(ctx context.Context, userID uuid.UUID) ([]service.Account, error)
}

// ListAccountsHandler handles GET /transfer.
type ListAccountsHandler struct {
	AccountService accountLister
}

func NewListAccountsHandler(svc accountLister) *ListAccountsHandler {
	return &ListAccountsHandler{AccountService: svc}
}

func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transfer-sources",
		Method:      http.MethodGet,
		Path:        "/transfer",
		Summary:     "List source accounts",
		Description: "Returns the current user's accounts for the transfer form.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *ListAccountsHandler) handle(ctx context.Context, _ *struct{}) (*ListAccountsOutput, error) {
	userID, err := session.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	var accounts []service.Account
	err = logging.Timed(ctx, "listAccountsMs", func() error {
		var err error
		accounts, err = h.AccountService.SourceAccounts(ctx, userID)
		return err
	})
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list accounts", err)
	}
	logging.AddData(ctx, "accountCount", len(accounts))

	out := &ListAccountsOutput{}
	out.Body.Accounts = FromService(accounts)
	return out, nil
}
