package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/bank-server/internal/operator/actions"
	"github.com/carson-networks/bank-server/internal/service"
)

// RegisterBody is the request body for sign-up.
type RegisterBody struct {
	Name     string `json:"name" required:"true" minLength:"1" maxLength:"120" doc:"Display name"`
	Email    string `json:"email" required:"true" format:"email" maxLength:"254" doc:"Login email, case-insensitive"`
	Password string `json:"password" required:"true" minLength:"6" maxLength:"72" doc:"Password"`
}

type RegisterInput struct {
	Body RegisterBody
}

type RegisterResponse struct {
	ID            string `json:"id" doc:"User UUID"`
	AccountNumber string `json:"accountNumber" doc:"Number of the account opened at sign-up"`
}

type RegisterOutput struct {
	Body RegisterResponse
}

type registerer interface {
	Register(ctx context.Context, name, email, password string) (*service.Registration, error)
}

// RegisterHandler handles POST /register.
type RegisterHandler struct {
	AuthService registerer
}

func NewRegisterHandler(svc registerer) *RegisterHandler {
	return &RegisterHandler{AuthService: svc}
}

func (h *RegisterHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/register",
		Summary:       "Register",
		Description:   "Creates a user and opens their first account.",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *RegisterHandler) handle(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	reg, err := h.AuthService.Register(ctx, input.Body.Name, input.Body.Email, input.Body.Password)
	if errors.Is(err, actions.ErrDuplicateEmail) {
		return nil, huma.NewError(http.StatusConflict, err.Error())
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to register", err)
	}

	return &RegisterOutput{Body: RegisterResponse{
		ID:            reg.User.ID.String(),
		AccountNumber: reg.AccountNumber,
	}}, nil
}
