package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/bank-server/internal/session"
)

type LogoutOutput struct {
	SetCookie string `header:"Set-Cookie"`
	Body      struct {
		Status string `json:"status"`
	}
}

// LogoutHandler handles GET /logout.
type LogoutHandler struct{}

func NewLogoutHandler() *LogoutHandler {
	return &LogoutHandler{}
}

func (h *LogoutHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodGet,
		Path:        "/logout",
		Summary:     "Log out",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *LogoutHandler) handle(_ context.Context, _ *struct{}) (*LogoutOutput, error) {
	cookie := session.ClearCookie()
	out := &LogoutOutput{SetCookie: cookie.String()}
	out.Body.Status = "logged out"
	return out, nil
}
