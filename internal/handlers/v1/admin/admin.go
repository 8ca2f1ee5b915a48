package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bank-server/internal/service"
	"github.com/carson-networks/bank-server/internal/session"
)

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
	CreatedAt string `json:"createdAt"`
}

type ListUsersOutput struct {
	Body struct {
		Users []User `json:"users"`
	}
}

type userLister interface {
	ListUsers(ctx context.Context, requesterID uuid.UUID) ([]service.User, error)
}

// Handler handles GET /admin.
type Handler struct {
	AdminService userLister
}

func NewHandler(svc userLister) *Handler {
	return &Handler{AdminService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "admin-list-users",
		Method:      http.MethodGet,
		Path:        "/admin",
		Summary:     "List users",
		Description: "Lists every user. Admins only.",
		Tags:        []string{"Admin"},
	}, h.handle)
}

func (h *Handler) handle(ctx context.Context, _ *struct{}) (*ListUsersOutput, error) {
	userID, err := session.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	users, err := h.AdminService.ListUsers(ctx, userID)
	if errors.Is(err, service.ErrNotAdmin) {
		return nil, huma.NewError(http.StatusForbidden, err.Error())
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list users", err)
	}

	out := &ListUsersOutput{}
	out.Body.Users = make([]User, len(users))
	for i, u := range users {
		out.Body.Users[i] = User{
			ID:        u.ID.String(),
			Name:      u.Name,
			Email:     u.Email,
			IsAdmin:   u.IsAdmin,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		}
	}
	return out, nil
}
