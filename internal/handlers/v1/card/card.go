package card

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bank-server/internal/service"
	"github.com/carson-networks/bank-server/internal/session"
)

// VirtualCard is the API response model for a card.
type VirtualCard struct {
	ID     string `json:"id" doc:"Card UUID"`
	Number string `json:"number" doc:"Card number, four groups of four digits"`
	Expiry string `json:"expiry" doc:"MM/YY"`
	CVV    string `json:"cvv"`
}

func fromService(c service.VirtualCard) VirtualCard {
	return VirtualCard{ID: c.ID.String(), Number: c.Number, Expiry: c.Expiry, CVV: c.CVV}
}

type ListCardsOutput struct {
	Body struct {
		Cards []VirtualCard `json:"cards"`
	}
}

type CreateCardOutput struct {
	Body VirtualCard
}

type cardService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]service.VirtualCard, error)
	Create(ctx context.Context, ownerID uuid.UUID) (*service.VirtualCard, error)
}

// Handler handles GET and POST /virtual-card.
type Handler struct {
	CardService cardService
}

func NewHandler(svc cardService) *Handler {
	return &Handler{CardService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-virtual-cards",
		Method:      http.MethodGet,
		Path:        "/virtual-card",
		Summary:     "List virtual cards",
		Tags:        []string{"Cards"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID:   "create-virtual-card",
		Method:        http.MethodPost,
		Path:          "/virtual-card",
		Summary:       "Create virtual card",
		Tags:          []string{"Cards"},
		DefaultStatus: http.StatusCreated,
	}, h.create)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*ListCardsOutput, error) {
	userID, err := session.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	cards, err := h.CardService.List(ctx, userID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list cards", err)
	}

	out := &ListCardsOutput{}
	out.Body.Cards = make([]VirtualCard, len(cards))
	for i, c := range cards {
		out.Body.Cards[i] = fromService(c)
	}
	return out, nil
}

func (h *Handler) create(ctx context.Context, _ *struct{}) (*CreateCardOutput, error) {
	userID, err := session.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	c, err := h.CardService.Create(ctx, userID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create card", err)
	}
	return &CreateCardOutput{Body: fromService(*c)}, nil
}
