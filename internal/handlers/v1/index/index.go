package index

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type IndexOutput struct {
	Body struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
}

// Handler handles GET /.
type Handler struct {
	Name    string
	Version string
}

func NewHandler(name, version string) *Handler {
	return &Handler{Name: name, Version: version}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "index",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Landing",
		Tags:        []string{"Meta"},
	}, h.handle)
}

func (h *Handler) handle(context.Context, *struct{}) (*IndexOutput, error) {
	out := &IndexOutput{}
	out.Body.Name = h.Name
	out.Body.Version = h.Version
	return out, nil
}
