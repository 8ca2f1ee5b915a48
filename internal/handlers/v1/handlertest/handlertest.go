// Package handlertest builds humatest APIs for handler tests.
package handlertest

import (
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bank-server/internal/session"
)

type registrar interface {
	Register(api huma.API)
}

// NewAPI registers handlers on a test API with no logged in user.
func NewAPI(t *testing.T, handlers ...registrar) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	for _, h := range handlers {
		h.Register(api)
	}
	return api
}

// NewAuthedAPI is NewAPI with userID logged in on every request.
func NewAuthedAPI(t *testing.T, userID uuid.UUID, handlers ...registrar) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
		next(session.Attach(ctx, &session.Session{UserID: userID}))
	})
	for _, h := range handlers {
		h.Register(api)
	}
	return api
}
