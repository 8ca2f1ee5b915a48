package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/bank-server/internal/handlers/v1/account"
	"github.com/carson-networks/bank-server/internal/handlers/v1/admin"
	"github.com/carson-networks/bank-server/internal/handlers/v1/auth"
	"github.com/carson-networks/bank-server/internal/handlers/v1/card"
	"github.com/carson-networks/bank-server/internal/handlers/v1/dashboard"
	"github.com/carson-networks/bank-server/internal/handlers/v1/index"
	"github.com/carson-networks/bank-server/internal/handlers/v1/scheduled"
	"github.com/carson-networks/bank-server/internal/handlers/v1/status"
	"github.com/carson-networks/bank-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/bank-server/internal/handlers/v1/transfer"
	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/service"
	"github.com/carson-networks/bank-server/internal/session"
	"github.com/carson-networks/bank-server/internal/storage"
)

const (
	Name    = "bank-server"
	Version = "1.0.0"
)

type Rest struct {
	Logger     *logrus.Logger
	Port       string
	Storage    *storage.Storage
	Service    *service.Service
	Sessions   *session.Manager
	RequireOTP bool
	SweepToken string
}

type registrar interface {
	Register(api huma.API)
}

// Routes builds the mux with every operation registered.
func (r *Rest) Routes() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage.DB)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig(Name, Version))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))
	api.UseMiddleware(r.Sessions.Middleware())

	handlers := []registrar{
		index.NewHandler(Name, Version),
		auth.NewRegisterHandler(r.Service.Auth),
		auth.NewLoginHandler(r.Service.Auth, r.Sessions, r.RequireOTP, r.Logger),
		auth.NewLogoutHandler(),
		dashboard.NewHandler(r.Service.Dashboard),
		account.NewListAccountsHandler(r.Service.Transfer),
		transfer.NewCreateTransferHandler(r.Service.Transfer),
		transaction.NewListTransactionsHandler(r.Service.History),
		transaction.NewExportTransactionsHandler(r.Service.History),
		card.NewHandler(r.Service.Cards),
		admin.NewHandler(r.Service.Admin),
		scheduled.NewHandler(r.Service.Sweep, r.SweepToken),
	}
	for _, h := range handlers {
		h.Register(api)
	}

	return exactRoot(mux)
}

// exactRoot stops the landing operation's "GET /" pattern from matching
// every unknown path.
func exactRoot(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if _, pattern := mux.Handler(req); pattern == "GET /" && req.URL.Path != "/" {
			http.NotFound(w, req)
			return
		}
		mux.ServeHTTP(w, req)
	})
}

// Serve blocks until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Routes(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
