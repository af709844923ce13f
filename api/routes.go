package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/fintrack-server/internal/handlers/v1/account"
	"github.com/carson-networks/fintrack-server/internal/handlers/v1/recurring"
	"github.com/carson-networks/fintrack-server/internal/handlers/v1/retirement"
	"github.com/carson-networks/fintrack-server/internal/handlers/v1/status"
	"github.com/carson-networks/fintrack-server/internal/handlers/v1/summary"
	"github.com/carson-networks/fintrack-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/fintrack-server/internal/logging"
	"github.com/carson-networks/fintrack-server/internal/operator"
	"github.com/carson-networks/fintrack-server/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger         *logrus.Logger
	Addr           string
	AllowedOrigins []string
	Service        *service.Service
	Operator       *operator.OperatorDelegator
}

type registrar interface {
	Register(api huma.API)
}

// Router builds the HTTP handler: CORS, the plain /status probe and the
// huma v1 API.
func (r *Rest) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: r.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-User-ID"},
		MaxAge:         300,
	}))

	statusHandler := status.NewHandler(r.Operator)
	router.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humachi.New(router, huma.DefaultConfig("fintrack-server", "1.0.0"))
	api.UseMiddleware(logging.Middleware(r.Logger))

	svc := r.Service
	for _, h := range []registrar{
		transaction.NewCreateTransactionHandler(svc.Transaction),
		transaction.NewListTransactionsHandler(svc.Transaction),
		transaction.NewGetTransactionHandler(svc.Transaction),
		transaction.NewUpdateTransactionHandler(svc.Transaction),
		transaction.NewDeleteTransactionHandler(svc.Transaction),
		transaction.NewOccurrencesHandler(svc.Transaction),
		summary.NewSummaryHandler(svc.Transaction),
		recurring.NewProcessRecurringHandler(svc.Recurring),
		account.NewCreateAccountHandler(svc.Account),
		account.NewListAccountsHandler(svc.Account),
		account.NewGetAccountHandler(svc.Account),
		account.NewUpdateAccountHandler(svc.Account),
		account.NewDeleteAccountHandler(svc.Account),
		account.NewSetDefaultAccountHandler(svc.Account),
		retirement.NewSaveGoalHandler(svc.Retirement),
		retirement.NewGoalHandler(svc.Retirement),
		retirement.NewProjectionHandler(svc.Retirement),
	} {
		h.Register(api)
	}

	return router
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              r.Addr,
		Handler:           r.Router(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("addr", r.Addr).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
