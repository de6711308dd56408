package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/accounting"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Server struct {
	svc          *accounting.Service
	router       chi.Router
	addr         string
	defaultActor ledger.Actor
	log          zerolog.Logger
}

func New(svc *accounting.Service, addr string, defaultActor ledger.Actor) *Server {
	if defaultActor == "" {
		defaultActor = ledger.SystemActor
	}
	r := chi.NewRouter()
	s := &Server{
		svc:          svc,
		router:       r,
		addr:         addr,
		defaultActor: defaultActor,
		log:          logger.WithComponent("server"),
	}

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.actor)

	r.Route("/api/v1", func(r chi.Router) {
		// Postings
		r.Post("/payments", s.recordPayment)
		r.Post("/charges", s.recordCharge)
		r.Post("/expenses", s.recordExpense)
		r.Post("/deposits", s.recordDeposit)
		r.Post("/credits", s.recordCredit)

		// Chart of accounts
		r.Get("/accounts", s.listAccounts)
		r.Get("/accounts/{code}/drilldown", s.accountDrillDown)

		// Leases
		r.Get("/leases/{id}/balance", s.leaseBalance)
		r.Get("/leases/{id}/aging", s.leaseAging)
		r.Get("/leases/{id}/scheduled-charges", s.leaseSchedules)

		// Ledger
		r.Get("/ledger", s.recentEntries)
		r.Get("/transactions/{id}", s.getTransaction)

		// Reports
		r.Get("/reports/tenant-balances", s.tenantBalances)
		r.Get("/reports/aging", s.agingReport)
		r.Get("/reports/profit-loss", s.profitLoss)
		r.Get("/reports/income-breakdown", s.incomeBreakdown)
		r.Get("/reports/rent-roll", s.rentRoll)
		r.Get("/reports/transactions", s.transactionsReport)

		// Scheduled charges
		r.Post("/scheduled-charges", s.createSchedule)
		r.Get("/scheduled-charges/pending", s.pendingCharges)
		r.Post("/scheduled-charges/post-due", s.postDue)
		r.Post("/scheduled-charges/{id}/end", s.endSchedule)

		// Rent increases
		r.Post("/rent-increases", s.createRentIncrease)
		r.Post("/rent-increases/apply-pending", s.applyPending)
		r.Get("/rent-increases/{id}", s.getRentIncrease)
		r.Post("/rent-increases/{id}/cancel", s.cancelRentIncrease)
	})

	return s
}

func (s *Server) httpServer() *http.Server {
	return &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests for up to ten seconds.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := s.httpServer()
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("pmsledger server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}
