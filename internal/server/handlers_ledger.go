package server

import (
	"net/http"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.svc.Accounts(r.Context(), ledger.AccountType(r.URL.Query().Get("type")))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) accountDrillDown(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRangeParams(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	dd, err := s.svc.AccountDrillDown(r.Context(), chi.URLParam(r, "code"), start, end)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dd)
}

type balanceResponse struct {
	LeaseID string          `json:"leaseId"`
	Balance decimal.Decimal `json:"balance"`
}

func (s *Server) leaseBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	bal, err := s.svc.BalanceOf(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{LeaseID: id, Balance: bal})
}

func (s *Server) leaseAging(w http.ResponseWriter, r *http.Request) {
	asOf, err := dateParam(r, "asOf")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	aging, err := s.svc.AgingOf(r.Context(), chi.URLParam(r, "id"), asOf)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, aging)
}

func (s *Server) leaseSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := s.svc.ListSchedules(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schedules)
}

func (s *Server) recentEntries(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	entries, err := s.svc.RecentEntries(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := s.svc.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}
