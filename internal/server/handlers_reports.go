package server

import (
	"net/http"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/accounting"
)

func (s *Server) tenantBalances(w http.ResponseWriter, r *http.Request) {
	tb, err := s.svc.TenantBalances(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tb)
}

func (s *Server) agingReport(w http.ResponseWriter, r *http.Request) {
	asOf, err := dateParam(r, "asOf")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	report, err := s.svc.AgingReport(r.Context(), asOf)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) profitLoss(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRangeParams(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	pl, err := s.svc.ProfitLoss(r.Context(), start, end)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pl)
}

func (s *Server) incomeBreakdown(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRangeParams(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	ib, err := s.svc.IncomeBreakdown(r.Context(), start, end)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ib)
}

func (s *Server) rentRoll(w http.ResponseWriter, r *http.Request) {
	rr, err := s.svc.RentRoll(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rr)
}

func (s *Server) transactionsReport(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRangeParams(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	q := r.URL.Query()
	report, err := s.svc.Transactions(r.Context(), accounting.TransactionFilter{
		StartDate:   start,
		EndDate:     end,
		AccountCode: q.Get("accountCode"),
		PropertyID:  q.Get("propertyId"),
		LeaseID:     q.Get("leaseId"),
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
