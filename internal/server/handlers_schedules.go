package server

import (
	"net/http"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type scheduleRequest struct {
	LeaseID     string          `json:"leaseId"`
	AccountCode string          `json:"accountCode"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	DayOfMonth  int             `json:"dayOfMonth"`
	StartDate   ledger.Date     `json:"startDate"`
	EndDate     ledger.Date     `json:"endDate"`
}

func (s *Server) createSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	c := &ledger.ScheduledCharge{
		LeaseID:     req.LeaseID,
		AccountCode: req.AccountCode,
		Amount:      req.Amount,
		Description: req.Description,
		DayOfMonth:  req.DayOfMonth,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := s.svc.CreateSchedule(r.Context(), c); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) pendingCharges(w http.ResponseWriter, r *http.Request) {
	asOf, err := dateParam(r, "asOf")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	pending, err := s.svc.FindPending(r.Context(), asOf)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

type postDueRequest struct {
	AsOf ledger.Date `json:"asOf"`
}

func (s *Server) postDue(w http.ResponseWriter, r *http.Request) {
	var req postDueRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	result, err := s.svc.PostDue(r.Context(), req.AsOf, actorFrom(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type endScheduleRequest struct {
	EndDate ledger.Date `json:"endDate"`
}

func (s *Server) endSchedule(w http.ResponseWriter, r *http.Request) {
	var req endScheduleRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	c, err := s.svc.EndSchedule(r.Context(), chi.URLParam(r, "id"), req.EndDate)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
