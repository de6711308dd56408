package server

import (
	"net/http"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type rentIncreaseRequest struct {
	LeaseID        string          `json:"leaseId"`
	PreviousAmount decimal.Decimal `json:"previousAmount"`
	NewAmount      decimal.Decimal `json:"newAmount"`
	EffectiveDate  ledger.Date     `json:"effectiveDate"`
	NoticeDate     ledger.Date     `json:"noticeDate"`
	Notes          string          `json:"notes"`
}

func (s *Server) createRentIncrease(w http.ResponseWriter, r *http.Request) {
	var req rentIncreaseRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	inc := &ledger.RentIncrease{
		LeaseID:        req.LeaseID,
		PreviousAmount: req.PreviousAmount,
		NewAmount:      req.NewAmount,
		EffectiveDate:  req.EffectiveDate,
		NoticeDate:     req.NoticeDate,
		Notes:          req.Notes,
	}
	if err := s.svc.CreateRentIncrease(r.Context(), inc); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inc)
}

type applyPendingRequest struct {
	Today ledger.Date `json:"today"`
}

func (s *Server) applyPending(w http.ResponseWriter, r *http.Request) {
	var req applyPendingRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	result, err := s.svc.ApplyPending(r.Context(), req.Today, actorFrom(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) getRentIncrease(w http.ResponseWriter, r *http.Request) {
	inc, err := s.svc.GetRentIncrease(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inc)
}

func (s *Server) cancelRentIncrease(w http.ResponseWriter, r *http.Request) {
	inc, err := s.svc.CancelRentIncrease(r.Context(), chi.URLParam(r, "id"), actorFrom(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inc)
}
