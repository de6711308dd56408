package server

import (
	"net/http"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/accounting"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/shopspring/decimal"
)

type paymentRequest struct {
	LeaseID     string          `json:"leaseId"`
	Amount      decimal.Decimal `json:"amount"`
	Date        ledger.Date     `json:"date"`
	Description string          `json:"description"`
}

type chargeRequest struct {
	LeaseID     string          `json:"leaseId"`
	Amount      decimal.Decimal `json:"amount"`
	AccountCode string          `json:"accountCode"`
	Date        ledger.Date     `json:"date"`
	Description string          `json:"description"`
}

type expenseRequest struct {
	AccountCode string          `json:"accountCode"`
	Amount      decimal.Decimal `json:"amount"`
	Date        ledger.Date     `json:"date"`
	Description string          `json:"description"`
	PropertyID  string          `json:"propertyId"`
	UnitID      string          `json:"unitId"`
	VendorID    string          `json:"vendorId"`
	WorkOrderID string          `json:"workOrderId"`
}

// postingResponse splits the header from its entries.
type postingResponse struct {
	Transaction ledger.Transaction `json:"transaction"`
	Entries     []ledger.Entry     `json:"entries"`
}

func (s *Server) writePosted(w http.ResponseWriter, r *http.Request, txn *ledger.Transaction, err error) {
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	resp := postingResponse{Transaction: *txn, Entries: txn.Entries}
	resp.Transaction.Entries = nil
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	txn, err := s.svc.RecordPayment(r.Context(), actorFrom(r), accounting.PaymentInput{
		LeaseID:     req.LeaseID,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	})
	s.writePosted(w, r, txn, err)
}

func (s *Server) recordCharge(w http.ResponseWriter, r *http.Request) {
	var req chargeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	txn, err := s.svc.RecordCharge(r.Context(), actorFrom(r), accounting.ChargeInput{
		LeaseID:     req.LeaseID,
		Amount:      req.Amount,
		AccountCode: req.AccountCode,
		Date:        req.Date,
		Description: req.Description,
	})
	s.writePosted(w, r, txn, err)
}

func (s *Server) recordExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	txn, err := s.svc.RecordExpense(r.Context(), actorFrom(r), accounting.ExpenseInput{
		AccountCode: req.AccountCode,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
		Linkage: ledger.Linkage{
			PropertyID:  req.PropertyID,
			UnitID:      req.UnitID,
			VendorID:    req.VendorID,
			WorkOrderID: req.WorkOrderID,
		},
	})
	s.writePosted(w, r, txn, err)
}

func (s *Server) recordDeposit(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	txn, err := s.svc.RecordDeposit(r.Context(), actorFrom(r), accounting.DepositInput{
		LeaseID:     req.LeaseID,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	})
	s.writePosted(w, r, txn, err)
}

func (s *Server) recordCredit(w http.ResponseWriter, r *http.Request) {
	var req chargeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	txn, err := s.svc.RecordCredit(r.Context(), actorFrom(r), accounting.CreditInput{
		LeaseID:     req.LeaseID,
		Amount:      req.Amount,
		AccountCode: req.AccountCode,
		Date:        req.Date,
		Description: req.Description,
	})
	s.writePosted(w, r, txn, err)
}
