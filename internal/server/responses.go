package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/go-chi/chi/v5/middleware"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func mapError(err error) int {
	switch {
	case ledger.IsValidation(err):
		return http.StatusBadRequest
	case ledger.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrAlreadyPosted), errors.Is(err, ledger.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError maps a service error onto a response. Internal failures
// are logged with the request ID and reported without their cause.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapError(err)
	if status != http.StatusInternalServerError {
		resp := errorResponse{Error: err.Error()}
		var ve *ledger.ValidationError
		if errors.As(err, &ve) {
			resp.Field = ve.Field
		}
		writeJSON(w, status, resp)
		return
	}

	s.log.Error().Err(err).
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("path", r.URL.Path).
		Msg("request failed")
	msg := "internal server error"
	var pe *ledger.PostingError
	if errors.As(err, &pe) {
		msg = fmt.Sprintf("Failed to record %s", pe.Op)
	}
	writeError(w, status, msg)
}

// decodeJSON strictly decodes a request body; unknown fields are rejected.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return ledger.NewValidationError("", "invalid JSON: "+err.Error())
	}
	return nil
}

// decodeOptionalJSON is decodeJSON for endpoints whose body may be empty.
func decodeOptionalJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return ledger.NewValidationError("", "invalid JSON: "+err.Error())
	}
	return nil
}

func dateParam(r *http.Request, name string) (ledger.Date, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return ledger.Date{}, nil
	}
	d, err := ledger.ParseDate(v)
	if err != nil {
		return ledger.Date{}, ledger.NewValidationError(name, fmt.Sprintf("%s must be YYYY-MM-DD", name))
	}
	return d, nil
}

func dateRangeParams(r *http.Request) (ledger.Date, ledger.Date, error) {
	start, err := dateParam(r, "startDate")
	if err != nil {
		return start, ledger.Date{}, err
	}
	end, err := dateParam(r, "endDate")
	return start, end, err
}

func intParam(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ledger.NewValidationError(name, fmt.Sprintf("%s must be an integer", name))
	}
	return n, nil
}
