package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/accounting"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/logger"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()
	logger.Discard()
	st, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	require.NoError(t, st.UpsertProperty(ctx, &ledger.Property{ID: "P1", Name: "Maple Court"}))
	require.NoError(t, st.UpsertUnit(ctx, &ledger.Unit{ID: "U1", PropertyID: "P1", Name: "1A", MarketRent: decimal.NewFromInt(1500)}))
	require.NoError(t, st.UpsertLease(ctx, &ledger.Lease{
		ID:                "L1",
		UnitID:            "U1",
		TenantName:        "Dana Ortiz",
		MonthlyRentAmount: decimal.NewFromInt(1500),
		ChargeDay:         1,
		StartDate:         ledger.MustParseDate("2026-01-01"),
		Status:            ledger.LeaseActive,
	}))

	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	svc := accounting.New(st, accounting.WithClock(func() time.Time { return now }))
	return New(svc, ":0", "api").Handler(), st
}

func do(t *testing.T, h http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestChargeThenPaymentSettlesBalance(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/charges", map[string]any{
		"leaseId": "L1", "amount": "1500.00", "accountCode": "4000", "date": "2026-03-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	posted := decode[postingResponse](t, rec)
	assert.Equal(t, ledger.KindCharge, posted.Transaction.Kind)
	require.Len(t, posted.Entries, 2)
	assert.Empty(t, posted.Transaction.Entries)

	rec = do(t, h, http.MethodGet, "/api/v1/leases/L1/balance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	bal := decode[balanceResponse](t, rec)
	assert.True(t, bal.Balance.Equal(decimal.NewFromInt(1500)), bal.Balance.String())

	rec = do(t, h, http.MethodPost, "/api/v1/payments", map[string]any{
		"leaseId": "L1", "amount": "1500", "date": "2026-03-05",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/leases/L1/balance", nil)
	bal = decode[balanceResponse](t, rec)
	assert.Equal(t, "L1", bal.LeaseID)
	assert.True(t, bal.Balance.IsZero(), bal.Balance.String())
}

func TestPostingValidationErrors(t *testing.T) {
	h, st := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   any
		status int
		field  string
	}{
		{
			name:   "negative amount",
			path:   "/api/v1/payments",
			body:   map[string]any{"leaseId": "L1", "amount": "-5"},
			status: http.StatusBadRequest,
			field:  "amount",
		},
		{
			name:   "unknown field",
			path:   "/api/v1/payments",
			body:   map[string]any{"leaseId": "L1", "amount": "5", "tip": "1"},
			status: http.StatusBadRequest,
		},
		{
			name:   "malformed body",
			path:   "/api/v1/charges",
			body:   "{not json",
			status: http.StatusBadRequest,
		},
		{
			name:   "expense account on a charge",
			path:   "/api/v1/charges",
			body:   map[string]any{"leaseId": "L1", "amount": "5", "accountCode": "5000"},
			status: http.StatusBadRequest,
			field:  "accountCode",
		},
		{
			name:   "unknown lease",
			path:   "/api/v1/payments",
			body:   map[string]any{"leaseId": "NOPE", "amount": "5"},
			status: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.path, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			resp := decode[errorResponse](t, rec)
			assert.NotEmpty(t, resp.Error)
			if tt.field != "" {
				assert.Equal(t, tt.field, resp.Field)
			}
		})
	}

	n, err := st.CountEntries(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestActorHeaderRecordedAsPostedBy(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/deposits",
		map[string]any{"leaseId": "L1", "amount": "1500"}, ActorHeader, "manager@example.com")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	posted := decode[postingResponse](t, rec)
	assert.Equal(t, ledger.Actor("manager@example.com"), posted.Transaction.PostedBy)

	rec = do(t, h, http.MethodPost, "/api/v1/deposits", map[string]any{"leaseId": "L1", "amount": "10"})
	posted = decode[postingResponse](t, rec)
	assert.Equal(t, ledger.Actor("api"), posted.Transaction.PostedBy)
}

func TestPostDueIsIdempotentOverHTTP(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/scheduled-charges", map[string]any{
		"leaseId":     "L1",
		"accountCode": "4000",
		"amount":      "1500",
		"description": "Monthly rent",
		"dayOfMonth":  1,
		"startDate":   "2026-03-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/scheduled-charges/pending?asOf=2026-03-15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]ledger.PendingCharge](t, rec), 1)

	rec = do(t, h, http.MethodPost, "/api/v1/scheduled-charges/post-due", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := decode[ledger.PostDueResult](t, rec)
	assert.Equal(t, 1, first.Summary.Posted)

	rec = do(t, h, http.MethodPost, "/api/v1/scheduled-charges/post-due", map[string]any{"asOf": "2026-03-15"})
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode[ledger.PostDueResult](t, rec)
	assert.Equal(t, 0, second.Summary.Posted)
	assert.Equal(t, 1, second.Summary.Skipped)

	rec = do(t, h, http.MethodGet, "/api/v1/leases/L1/balance", nil)
	bal := decode[balanceResponse](t, rec)
	assert.True(t, bal.Balance.Equal(decimal.NewFromInt(1500)))
}

func TestRentIncreaseLifecycleOverHTTP(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/rent-increases", map[string]any{
		"leaseId": "L1", "newAmount": "1600", "effectiveDate": "2026-04-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	inc := decode[ledger.RentIncrease](t, rec)
	assert.Equal(t, ledger.IncreaseScheduled, inc.Status)
	assert.True(t, inc.PreviousAmount.Equal(decimal.NewFromInt(1500)))

	rec = do(t, h, http.MethodPost, "/api/v1/rent-increases/"+inc.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/v1/rent-increases/"+inc.ID+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/rent-increases/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportsEndpoints(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/charges", map[string]any{
		"leaseId": "L1", "amount": "1500", "accountCode": "4000", "date": "2026-03-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, h, http.MethodPost, "/api/v1/expenses", map[string]any{
		"accountCode": "5000", "amount": "200", "date": "2026-03-02", "propertyId": "P1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for _, path := range []string{
		"/api/v1/accounts",
		"/api/v1/accounts?type=INCOME",
		"/api/v1/accounts/4000/drilldown",
		"/api/v1/leases/L1/aging?asOf=2026-03-15",
		"/api/v1/leases/L1/scheduled-charges",
		"/api/v1/ledger?limit=5",
		"/api/v1/reports/tenant-balances",
		"/api/v1/reports/aging",
		"/api/v1/reports/profit-loss?startDate=2026-03-01&endDate=2026-03-31",
		"/api/v1/reports/income-breakdown",
		"/api/v1/reports/rent-roll",
		"/api/v1/reports/transactions?propertyId=P1",
	} {
		rec := do(t, h, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, "%s: %s", path, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/v1/reports/profit-loss?startDate=2026-03-01&endDate=2026-03-31", nil)
	pl := decode[ledger.ProfitLoss](t, rec)
	assert.True(t, pl.NetIncome.Equal(decimal.NewFromInt(1300)), pl.NetIncome.String())

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/accounts?type=BOGUS", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/reports/aging?asOf=03/15/2026", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/ledger?limit=ten", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/accounts/9999/drilldown", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/transactions/nope", nil).Code)
}
