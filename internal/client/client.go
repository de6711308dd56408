package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/shopspring/decimal"
)

// Client talks to a running pmsledger server.
type Client struct {
	baseURL    string
	actor      string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithActor sets the X-Actor header sent with every request.
func (c *Client) WithActor(actor string) *Client {
	c.actor = actor
	return c
}

// Posting is the body shared by the five posting endpoints. Fields a given
// endpoint does not take are omitted.
type Posting struct {
	LeaseID     string          `json:"leaseId,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	AccountCode string          `json:"accountCode,omitempty"`
	Date        ledger.Date     `json:"date,omitempty"`
	Description string          `json:"description,omitempty"`
	PropertyID  string          `json:"propertyId,omitempty"`
	UnitID      string          `json:"unitId,omitempty"`
	VendorID    string          `json:"vendorId,omitempty"`
	WorkOrderID string          `json:"workOrderId,omitempty"`
}

type PostingResult struct {
	Transaction ledger.Transaction `json:"transaction"`
	Entries     []ledger.Entry     `json:"entries"`
}

func (c *Client) RecordPayment(ctx context.Context, p Posting) (*PostingResult, error) {
	return c.record(ctx, "/api/v1/payments", Posting{
		LeaseID: p.LeaseID, Amount: p.Amount, Date: p.Date, Description: p.Description,
	})
}

func (c *Client) RecordCharge(ctx context.Context, p Posting) (*PostingResult, error) {
	return c.record(ctx, "/api/v1/charges", Posting{
		LeaseID: p.LeaseID, Amount: p.Amount, AccountCode: p.AccountCode, Date: p.Date, Description: p.Description,
	})
}

func (c *Client) RecordExpense(ctx context.Context, p Posting) (*PostingResult, error) {
	p.LeaseID = ""
	return c.record(ctx, "/api/v1/expenses", p)
}

func (c *Client) RecordDeposit(ctx context.Context, p Posting) (*PostingResult, error) {
	return c.record(ctx, "/api/v1/deposits", Posting{
		LeaseID: p.LeaseID, Amount: p.Amount, Date: p.Date, Description: p.Description,
	})
}

func (c *Client) RecordCredit(ctx context.Context, p Posting) (*PostingResult, error) {
	return c.record(ctx, "/api/v1/credits", Posting{
		LeaseID: p.LeaseID, Amount: p.Amount, AccountCode: p.AccountCode, Date: p.Date, Description: p.Description,
	})
}

func (c *Client) record(ctx context.Context, path string, p Posting) (*PostingResult, error) {
	var result PostingResult
	if err := c.post(ctx, path, p, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListAccounts(ctx context.Context, accountType ledger.AccountType) ([]ledger.Account, error) {
	params := url.Values{}
	if accountType != "" {
		params.Set("type", string(accountType))
	}
	var result []ledger.Account
	if err := c.get(ctx, "/api/v1/accounts?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) AccountDrillDown(ctx context.Context, code string, start, end ledger.Date) (*ledger.AccountDrillDown, error) {
	var result ledger.AccountDrillDown
	path := "/api/v1/accounts/" + url.PathEscape(code) + "/drilldown?" + rangeParams(start, end).Encode()
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type BalanceResponse struct {
	LeaseID string          `json:"leaseId"`
	Balance decimal.Decimal `json:"balance"`
}

func (c *Client) LeaseBalance(ctx context.Context, leaseID string) (*BalanceResponse, error) {
	var result BalanceResponse
	if err := c.get(ctx, "/api/v1/leases/"+url.PathEscape(leaseID)+"/balance", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) LeaseAging(ctx context.Context, leaseID string, asOf ledger.Date) (*ledger.TenantAging, error) {
	var result ledger.TenantAging
	path := "/api/v1/leases/" + url.PathEscape(leaseID) + "/aging?" + dateParams("asOf", asOf).Encode()
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) LeaseSchedules(ctx context.Context, leaseID string) ([]ledger.ScheduledCharge, error) {
	var result []ledger.ScheduledCharge
	if err := c.get(ctx, "/api/v1/leases/"+url.PathEscape(leaseID)+"/scheduled-charges", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) RecentEntries(ctx context.Context, limit int) ([]ledger.Entry, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var result []ledger.Entry
	if err := c.get(ctx, "/api/v1/ledger?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) GetTransaction(ctx context.Context, id string) (*ledger.Transaction, error) {
	var result ledger.Transaction
	if err := c.get(ctx, "/api/v1/transactions/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) TenantBalances(ctx context.Context) (*ledger.TenantBalances, error) {
	var result ledger.TenantBalances
	if err := c.get(ctx, "/api/v1/reports/tenant-balances", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) AgingReport(ctx context.Context, asOf ledger.Date) (*ledger.AgingReport, error) {
	var result ledger.AgingReport
	if err := c.get(ctx, "/api/v1/reports/aging?"+dateParams("asOf", asOf).Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ProfitLoss(ctx context.Context, start, end ledger.Date) (*ledger.ProfitLoss, error) {
	var result ledger.ProfitLoss
	if err := c.get(ctx, "/api/v1/reports/profit-loss?"+rangeParams(start, end).Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) IncomeBreakdown(ctx context.Context, start, end ledger.Date) (*ledger.IncomeBreakdown, error) {
	var result ledger.IncomeBreakdown
	if err := c.get(ctx, "/api/v1/reports/income-breakdown?"+rangeParams(start, end).Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) RentRoll(ctx context.Context) (*ledger.RentRoll, error) {
	var result ledger.RentRoll
	if err := c.get(ctx, "/api/v1/reports/rent-roll", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TransactionQuery narrows the transactions report. Empty fields are ignored.
type TransactionQuery struct {
	StartDate   ledger.Date
	EndDate     ledger.Date
	AccountCode string
	PropertyID  string
	LeaseID     string
}

func (c *Client) Transactions(ctx context.Context, q TransactionQuery) (*ledger.TransactionsReport, error) {
	params := rangeParams(q.StartDate, q.EndDate)
	for k, v := range map[string]string{"accountCode": q.AccountCode, "propertyId": q.PropertyID, "leaseId": q.LeaseID} {
		if v != "" {
			params.Set(k, v)
		}
	}
	var result ledger.TransactionsReport
	if err := c.get(ctx, "/api/v1/reports/transactions?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateSchedule(ctx context.Context, sc *ledger.ScheduledCharge) (*ledger.ScheduledCharge, error) {
	body := map[string]any{
		"leaseId":     sc.LeaseID,
		"accountCode": sc.AccountCode,
		"amount":      sc.Amount,
		"description": sc.Description,
		"dayOfMonth":  sc.DayOfMonth,
		"startDate":   sc.StartDate,
		"endDate":     sc.EndDate,
	}
	var result ledger.ScheduledCharge
	if err := c.post(ctx, "/api/v1/scheduled-charges", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) PendingCharges(ctx context.Context, asOf ledger.Date) ([]ledger.PendingCharge, error) {
	var result []ledger.PendingCharge
	if err := c.get(ctx, "/api/v1/scheduled-charges/pending?"+dateParams("asOf", asOf).Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) PostDue(ctx context.Context, asOf ledger.Date) (*ledger.PostDueResult, error) {
	var result ledger.PostDueResult
	if err := c.post(ctx, "/api/v1/scheduled-charges/post-due", map[string]any{"asOf": asOf}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) EndSchedule(ctx context.Context, id string, endDate ledger.Date) (*ledger.ScheduledCharge, error) {
	var result ledger.ScheduledCharge
	path := "/api/v1/scheduled-charges/" + url.PathEscape(id) + "/end"
	if err := c.post(ctx, path, map[string]any{"endDate": endDate}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateRentIncrease(ctx context.Context, r *ledger.RentIncrease) (*ledger.RentIncrease, error) {
	body := map[string]any{
		"leaseId":        r.LeaseID,
		"previousAmount": r.PreviousAmount,
		"newAmount":      r.NewAmount,
		"effectiveDate":  r.EffectiveDate,
		"noticeDate":     r.NoticeDate,
		"notes":          r.Notes,
	}
	var result ledger.RentIncrease
	if err := c.post(ctx, "/api/v1/rent-increases", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ApplyRentIncreases(ctx context.Context, today ledger.Date) (*ledger.ApplyResult, error) {
	var result ledger.ApplyResult
	if err := c.post(ctx, "/api/v1/rent-increases/apply-pending", map[string]any{"today": today}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetRentIncrease(ctx context.Context, id string) (*ledger.RentIncrease, error) {
	var result ledger.RentIncrease
	if err := c.get(ctx, "/api/v1/rent-increases/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CancelRentIncrease(ctx context.Context, id string) (*ledger.RentIncrease, error) {
	var result ledger.RentIncrease
	if err := c.post(ctx, "/api/v1/rent-increases/"+url.PathEscape(id)+"/cancel", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ping checks if the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/v1/accounts", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func dateParams(name string, d ledger.Date) url.Values {
	params := url.Values{}
	if !d.IsZero() {
		params.Set(name, d.String())
	}
	return params
}

func rangeParams(start, end ledger.Date) url.Values {
	params := dateParams("startDate", start)
	if !end.IsZero() {
		params.Set("endDate", end.String())
	}
	return params
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.doRequest(req, result)
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		payload = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doRequest(req, result)
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Field      string `json:"field,omitempty"`
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("server error (%d): %s: %s", e.StatusCode, e.Field, e.Message)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

func (c *Client) doRequest(req *http.Request, result any) error {
	if c.actor != "" {
		req.Header.Set("X-Actor", c.actor)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(bodyBytes, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = string(bodyBytes)
		}
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
