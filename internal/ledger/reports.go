package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// AccountTotal is the summed debits and credits of one account over a range.
type AccountTotal struct {
	AccountCode string          `json:"accountCode"`
	Debits      decimal.Decimal `json:"debits"`
	Credits     decimal.Decimal `json:"credits"`
}

// Net returns the balance in the account's normal direction.
func (t AccountTotal) Net(at AccountType) decimal.Decimal {
	if NormalSide(at) == Debit {
		return t.Debits.Sub(t.Credits)
	}
	return t.Credits.Sub(t.Debits)
}

type ProfitLossLine struct {
	AccountCode   string           `json:"accountCode"`
	AccountName   string           `json:"accountName"`
	Amount        decimal.Decimal  `json:"amount"`
	PriorAmount   decimal.Decimal  `json:"priorAmount"`
	PercentChange *decimal.Decimal `json:"percentChange"`
}

type ProfitLossSection struct {
	Lines         []ProfitLossLine `json:"lines"`
	Total         decimal.Decimal  `json:"total"`
	PriorTotal    decimal.Decimal  `json:"priorTotal"`
	PercentChange *decimal.Decimal `json:"percentChange"`
}

type ProfitLoss struct {
	StartDate      Date              `json:"startDate"`
	EndDate        Date              `json:"endDate"`
	PriorStartDate Date              `json:"priorStartDate"`
	PriorEndDate   Date              `json:"priorEndDate"`
	Income         ProfitLossSection `json:"income"`
	Expenses       ProfitLossSection `json:"expenses"`
	NetIncome      decimal.Decimal   `json:"netIncome"`
	PriorNetIncome decimal.Decimal   `json:"priorNetIncome"`
	PercentChange  *decimal.Decimal  `json:"percentChange"`
	GeneratedAt    time.Time         `json:"generatedAt"`
}

// PriorPeriod returns the range of equal length ending the day before start.
func PriorPeriod(start, end Date) (Date, Date) {
	days := end.DaysSince(start)
	priorEnd := start.AddDays(-1)
	return priorEnd.AddDays(-days), priorEnd
}

// PercentChange returns (current - prior) / |prior| * 100 rounded to two
// places, or nil when prior is zero.
func PercentChange(current, prior decimal.Decimal) *decimal.Decimal {
	if prior.IsZero() {
		return nil
	}
	pct := current.Sub(prior).Div(prior.Abs()).Mul(hundred).Round(2)
	return &pct
}

// BuildProfitLoss folds current and prior account totals into a P&L. Only
// INCOME and EXPENSE accounts contribute; accounts absent from both periods
// are omitted.
func BuildProfitLoss(start, end Date, current, prior []AccountTotal) *ProfitLoss {
	priorStart, priorEnd := PriorPeriod(start, end)
	pl := &ProfitLoss{
		StartDate:      start,
		EndDate:        end,
		PriorStartDate: priorStart,
		PriorEndDate:   priorEnd,
		Income:         ProfitLossSection{Lines: []ProfitLossLine{}, Total: decimal.Zero, PriorTotal: decimal.Zero},
		Expenses:       ProfitLossSection{Lines: []ProfitLossLine{}, Total: decimal.Zero, PriorTotal: decimal.Zero},
		GeneratedAt:    time.Now().UTC(),
	}

	cur := indexTotals(current)
	prev := indexTotals(prior)

	for _, acct := range ChartOfAccounts {
		var section *ProfitLossSection
		switch acct.Type {
		case AccountIncome:
			section = &pl.Income
		case AccountExpense:
			section = &pl.Expenses
		default:
			continue
		}
		c, hasCur := cur[acct.Code]
		p, hasPrev := prev[acct.Code]
		if !hasCur && !hasPrev {
			continue
		}
		amount := c.Net(acct.Type)
		priorAmount := p.Net(acct.Type)
		section.Lines = append(section.Lines, ProfitLossLine{
			AccountCode:   acct.Code,
			AccountName:   acct.Name,
			Amount:        amount,
			PriorAmount:   priorAmount,
			PercentChange: PercentChange(amount, priorAmount),
		})
		section.Total = section.Total.Add(amount)
		section.PriorTotal = section.PriorTotal.Add(priorAmount)
	}

	pl.Income.PercentChange = PercentChange(pl.Income.Total, pl.Income.PriorTotal)
	pl.Expenses.PercentChange = PercentChange(pl.Expenses.Total, pl.Expenses.PriorTotal)
	pl.NetIncome = pl.Income.Total.Sub(pl.Expenses.Total)
	pl.PriorNetIncome = pl.Income.PriorTotal.Sub(pl.Expenses.PriorTotal)
	pl.PercentChange = PercentChange(pl.NetIncome, pl.PriorNetIncome)
	return pl
}

func indexTotals(totals []AccountTotal) map[string]AccountTotal {
	m := make(map[string]AccountTotal, len(totals))
	for _, t := range totals {
		if existing, ok := m[t.AccountCode]; ok {
			t.Debits = t.Debits.Add(existing.Debits)
			t.Credits = t.Credits.Add(existing.Credits)
		}
		m[t.AccountCode] = t
	}
	return m
}

type IncomeBreakdownLine struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
	Share       decimal.Decimal `json:"share"`
}

type IncomeBreakdown struct {
	StartDate Date                  `json:"startDate"`
	EndDate   Date                  `json:"endDate"`
	Lines     []IncomeBreakdownLine `json:"lines"`
	Total     decimal.Decimal       `json:"total"`
}

// BuildIncomeBreakdown ranks income accounts by amount with each one's share
// of the total as a percentage.
func BuildIncomeBreakdown(start, end Date, totals []AccountTotal) *IncomeBreakdown {
	ib := &IncomeBreakdown{StartDate: start, EndDate: end, Lines: []IncomeBreakdownLine{}, Total: decimal.Zero}
	for code, t := range indexTotals(totals) {
		acct, err := Lookup(code)
		if err != nil || acct.Type != AccountIncome {
			continue
		}
		amount := t.Net(AccountIncome)
		if amount.IsZero() {
			continue
		}
		ib.Lines = append(ib.Lines, IncomeBreakdownLine{AccountCode: code, AccountName: acct.Name, Amount: amount})
		ib.Total = ib.Total.Add(amount)
	}
	sort.Slice(ib.Lines, func(i, j int) bool {
		if !ib.Lines[i].Amount.Equal(ib.Lines[j].Amount) {
			return ib.Lines[i].Amount.GreaterThan(ib.Lines[j].Amount)
		}
		return ib.Lines[i].AccountCode < ib.Lines[j].AccountCode
	})
	for i := range ib.Lines {
		if ib.Total.IsZero() {
			ib.Lines[i].Share = decimal.Zero
			continue
		}
		ib.Lines[i].Share = ib.Lines[i].Amount.Div(ib.Total).Mul(hundred).Round(2)
	}
	return ib
}

// LeaseSummary is a lease joined with its unit and property names.
type LeaseSummary struct {
	LeaseID      string      `json:"leaseId"`
	TenantName   string      `json:"tenantName"`
	PropertyID   string      `json:"propertyId"`
	PropertyName string      `json:"propertyName"`
	UnitID       string      `json:"unitId"`
	UnitName     string      `json:"unitName"`
	Status       LeaseStatus `json:"status"`
}

type TenantBalance struct {
	LeaseSummary
	Balance decimal.Decimal `json:"balance"`
}

type TenantBalanceSummary struct {
	TotalOwed         decimal.Decimal `json:"totalOwed"`
	TotalCredit       decimal.Decimal `json:"totalCredit"`
	NetReceivable     decimal.Decimal `json:"netReceivable"`
	TenantsOwing      int             `json:"tenantsOwing"`
	TenantsWithCredit int             `json:"tenantsWithCredit"`
	TenantsPaidUp     int             `json:"tenantsPaidUp"`
}

type TenantBalances struct {
	Tenants     []TenantBalance      `json:"tenants"`
	Summary     TenantBalanceSummary `json:"summary"`
	GeneratedAt time.Time            `json:"generatedAt"`
}

// Add folds one tenant into the report and its summary.
func (tb *TenantBalances) Add(t TenantBalance) {
	tb.Tenants = append(tb.Tenants, t)
	switch {
	case t.Balance.IsPositive():
		tb.Summary.TenantsOwing++
		tb.Summary.TotalOwed = tb.Summary.TotalOwed.Add(t.Balance)
	case t.Balance.IsNegative():
		tb.Summary.TenantsWithCredit++
		tb.Summary.TotalCredit = tb.Summary.TotalCredit.Add(t.Balance.Neg())
	default:
		tb.Summary.TenantsPaidUp++
	}
	tb.Summary.NetReceivable = tb.Summary.NetReceivable.Add(t.Balance)
}

func NewTenantBalances() *TenantBalances {
	return &TenantBalances{
		Tenants: []TenantBalance{},
		Summary: TenantBalanceSummary{
			TotalOwed:     decimal.Zero,
			TotalCredit:   decimal.Zero,
			NetReceivable: decimal.Zero,
		},
		GeneratedAt: time.Now().UTC(),
	}
}

type TenantAging struct {
	LeaseSummary
	Aging       Aging           `json:"aging"`
	Balance     decimal.Decimal `json:"balance"`
	OpenCharges []OpenCharge    `json:"openCharges,omitempty"`
}

type AgingReport struct {
	AsOf        Date          `json:"asOf"`
	Totals      Aging         `json:"totals"`
	Tenants     []TenantAging `json:"tenants"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

type RentRollUnit struct {
	UnitID      string          `json:"unitId"`
	UnitName    string          `json:"unitName"`
	Bedrooms    int             `json:"bedrooms,omitempty"`
	MarketRent  decimal.Decimal `json:"marketRent"`
	Occupied    bool            `json:"occupied"`
	LeaseID     string          `json:"leaseId,omitempty"`
	TenantName  string          `json:"tenantName,omitempty"`
	MonthlyRent decimal.Decimal `json:"monthlyRent"`
	AnnualRent  decimal.Decimal `json:"annualRent"`
	LeaseStart  Date            `json:"leaseStart"`
	LeaseEnd    Date            `json:"leaseEnd"`
	Balance     decimal.Decimal `json:"balance"`
}

type RentRollProperty struct {
	PropertyID    string          `json:"propertyId"`
	PropertyName  string          `json:"propertyName"`
	Units         []RentRollUnit  `json:"units"`
	UnitCount     int             `json:"unitCount"`
	OccupiedCount int             `json:"occupiedCount"`
	MonthlyRent   decimal.Decimal `json:"monthlyRent"`
	AnnualRent    decimal.Decimal `json:"annualRent"`
}

type RentRoll struct {
	Properties    []RentRollProperty `json:"properties"`
	UnitCount     int                `json:"unitCount"`
	OccupiedCount int                `json:"occupiedCount"`
	OccupancyRate decimal.Decimal    `json:"occupancyRate"`
	MonthlyRent   decimal.Decimal    `json:"monthlyRent"`
	AnnualRent    decimal.Decimal    `json:"annualRent"`
	GeneratedAt   time.Time          `json:"generatedAt"`
}

var twelve = decimal.NewFromInt(12)

// BuildRentRoll groups unit rows by property in the order given and computes
// subtotals and overall occupancy.
func BuildRentRoll(rows []RentRollRow) *RentRoll {
	rr := &RentRoll{
		Properties:    []RentRollProperty{},
		OccupancyRate: decimal.Zero,
		MonthlyRent:   decimal.Zero,
		AnnualRent:    decimal.Zero,
		GeneratedAt:   time.Now().UTC(),
	}
	idx := map[string]int{}
	for _, row := range rows {
		i, ok := idx[row.PropertyID]
		if !ok {
			rr.Properties = append(rr.Properties, RentRollProperty{
				PropertyID:   row.PropertyID,
				PropertyName: row.PropertyName,
				Units:        []RentRollUnit{},
				MonthlyRent:  decimal.Zero,
				AnnualRent:   decimal.Zero,
			})
			i = len(rr.Properties) - 1
			idx[row.PropertyID] = i
		}
		p := &rr.Properties[i]
		u := row.Unit
		u.AnnualRent = u.MonthlyRent.Mul(twelve)
		p.Units = append(p.Units, u)
		p.UnitCount++
		rr.UnitCount++
		if u.Occupied {
			p.OccupiedCount++
			rr.OccupiedCount++
			p.MonthlyRent = p.MonthlyRent.Add(u.MonthlyRent)
			p.AnnualRent = p.AnnualRent.Add(u.AnnualRent)
		}
	}
	for _, p := range rr.Properties {
		rr.MonthlyRent = rr.MonthlyRent.Add(p.MonthlyRent)
		rr.AnnualRent = rr.AnnualRent.Add(p.AnnualRent)
	}
	if rr.UnitCount > 0 {
		rr.OccupancyRate = decimal.NewFromInt(int64(rr.OccupiedCount)).
			Div(decimal.NewFromInt(int64(rr.UnitCount))).Mul(hundred).Round(2)
	}
	return rr
}

// RentRollRow is one unit as read from the store, tagged with its property.
type RentRollRow struct {
	PropertyID   string
	PropertyName string
	Unit         RentRollUnit
}

// LedgerLine is an entry joined with the names a report needs to display it.
type LedgerLine struct {
	Entry
	AccountName  string      `json:"accountName"`
	AccountType  AccountType `json:"accountType"`
	TenantName   string      `json:"tenantName,omitempty"`
	PropertyName string      `json:"propertyName,omitempty"`
	UnitName     string      `json:"unitName,omitempty"`
	VendorName   string      `json:"vendorName,omitempty"`
}

type TransactionsReport struct {
	StartDate Date            `json:"startDate"`
	EndDate   Date            `json:"endDate"`
	Lines     []LedgerLine    `json:"lines"`
	Debits    decimal.Decimal `json:"debits"`
	Credits   decimal.Decimal `json:"credits"`
}

type AccountDrillDown struct {
	Account   Account         `json:"account"`
	StartDate Date            `json:"startDate"`
	EndDate   Date            `json:"endDate"`
	Lines     []LedgerLine    `json:"lines"`
	Debits    decimal.Decimal `json:"debits"`
	Credits   decimal.Decimal `json:"credits"`
	Net       decimal.Decimal `json:"net"`
}

// SumLines totals the debit and credit sides of joined ledger lines.
func SumLines(lines []LedgerLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range lines {
		if l.Side == Debit {
			debits = debits.Add(l.Amount)
		} else {
			credits = credits.Add(l.Amount)
		}
	}
	return debits, credits
}
