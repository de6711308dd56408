package ledger

import "github.com/shopspring/decimal"

type LeaseStatus string

const (
	LeasePending LeaseStatus = "PENDING"
	LeaseActive  LeaseStatus = "ACTIVE"
	LeaseEnded   LeaseStatus = "ENDED"
)

func (s LeaseStatus) Valid() bool {
	switch s {
	case LeasePending, LeaseActive, LeaseEnded:
		return true
	}
	return false
}

// Property, Unit, Lease and Vendor are owned by the CRUD layer. The ledger
// reads them for joins and only ever writes a lease's rent amount.
type Property struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address,omitempty" yaml:"address"`
}

type Unit struct {
	ID         string          `json:"id" yaml:"id"`
	PropertyID string          `json:"propertyId" yaml:"propertyId"`
	Name       string          `json:"name" yaml:"name"`
	Bedrooms   int             `json:"bedrooms,omitempty" yaml:"bedrooms"`
	MarketRent decimal.Decimal `json:"marketRent" yaml:"marketRent"`
}

type Lease struct {
	ID                string          `json:"id" yaml:"id"`
	UnitID            string          `json:"unitId" yaml:"unitId"`
	TenantName        string          `json:"tenantName" yaml:"tenantName"`
	TenantEmail       string          `json:"tenantEmail,omitempty" yaml:"tenantEmail"`
	MonthlyRentAmount decimal.Decimal `json:"monthlyRentAmount" yaml:"monthlyRent"`
	ChargeDay         int             `json:"chargeDay" yaml:"chargeDay"`
	StartDate         Date            `json:"startDate" yaml:"startDate"`
	EndDate           Date            `json:"endDate" yaml:"endDate"`
	Status            LeaseStatus     `json:"status" yaml:"status"`
}

func (l *Lease) Validate() error {
	if l.ID == "" {
		return NewValidationError("leaseId", "Lease ID is required")
	}
	if l.UnitID == "" {
		return NewValidationError("unitId", "Unit ID is required")
	}
	if l.TenantName == "" {
		return NewValidationError("tenantName", "Tenant name is required")
	}
	if l.MonthlyRentAmount.IsNegative() {
		return NewValidationError("monthlyRentAmount", "Monthly rent cannot be negative")
	}
	if l.ChargeDay < 1 || l.ChargeDay > 31 {
		return NewValidationError("chargeDay", "Charge day must be between 1 and 31")
	}
	if !l.Status.Valid() {
		return NewValidationError("status", "Status must be PENDING, ACTIVE or ENDED")
	}
	if l.StartDate.IsZero() {
		return NewValidationError("startDate", "Start date is required")
	}
	if !l.EndDate.IsZero() && l.EndDate.Before(l.StartDate) {
		return NewValidationError("endDate", "End date is before start date")
	}
	return nil
}

type Vendor struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
