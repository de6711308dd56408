package ledger

import "fmt"

// Well-known account codes the posting engine relies on.
const (
	CodeCash               = "1000"
	CodeOperatingBank      = "1100"
	CodeAccountsReceivable = "1200"
	CodeAccountsPayable    = "2000"
	CodeSecurityDeposits   = "2200"
	CodePrepaidRent        = "2300"
	CodeRentalIncome       = "4000"
	CodeLateFees           = "4100"
)

// ChartOfAccounts is the fixed property-management chart. It is seeded into the
// accounts table by migration and never written at runtime.
var ChartOfAccounts = []Account{
	// Assets (1xxx)
	{Code: "1000", Name: "Cash", Type: AccountAsset, Description: "Cash and undeposited receipts"},
	{Code: "1100", Name: "Operating Bank Account", Type: AccountAsset, Description: "Primary operating checking account"},
	{Code: "1200", Name: "Accounts Receivable", Type: AccountAsset, Description: "Amounts owed by tenants"},

	// Liabilities (2xxx)
	{Code: "2000", Name: "Accounts Payable", Type: AccountLiability, Description: "Amounts owed to vendors"},
	{Code: "2200", Name: "Security Deposits Held", Type: AccountLiability, Description: "Tenant deposits held until move-out"},
	{Code: "2300", Name: "Prepaid Rent", Type: AccountLiability, Description: "Rent received ahead of its charge"},

	// Income (4xxx)
	{Code: "4000", Name: "Rental Income", Type: AccountIncome, Description: "Monthly rent"},
	{Code: "4100", Name: "Late Fees", Type: AccountIncome, Description: "Fees for late payment"},
	{Code: "4200", Name: "Pet Rent", Type: AccountIncome, Description: "Recurring pet rent and pet fees"},
	{Code: "4300", Name: "Parking Income", Type: AccountIncome, Description: "Parking spaces and garages"},
	{Code: "4400", Name: "Utility Reimbursements", Type: AccountIncome, Description: "Utilities billed back to tenants"},
	{Code: "4500", Name: "Application Fees", Type: AccountIncome, Description: "Rental application fees"},
	{Code: "4900", Name: "Other Income", Type: AccountIncome, Description: "Miscellaneous income"},

	// Expenses (5xxx)
	{Code: "5000", Name: "Repairs & Maintenance", Type: AccountExpense, Description: "Work orders and repairs"},
	{Code: "5100", Name: "Utilities", Type: AccountExpense, Description: "Owner-paid utilities"},
	{Code: "5200", Name: "Management Fees", Type: AccountExpense, Description: "Property management fees"},
	{Code: "5300", Name: "Insurance", Type: AccountExpense, Description: "Property and liability insurance"},
	{Code: "5400", Name: "Property Taxes", Type: AccountExpense, Description: "Real estate taxes"},
	{Code: "5500", Name: "Landscaping", Type: AccountExpense, Description: "Grounds and snow removal"},
	{Code: "5600", Name: "Cleaning & Turnover", Type: AccountExpense, Description: "Unit turnover and cleaning"},
	{Code: "5700", Name: "Advertising", Type: AccountExpense, Description: "Listings and marketing"},
	{Code: "5800", Name: "Legal & Professional", Type: AccountExpense, Description: "Legal, accounting and eviction costs"},
	{Code: "5900", Name: "Other Expense", Type: AccountExpense, Description: "Miscellaneous expenses"},
}

var chartIndex = func() map[string]int {
	idx := make(map[string]int, len(ChartOfAccounts))
	for i, a := range ChartOfAccounts {
		idx[a.Code] = i
	}
	return idx
}()

// Lookup finds an account in the chart by code.
func Lookup(code string) (Account, error) {
	i, ok := chartIndex[code]
	if !ok {
		return Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, code)
	}
	return ChartOfAccounts[i], nil
}

// RequireAccount resolves code and checks it is one of the allowed types.
// Unknown or mistyped codes are validation failures, never speculative posts.
func RequireAccount(code string, allowed ...AccountType) (Account, error) {
	if code == "" {
		return Account{}, NewValidationError("accountCode", "Account code is required")
	}
	acct, err := Lookup(code)
	if err != nil {
		return Account{}, NewValidationError("accountCode", fmt.Sprintf("Unknown account code %s", code))
	}
	if len(allowed) == 0 {
		return acct, nil
	}
	for _, t := range allowed {
		if acct.Type == t {
			return acct, nil
		}
	}
	return Account{}, NewValidationError("accountCode",
		fmt.Sprintf("Account %s (%s) must be of type %v", code, acct.Type, allowed))
}

// AccountsOfType returns the chart entries of one type in code order.
func AccountsOfType(t AccountType) []Account {
	var out []Account
	for _, a := range ChartOfAccounts {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}
