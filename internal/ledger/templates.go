package ledger

import "fmt"

// TemplateLeg defines one side of a templated transaction. Code is fixed for
// legs like Cash or AR; an empty Code means the caller supplies an account of
// type Allowed.
type TemplateLeg struct {
	Code    string      `json:"code,omitempty"`
	Allowed AccountType `json:"allowed,omitempty"`
	Role    string      `json:"role"`
	Side    Side        `json:"side"`
}

// Template is the balanced entry pattern of one business transaction kind.
type Template struct {
	Kind          TransactionKind `json:"kind"`
	Description   string          `json:"description"`
	RequiresLease bool            `json:"requiresLease"`
	Legs          [2]TemplateLeg  `json:"legs"`
}

// Templates lists the posting patterns the engine knows how to record.
var Templates = map[TransactionKind]Template{
	KindPayment: {
		Kind:          KindPayment,
		Description:   "Tenant pays. Cash increases (debit), receivable decreases (credit).",
		RequiresLease: true,
		Legs: [2]TemplateLeg{
			{Code: CodeCash, Role: "Cash", Side: Debit},
			{Code: CodeAccountsReceivable, Role: "Accounts receivable", Side: Credit},
		},
	},
	KindCharge: {
		Kind:          KindCharge,
		Description:   "Tenant is billed. Receivable increases (debit), income increases (credit).",
		RequiresLease: true,
		Legs: [2]TemplateLeg{
			{Code: CodeAccountsReceivable, Role: "Accounts receivable", Side: Debit},
			{Allowed: AccountIncome, Role: "Income account", Side: Credit},
		},
	},
	KindExpense: {
		Kind:        KindExpense,
		Description: "Business pays an expense. Expense increases (debit), cash decreases (credit).",
		Legs: [2]TemplateLeg{
			{Allowed: AccountExpense, Role: "Expense account", Side: Debit},
			{Code: CodeCash, Role: "Cash", Side: Credit},
		},
	},
	KindDeposit: {
		Kind:          KindDeposit,
		Description:   "Security deposit received. Cash increases (debit), deposit liability increases (credit).",
		RequiresLease: true,
		Legs: [2]TemplateLeg{
			{Code: CodeCash, Role: "Cash", Side: Debit},
			{Code: CodeSecurityDeposits, Role: "Security deposits held", Side: Credit},
		},
	},
	KindCredit: {
		Kind:          KindCredit,
		Description:   "Concession to a tenant. Income decreases (debit), receivable decreases (credit).",
		RequiresLease: true,
		Legs: [2]TemplateLeg{
			{Allowed: AccountIncome, Role: "Income account", Side: Debit},
			{Code: CodeAccountsReceivable, Role: "Accounts receivable", Side: Credit},
		},
	},
}

// LookupTemplate returns the template for a kind.
func LookupTemplate(kind TransactionKind) (Template, error) {
	t, ok := Templates[kind]
	if !ok {
		return Template{}, fmt.Errorf("no posting template for %q", kind)
	}
	return t, nil
}

// ResolveLegs returns the account code of each leg, substituting code for the
// caller-supplied leg after checking its type.
func (t Template) ResolveLegs(code string) ([2]string, error) {
	var out [2]string
	for i, leg := range t.Legs {
		if leg.Code != "" {
			out[i] = leg.Code
			continue
		}
		acct, err := RequireAccount(code, leg.Allowed)
		if err != nil {
			return out, err
		}
		out[i] = acct.Code
	}
	return out, nil
}
