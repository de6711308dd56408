package ledger

import "fmt"

type AccountType string

const (
	AccountAsset     AccountType = "ASSET"
	AccountLiability AccountType = "LIABILITY"
	AccountIncome    AccountType = "INCOME"
	AccountExpense   AccountType = "EXPENSE"
)

var AllAccountTypes = []AccountType{
	AccountAsset,
	AccountLiability,
	AccountIncome,
	AccountExpense,
}

type Account struct {
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	Type        AccountType `json:"type"`
	Description string      `json:"description,omitempty"`
}

// TypeForCode derives the account type from the leading digit of a 4-digit code.
func TypeForCode(code string) (AccountType, error) {
	if len(code) != 4 {
		return "", fmt.Errorf("%w: %q (must be 4 digits)", ErrInvalidAccountCode, code)
	}
	switch code[0] {
	case '1':
		return AccountAsset, nil
	case '2':
		return AccountLiability, nil
	case '4':
		return AccountIncome, nil
	case '5':
		return AccountExpense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAccountCode, code)
	}
}

// TypeLabel returns a human-readable label for an account type.
func TypeLabel(t AccountType) string {
	switch t {
	case AccountAsset:
		return "Assets"
	case AccountLiability:
		return "Liabilities"
	case AccountIncome:
		return "Income"
	case AccountExpense:
		return "Expenses"
	default:
		return string(t)
	}
}

// NormalSide returns the side that increases an account of the given type.
// Assets and Expenses are debit-normal; Liabilities and Income are credit-normal.
func NormalSide(t AccountType) Side {
	switch t {
	case AccountAsset, AccountExpense:
		return Debit
	default:
		return Credit
	}
}

func ValidAccountType(t AccountType) bool {
	for _, at := range AllAccountTypes {
		if at == t {
			return true
		}
	}
	return false
}
