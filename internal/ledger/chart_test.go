package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCodesMatchTypes(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range ChartOfAccounts {
		assert.False(t, seen[a.Code], "duplicate code %s", a.Code)
		seen[a.Code] = true

		typ, err := TypeForCode(a.Code)
		require.NoError(t, err)
		assert.Equal(t, typ, a.Type, "account %s", a.Code)
	}
}

func TestChartHasPostingAccounts(t *testing.T) {
	for _, code := range []string{CodeCash, CodeAccountsReceivable, CodeSecurityDeposits, CodeRentalIncome, CodeLateFees} {
		_, err := Lookup(code)
		assert.NoError(t, err, code)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("9999")
	assert.True(t, errors.Is(err, ErrAccountNotFound))
}

func TestRequireAccount(t *testing.T) {
	acct, err := RequireAccount("4100", AccountIncome)
	require.NoError(t, err)
	assert.Equal(t, "Late Fees", acct.Name)

	_, err = RequireAccount("5000", AccountIncome)
	assert.True(t, IsValidation(err))

	_, err = RequireAccount("")
	assert.True(t, IsValidation(err))

	_, err = RequireAccount("4001")
	assert.EqualError(t, err, "Unknown account code 4001")
}

func TestTypeForCode(t *testing.T) {
	_, err := TypeForCode("300")
	assert.ErrorIs(t, err, ErrInvalidAccountCode)
	_, err = TypeForCode("3000")
	assert.ErrorIs(t, err, ErrInvalidAccountCode)
}

func TestNormalSide(t *testing.T) {
	assert.Equal(t, Debit, NormalSide(AccountAsset))
	assert.Equal(t, Debit, NormalSide(AccountExpense))
	assert.Equal(t, Credit, NormalSide(AccountLiability))
	assert.Equal(t, Credit, NormalSide(AccountIncome))
}

func TestAccountsOfType(t *testing.T) {
	for _, a := range AccountsOfType(AccountIncome) {
		assert.Equal(t, AccountIncome, a.Type)
	}
	assert.NotEmpty(t, AccountsOfType(AccountExpense))
}
