package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesAreBalanced(t *testing.T) {
	for kind, tmpl := range Templates {
		assert.Equal(t, kind, tmpl.Kind)
		assert.NotEqual(t, tmpl.Legs[0].Side, tmpl.Legs[1].Side, "kind %s", kind)
	}
}

func TestResolveLegs(t *testing.T) {
	charge, err := LookupTemplate(KindCharge)
	require.NoError(t, err)
	codes, err := charge.ResolveLegs("4100")
	require.NoError(t, err)
	assert.Equal(t, [2]string{CodeAccountsReceivable, "4100"}, codes)

	_, err = charge.ResolveLegs("5000")
	assert.True(t, IsValidation(err))

	payment, err := LookupTemplate(KindPayment)
	require.NoError(t, err)
	codes, err = payment.ResolveLegs("")
	require.NoError(t, err)
	assert.Equal(t, [2]string{CodeCash, CodeAccountsReceivable}, codes)

	expense, err := LookupTemplate(KindExpense)
	require.NoError(t, err)
	codes, err = expense.ResolveLegs("5100")
	require.NoError(t, err)
	assert.Equal(t, [2]string{"5100", CodeCash}, codes)
	assert.False(t, expense.RequiresLease)
}

func TestLookupTemplateUnknown(t *testing.T) {
	_, err := LookupTemplate("REFUND")
	assert.Error(t, err)
}
