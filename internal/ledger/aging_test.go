package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arEntry(id string, side Side, amount string, date string) Entry {
	return Entry{
		ID:          id,
		AccountCode: CodeAccountsReceivable,
		Amount:      decimal.RequireFromString(amount),
		Side:        side,
		EntryDate:   MustParseDate(date),
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestBucketFor(t *testing.T) {
	cases := map[int]AgingBucket{
		0:   Bucket0To30,
		30:  Bucket0To30,
		31:  Bucket31To60,
		60:  Bucket31To60,
		61:  Bucket61To90,
		90:  Bucket61To90,
		91:  BucketOver90,
		400: BucketOver90,
	}
	for days, want := range cases {
		assert.Equal(t, want, BucketFor(days), "days=%d", days)
	}
}

func TestAgeReceivablesAppliesCreditsOldestFirst(t *testing.T) {
	// $100 charged on day 1 and day 40, $100 paid on day 45, aged on day 46.
	entries := []Entry{
		arEntry("c1", Debit, "100", "2026-01-01"),
		arEntry("c2", Debit, "100", "2026-02-09"),
		arEntry("p1", Credit, "100", "2026-02-14"),
	}

	aging, open := AgeReceivables(entries, MustParseDate("2026-02-15"))

	assert.True(t, aging.Days31To60.IsZero(), "oldest charge should be fully paid")
	assert.True(t, aging.Current.Equal(decimal.NewFromInt(100)))
	assert.True(t, aging.Total.Equal(decimal.NewFromInt(100)))
	assert.True(t, aging.Credit.IsZero())
	require.Len(t, open, 1)
	assert.Equal(t, "c2", open[0].EntryID)
	assert.Equal(t, 6, open[0].Days)
}

func TestAgeReceivablesIgnoresInputOrder(t *testing.T) {
	asOf := MustParseDate("2026-02-15")
	ordered := []Entry{
		arEntry("c1", Debit, "100", "2026-01-01"),
		arEntry("c2", Debit, "100", "2026-02-09"),
		arEntry("p1", Credit, "100", "2026-02-14"),
	}
	shuffled := []Entry{ordered[2], ordered[1], ordered[0]}

	a1, _ := AgeReceivables(ordered, asOf)
	a2, _ := AgeReceivables(shuffled, asOf)
	assert.Equal(t, a1.Current.String(), a2.Current.String())
	assert.Equal(t, a1.Days31To60.String(), a2.Days31To60.String())
}

func TestAgeReceivablesBuckets(t *testing.T) {
	asOf := MustParseDate("2026-06-30")
	entries := []Entry{
		arEntry("a", Debit, "10", asOf.AddDays(-10).String()),
		arEntry("b", Debit, "20", asOf.AddDays(-45).String()),
		arEntry("c", Debit, "30", asOf.AddDays(-75).String()),
		arEntry("d", Debit, "40", asOf.AddDays(-120).String()),
		// Dated after asOf; must not count.
		arEntry("e", Debit, "99", asOf.AddDays(1).String()),
	}

	aging, _ := AgeReceivables(entries, asOf)
	assert.Equal(t, "10", aging.Bucket(Bucket0To30).String())
	assert.Equal(t, "20", aging.Bucket(Bucket31To60).String())
	assert.Equal(t, "30", aging.Bucket(Bucket61To90).String())
	assert.Equal(t, "40", aging.Bucket(BucketOver90).String())
	assert.Equal(t, "100", aging.Total.String())
}

func TestAgeReceivablesSurplusCreditIsReportedSeparately(t *testing.T) {
	entries := []Entry{
		arEntry("c1", Debit, "100", "2026-03-01"),
		arEntry("p1", Credit, "150", "2026-03-02"),
	}
	aging, open := AgeReceivables(entries, MustParseDate("2026-03-10"))
	assert.True(t, aging.Total.IsZero())
	assert.Equal(t, "50", aging.Credit.String())
	assert.Empty(t, open)
	assert.Equal(t, "-50", ReceivableBalance(entries).String())
}

func TestAgeReceivablesPartialPayment(t *testing.T) {
	entries := []Entry{
		arEntry("c1", Debit, "1500", "2026-03-01"),
		arEntry("p1", Credit, "600", "2026-03-05"),
	}
	aging, open := AgeReceivables(entries, MustParseDate("2026-03-10"))
	require.Len(t, open, 1)
	assert.Equal(t, "900", open[0].Outstanding.String())
	assert.Equal(t, "1500", open[0].Original.String())
	assert.Equal(t, "900", aging.Current.String())
}

func TestReceivableBalanceSkipsOtherAccounts(t *testing.T) {
	entries := []Entry{
		arEntry("c1", Debit, "1500", "2026-03-01"),
		{AccountCode: CodeRentalIncome, Side: Credit, Amount: decimal.NewFromInt(1500)},
		arEntry("p1", Credit, "1000", "2026-03-05"),
	}
	assert.Equal(t, "500", ReceivableBalance(entries).String())
}

func TestAgingMerge(t *testing.T) {
	a := NewAging()
	a.add(Bucket0To30, decimal.NewFromInt(5))
	b := NewAging()
	b.add(BucketOver90, decimal.NewFromInt(7))
	b.Credit = decimal.NewFromInt(2)

	a.Merge(b)
	assert.Equal(t, "5", a.Current.String())
	assert.Equal(t, "7", a.Over90.String())
	assert.Equal(t, "12", a.Total.String())
	assert.Equal(t, "2", a.Credit.String())
}
