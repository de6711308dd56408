package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

type AgingBucket string

const (
	Bucket0To30  AgingBucket = "0-30"
	Bucket31To60 AgingBucket = "31-60"
	Bucket61To90 AgingBucket = "61-90"
	BucketOver90 AgingBucket = "90+"
)

var AllBuckets = []AgingBucket{Bucket0To30, Bucket31To60, Bucket61To90, BucketOver90}

// BucketFor maps an age in days to its bucket.
func BucketFor(days int) AgingBucket {
	switch {
	case days <= 30:
		return Bucket0To30
	case days <= 60:
		return Bucket31To60
	case days <= 90:
		return Bucket61To90
	default:
		return BucketOver90
	}
}

// Aging holds outstanding charge amounts per bucket. Credit is unapplied
// payment surplus, reported separately and never netted into a bucket.
type Aging struct {
	Current    decimal.Decimal `json:"0-30"`
	Days31To60 decimal.Decimal `json:"31-60"`
	Days61To90 decimal.Decimal `json:"61-90"`
	Over90     decimal.Decimal `json:"90+"`
	Total      decimal.Decimal `json:"total"`
	Credit     decimal.Decimal `json:"credit"`
}

func NewAging() Aging {
	return Aging{
		Current:    decimal.Zero,
		Days31To60: decimal.Zero,
		Days61To90: decimal.Zero,
		Over90:     decimal.Zero,
		Total:      decimal.Zero,
		Credit:     decimal.Zero,
	}
}

func (a *Aging) add(b AgingBucket, amount decimal.Decimal) {
	switch b {
	case Bucket0To30:
		a.Current = a.Current.Add(amount)
	case Bucket31To60:
		a.Days31To60 = a.Days31To60.Add(amount)
	case Bucket61To90:
		a.Days61To90 = a.Days61To90.Add(amount)
	case BucketOver90:
		a.Over90 = a.Over90.Add(amount)
	}
	a.Total = a.Total.Add(amount)
}

// Bucket returns the amount in one bucket.
func (a Aging) Bucket(b AgingBucket) decimal.Decimal {
	switch b {
	case Bucket0To30:
		return a.Current
	case Bucket31To60:
		return a.Days31To60
	case Bucket61To90:
		return a.Days61To90
	default:
		return a.Over90
	}
}

// Merge adds other's buckets into a.
func (a *Aging) Merge(other Aging) {
	a.Current = a.Current.Add(other.Current)
	a.Days31To60 = a.Days31To60.Add(other.Days31To60)
	a.Days61To90 = a.Days61To90.Add(other.Days61To90)
	a.Over90 = a.Over90.Add(other.Over90)
	a.Total = a.Total.Add(other.Total)
	a.Credit = a.Credit.Add(other.Credit)
}

// OpenCharge is the unpaid remainder of one AR debit after allocation.
type OpenCharge struct {
	EntryID     string          `json:"entryId"`
	EntryDate   Date            `json:"entryDate"`
	Description string          `json:"description"`
	Original    decimal.Decimal `json:"original"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Days        int             `json:"days"`
	Bucket      AgingBucket     `json:"bucket"`
}

// AgeReceivables allocates every AR credit dated on or before asOf against
// the oldest AR debits first, then buckets what remains of each debit by
// asOf - entryDate. Entries not on the AR account or dated after asOf are
// ignored, so the result does not depend on insertion order.
func AgeReceivables(entries []Entry, asOf Date) (Aging, []OpenCharge) {
	var charges []Entry
	credits := decimal.Zero
	for _, e := range entries {
		if e.AccountCode != CodeAccountsReceivable || e.EntryDate.After(asOf) {
			continue
		}
		if e.Side == Debit {
			charges = append(charges, e)
		} else {
			credits = credits.Add(e.Amount)
		}
	}

	sort.SliceStable(charges, func(i, j int) bool {
		if !charges[i].EntryDate.Equal(charges[j].EntryDate) {
			return charges[i].EntryDate.Before(charges[j].EntryDate)
		}
		if !charges[i].CreatedAt.Equal(charges[j].CreatedAt) {
			return charges[i].CreatedAt.Before(charges[j].CreatedAt)
		}
		return charges[i].ID < charges[j].ID
	})

	aging := NewAging()
	var open []OpenCharge
	for _, c := range charges {
		remaining := c.Amount
		if credits.IsPositive() {
			applied := decimal.Min(credits, remaining)
			remaining = remaining.Sub(applied)
			credits = credits.Sub(applied)
		}
		if !remaining.IsPositive() {
			continue
		}
		days := asOf.DaysSince(c.EntryDate)
		bucket := BucketFor(days)
		aging.add(bucket, remaining)
		open = append(open, OpenCharge{
			EntryID:     c.ID,
			EntryDate:   c.EntryDate,
			Description: c.Description,
			Original:    c.Amount,
			Outstanding: remaining,
			Days:        days,
			Bucket:      bucket,
		})
	}
	aging.Credit = credits
	return aging, open
}

// ReceivableBalance is sum(DR) - sum(CR) on the AR account. Positive means
// the tenant owes, negative means the tenant holds a credit.
func ReceivableBalance(entries []Entry) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range entries {
		if e.AccountCode != CodeAccountsReceivable {
			continue
		}
		balance = balance.Add(e.Signed())
	}
	return balance
}
