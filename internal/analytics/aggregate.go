// Package analytics holds the pure aggregation helpers behind the sales
// analytics view. Everything here operates on in-memory slices and has no
// side effects; the SQL-side aggregates live in the repository layer.
package analytics

import (
	"math"
	"sort"

	"go-phoneshop-pos/internal/model"
)

// UnknownDay is the bucket for sales whose date was never recorded. It
// sorts by its literal string, which places it after yyyy-mm-dd keys.
const UnknownDay = "Unknown"

const dayLayout = "2006-01-02"

// Totals are the sale amount and profit sums over a set of sales.
type Totals struct {
	Sales  float64 `json:"sales"`
	Profit float64 `json:"profit"`
}

// DayBucket is the per-calendar-day aggregate used by the charts.
type DayBucket struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Profit float64 `json:"profit"`
}

// money guards against unrecorded or garbage amounts: anything that is not
// a finite number counts as zero.
func money(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// CalcTotals sums sale amount and profit over the given records.
func CalcTotals(sales []model.Sale) Totals {
	var t Totals
	for _, s := range sales {
		t.Sales += money(s.SalePrice)
		t.Profit += money(s.Profit)
	}
	return t
}

// day renders the bucket key for a sale: its calendar day, or UnknownDay
// when the date was never set.
func day(s model.Sale) string {
	if s.SoldAt.IsZero() {
		return UnknownDay
	}
	return s.SoldAt.Format(dayLayout)
}

// FilterDay keeps only the sales that fall on the given calendar day
// (yyyy-mm-dd). Records without a date only match the UnknownDay key.
func FilterDay(sales []model.Sale, dayKey string) []model.Sale {
	matched := make([]model.Sale, 0)
	for _, s := range sales {
		if day(s) == dayKey {
			matched = append(matched, s)
		}
	}
	return matched
}

// GroupByDay buckets sales per calendar day with per-day sums, ordered
// chronologically. yyyy-mm-dd keys sort chronologically as strings, and
// the UnknownDay bucket sorts by its literal value.
func GroupByDay(sales []model.Sale) []DayBucket {
	grouped := make(map[string]*DayBucket)
	for _, s := range sales {
		key := day(s)
		bucket, ok := grouped[key]
		if !ok {
			bucket = &DayBucket{Date: key}
			grouped[key] = bucket
		}
		bucket.Sales += money(s.SalePrice)
		bucket.Profit += money(s.Profit)
	}

	buckets := make([]DayBucket, 0, len(grouped))
	for _, b := range grouped {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date < buckets[j].Date
	})
	return buckets
}
