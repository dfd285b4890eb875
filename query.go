package greenhouse

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/ogrod/greenhouse/date"
)

// DeliveryFilter selects deliveries. Zero-value fields disable their
// predicate; set predicates are AND-combined.
type DeliveryFilter struct {
	From, To    date.Date // inclusive bounds on Date
	RecipientID string
	Destination string // case-insensitive substring match
}

// Match reports whether d passes every set predicate.
func (f DeliveryFilter) Match(d Delivery) bool {
	if !f.From.IsZero() && d.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && d.Date.After(f.To) {
		return false
	}
	if f.RecipientID != "" && d.RecipientID != f.RecipientID {
		return false
	}
	if f.Destination != "" && !strings.Contains(strings.ToLower(d.Destination), strings.ToLower(f.Destination)) {
		return false
	}
	return true
}

// FilterDeliveries returns the deliveries passing f, preserving the input
// order. The input is never mutated.
func FilterDeliveries(deliveries []Delivery, f DeliveryFilter) []Delivery {
	var out []Delivery
	for _, d := range deliveries {
		if f.Match(d) {
			out = append(out, d)
		}
	}
	return out
}

// SettlementFilter selects settlements. From bounds FromDate and To bounds
// ToDate; amount bounds are inclusive. Zero-value fields disable their
// predicate.
type SettlementFilter struct {
	From, To             date.Date
	RecipientID          string
	AmountMin, AmountMax Amount
	HasAmountMin         bool
	HasAmountMax         bool
}

// Match reports whether s passes every set predicate.
func (f SettlementFilter) Match(s Settlement) bool {
	if !f.From.IsZero() && s.FromDate.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && s.ToDate.After(f.To) {
		return false
	}
	if f.RecipientID != "" && s.RecipientID != f.RecipientID {
		return false
	}
	if f.HasAmountMin && s.AmountPaid.LessThan(f.AmountMin) {
		return false
	}
	if f.HasAmountMax && s.AmountPaid.GreaterThan(f.AmountMax) {
		return false
	}
	return true
}

// FilterSettlements returns the settlements passing f, preserving the
// input order. The input is never mutated.
func FilterSettlements(settlements []Settlement, f SettlementFilter) []Settlement {
	var out []Settlement
	for _, s := range settlements {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

// SortKey selects the field projections are ordered by.
type SortKey int

const (
	// ByDate orders chronologically: deliveries by Date, settlements by FromDate.
	ByDate SortKey = iota
	// ByQuantity orders numerically by Quantity.
	ByQuantity
	// ByAmount orders settlements numerically by AmountPaid. It does not
	// apply to deliveries, which pass through unchanged.
	ByAmount
)

func (k SortKey) String() string {
	switch k {
	case ByDate:
		return "date"
	case ByQuantity:
		return "quantity"
	case ByAmount:
		return "amount"
	default:
		return "unknown"
	}
}

// ParseSortKey parses a string into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch s {
	case "date":
		return ByDate, nil
	case "quantity":
		return ByQuantity, nil
	case "amount":
		return ByAmount, nil
	default:
		return 0, fmt.Errorf("unknown sort key: %q", s)
	}
}

// Order is the direction of a sort.
type Order int

const (
	Ascending Order = iota
	Descending
)

func (o Order) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// ParseOrder parses a string into an Order.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return 0, fmt.Errorf("unknown sort order: %q", s)
	}
}

// stableSort sorts a copy of rows with less, reversed for Descending. The
// sort is stable: rows with equal keys keep their original relative order.
func stableSort[T any](rows []T, order Order, less func(a, b T) bool) []T {
	out := slices.Clone(rows)
	sort.SliceStable(out, func(i, j int) bool {
		if order == Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// SortDeliveries returns a sorted copy of deliveries.
func SortDeliveries(deliveries []Delivery, key SortKey, order Order) []Delivery {
	switch key {
	case ByDate:
		return stableSort(deliveries, order, func(a, b Delivery) bool { return a.Date.Before(b.Date) })
	case ByQuantity:
		return stableSort(deliveries, order, func(a, b Delivery) bool { return a.Quantity.LessThan(b.Quantity) })
	default:
		return slices.Clone(deliveries)
	}
}

// SortSettlements returns a sorted copy of settlements. ByDate orders by
// the start of the covered period.
func SortSettlements(settlements []Settlement, key SortKey, order Order) []Settlement {
	switch key {
	case ByDate:
		return stableSort(settlements, order, func(a, b Settlement) bool { return a.FromDate.Before(b.FromDate) })
	case ByQuantity:
		return stableSort(settlements, order, func(a, b Settlement) bool { return a.Quantity.LessThan(b.Quantity) })
	case ByAmount:
		return stableSort(settlements, order, func(a, b Settlement) bool { return a.AmountPaid.LessThan(b.AmountPaid) })
	default:
		return slices.Clone(settlements)
	}
}
