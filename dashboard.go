package greenhouse

import "github.com/ogrod/greenhouse/date"

// Trailing windows shown on the overview, in days.
const (
	DeliveryWindowDays   = 7
	SettlementWindowDays = 30
)

// DeliveryStats aggregates deliveries dated within a trailing window.
type DeliveryStats struct {
	Quantity Quantity
	Boxes    int
	Count    int
}

// DeliveryStatsSince sums quantity and boxes over deliveries dated on or
// after since.
func DeliveryStatsSince(deliveries []Delivery, since date.Date) DeliveryStats {
	var stats DeliveryStats
	for _, d := range deliveries {
		if d.Date.Before(since) {
			continue
		}
		stats.Quantity = stats.Quantity.Add(d.Quantity)
		stats.Boxes += d.Boxes
		stats.Count++
	}
	return stats
}

// SettlementStats aggregates settlements whose period starts within a
// trailing window.
type SettlementStats struct {
	AmountPaid Amount
	Count      int
}

// SettlementStatsSince sums amounts over settlements whose FromDate is on
// or after since.
func SettlementStatsSince(settlements []Settlement, since date.Date) SettlementStats {
	var stats SettlementStats
	for _, s := range settlements {
		if s.FromDate.Before(since) {
			continue
		}
		stats.AmountPaid = stats.AmountPaid.Add(s.AmountPaid)
		stats.Count++
	}
	return stats
}

// LatestDelivery returns the delivery with the most recent date, false on
// an empty collection. Ties go to the last in scan order.
func LatestDelivery(deliveries []Delivery) (Delivery, bool) {
	if len(deliveries) == 0 {
		return Delivery{}, false
	}
	latest := deliveries[0]
	for _, d := range deliveries[1:] {
		if !d.Date.Before(latest.Date) {
			latest = d
		}
	}
	return latest, true
}

// LatestSettlement returns the most recently recorded settlement (by
// CreatedAt), false on an empty collection. Ties go to the last in scan
// order.
func LatestSettlement(settlements []Settlement) (Settlement, bool) {
	if len(settlements) == 0 {
		return Settlement{}, false
	}
	latest := settlements[0]
	for _, s := range settlements[1:] {
		if !s.CreatedAt.Before(latest.CreatedAt) {
			latest = s
		}
	}
	return latest, true
}

// Overview is the dashboard projection: trailing-window aggregates plus
// the latest record of each kind.
type Overview struct {
	Date             date.Date
	Deliveries       DeliveryStats
	Settlements      SettlementStats
	LatestDelivery   *Delivery
	LatestSettlement *Settlement
}

// BuildOverview computes the overview as of today.
func BuildOverview(r *Registry, today date.Date) *Overview {
	deliveries := r.Deliveries()
	settlements := r.Settlements()

	o := &Overview{
		Date:        today,
		Deliveries:  DeliveryStatsSince(deliveries, today.Add(-DeliveryWindowDays)),
		Settlements: SettlementStatsSince(settlements, today.Add(-SettlementWindowDays)),
	}
	if d, ok := LatestDelivery(deliveries); ok {
		o.LatestDelivery = &d
	}
	if s, ok := LatestSettlement(settlements); ok {
		o.LatestSettlement = &s
	}
	return o
}
