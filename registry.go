package greenhouse

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/ogrod/greenhouse/date"
)

// Registry owns the in-memory collections of Partners, Deliveries and
// Settlements. It is the single writer context: every successful mutation
// persists the touched collection through the Store before returning.
//
// Mutators referencing an absent id are silent no-ops, reported through
// their boolean return, never as an error. Deleting a partner does not
// cascade: dependent deliveries and settlements keep their recipientId
// and resolve to an unknown partner afterwards.
type Registry struct {
	store Store

	partners    []Partner
	deliveries  []Delivery
	settlements []Settlement

	observers []func(Collection)

	now   func() time.Time // clock, replaced in tests
	newID func() string
}

// NewRegistry loads the three collections from store (once, at startup)
// and returns a registry bound to it.
func NewRegistry(store Store) (*Registry, error) {
	cols, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("could not load collections: %w", err)
	}
	return &Registry{
		store:       store,
		partners:    cols.Partners,
		deliveries:  cols.Deliveries,
		settlements: cols.Settlements,
		now:         time.Now,
		newID:       uuid.NewString,
	}, nil
}

// Subscribe registers fn to be called after every successful mutation with
// the collection that changed.
func (r *Registry) Subscribe(fn func(Collection)) {
	r.observers = append(r.observers, fn)
}

// save persists one collection and notifies observers.
func (r *Registry) save(c Collection) error {
	var err error
	switch c {
	case Partners:
		err = r.store.SavePartners(r.partners)
	case Deliveries:
		err = r.store.SaveDeliveries(r.deliveries)
	case Settlements:
		err = r.store.SaveSettlements(r.settlements)
	}
	if err != nil {
		return fmt.Errorf("could not save %s: %w", c, err)
	}
	for _, fn := range r.observers {
		fn(c)
	}
	return nil
}

// Partners returns a snapshot copy of the partner collection.
func (r *Registry) Partners() []Partner { return slices.Clone(r.partners) }

// Deliveries returns a snapshot copy of the delivery collection.
func (r *Registry) Deliveries() []Delivery { return slices.Clone(r.deliveries) }

// Settlements returns a snapshot copy of the settlement collection.
func (r *Registry) Settlements() []Settlement { return slices.Clone(r.settlements) }

// AddPartner creates a partner with a fresh id and creation time.
func (r *Registry) AddPartner(f PartnerFields) (Partner, error) {
	p := Partner{ID: r.newID(), CreatedAt: r.now()}
	f.apply(&p)
	r.partners = append(r.partners, p)
	if err := r.save(Partners); err != nil {
		return Partner{}, err
	}
	return p, nil
}

// UpdatePartner replaces the editable fields of the partner matching id.
// It reports false without touching the collection if id is absent.
func (r *Registry) UpdatePartner(id string, f PartnerFields) (bool, error) {
	for i := range r.partners {
		if r.partners[i].ID == id {
			f.apply(&r.partners[i])
			return true, r.save(Partners)
		}
	}
	return false, nil
}

// DeletePartner removes the partner matching id. Dependent deliveries and
// settlements are left untouched.
func (r *Registry) DeletePartner(id string) (bool, error) {
	for i := range r.partners {
		if r.partners[i].ID == id {
			r.partners = slices.Delete(r.partners, i, i+1)
			return true, r.save(Partners)
		}
	}
	return false, nil
}

// FindPartner returns the partner with this id.
func (r *Registry) FindPartner(id string) (Partner, bool) {
	for _, p := range r.partners {
		if p.ID == id {
			return p, true
		}
	}
	return Partner{}, false
}

// PartnerName resolves a recipient id to its partner name, or "Unknown"
// for a dangling reference.
func (r *Registry) PartnerName(id string) string {
	if p, ok := r.FindPartner(id); ok {
		return p.Name
	}
	return "Unknown"
}

// AddDelivery creates a delivery with a fresh id and creation time.
//
// The duplicate-date policy lives with the caller: check
// FindDeliveryByDate first and either cancel, add anyway, or replace the
// existing delivery through UpdateDelivery.
func (r *Registry) AddDelivery(f DeliveryFields) (Delivery, error) {
	d := Delivery{ID: r.newID(), CreatedAt: r.now()}
	f.apply(&d)
	r.deliveries = append(r.deliveries, d)
	if err := r.save(Deliveries); err != nil {
		return Delivery{}, err
	}
	return d, nil
}

// UpdateDelivery replaces the editable fields of the delivery matching id.
// It reports false without touching the collection if id is absent.
func (r *Registry) UpdateDelivery(id string, f DeliveryFields) (bool, error) {
	for i := range r.deliveries {
		if r.deliveries[i].ID == id {
			f.apply(&r.deliveries[i])
			return true, r.save(Deliveries)
		}
	}
	return false, nil
}

// DeleteDelivery removes the delivery matching id.
func (r *Registry) DeleteDelivery(id string) (bool, error) {
	for i := range r.deliveries {
		if r.deliveries[i].ID == id {
			r.deliveries = slices.Delete(r.deliveries, i, i+1)
			return true, r.save(Deliveries)
		}
	}
	return false, nil
}

// FindDelivery returns the delivery with this id.
func (r *Registry) FindDelivery(id string) (Delivery, bool) {
	for _, d := range r.deliveries {
		if d.ID == id {
			return d, true
		}
	}
	return Delivery{}, false
}

// FindDeliveryByDate returns the first delivery recorded on this exact
// date, the pre-insert duplicate guard. More than one delivery can share a
// date if a caller explicitly added anyway.
func (r *Registry) FindDeliveryByDate(on date.Date) (Delivery, bool) {
	for _, d := range r.deliveries {
		if d.Date == on {
			return d, true
		}
	}
	return Delivery{}, false
}

// DeliveriesForPartner returns the deliveries addressed to partnerID whose
// date falls within [from, to], both bounds inclusive. A zero bound is
// unbounded on that side.
func (r *Registry) DeliveriesForPartner(partnerID string, from, to date.Date) []Delivery {
	bounds := date.Range{From: from, To: to}
	var out []Delivery
	for _, d := range r.deliveries {
		if d.RecipientID == partnerID && bounds.Contains(d.Date) {
			out = append(out, d)
		}
	}
	return out
}

// AddSettlement creates a settlement with a fresh id and creation time.
func (r *Registry) AddSettlement(f SettlementFields) (Settlement, error) {
	s := Settlement{ID: r.newID(), CreatedAt: r.now()}
	f.apply(&s)
	r.settlements = append(r.settlements, s)
	if err := r.save(Settlements); err != nil {
		return Settlement{}, err
	}
	return s, nil
}

// UpdateSettlement replaces the editable fields of the settlement matching
// id. It reports false without touching the collection if id is absent.
func (r *Registry) UpdateSettlement(id string, f SettlementFields) (bool, error) {
	for i := range r.settlements {
		if r.settlements[i].ID == id {
			f.apply(&r.settlements[i])
			return true, r.save(Settlements)
		}
	}
	return false, nil
}

// DeleteSettlement removes the settlement matching id.
func (r *Registry) DeleteSettlement(id string) (bool, error) {
	for i := range r.settlements {
		if r.settlements[i].ID == id {
			r.settlements = slices.Delete(r.settlements, i, i+1)
			return true, r.save(Settlements)
		}
	}
	return false, nil
}

// FindSettlement returns the settlement with this id.
func (r *Registry) FindSettlement(id string) (Settlement, bool) {
	for _, s := range r.settlements {
		if s.ID == id {
			return s, true
		}
	}
	return Settlement{}, false
}

// UsageOfPartner counts the deliveries and settlements referencing this
// partner. It backs the non-blocking warning shown before a partner
// deletion; it never blocks the deletion itself.
func (r *Registry) UsageOfPartner(partnerID string) (deliveryCount, settlementCount int) {
	for _, d := range r.deliveries {
		if d.RecipientID == partnerID {
			deliveryCount++
		}
	}
	for _, s := range r.settlements {
		if s.RecipientID == partnerID {
			settlementCount++
		}
	}
	return deliveryCount, settlementCount
}
