package greenhouse

import "time"

// Partner is a named counterparty who receives deliveries and is paid via
// settlements. Identity is ID; Name is user-editable and not unique.
type Partner struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// PartnerFields holds the user-editable fields of a Partner.
type PartnerFields struct {
	Name string
}

func (f PartnerFields) apply(p *Partner) {
	p.Name = f.Name
}

// Fields returns the user-editable fields of p.
func (p Partner) Fields() PartnerFields {
	return PartnerFields{Name: p.Name}
}
