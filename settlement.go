package greenhouse

import (
	"time"

	"github.com/ogrod/greenhouse/date"
)

// Settlement is a record of a payment covering a date range for a partner.
// FromDate <= ToDate is expected but not enforced.
type Settlement struct {
	ID          string    `json:"id"`
	FromDate    date.Date `json:"fromDate"`
	ToDate      date.Date `json:"toDate"`
	RecipientID string    `json:"recipientId"`
	Quantity    Quantity  `json:"quantity"`
	AmountPaid  Amount    `json:"amountPaid"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SettlementFields holds the user-editable fields of a Settlement.
// ID and CreatedAt are assigned at creation and never change.
type SettlementFields struct {
	FromDate    date.Date
	ToDate      date.Date
	RecipientID string
	Quantity    Quantity
	AmountPaid  Amount
	Notes       string
}

func (f SettlementFields) apply(s *Settlement) {
	s.FromDate = f.FromDate
	s.ToDate = f.ToDate
	s.RecipientID = f.RecipientID
	s.Quantity = f.Quantity
	s.AmountPaid = f.AmountPaid
	s.Notes = f.Notes
}

// Fields returns the user-editable fields of s.
func (s Settlement) Fields() SettlementFields {
	return SettlementFields{
		FromDate:    s.FromDate,
		ToDate:      s.ToDate,
		RecipientID: s.RecipientID,
		Quantity:    s.Quantity,
		AmountPaid:  s.AmountPaid,
		Notes:       s.Notes,
	}
}
