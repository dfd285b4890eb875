package greenhouse

import (
	"time"

	"github.com/ogrod/greenhouse/date"
)

// Delivery is a record of produce shipped on a given date to a partner.
//
// RecipientID references a Partner but is not validated against the
// partner collection: deleting a partner leaves dependent deliveries with
// a dangling reference, rendered as an unknown recipient.
type Delivery struct {
	ID          string    `json:"id"`
	Date        date.Date `json:"date"`
	Quantity    Quantity  `json:"quantity"`
	Boxes       int       `json:"boxes"`
	Destination string    `json:"destination"`
	RecipientID string    `json:"recipientId"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DeliveryFields holds the user-editable fields of a Delivery.
// ID and CreatedAt are assigned at creation and never change.
type DeliveryFields struct {
	Date        date.Date
	Quantity    Quantity
	Boxes       int
	Destination string
	RecipientID string
	Notes       string
}

func (f DeliveryFields) apply(d *Delivery) {
	d.Date = f.Date
	d.Quantity = f.Quantity
	d.Boxes = f.Boxes
	d.Destination = f.Destination
	d.RecipientID = f.RecipientID
	d.Notes = f.Notes
}

// Fields returns the user-editable fields of d.
func (d Delivery) Fields() DeliveryFields {
	return DeliveryFields{
		Date:        d.Date,
		Quantity:    d.Quantity,
		Boxes:       d.Boxes,
		Destination: d.Destination,
		RecipientID: d.RecipientID,
		Notes:       d.Notes,
	}
}
