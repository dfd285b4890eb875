package greenhouse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ogrod/greenhouse/date"
)

// ReportKind selects which entity sections a report contains.
type ReportKind int

const (
	DeliveriesReport ReportKind = iota
	SettlementsReport
	BothReport
)

func (k ReportKind) String() string {
	switch k {
	case DeliveriesReport:
		return "deliveries"
	case SettlementsReport:
		return "settlements"
	case BothReport:
		return "both"
	default:
		return "unknown"
	}
}

// ParseReportKind parses a string into a ReportKind.
func ParseReportKind(s string) (ReportKind, error) {
	switch s {
	case "deliveries":
		return DeliveriesReport, nil
	case "settlements":
		return SettlementsReport, nil
	case "both":
		return BothReport, nil
	default:
		return 0, fmt.Errorf("unknown report kind: %q", s)
	}
}

func (k ReportKind) hasDeliveries() bool  { return k == DeliveriesReport || k == BothReport }
func (k ReportKind) hasSettlements() bool { return k == SettlementsReport || k == BothReport }

// DeliveryFieldMask toggles delivery fields in a report.
type DeliveryFieldMask struct {
	Date        bool
	Quantity    bool
	Boxes       bool
	Recipient   bool
	Destination bool
	Notes       bool
}

// AllDeliveryFields returns a mask with every field included.
func AllDeliveryFields() DeliveryFieldMask {
	return DeliveryFieldMask{Date: true, Quantity: true, Boxes: true, Recipient: true, Destination: true, Notes: true}
}

// ParseDeliveryFieldMask parses a comma-separated field list
// (e.g. "date,quantity,recipient"). An empty string means all fields.
func ParseDeliveryFieldMask(s string) (DeliveryFieldMask, error) {
	if s == "" {
		return AllDeliveryFields(), nil
	}
	var m DeliveryFieldMask
	for _, field := range strings.Split(s, ",") {
		switch strings.TrimSpace(field) {
		case "date":
			m.Date = true
		case "quantity":
			m.Quantity = true
		case "boxes":
			m.Boxes = true
		case "recipient":
			m.Recipient = true
		case "destination":
			m.Destination = true
		case "notes":
			m.Notes = true
		default:
			return m, fmt.Errorf("unknown delivery field: %q", field)
		}
	}
	return m, nil
}

// SettlementFieldMask toggles settlement fields in a report.
type SettlementFieldMask struct {
	DateRange  bool
	Recipient  bool
	Quantity   bool
	AmountPaid bool
	Notes      bool
}

// AllSettlementFields returns a mask with every field included.
func AllSettlementFields() SettlementFieldMask {
	return SettlementFieldMask{DateRange: true, Recipient: true, Quantity: true, AmountPaid: true, Notes: true}
}

// ParseSettlementFieldMask parses a comma-separated field list
// (e.g. "period,recipient,amount"). An empty string means all fields.
func ParseSettlementFieldMask(s string) (SettlementFieldMask, error) {
	if s == "" {
		return AllSettlementFields(), nil
	}
	var m SettlementFieldMask
	for _, field := range strings.Split(s, ",") {
		switch strings.TrimSpace(field) {
		case "period":
			m.DateRange = true
		case "recipient":
			m.Recipient = true
		case "quantity":
			m.Quantity = true
		case "amount":
			m.AmountPaid = true
		case "notes":
			m.Notes = true
		default:
			return m, fmt.Errorf("unknown settlement field: %q", field)
		}
	}
	return m, nil
}

// ReportOptions selects, orders and masks the rows of a report.
type ReportOptions struct {
	Kind        ReportKind
	From, To    date.Date
	RecipientID string
	SortBy      SortKey
	Order       Order

	DeliveryFields   DeliveryFieldMask
	SettlementFields SettlementFieldMask
}

// Field is one label:value cell of a flattened report row.
type Field struct {
	Label, Value string
}

// Row is a flattened record: its included fields in display order, plus an
// optional notes line.
type Row struct {
	Fields []Field
	Notes  string
}

// Section groups the rows of one entity kind under a header.
type Section struct {
	Title string
	Rows  []Row
}

// Report is the filtered, sorted and field-masked row set handed to the
// document writer. The writer owns layout and pagination; the report owns
// nothing beyond its rows.
type Report struct {
	Title     string
	Period    string // empty when no date bound is set
	Recipient string // resolved partner name when filtered by recipient
	Sections  []Section
}

// BuildReport assembles a report from the registry's current collections.
func BuildReport(r *Registry, opts ReportOptions) *Report {
	report := &Report{Title: "Greenhouse Report"}

	if !opts.From.IsZero() || !opts.To.IsZero() {
		from, to := "All time", "Present"
		if !opts.From.IsZero() {
			from = opts.From.String()
		}
		if !opts.To.IsZero() {
			to = opts.To.String()
		}
		report.Period = from + " - " + to
	}
	if opts.RecipientID != "" {
		report.Recipient = r.PartnerName(opts.RecipientID)
	}

	if opts.Kind.hasDeliveries() {
		deliveries := FilterDeliveries(r.Deliveries(), DeliveryFilter{
			From: opts.From, To: opts.To, RecipientID: opts.RecipientID,
		})
		deliveries = SortDeliveries(deliveries, opts.SortBy, opts.Order)

		section := Section{Title: "DELIVERIES"}
		for _, d := range deliveries {
			section.Rows = append(section.Rows, deliveryRow(d, opts.DeliveryFields, r))
		}
		report.Sections = append(report.Sections, section)
	}

	if opts.Kind.hasSettlements() {
		settlements := FilterSettlements(r.Settlements(), SettlementFilter{
			From: opts.From, To: opts.To, RecipientID: opts.RecipientID,
		})
		settlements = SortSettlements(settlements, opts.SortBy, opts.Order)

		section := Section{Title: "SETTLEMENTS"}
		for _, s := range settlements {
			section.Rows = append(section.Rows, settlementRow(s, opts.SettlementFields, r))
		}
		report.Sections = append(report.Sections, section)
	}

	return report
}

func deliveryRow(d Delivery, mask DeliveryFieldMask, r *Registry) Row {
	var row Row
	if mask.Date {
		row.Fields = append(row.Fields, Field{"Date", d.Date.String()})
	}
	if mask.Quantity {
		row.Fields = append(row.Fields, Field{"Qty", d.Quantity.String() + "kg"})
	}
	if mask.Boxes {
		row.Fields = append(row.Fields, Field{"Boxes", strconv.Itoa(d.Boxes)})
	}
	if mask.Recipient {
		row.Fields = append(row.Fields, Field{"Recipient", r.PartnerName(d.RecipientID)})
	}
	if mask.Destination {
		row.Fields = append(row.Fields, Field{"Destination", d.Destination})
	}
	if mask.Notes {
		row.Notes = d.Notes
	}
	return row
}

func settlementRow(s Settlement, mask SettlementFieldMask, r *Registry) Row {
	var row Row
	if mask.DateRange {
		row.Fields = append(row.Fields, Field{"Period", s.FromDate.String() + " - " + s.ToDate.String()})
	}
	if mask.Recipient {
		row.Fields = append(row.Fields, Field{"Recipient", r.PartnerName(s.RecipientID)})
	}
	if mask.Quantity {
		row.Fields = append(row.Fields, Field{"Qty", s.Quantity.String() + "kg"})
	}
	if mask.AmountPaid {
		row.Fields = append(row.Fields, Field{"Amount", s.AmountPaid.String()})
	}
	if mask.Notes {
		row.Notes = s.Notes
	}
	return row
}
