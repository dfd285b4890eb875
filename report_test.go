package greenhouse

import (
	"testing"

	"github.com/ogrod/greenhouse/date"
)

func TestParseReportKind(t *testing.T) {
	for in, want := range map[string]ReportKind{
		"deliveries":  DeliveriesReport,
		"settlements": SettlementsReport,
		"both":        BothReport,
	} {
		got, err := ParseReportKind(in)
		if err != nil || got != want {
			t.Errorf("ParseReportKind(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseReportKind("everything"); err == nil {
		t.Error("ParseReportKind accepted an unknown kind")
	}
}

func TestParseDeliveryFieldMask(t *testing.T) {
	t.Run("empty means all", func(t *testing.T) {
		m, err := ParseDeliveryFieldMask("")
		if err != nil {
			t.Fatal(err)
		}
		if m != AllDeliveryFields() {
			t.Errorf("mask = %+v, want all fields", m)
		}
	})
	t.Run("subset", func(t *testing.T) {
		m, err := ParseDeliveryFieldMask("date, quantity")
		if err != nil {
			t.Fatal(err)
		}
		want := DeliveryFieldMask{Date: true, Quantity: true}
		if m != want {
			t.Errorf("mask = %+v, want %+v", m, want)
		}
	})
	t.Run("unknown field", func(t *testing.T) {
		if _, err := ParseDeliveryFieldMask("date,weight"); err == nil {
			t.Error("accepted an unknown field")
		}
	})
}

func TestParseSettlementFieldMask(t *testing.T) {
	m, err := ParseSettlementFieldMask("period,amount")
	if err != nil {
		t.Fatal(err)
	}
	want := SettlementFieldMask{DateRange: true, AmountPaid: true}
	if m != want {
		t.Errorf("mask = %+v, want %+v", m, want)
	}
	if _, err := ParseSettlementFieldMask("price"); err == nil {
		t.Error("accepted an unknown field")
	}
}

func reportRegistry(t *testing.T) (*Registry, Partner) {
	t.Helper()
	reg := newTestRegistry(t)
	p, _ := reg.AddPartner(PartnerFields{Name: "Hofladen Krause"})
	reg.AddDelivery(DeliveryFields{Date: date.MustParse("2024-03-01"), Quantity: Q(10), Boxes: 2, Destination: "Market", RecipientID: p.ID, Notes: "first"})
	reg.AddDelivery(DeliveryFields{Date: date.MustParse("2024-03-05"), Quantity: Q(20), Boxes: 4, RecipientID: "gone"})
	reg.AddSettlement(SettlementFields{FromDate: date.MustParse("2024-03-01"), ToDate: date.MustParse("2024-03-07"), RecipientID: p.ID, Quantity: Q(30), AmountPaid: A(150)})
	return reg, p
}

func TestBuildReport_Sections(t *testing.T) {
	reg, _ := reportRegistry(t)

	tests := []struct {
		kind ReportKind
		want []string
	}{
		{DeliveriesReport, []string{"DELIVERIES"}},
		{SettlementsReport, []string{"SETTLEMENTS"}},
		{BothReport, []string{"DELIVERIES", "SETTLEMENTS"}},
	}
	for _, tt := range tests {
		report := BuildReport(reg, ReportOptions{
			Kind:             tt.kind,
			DeliveryFields:   AllDeliveryFields(),
			SettlementFields: AllSettlementFields(),
		})
		if len(report.Sections) != len(tt.want) {
			t.Errorf("kind %s: got %d sections, want %d", tt.kind, len(report.Sections), len(tt.want))
			continue
		}
		for i, title := range tt.want {
			if report.Sections[i].Title != title {
				t.Errorf("kind %s: section %d = %q, want %q", tt.kind, i, report.Sections[i].Title, title)
			}
		}
	}
}

func TestBuildReport_Period(t *testing.T) {
	reg, _ := reportRegistry(t)

	tests := []struct {
		name     string
		from, to string
		want     string
	}{
		{"no bounds", "", "", ""},
		{"both bounds", "2024-03-01", "2024-03-31", "2024-03-01 - 2024-03-31"},
		{"open start", "", "2024-03-31", "All time - 2024-03-31"},
		{"open end", "2024-03-01", "", "2024-03-01 - Present"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := ReportOptions{Kind: DeliveriesReport, DeliveryFields: AllDeliveryFields()}
			if tt.from != "" {
				opts.From = date.MustParse(tt.from)
			}
			if tt.to != "" {
				opts.To = date.MustParse(tt.to)
			}
			report := BuildReport(reg, opts)
			if report.Period != tt.want {
				t.Errorf("Period = %q, want %q", report.Period, tt.want)
			}
		})
	}
}

func TestBuildReport_MaskAndRecipientResolution(t *testing.T) {
	reg, p := reportRegistry(t)

	report := BuildReport(reg, ReportOptions{
		Kind:           DeliveriesReport,
		SortBy:         ByDate,
		Order:          Ascending,
		DeliveryFields: DeliveryFieldMask{Date: true, Recipient: true},
	})
	rows := report.Sections[0].Rows
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	// Only the masked-in fields appear, in display order.
	if len(rows[0].Fields) != 2 || rows[0].Fields[0].Label != "Date" || rows[0].Fields[1].Label != "Recipient" {
		t.Errorf("row fields = %+v, want Date and Recipient only", rows[0].Fields)
	}
	if rows[0].Fields[1].Value != p.Name {
		t.Errorf("recipient = %q, want %q", rows[0].Fields[1].Value, p.Name)
	}
	// A dangling recipient reference renders as Unknown.
	if rows[1].Fields[1].Value != "Unknown" {
		t.Errorf("dangling recipient = %q, want Unknown", rows[1].Fields[1].Value)
	}
	// Notes are excluded when masked out.
	if rows[0].Notes != "" {
		t.Errorf("notes = %q, want empty with notes masked out", rows[0].Notes)
	}
}

func TestBuildReport_RecipientFilter(t *testing.T) {
	reg, p := reportRegistry(t)

	report := BuildReport(reg, ReportOptions{
		Kind:             BothReport,
		RecipientID:      p.ID,
		DeliveryFields:   AllDeliveryFields(),
		SettlementFields: AllSettlementFields(),
	})
	if report.Recipient != p.Name {
		t.Errorf("Recipient = %q, want %q", report.Recipient, p.Name)
	}
	if got := len(report.Sections[0].Rows); got != 1 {
		t.Errorf("got %d delivery rows, want 1", got)
	}
	if got := len(report.Sections[1].Rows); got != 1 {
		t.Errorf("got %d settlement rows, want 1", got)
	}
}

func TestBuildReport_SettlementRow(t *testing.T) {
	reg, p := reportRegistry(t)

	report := BuildReport(reg, ReportOptions{
		Kind:             SettlementsReport,
		SettlementFields: AllSettlementFields(),
	})
	rows := report.Sections[0].Rows
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	want := []Field{
		{"Period", "2024-03-01 - 2024-03-07"},
		{"Recipient", p.Name},
		{"Qty", "30kg"},
		{"Amount", A(150).String()},
	}
	if len(rows[0].Fields) != len(want) {
		t.Fatalf("fields = %+v, want %+v", rows[0].Fields, want)
	}
	for i := range want {
		if rows[0].Fields[i] != want[i] {
			t.Errorf("field %d = %+v, want %+v", i, rows[0].Fields[i], want[i])
		}
	}
}
