package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/ogrod/greenhouse"
	"github.com/ogrod/greenhouse/date"
)

func resolveNames(names map[string]string) func(string) string {
	return func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return "Unknown"
	}
}

func TestDeliveriesMarkdown(t *testing.T) {
	resolve := resolveNames(map[string]string{"p1": "Hofladen Krause"})

	t.Run("empty", func(t *testing.T) {
		out := DeliveriesMarkdown(nil, resolve)
		if !strings.Contains(out, "No deliveries found.") {
			t.Errorf("output missing empty notice:\n%s", out)
		}
	})

	deliveries := []greenhouse.Delivery{
		{Date: date.MustParse("2024-03-01"), Quantity: greenhouse.Q(10.5), Boxes: 2, RecipientID: "p1", Destination: "Market", Notes: "first"},
		{Date: date.MustParse("2024-03-05"), Quantity: greenhouse.Q(7), RecipientID: "gone"},
	}
	out := DeliveriesMarkdown(deliveries, resolve)
	for _, want := range []string{"# Deliveries", "2024-03-01", "10.5", "Hofladen Krause", "Unknown", "first"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSettlementsMarkdown(t *testing.T) {
	settlements := []greenhouse.Settlement{{
		FromDate:    date.MustParse("2024-03-01"),
		ToDate:      date.MustParse("2024-03-07"),
		RecipientID: "p1",
		Quantity:    greenhouse.Q(30),
		AmountPaid:  greenhouse.A(150),
	}}
	out := SettlementsMarkdown(settlements, resolveNames(map[string]string{"p1": "Krause"}))
	for _, want := range []string{"# Settlements", "2024-03-01 - 2024-03-07", "Krause", "30"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPartnersMarkdown(t *testing.T) {
	partners := []greenhouse.Partner{
		{ID: "p1", Name: "Krause", CreatedAt: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)},
	}
	out := PartnersMarkdown(partners, func(string) (int, int) { return 4, 2 })
	for _, want := range []string{"# Partners", "Krause", "4", "2", "2024-01-05"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryMarkdown_AmountMasking(t *testing.T) {
	latest := greenhouse.Settlement{
		FromDate:   date.MustParse("2024-03-01"),
		ToDate:     date.MustParse("2024-03-07"),
		Quantity:   greenhouse.Q(30),
		AmountPaid: greenhouse.A(150),
	}
	o := &greenhouse.Overview{
		Date:             date.MustParse("2024-03-15"),
		Settlements:      greenhouse.SettlementStats{AmountPaid: greenhouse.A(150), Count: 1},
		LatestSettlement: &latest,
	}
	resolve := resolveNames(nil)

	hidden := SummaryMarkdown(o, resolve, false)
	if !strings.Contains(hidden, "••••••") {
		t.Error("masked summary does not hide amounts")
	}
	if strings.Contains(hidden, greenhouse.A(150).String()) {
		t.Errorf("masked summary leaks the amount:\n%s", hidden)
	}

	shown := SummaryMarkdown(o, resolve, true)
	if !strings.Contains(shown, greenhouse.A(150).String()) {
		t.Errorf("unmasked summary missing the amount:\n%s", shown)
	}
	if strings.Contains(shown, "••••••") {
		t.Error("unmasked summary still masks amounts")
	}
}

func TestSummaryMarkdown_EmptyCollections(t *testing.T) {
	o := &greenhouse.Overview{Date: date.MustParse("2024-03-15")}
	out := SummaryMarkdown(o, resolveNames(nil), true)
	for _, want := range []string{"No deliveries yet.", "No settlements yet."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReportMarkdown(t *testing.T) {
	report := &greenhouse.Report{
		Title:  "Greenhouse Report",
		Period: "All time - Present",
		Sections: []greenhouse.Section{
			{Title: "DELIVERIES", Rows: []greenhouse.Row{
				{Fields: []greenhouse.Field{{Label: "Date", Value: "2024-03-01"}}},
			}},
			{Title: "SETTLEMENTS"},
		},
	}
	out := ReportMarkdown(report)
	for _, want := range []string{
		"# Greenhouse Report",
		"Period: All time - Present",
		"## DELIVERIES",
		"1. Date: 2024-03-01",
		"## SETTLEMENTS",
		"No records.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
