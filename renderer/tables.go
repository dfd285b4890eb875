package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	md "github.com/nao1215/markdown"
	"github.com/ogrod/greenhouse"
)

// DeliveriesMarkdown renders a delivery projection as a markdown table.
// resolve maps a recipient id to a display name.
func DeliveriesMarkdown(deliveries []greenhouse.Delivery, resolve func(string) string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Deliveries")
	if len(deliveries) == 0 {
		doc.PlainText("No deliveries found.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignLeft,
		},
		Header: []string{"Date", "Qty (kg)", "Boxes", "Recipient", "Destination", "Notes"},
	}
	for _, d := range deliveries {
		table.Rows = append(table.Rows, []string{
			d.Date.String(),
			d.Quantity.String(),
			strconv.Itoa(d.Boxes),
			resolve(d.RecipientID),
			d.Destination,
			d.Notes,
		})
	}
	doc.Table(table)

	return doc.String()
}

// SettlementsMarkdown renders a settlement projection as a markdown table.
func SettlementsMarkdown(settlements []greenhouse.Settlement, resolve func(string) string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Settlements")
	if len(settlements) == 0 {
		doc.PlainText("No settlements found.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft,
		},
		Header: []string{"Period", "Recipient", "Qty (kg)", "Amount", "Notes"},
	}
	for _, s := range settlements {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%s - %s", s.FromDate, s.ToDate),
			resolve(s.RecipientID),
			s.Quantity.String(),
			s.AmountPaid.String(),
			s.Notes,
		})
	}
	doc.Table(table)

	return doc.String()
}

// PartnersMarkdown renders the partner collection with usage counts.
// usage reports how many deliveries and settlements reference a partner.
func PartnersMarkdown(partners []greenhouse.Partner, usage func(string) (int, int)) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Partners")
	if len(partners) == 0 {
		doc.PlainText("No partners found.")
		return doc.String()
	}

	table := md.TableSet{
		Header: []string{"ID", "Name", "Deliveries", "Settlements", "Since"},
	}
	for _, p := range partners {
		deliveries, settlements := usage(p.ID)
		table.Rows = append(table.Rows, []string{
			p.ID,
			p.Name,
			strconv.Itoa(deliveries),
			strconv.Itoa(settlements),
			p.CreatedAt.Format("2006-01-02"),
		})
	}
	doc.Table(table)

	return doc.String()
}
