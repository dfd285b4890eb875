package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/ogrod/greenhouse"
)

// SummaryMarkdown renders the dashboard overview to a markdown string.
// Settlement amounts are masked unless showAmounts is set, mirroring the
// show/hide toggle of the dashboard.
func SummaryMarkdown(o *greenhouse.Overview, resolve func(string) string, showAmounts bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Greenhouse Dashboard on %s", o.Date))

	amount := "••••••"
	if showAmounts {
		amount = o.Settlements.AmountPaid.String()
	}
	doc.Table(md.TableSet{
		Header: []string{"Window", "Total"},
		Rows: [][]string{
			{
				fmt.Sprintf("Deliveries (last %d days)", greenhouse.DeliveryWindowDays),
				fmt.Sprintf("%skg in %d boxes", o.Deliveries.Quantity, o.Deliveries.Boxes),
			},
			{
				fmt.Sprintf("Settlements (last %d days)", greenhouse.SettlementWindowDays),
				amount,
			},
		},
	})

	doc.H2("Latest Delivery")
	if d := o.LatestDelivery; d != nil {
		doc.PlainText(fmt.Sprintf("%s: %skg in %d boxes to %s for %s",
			d.Date, d.Quantity, d.Boxes, d.Destination, resolve(d.RecipientID)))
		if d.Notes != "" {
			doc.PlainText("Notes: " + d.Notes)
		}
	} else {
		doc.PlainText("No deliveries yet.")
	}

	doc.H2("Latest Settlement")
	if s := o.LatestSettlement; s != nil {
		paid := "••••••"
		if showAmounts {
			paid = s.AmountPaid.String()
		}
		doc.PlainText(fmt.Sprintf("%s - %s: %skg paid %s to %s",
			s.FromDate, s.ToDate, s.Quantity, paid, resolve(s.RecipientID)))
		if s.Notes != "" {
			doc.PlainText("Notes: " + s.Notes)
		}
	} else {
		doc.PlainText("No settlements yet.")
	}

	return doc.String()
}
