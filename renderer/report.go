package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"
	"github.com/ogrod/greenhouse"
)

// ReportMarkdown renders a report to a markdown string for terminal
// display.
func ReportMarkdown(r *greenhouse.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(r.Title)
	if r.Period != "" {
		doc.PlainText("Period: " + r.Period)
	}
	if r.Recipient != "" {
		doc.PlainText("Recipient: " + r.Recipient)
	}

	for _, section := range r.Sections {
		doc.H2(section.Title)
		if len(section.Rows) == 0 {
			doc.PlainText("No records.")
			continue
		}
		for i, row := range section.Rows {
			for _, l := range flattenRow(i, row) {
				doc.PlainText(l)
			}
		}
	}

	return doc.String()
}
