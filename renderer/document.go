package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/ogrod/greenhouse"
)

// DefaultPageLines is the vertical line budget of one document page.
const DefaultPageLines = 48

// Document accumulates flattened lines and breaks them into fixed-height
// pages, standing in for the PDF writer: each page holds at most
// linesPerPage lines, and a section heading never starts on the last few
// lines of a page.
type Document struct {
	linesPerPage int
	pages        [][]string
}

// NewDocument creates an empty document. A non-positive linesPerPage
// falls back to DefaultPageLines.
func NewDocument(linesPerPage int) *Document {
	if linesPerPage <= 0 {
		linesPerPage = DefaultPageLines
	}
	return &Document{linesPerPage: linesPerPage}
}

func (d *Document) current() *[]string {
	if len(d.pages) == 0 {
		d.pages = append(d.pages, nil)
	}
	return &d.pages[len(d.pages)-1]
}

// AddLine appends one line, starting a new page when the current one is
// full.
func (d *Document) AddLine(line string) {
	page := d.current()
	if len(*page) >= d.linesPerPage {
		d.pages = append(d.pages, nil)
		page = &d.pages[len(d.pages)-1]
	}
	*page = append(*page, line)
}

// AddHeading appends a section heading followed by a blank line. The
// heading moves to a fresh page when fewer than three lines remain,
// so it is never orphaned at a page bottom.
func (d *Document) AddHeading(heading string) {
	page := d.current()
	if len(*page) > 0 && len(*page)+3 > d.linesPerPage {
		d.pages = append(d.pages, nil)
	}
	d.AddLine(heading)
	d.AddLine("")
}

// Pages returns the paginated lines.
func (d *Document) Pages() [][]string { return d.pages }

// WriteTo writes the document as plain text, one form feed between pages.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for i, page := range d.pages {
		if i > 0 {
			n, err := io.WriteString(w, "\f")
			written += int64(n)
			if err != nil {
				return written, err
			}
		}
		n, err := io.WriteString(w, strings.Join(page, "\n")+"\n")
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// WriteReport flattens a report into a paginated document and writes it
// to w.
func WriteReport(w io.Writer, r *greenhouse.Report, linesPerPage int) error {
	doc := NewDocument(linesPerPage)

	doc.AddHeading(r.Title)
	if r.Period != "" {
		doc.AddLine("Period: " + r.Period)
	}
	if r.Recipient != "" {
		doc.AddLine("Recipient: " + r.Recipient)
	}

	for _, section := range r.Sections {
		doc.AddLine("")
		doc.AddHeading(section.Title)
		for i, row := range section.Rows {
			for _, line := range flattenRow(i, row) {
				doc.AddLine(line)
			}
		}
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("could not write report document: %w", err)
	}
	return nil
}
