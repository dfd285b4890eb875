// Package renderer turns registry projections into markdown for the
// terminal and into paginated plain-text documents for export. It only
// consumes pre-filtered, pre-sorted and field-masked row sets; it never
// reaches back into the registry.
package renderer

import (
	"fmt"
	"strings"

	"github.com/ogrod/greenhouse"
)

// flattenRow renders one report row as a numbered
// "Label: value | Label: value" line, followed by an indented notes line
// when the row carries notes.
func flattenRow(index int, row greenhouse.Row) []string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. ", index+1)
	for _, f := range row.Fields {
		fmt.Fprintf(&b, "%s: %s | ", f.Label, f.Value)
	}
	lines := []string{strings.TrimSuffix(b.String(), " | ")}
	if row.Notes != "" {
		lines = append(lines, "   Notes: "+row.Notes)
	}
	return lines
}
