package cmd

import (
	"testing"

	"github.com/ogrod/greenhouse/date"
)

func TestParseOptionalDate(t *testing.T) {
	d, err := parseOptionalDate("")
	if err != nil || !d.IsZero() {
		t.Errorf("parseOptionalDate(\"\") = %v, %v, want zero date", d, err)
	}

	d, err = parseOptionalDate("2024-03-01")
	if err != nil || d != date.MustParse("2024-03-01") {
		t.Errorf("parseOptionalDate(2024-03-01) = %v, %v", d, err)
	}

	if _, err := parseOptionalDate("yesterday"); err == nil {
		t.Error("parseOptionalDate accepted garbage")
	}
}
