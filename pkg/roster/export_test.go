package roster

import (
	"bytes"
	"strings"
	"testing"
)

func TestExportRoundTrip(t *testing.T) {
	slots := slotted(
		Candidate{Name: "J. Tedesco", Surname: "Tedesco", Initial: "J"},
		Candidate{Name: "N. Hynes", Surname: "Hynes", Initial: "N"},
	)

	var buf bytes.Buffer
	if err := ExportCSV(&buf, slots); err != nil {
		t.Fatalf("export: %v", err)
	}
	rows, err := ParseExport(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %v", rows)
	}
	if rows[0].Position != Hooker || rows[0].Name != "J. Tedesco" {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].Position != Middle || rows[1].Name != "N. Hynes" {
		t.Fatalf("row 1 = %+v", rows[1])
	}
}

func TestExportSkipsEmptySlots(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, emptySlots()); err != nil {
		t.Fatalf("export: %v", err)
	}
	if got := buf.String(); got != "Position,Player Name\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestParseExportWithoutHeader(t *testing.T) {
	rows, err := ParseExport(strings.NewReader("HOK,J. Tedesco\nMID,N. Hynes\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 || rows[0].Name != "J. Tedesco" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestParseExportRaggedRow(t *testing.T) {
	if _, err := ParseExport(strings.NewReader("HOK,J. Tedesco,extra\n")); err == nil {
		t.Fatalf("expected an error for a three-field row")
	}
}
