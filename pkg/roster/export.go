package roster

import (
	"encoding/csv"
	"fmt"
	"io"
)

var exportHeader = []string{"Position", "Player Name"}

// ExportCSV writes the filled slots as two-column Position,Player Name rows
// in slot order, preceded by a header row.
func ExportCSV(w io.Writer, slots []Slot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, s := range slots {
		if s.Player == nil {
			continue
		}
		if err := cw.Write([]string{string(s.Position), s.Player.Name}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportRow is one parsed line of a roster export.
type ExportRow struct {
	Position PositionCode
	Name     string
}

// ParseExport reads rows previously written by ExportCSV back into ordered
// (position, name) pairs. The header row is optional.
func ParseExport(r io.Reader) ([]ExportRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	var out []ExportRow
	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse export: %w", err)
		}
		if first {
			first = false
			if rec[0] == exportHeader[0] && rec[1] == exportHeader[1] {
				continue
			}
		}
		out = append(out, ExportRow{Position: PositionCode(rec[0]), Name: rec[1]})
	}
	return out, nil
}
