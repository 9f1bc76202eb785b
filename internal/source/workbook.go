package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/aggregate"
)

// DecodeWorkbook reads every worksheet of an xlsx workbook. The first
// non-empty row of a sheet is its header; blank rows are skipped and cells
// under an empty header are dropped. Cells are read unformatted so dates
// arrive as serial day numbers and counts without thousands separators.
func DecodeWorkbook(r io.Reader) (Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Dataset{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	defer func() { _ = f.Close() }()

	var ds Dataset
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return Dataset{}, fmt.Errorf("read sheet %q: %w", name, err)
		}
		ds.Sheets = append(ds.Sheets, aggregate.Sheet{Name: name, Records: rowsToRecords(rows)})
	}
	return ds, nil
}

func rowsToRecords(rows [][]string) []aggregate.Record {
	var header []string
	var out []aggregate.Record
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		if header == nil {
			header = row
			continue
		}
		rec := make(aggregate.Record, len(header))
		for i, label := range header {
			if strings.TrimSpace(label) == "" {
				continue
			}
			if i < len(row) {
				rec[label] = row[i]
			} else {
				rec[label] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
