package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"hatecrimes/internal"
)

// parseXLSX reads the first sheet of a workbook. The first non-empty row names
// the columns; each later row becomes one record. excelize drops trailing
// empty cells, so those columns are filled with "". Date columns stored as
// Excel date cells are read back as YYYY-MM-DD.
func parseXLSX(content []byte) ([]internal.RawRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	var headers []string
	out := []internal.RawRecord{}
	for r, row := range rows {
		if isBlankRow(row) {
			continue
		}
		if headers == nil {
			headers = normalizeHeaders(row)
			continue
		}
		rec := internal.RawRecord{}
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i >= len(row) {
				rec[h] = ""
				continue
			}
			if h == internal.FieldOccurrenceDate || h == internal.FieldReportedDate {
				rec[h] = dateCellValue(f, sheet, i+1, r+1, row[i])
				continue
			}
			rec[h] = row[i]
		}
		out = append(out, rec)
	}
	if headers == nil {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}
	return out, nil
}

// dateCellValue converts a numeric date serial to YYYY-MM-DD. Text cells are
// returned as they are so the validator sees what the sheet says.
func dateCellValue(f *excelize.File, sheet string, col, row int, raw string) string {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}
	typ, err := f.GetCellType(sheet, cell)
	if err != nil {
		return raw
	}
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeDate:
	default:
		return raw
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return raw
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return raw
	}
	return t.Format(internal.DateLayout)
}

// parseJSON reads an array of objects. Values keep their decoded JSON type so
// numbers and nulls surface as type errors.
func parseJSON(content []byte) ([]internal.RawRecord, error) {
	var rows []map[string]any
	if err := json.Unmarshal(content, &rows); err != nil {
		return nil, fmt.Errorf("expected a JSON array of objects: %w", err)
	}
	out := make([]internal.RawRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, internal.RawRecord(row))
	}
	return out, nil
}

func normalizeHeaders(row []string) []string {
	out := make([]string, 0, len(row))
	for _, h := range row {
		h = strings.ToLower(strings.TrimSpace(h))
		h = strings.ReplaceAll(h, " ", "_")
		out = append(out, h)
	}
	return out
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
