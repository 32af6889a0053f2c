package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"hatecrimes/internal"
)

const (
	sheetValidated = "validated"
	sheetErrors    = "errors"
	sheetRecords   = "records"
)

// ExportResultToXLSX writes accepted rows to the "validated" sheet and one line
// per field failure to the "errors" sheet.
func ExportResultToXLSX(result internal.BatchResult, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetValidated); err != nil {
		return err
	}
	if _, err := f.NewSheet(sheetErrors); err != nil {
		return err
	}

	writeRow(f, sheetValidated, 1, stringsToAny(internal.RecordFields))
	for i, rec := range result.Validated {
		writeRow(f, sheetValidated, i+2, []any{
			rec.OccurrenceDate.Format(internal.DateLayout),
			rec.ReportedDate.Format(internal.DateLayout),
			rec.Division,
			rec.LocationType,
			rec.PrimaryOffence,
			rec.Neighbourhood,
			string(rec.Arrest),
		})
	}

	writeRow(f, sheetErrors, 1, []any{"row_index", "field", "value", "rule", "kind", "message"})
	r := 2
	for _, verr := range result.Errors {
		for _, fe := range verr.Fields {
			writeRow(f, sheetErrors, r, []any{verr.Index, fe.Field, formatValue(fe.Value), string(fe.Rule), string(fe.Rule.Kind()), fe.Message})
			r++
		}
	}

	return save(f, outputPath)
}

// ExportRawRecordsToXLSX writes records with the validated columns first,
// followed by any extra columns in the order given.
func ExportRawRecordsToXLSX(records []internal.RawRecord, extra []string, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetRecords); err != nil {
		return err
	}

	headers := append(append([]string{}, internal.RecordFields...), extra...)
	writeRow(f, sheetRecords, 1, stringsToAny(headers))
	for i, rec := range records {
		values := make([]any, 0, len(headers))
		for _, h := range headers {
			values = append(values, formatValue(rec[h]))
		}
		writeRow(f, sheetRecords, i+2, values)
	}

	return save(f, outputPath)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func save(f *excelize.File, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func stringsToAny(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	default:
		return fmt.Sprint(value)
	}
}
