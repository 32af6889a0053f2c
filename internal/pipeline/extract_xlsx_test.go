package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"hatecrimes/internal"
)

func mkXLSX(rows [][]any) []byte {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	buf := bytes.NewBuffer(nil)
	_, _ = f.WriteTo(buf)
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	blob := mkXLSX([][]any{
		{"Occurrence Date", "reported_date", "division", "location_type", "bias", "primary_offence", "neighbourhood", "arrest"},
		{"2019-03-02", "2019-03-05", "D11", "Apartment", "RACE_BIAS", "Assault", "Wexford/Maryvale (119)", "Yes"},
		{},
		{"2020-01-01", "2020-01-02", "NA", "Apartment", "AGE_BIAS", "Assault", "NSA"},
	})
	records, err := parseXLSX(blob)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("len=%d", len(records))
	}
	if records[0][internal.FieldOccurrenceDate] != "2019-03-02" {
		t.Fatalf("header not normalized: %v", records[0])
	}
	if records[0][internal.FieldBias] != "RACE_BIAS" {
		t.Fatalf("extra column lost: %v", records[0])
	}
	if v, ok := records[1][internal.FieldArrest]; !ok || v != "" {
		t.Fatalf("trailing empty cell should be an empty string, got %v (present=%v)", v, ok)
	}
}

func TestParseXLSXWithoutHeader(t *testing.T) {
	if _, err := parseXLSX(mkXLSX(nil)); err == nil {
		t.Fatal("expected error for empty sheet")
	}
}

func TestExtractRecordsFromInputJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.json")
	body := `[{"occurrence_date": "2019-03-02", "arrest": "Yes"}, {"division": 11, "arrest": null}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	records, err := ExtractRecordsFromInput("json", path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[0][internal.FieldArrest] != "Yes" {
		t.Fatalf("records=%v", records)
	}
	if _, ok := records[1][internal.FieldDivision].(float64); !ok {
		t.Fatalf("numbers should keep their JSON type: %T", records[1][internal.FieldDivision])
	}

	res := NewValidator(testCatalogs()).ValidateBatch(records)
	if len(res.Errors) != 2 {
		t.Fatalf("errors=%+v", res.Errors)
	}
}

func TestExtractRecordsFromInputUnsupported(t *testing.T) {
	if _, err := ExtractRecordsFromInput("csv", "rows.csv"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := ExtractRecordsFromInput("json", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseXLSXDateCells(t *testing.T) {
	blob := mkXLSX([][]any{
		{"occurrence_date", "reported_date", "division", "location_type", "primary_offence", "neighbourhood", "arrest"},
		{time.Date(2019, 3, 2, 0, 0, 0, 0, time.UTC), "2019-03-05", "D11", "Apartment", "Assault", "Wexford/Maryvale (119)", "Yes"},
		{"43526", time.Date(2019, 3, 5, 0, 0, 0, 0, time.UTC), "D11", "Apartment", "Assault", "Wexford/Maryvale (119)", "No"},
	})
	records, err := parseXLSX(blob)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("len=%d", len(records))
	}
	if got := records[0][internal.FieldOccurrenceDate]; got != "2019-03-02" {
		t.Fatalf("date cell read as %q", got)
	}
	if got := records[1][internal.FieldReportedDate]; got != "2019-03-05" {
		t.Fatalf("date cell read as %q", got)
	}
	if got := records[1][internal.FieldOccurrenceDate]; got != "43526" {
		t.Fatalf("text cell should stay as written, got %q", got)
	}

	res := NewValidator(testCatalogs()).ValidateBatch(records)
	if len(res.Validated) != 1 || len(res.Errors) != 1 || res.Errors[0].Index != 1 {
		t.Fatalf("validated=%d errors=%+v", len(res.Validated), res.Errors)
	}
}
