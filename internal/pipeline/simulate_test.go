package pipeline

import (
	"reflect"
	"testing"
	"time"

	"hatecrimes/internal"
	"hatecrimes/internal/catalog"
	"hatecrimes/internal/config"
)

func testSimulateOptions() SimulateOptions {
	return SimulateOptions{
		Rows:           50,
		Start:          time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
		End:            time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		SeedOccurrence: 853,
		SeedReported:   123,
		SeedChoice:     304,
	}
}

func TestSimulateProducesValidRows(t *testing.T) {
	c := testCatalogs()
	rows, err := Simulate(c, testSimulateOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 50 {
		t.Fatalf("len=%d", len(rows))
	}

	res := NewValidator(c).ValidateBatch(rows)
	if len(res.Errors) != 0 {
		t.Fatalf("clean simulation rejected: %+v", res.Errors[0])
	}
	start := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	for _, rec := range res.Validated {
		if rec.OccurrenceDate.Before(start) || rec.OccurrenceDate.After(end) {
			t.Fatalf("occurrence out of range: %v", rec.OccurrenceDate)
		}
		if rec.ReportedDate.Before(start) || rec.ReportedDate.After(end) {
			t.Fatalf("reported out of range: %v", rec.ReportedDate)
		}
	}
	for _, row := range rows {
		if _, ok := row[internal.FieldBias].(string); !ok {
			t.Fatalf("bias missing: %v", row)
		}
	}
}

func TestSimulateDeterministic(t *testing.T) {
	a, err := Simulate(testCatalogs(), testSimulateOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Simulate(testCatalogs(), testSimulateOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same options produced different rows")
	}
}

func TestSimulateDirtyRows(t *testing.T) {
	opts := testSimulateOptions()
	opts.DirtyRate = 1
	rows, err := Simulate(testCatalogs(), opts)
	if err != nil {
		t.Fatal(err)
	}
	res := NewValidator(testCatalogs()).ValidateBatch(rows)
	if len(res.Validated) != 0 || len(res.Errors) != len(rows) {
		t.Fatalf("validated=%d errors=%d", len(res.Validated), len(res.Errors))
	}
	for _, verr := range res.Errors {
		if len(verr.FieldNames()) != 1 {
			t.Fatalf("dirty row should break one field: %+v", verr)
		}
	}
}

func TestSimulateRejectsBadOptions(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(o *SimulateOptions)
	}{
		{name: "negative rows", mutate: func(o *SimulateOptions) { o.Rows = -1 }},
		{name: "end before start", mutate: func(o *SimulateOptions) { o.End = o.Start.AddDate(0, 0, -1) }},
		{name: "dirty rate above one", mutate: func(o *SimulateOptions) { o.DirtyRate = 1.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := testSimulateOptions()
			tc.mutate(&opts)
			if _, err := Simulate(testCatalogs(), opts); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	empty := catalog.New(nil, []string{"Apartment"}, []string{"Assault"}, []string{"X (1)"})
	if _, err := Simulate(empty, testSimulateOptions()); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}

func TestSimulateOptionsFromConfig(t *testing.T) {
	cfg := config.Config{
		SimulateRows:           7,
		SimulateSeedOccurrence: 853,
		SimulateSeedReported:   123,
		SimulateStartDate:      "2018-01-01",
		SimulateEndDate:        "2024-12-31",
	}
	opts, err := SimulateOptionsFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Rows != 7 || opts.SeedOccurrence != 853 || opts.End.Year() != 2024 {
		t.Fatalf("opts=%+v", opts)
	}

	cfg.SimulateEndDate = "31/12/2024"
	if _, err := SimulateOptionsFromConfig(cfg); err == nil {
		t.Fatal("expected error for bad end date")
	}
}
