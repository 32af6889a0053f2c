package pipeline

import (
	"fmt"
	"math/rand/v2"
	"time"

	"hatecrimes/internal"
	"hatecrimes/internal/catalog"
	"hatecrimes/internal/config"
)

var biasChoices = []string{
	"AGE_BIAS",
	"MENTAL_OR_PHYSICAL_DISABILITY",
	"RACE_BIAS",
	"ETHNICITY_BIAS",
	"LANGUAGE_BIAS",
	"RELIGION_BIAS",
	"SEXUAL_ORIENTATION_BIAS",
	"GENDER_BIAS",
}

var arrestChoices = []string{string(internal.ArrestYes), string(internal.ArrestNo)}

// dirtyValues are the sentinel values seen in police extracts, plus a
// lowercase arrest flag.
var dirtyValues = []struct {
	field string
	value string
}{
	{internal.FieldDivision, sentinelNA},
	{internal.FieldLocationType, sentinelNA},
	{internal.FieldPrimaryOffence, sentinelNA},
	{internal.FieldPrimaryOffence, sentinelRemoved},
	{internal.FieldNeighbourhood, sentinelNeighbourhood},
	{internal.FieldArrest, "yes"},
}

type SimulateOptions struct {
	Rows           int
	Start          time.Time
	End            time.Time
	SeedOccurrence uint64
	SeedReported   uint64
	SeedChoice     uint64
	// DirtyRate is the probability that a row gets one sentinel value.
	DirtyRate float64
}

func SimulateOptionsFromConfig(cfg config.Config) (SimulateOptions, error) {
	start, err := time.Parse(internal.DateLayout, cfg.SimulateStartDate)
	if err != nil {
		return SimulateOptions{}, fmt.Errorf("SIMULATE_START_DATE: %w", err)
	}
	end, err := time.Parse(internal.DateLayout, cfg.SimulateEndDate)
	if err != nil {
		return SimulateOptions{}, fmt.Errorf("SIMULATE_END_DATE: %w", err)
	}
	return SimulateOptions{
		Rows:           cfg.SimulateRows,
		Start:          start,
		End:            end,
		SeedOccurrence: uint64(cfg.SimulateSeedOccurrence),
		SeedReported:   uint64(cfg.SimulateSeedReported),
		SeedChoice:     uint64(cfg.SimulateSeedChoice),
		DirtyRate:      cfg.SimulateDirtyRate,
	}, nil
}

// Simulate draws rows uniformly from the catalogs with dates in [Start, End].
// The same options always produce the same rows.
func Simulate(c *catalog.Catalogs, opts SimulateOptions) ([]internal.RawRecord, error) {
	if opts.Rows < 0 {
		return nil, fmt.Errorf("rows must not be negative: %d", opts.Rows)
	}
	if opts.End.Before(opts.Start) {
		return nil, fmt.Errorf("end date %s is before start date %s", opts.End.Format(internal.DateLayout), opts.Start.Format(internal.DateLayout))
	}
	if opts.DirtyRate < 0 || opts.DirtyRate > 1 {
		return nil, fmt.Errorf("dirty rate must be within [0, 1]: %v", opts.DirtyRate)
	}

	division := c.Division.Values()
	locationType := c.LocationType.Values()
	primaryOffence := c.PrimaryOffence.Values()
	neighbourhood := c.Neighbourhood158.Values()
	for name, values := range map[string][]string{
		catalog.NameDivision:         division,
		catalog.NameLocationType:     locationType,
		catalog.NamePrimaryOffence:   primaryOffence,
		catalog.NameNeighbourhood158: neighbourhood,
	} {
		if len(values) == 0 {
			return nil, fmt.Errorf("cannot simulate from empty catalog %s", name)
		}
	}

	rngOccurrence := rand.New(rand.NewPCG(opts.SeedOccurrence, opts.SeedOccurrence))
	rngReported := rand.New(rand.NewPCG(opts.SeedReported, opts.SeedReported))
	rngChoice := rand.New(rand.NewPCG(opts.SeedChoice, opts.SeedChoice))

	days := int(opts.End.Sub(opts.Start).Hours()/24) + 1
	pick := func(values []string) string { return values[rngChoice.IntN(len(values))] }

	out := make([]internal.RawRecord, 0, opts.Rows)
	for i := 0; i < opts.Rows; i++ {
		rec := internal.RawRecord{
			internal.FieldOccurrenceDate: opts.Start.AddDate(0, 0, rngOccurrence.IntN(days)).Format(internal.DateLayout),
			internal.FieldReportedDate:   opts.Start.AddDate(0, 0, rngReported.IntN(days)).Format(internal.DateLayout),
			internal.FieldDivision:       pick(division),
			internal.FieldLocationType:   pick(locationType),
			internal.FieldBias:           pick(biasChoices),
			internal.FieldPrimaryOffence: pick(primaryOffence),
			internal.FieldNeighbourhood:  pick(neighbourhood),
			internal.FieldArrest:         pick(arrestChoices),
		}
		if opts.DirtyRate > 0 && rngChoice.Float64() < opts.DirtyRate {
			d := dirtyValues[rngChoice.IntN(len(dirtyValues))]
			rec[d.field] = d.value
		}
		out = append(out, rec)
	}
	return out, nil
}
