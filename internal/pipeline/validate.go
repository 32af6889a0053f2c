package pipeline

import (
	"errors"
	"fmt"
	"time"

	"hatecrimes/internal"
	"hatecrimes/internal/catalog"
	"hatecrimes/internal/util"
)

const (
	sentinelNA            = "NA"
	sentinelRemoved       = "This should be removed"
	sentinelNeighbourhood = "NSA"
)

// fieldValidator checks one raw value. The returned value is only meaningful
// when no errors are returned.
type fieldValidator struct {
	field string
	check func(raw any, c *catalog.Catalogs) (any, []internal.FieldError)
	apply func(rec *internal.ValidatedRecord, value any)
}

var fieldValidators = []fieldValidator{
	{
		field: internal.FieldOccurrenceDate,
		check: func(raw any, _ *catalog.Catalogs) (any, []internal.FieldError) {
			return checkDate(internal.FieldOccurrenceDate, raw)
		},
		apply: func(rec *internal.ValidatedRecord, v any) { rec.OccurrenceDate = v.(time.Time) },
	},
	{
		field: internal.FieldReportedDate,
		check: func(raw any, _ *catalog.Catalogs) (any, []internal.FieldError) {
			return checkDate(internal.FieldReportedDate, raw)
		},
		apply: func(rec *internal.ValidatedRecord, v any) { rec.ReportedDate = v.(time.Time) },
	},
	{
		field: internal.FieldDivision,
		check: func(raw any, c *catalog.Catalogs) (any, []internal.FieldError) {
			return checkCategory(internal.FieldDivision, raw, c.Division, nil, sentinelNA)
		},
		apply: func(rec *internal.ValidatedRecord, v any) { rec.Division = v.(string) },
	},
	{
		field: internal.FieldLocationType,
		check: func(raw any, c *catalog.Catalogs) (any, []internal.FieldError) {
			return checkCategory(internal.FieldLocationType, raw, c.LocationType, nil, sentinelNA)
		},
		apply: func(rec *internal.ValidatedRecord, v any) { rec.LocationType = v.(string) },
	},
	{
		field: internal.FieldPrimaryOffence,
		check: func(raw any, c *catalog.Catalogs) (any, []internal.FieldError) {
			return checkCategory(internal.FieldPrimaryOffence, raw, c.PrimaryOffence, nil, sentinelNA, sentinelRemoved)
		},
		apply: func(rec *internal.ValidatedRecord, v any) { rec.PrimaryOffence = v.(string) },
	},
	{
		field: internal.FieldNeighbourhood,
		check: func(raw any, c *catalog.Catalogs) (any, []internal.FieldError) {
			return checkCategory(internal.FieldNeighbourhood, raw, c.Neighbourhood158, util.NormalizeNeighbourhood, sentinelNeighbourhood)
		},
		apply: func(rec *internal.ValidatedRecord, v any) { rec.Neighbourhood = v.(string) },
	},
	{
		field: internal.FieldArrest,
		check: func(raw any, _ *catalog.Catalogs) (any, []internal.FieldError) {
			return checkArrest(raw)
		},
		apply: func(rec *internal.ValidatedRecord, v any) { rec.Arrest = v.(internal.ArrestStatus) },
	},
}

// Validator checks raw rows against a fixed set of catalogs. It holds no
// mutable state and may be shared between goroutines.
type Validator struct {
	catalogs *catalog.Catalogs
}

func NewValidator(catalogs *catalog.Catalogs) *Validator {
	return &Validator{catalogs: catalogs}
}

// Validate runs every field rule against raw. It returns either a record or a
// *internal.ValidationError listing all failing fields, never both.
func (v *Validator) Validate(index int, raw internal.RawRecord) (internal.ValidatedRecord, error) {
	var rec internal.ValidatedRecord
	var failures []internal.FieldError

	for _, fv := range fieldValidators {
		value, present := raw[fv.field]
		if !present {
			failures = append(failures, internal.FieldError{
				Field:   fv.field,
				Rule:    internal.RuleMissing,
				Message: "field required",
			})
			continue
		}
		parsed, errs := fv.check(value, v.catalogs)
		if len(errs) > 0 {
			failures = append(failures, errs...)
			continue
		}
		fv.apply(&rec, parsed)
	}

	if len(failures) > 0 {
		return internal.ValidatedRecord{}, &internal.ValidationError{Index: index, Fields: failures}
	}
	return rec, nil
}

// ValidateBatch validates each row independently. Successes and failures keep
// input order and every row lands in exactly one of them.
func (v *Validator) ValidateBatch(rows []internal.RawRecord) internal.BatchResult {
	result := internal.BatchResult{
		Validated: make([]internal.ValidatedRecord, 0, len(rows)),
		Errors:    []internal.ValidationError{},
	}
	for i, row := range rows {
		rec, err := v.Validate(i, row)
		if err != nil {
			var verr *internal.ValidationError
			if !errors.As(err, &verr) {
				verr = &internal.ValidationError{Index: i, Fields: []internal.FieldError{{Rule: internal.RuleType, Message: err.Error()}}}
			}
			result.Errors = append(result.Errors, *verr)
			continue
		}
		result.Validated = append(result.Validated, rec)
	}
	return result
}

func checkDate(field string, raw any) (any, []internal.FieldError) {
	switch value := raw.(type) {
	case time.Time:
		y, m, d := value.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	case string:
		parsed, err := time.Parse(internal.DateLayout, value)
		if err != nil {
			return nil, []internal.FieldError{{
				Field:   field,
				Value:   value,
				Rule:    internal.RuleDateFormat,
				Message: fmt.Sprintf("%q is not a valid date (expected YYYY-MM-DD)", value),
			}}
		}
		return parsed, nil
	default:
		return nil, []internal.FieldError{typeError(field, raw, "date string")}
	}
}

// checkCategory applies the sentinel rule to the raw value and the membership
// rule to the normalized value. Both are reported when both fail.
func checkCategory(field string, raw any, set *catalog.ReferenceSet, normalize func(string) string, sentinels ...string) (any, []internal.FieldError) {
	value, ok := raw.(string)
	if !ok {
		return nil, []internal.FieldError{typeError(field, raw, "string")}
	}

	var errs []internal.FieldError
	for _, s := range sentinels {
		if value == s {
			errs = append(errs, internal.FieldError{
				Field:   field,
				Value:   value,
				Rule:    internal.RuleSentinel,
				Message: fmt.Sprintf("%q is not an allowed value for %s", value, field),
			})
			break
		}
	}

	normalized := value
	if normalize != nil {
		normalized = normalize(value)
	}
	if !set.Contains(normalized) {
		errs = append(errs, internal.FieldError{
			Field:   field,
			Value:   value,
			Rule:    internal.RuleNotInCatalog,
			Message: fmt.Sprintf("%q is not one of the allowed values for %s", normalized, field),
		})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return normalized, nil
}

func checkArrest(raw any) (any, []internal.FieldError) {
	value, ok := raw.(string)
	if !ok {
		return nil, []internal.FieldError{typeError(internal.FieldArrest, raw, "string")}
	}
	switch internal.ArrestStatus(value) {
	case internal.ArrestYes, internal.ArrestNo:
		return internal.ArrestStatus(value), nil
	}
	return nil, []internal.FieldError{{
		Field:   internal.FieldArrest,
		Value:   value,
		Rule:    internal.RuleNotAllowed,
		Message: fmt.Sprintf("%q is not an allowed value for arrest (expected Yes or No)", value),
	}}
}

func typeError(field string, raw any, want string) internal.FieldError {
	return internal.FieldError{
		Field:   field,
		Value:   raw,
		Rule:    internal.RuleType,
		Message: fmt.Sprintf("expected %s, got %T", want, raw),
	}
}
