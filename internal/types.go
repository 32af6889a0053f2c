package internal

import (
	"fmt"
	"strings"
	"time"
)

const (
	FieldOccurrenceDate = "occurrence_date"
	FieldReportedDate   = "reported_date"
	FieldDivision       = "division"
	FieldLocationType   = "location_type"
	FieldPrimaryOffence = "primary_offence"
	FieldNeighbourhood  = "neighbourhood"
	FieldArrest         = "arrest"

	// FieldBias is emitted by the simulator but not validated.
	FieldBias = "bias"
)

// RecordFields lists the validated columns in their canonical order.
var RecordFields = []string{
	FieldOccurrenceDate,
	FieldReportedDate,
	FieldDivision,
	FieldLocationType,
	FieldPrimaryOffence,
	FieldNeighbourhood,
	FieldArrest,
}

const DateLayout = "2006-01-02"

// RawRecord is one untyped input row keyed by column name.
type RawRecord map[string]any

type ArrestStatus string

const (
	ArrestYes ArrestStatus = "Yes"
	ArrestNo  ArrestStatus = "No"
)

func (a ArrestStatus) Arrested() bool { return a == ArrestYes }

type ValidatedRecord struct {
	OccurrenceDate time.Time    `json:"occurrence_date"`
	ReportedDate   time.Time    `json:"reported_date"`
	Division       string       `json:"division"`
	LocationType   string       `json:"location_type"`
	PrimaryOffence string       `json:"primary_offence"`
	Neighbourhood  string       `json:"neighbourhood"`
	Arrest         ArrestStatus `json:"arrest"`
}

type Rule string

const (
	RuleMissing    Rule = "missing"
	RuleType       Rule = "type"
	RuleDateFormat Rule = "date_format"

	RuleSentinel     Rule = "sentinel"
	RuleNotInCatalog Rule = "not_in_catalog"
	RuleNotAllowed   Rule = "not_allowed"
)

type ErrorKind string

const (
	ErrorKindType   ErrorKind = "type"
	ErrorKindDomain ErrorKind = "domain"
)

// Kind separates parse failures from values that parse but break a domain rule.
func (r Rule) Kind() ErrorKind {
	switch r {
	case RuleMissing, RuleType, RuleDateFormat:
		return ErrorKindType
	default:
		return ErrorKindDomain
	}
}

type FieldError struct {
	Field   string `json:"field"`
	Value   any    `json:"value"`
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError carries every failing field of the row at Index.
type ValidationError struct {
	Index  int          `json:"index"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return fmt.Sprintf("row %d: %d invalid field(s): %s", e.Index, len(e.Fields), strings.Join(parts, "; "))
}

// FieldNames returns the failing fields in report order without duplicates.
func (e *ValidationError) FieldNames() []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := seen[f.Field]; ok {
			continue
		}
		seen[f.Field] = struct{}{}
		out = append(out, f.Field)
	}
	return out
}

type BatchResult struct {
	Validated []ValidatedRecord
	Errors    []ValidationError
}

func (r BatchResult) Total() int {
	return len(r.Validated) + len(r.Errors)
}
