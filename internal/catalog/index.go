package catalog

import "sort"

// ReferenceSet is the read-only set of permitted values for one field.
type ReferenceSet struct {
	name   string
	values map[string]struct{}
}

// NewReferenceSet builds a set from values. When normalize is non-nil every
// value is passed through it before insertion, and Contains expects callers to
// apply the same function.
func NewReferenceSet(name string, values []string, normalize func(string) string) *ReferenceSet {
	set := &ReferenceSet{name: name, values: make(map[string]struct{}, len(values))}
	for _, v := range values {
		if normalize != nil {
			v = normalize(v)
		}
		set.values[v] = struct{}{}
	}
	return set
}

func (s *ReferenceSet) Name() string { return s.name }

func (s *ReferenceSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

func (s *ReferenceSet) Contains(value string) bool {
	if s == nil {
		return false
	}
	_, ok := s.values[value]
	return ok
}

// Values returns the members sorted.
func (s *ReferenceSet) Values() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.values))
	for v := range s.values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
