package vacancy

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/hhdex/internal/domain"
)

// Salary display phrases.
const (
	salaryNotSpecified = "Salary not specified"
	salaryUpTo         = "Up to %d"
	salaryFrom         = "From %d"
	salaryRange        = "From %d to %d"
)

// rule extracts one flat field from a raw document.
type rule func(raw Raw) (any, error)

// rules binds every schema field to its location in the hh.ru payload.
// A field in FieldNames without a rule maps to nil.
var rules = map[string]rule{
	FieldID:             idRule,
	FieldName:           strict("name"),
	FieldLocation:       strict("area", "name"),
	FieldSalary:         func(raw Raw) (any, error) { return salaryValue(salaryBounds(raw)), nil },
	FieldSalaryDisplay:  func(raw Raw) (any, error) { return salaryDisplay(salaryBounds(raw)), nil },
	FieldPublishedAt:    strict("published_at"),
	FieldURL:            strict("alternate_url"),
	FieldEmployerName:   strict("employer", "name"),
	FieldSchedule:       strict("schedule", "name"),
	FieldEmployment:     strict("employment", "name"),
	FieldExperience:     strict("experience", "name"),
	FieldRequirement:    optional("snippet", "requirement"),
	FieldResponsibility: optional("snippet", "responsibility"),
}

// MapFields converts a raw hh.ru document into a flat record with exactly the FieldNames keys.
// A missing nested key on a strict field fails with domain.ErrMissingRequiredField.
// Salary, salary display and snippet fields fall back to defaults instead.
func MapFields(raw Raw) (Fields, error) {
	return mapFields(raw, FieldNames)
}

// MapAll maps a page of raw documents, stopping at the first failure.
func MapAll(raws []Raw) ([]Fields, error) {
	out := make([]Fields, 0, len(raws))
	for i, raw := range raws {
		f, err := MapFields(raw)
		if err != nil {
			return nil, fmt.Errorf("vacancy #%d: %w", i, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func mapFields(raw Raw, names []string) (Fields, error) {
	out := make(Fields, len(names))
	for _, name := range names {
		r, ok := rules[name]
		if !ok {
			out[name] = nil
			continue
		}
		v, err := r(raw)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

// idRule copies the id and normalizes it to a string token.
func idRule(raw Raw) (any, error) {
	v, err := lookup(raw, FieldID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return asString(v), nil
}

func strict(path ...string) rule {
	return func(raw Raw) (any, error) {
		return lookup(raw, path...)
	}
}

func optional(path ...string) rule {
	return func(raw Raw) (any, error) {
		v, err := lookup(raw, path...)
		if err != nil {
			return nil, nil //nolint:nilerr // absent snippet keys are null by contract
		}
		return v, nil
	}
}

// lookup walks nested objects along path. A missing key or a non-object
// intermediate (including null) is a MissingFieldError naming the path walked so far.
func lookup(raw Raw, path ...string) (any, error) {
	var cur any = map[string]any(raw)
	for i, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, domain.NewMissingField(strings.Join(path[:i+1], "."))
		}
		v, ok := m[key]
		if !ok {
			return nil, domain.NewMissingField(strings.Join(path[:i+1], "."))
		}
		cur = v
	}
	return cur, nil
}

// salaryBounds returns the declared from/to bounds; absent, null, zero or negative bounds are 0.
func salaryBounds(raw Raw) (from, to int) {
	s, ok := raw["salary"].(map[string]any)
	if !ok {
		return 0, 0
	}
	return max(asInt(s["from"]), 0), max(asInt(s["to"]), 0)
}

func salaryValue(from, to int) int {
	switch {
	case from == 0 && to == 0:
		return 0
	case from == 0:
		return to
	case to == 0:
		return from
	default:
		return min(from, to)
	}
}

func salaryDisplay(from, to int) string {
	switch {
	case from == 0 && to == 0:
		return salaryNotSpecified
	case from == 0:
		return fmt.Sprintf(salaryUpTo, to)
	case to == 0:
		return fmt.Sprintf(salaryFrom, from)
	default:
		return fmt.Sprintf(salaryRange, from, to)
	}
}
