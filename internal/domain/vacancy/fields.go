// Package vacancy holds the vacancy record model: mapping of raw hh.ru
// documents into flat records, salary-only ordering, and collection helpers
// (deduplicated merge, keyword filter, top-N by salary).
package vacancy

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Flat record field names. The order is the persisted column order.
const (
	FieldID             = "id"
	FieldName           = "name"
	FieldLocation       = "location"
	FieldSalary         = "salary"
	FieldSalaryDisplay  = "salary_display"
	FieldPublishedAt    = "published_at"
	FieldURL            = "url"
	FieldEmployerName   = "employer_name"
	FieldSchedule       = "schedule"
	FieldEmployment     = "employment"
	FieldExperience     = "experience"
	FieldRequirement    = "requirement"
	FieldResponsibility = "responsibility"
)

// FieldNames is the fixed schema of a flat vacancy record.
var FieldNames = []string{
	FieldID,
	FieldName,
	FieldLocation,
	FieldSalary,
	FieldSalaryDisplay,
	FieldPublishedAt,
	FieldURL,
	FieldEmployerName,
	FieldSchedule,
	FieldEmployment,
	FieldExperience,
	FieldRequirement,
	FieldResponsibility,
}

// Raw is a vacancy document exactly as returned by the source API.
type Raw map[string]any

// Fields is the flat, persisted form of a vacancy (one level deep, string and number leaves).
type Fields map[string]any

// ID returns the identity of the record as an opaque string.
func (f Fields) ID() string { return asString(f[FieldID]) }

// Salary returns the salary comparison value of the record.
func (f Fields) Salary() int { return asInt(f[FieldSalary]) }

// asString renders a JSON leaf as a string. Numeric ids decoded as float64 keep their integer form.
func asString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	default:
		return fmt.Sprint(x)
	}
}

// asOptionalString is asString that keeps null as nil.
func asOptionalString(v any) *string {
	if v == nil {
		return nil
	}
	s := asString(v)
	return &s
}

// asInt reads a JSON number leaf. Anything unparseable is 0.
func asInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case int32:
		return int(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0
		}
		return int(x)
	case float32:
		return asInt(float64(x))
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i)
		}
		if f, err := x.Float64(); err == nil {
			return asInt(f)
		}
		return 0
	case string:
		i, err := strconv.Atoi(x)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}
