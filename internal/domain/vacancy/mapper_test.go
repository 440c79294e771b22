package vacancy

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/hhdex/internal/domain"
)

func TestMapFields_AllKeys(t *testing.T) {
	raws := loadRaws(t)

	f, err := MapFields(raws[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f) != len(FieldNames) {
		t.Fatalf("len(fields) = %d, want %d", len(f), len(FieldNames))
	}
	for _, name := range FieldNames {
		if _, ok := f[name]; !ok {
			t.Errorf("field %q missing", name)
		}
	}

	want := map[string]any{
		FieldID:             "93353083",
		FieldName:           "Тестировщик комфорта квартир",
		FieldLocation:       "Воронеж",
		FieldSalary:         350000,
		FieldSalaryDisplay:  "From 350000 to 450000",
		FieldPublishedAt:    "2024-02-16T14:58:28+0300",
		FieldURL:            "https://hh.ru/vacancy/93353083",
		FieldEmployerName:   "Домашний уют",
		FieldSchedule:       "Гибкий график",
		FieldEmployment:     "Полная занятость",
		FieldExperience:     "Нет опыта",
		FieldRequirement:    "Занимать активную жизненную позицию.",
		FieldResponsibility: "Проверять комфорт квартир.",
	}
	for k, v := range want {
		if f[k] != v {
			t.Errorf("%s = %#v, want %#v", k, f[k], v)
		}
	}
}

func TestMapFields_Salary(t *testing.T) {
	tests := []struct {
		name        string
		salary      any
		wantValue   int
		wantDisplay string
	}{
		{"both bounds", map[string]any{"from": 350000.0, "to": 450000.0}, 350000, "From 350000 to 450000"},
		{"from greater than to", map[string]any{"from": 200000.0, "to": 150000.0}, 150000, "From 200000 to 150000"},
		{"only from", map[string]any{"from": 800.0, "to": nil}, 800, "From 800"},
		{"only to", map[string]any{"from": nil, "to": 100000.0}, 100000, "Up to 100000"},
		{"zero from is absent", map[string]any{"from": 0.0, "to": 5000.0}, 5000, "Up to 5000"},
		{"both null", map[string]any{"from": nil, "to": nil}, 0, "Salary not specified"},
		{"empty object", map[string]any{}, 0, "Salary not specified"},
		{"null salary", nil, 0, "Salary not specified"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := minimalRaw()
			raw["salary"] = tc.salary

			f, err := MapFields(raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f[FieldSalary] != tc.wantValue {
				t.Errorf("salary = %#v, want %d", f[FieldSalary], tc.wantValue)
			}
			if f[FieldSalaryDisplay] != tc.wantDisplay {
				t.Errorf("salary_display = %q, want %q", f[FieldSalaryDisplay], tc.wantDisplay)
			}
		})
	}
}

func TestMapFields_NoSalaryKey(t *testing.T) {
	raw := minimalRaw()
	delete(raw, "salary")

	f, err := MapFields(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f[FieldSalary] != 0 || f[FieldSalaryDisplay] != "Salary not specified" {
		t.Errorf("salary = %v, display = %v", f[FieldSalary], f[FieldSalaryDisplay])
	}
}

func TestMapFields_SnippetFallback(t *testing.T) {
	raw := minimalRaw()
	delete(raw, "snippet")

	f, err := MapFields(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f[FieldRequirement] != nil {
		t.Errorf("requirement = %#v, want nil", f[FieldRequirement])
	}
	if f[FieldResponsibility] != nil {
		t.Errorf("responsibility = %#v, want nil", f[FieldResponsibility])
	}
}

func TestMapFields_MissingRequired(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(Raw)
		wantPath string
	}{
		{"no area", func(r Raw) { delete(r, "area") }, "area"},
		{"null area", func(r Raw) { r["area"] = nil }, "area.name"},
		{"area without name", func(r Raw) { r["area"] = map[string]any{"id": "1"} }, "area.name"},
		{"no id", func(r Raw) { delete(r, "id") }, "id"},
		{"no employer", func(r Raw) { delete(r, "employer") }, "employer"},
		{"no alternate_url", func(r Raw) { delete(r, "alternate_url") }, "alternate_url"},
		{"no experience", func(r Raw) { delete(r, "experience") }, "experience"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := minimalRaw()
			tc.mutate(raw)

			_, err := MapFields(raw)
			if !errors.Is(err, domain.ErrMissingRequiredField) {
				t.Fatalf("expected ErrMissingRequiredField, got %v", err)
			}
			var mf *domain.MissingFieldError
			if !errors.As(err, &mf) {
				t.Fatal("expected *domain.MissingFieldError")
			}
			if mf.Path != tc.wantPath {
				t.Errorf("Path = %q, want %q", mf.Path, tc.wantPath)
			}
		})
	}
}

func TestMapFields_NumericID(t *testing.T) {
	raw := minimalRaw()
	raw["id"] = 93353083.0

	f, err := MapFields(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f[FieldID] != "93353083" {
		t.Errorf("id = %#v, want string token", f[FieldID])
	}
}

func TestMapFields_UnknownSchemaField(t *testing.T) {
	names := append(append([]string{}, FieldNames...), "key_skills")

	f, err := mapFields(minimalRaw(), names)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := f["key_skills"]
	if !ok {
		t.Fatal("key_skills missing from output")
	}
	if v != nil {
		t.Errorf("key_skills = %#v, want nil", v)
	}
}

func TestMapAll_StopsOnError(t *testing.T) {
	bad := minimalRaw()
	delete(bad, "schedule")

	_, err := MapAll([]Raw{minimalRaw(), bad})
	if !errors.Is(err, domain.ErrMissingRequiredField) {
		t.Fatalf("expected ErrMissingRequiredField, got %v", err)
	}
}

func TestMapAll_PreservesOrder(t *testing.T) {
	raws := loadRaws(t)
	fields, err := MapAll(raws)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != len(raws) {
		t.Fatalf("len = %d, want %d", len(fields), len(raws))
	}
	for i := range raws {
		if fields[i].ID() != raws[i]["id"] {
			t.Errorf("[%d] id = %q, want %v", i, fields[i].ID(), raws[i]["id"])
		}
	}
}

func minimalRaw() Raw {
	return Raw{
		"id":            "1",
		"name":          "Go developer",
		"area":          map[string]any{"name": "Москва"},
		"salary":        nil,
		"published_at":  "2024-01-01T00:00:00+0300",
		"alternate_url": "https://hh.ru/vacancy/1",
		"employer":      map[string]any{"name": "ACME"},
		"schedule":      map[string]any{"name": "Полный день"},
		"employment":    map[string]any{"name": "Полная занятость"},
		"experience":    map[string]any{"name": "Нет опыта"},
		"snippet":       map[string]any{"requirement": "Go", "responsibility": "Services"},
	}
}
