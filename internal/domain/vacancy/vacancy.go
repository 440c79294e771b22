package vacancy

import (
	"cmp"
	"strings"

	"github.com/kailas-cloud/hhdex/internal/domain"
)

// displaySalaryWidth is the fixed width of the salary column in String().
const displaySalaryWidth = 20

// Vacancy is a normalized vacancy record (immutable value object).
// Equality and ordering are defined on salary only, identity on id only.
type Vacancy struct {
	id             string
	name           string
	location       string
	salary         int
	salaryDisplay  string
	publishedAt    string
	url            string
	employerName   string
	schedule       string
	employment     string
	experience     string
	requirement    *string
	responsibility *string
}

// New builds a Vacancy from a flat record. Missing keys become zero values
// (nil for requirement/responsibility); partial and legacy records never fail.
func New(f Fields) Vacancy {
	return Vacancy{
		id:             asString(f[FieldID]),
		name:           asString(f[FieldName]),
		location:       asString(f[FieldLocation]),
		salary:         asInt(f[FieldSalary]),
		salaryDisplay:  asString(f[FieldSalaryDisplay]),
		publishedAt:    asString(f[FieldPublishedAt]),
		url:            asString(f[FieldURL]),
		employerName:   asString(f[FieldEmployerName]),
		schedule:       asString(f[FieldSchedule]),
		employment:     asString(f[FieldEmployment]),
		experience:     asString(f[FieldExperience]),
		requirement:    asOptionalString(f[FieldRequirement]),
		responsibility: asOptionalString(f[FieldResponsibility]),
	}
}

// ID returns the vacancy identity.
func (v Vacancy) ID() string { return v.id }

// Name returns the vacancy title.
func (v Vacancy) Name() string { return v.name }

// Location returns the city name.
func (v Vacancy) Location() string { return v.location }

// Salary returns the salary comparison value (0 = unspecified).
func (v Vacancy) Salary() int { return v.salary }

// SalaryDisplay returns the human-readable salary.
func (v Vacancy) SalaryDisplay() string { return v.salaryDisplay }

// PublishedAt returns the publication timestamp as sent by the source.
func (v Vacancy) PublishedAt() string { return v.publishedAt }

// URL returns the public vacancy link.
func (v Vacancy) URL() string { return v.url }

// EmployerName returns the employer name.
func (v Vacancy) EmployerName() string { return v.employerName }

// Schedule returns the work schedule name.
func (v Vacancy) Schedule() string { return v.schedule }

// Employment returns the employment type name.
func (v Vacancy) Employment() string { return v.employment }

// Experience returns the required experience name.
func (v Vacancy) Experience() string { return v.experience }

// Requirement returns the requirement snippet, nil if absent.
func (v Vacancy) Requirement() *string { return v.requirement }

// Responsibility returns the responsibility snippet, nil if absent.
func (v Vacancy) Responsibility() *string { return v.responsibility }

// ToMap returns the flat record form. New(v.ToMap()) == v.
func (v Vacancy) ToMap() Fields {
	return Fields{
		FieldID:             v.id,
		FieldName:           v.name,
		FieldLocation:       v.location,
		FieldSalary:         v.salary,
		FieldSalaryDisplay:  v.salaryDisplay,
		FieldPublishedAt:    v.publishedAt,
		FieldURL:            v.url,
		FieldEmployerName:   v.employerName,
		FieldSchedule:       v.schedule,
		FieldEmployment:     v.employment,
		FieldExperience:     v.experience,
		FieldRequirement:    optionalValue(v.requirement),
		FieldResponsibility: optionalValue(v.responsibility),
	}
}

// String renders the multi-line summary. The salary column is padded or cut to 20 characters.
func (v Vacancy) String() string {
	var b strings.Builder
	b.WriteString(v.name + "\n")
	b.WriteString("Link: " + v.url + "\n")
	b.WriteString("Salary: " + fixedWidth(v.salaryDisplay, displaySalaryWidth) + "\n")
	b.WriteString("City: " + v.location + "\n")
	b.WriteString("Schedule: " + v.schedule + "\n")
	b.WriteString("Description: " + deref(v.requirement) + "\n")
	return b.String()
}

// Compare orders v against other by salary: -1, 0 or +1.
// other must be a Vacancy or a non-nil *Vacancy, anything else is domain.ErrTypeMismatch.
func (v Vacancy) Compare(other any) (int, error) {
	o, err := asVacancy(other)
	if err != nil {
		return 0, err
	}
	return cmp.Compare(v.salary, o.salary), nil
}

// Equal reports whether both salaries are equal.
func (v Vacancy) Equal(other any) (bool, error) {
	c, err := v.Compare(other)
	return err == nil && c == 0, err
}

// NotEqual reports whether the salaries differ.
func (v Vacancy) NotEqual(other any) (bool, error) {
	c, err := v.Compare(other)
	return err == nil && c != 0, err
}

// Less reports whether v pays less than other.
func (v Vacancy) Less(other any) (bool, error) {
	c, err := v.Compare(other)
	return err == nil && c < 0, err
}

// LessOrEqual reports whether v pays no more than other.
func (v Vacancy) LessOrEqual(other any) (bool, error) {
	c, err := v.Compare(other)
	return err == nil && c <= 0, err
}

// Greater reports whether v pays more than other.
func (v Vacancy) Greater(other any) (bool, error) {
	c, err := v.Compare(other)
	return err == nil && c > 0, err
}

// GreaterOrEqual reports whether v pays at least as much as other.
func (v Vacancy) GreaterOrEqual(other any) (bool, error) {
	c, err := v.Compare(other)
	return err == nil && c >= 0, err
}

// CompareSalary is the typed comparator used for sorting.
func CompareSalary(a, b Vacancy) int {
	return cmp.Compare(a.salary, b.salary)
}

func asVacancy(other any) (Vacancy, error) {
	switch o := other.(type) {
	case Vacancy:
		return o, nil
	case *Vacancy:
		if o != nil {
			return *o, nil
		}
	}
	return Vacancy{}, domain.NewTypeMismatch(other)
}

func fixedWidth(s string, width int) string {
	r := []rune(s + strings.Repeat(" ", width))
	return string(r[:width])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalValue(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
