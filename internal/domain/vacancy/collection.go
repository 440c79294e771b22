package vacancy

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/hhdex/internal/domain"
)

// Identifiable is implemented by both Fields and Vacancy.
type Identifiable interface {
	ID() string
}

// Ranked is implemented by both Fields and Vacancy.
type Ranked interface {
	Salary() int
}

// ListFrom builds vacancies from flat records, preserving order.
func ListFrom(items []Fields) []Vacancy {
	out := make([]Vacancy, len(items))
	for i, f := range items {
		out[i] = New(f)
	}
	return out
}

// ToMaps converts vacancies back to flat records, preserving order.
func ToMaps(items []Vacancy) []Fields {
	out := make([]Fields, len(items))
	for i, v := range items {
		out[i] = v.ToMap()
	}
	return out
}

// Identities returns the ids in order. Duplicates are kept.
func Identities[T Identifiable](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID()
	}
	return out
}

// MergeDeduplicated returns existing followed by every incoming record whose id
// is not yet present, in the order first seen in incoming. existing is not modified.
func MergeDeduplicated(existing, incoming []Fields) []Fields {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, id := range Identities(existing) {
		seen[id] = struct{}{}
	}

	out := slices.Clone(existing)
	for _, f := range incoming {
		id := f.ID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, f)
	}
	return out
}

// FilterByKeywords keeps vacancies whose name, requirement and responsibility
// together contain every keyword (case-insensitive). No keywords keeps everything.
func FilterByKeywords(items []Vacancy, keywords []string) []Vacancy {
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}

	out := make([]Vacancy, 0, len(items))
	for _, v := range items {
		text := strings.ToLower(v.name + deref(v.requirement) + deref(v.responsibility))
		if containsAll(text, lowered) {
			out = append(out, v)
		}
	}
	return out
}

func containsAll(text string, keywords []string) bool {
	for _, k := range keywords {
		if !strings.Contains(text, k) {
			return false
		}
	}
	return true
}

// TopBySalary returns the first n items by salary descending. Equal salaries
// keep their original relative order. An empty list is domain.ErrEmptyInput;
// n <= 0 yields an empty result, n beyond the length yields everything.
func TopBySalary[T Ranked](items []T, n int) ([]T, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("top by salary: %w", domain.ErrEmptyInput)
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return cmp.Compare(b.Salary(), a.Salary())
	})

	n = min(max(n, 0), len(sorted))
	return sorted[:n], nil
}
