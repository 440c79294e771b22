package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/hhdex/internal/domain/vacancy"
)

// parquetRow is the columnar layout of a flat vacancy record.
type parquetRow struct {
	ID             string  `parquet:"id"`
	Name           string  `parquet:"name"`
	Location       string  `parquet:"location"`
	Salary         int64   `parquet:"salary"`
	SalaryDisplay  string  `parquet:"salary_display"`
	PublishedAt    string  `parquet:"published_at"`
	URL            string  `parquet:"url"`
	EmployerName   string  `parquet:"employer_name"`
	Schedule       string  `parquet:"schedule"`
	Employment     string  `parquet:"employment"`
	Experience     string  `parquet:"experience"`
	Requirement    *string `parquet:"requirement,optional"`
	Responsibility *string `parquet:"responsibility,optional"`
}

type parquetCodec struct{}

func (parquetCodec) format() string { return "parquet" }

func (parquetCodec) read(path string) ([]vacancy.Fields, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err //nolint:wrapcheck // wrapped by Store.load
	}

	rows, err := parquet.ReadFile[parquetRow](filepath.Clean(path))
	if err != nil {
		return nil, unsupported(path, err)
	}

	records := make([]vacancy.Fields, len(rows))
	for i := range rows {
		records[i] = rows[i].fields()
	}
	return records, nil
}

func (parquetCodec) write(path string, records []vacancy.Fields) error {
	rows := make([]parquetRow, len(records))
	for i, rec := range records {
		rows[i] = newParquetRow(vacancy.New(rec))
	}

	return writeAtomic(path, func(f *os.File) error {
		if err := parquet.Write(f, rows); err != nil {
			return fmt.Errorf("write parquet: %w", err)
		}
		return nil
	})
}

func newParquetRow(v vacancy.Vacancy) parquetRow {
	return parquetRow{
		ID:             v.ID(),
		Name:           v.Name(),
		Location:       v.Location(),
		Salary:         int64(v.Salary()),
		SalaryDisplay:  v.SalaryDisplay(),
		PublishedAt:    v.PublishedAt(),
		URL:            v.URL(),
		EmployerName:   v.EmployerName(),
		Schedule:       v.Schedule(),
		Employment:     v.Employment(),
		Experience:     v.Experience(),
		Requirement:    v.Requirement(),
		Responsibility: v.Responsibility(),
	}
}

func (r *parquetRow) fields() vacancy.Fields {
	f := vacancy.Fields{
		vacancy.FieldID:             r.ID,
		vacancy.FieldName:           r.Name,
		vacancy.FieldLocation:       r.Location,
		vacancy.FieldSalary:         r.Salary,
		vacancy.FieldSalaryDisplay:  r.SalaryDisplay,
		vacancy.FieldPublishedAt:    r.PublishedAt,
		vacancy.FieldURL:            r.URL,
		vacancy.FieldEmployerName:   r.EmployerName,
		vacancy.FieldSchedule:       r.Schedule,
		vacancy.FieldEmployment:     r.Employment,
		vacancy.FieldExperience:     r.Experience,
		vacancy.FieldRequirement:    nil,
		vacancy.FieldResponsibility: nil,
	}
	if r.Requirement != nil {
		f[vacancy.FieldRequirement] = *r.Requirement
	}
	if r.Responsibility != nil {
		f[vacancy.FieldResponsibility] = *r.Responsibility
	}
	return f
}
