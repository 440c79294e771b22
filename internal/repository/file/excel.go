package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/kailas-cloud/hhdex/internal/domain/vacancy"
)

const excelSheet = "vacancies"

type excelCodec struct{}

func (excelCodec) format() string { return "xlsx" }

func (excelCodec) read(path string) ([]vacancy.Fields, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err //nolint:wrapcheck // wrapped by Store.load
	}

	wb, err := excelize.OpenFile(filepath.Clean(path))
	if err != nil {
		return nil, unsupported(path, err)
	}
	defer func() { _ = wb.Close() }()

	sheet := excelSheet
	if idx, _ := wb.GetSheetIndex(sheet); idx < 0 {
		sheet = wb.GetSheetName(0)
	}

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, unsupported(path, err)
	}
	if len(rows) == 0 {
		return []vacancy.Fields{}, nil
	}

	header := rows[0]
	records := make([]vacancy.Fields, 0, len(rows)-1)
	for _, row := range rows[1:] {
		f := make(vacancy.Fields, len(header))
		for col, name := range header {
			if col < len(row) && row[col] != "" {
				f[name] = row[col]
			} else {
				f[name] = nil
			}
		}
		records = append(records, f)
	}
	return records, nil
}

func (excelCodec) write(path string, records []vacancy.Fields) error {
	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()

	if err := wb.SetSheetName(wb.GetSheetName(0), excelSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, len(vacancy.FieldNames))
	for i, name := range vacancy.FieldNames {
		header[i] = name
	}
	if err := wb.SetSheetRow(excelSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, rec := range records {
		row := make([]any, len(vacancy.FieldNames))
		for j, name := range vacancy.FieldNames {
			row[j] = rec[name]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if err := wb.SetSheetRow(excelSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	return writeAtomic(path, func(f *os.File) error {
		if _, err := wb.WriteTo(f); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		return nil
	})
}
