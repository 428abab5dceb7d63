package source

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/arbazmubasher1/RidersDashboard/internal/models"
)

// ExcelSource reads a named worksheet from an XLSX workbook.
type ExcelSource struct {
	Ref models.SourceRef
}

func (s *ExcelSource) Fetch(ctx context.Context) (Table, error) {
	f, err := excelize.OpenFile(s.Ref.Path)
	if err != nil {
		return Table{}, unavailable(s.Ref, fmt.Errorf("opening workbook: %w", err))
	}
	defer f.Close()

	return worksheetTable(f, s.Ref)
}

func readExcel(r io.Reader, ref models.SourceRef) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, unavailable(ref, fmt.Errorf("opening workbook: %w", err))
	}
	defer f.Close()

	return worksheetTable(f, ref)
}

func worksheetTable(f *excelize.File, ref models.SourceRef) (Table, error) {
	sheetName := ref.Worksheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return Table{}, unavailable(ref, fmt.Errorf("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return Table{}, unavailable(ref, fmt.Errorf("worksheet %q: %w", sheetName, err))
	}
	return tableFromRows(rows), nil
}
