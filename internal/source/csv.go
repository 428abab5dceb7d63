package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/arbazmubasher1/RidersDashboard/internal/models"
)

// CSVSource reads a local CSV export with one header row.
type CSVSource struct {
	Ref models.SourceRef
}

func (s *CSVSource) Fetch(ctx context.Context) (Table, error) {
	file, err := os.Open(s.Ref.Path)
	if err != nil {
		return Table{}, unavailable(s.Ref, err)
	}
	defer file.Close()

	return readCSV(file, s.Ref)
}

func readCSV(r io.Reader, ref models.SourceRef) (Table, error) {
	reader := csv.NewReader(r)
	// Sheet exports routinely have ragged rows; the normalizer pads them.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return Table{}, unavailable(ref, fmt.Errorf("reading csv: %w", err))
	}
	return tableFromRows(rows), nil
}
