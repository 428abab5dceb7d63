package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/arbazmubasher1/RidersDashboard/internal/models"
)

// Table is one raw worksheet: a trimmed header row plus data rows of string
// cells. Cell typing happens later in the normalizer, never here.
type Table struct {
	Headers []string
	Rows    [][]string
}

// RowSource fetches the raw table behind one source reference. Fetching is
// the only operation in the engine that may incur real latency or fail.
type RowSource interface {
	Fetch(ctx context.Context) (Table, error)
}

// SourceUnavailableError is the one error class that surfaces to callers:
// the resource could not be read at all (auth, network, missing worksheet).
// Metrics are never computed from a partially-loaded snapshot.
type SourceUnavailableError struct {
	Ref string
	Err error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source unavailable: %s: %v", e.Ref, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

func unavailable(ref models.SourceRef, err error) error {
	return &SourceUnavailableError{Ref: ref.Key(), Err: err}
}

// ForRef selects the source implementation for a reference.
func ForRef(ref models.SourceRef) (RowSource, error) {
	switch strings.ToLower(ref.Kind) {
	case "csv":
		return &CSVSource{Ref: ref}, nil
	case "xlsx":
		return &ExcelSource{Ref: ref}, nil
	case "postgres":
		return &PostgresSource{Ref: ref}, nil
	case "s3":
		return &S3Source{Ref: ref}, nil
	default:
		return nil, fmt.Errorf("unsupported source kind: %s", ref.Kind)
	}
}

// tableFromRows builds a Table from raw sheet rows, trimming header names.
func tableFromRows(rows [][]string) Table {
	if len(rows) == 0 {
		return Table{}
	}
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	return Table{Headers: headers, Rows: rows[1:]}
}
