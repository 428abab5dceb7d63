package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arbazmubasher1/RidersDashboard/internal/models"
)

// PostgresSource reads an orders export table. Column names become headers
// and every value is rendered to text; the engine then normalizes the result
// exactly like a worksheet, so both paths share one coercion policy.
type PostgresSource struct {
	Ref models.SourceRef
}

func (s *PostgresSource) Fetch(ctx context.Context) (Table, error) {
	pool, err := pgxpool.New(ctx, s.Ref.DSN)
	if err != nil {
		return Table{}, unavailable(s.Ref, fmt.Errorf("connecting: %w", err))
	}
	defer pool.Close()

	rows, err := pool.Query(ctx, fmt.Sprintf(`SELECT * FROM %s`, s.Ref.Path))
	if err != nil {
		return Table{}, unavailable(s.Ref, fmt.Errorf("querying %s: %w", s.Ref.Path, err))
	}
	defer rows.Close()

	descs := rows.FieldDescriptions()
	headers := make([]string, len(descs))
	for i, d := range descs {
		headers[i] = strings.TrimSpace(string(d.Name))
	}

	var data [][]string
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return Table{}, unavailable(s.Ref, fmt.Errorf("scanning %s: %w", s.Ref.Path, err))
		}
		cells := make([]string, len(values))
		for i, v := range values {
			if v == nil {
				continue
			}
			cells[i] = fmt.Sprintf("%v", v)
		}
		data = append(data, cells)
	}
	if err := rows.Err(); err != nil {
		return Table{}, unavailable(s.Ref, fmt.Errorf("reading %s: %w", s.Ref.Path, err))
	}

	return Table{Headers: headers, Rows: data}, nil
}
