package duck

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hugr-lab/lumi-filter/record"
)

// Query executes s on db and reads every row as a record.
// STRUCT columns arrive as nested records. The caller registers the driver.
func (s Select) Query(ctx context.Context, db *sql.DB) ([]record.Record, error) {
	rows, err := db.QueryContext(ctx, s.SQL())
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var records []record.Record
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		rec := make(record.Record, len(cols))
		for i, col := range cols {
			rec[col] = nested(values[i])
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return records, nil
}

func nested(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	rec := make(record.Record, len(m))
	for k, x := range m {
		rec[k] = nested(x)
	}
	return rec
}
