package records

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// ReadSQLite runs query against the SQLite database at path and returns one
// row per result row. Every selected column must be numeric and non-NULL.
func ReadSQLite(ctx context.Context, path, query string, args ...any) ([][]float64, error) {
	// sql.Open would silently create a missing database.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	result, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer result.Close()

	cols, err := result.Columns()
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}

	cells := make([]sql.NullFloat64, len(cols))
	dest := make([]any, len(cols))
	for i := range cells {
		dest[i] = &cells[i]
	}

	var rows [][]float64
	for n := 1; result.Next(); n++ {
		if err := result.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedRecord, n, err)
		}
		row := make([]float64, len(cells))
		for i, c := range cells {
			if !c.Valid {
				return nil, fmt.Errorf("%w: row %d: column %q is NULL", ErrMalformedRecord, n, cols[i])
			}
			row[i] = c.Float64
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return rows, nil
}
