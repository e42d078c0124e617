package analyze

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
)

// result is one tabular engine answer, ordered columns with rows.
type result struct {
	columns []string
	rows    [][]any
}

func scanResult(rs *sql.Rows) (*result, error) {
	columns, err := rs.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns failed: %w", err)
	}

	rows := make([][]any, 0)
	for rs.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rs.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan row failed: %w", err)
		}
		for i, value := range values {
			values[i] = normalizeValue(value)
		}
		rows = append(rows, values)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows failed: %w", err)
	}

	return &result{columns: columns, rows: rows}, nil
}

func normalizeValue(value any) any {
	if b, ok := value.([]byte); ok {
		return string(b)
	}
	return value
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(value string) string {
	return `'` + strings.ReplaceAll(value, `'`, `''`) + `'`
}

// sourceRef renders a source as either a file path literal, picked up by
// duckdb's replacement scan, or a table identifier.
func sourceRef(source string) string {
	if _, err := os.Stat(source); err == nil {
		return quoteLiteral(source)
	}
	return quoteIdent(source)
}
