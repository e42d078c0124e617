package analyze

import (
	"fmt"

	"duckscope/db"
)

// analyzer owns the single engine connection for the lifetime of one
// invocation. Every method formats one SQL statement and runs it.
type analyzer struct {
	duckdb *db.DuckDB
}

func newAnalyzer(duckdb *db.DuckDB) *analyzer {
	return &analyzer{duckdb: duckdb}
}

func (a *analyzer) query(text string, args ...any) (*result, error) {
	rs, err := a.duckdb.Conn.Query(text, args...)
	if err != nil {
		return nil, err
	}
	defer rs.Close()
	return scanResult(rs)
}

func (a *analyzer) countRows(source string) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, sourceRef(source))
	var count int64
	if err := a.duckdb.Conn.QueryRow(query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rows failed: %w", err)
	}
	return count, nil
}

// importCSV loads a csv file into a table, letting duckdb detect the
// schema. sampleRows > 0 limits the import to the first sampleRows rows.
func (a *analyzer) importCSV(source, table string, sampleRows int, overwrite bool) error {
	exists, err := a.tableExists(table)
	if err != nil {
		return err
	}
	if exists {
		if !overwrite {
			return fmt.Errorf("table %s already exists, re-run with --overwrite to replace it", table)
		}
		if _, err := a.duckdb.Conn.Exec(fmt.Sprintf(`DROP TABLE %s`, quoteIdent(table))); err != nil {
			return fmt.Errorf("drop table failed: %w", err)
		}
	}

	query := fmt.Sprintf(`CREATE TABLE %s AS SELECT * FROM read_csv_auto(%s)`,
		quoteIdent(table), quoteLiteral(source))
	if sampleRows > 0 {
		query = fmt.Sprintf(`%s LIMIT %d`, query, sampleRows)
	}
	if _, err := a.duckdb.Conn.Exec(query); err != nil {
		return fmt.Errorf("import csv failed: %w", err)
	}
	return nil
}

func (a *analyzer) schema(table string) (*result, error) {
	rs, err := a.query(fmt.Sprintf(`DESCRIBE %s`, quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("describe table failed: %w", err)
	}
	return rs, nil
}

// compressionInfo reports a bounded sample of storage segments, with the
// low-level block bookkeeping columns stripped.
func (a *analyzer) compressionInfo(table string) (*result, error) {
	query := fmt.Sprintf(`SELECT * EXCLUDE (column_path, segment_id, start, persistent,
		block_id, stats, block_offset, has_updates)
	FROM pragma_storage_info(%s)
	USING SAMPLE 10 ROWS
	ORDER BY row_group_id`, quoteLiteral(table))

	rs, err := a.query(query)
	if err != nil {
		return nil, fmt.Errorf("read storage info failed: %w", err)
	}
	return rs, nil
}

func (a *analyzer) sample(source string, rows int, random bool) (*result, error) {
	var query string
	if random {
		query = fmt.Sprintf(`SELECT * FROM %s USING SAMPLE %d ROWS`, sourceRef(source), rows)
	} else {
		query = fmt.Sprintf(`SELECT * FROM %s LIMIT %d`, sourceRef(source), rows)
	}

	rs, err := a.query(query)
	if err != nil {
		return nil, fmt.Errorf("sample failed: %w", err)
	}
	return rs, nil
}

type columnStats struct {
	count  int64
	unique int64
	min    any
	max    any
}

// columnStats computes all four statistics in a single pass over the source.
func (a *analyzer) columnStats(source, column string) (columnStats, error) {
	c := quoteIdent(column)
	query := fmt.Sprintf(`SELECT
		COUNT(%s) AS count,
		COUNT(DISTINCT %s) AS unique_values,
		MIN(%s) AS min_value,
		MAX(%s) AS max_value
	FROM %s`, c, c, c, c, sourceRef(source))

	var s columnStats
	if err := a.duckdb.Conn.QueryRow(query).Scan(&s.count, &s.unique, &s.min, &s.max); err != nil {
		return columnStats{}, fmt.Errorf("column stats failed: %w", err)
	}
	s.min = normalizeValue(s.min)
	s.max = normalizeValue(s.max)
	return s, nil
}

func (a *analyzer) groupBy(source, groupColumn, countColumn string) (*result, error) {
	if countColumn == "" {
		countColumn = "*"
	}
	g := quoteIdent(groupColumn)
	c := countColumn
	if c != "*" {
		c = quoteIdent(c)
	}
	query := fmt.Sprintf(`SELECT %s, COUNT(%s) AS count FROM %s GROUP BY %s ORDER BY count DESC`,
		g, c, sourceRef(source), g)

	rs, err := a.query(query)
	if err != nil {
		return nil, fmt.Errorf("group by failed: %w", err)
	}
	return rs, nil
}

// columnNames probes the source with a zero-row query and reads the column
// metadata back, used to validate columns before stats and group actions.
func (a *analyzer) columnNames(source string) ([]string, error) {
	rs, err := a.duckdb.Conn.Query(fmt.Sprintf(`SELECT * FROM %s LIMIT 0`, sourceRef(source)))
	if err != nil {
		return nil, fmt.Errorf("probe columns failed: %w", err)
	}
	defer rs.Close()

	columns, err := rs.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns failed: %w", err)
	}
	return columns, nil
}

func (a *analyzer) tableExists(table string) (bool, error) {
	var count int64
	err := a.duckdb.Conn.QueryRow(`SELECT COUNT(*) FROM duckdb_tables() WHERE table_name = ?`, table).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("read catalog failed: %w", err)
	}
	return count > 0, nil
}

// rawQuery runs caller-supplied SQL verbatim. This is a local single-user
// tool, whatever the statement does is on the caller.
func (a *analyzer) rawQuery(text string) (*result, error) {
	rs, err := a.query(text)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rs, nil
}
