package db

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb/v2"
)

// Memory keeps the whole database in memory, nothing survives the process.
const Memory = ":memory:"

type DuckDB struct {
	Conn *sql.DB
}

func NewDuckDB(path string) (*DuckDB, error) {
	if path == "" {
		path = Memory
	}

	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open db failed: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open db %s failed: %w", path, err)
	}

	return &DuckDB{
		Conn: conn}, nil
}

func (d *DuckDB) Close() error {
	return d.Conn.Close()
}
