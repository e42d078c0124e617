package analyze

import (
	"fmt"
	"os"
	"slices"

	"duckscope/config"
	"duckscope/db"
	"duckscope/option"

	"github.com/pingcap/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	file         = "file"
	database     = "db"
	action       = "action"
	tableName    = "table"
	column       = "column"
	limit        = "limit"
	random       = "random"
	overwrite    = "overwrite"
	sqlText      = "sql"
	pick         = "pick"
	level        = "level"
	defaultLevel = "info"
)

const (
	actionCount       = "count"
	actionSample      = "sample"
	actionImport      = "import"
	actionStats       = "stats"
	actionSchema      = "schema"
	actionCompression = "compression"
	actionGroup       = "group"
	actionQuery       = "query"
)

func Flags(defaults config.Defaults) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name: file, Usage: "path to the csv file",
		},
		&cli.StringFlag{
			Name: database, Value: defaults.DB,
			Usage: "path to the duckdb database, \":memory:\" keeps it in memory",
		},
		&cli.StringFlag{
			Name: action, Required: true,
			Usage: "count, sample, import, stats, schema, compression, group or query",
		},
		&cli.StringFlag{
			Name: tableName, Value: defaults.Table, Usage: "table name",
		},
		&cli.StringFlag{
			Name: column, Usage: "column name for stats and group",
		},
		&cli.IntFlag{
			Name: limit, Value: defaults.Limit, Usage: "sample row limit",
		},
		&cli.BoolFlag{
			Name: random, Usage: "sample random rows instead of the first ones",
		},
		&cli.BoolFlag{
			Name: overwrite, Usage: "replace the table on import if it already exists",
		},
		&cli.StringFlag{
			Name: sqlText, Usage: "sql text for the query action",
		},
		&cli.BoolFlag{
			Name: pick, Usage: "select the csv file interactively",
		},
		&cli.StringFlag{
			Name: level, Usage: "info and debug",
			Value: defaultLevel,
		},
	}
}

func Action(c *cli.Context) error {
	setLogLevel(c.String(level))

	return run(options{
		file:      c.String(file),
		db:        c.String(database),
		action:    c.String(action),
		table:     c.String(tableName),
		column:    c.String(column),
		sql:       c.String(sqlText),
		limit:     c.Int(limit),
		limitSet:  c.IsSet(limit),
		random:    c.Bool(random),
		overwrite: c.Bool(overwrite),
		pick:      c.Bool(pick),
	})
}

func setLogLevel(l string) {
	switch l {
	case "debug":
		log.SetLevel(zap.DebugLevel)
	default:
		log.SetLevel(zap.InfoLevel)
	}
}

// options is the one query request a single invocation performs.
type options struct {
	file      string
	db        string
	action    string
	table     string
	column    string
	sql       string
	limit     int
	limitSet  bool
	random    bool
	overwrite bool
	pick      bool
}

// requirement declares which flags an action needs, checked once before
// any SQL is issued.
type requirement struct {
	file   bool
	column bool
	table  bool
	sql    bool
}

var requirements = map[string]requirement{
	actionCount:       {file: true},
	actionSample:      {file: true},
	actionImport:      {file: true, table: true},
	actionStats:       {file: true, column: true},
	actionSchema:      {table: true},
	actionCompression: {table: true},
	actionGroup:       {file: true, column: true},
	actionQuery:       {sql: true},
}

func (o *options) validate() error {
	r, ok := requirements[o.action]
	if !ok {
		return fmt.Errorf("%w: unknown action %q", errUsage, o.action)
	}

	if r.file && o.file == "" && o.pick {
		picked, err := option.PickCSV()
		if err != nil {
			return fmt.Errorf("pick csv failed: %w", err)
		}
		o.file = picked
	}

	if r.file {
		if o.file == "" {
			return fmt.Errorf("%w: --file is required for action %q", errUsage, o.action)
		}
		if _, err := os.Stat(o.file); err != nil {
			return fmt.Errorf("open file failed: %w", err)
		}
	}
	if r.column && o.column == "" {
		return fmt.Errorf("%w: --column is required for action %q", errUsage, o.action)
	}
	if r.table && o.table == "" {
		return fmt.Errorf("%w: --table is required for action %q", errUsage, o.action)
	}
	if r.sql && o.sql == "" {
		return fmt.Errorf("%w: --sql is required for action %q", errUsage, o.action)
	}
	return nil
}

func run(o options) error {
	if err := o.validate(); err != nil {
		return err
	}

	duckdb, err := db.NewDuckDB(o.db)
	if err != nil {
		return err
	}
	defer func() {
		_ = duckdb.Close()
	}()

	return dispatch(newAnalyzer(duckdb), o)
}

func dispatch(a *analyzer, o options) error {
	switch o.action {
	case actionCount:
		count, err := a.countRows(o.file)
		if err != nil {
			return err
		}
		renderCount(o.file, count)

	case actionSample:
		rs, err := a.sample(o.file, o.limit, o.random)
		if err != nil {
			return err
		}
		renderResult(fmt.Sprintf("🔍 Sample of %d rows", o.limit), rs)

	case actionImport:
		sampleRows := 0
		if o.limitSet {
			sampleRows = o.limit
		}
		spin := newSpinner("📥 importing...")
		err := a.importCSV(o.file, o.table, sampleRows, o.overwrite)
		spin.stop()
		if err != nil {
			return err
		}
		count, err := a.countRows(o.table)
		if err != nil {
			return err
		}
		log.Info("import completed",
			zap.String("table", o.table), zap.Int64("rows", count))

	case actionStats:
		if err := a.requireColumn(o.file, o.column); err != nil {
			return err
		}
		s, err := a.columnStats(o.file, o.column)
		if err != nil {
			return err
		}
		renderStats(o.column, s)

	case actionSchema:
		rs, err := a.schema(o.table)
		if err != nil {
			return err
		}
		renderResult(fmt.Sprintf("🧬 Schema of %s", o.table), rs)

	case actionCompression:
		rs, err := a.compressionInfo(o.table)
		if err != nil {
			return err
		}
		renderResult(fmt.Sprintf("🗜️ Compression of %s", o.table), rs)

	case actionGroup:
		if err := a.requireColumn(o.file, o.column); err != nil {
			return err
		}
		rs, err := a.groupBy(o.file, o.column, "*")
		if err != nil {
			return err
		}
		renderGroups(o.column, rs)

	case actionQuery:
		rs, err := a.rawQuery(o.sql)
		if err != nil {
			return err
		}
		renderResult("📊 Query result", rs)
	}
	return nil
}

// requireColumn turns a would-be engine error into a clear message before
// the aggregate query is built.
func (a *analyzer) requireColumn(source, column string) error {
	columns, err := a.columnNames(source)
	if err != nil {
		return err
	}
	if !slices.Contains(columns, column) {
		return fmt.Errorf("%w: column %q not found in %s", errUsage, column, source)
	}
	return nil
}
