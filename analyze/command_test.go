package analyze

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	path := writeCSV(t, "a,b", "1,x")

	tests := []struct {
		name    string
		opts    options
		wantErr string
	}{
		{
			name: "unknown action",
			opts: options{action: "explode"},
			wantErr: "unknown action",
		},
		{
			name: "count without file",
			opts: options{action: actionCount},
			wantErr: "--file is required",
		},
		{
			name: "count with missing file",
			opts: options{action: actionCount, file: "nope.csv"},
			wantErr: "open file failed",
		},
		{
			name: "count ok",
			opts: options{action: actionCount, file: path},
		},
		{
			name: "sample without file",
			opts: options{action: actionSample},
			wantErr: "--file is required",
		},
		{
			name: "import without file",
			opts: options{action: actionImport, table: "data"},
			wantErr: "--file is required",
		},
		{
			name: "stats without column",
			opts: options{action: actionStats, file: path},
			wantErr: "--column is required",
		},
		{
			name: "stats ok",
			opts: options{action: actionStats, file: path, column: "a"},
		},
		{
			name: "group without column",
			opts: options{action: actionGroup, file: path},
			wantErr: "--column is required",
		},
		{
			name: "schema without table",
			opts: options{action: actionSchema},
			wantErr: "--table is required",
		},
		{
			name: "schema ok",
			opts: options{action: actionSchema, table: "data"},
		},
		{
			name: "compression without table",
			opts: options{action: actionCompression},
			wantErr: "--table is required",
		},
		{
			name: "query without sql",
			opts: options{action: actionQuery},
			wantErr: "--sql is required",
		},
		{
			name: "query ok",
			opts: options{action: actionQuery, sql: "SELECT 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateMissingFlagIsUsageError(t *testing.T) {
	opts := options{action: actionStats, file: writeCSV(t, "a", "1")}

	err := opts.validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errUsage))
}

func TestRequireColumn(t *testing.T) {
	a := newTestAnalyzer(t)
	path := writeCSV(t, "a,b", "1,x")

	assert.NoError(t, a.requireColumn(path, "a"))

	err := a.requireColumn(path, "doesnotexist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.True(t, errors.Is(err, errUsage))
}

func TestDispatchCount(t *testing.T) {
	a := newTestAnalyzer(t)
	path := writeCSV(t, "a,b", "1,x", "2,y")

	assert.NoError(t, dispatch(a, options{action: actionCount, file: path}))
}

func TestDispatchStatsMissingColumn(t *testing.T) {
	a := newTestAnalyzer(t)
	path := writeCSV(t, "a,b", "1,x")

	err := dispatch(a, options{action: actionStats, file: path, column: "doesnotexist"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRunClosesOnError(t *testing.T) {
	path := writeCSV(t, "a,b", "1,x")

	err := run(options{action: actionStats, file: path, column: "doesnotexist", db: ":memory:"})
	assert.Error(t, err)
}
