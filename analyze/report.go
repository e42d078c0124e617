package analyze

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/table"
)

const (
	megabyte  = 1024 * 1024
	topGroups = 10
)

func renderResult(title string, r *result) {
	tb := table.NewWriter()
	tb.SetStyle(table.StyleLight)
	tb.SetTitle(title)
	tb.AppendHeader(headerRow(r.columns))
	for _, row := range r.rows {
		tb.AppendRow(table.Row(row))
	}
	fmt.Println(tb.Render())
}

func renderCount(file string, count int64) {
	tb := table.NewWriter()
	tb.SetStyle(table.StyleLight)
	tb.SetTitle("🧮 Row Count")
	tb.AppendHeader(table.Row{"File", "Rows", "Size"})
	tb.AppendRow(table.Row{file, count, fileSize(file)})
	fmt.Println(tb.Render())
}

func renderStats(column string, s columnStats) {
	tb := table.NewWriter()
	tb.SetStyle(table.StyleLight)
	tb.SetTitle(fmt.Sprintf("📈 Statistics of %s", column))
	tb.AppendHeader(table.Row{"Count", "Unique", "Min", "Max"})
	tb.AppendRow(table.Row{s.count, s.unique, s.min, s.max})
	fmt.Println(tb.Render())
}

func renderGroups(column string, r *result) {
	tb := table.NewWriter()
	tb.SetStyle(table.StyleLight)
	tb.SetTitle(fmt.Sprintf("🔥 Top groups of %s", column))
	tb.AppendHeader(headerRow(r.columns))

	shown := len(r.rows)
	if shown > topGroups {
		shown = topGroups
	}
	for _, row := range r.rows[:shown] {
		tb.AppendRow(table.Row(row))
	}
	fmt.Println(tb.Render())
	fmt.Printf("(showing top %d of %d groups)\n", shown, len(r.rows))
}

func headerRow(columns []string) table.Row {
	header := make(table.Row, 0, len(columns))
	for _, c := range columns {
		header = append(header, c)
	}
	return header
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "-"
	}
	return fmt.Sprintf("%.2f MB", float64(info.Size())/megabyte)
}
