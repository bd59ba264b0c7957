package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one column of a listing. Numeric columns are right
// aligned so sizes and durations line up.
type column struct {
	Title   string
	Numeric bool
}

var formatColumns = []column{
	{Title: "Key"},
	{Title: "Input"},
	{Title: "Output"},
	{Title: "MIME"},
	{Title: "Ext"},
}

var historyColumns = []column{
	{Title: "ID"},
	{Title: "When"},
	{Title: "Conversion"},
	{Title: "File"},
	{Title: "Status"},
	{Title: "In", Numeric: true},
	{Title: "Out", Numeric: true},
	{Title: "Took", Numeric: true},
}

// renderTable lays rows out under cols. Short rows are padded and cells past
// the last column are dropped.
func renderTable(cols []column, rows [][]string) string {
	if len(cols) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(cols))
	configs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		header[i] = c.Title
		configs[i] = table.ColumnConfig{Number: i + 1, Align: c.align(), AlignHeader: c.align()}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, cells := range rows {
		row := make(table.Row, len(cols))
		for i := range row {
			row[i] = ""
			if i < len(cells) {
				row[i] = cells[i]
			}
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}

func (c column) align() text.Align {
	if c.Numeric {
		return text.AlignRight
	}
	return text.AlignLeft
}
