// Package render formats relation and view contents for terminal
// output: a colorized one-line summary (in the spirit of the
// datalog annotation renderer) and a markdown table of rows (in the
// spirit of the datalog executor's table formatter). Both are generic
// over the caller supplying a row-extraction function, since the
// engine's tuple types are arbitrary and carry no column metadata of
// their own.
package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// Summary renders a one-line, colorized description of a relation or
// view: its name and its current tuple count.
func Summary(name string, count int) string {
	return fmt.Sprintf("%s%s%s",
		color.BlueString(name+"("),
		colorizeCount(count),
		color.BlueString(")"))
}

func colorizeCount(count int) string {
	if count == 0 {
		return color.YellowString("0 tuples")
	}
	return color.GreenString(fmt.Sprintf("%d tuples", count))
}

// Table renders items as a markdown table with the given column
// headers, using toRow to extract one row of cell values per item.
func Table[T any](headers []string, items []T, toRow func(T) []string) string {
	if len(items) == 0 {
		return fmt.Sprintf("_Columns: %s_\n\n_No rows_", strings.Join(headers, ", "))
	}

	var b strings.Builder
	alignment := make([]tw.Align, len(headers))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(&b,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header(headers)
	for _, item := range items {
		table.Append(toRow(item))
	}
	table.Render()
	return b.String()
}
