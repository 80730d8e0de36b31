package report

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/beka-birhanu/maze-runner/pathfinding"
)

// WriteComparison renders one table row per algorithm result.
func WriteComparison(w io.Writer, mazeName string, results []pathfinding.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(mazeName)
	t.AppendHeader(table.Row{"Algorithm", "Path length", "Cost", "Expanded"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	for _, res := range results {
		t.AppendRow(table.Row{string(res.Algorithm), res.Length(), res.Cost, res.Expanded})
	}
	t.Render()
}
