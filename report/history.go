package report

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	dmn "github.com/beka-birhanu/maze-runner/domain"
)

// WriteHistory renders stored runs, newest first as given.
func WriteHistory(w io.Writer, runs []*dmn.Run) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"When", "Maze", "Size", "Algorithm", "Steps", "Path length", "Score"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	for _, run := range runs {
		pathLength := "-"
		if run.PathFound {
			pathLength = FormatInt(run.PathLength)
		}
		t.AppendRow(table.Row{
			run.CreatedAt.Local().Format(time.DateTime),
			run.MazeName,
			FormatInt(run.Width) + "x" + FormatInt(run.Height),
			run.Algorithm,
			run.ExplorationSteps,
			pathLength,
			FormatScore(run.Score),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "Runs", len(runs)})
	t.Render()
}
