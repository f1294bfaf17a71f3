package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/docker/go-units"
	"github.com/olekukonko/tablewriter"

	"github.com/njchilds90/go-treesearch/internal/stats"
	"github.com/njchilds90/go-treesearch/internal/usage"
)

// RenderTable prints one run as a console table with the same rows as a
// worksheet. Unknown sample names are rejected like in AppendWorksheet.
func RenderTable(out io.Writer, title string, measures Measures, samples []usage.Usage) error {
	if err := measures.Validate(); err != nil {
		return err
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{title, "Time (ms)"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)

	total := stats.New()
	for _, r := range measureRows {
		d, ok := measures[r.name]
		if !ok {
			table.Append([]string{r.title, "-"})
			continue
		}
		ms := milliseconds(d)
		total.Record(ms)
		table.Append([]string{r.title, formatFloat(ms)})
	}
	table.Append([]string{"Total", formatFloat(total.Sum())})

	cpu, ram := stats.New(), stats.New()
	for _, s := range samples {
		cpu.Record(s.CPU)
		ram.Record(s.RAM)
	}
	cpuText, ramText := "-", "-"
	if avg, ok := cpu.Average(); ok {
		cpuText = fmt.Sprintf("%.1f%%", avg)
	}
	if avg, ok := ram.Average(); ok {
		ramText = units.BytesSize(avg * 1024 * 1024)
	}
	table.SetFooter([]string{"CPU " + cpuText, "RAM " + ramText})

	table.Render()
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}
