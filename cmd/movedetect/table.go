package main

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pescuma/movedetect/lib/model"
	"github.com/pescuma/movedetect/lib/steps"
	"github.com/pescuma/movedetect/lib/utils"
)

const maxPathWidth = 60

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func renderMoves(moves []*model.Move) string {
	rows := make([][]string, 0, len(moves))
	for _, m := range moves {
		rows = append(rows, []string{
			formatPath(m.Original.Path, m.Original.Key),
			formatPath(m.File.Path, m.File.Key),
			formatScore(m.Score),
		})
	}

	return renderTable([]string{"From", "To", "Score"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight})
}

// renderStatistics keeps the order in which the step published them.
func renderStatistics(stats *steps.StatisticsRecorder) string {
	names := stats.Names()

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		value := "n/a"
		if v, ok := stats.Get(name).Get(); ok {
			value = formatCount(v)
		}

		rows = append(rows, []string{name, value})
	}

	return renderTable([]string{"Statistic", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}

func formatPath(path string, key string) string {
	if path == "" {
		path = key
	}
	return utils.TruncateMiddle(path, maxPathWidth)
}

func formatScore(score int) string {
	if score == model.MoveScoreUnknown {
		return "-"
	}
	return strconv.Itoa(score)
}

func formatCount(n int) string {
	return humanize.Comma(int64(n))
}
