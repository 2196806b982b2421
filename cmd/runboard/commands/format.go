package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/wonny/runboard/internal/contracts"
	"github.com/wonny/runboard/internal/leaderboard"
	"github.com/wonny/runboard/internal/ranking"
)

// podium is the number of top ranks highlighted in tables
const podium = 3

// colorScheme defines the colors used in table output
type colorScheme struct {
	Title     *color.Color
	Podium    *color.Color
	Muted     *color.Color
	Highlight *color.Color
}

func defaultColorScheme() *colorScheme {
	return &colorScheme{
		Title:     color.New(color.FgCyan, color.Bold),
		Podium:    color.New(color.FgYellow, color.Bold),
		Muted:     color.New(color.FgHiBlack),
		Highlight: color.New(color.FgMagenta),
	}
}

// printer renders query results as tables or JSON
type printer struct {
	out    io.Writer
	json   bool
	colors *colorScheme
}

func newPrinter(cmd *cobra.Command, opts *globalOptions) (*printer, error) {
	switch opts.output {
	case "table", "json":
	default:
		return nil, fmt.Errorf("unknown output format %q (table|json)", opts.output)
	}
	return &printer{
		out:    cmd.OutOrStdout(),
		json:   opts.output == "json",
		colors: defaultColorScheme(),
	}, nil
}

func (p *printer) writeJSON(v interface{}) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(p.out)
	tbl.SetStyle(table.StyleLight)
	return tbl
}

func (p *printer) title(format string, args ...interface{}) {
	p.colors.Title.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) entryRows(tbl table.Writer, entries []contracts.RankedEntry, withImprovement bool) {
	for _, e := range entries {
		rank := strconv.Itoa(e.Rank)
		if e.IsTopRanked(podium) {
			rank = p.colors.Podium.Sprint(rank)
		}
		row := table.Row{rank, e.Identity, e.Value.String()}
		if withImprovement {
			imp := "-"
			if e.Improvement != nil {
				imp = e.Improvement.String() + "%"
			}
			row = append(row, imp)
		}
		tbl.AppendRow(row)
	}
}

// leaderboard renders one ranked sequence
func (p *printer) leaderboard(lb leaderboard.Leaderboard) error {
	if p.json {
		return p.writeJSON(lb)
	}

	switch {
	case lb.Value != "":
		p.title("%s (%s) · %s = %s", lb.Label, lb.Order, lb.Category, lb.Value)
	case lb.Category != "":
		p.title("%s (%s) · by %s", lb.Label, lb.Order, lb.Category)
	default:
		p.title("%s (%s)", lb.Label, lb.Order)
	}

	grouped := lb.Category != "" && lb.Value == ""
	tbl := p.newTable()
	if grouped {
		tbl.AppendHeader(table.Row{"#", lb.Category, lb.Label, "Last Week"})
	} else {
		tbl.AppendHeader(table.Row{"#", "Name", lb.Label})
	}
	p.entryRows(tbl, lb.Entries, grouped)
	tbl.AppendFooter(table.Row{"", fmt.Sprintf("Total: %d", len(lb.Entries))})
	tbl.Render()
	return nil
}

// boards renders one table per category value
func (p *printer) boards(b leaderboard.Boards) error {
	if p.json {
		return p.writeJSON(b)
	}

	p.title("%s (%s) · within %s", b.Label, b.Order, b.Category)
	for _, board := range b.Boards {
		fmt.Fprintln(p.out)
		p.colors.Highlight.Fprintf(p.out, "%s = %s\n", board.Category, board.Value)

		tbl := p.newTable()
		tbl.AppendHeader(table.Row{"#", "Name", b.Label})
		p.entryRows(tbl, board.Entries, false)
		tbl.Render()
	}
	return nil
}

// stats renders a statistics block
func (p *printer) stats(block contracts.StatsBlock) error {
	if p.json {
		return p.writeJSON(block)
	}

	if block.Kind == leaderboard.KindIndividual {
		p.title("%s", block.Subject)
	} else {
		p.title("%s = %s", block.Kind, block.Subject)
	}

	tbl := p.newTable()
	tbl.AppendHeader(table.Row{"Metric", "Value", "Week"})
	for _, line := range block.Lines {
		week := line.Label
		if week == contracts.NotAvailable {
			week = p.colors.Muted.Sprint(week)
		}
		tbl.AppendRow(table.Row{line.Metric, line.Value.String(), week})
	}
	tbl.Render()
	return nil
}

// metrics renders the metric catalogue
func (p *printer) metrics(defs []ranking.Definition) error {
	if p.json {
		return p.writeJSON(defs)
	}

	tbl := p.newTable()
	tbl.AppendHeader(table.Row{"ID", "Label", "Default Order"})
	for _, d := range defs {
		tbl.AppendRow(table.Row{string(d.ID), d.Label, string(d.DefaultOrder)})
	}
	tbl.Render()
	return nil
}

// values renders a list of selectable values
func (p *printer) values(kind string, values []string) error {
	if p.json {
		return p.writeJSON(map[string]interface{}{"kind": kind, "values": values})
	}

	tbl := p.newTable()
	tbl.AppendHeader(table.Row{kind})
	for _, v := range values {
		tbl.AppendRow(table.Row{v})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d", len(values))})
	tbl.Render()
	return nil
}
