package formatter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/penwyp/go-claude-statusline/internal/util"
)

const tableTimeLayout = "2006-01-02 15:04"

// TableFormatter renders blocks as a box-drawn table.
type TableFormatter struct {
	headers []string
	loc     *time.Location
}

func NewTableFormatter(loc *time.Location) *TableFormatter {
	if loc == nil {
		loc = time.Local
	}
	return &TableFormatter{
		headers: []string{
			"Start", "Status", "Entries", "Models", "Input", "Output",
			"Cache Create", "Cache Read", "Total Tokens", "Cost (USD)", "Burn Rate",
		},
		loc: loc,
	}
}

func (f *TableFormatter) Format(w io.Writer, rows []BlockRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No usage blocks found")
		return err
	}

	lines := make([][]string, 0, len(rows)+1)
	for _, row := range rows {
		lines = append(lines, f.cells(row))
	}
	total := totals(rows)
	totalLine := []string{
		"Total", "", util.FormatNumber(int64(total.Entries)), "",
		util.FormatNumber(total.InputTokens),
		util.FormatNumber(total.OutputTokens),
		util.FormatNumber(total.CacheCreation),
		util.FormatNumber(total.CacheRead),
		util.FormatNumber(total.TotalTokens),
		util.FormatCurrency(total.Cost),
		"",
	}

	widths := f.calculateColumnWidths(append(lines, totalLine))

	var b strings.Builder
	f.writeBorder(&b, widths, "top")
	f.writeRow(&b, f.headers, widths)
	f.writeBorder(&b, widths, "middle")
	for _, line := range lines {
		f.writeRow(&b, line, widths)
	}
	f.writeBorder(&b, widths, "middle")
	f.writeRow(&b, totalLine, widths)
	f.writeBorder(&b, widths, "bottom")

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *TableFormatter) cells(row BlockRow) []string {
	status := row.Kind
	if row.RemainingMinutes != nil {
		status = fmt.Sprintf("%s (%s)", row.Kind, util.FormatRemaining(*row.RemainingMinutes))
	}
	if row.Kind == "idle" {
		status = fmt.Sprintf("idle (%s)", util.FormatDuration(row.End.Sub(row.Start)))
	}

	models := make([]string, len(row.Models))
	for i, m := range row.Models {
		models[i] = util.SimplifyModelName(m)
	}

	burn := "-"
	if row.BurnRate != nil {
		burn = util.FormatBurnRate(*row.BurnRate)
	}

	return []string{
		row.Start.In(f.loc).Format(tableTimeLayout),
		status,
		util.FormatNumber(int64(row.Entries)),
		strings.Join(models, ", "),
		util.FormatNumber(row.InputTokens),
		util.FormatNumber(row.OutputTokens),
		util.FormatNumber(row.CacheCreation),
		util.FormatNumber(row.CacheRead),
		util.FormatNumber(row.TotalTokens),
		util.FormatCurrency(row.Cost),
		burn,
	}
}

// calculateColumnWidths sizes each column to its widest cell in display cells.
func (f *TableFormatter) calculateColumnWidths(lines [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, line := range lines {
		for i, value := range line {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (f *TableFormatter) writeBorder(b *strings.Builder, widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	b.WriteByte('\n')
}

// writeRow left-aligns the text columns and right-aligns the numeric ones.
func (f *TableFormatter) writeRow(b *strings.Builder, values []string, widths []int) {
	b.WriteString("│")
	for i, value := range values {
		b.WriteByte(' ')
		if i == 0 || i == 1 || i == 3 {
			b.WriteString(util.PadRight(value, widths[i]))
		} else {
			b.WriteString(util.PadLeft(value, widths[i]))
		}
		b.WriteString(" │")
	}
	b.WriteByte('\n')
}
