package formatter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/penwyp/go-claude-statusline/internal/util"
)

// SummaryFormatter prints aggregate totals over all blocks.
type SummaryFormatter struct {
	loc *time.Location
}

// NewSummaryFormatter creates a summary formatter showing times in loc.
func NewSummaryFormatter(loc *time.Location) *SummaryFormatter {
	if loc == nil {
		loc = time.Local
	}
	return &SummaryFormatter{loc: loc}
}

func (f *SummaryFormatter) Format(w io.Writer, rows []BlockRow) error {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "Claude Usage Block Summary")
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)

	used := lo.Filter(rows, func(r BlockRow, _ int) bool { return r.Kind != "idle" })
	if len(used) == 0 {
		fmt.Fprintln(&b, "No data to summarize")
		fmt.Fprintln(&b, rule)
		_, err := io.WriteString(w, b.String())
		return err
	}

	first := used[0].Start.In(f.loc).Format(tableTimeLayout)
	last := used[len(used)-1].End.In(f.loc).Format(tableTimeLayout)
	fmt.Fprintf(&b, "Range: %s to %s\n", first, last)

	counts := lo.CountValuesBy(rows, func(r BlockRow) string { return r.Kind })
	fmt.Fprintf(&b, "Blocks: %d completed, %d active, %d idle\n", counts["completed"], counts["active"], counts["idle"])
	fmt.Fprintln(&b)

	total := totals(rows)
	fmt.Fprintln(&b, "Token Breakdown:")
	fmt.Fprintf(&b, "  Input: %s\n", util.FormatNumber(total.InputTokens))
	fmt.Fprintf(&b, "  Output: %s\n", util.FormatNumber(total.OutputTokens))
	fmt.Fprintf(&b, "  Cache Creation: %s\n", util.FormatNumber(total.CacheCreation))
	fmt.Fprintf(&b, "  Cache Read: %s\n", util.FormatNumber(total.CacheRead))
	fmt.Fprintf(&b, "  Total Tokens: %s\n", util.FormatNumber(total.TotalTokens))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "Cost Breakdown:")
	fmt.Fprintf(&b, "  Total Cost: %s USD\n", util.FormatCurrency(total.Cost))
	fmt.Fprintf(&b, "  Average per Block: %s USD\n", util.FormatCurrency(total.Cost/float64(len(used))))

	if active, ok := lo.Find(rows, func(r BlockRow) bool { return r.Kind == "active" }); ok {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "Active Block:")
		fmt.Fprintf(&b, "  Cost: %s USD\n", util.FormatCurrency(active.Cost))
		if active.RemainingMinutes != nil {
			fmt.Fprintf(&b, "  Remaining: %s\n", util.FormatRemaining(*active.RemainingMinutes))
		}
		if active.BurnRate != nil {
			fmt.Fprintf(&b, "  Burn Rate: %s\n", util.FormatBurnRate(*active.BurnRate))
		}
	}

	fmt.Fprintln(&b, rule)
	_, err := io.WriteString(w, b.String())
	return err
}
