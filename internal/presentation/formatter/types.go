package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/samber/lo"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/core/session"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

// BlockRow is the report view of one session block.
type BlockRow struct {
	Kind             string    `json:"kind"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	Entries          int       `json:"entries"`
	Models           []string  `json:"models,omitempty"`
	InputTokens      int64     `json:"input_tokens"`
	OutputTokens     int64     `json:"output_tokens"`
	CacheCreation    int64     `json:"cache_creation_tokens"`
	CacheRead        int64     `json:"cache_read_tokens"`
	TotalTokens      int64     `json:"total_tokens"`
	Cost             float64   `json:"cost_usd"`
	BurnRate         *float64  `json:"burn_rate_per_hour,omitempty"`
	RemainingMinutes *int64    `json:"remaining_minutes,omitempty"`
}

// Formatter writes a block report.
type Formatter interface {
	Format(w io.Writer, rows []BlockRow) error
}

// NewFormatter returns the formatter for name: table, json or summary.
// Times are shown in loc.
func NewFormatter(name string, loc *time.Location) (Formatter, error) {
	switch name {
	case "", "table":
		return NewTableFormatter(loc), nil
	case "json":
		return NewJSONFormatter(), nil
	case "summary":
		return NewSummaryFormatter(loc), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want table, json or summary)", name)
	}
}

// NewBlockRows converts blocks into report rows evaluated at now.
func NewBlockRows(blocks []session.Block, now time.Time) []BlockRow {
	return lo.Map(blocks, func(b session.Block, _ int) BlockRow {
		row := BlockRow{
			Kind:    b.Kind().String(),
			Start:   b.StartTime().UTC(),
			End:     b.EndTime().UTC(),
			Entries: len(b.Entries()),
			Cost:    b.Cost(),
		}

		var tokens model.TokenUsage
		var models []model.ModelID
		switch v := b.(type) {
		case *session.ActiveBlock:
			tokens, models = v.Tokens(), v.Models()
			mins := session.Remaining(v, now).Minutes()
			row.RemainingMinutes = &mins
		case *session.CompletedBlock:
			tokens, models = v.Tokens(), v.Models()
		}

		row.InputTokens = tokens.Input
		row.OutputTokens = tokens.Output
		row.CacheCreation = tokens.CacheCreation5m + tokens.CacheCreation1h
		row.CacheRead = tokens.CacheRead
		row.TotalTokens = tokens.Total()
		if len(models) > 0 {
			row.Models = util.SortModels(lo.Map(models, func(m model.ModelID, _ int) string { return m.String() }))
		}
		if rate, ok := session.BurnRate(b); ok {
			row.BurnRate = &rate
		}
		return row
	})
}

// totals sums token and cost columns over all rows.
func totals(rows []BlockRow) BlockRow {
	var t BlockRow
	for _, r := range rows {
		t.Entries += r.Entries
		t.InputTokens += r.InputTokens
		t.OutputTokens += r.OutputTokens
		t.CacheCreation += r.CacheCreation
		t.CacheRead += r.CacheRead
		t.TotalTokens += r.TotalTokens
		t.Cost += r.Cost
	}
	return t
}
