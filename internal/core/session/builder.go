package session

import (
	"time"

	"github.com/penwyp/go-claude-statusline/internal/core/constants"
	"github.com/penwyp/go-claude-statusline/internal/core/cost"
	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

// Builder partitions timestamp-sorted usage records into billing blocks.
type Builder struct {
	calc     *cost.Calculator
	now      time.Time
	duration time.Duration
}

// NewBuilder returns a builder that classifies blocks relative to now.
func NewBuilder(calc *cost.Calculator, now time.Time) *Builder {
	if calc == nil {
		calc = cost.NewCalculator(nil)
	}
	return &Builder{
		calc:     calc,
		now:      now,
		duration: constants.BlockDuration,
	}
}

// FloorToHour truncates t to the start of its UTC hour.
func FloorToHour(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}

// Build walks records in order and returns the blocks they form, with an
// IdleBlock between any two entries more than one block duration apart.
// A new block opens only when an entry is strictly more than one block
// duration past the block start or the previous entry. Records with a
// missing or malformed timestamp are skipped.
func (b *Builder) Build(records []model.UsageRecord) []Block {
	var (
		blocks  []Block
		cur     *span
		skipped int
	)

	for _, r := range records {
		ts, ok := r.Timestamp()
		if !ok {
			skipped++
			continue
		}

		if cur == nil {
			cur = b.open(ts, r)
			continue
		}

		sinceStart := ts.Sub(cur.start)
		sinceLast := ts.Sub(cur.last)

		if sinceStart > b.duration || sinceLast > b.duration {
			blocks = append(blocks, b.close(cur))
			if sinceLast > b.duration {
				blocks = append(blocks, &IdleBlock{
					Start: cur.last.Add(b.duration),
					End:   ts,
				})
			}
			cur = b.open(ts, r)
			continue
		}

		cur.entries = append(cur.entries, r)
		cur.last = ts
	}

	if cur != nil {
		blocks = append(blocks, b.close(cur))
	}

	if skipped > 0 {
		util.LogDebugf("Block builder skipped %d records without a valid timestamp", skipped)
	}
	return demoteLaterActive(blocks)
}

func (b *Builder) open(ts time.Time, r model.UsageRecord) *span {
	return &span{
		start:   FloorToHour(ts),
		first:   ts,
		last:    ts,
		entries: []model.UsageRecord{r},
	}
}

// close prices the span and classifies it against now.
func (b *Builder) close(s *span) Block {
	s.totalCost = b.calc.Sum(s.entries)
	if b.now.Before(s.EndTime()) && b.now.Sub(s.last) < b.duration {
		return &ActiveBlock{span: *s}
	}
	return &CompletedBlock{span: *s}
}

// demoteLaterActive keeps only the earliest ActiveBlock active. Two blocks
// can only both pass the activity test when entries are dated after now,
// and the earliest one is the window that holds now.
func demoteLaterActive(blocks []Block) []Block {
	seen := false
	for i := range blocks {
		active, ok := blocks[i].(*ActiveBlock)
		if !ok {
			continue
		}
		if seen {
			blocks[i] = &CompletedBlock{span: active.span}
		}
		seen = true
	}
	return blocks
}

// FindActive returns the first active block, if any.
func FindActive(blocks []Block) (*ActiveBlock, bool) {
	for _, blk := range blocks {
		if active, ok := blk.(*ActiveBlock); ok {
			return active, true
		}
	}
	return nil, false
}
