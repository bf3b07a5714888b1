package session

import (
	"time"

	"github.com/penwyp/go-claude-statusline/internal/core/constants"
	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/samber/lo"
)

// Kind classifies a block.
type Kind int

const (
	KindIdle Kind = iota
	KindActive
	KindCompleted
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindActive:
		return "active"
	case KindCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Block is one billing window. The concrete types are *IdleBlock,
// *ActiveBlock and *CompletedBlock; the set is closed.
type Block interface {
	Kind() Kind
	StartTime() time.Time
	EndTime() time.Time
	Entries() []model.UsageRecord
	Cost() float64
	isBlock()
}

// IdleBlock is a gap of more than one block duration with no activity.
// It never carries entries.
type IdleBlock struct {
	Start time.Time
	End   time.Time
}

func (b *IdleBlock) Kind() Kind                   { return KindIdle }
func (b *IdleBlock) StartTime() time.Time         { return b.Start }
func (b *IdleBlock) EndTime() time.Time           { return b.End }
func (b *IdleBlock) Entries() []model.UsageRecord { return nil }
func (b *IdleBlock) Cost() float64                { return 0 }
func (b *IdleBlock) isBlock()                     {}

// Duration returns the length of the gap.
func (b *IdleBlock) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// span is the shared body of non-idle blocks.
type span struct {
	start     time.Time
	first     time.Time
	last      time.Time
	entries   []model.UsageRecord
	totalCost float64
}

func (s *span) StartTime() time.Time         { return s.start }
func (s *span) EndTime() time.Time           { return s.start.Add(constants.BlockDuration) }
func (s *span) Entries() []model.UsageRecord { return s.entries }
func (s *span) Cost() float64                { return s.totalCost }

// FirstEntryTime returns the timestamp of the earliest entry.
func (s *span) FirstEntryTime() time.Time { return s.first }

// LastEntryTime returns the timestamp of the latest entry.
func (s *span) LastEntryTime() time.Time { return s.last }

// Tokens sums the normalized token usage of all entries.
func (s *span) Tokens() model.TokenUsage {
	var total model.TokenUsage
	for _, e := range s.entries {
		if e.Data.Message == nil {
			continue
		}
		t := e.Data.Message.Usage.Tokens()
		total.Input += t.Input
		total.Output += t.Output
		total.CacheCreation5m += t.CacheCreation5m
		total.CacheCreation1h += t.CacheCreation1h
		total.CacheRead += t.CacheRead
	}
	return total
}

// Models lists the distinct models used in the block, in first-use order.
func (s *span) Models() []model.ModelID {
	ids := lo.FilterMap(s.entries, func(e model.UsageRecord, _ int) (model.ModelID, bool) {
		id := e.EffectiveModel()
		return id, id != ""
	})
	return lo.Uniq(ids)
}

// ActiveBlock is the block whose window is still open and recently used.
type ActiveBlock struct {
	span
}

func (b *ActiveBlock) Kind() Kind { return KindActive }
func (b *ActiveBlock) isBlock()   {}

// CompletedBlock is a block whose window has elapsed or gone stale.
type CompletedBlock struct {
	span
}

func (b *CompletedBlock) Kind() Kind { return KindCompleted }
func (b *CompletedBlock) isBlock()   {}

// IsActive reports whether b is the active block.
func IsActive(b Block) bool {
	_, ok := b.(*ActiveBlock)
	return ok
}

// IsIdle reports whether b is an idle gap.
func IsIdle(b Block) bool {
	_, ok := b.(*IdleBlock)
	return ok
}

// FirstEntryTime returns the earliest entry time of a non-idle block.
func FirstEntryTime(b Block) (time.Time, bool) {
	switch v := b.(type) {
	case *ActiveBlock:
		return v.first, true
	case *CompletedBlock:
		return v.first, true
	default:
		return time.Time{}, false
	}
}

// LastEntryTime returns the latest entry time of a non-idle block.
func LastEntryTime(b Block) (time.Time, bool) {
	switch v := b.(type) {
	case *ActiveBlock:
		return v.last, true
	case *CompletedBlock:
		return v.last, true
	default:
		return time.Time{}, false
	}
}
