package snapshot

import (
	"sort"
	"sync"
	"time"

	"github.com/penwyp/go-claude-statusline/internal/core/cost"
	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/core/session"
	"github.com/penwyp/go-claude-statusline/internal/util"
	"github.com/samber/lo"
)

// Snapshot is the deduplicated, timestamp-sorted usage of one invocation.
// It is immutable; derived views are computed on first use and cached.
type Snapshot struct {
	entries []model.UsageRecord
	calc    *cost.Calculator
	now     time.Time

	todayOnce sync.Once
	today     []model.UsageRecord
	todayCost float64

	blocksOnce sync.Once
	blocks     []session.Block
	active     *session.ActiveBlock

	mu           sync.Mutex
	sessionCosts map[model.SessionID]float64
}

// Option configures a Snapshot.
type Option func(*Snapshot)

// WithNow fixes the evaluation time used for "today" and block activity.
// The default is the current time of the global time provider.
func WithNow(now time.Time) Option {
	return func(s *Snapshot) {
		s.now = now
	}
}

// New builds a snapshot over records, sorting them by timestamp. The slice
// is taken over by the snapshot.
func New(records []model.UsageRecord, calc *cost.Calculator, opts ...Option) *Snapshot {
	if calc == nil {
		calc = cost.NewCalculator(nil)
	}
	s := &Snapshot{
		entries:      records,
		calc:         calc,
		sessionCosts: make(map[model.SessionID]float64),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.now.IsZero() {
		s.now = util.GetTimeProvider().Now()
	}
	SortByTimestamp(s.entries)
	return s
}

// SortByTimestamp orders records by their timestamp string. Log timestamps
// are fixed-width UTC, so string order is time order.
func SortByTimestamp(records []model.UsageRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Data.Timestamp < records[j].Data.Timestamp
	})
}

// Entries returns all records in timestamp order.
func (s *Snapshot) Entries() []model.UsageRecord {
	return s.entries
}

func (s *Snapshot) Len() int {
	return len(s.entries)
}

// Now returns the evaluation time.
func (s *Snapshot) Now() time.Time {
	return s.now
}

// Calculator returns the cost calculator used for derived views.
func (s *Snapshot) Calculator() *cost.Calculator {
	return s.calc
}

// LocalMidnight returns the start of the evaluation day in the evaluation
// time zone.
func (s *Snapshot) LocalMidnight() time.Time {
	y, m, d := s.now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.now.Location())
}

// TodayEntries returns the records at or after local midnight, found by
// binary search on the timestamp strings.
func (s *Snapshot) TodayEntries() []model.UsageRecord {
	s.computeToday()
	return s.today
}

// TodayCost returns the total cost of TodayEntries.
func (s *Snapshot) TodayCost() float64 {
	s.computeToday()
	return s.todayCost
}

func (s *Snapshot) computeToday() {
	s.todayOnce.Do(func() {
		key := model.FormatTimestamp(s.LocalMidnight())
		idx := sort.Search(len(s.entries), func(i int) bool {
			return s.entries[i].Data.Timestamp >= key
		})
		s.today = s.entries[idx:]
		s.todayCost = s.calc.Sum(s.today)
	})
}

// SessionCost returns the total cost of records belonging to id.
func (s *Snapshot) SessionCost(id model.SessionID) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.sessionCosts[id]; ok {
		return c
	}
	c := s.calc.Sum(s.SessionEntries(id))
	s.sessionCosts[id] = c
	return c
}

// SessionEntries returns the records belonging to id.
func (s *Snapshot) SessionEntries(id model.SessionID) []model.UsageRecord {
	if id.IsZero() {
		return nil
	}
	return lo.Filter(s.entries, func(r model.UsageRecord, _ int) bool {
		return r.SessionID.Equal(id)
	})
}

// Blocks returns every billing block over the whole snapshot.
func (s *Snapshot) Blocks() []session.Block {
	s.computeBlocks()
	return s.blocks
}

// ActiveBlock returns the currently active block, if any.
func (s *Snapshot) ActiveBlock() (*session.ActiveBlock, bool) {
	s.computeBlocks()
	return s.active, s.active != nil
}

func (s *Snapshot) computeBlocks() {
	s.blocksOnce.Do(func() {
		s.blocks = session.NewBuilder(s.calc, s.now).Build(s.entries)
		if active, ok := session.FindActive(s.blocks); ok {
			s.active = active
		}
	})
}
