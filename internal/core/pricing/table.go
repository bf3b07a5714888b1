package pricing

import (
	"sort"
	"strings"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/samber/lo"
)

// MatchKind records which resolution rule produced a price.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchExact
	MatchSubstring
	MatchFamily
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchSubstring:
		return "substring"
	case MatchFamily:
		return "family"
	default:
		return "none"
	}
}

// Table is an immutable model to price lookup. Build it once at startup and
// share it; it has no mutating methods and is safe for concurrent use.
type Table struct {
	rows map[model.ModelID]ModelPricing
	// lowered keys, longest first; ties broken lexicographically
	keys []string
	orig map[string]model.ModelID
}

// NewTable builds a table from the given rows. The map is copied.
func NewTable(rows map[model.ModelID]ModelPricing) *Table {
	t := &Table{
		rows: make(map[model.ModelID]ModelPricing, len(rows)),
		orig: make(map[string]model.ModelID, len(rows)),
	}
	for id, p := range rows {
		if id == "" {
			continue
		}
		t.rows[id] = p
		t.orig[strings.ToLower(string(id))] = id
	}
	t.keys = lo.Keys(t.orig)
	sort.Slice(t.keys, func(i, j int) bool {
		if len(t.keys[i]) != len(t.keys[j]) {
			return len(t.keys[i]) > len(t.keys[j])
		}
		return t.keys[i] < t.keys[j]
	})
	return t
}

// DefaultTable returns a table holding the built-in rate card.
func DefaultTable() *Table {
	return NewTable(defaultPricing)
}

// Resolve returns the pricing for a model. Rules are applied in order:
// exact match, substring match in either direction, keyword family
// (opus, sonnet, haiku), and finally an all-zero row.
func (t *Table) Resolve(id model.ModelID) ModelPricing {
	p, _ := t.Lookup(id)
	return p
}

// Lookup is Resolve that also reports which rule matched.
func (t *Table) Lookup(id model.ModelID) (ModelPricing, MatchKind) {
	if id == "" {
		return ModelPricing{}, MatchNone
	}
	if p, ok := t.rows[id]; ok {
		return p, MatchExact
	}

	name := strings.ToLower(string(id))
	// A model string embedding a known key picks the most specific key.
	for _, k := range t.keys {
		if strings.Contains(name, k) {
			return t.rows[t.orig[k]], MatchSubstring
		}
	}
	// A truncated model string picks the closest key that extends it.
	for i := len(t.keys) - 1; i >= 0; i-- {
		if strings.Contains(t.keys[i], name) {
			return t.rows[t.orig[t.keys[i]]], MatchSubstring
		}
	}

	for _, f := range familyFallbacks {
		if f.match(id) {
			if p, ok := t.rows[f.model]; ok {
				return p, MatchFamily
			}
			return defaultPricing[f.model], MatchFamily
		}
	}
	return ModelPricing{}, MatchNone
}

// Models returns the priced model ids in sorted order.
func (t *Table) Models() []model.ModelID {
	ids := lo.Keys(t.rows)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Rows returns a copy of the table contents.
func (t *Table) Rows() map[model.ModelID]ModelPricing {
	out := make(map[model.ModelID]ModelPricing, len(t.rows))
	for k, v := range t.rows {
		out[k] = v
	}
	return out
}

func (t *Table) Len() int {
	return len(t.rows)
}
