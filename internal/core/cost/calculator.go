package cost

import (
	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/core/pricing"
	"github.com/samber/lo"
)

// Calculator prices usage records against an immutable pricing table.
type Calculator struct {
	table *pricing.Table
}

// NewCalculator returns a calculator using table. A nil table means the
// built-in rate card.
func NewCalculator(table *pricing.Table) *Calculator {
	if table == nil {
		table = pricing.DefaultTable()
	}
	return &Calculator{table: table}
}

// Calculate returns the USD cost of one record. A pre-computed costUSD is
// authoritative. Otherwise the token usage is priced against the effective
// model; records without usage or without a model cost nothing.
func (c *Calculator) Calculate(r model.UsageRecord) float64 {
	if r.Data.CostUSD != nil {
		return *r.Data.CostUSD
	}
	if r.Data.Message == nil || r.Data.Message.Usage == nil {
		return 0
	}
	id := r.EffectiveModel()
	if id == "" {
		return 0
	}
	return c.table.Resolve(id).Cost(r.Data.Message.Usage.Tokens())
}

// Sum returns the total cost of records.
func (c *Calculator) Sum(records []model.UsageRecord) float64 {
	return lo.SumBy(records, c.Calculate)
}

// Table returns the pricing table in use.
func (c *Calculator) Table() *pricing.Table {
	return c.table
}
