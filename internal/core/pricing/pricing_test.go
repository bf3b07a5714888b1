package pricing

import (
	"testing"

	"github.com/penwyp/go-claude-statusline/internal/core/model"

	"github.com/stretchr/testify/assert"
)

func TestPerMillion(t *testing.T) {
	p := PerMillion(15.00, 75.00, 18.75, 30.00, 1.50)
	assert.InDelta(t, 0.000015, p.Input, 1e-15)
	assert.InDelta(t, 0.000075, p.Output, 1e-15)
	assert.InDelta(t, 0.00001875, p.CacheCreation, 1e-15)
	assert.InDelta(t, 0.00003, p.CacheCreation1h, 1e-15)
	assert.InDelta(t, 0.0000015, p.CacheRead, 1e-15)

	back := p.PerMillionRates()
	assert.InDelta(t, 15.00, back.Input, 1e-9)
	assert.InDelta(t, 18.75, back.CacheCreation, 1e-9)
}

func TestModelPricingCost(t *testing.T) {
	tests := []struct {
		name    string
		pricing ModelPricing
		tokens  model.TokenUsage
		want    float64
	}{
		{
			name: "opus_tiers",
			pricing: ModelPricing{
				Input:         0.000015,
				Output:        0.000075,
				CacheCreation: 0.00001875,
				CacheRead:     0.0000015,
			},
			tokens: model.TokenUsage{Input: 1000, Output: 500, CacheCreation5m: 200, CacheRead: 300},
			want:   0.0567,
		},
		{
			name:    "one_hour_cache_writes",
			pricing: PerMillion(3, 15, 3.75, 6, 0.3),
			tokens:  model.TokenUsage{CacheCreation1h: 1_000_000},
			want:    6.0,
		},
		{
			name:    "zero_row",
			pricing: ModelPricing{},
			tokens:  model.TokenUsage{Input: 1000, Output: 1000},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.pricing.Cost(tt.tokens), 1e-10)
		})
	}
}

func TestModelPricingIsZero(t *testing.T) {
	assert.True(t, ModelPricing{}.IsZero())
	assert.False(t, sonnet.IsZero())
}

func TestDefaultPricingIsCopy(t *testing.T) {
	rows := DefaultPricing()
	rows[model.ModelOpus4] = ModelPricing{}
	assert.False(t, DefaultTable().Resolve(model.ModelOpus4).IsZero())
}
