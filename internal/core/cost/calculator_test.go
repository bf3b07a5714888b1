package cost

import (
	"testing"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/core/pricing"

	"github.com/stretchr/testify/assert"
)

func ptr(f float64) *float64 { return &f }

func usageRecord(outer, inner model.ModelID, u *model.Usage) model.UsageRecord {
	return model.UsageRecord{
		Data: model.UsageRecordData{
			Timestamp: "2025-08-10T09:00:00.000Z",
			Model:     outer,
			Message:   &model.Message{ID: "msg", Model: inner, Usage: u},
			RequestID: "req",
		},
		SessionID: model.NewSessionID("s1"),
	}
}

func TestCalculateTokenTiers(t *testing.T) {
	table := pricing.NewTable(map[model.ModelID]pricing.ModelPricing{
		"claude-opus-4-1-20250805": {
			Input:         0.000015,
			Output:        0.000075,
			CacheCreation: 0.00001875,
			CacheRead:     0.0000015,
		},
	})
	calc := NewCalculator(table)

	r := usageRecord("", "claude-opus-4-1-20250805", &model.Usage{
		InputTokens:              1000,
		OutputTokens:             500,
		CacheCreationInputTokens: 200,
		CacheReadInputTokens:     300,
	})

	assert.InDelta(t, 0.0567, calc.Calculate(r), 1e-10)
}

func TestCalculatePrecomputedCostWins(t *testing.T) {
	calc := NewCalculator(nil)
	r := usageRecord(model.ModelOpus4, model.ModelOpus4, &model.Usage{
		InputTokens:  1_000_000,
		OutputTokens: 1_000_000,
	})
	r.Data.CostUSD = ptr(5.67)

	assert.Equal(t, 5.67, calc.Calculate(r))

	r.Data.CostUSD = ptr(0)
	assert.Equal(t, 0.0, calc.Calculate(r))
}

func TestCalculateModelPrecedence(t *testing.T) {
	calc := NewCalculator(nil)
	u := &model.Usage{InputTokens: 1_000_000}

	// message model wins over the outer model
	assert.InDelta(t, 0.80, calc.Calculate(usageRecord(model.ModelOpus4, model.ModelHaiku35, u)), 1e-9)
	// outer model used when the message has none
	assert.InDelta(t, 15.00, calc.Calculate(usageRecord(model.ModelOpus4, "", u)), 1e-9)
}

func TestCalculateZeroCases(t *testing.T) {
	calc := NewCalculator(nil)

	tests := []struct {
		name   string
		record model.UsageRecord
	}{
		{"no_message", model.UsageRecord{Data: model.UsageRecordData{Model: model.ModelOpus4}}},
		{"no_usage", usageRecord(model.ModelOpus4, model.ModelOpus4, nil)},
		{"no_model", usageRecord("", "", &model.Usage{InputTokens: 1000})},
		{"unknown_model", usageRecord("", "gpt-4o", &model.Usage{InputTokens: 1000})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, calc.Calculate(tt.record))
		})
	}
}

func TestCalculateOneHourCacheTier(t *testing.T) {
	calc := NewCalculator(nil)
	r := usageRecord("", model.ModelSonnet4, &model.Usage{
		CacheCreationInputTokens: 3000,
		CacheCreation: &model.CacheCreation{
			Ephemeral5mInputTokens: 1000,
			Ephemeral1hInputTokens: 2000,
		},
	})
	// 1000 * 3.75/M + 2000 * 6/M
	assert.InDelta(t, 0.00375+0.012, calc.Calculate(r), 1e-12)
}

func TestSum(t *testing.T) {
	calc := NewCalculator(nil)
	a := usageRecord("", "", nil)
	a.Data.CostUSD = ptr(1.25)
	b := usageRecord("", "", nil)
	b.Data.CostUSD = ptr(2.50)

	assert.InDelta(t, 3.75, calc.Sum([]model.UsageRecord{a, b}), 1e-12)
	assert.Equal(t, 0.0, calc.Sum(nil))
	assert.NotNil(t, calc.Table())
}
