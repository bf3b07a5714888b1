package pricing

import "github.com/penwyp/go-claude-statusline/internal/core/model"

// ModelPricing defines per-token USD rates for one model
type ModelPricing struct {
	Input           float64 `json:"input"`
	Output          float64 `json:"output"`
	CacheCreation   float64 `json:"cache_creation"`    // 5 minute cache writes
	CacheCreation1h float64 `json:"cache_creation_1h"` // 1 hour cache writes
	CacheRead       float64 `json:"cache_read"`
}

const tokensPerMillion = 1_000_000

// PerMillion builds a ModelPricing from the per-million-token rates Anthropic publishes.
func PerMillion(input, output, cacheCreation, cacheCreation1h, cacheRead float64) ModelPricing {
	return ModelPricing{
		Input:           input / tokensPerMillion,
		Output:          output / tokensPerMillion,
		CacheCreation:   cacheCreation / tokensPerMillion,
		CacheCreation1h: cacheCreation1h / tokensPerMillion,
		CacheRead:       cacheRead / tokensPerMillion,
	}
}

// PerMillionRates returns the rates scaled back to USD per million tokens.
func (p ModelPricing) PerMillionRates() ModelPricing {
	return ModelPricing{
		Input:           p.Input * tokensPerMillion,
		Output:          p.Output * tokensPerMillion,
		CacheCreation:   p.CacheCreation * tokensPerMillion,
		CacheCreation1h: p.CacheCreation1h * tokensPerMillion,
		CacheRead:       p.CacheRead * tokensPerMillion,
	}
}

// Cost prices a normalized token breakdown.
func (p ModelPricing) Cost(t model.TokenUsage) float64 {
	return float64(t.Input)*p.Input +
		float64(t.Output)*p.Output +
		float64(t.CacheCreation5m)*p.CacheCreation +
		float64(t.CacheCreation1h)*p.CacheCreation1h +
		float64(t.CacheRead)*p.CacheRead
}

// IsZero reports whether every rate is zero, as for unknown models.
func (p ModelPricing) IsZero() bool {
	return p == ModelPricing{}
}

var (
	opusLegacy = PerMillion(15.00, 75.00, 18.75, 30.00, 1.50)
	opus45     = PerMillion(5.00, 25.00, 6.25, 10.00, 0.50)
	sonnet     = PerMillion(3.00, 15.00, 3.75, 6.00, 0.30)
	haiku45    = PerMillion(1.00, 5.00, 1.25, 2.00, 0.10)
	haiku35    = PerMillion(0.80, 4.00, 1.00, 1.60, 0.08)
	haiku3     = PerMillion(0.25, 1.25, 0.30, 0.50, 0.03)
)

// defaultPricing holds the built-in rate card
var defaultPricing = map[model.ModelID]ModelPricing{
	model.ModelOpus45:   opus45,
	model.ModelOpus41:   opusLegacy,
	model.ModelOpus4:    opusLegacy,
	model.ModelOpus3:    opusLegacy,
	model.ModelSonnet45: sonnet,
	model.ModelSonnet4:  sonnet,
	model.ModelSonnet37: sonnet,
	model.ModelSonnet35: sonnet,
	model.ModelHaiku45:  haiku45,
	model.ModelHaiku35:  haiku35,
	model.ModelHaiku3:   haiku3,
}

// Keyword families, checked in this order after exact and substring matching fail.
var familyFallbacks = []struct {
	match func(model.ModelID) bool
	model model.ModelID
}{
	{model.ModelID.IsOpus, model.ModelOpus41},
	{model.ModelID.IsSonnet, model.ModelSonnet4},
	{model.ModelID.IsHaiku, model.ModelHaiku35},
}

// DefaultPricing returns a copy of the built-in rate card.
func DefaultPricing() map[model.ModelID]ModelPricing {
	out := make(map[model.ModelID]ModelPricing, len(defaultPricing))
	for k, v := range defaultPricing {
		out[k] = v
	}
	return out
}
