package pricing

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/penwyp/go-claude-statusline/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableLookup(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name  string
		model model.ModelID
		want  ModelPricing
		kind  MatchKind
	}{
		{"exact_opus41", model.ModelOpus41, opusLegacy, MatchExact},
		{"exact_opus45", model.ModelOpus45, opus45, MatchExact},
		{"exact_haiku35", model.ModelHaiku35, haiku35, MatchExact},
		{"model_contains_key", "bedrock/claude-sonnet-4-20250514-v1:0", sonnet, MatchSubstring},
		{"key_contains_model", "claude-3-5-haiku", haiku35, MatchSubstring},
		{"substring_case_insensitive", "CLAUDE-3-HAIKU-20240307", haiku3, MatchSubstring},
		{"family_opus", "claude-opus-9-20300101", opusLegacy, MatchFamily},
		{"family_sonnet", "anthropic.Sonnet-next", sonnet, MatchFamily},
		{"family_haiku", "my-haiku-model", haiku35, MatchFamily},
		{"unknown", "gpt-4o", ModelPricing{}, MatchNone},
		{"empty", "", ModelPricing{}, MatchNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, kind := table.Lookup(tt.model)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, table.Resolve(tt.model))
		})
	}
}

func TestTableExactBeatsSubstring(t *testing.T) {
	short := PerMillion(1, 1, 1, 1, 1)
	long := PerMillion(2, 2, 2, 2, 2)
	table := NewTable(map[model.ModelID]ModelPricing{
		"claude-x":      short,
		"claude-x-long": long,
	})

	assert.Equal(t, short, table.Resolve("claude-x"))
	assert.Equal(t, long, table.Resolve("claude-x-long"))
	// most specific embedded key wins
	assert.Equal(t, long, table.Resolve("vendor/claude-x-long@v2"))
	assert.Equal(t, short, table.Resolve("vendor/claude-x@v2"))
}

func TestTableFamilyUsesOwnRows(t *testing.T) {
	custom := PerMillion(9, 9, 9, 9, 9)
	table := NewTable(map[model.ModelID]ModelPricing{model.ModelOpus41: custom})

	assert.Equal(t, custom, table.Resolve("some-opus"))
	assert.Equal(t, sonnet, table.Resolve("some-sonnet"))
}

func TestTableModels(t *testing.T) {
	table := DefaultTable()
	models := table.Models()
	assert.Len(t, models, table.Len())
	assert.IsIncreasing(t, models)
	assert.Contains(t, models, model.ModelSonnet4)
}

func TestTableConcurrentResolve(t *testing.T) {
	table := DefaultTable()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, sonnet, table.Resolve("claude-sonnet-4"))
			}
		}()
	}
	wg.Wait()
}

func TestMatchKindString(t *testing.T) {
	assert.Equal(t, "exact", MatchExact.String())
	assert.Equal(t, "substring", MatchSubstring.String())
	assert.Equal(t, "family", MatchFamily.String())
	assert.Equal(t, "none", MatchNone.String())
}

func TestTableFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pricing.json")

	require.NoError(t, SaveTableFile(path, "default", DefaultTable()))
	assert.NoFileExists(t, path+".tmp")

	loaded, err := LoadTableFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTable().Len(), loaded.Len())

	got := loaded.Resolve(model.ModelOpus41)
	assert.InDelta(t, opusLegacy.Input, got.Input, 1e-15)
	assert.InDelta(t, opusLegacy.CacheCreation1h, got.CacheCreation1h, 1e-15)
}
