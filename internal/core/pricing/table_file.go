package pricing

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

// TableFile is the on-disk form of a pricing table. Rates are stored per
// million tokens, the unit Anthropic publishes them in.
type TableFile struct {
	Source    string                         `json:"source"`
	UpdatedAt time.Time                      `json:"updated_at"`
	Pricing   map[model.ModelID]ModelPricing `json:"pricing"`
}

// LoadTableFile reads a pricing file and returns a table with its rows
// layered over the built-in rate card.
func LoadTableFile(path string) (*Table, error) {
	util.LogDebug(fmt.Sprintf("Loading pricing table from %s", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing file %s: %w", path, err)
	}

	var tf TableFile
	if err := sonic.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pricing file %s: %w", path, err)
	}

	rows := DefaultPricing()
	for id, perMillion := range tf.Pricing {
		rows[id] = PerMillion(perMillion.Input, perMillion.Output, perMillion.CacheCreation,
			perMillion.CacheCreation1h, perMillion.CacheRead)
	}

	util.LogDebug(fmt.Sprintf("Loaded pricing table: source=%s, overrides=%d, models=%d",
		tf.Source, len(tf.Pricing), len(rows)))
	return NewTable(rows), nil
}

// SaveTableFile writes the table to path atomically.
func SaveTableFile(path, source string, t *Table) error {
	rows := t.Rows()
	tf := TableFile{
		Source:    source,
		UpdatedAt: util.GetTimeProvider().Now(),
		Pricing:   make(map[model.ModelID]ModelPricing, len(rows)),
	}
	for id, p := range rows {
		tf.Pricing[id] = p.PerMillionRates()
	}

	data, err := sonic.MarshalIndent(tf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pricing table: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create pricing directory: %w", err)
		}
	}

	// Write to temporary file first
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write pricing file: %w", err)
	}

	// Rename to final location (atomic operation)
	if err := os.Rename(tmpFile, path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename pricing file: %w", err)
	}

	util.LogDebug(fmt.Sprintf("Saved %d pricing rows to %s", len(rows), path))
	return nil
}
