package parser

import (
	"bytes"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/util"
	"golang.org/x/sync/errgroup"
)

// Files with at least this many lines are parsed across goroutines.
const lineFanoutThreshold = 2048

// Parser turns session log files into usage records.
type Parser struct {
	concurrency int
}

// NewParser creates a new Parser instance.
func NewParser(concurrency int) *Parser {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Parser{concurrency: concurrency}
}

// ParseFile reads the whole file and parses it. A file that cannot be read
// contributes no records; logs are written concurrently and may vanish or
// be truncated under us.
func (p *Parser) ParseFile(path string, sessionID model.SessionID) []model.UsageRecord {
	data, err := os.ReadFile(path)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Failed to read file, skipping: %s - %v", path, err))
		return nil
	}
	records := p.ParseContent(data, sessionID)
	util.LogDebug(fmt.Sprintf("Parsed %s: %d records", path, len(records)))
	return records
}

// ParseContent parses every non-blank line of data into a record tagged with
// sessionID. Malformed lines, typically a partial line at the tail of a log
// being written, are dropped.
func (p *Parser) ParseContent(data []byte, sessionID model.SessionID) []model.UsageRecord {
	lines := splitLines(data)
	if len(lines) == 0 {
		return nil
	}

	var dropped atomic.Int64
	var records []model.UsageRecord

	if p.concurrency == 1 || len(lines) < lineFanoutThreshold {
		records = parseLines(lines, sessionID, &dropped)
	} else {
		records = p.parseParallel(lines, sessionID, &dropped)
	}

	if n := dropped.Load(); n > 0 {
		util.LogDebug(fmt.Sprintf("Skipped %d invalid JSON lines for session %s", n, sessionID))
	}
	return records
}

// parseParallel splits lines into contiguous chunks, parses them
// concurrently and concatenates the results in chunk order.
func (p *Parser) parseParallel(lines [][]byte, sessionID model.SessionID, dropped *atomic.Int64) []model.UsageRecord {
	chunks := p.concurrency
	size := (len(lines) + chunks - 1) / chunks
	parts := make([][]model.UsageRecord, chunks)

	var g errgroup.Group
	for i := 0; i < chunks; i++ {
		lo := i * size
		if lo >= len(lines) {
			break
		}
		hi := min(lo+size, len(lines))
		g.Go(func() error {
			parts[i] = parseLines(lines[lo:hi], sessionID, dropped)
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, part := range parts {
		total += len(part)
	}
	records := make([]model.UsageRecord, 0, total)
	for _, part := range parts {
		records = append(records, part...)
	}
	return records
}

func parseLines(lines [][]byte, sessionID model.SessionID, dropped *atomic.Int64) []model.UsageRecord {
	records := make([]model.UsageRecord, 0, len(lines))
	for _, line := range lines {
		var data model.UsageRecordData
		if err := sonic.Unmarshal(line, &data); err != nil {
			dropped.Add(1)
			continue
		}
		records = append(records, model.UsageRecord{Data: data, SessionID: sessionID})
	}
	return records
}

// splitLines returns the non-blank lines of data.
func splitLines(data []byte) [][]byte {
	raw := bytes.Split(data, []byte{'\n'})
	lines := raw[:0]
	for _, line := range raw {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
