package loader

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/penwyp/go-claude-statusline/internal/core/constants"
	"github.com/penwyp/go-claude-statusline/internal/core/cost"
	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/core/snapshot"
	"github.com/penwyp/go-claude-statusline/internal/data/dedup"
	"github.com/penwyp/go-claude-statusline/internal/data/parser"
	"github.com/penwyp/go-claude-statusline/internal/data/scanner"
	"github.com/penwyp/go-claude-statusline/internal/util"
	"golang.org/x/sync/errgroup"
)

// Options controls a load.
type Options struct {
	// Concurrency bounds line parsing fan-out within one file.
	Concurrency int
	// Cutoff drops records older than this time. Zero keeps everything.
	Cutoff time.Time
	// CurrentSession is always kept in full, regardless of Cutoff.
	CurrentSession model.SessionID
	// Now is the snapshot evaluation time. Zero means the time provider's now.
	Now time.Time
}

// Loader builds a Snapshot from one or more Claude data directories.
type Loader struct {
	parser *parser.Parser
	calc   *cost.Calculator
	opts   Options
}

// New creates a loader.
func New(calc *cost.Calculator, opts Options) *Loader {
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	return &Loader{
		parser: parser.NewParser(opts.Concurrency),
		calc:   calc,
		opts:   opts,
	}
}

// RecentCutoff returns the earliest time whose records can still affect
// today's cost or the active block: the earlier of local midnight minus one
// block duration and now minus RecentLookback.
func RecentCutoff(now time.Time) time.Time {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	a := midnight.Add(-constants.RecentMidnightLead)
	b := now.Add(-constants.RecentLookback)
	if a.Before(b) {
		return a
	}
	return b
}

// Load scans every base directory on its own worker, deduplicates across all
// of them and returns the merged, sorted snapshot. Any directory enumeration
// failure fails the whole load.
func (l *Loader) Load(ctx context.Context, baseDirs []string) (*snapshot.Snapshot, error) {
	records, err := l.LoadRecords(ctx, baseDirs)
	if err != nil {
		return nil, err
	}
	var opts []snapshot.Option
	if !l.opts.Now.IsZero() {
		opts = append(opts, snapshot.WithNow(l.opts.Now))
	}
	return snapshot.New(records, l.calc, opts...), nil
}

// LoadRecords is Load without building the snapshot. Records are returned
// grouped by base directory in argument order, unsorted.
func (l *Loader) LoadRecords(ctx context.Context, baseDirs []string) ([]model.UsageRecord, error) {
	start := time.Now()
	seen := dedup.NewSet()
	results := make([][]model.UsageRecord, len(baseDirs))

	g, ctx := errgroup.WithContext(ctx)
	for i, dir := range baseDirs {
		g.Go(func() error {
			recs, err := l.loadDir(ctx, dir, seen)
			if err != nil {
				return err
			}
			results[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	merged := make([]model.UsageRecord, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}

	util.LogDebug(fmt.Sprintf("Loaded %d records from %d directories (%d unique responses) in %v",
		len(merged), len(baseDirs), seen.Len(), time.Since(start)))
	return merged, nil
}

// loadDir reads one base directory's files sequentially.
func (l *Loader) loadDir(ctx context.Context, dir string, seen *dedup.Set) ([]model.UsageRecord, error) {
	files, err := scanner.NewFileScanner(dir).Scan()
	if err != nil {
		return nil, err
	}

	cutoff := ""
	if !l.opts.Cutoff.IsZero() {
		cutoff = model.FormatTimestamp(l.opts.Cutoff)
	}

	var kept []model.UsageRecord
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, r := range l.parser.ParseFile(f.Path, f.SessionID) {
			if cutoff != "" && !l.recent(r, cutoff) {
				continue
			}
			if seen.Keep(r) {
				kept = append(kept, r)
			}
		}
	}

	util.LogDebug(fmt.Sprintf("Directory %s: %d files, %d records kept", dir, len(files), len(kept)))
	return kept, nil
}

func (l *Loader) recent(r model.UsageRecord, cutoff string) bool {
	if !l.opts.CurrentSession.IsZero() && r.SessionID.Equal(l.opts.CurrentSession) {
		return true
	}
	ts := r.Data.Timestamp
	return ts == "" || ts >= cutoff
}
