package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-claude-statusline/internal/core/pricing"
	"github.com/penwyp/go-claude-statusline/internal/testing/fixtures"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

var day = time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

const hookJSON = `{"session_id":"s1","cwd":"/work/proj","model":{"id":"claude-sonnet-4-20250514","display_name":"Sonnet 4"}}`

// setupClaudeDir writes a small usage history, points CLAUDE_CONFIG_DIR at it
// and freezes the clock at 09:30 UTC.
func setupClaudeDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	gen := fixtures.NewTestDataGenerator(dir)

	_, err := gen.WriteSession("proj", "s1", []fixtures.JSONLEntry{
		fixtures.CostEntry(at(-1, 0), "m0", "r0", 1.0),
		fixtures.CostEntry(at(9, 0), "m1", "r1", 2.0),
		fixtures.UserEntry(at(9, 10), "hello"),
		fixtures.CostEntry(at(9, 0), "m1", "r1", 2.0),
	})
	require.NoError(t, err)
	_, err = gen.WriteSession("proj", "s2", []fixtures.JSONLEntry{
		fixtures.CostEntry(at(9, 20), "m2", "r2", 0.5),
	})
	require.NoError(t, err)
	_, err = gen.WriteSession("other", "s3", []fixtures.JSONLEntry{
		fixtures.CostEntry(at(-14, 0), "m3", "r3", 5.0),
	})
	require.NoError(t, err)

	t.Setenv(util.ConfigDirEnv, dir)
	util.GetTimeProvider().Freeze(at(9, 30))
	t.Cleanup(func() { _ = util.InitializeTimeProvider("Local") })
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	tmp := t.TempDir()
	args = append(args,
		"--config", filepath.Join(tmp, "missing.yaml"),
		"--log-file", filepath.Join(tmp, "app.log"),
		"--timezone", "UTC",
		"--color", "never",
	)

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestStatuslineFromStdin(t *testing.T) {
	setupClaudeDir(t)

	out, err := execute(t, hookJSON)
	require.NoError(t, err)
	assert.Equal(t, "proj 👤 Sonnet 4 ⏰ 4h 30m left 💰 $2.50 today, $3.00 session, $2.50 block 🔥 $7.50/hr\n", out)
}

func TestStatuslineFromInputFile(t *testing.T) {
	setupClaudeDir(t)
	input := filepath.Join(t.TempDir(), "hook.json")
	require.NoError(t, os.WriteFile(input, []byte(hookJSON), 0o644))

	out, err := execute(t, "", "--input", input)
	require.NoError(t, err)
	assert.Contains(t, out, "$3.00 session")
}

func TestStatuslineFullHistoryMatchesRecent(t *testing.T) {
	setupClaudeDir(t)

	recent, err := execute(t, hookJSON)
	require.NoError(t, err)
	full, err := execute(t, hookJSON, "--full-history")
	require.NoError(t, err)
	assert.Equal(t, recent, full)
}

func TestStatuslineClaudeDirFlag(t *testing.T) {
	dir := setupClaudeDir(t)
	t.Setenv(util.ConfigDirEnv, filepath.Join(t.TempDir(), "missing"))

	out, err := execute(t, hookJSON, "--claude-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "$2.50 today")
}

func TestStatuslineConfigFile(t *testing.T) {
	dir := setupClaudeDir(t)
	t.Setenv(util.ConfigDirEnv, "")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("claude_dirs:\n  - "+dir+"\n"), 0o644))

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(hookJSON))
	cmd.SetArgs([]string{
		"--config", cfgPath,
		"--log-file", filepath.Join(t.TempDir(), "app.log"),
		"--timezone", "UTC",
		"--color", "never",
	})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "$3.00 session")
}

func TestStatuslineUnwritableLogFile(t *testing.T) {
	setupClaudeDir(t)
	blocker := filepath.Join(t.TempDir(), "state")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(hookJSON))
	cmd.SetArgs([]string{
		"--config", filepath.Join(t.TempDir(), "missing.yaml"),
		"--log-file", filepath.Join(blocker, "logs", "app.log"),
		"--timezone", "UTC",
		"--color", "never",
	})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "$3.00 session")
	assert.NoFileExists(t, filepath.Join(blocker, "logs", "app.log"))
}

func TestStatuslineNoDataDir(t *testing.T) {
	setupClaudeDir(t)
	t.Setenv(util.ConfigDirEnv, filepath.Join(t.TempDir(), "missing"))

	_, err := execute(t, hookJSON)
	assert.ErrorIs(t, err, util.ErrNoDataDir)
}

func TestStatuslineInvalidInput(t *testing.T) {
	setupClaudeDir(t)

	_, err := execute(t, "not json")
	assert.Error(t, err)
}

func TestStatuslineInvalidColor(t *testing.T) {
	setupClaudeDir(t)

	_, err := execute(t, hookJSON, "--color", "rainbow")
	assert.Error(t, err)
}

type blocksReport struct {
	Blocks []struct {
		Kind    string  `json:"kind"`
		Entries int     `json:"entries"`
		Cost    float64 `json:"cost_usd"`
	} `json:"blocks"`
	Totals struct {
		Cost float64 `json:"cost_usd"`
	} `json:"totals"`
}

func decodeBlocks(t *testing.T, out string) blocksReport {
	t.Helper()
	var report blocksReport
	require.NoError(t, sonic.Unmarshal([]byte(out), &report))
	return report
}

func TestBlocksJSON(t *testing.T) {
	setupClaudeDir(t)

	out, err := execute(t, "", "blocks", "--output", "json")
	require.NoError(t, err)

	report := decodeBlocks(t, out)
	kinds := make([]string, len(report.Blocks))
	for i, b := range report.Blocks {
		kinds[i] = b.Kind
	}
	assert.Equal(t, []string{"completed", "idle", "completed", "idle", "active"}, kinds)
	assert.InDelta(t, 8.5, report.Totals.Cost, 1e-9)
	assert.Equal(t, 3, report.Blocks[4].Entries, "user lines count as entries")
}

func TestBlocksRecentAndActive(t *testing.T) {
	setupClaudeDir(t)

	out, err := execute(t, "", "blocks", "--output", "json", "--recent")
	require.NoError(t, err)
	report := decodeBlocks(t, out)
	assert.Len(t, report.Blocks, 3)
	assert.InDelta(t, 3.5, report.Totals.Cost, 1e-9)

	out, err = execute(t, "", "blocks", "--output", "json", "--active")
	require.NoError(t, err)
	report = decodeBlocks(t, out)
	require.Len(t, report.Blocks, 1)
	assert.Equal(t, "active", report.Blocks[0].Kind)
	assert.InDelta(t, 2.5, report.Blocks[0].Cost, 1e-9)
}

func TestBlocksTable(t *testing.T) {
	setupClaudeDir(t)

	out, err := execute(t, "", "blocks")
	require.NoError(t, err)
	assert.Contains(t, out, "active (4h 30m left)")
	assert.Contains(t, out, "$8.50")
}

func TestBlocksUnknownFormat(t *testing.T) {
	setupClaudeDir(t)

	_, err := execute(t, "", "blocks", "--output", "xml")
	assert.Error(t, err)
}

func TestPricingLookup(t *testing.T) {
	setupClaudeDir(t)

	out, err := execute(t, "", "pricing", "claude-sonnet-4-20250514", "gpt-4")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "(exact)")
	assert.Contains(t, lines[0], "input $3.00")
	assert.Contains(t, lines[0], "output $15.00")
	assert.Contains(t, lines[1], "(none)")
	assert.Contains(t, lines[1], "input $0.00")
}

func TestPricingList(t *testing.T) {
	setupClaudeDir(t)

	out, err := execute(t, "", "pricing")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, pricing.DefaultTable().Len())
}

func TestPricingDumpRoundTrip(t *testing.T) {
	setupClaudeDir(t)
	dump := filepath.Join(t.TempDir(), "pricing.json")

	out, err := execute(t, "", "pricing", "--dump", dump)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	table, err := pricing.LoadTableFile(dump)
	require.NoError(t, err)
	want := pricing.DefaultTable().Rows()
	got := table.Rows()
	require.Len(t, got, len(want))
	for id, w := range want {
		g := got[id]
		assert.InDelta(t, w.Input, g.Input, 1e-15, id)
		assert.InDelta(t, w.Output, g.Output, 1e-15, id)
		assert.InDelta(t, w.CacheCreation, g.CacheCreation, 1e-15, id)
		assert.InDelta(t, w.CacheCreation1h, g.CacheCreation1h, 1e-15, id)
		assert.InDelta(t, w.CacheRead, g.CacheRead, 1e-15, id)
	}

	out, err = execute(t, "", "pricing", "--pricing-file", dump, "claude-sonnet-4-20250514")
	require.NoError(t, err)
	assert.Contains(t, out, "(exact)")
}

func TestRootHelp(t *testing.T) {
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	for _, want := range []string{"--input", "--full-history", "--claude-dir", "blocks", "pricing"} {
		assert.Contains(t, buf.String(), want)
	}
}
