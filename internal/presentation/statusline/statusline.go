// Package statusline renders the one-line usage summary printed for the
// Claude Code statusline hook.
package statusline

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/penwyp/go-claude-statusline/internal/config"
	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/core/session"
	"github.com/penwyp/go-claude-statusline/internal/core/snapshot"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

// Burn rate thresholds in USD per hour.
const (
	burnRateWarn = 200.0
	burnRateHigh = 400.0
)

// Line holds the values shown in the statusline.
type Line struct {
	Dir         string
	Model       string
	TodayCost   float64
	SessionCost float64
	Block       *BlockStatus
}

// BlockStatus describes the active block, if there is one.
type BlockStatus struct {
	Cost        float64
	Remaining   session.RemainingTime
	BurnRate    float64
	HasBurnRate bool
}

// NewLine gathers the statusline values for the hook input from snap.
func NewLine(in *model.StatuslineInput, snap *snapshot.Snapshot) Line {
	line := Line{
		Dir:         in.DirName(),
		Model:       in.ModelName(),
		TodayCost:   snap.TodayCost(),
		SessionCost: snap.SessionCost(in.Session()),
	}
	if line.Dir == "" {
		line.Dir = "~"
	}

	if active, ok := snap.ActiveBlock(); ok {
		status := &BlockStatus{
			Cost:      active.Cost(),
			Remaining: session.Remaining(active, snap.Now()),
		}
		status.BurnRate, status.HasBurnRate = session.BurnRate(active)
		line.Block = status
	}
	return line
}

// Renderer styles a Line for a given output.
type Renderer struct {
	dir       lipgloss.Style
	model     lipgloss.Style
	opus      lipgloss.Style
	remaining lipgloss.Style
	rateLow   lipgloss.Style
	rateWarn  lipgloss.Style
	rateHigh  lipgloss.Style
}

// NewRenderer creates a renderer for w. mode is one of the config color modes.
func NewRenderer(w io.Writer, mode string) *Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(colorProfile(w, mode))

	return &Renderer{
		dir:       r.NewStyle().Foreground(lipgloss.Color("2")),
		model:     r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		opus:      r.NewStyle(),
		remaining: r.NewStyle().Foreground(lipgloss.Color("5")),
		rateLow:   r.NewStyle().Foreground(lipgloss.Color("2")),
		rateWarn:  r.NewStyle().Foreground(lipgloss.Color("3")),
		rateHigh:  r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

func colorProfile(w io.Writer, mode string) termenv.Profile {
	switch mode {
	case config.ColorNever:
		return termenv.Ascii
	case config.ColorAlways:
		return termenv.ANSI256
	}
	if f, ok := w.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
		return termenv.NewOutput(w).EnvColorProfile()
	}
	return termenv.Ascii
}

// Render formats line without a trailing newline.
func (r *Renderer) Render(line Line) string {
	var b strings.Builder

	b.WriteString(r.dir.Render(line.Dir))
	b.WriteString(" 👤 ")
	if model.ModelID(line.Model).IsOpus() {
		b.WriteString(r.opus.Render(line.Model))
	} else {
		b.WriteString(r.model.Render(line.Model))
	}

	if line.Block != nil && line.Block.Remaining.Minutes() > 0 {
		b.WriteString(" ⏰ ")
		b.WriteString(r.remaining.Render(util.FormatRemaining(line.Block.Remaining.Minutes())))
	}

	b.WriteString(" 💰 ")
	b.WriteString(util.FormatCurrency(line.TodayCost))
	b.WriteString(" today, ")
	b.WriteString(util.FormatCurrency(line.SessionCost))
	b.WriteString(" session, ")

	if line.Block == nil {
		b.WriteString("No active block")
		return b.String()
	}
	b.WriteString(util.FormatCurrency(line.Block.Cost))
	b.WriteString(" block")

	if line.Block.HasBurnRate {
		b.WriteString(" 🔥 ")
		b.WriteString(r.rateStyle(line.Block.BurnRate).Render(util.FormatBurnRate(line.Block.BurnRate)))
	}
	return b.String()
}

func (r *Renderer) rateStyle(rate float64) lipgloss.Style {
	switch {
	case rate < burnRateWarn:
		return r.rateLow
	case rate < burnRateHigh:
		return r.rateWarn
	default:
		return r.rateHigh
	}
}
