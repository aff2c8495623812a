package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagplacer/pkg/geom"
	"github.com/matzehuels/tagplacer/pkg/pipeline"
	"github.com/matzehuels/tagplacer/pkg/placement"
	"github.com/matzehuels/tagplacer/pkg/scene"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleAccent  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarn    = lipgloss.NewStyle().Foreground(colorYellow)
	styleErr     = lipgloss.NewStyle().Foreground(colorRed)
	styleMuted   = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// printer writes styled status lines for people. Machine-readable output
// (--json, completion scripts) is written to the command output directly.
type printer struct {
	w io.Writer
}

// newPrinter prints to the command's output stream.
func newPrinter(cmd *cobra.Command) printer {
	return printer{w: cmd.OutOrStdout()}
}

func (p printer) status(icon string, style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(p.w, style.Render(icon)+" "+fmt.Sprintf(format, args...))
}

func (p printer) success(format string, args ...any) {
	p.status("✓", styleOK, format, args...)
}

func (p printer) failure(format string, args ...any) {
	p.status("✗", styleErr, format, args...)
}

func (p printer) info(format string, args ...any) {
	p.status("›", styleMuted, format, args...)
}

func (p printer) warn(format string, args ...any) {
	p.status("!", styleWarn, "%s", styleWarn.Render(fmt.Sprintf(format, args...)))
}

// detail prints an indented, dimmed line.
func (p printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints a written file path.
func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+styleDim.Render("→")+" "+styleValue.Render(path))
}

func (p printer) field(key, value string) {
	fmt.Fprintln(p.w, styleKey.Render(key)+" "+styleValue.Render(value))
}

// hint suggests a follow-up command.
func (p printer) hint(description, cmd string) {
	fmt.Fprintln(p.w, styleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// stats prints a one-line placement summary, e.g.
// "12 tags · 3 created · 2 moved · cached".
func (p printer) stats(s pipeline.Stats, cached bool) {
	parts := []string{fmt.Sprintf("%d tags", s.Targets)}
	if s.Created > 0 {
		parts = append(parts, fmt.Sprintf("%d created", s.Created))
	}
	parts = append(parts, fmt.Sprintf("%d moved", s.Corrected))
	for i, part := range parts {
		parts[i] = styleDim.Render(part)
	}

	if cached {
		parts = append(parts, styleOK.Render("cached"))
	} else {
		parts = append(parts, styleMuted.Render("fresh"))
	}
	fmt.Fprintln(p.w, "  "+strings.Join(parts, styleDim.Render(" · ")))
}

// resolution describes how an anchor was resolved against features.
func (p printer) resolution(anchor geom.Point, c placement.Correction, features []scene.Feature) {
	switch c.Outcome {
	case placement.OutcomeNoObstacles:
		p.warn("No features to avoid")
	case placement.OutcomeNoViolation:
		p.success("Anchor %s keeps clearance over %d candidates", styleAccent.Render(anchor.String()), c.Inspected)
	case placement.OutcomeCorrected:
		p.info("Candidate %d at %s is %s from %s",
			c.CandidateIndex,
			styleAccent.Render(c.Candidate.String()),
			styleAccent.Render(fmt.Sprintf("%g", c.Distance)),
			styleTitle.Render(features[c.ObstacleIndex].ID))
		p.field("Moved to", c.Point.String())
		p.detail("%d of the spiral candidates inspected", c.Inspected)
	}
}
