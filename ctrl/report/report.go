// Package report prints the progress of an automation run.
package report

import (
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"io"
	"strings"
)

const bannerWidth = 60

type styles struct {
	banner  lipgloss.Style
	stage   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warn    lipgloss.Style
	debug   lipgloss.Style
}

// colors follow the ANSI palette: 1 red, 2 green, 3 yellow, 6 cyan, 8 gray
func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		banner:  r.NewStyle().Bold(true),
		stage:   r.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6)),
		success: r.NewStyle().Foreground(lipgloss.ANSIColor(2)),
		failure: r.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(1)),
		warn:    r.NewStyle().Foreground(lipgloss.ANSIColor(3)),
		debug:   r.NewStyle().Foreground(lipgloss.ANSIColor(8)),
	}
}

// Reporter writes user-facing progress lines. Styling is dropped when the
// output is not a terminal.
type Reporter struct {
	out     io.Writer
	verbose bool
	styles  styles
}

func New(out io.Writer, verbose bool) *Reporter {
	return &Reporter{
		out:     out,
		verbose: verbose,
		styles:  newStyles(lipgloss.NewRenderer(out)),
	}
}

func (r *Reporter) line(style lipgloss.Style, text string) {
	_, _ = fmt.Fprintln(r.out, style.Render(text))
}

// Banner opens a major section, such as one source file or the summary.
func (r *Reporter) Banner(title string) {
	rule := strings.Repeat("=", bannerWidth)
	_, _ = fmt.Fprintln(r.out)
	r.line(r.styles.banner, rule)
	r.line(r.styles.banner, title)
	r.line(r.styles.banner, rule)
}

func (r *Reporter) Stage(title string) {
	_, _ = fmt.Fprintln(r.out)
	r.line(r.styles.stage, "=== "+title+" ===")
}

func (r *Reporter) Info(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *Reporter) Success(format string, args ...interface{}) {
	r.line(r.styles.success, "✓ "+fmt.Sprintf(format, args...))
}

func (r *Reporter) Failure(format string, args ...interface{}) {
	r.line(r.styles.failure, "✗ "+fmt.Sprintf(format, args...))
}

func (r *Reporter) Warn(format string, args ...interface{}) {
	r.line(r.styles.warn, "Warning: "+fmt.Sprintf(format, args...))
}

func (r *Reporter) Error(format string, args ...interface{}) {
	r.line(r.styles.failure, "Error: "+fmt.Sprintf(format, args...))
}

func (r *Reporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		r.line(r.styles.debug, fmt.Sprintf(format, args...))
	}
}
