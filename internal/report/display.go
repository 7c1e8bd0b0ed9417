package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/you-not-fish/ember/internal/syntax"
)

var (
	successColorFG = pterm.FgLightGreen
	successStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	warnColorFG    = pterm.FgYellow
	warnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorColorFG   = pterm.FgRed
	errorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoColorFG    = pterm.FgLightCyan
)

// badge renders s with a background style when color is enabled.
func (r *Reporter) badge(st *pterm.Style, s string) string {
	if !r.color {
		return s
	}
	return st.Sprint(s)
}

// paint renders s in a foreground color when color is enabled.
func (r *Reporter) paint(c pterm.Color, s string) string {
	if !r.color {
		return s
	}
	return c.Sprint(s)
}

// displayMessage displays a diagnostic: the position, a label such as
// "error", the message and, when the source is known, the offending line
// with a caret under the position.
func (r *Reporter) displayMessage(label string, pos syntax.Pos, msg string) {
	st, fg := errorStyleBG, errorColorFG
	if label == "warning" {
		st, fg = warnStyleBG, warnColorFG
	}

	where := pos.String()
	if !pos.IsValid() {
		where = r.filename
	}
	fmt.Fprintf(r.w, "%s: %s: %s\n", where, r.badge(st, label), msg)

	if pos.IsValid() {
		r.displaySourceLine(pos, fg)
	}
}

// displaySourceLine displays line pos.Line() of the source with a caret
// under column pos.Col(). Tabs are shown as four spaces.
func (r *Reporter) displaySourceLine(pos syntax.Pos, fg pterm.Color) {
	ln := int(pos.Line())
	if ln < 1 || ln > len(r.lines) {
		return
	}
	line := strings.TrimRight(r.lines[ln-1], "\r")

	// Column of the caret after tab expansion.
	col := int(pos.Col()) - 1
	if col > len(line) {
		col = len(line)
	}
	caretCol := col + 3*strings.Count(line[:col], "\t")

	num := strconv.Itoa(ln)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(r.w, " %s | %s\n", r.paint(infoColorFG, num), strings.ReplaceAll(line, "\t", "    "))
	fmt.Fprintf(r.w, " %s | %s%s\n", pad, strings.Repeat(" ", caretCol), r.paint(fg, "^"))
}

// displayPhase displays a finished phase and how long it took.
func (r *Reporter) displayPhase(phase string, success bool, d time.Duration) {
	tag := r.badge(successStyleBG, "Done")
	if !success {
		tag = r.badge(errorStyleBG, "Fail")
	}
	fmt.Fprintf(r.w, "%s %-8s (%.3fs)\n", tag, phase, d.Seconds())
}
