// Package report displays diagnostics and progress for emberc.
package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/you-not-fish/ember/internal/syntax"
)

// Level selects how much is displayed.
type Level int

// Enumeration of the log levels
const (
	LevelSilent  Level = iota // no output at all
	LevelError                // errors only
	LevelWarn                 // errors and warnings
	LevelVerbose              // errors, warnings and phase timings
)

var levelNames = map[string]Level{
	"silent":  LevelSilent,
	"error":   LevelError,
	"warn":    LevelWarn,
	"verbose": LevelVerbose,
}

// ParseLevel returns the level with the given name.
func ParseLevel(name string) (Level, error) {
	if l, ok := levelNames[name]; ok {
		return l, nil
	}
	return LevelError, fmt.Errorf("unknown log level %q", name)
}

// Reporter writes diagnostics to an io.Writer. Errors are counted even
// when the level hides them.
type Reporter struct {
	w     io.Writer
	level Level
	color bool

	// Source shown under diagnostics
	filename string
	lines    []string

	errors int

	phase      string
	phaseStart time.Time

	m sync.Mutex
}

// New returns a Reporter writing to w.
func New(w io.Writer, level Level, color bool) *Reporter {
	return &Reporter{w: w, level: level, color: color}
}

// SetSource sets the source text that diagnostics point into.
func (r *Reporter) SetSource(filename string, src []byte) {
	r.m.Lock()
	defer r.m.Unlock()

	r.filename = filename
	r.lines = strings.Split(string(src), "\n")
}

// ErrorCount returns the number of errors reported so far.
func (r *Reporter) ErrorCount() int {
	r.m.Lock()
	defer r.m.Unlock()
	return r.errors
}

// Errors reports a group of lexical or syntax errors under a title such
// as "Parser Errors".
func (r *Reporter) Errors(title string, errs []*syntax.SyntaxError) {
	if len(errs) == 0 {
		return
	}

	r.m.Lock()
	defer r.m.Unlock()

	r.errors += len(errs)
	if r.level < LevelError {
		return
	}

	fmt.Fprintf(r.w, "\n%s:\n", r.badge(errorStyleBG, title))
	for _, e := range errs {
		r.displayMessage("error", e.Pos, e.Msg)
	}
}

// Error reports a single error at pos.
func (r *Reporter) Error(pos syntax.Pos, msg string) {
	r.m.Lock()
	defer r.m.Unlock()

	r.errors++
	if r.level < LevelError {
		return
	}
	r.displayMessage("error", pos, msg)
}

// Warn reports a warning at pos.
func (r *Reporter) Warn(pos syntax.Pos, msg string) {
	r.m.Lock()
	defer r.m.Unlock()

	if r.level < LevelWarn {
		return
	}
	r.displayMessage("warning", pos, msg)
}

// Fatal reports an error that has no source position, such as a file
// that cannot be read.
func (r *Reporter) Fatal(err error) {
	r.m.Lock()
	defer r.m.Unlock()

	r.errors++
	if r.level < LevelError {
		return
	}
	fmt.Fprintf(r.w, "%s %s\n", r.badge(errorStyleBG, "Fatal Error"), r.paint(errorColorFG, err.Error()))
}

// BeginPhase starts timing a phase of compilation. Phases are only
// displayed at the verbose level.
func (r *Reporter) BeginPhase(name string) {
	r.m.Lock()
	defer r.m.Unlock()

	r.phase = name
	r.phaseStart = time.Now()
}

// EndPhase ends the current phase.
func (r *Reporter) EndPhase(success bool) {
	r.m.Lock()
	defer r.m.Unlock()

	if r.phase == "" {
		return
	}
	if r.level >= LevelVerbose {
		r.displayPhase(r.phase, success, time.Since(r.phaseStart))
	}
	r.phase = ""
}

// Summary prints the closing line if any errors were reported.
func (r *Reporter) Summary() {
	r.m.Lock()
	defer r.m.Unlock()

	if r.level < LevelError {
		return
	}
	if r.errors > 0 {
		fmt.Fprintf(r.w, "\n%s\n", r.paint(errorColorFG, "There were errors. We cannot continue."))
	} else if r.level >= LevelVerbose {
		fmt.Fprintf(r.w, "\n%s\n", r.paint(successColorFG, "All done!"))
	}
}
