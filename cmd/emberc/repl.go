package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/you-not-fish/ember/internal/report"
	"github.com/you-not-fish/ember/internal/resolve"
	"github.com/you-not-fish/ember/internal/syntax"
)

const (
	historyFile = ".emberc_history"
	promptMain  = "ember> "
	promptCont  = "  ...> "
	replName    = "repl"
)

const replBanner = `emberc %s interactive session
Statements are checked as they are entered. Type :quit to exit.
`

// runREPL reads statements from the terminal and resolves each one in a
// session that remembers every statement that was accepted.
func runREPL(opts *options, stdout, stderr io.Writer) int {
	fmt.Fprintf(stdout, replBanner, Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sess := newSession(opts)
	for {
		code, ok := readStatement(ln)
		if !ok {
			fmt.Fprintln(stdout)
			return exitOK
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return exitOK
			case ":reset":
				sess = newSession(opts)
			default:
				fmt.Fprintln(stdout, "unknown command. Type :quit to exit, :reset to start over.")
			}
			continue
		}

		sess.eval(code, stdout, stderr)
	}
}

// readStatement reads lines until they form a complete input. A blank
// continuation line submits whatever has been entered.
func readStatement(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// incomplete reports whether src ends inside a bracket or without a
// terminating ';' or '}'.
func incomplete(src string) bool {
	s := syntax.NewScanner(replName, strings.NewReader(src), nil)

	depth := 0
	seen := false
	last := ""
	for {
		lx := s.Next()
		if lx.Tok.IsEOF() {
			break
		}
		switch lx.Lit {
		case "(", "{", "[":
			depth++
		case ")", "}", "]":
			depth--
		}
		seen = true
		last = lx.Lit
	}

	if !seen || strings.HasPrefix(strings.TrimSpace(src), ":") {
		return false
	}
	return depth > 0 || (last != ";" && last != "}")
}

// session holds the statements accepted so far. Each input is parsed into
// the same file and resolved against everything before it.
type session struct {
	opts *options
	file *syntax.File
	res  *resolve.Resolver
}

func newSession(opts *options) *session {
	p := syntax.NewParser(replName, strings.NewReader(""), nil)
	return &session{
		opts: opts,
		file: p.ParseFile(),
		res: resolve.NewResolver(&resolve.Config{
			ExtendedPrimitives: opts.Resolver.ExtendedPrimitives,
		}, nil),
	}
}

// eval parses and resolves src, printing the resolved statements to out
// and diagnostics to errw. An input with any error is dropped as a whole,
// so later inputs cannot see its declarations.
func (s *session) eval(src string, out, errw io.Writer) bool {
	rep := report.New(errw, s.opts.level, s.opts.Output.Color)
	rep.SetSource(replName, []byte(src))

	start := len(s.file.Body.Stmts)
	p := syntax.NewParser(replName, strings.NewReader(src), nil)
	p.SetMaxErrors(s.opts.Parser.MaxErrors)
	p.SetMaxDepth(s.opts.Parser.MaxDepth)
	stmts := p.ParseInto(s.file)

	rep.Errors("Lexer Errors", p.LexErrors())
	rep.Errors("Parser Errors", p.Errors())
	if rep.ErrorCount() > 0 {
		s.drop(start)
		return false
	}

	for _, stmt := range stmts {
		if err := s.res.Resolve(stmt); err != nil {
			var e *resolve.Error
			if errors.As(err, &e) {
				rep.Error(e.Pos, e.Msg)
			} else {
				rep.Fatal(err)
			}
			s.drop(start)
			return false
		}
	}

	for _, stmt := range stmts {
		if err := printTree(out, stmt, s.opts); err != nil {
			rep.Fatal(err)
			return false
		}
	}
	return true
}

// drop removes the statements added since start.
func (s *session) drop(start int) {
	s.file.Body.Stmts = s.file.Body.Stmts[:start]
}
