// Package main implements the ember compiler front end.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/ComedicChimera/olive"
	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/ember/internal/config"
	"github.com/you-not-fish/ember/internal/report"
	"github.com/you-not-fish/ember/internal/resolve"
	"github.com/you-not-fish/ember/internal/syntax"
)

// Version information
const Version = "0.1.0-dev"

// Exit codes
const (
	exitOK    = 0
	exitError = 1 // the source has errors
	exitUsage = 2 // bad command line or configuration
)

// What to print
const (
	emitTokens = "tokens"
	emitAST    = "ast"
	emitTyped  = "typed"
	emitLayout = "layout"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// options is the configuration of a single run, after the command line
// has been merged over the configuration file.
type options struct {
	*config.Config
	emit  string
	level report.Level
}

// run runs emberc with the given command line and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cli := olive.NewCLI("emberc", "emberc checks ember source files", true)
	cli.AddPrimaryArg("file", "the source file to check", false)

	cli.AddSelectorArg("emit", "e", "what to print", false, []string{emitTokens, emitAST, emitTyped, emitLayout})
	cli.AddSelectorArg("format", "f", "the output format", false, config.Formats)
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, config.LogLevels)
	cli.AddStringArg("config", "c", "the configuration file to use", false)

	cli.AddFlag("extended", "x", "predeclare the sized primitive types")
	cli.AddFlag("no-color", "nc", "disable colored output")
	cli.AddFlag("print-config", "pc", "print the effective configuration and exit")
	cli.AddFlag("repl", "r", "start an interactive session")
	cli.AddFlag("version", "v", "print the emberc version")

	result, err := olive.ParseArgs(cli, args)
	if err != nil {
		usageError(stderr, err)
		return exitUsage
	}

	if result.HasFlag("version") {
		fmt.Fprintf(stdout, "emberc version %s\n", Version)
		fmt.Fprintf(stdout, "go version %s\n", runtime.Version())
		return exitOK
	}

	filename, haveFile := result.PrimaryArg()
	opts, err := loadOptions(result, filename)
	if err != nil {
		usageError(stderr, err)
		return exitUsage
	}

	if result.HasFlag("print-config") {
		return printConfig(opts, stdout, stderr)
	}

	if result.HasFlag("repl") {
		return runREPL(opts, stdout, stderr)
	}

	if !haveFile || filename == "" {
		usageError(stderr, errors.New("no input file"))
		return exitUsage
	}
	return compile(filename, opts, stdout, stderr)
}

// usageError reports a problem with the command line or configuration.
func usageError(w io.Writer, err error) {
	report.New(w, report.LevelError, false).Fatal(err)
	fmt.Fprintln(w, "usage: emberc [options] <file.em>")
}

// printConfig prints the configuration opts was built from as TOML.
func printConfig(opts *options, stdout, stderr io.Writer) int {
	data, err := opts.Encode()
	if err != nil {
		usageError(stderr, err)
		return exitUsage
	}
	stdout.Write(data)
	return exitOK
}

// loadOptions builds the options for a run: defaults, then the
// configuration file, then the command line.
func loadOptions(result *olive.ArgParseResult, filename string) (*options, error) {
	path := ""
	if v, ok := result.Arguments["config"]; ok {
		path = v.(string)
	} else if filename != "" {
		path = config.Find(filepath.Dir(filename))
	}

	conf := config.Default()
	if path != "" {
		var err error
		if conf, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	opts := &options{Config: conf, emit: emitTyped}
	if v, ok := result.Arguments["emit"]; ok {
		opts.emit = v.(string)
	}
	if v, ok := result.Arguments["format"]; ok {
		opts.Output.Format = v.(string)
	}
	if v, ok := result.Arguments["loglevel"]; ok {
		opts.Output.LogLevel = v.(string)
	}
	if result.HasFlag("extended") {
		opts.Resolver.ExtendedPrimitives = true
	}
	if result.HasFlag("no-color") {
		opts.Output.Color = false
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	level, err := report.ParseLevel(opts.Output.LogLevel)
	if err != nil {
		return nil, err
	}
	opts.level = level
	return opts, nil
}

// compile runs the front end over filename and prints what opts asks for.
// Diagnostics go to stderr, the result to stdout.
func compile(filename string, opts *options, stdout, stderr io.Writer) int {
	rep := report.New(stderr, opts.level, opts.Output.Color)

	src, err := os.ReadFile(filename)
	if err != nil {
		rep.Fatal(err)
		return exitError
	}
	rep.SetSource(filename, src)

	if opts.emit == emitTokens {
		return runEmitTokens(filename, src, opts, rep, stdout)
	}

	rep.BeginPhase("parse")
	p := syntax.NewParser(filename, bytes.NewReader(src), nil)
	p.SetMaxErrors(opts.Parser.MaxErrors)
	p.SetMaxDepth(opts.Parser.MaxDepth)
	file := p.ParseFile()

	rep.Errors("Lexer Errors", p.LexErrors())
	rep.Errors("Parser Errors", p.Errors())
	rep.EndPhase(rep.ErrorCount() == 0)
	if rep.ErrorCount() > 0 {
		rep.Summary()
		return exitError
	}

	info := &resolve.Info{}
	if opts.emit != emitAST {
		rep.BeginPhase("resolve")
		conf := &resolve.Config{
			Error:              rep.Error,
			ExtendedPrimitives: opts.Resolver.ExtendedPrimitives,
		}
		err := resolve.Resolve(file, conf, info)
		rep.EndPhase(err == nil)
		if err != nil {
			rep.Summary()
			return exitError
		}

		for _, d := range info.Unused() {
			rep.Warn(d.Pos(), fmt.Sprintf("'%s' declared and not used", d.Name.Value))
		}
	}

	if opts.emit == emitLayout {
		err = printLayout(stdout, info.Decls, opts)
	} else {
		err = printTree(stdout, file, opts)
	}
	if err != nil {
		rep.Fatal(err)
		return exitError
	}
	rep.Summary()
	return exitOK
}

// printTree prints node in the configured format. Resolved nodes are
// printed with their types.
func printTree(w io.Writer, node syntax.Node, opts *options) error {
	switch opts.Output.Format {
	case "json":
		return syntax.FprintJSON(w, node)
	case "yaml":
		return syntax.FprintYAML(w, node)
	}
	if opts.emit == emitTyped {
		syntax.FprintTyped(w, node)
	} else {
		syntax.Fprint(w, node)
	}
	return nil
}

// tokenRow is one line of the token dump.
type tokenRow struct {
	Pos     string `json:"pos" yaml:"pos"`
	Token   string `json:"token" yaml:"token"`
	Literal string `json:"literal" yaml:"literal"`
}

// runEmitTokens scans src and prints every token with its position.
func runEmitTokens(filename string, src []byte, opts *options, rep *report.Reporter, stdout io.Writer) int {
	rep.BeginPhase("scan")
	s := syntax.NewScanner(filename, bytes.NewReader(src), nil)

	var rows []tokenRow
	for {
		lx := s.Next()
		rows = append(rows, tokenRow{
			Pos:     lx.Pos.String(),
			Token:   lx.Tok.String(),
			Literal: lexemeText(lx),
		})
		if lx.Tok.IsEOF() {
			break
		}
	}

	rep.Errors("Lexer Errors", s.Errors())
	rep.EndPhase(len(s.Errors()) == 0)

	err := encodeRows(stdout, opts.Output.Format, rows, func() {
		fmt.Fprintf(stdout, "%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
		fmt.Fprintf(stdout, "%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))
		for _, row := range rows {
			fmt.Fprintf(stdout, "%-20s %-12s %s\n", row.Pos, row.Token, formatLiteral(row.Literal))
		}
	})
	if err != nil {
		rep.Fatal(err)
	}

	rep.Summary()
	if rep.ErrorCount() > 0 {
		return exitError
	}
	return exitOK
}

// encodeRows writes rows as JSON or YAML, or calls text for the text format.
func encodeRows(w io.Writer, format string, rows interface{}, text func()) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	}
	text()
	return nil
}

// lexemeText returns the payload of lx as text.
func lexemeText(lx syntax.Lexeme) string {
	switch {
	case lx.Tok.IsEOF():
		return ""
	case lx.Err != "":
		return lx.Err
	case lx.Tok == syntax.Integer:
		return strconv.FormatUint(lx.Int, 10)
	case lx.Tok == syntax.Float:
		return strconv.FormatFloat(lx.Float, 'g', -1, 64)
	}
	return lx.Lit
}

// formatLiteral formats a literal for display, escaping special characters.
func formatLiteral(lit string) string {
	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}
