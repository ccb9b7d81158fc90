// Package script is the line-oriented command interpreter. Every
// editor operation is a named command; key bindings, scripts and the
// command line all funnel through Execute. Scripts run line by line,
// collecting per-line failures rather than stopping at the first one.
package script

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pxlr/pxlr/internal/errors"
	"github.com/pxlr/pxlr/internal/gfx"
	"github.com/pxlr/pxlr/internal/logger"
	"github.com/pxlr/pxlr/internal/session"
)

var log = logger.ComponentLogger("script")

// Interpreter executes commands against a session.
type Interpreter struct {
	s   *session.Session
	out io.Writer

	// sourcing is the stack of script paths currently being executed,
	// used to refuse a script that sources itself.
	sourcing []string
}

// New returns an interpreter writing command output to out. A nil out
// falls back to stdout.
func New(s *session.Session, out io.Writer) *Interpreter {
	if out == nil {
		out = os.Stdout
	}
	return &Interpreter{s: s, out: out}
}

// Session returns the session the interpreter drives.
func (in *Interpreter) Session() *session.Session { return in.s }

// Execute runs a single command line. Blank lines and comment-only
// lines succeed as no-ops. A leading ':' is stripped, so bound commands
// like ":swap" execute as "swap".
func (in *Interpreter) Execute(line string) error {
	tokens, err := tokenize(strings.TrimSpace(line))
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	name := strings.TrimPrefix(tokens[0], ":")
	args := tokens[1:]

	// A bare color is palette-add shorthand.
	if strings.HasPrefix(name, "#") {
		args = []string{name}
		name = "p/add"
	}

	cmd, ok := commands[name]
	if !ok {
		return errors.UnknownCommand(name)
	}
	log.Debug("execute", "command", name, "args", args)
	return cmd.run(in, args)
}

// KeyDown feeds a key press through the binding table and runs the
// bound command, if any.
func (in *Interpreter) KeyDown(chord string) error {
	if cmd, ok := in.s.KeyDown(chord); ok {
		return in.Execute(cmd)
	}
	return nil
}

// KeyUp feeds a key release through the binding table.
func (in *Interpreter) KeyUp(chord string) error {
	if cmd, ok := in.s.KeyUp(chord); ok {
		return in.Execute(cmd)
	}
	return nil
}

// LineError is one failed line of a script.
type LineError struct {
	Line  int
	Input string
	Err   error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Input, e.Err)
}

// ScriptError aggregates the failures of a script run.
type ScriptError struct {
	Path  string
	Lines []LineError
}

func (e *ScriptError) Error() string {
	msgs := make([]string, len(e.Lines))
	for i, l := range e.Lines {
		msgs[i] = l.Error()
	}
	return fmt.Sprintf("%s: %s", e.Path, strings.Join(msgs, "; "))
}

// Source executes the script at path line by line. Every line runs even
// when earlier lines fail; the failures come back as one ScriptError.
// A script that sources itself, directly or through other scripts, is
// rejected.
func (in *Interpreter) Source(path string) error {
	const op = errors.Op("script.Source")

	if !filepath.IsAbs(path) {
		path = filepath.Join(in.s.Cwd(), path)
	}
	for _, active := range in.sourcing {
		if active == path {
			return errors.CyclicSource(path)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.IoFailed(op, path, err)
	}
	defer f.Close()

	in.sourcing = append(in.sourcing, path)
	defer func() { in.sourcing = in.sourcing[:len(in.sourcing)-1] }()

	return in.runLines(path, f)
}

func (in *Interpreter) runLines(path string, r io.Reader) error {
	var failures []LineError
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if err := in.Execute(line); err != nil {
			failures = append(failures, LineError{Line: n, Input: strings.TrimSpace(line), Err: err})
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.IoFailed(errors.Op("script.Source"), path, err)
	}
	if len(failures) > 0 {
		return &ScriptError{Path: path, Lines: failures}
	}
	return nil
}

// command is one entry in the dispatch table.
type command struct {
	run  func(*Interpreter, []string) error
	help string
}

// Names returns the known command names, sorted.
func Names() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Help returns the one-line description of a command.
func Help(name string) (string, bool) {
	cmd, ok := commands[name]
	if !ok {
		return "", false
	}
	return cmd.help, true
}

func (in *Interpreter) printf(format string, args ...interface{}) {
	fmt.Fprintf(in.out, format, args...)
}

func parseColor(op errors.Op, tok string) (gfx.Rgba8, error) {
	c, err := gfx.ParseColor(tok)
	if err != nil {
		return gfx.Rgba8{}, errors.E(op, errors.KindParse, err)
	}
	return c, nil
}
