package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kr/pretty"
	"github.com/peterh/liner"
)

const helpText = `Commands:
  :quit        exit
  :help        show this text
  :ast <expr>  print the parsed tree without evaluating it
  :vars        list global bindings
  :reset       clear all global bindings
Anything else is evaluated as an expression.`

// REPL reads lines and hands each one to a Session.
type REPL struct {
	cfg    Config
	sess   *Session
	out    io.Writer
	errOut io.Writer

	failures int
}

// New creates a REPL writing results to out and diagnostics to errOut.
func New(cfg Config, sess *Session, out, errOut io.Writer) *REPL {
	return &REPL{cfg: cfg, sess: sess, out: out, errOut: errOut}
}

// Handle processes one input line and reports whether the user asked to quit.
// Errors are printed, never returned: a bad line only affects itself.
func (r *REPL) Handle(line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ":") {
		return r.command(line)
	}

	res, err := r.sess.Eval(line)
	for _, w := range res.Warnings {
		fmt.Fprintf(r.errOut, "warning: %v\n", w)
	}
	if r.cfg.ShowAST && res.Tree != nil {
		fmt.Fprintf(r.out, "%# v\n", pretty.Formatter(res.Tree))
	}
	if err != nil {
		r.failures++
		fmt.Fprintln(r.errOut, err)
		return false
	}
	fmt.Fprintln(r.out, res.Value)
	return false
}

// Failures counts the units that ended in a parse or evaluation error.
func (r *REPL) Failures() int { return r.failures }

func (r *REPL) command(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		fmt.Fprintln(r.out, helpText)
	case ":ast":
		tree, warnings, err := r.sess.Parse(arg)
		for _, w := range warnings {
			fmt.Fprintf(r.errOut, "warning: %v\n", w)
		}
		if err != nil {
			fmt.Fprintln(r.errOut, err)
			return false
		}
		fmt.Fprintln(r.out, tree.String())
		fmt.Fprintf(r.out, "%# v\n", pretty.Formatter(tree))
	case ":vars":
		g := r.sess.Global()
		for _, name := range g.Names() {
			v, _ := g.Get(name)
			fmt.Fprintf(r.out, "%s = %v\n", name, v)
		}
	case ":reset":
		r.sess.Reset()
	default:
		fmt.Fprintf(r.errOut, "unknown command %s. Type :help for a list.\n", cmd)
	}
	return false
}

// RunLines reads units from in until EOF or :quit, without line editing.
func (r *REPL) RunLines(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if r.Handle(sc.Text()) {
			return nil
		}
	}
	return sc.Err()
}

// RunInteractive prompts on the terminal with line editing and history.
func (r *REPL) RunInteractive() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if path := r.cfg.HistoryFile; path != "" {
		if f, err := os.Open(path); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(path); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Fprintln(r.out, "Ember. Type :help for commands, Ctrl+D to exit.")
	for {
		line, err := ln.Prompt(r.cfg.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("repl: read line: %w", err)
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if r.Handle(line) {
			return nil
		}
	}
}
