// Package repl hosts the Ember pipeline for interactive use: it owns the
// session's global scope, runs each input line through scan, parse and
// evaluate, and keeps a failed line from disturbing earlier bindings.
package repl

import (
	"io"
	"log/slog"

	"github.com/metaphox/ember/ast"
	"github.com/metaphox/ember/eval"
	"github.com/metaphox/ember/lexer"
	"github.com/metaphox/ember/parser"
)

// Result is the outcome of one unit.
type Result struct {
	Tree     ast.Expr
	Value    eval.Value
	Warnings []*lexer.LexError
}

// Session evaluates units against a global scope that persists across lines.
type Session struct {
	cfg    Config
	log    *slog.Logger
	interp *eval.Interpreter
	global *eval.Scope
}

// NewSession creates a session with an empty global scope. log may be nil.
func NewSession(cfg Config, log *slog.Logger) *Session {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		cfg:    cfg,
		log:    log,
		interp: eval.New(cfg.InterpreterOptions(log)...),
		global: eval.NewScope(nil),
	}
}

// Global returns the session's global scope.
func (s *Session) Global() *eval.Scope { return s.global }

// Reset discards every global binding.
func (s *Session) Reset() {
	s.global = eval.NewScope(nil)
}

// Parse scans and parses line against the current global scope without
// evaluating it.
func (s *Session) Parse(line string) (ast.Expr, []*lexer.LexError, error) {
	toks, warnings := lexer.Scan(line)
	tree, err := parser.Parse(toks, s.global)
	return tree, warnings, err
}

// Eval runs one unit. On any error the global scope is restored to what it
// held before the unit started. Lexer warnings are returned even when the
// unit fails.
func (s *Session) Eval(line string) (Result, error) {
	tree, warnings, err := s.Parse(line)
	res := Result{Tree: tree, Warnings: warnings}
	if err != nil {
		s.log.Debug("parse failed", slog.String("error", err.Error()))
		return res, err
	}

	snap := s.global.Snapshot()
	v, err := s.interp.Eval(tree, s.global)
	if err != nil {
		s.global.Restore(snap)
		s.log.Debug("evaluation failed, global scope restored", slog.String("error", err.Error()))
		return res, err
	}
	res.Value = v
	return res, nil
}
