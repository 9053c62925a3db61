package repl

import (
	"bytes"
	"strings"
	"testing"
)

func newTestREPL(t *testing.T, cfg Config) (*REPL, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg.HistoryFile = ""
	var out, errOut bytes.Buffer
	return New(cfg, NewSession(cfg, nil), &out, &errOut), &out, &errOut
}

func TestREPL_Handle(t *testing.T) {
	r, out, errOut := newTestREPL(t, DefaultConfig())
	for _, line := range []string{"VAR x = 2", "x * 1.5", "  ", "IF 0 THEN 1", "7 / 2"} {
		if r.Handle(line) {
			t.Fatalf("%q asked to quit", line)
		}
	}
	if got, want := out.String(), "2\n3.0\nnull\n3\n"; got != want {
		t.Errorf("output:\ngot  %q\nwant %q", got, want)
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected diagnostics %q", errOut.String())
	}
	if r.Failures() != 0 {
		t.Errorf("failures %d", r.Failures())
	}
}

func TestREPL_Errors(t *testing.T) {
	r, out, errOut := newTestREPL(t, DefaultConfig())
	r.Handle("y + 1")
	r.Handle("1 +")
	r.Handle("1 @ + 2")

	want := strings.Join([]string{
		"EVAL ERROR at 1:1: y is not defined",
		`PARSE ERROR at 1:4: expected an expression, got "end of input"`,
		"warning: LEX ERROR at 1:3: illegal character '@'",
	}, "\n") + "\n"
	if got := errOut.String(); got != want {
		t.Errorf("diagnostics:\ngot  %q\nwant %q", got, want)
	}
	if got := out.String(); got != "3\n" {
		t.Errorf("output %q", got)
	}
	if r.Failures() != 2 {
		t.Errorf("failures %d, want 2", r.Failures())
	}
}

func TestREPL_Commands(t *testing.T) {
	r, out, errOut := newTestREPL(t, DefaultConfig())
	r.Handle("VAR b = 2")
	r.Handle("VAR a = 1.5")
	out.Reset()

	r.Handle(":vars")
	if got, want := out.String(), "a = 1.5\nb = 2\n"; got != want {
		t.Errorf(":vars got %q, want %q", got, want)
	}

	out.Reset()
	r.Handle(":ast 1 + a * 2")
	first, _, _ := strings.Cut(out.String(), "\n")
	if first != "(1 + (a * 2))" {
		t.Errorf(":ast rendered %q", first)
	}
	if !strings.Contains(out.String(), "ast.BinaryOp") {
		t.Errorf(":ast dump missing node types:\n%s", out.String())
	}

	r.Handle(":reset")
	out.Reset()
	r.Handle(":vars")
	if out.Len() != 0 {
		t.Errorf("bindings after :reset: %q", out.String())
	}

	r.Handle(":frobnicate")
	if !strings.Contains(errOut.String(), "unknown command :frobnicate") {
		t.Errorf("diagnostics %q", errOut.String())
	}

	out.Reset()
	r.Handle(":help")
	if !strings.Contains(out.String(), ":reset") {
		t.Errorf("help %q", out.String())
	}

	for _, q := range []string{":quit", ":q", ":EXIT"} {
		if !r.Handle(q) {
			t.Errorf("%s did not quit", q)
		}
	}
}

func TestREPL_ShowAST(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShowAST = true
	r, out, _ := newTestREPL(t, cfg)
	r.Handle("42")
	if !strings.Contains(out.String(), "ast.NumberLiteral") || !strings.HasSuffix(out.String(), "42\n") {
		t.Errorf("output %q", out.String())
	}
}

func TestREPL_RunLines(t *testing.T) {
	r, out, _ := newTestREPL(t, DefaultConfig())
	in := strings.NewReader("VAR a = 1\nFN inc(n) -> n + 1\ninc(a)\n:quit\nVAR b = 2\n")
	if err := r.RunLines(in); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "1\n<function: inc>\n2\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if r.sess.Global().Has("b") {
		t.Error("input after :quit was evaluated")
	}
}
