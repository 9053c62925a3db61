package eval

import (
	"math"
	"testing"

	"github.com/metaphox/ember/ast"
)

func TestEval_PackageHelperReusesLogger(t *testing.T) {
	if New().log != New().log {
		t.Fatal("each Interpreter built its own discard logger")
	}
	node := &ast.NumberLiteral{Token: ast.Token{Type: ast.INT, Lexeme: "1", Literal: "1"}}
	scope := NewScope(nil)
	allocs := testing.AllocsPerRun(100, func() {
		if _, err := Eval(node, scope); err != nil {
			t.Fatal(err)
		}
	})
	if allocs > 2 {
		t.Errorf("Eval allocated %.0f times per call", allocs)
	}
}

func TestCompareFloat(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		a, b float64
		want int
	}{
		{1, 2, -1},
		{2, 1, 1},
		{0, math.Copysign(0, -1), 0},
		{nan, inf, 1},
		{inf, nan, -1},
		{nan, nan, 0},
		{-inf, nan, -1},
	}
	for _, tt := range tests {
		if got := compareFloat(tt.a, tt.b); got != tt.want {
			t.Errorf("compareFloat(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
