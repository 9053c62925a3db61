package ast

// Equal reports whether a and b are structurally identical trees.
// Source positions are ignored; operators compare by type and spelling and
// number literals by type and text.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *NumberLiteral:
		y, ok := b.(*NumberLiteral)
		return ok && sameToken(x.Token, y.Token)
	case *VarAccess:
		y, ok := b.(*VarAccess)
		return ok && x.Name == y.Name
	case *VarAssign:
		y, ok := b.(*VarAssign)
		return ok && x.Name == y.Name && Equal(x.Value, y.Value)
	case *BinaryOp:
		y, ok := b.(*BinaryOp)
		return ok && sameToken(x.Op, y.Op) && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *UnaryOp:
		y, ok := b.(*UnaryOp)
		return ok && sameToken(x.Op, y.Op) && Equal(x.Operand, y.Operand)
	case *If:
		y, ok := b.(*If)
		if !ok || len(x.Cases) != len(y.Cases) {
			return false
		}
		for i := range x.Cases {
			if !Equal(x.Cases[i].Cond, y.Cases[i].Cond) || !Equal(x.Cases[i].Body, y.Cases[i].Body) {
				return false
			}
		}
		return Equal(x.Else, y.Else)
	case *For:
		y, ok := b.(*For)
		return ok && x.Var == y.Var &&
			Equal(x.Start, y.Start) && Equal(x.End, y.End) &&
			Equal(x.Step, y.Step) && Equal(x.Body, y.Body)
	case *While:
		y, ok := b.(*While)
		return ok && Equal(x.Cond, y.Cond) && Equal(x.Body, y.Body)
	case *FuncDef:
		y, ok := b.(*FuncDef)
		if !ok || x.Name != y.Name || len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if x.Params[i] != y.Params[i] {
				return false
			}
		}
		return Equal(x.Body, y.Body)
	case *Call:
		y, ok := b.(*Call)
		if !ok || len(x.Args) != len(y.Args) || !Equal(x.Callee, y.Callee) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func sameToken(a, b Token) bool {
	return a.Type == b.Type && a.Lexeme == b.Lexeme
}
