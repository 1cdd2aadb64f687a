package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-cgoc/cgoc/lexer"
)

func parse(t *testing.T, src string) *Program {
	t.Helper()
	l := lexer.NewLexer(src)
	toks := l.ConsumeTokens()
	require.False(t, l.Diags.HasErrors(), "lex errors: %v", l.Diags.Errors())
	p := NewParser(toks)
	prog, err := p.ParseProgram()
	require.Nil(t, err, "parse error: %v", err)
	return prog
}

func TestParseProgram_SimpleReturn(t *testing.T) {
	prog := parse(t, "int main(void) { return 2; }")
	require.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	assert.Equal(t, "main", fn.Name)
	require.Len(t, fn.Body.Items, 1)
	ret, ok := fn.Body.Items[0].Stmt.(*Return)
	require.True(t, ok)
	constant, ok := ret.Value.(*Constant)
	require.True(t, ok)
	assert.Equal(t, int64(2), constant.IntVal)
}

func TestParseExpr_PrecedenceAdditiveOverMultiplicative(t *testing.T) {
	prog := parse(t, "int main(void) { return 1 + 2 * 3; }")
	ret := prog.Functions[0].Body.Items[0].Stmt.(*Return)
	bin, ok := ret.Value.(*Binary)
	require.True(t, ok)
	assert.Equal(t, OpAdd, bin.Op)
	_, leftIsConst := bin.Left.(*Constant)
	assert.True(t, leftIsConst)
	rightBin, ok := bin.Right.(*Binary)
	require.True(t, ok)
	assert.Equal(t, OpMultiply, rightBin.Op)
}

func TestParseExpr_UnaryNestedPrefix(t *testing.T) {
	prog := parse(t, "int main(void) { return ~(-3); }")
	ret := prog.Functions[0].Body.Items[0].Stmt.(*Return)
	outer, ok := ret.Value.(*Unary)
	require.True(t, ok)
	assert.Equal(t, OpComplement, outer.Op)
	inner, ok := outer.Inner.(*Unary)
	require.True(t, ok)
	assert.Equal(t, OpNegate, inner.Op)
}

func TestParseExpr_UnaryPlusIsNoOp(t *testing.T) {
	prog := parse(t, "int main(void) { return +5; }")
	ret := prog.Functions[0].Body.Items[0].Stmt.(*Return)
	constant, ok := ret.Value.(*Constant)
	require.True(t, ok)
	assert.Equal(t, int64(5), constant.IntVal)
}

func TestParseExpr_AssignmentRightAssociative(t *testing.T) {
	prog := parse(t, "int main(void) { int a; int b; a = b = 3; return a; }")
	stmt := prog.Functions[0].Body.Items[2].Stmt.(*ExpressionStatement)
	assign, ok := stmt.Expr.(*Assignment)
	require.True(t, ok)
	_, targetOk := assign.Target.(*Var)
	assert.True(t, targetOk)
	inner, ok := assign.Value.(*Assignment)
	require.True(t, ok)
	_, innerTargetOk := inner.Target.(*Var)
	assert.True(t, innerTargetOk)
}

func TestParseExpr_CompoundAssignment(t *testing.T) {
	prog := parse(t, "int main(void) { int a = 5; a += 3; return a; }")
	stmt := prog.Functions[0].Body.Items[1].Stmt.(*ExpressionStatement)
	ca, ok := stmt.Expr.(*CompoundAssignment)
	require.True(t, ok)
	assert.Equal(t, OpAdd, ca.Op)
}

func TestParseExpr_LogicalShortCircuitPrecedence(t *testing.T) {
	prog := parse(t, "int main(void) { return 1 && 0 || 1; }")
	ret := prog.Functions[0].Body.Items[0].Stmt.(*Return)
	or, ok := ret.Value.(*Binary)
	require.True(t, ok)
	assert.Equal(t, OpLogicalOr, or.Op)
	and, ok := or.Left.(*Binary)
	require.True(t, ok)
	assert.Equal(t, OpLogicalAnd, and.Op)
}

func TestParseExpr_Ternary(t *testing.T) {
	prog := parse(t, "int main(void) { return 1 ? 2 : 3; }")
	ret := prog.Functions[0].Body.Items[0].Stmt.(*Return)
	cond, ok := ret.Value.(*Conditional)
	require.True(t, ok)
	_, condOk := cond.Cond.(*Constant)
	_, thenOk := cond.Then.(*Constant)
	_, elseOk := cond.Else.(*Constant)
	assert.True(t, condOk)
	assert.True(t, thenOk)
	assert.True(t, elseOk)
}

func TestParsePostfix_BindsTighterThanPrefix(t *testing.T) {
	prog := parse(t, "int main(void) { int a = 1; return -a++; }")
	ret := prog.Functions[0].Body.Items[1].Stmt.(*Return)
	unary, ok := ret.Value.(*Unary)
	require.True(t, ok)
	assert.Equal(t, OpNegate, unary.Op)
	_, innerIsPostfix := unary.Inner.(*PostfixIncDec)
	assert.True(t, innerIsPostfix, "postfix ++ must bind tighter than unary -")
}

func TestParseStatement_IfElse(t *testing.T) {
	prog := parse(t, "int main(void) { if (1) return 1; else return 0; }")
	ifStmt, ok := prog.Functions[0].Body.Items[0].Stmt.(*If)
	require.True(t, ok)
	assert.NotNil(t, ifStmt.Then)
	assert.NotNil(t, ifStmt.Else)
}

func TestParseStatement_WhileDoForBreakContinue(t *testing.T) {
	prog := parse(t, `int main(void) {
		int i = 0;
		while (i < 10) { i = i + 1; if (i == 5) break; }
		do { i = i - 1; } while (i > 0);
		for (int j = 0; j < 3; j = j + 1) { if (j == 1) continue; }
		return i;
	}`)
	fn := prog.Functions[0]
	_, whileOk := fn.Body.Items[1].Stmt.(*While)
	_, doOk := fn.Body.Items[2].Stmt.(*DoWhile)
	_, forOk := fn.Body.Items[3].Stmt.(*For)
	assert.True(t, whileOk)
	assert.True(t, doOk)
	assert.True(t, forOk)
}

func TestParseStatement_GotoAndLabel(t *testing.T) {
	prog := parse(t, "int main(void) { goto done; return 1; done: return 0; }")
	fn := prog.Functions[0]
	_, gotoOk := fn.Body.Items[0].Stmt.(*Goto)
	label, labelOk := fn.Body.Items[2].Stmt.(*LabelStatement)
	require.True(t, gotoOk)
	require.True(t, labelOk)
	assert.Equal(t, "done", label.Name)
}

func TestParseStatement_Switch(t *testing.T) {
	prog := parse(t, `int main(void) {
		int x = 1;
		switch (x) {
			case 1: return 10;
			case 2: return 20;
			default: return 0;
		}
		return -1;
	}`)
	sw, ok := prog.Functions[0].Body.Items[1].Stmt.(*Switch)
	require.True(t, ok)
	require.Len(t, sw.Cases, 3)
	assert.NotNil(t, sw.Cases[0].Value)
	assert.Nil(t, sw.Cases[2].Value)
}

func TestParseFunctionCall(t *testing.T) {
	prog := parse(t, `int helper(int x) { return x; }
	int main(void) { return helper(4); }`)
	fn := prog.Functions[1]
	ret := fn.Body.Items[0].Stmt.(*Return)
	call, ok := ret.Value.(*FunctionCall)
	require.True(t, ok)
	assert.Equal(t, "helper", call.Callee)
	require.Len(t, call.Args, 1)
}
