package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-cgoc/cgoc/lexer"
	"github.com/go-cgoc/cgoc/parser"
)

func parseProgram(t *testing.T, src string) *parser.Program {
	t.Helper()
	l := lexer.NewLexer(src)
	toks := l.ConsumeTokens()
	require.False(t, l.Diags.HasErrors())
	p := parser.NewParser(toks)
	prog, err := p.ParseProgram()
	require.Nil(t, err)
	return prog
}

func TestResolve_RenamesShadowedVariables(t *testing.T) {
	prog := parseProgram(t, `int main(void) {
		int a = 1;
		{
			int a = 2;
			a = a + 1;
		}
		return a;
	}`)
	r := New()
	ok := r.Resolve(prog)
	require.True(t, ok, "%v", r.Diags.Errors())

	fn := prog.Functions[0]
	outerDecl := fn.Body.Items[0].Decl
	innerBlock := fn.Body.Items[1].Stmt.(*parser.Compound)
	innerDecl := innerBlock.Items[0].Decl
	assert.NotEqual(t, outerDecl.Name, innerDecl.Name)

	outerReturn := fn.Body.Items[2].Stmt.(*parser.Return)
	retVar := outerReturn.Value.(*parser.Var)
	assert.Equal(t, outerDecl.Name, retVar.Name)
}

func TestResolve_DuplicateDeclarationFails(t *testing.T) {
	prog := parseProgram(t, `int main(void) { int a = 1; int a = 2; return a; }`)
	r := New()
	ok := r.Resolve(prog)
	assert.False(t, ok)
	require.True(t, r.Diags.HasErrors())
}

func TestResolve_UndeclaredVariableFails(t *testing.T) {
	prog := parseProgram(t, `int main(void) { return b; }`)
	r := New()
	ok := r.Resolve(prog)
	assert.False(t, ok)
}

func TestResolve_AssignmentToNonLvalueFails(t *testing.T) {
	prog := parseProgram(t, `int main(void) { 1 = 2; return 0; }`)
	r := New()
	ok := r.Resolve(prog)
	assert.False(t, ok)
}

func TestResolve_BreakOutsideLoopFails(t *testing.T) {
	prog := parseProgram(t, `int main(void) { break; return 0; }`)
	r := New()
	ok := r.Resolve(prog)
	assert.False(t, ok)
}

func TestResolve_LoopLabelingAttachesTargets(t *testing.T) {
	prog := parseProgram(t, `int main(void) {
		int i = 0;
		while (i < 3) { if (i == 1) break; i = i + 1; }
		return i;
	}`)
	r := New()
	ok := r.Resolve(prog)
	require.True(t, ok, "%v", r.Diags.Errors())

	whileStmt := prog.Functions[0].Body.Items[1].Stmt.(*parser.While)
	assert.NotEmpty(t, whileStmt.Label)
}

func TestResolve_GotoUndeclaredLabelFails(t *testing.T) {
	prog := parseProgram(t, `int main(void) { goto nowhere; return 0; }`)
	r := New()
	ok := r.Resolve(prog)
	assert.False(t, ok)
}

func TestResolve_GotoDeclaredLabelSucceeds(t *testing.T) {
	prog := parseProgram(t, `int main(void) { goto done; return 1; done: return 0; }`)
	r := New()
	ok := r.Resolve(prog)
	assert.True(t, ok, "%v", r.Diags.Errors())
}

func TestResolve_SwitchDuplicateCaseFails(t *testing.T) {
	prog := parseProgram(t, `int main(void) {
		int x = 1;
		switch (x) { case 1: return 1; case 1: return 2; }
		return 0;
	}`)
	r := New()
	ok := r.Resolve(prog)
	assert.False(t, ok)
}

func TestResolve_SwitchLabelsAssigned(t *testing.T) {
	prog := parseProgram(t, `int main(void) {
		int x = 1;
		switch (x) { case 1: return 1; default: return 0; }
	}`)
	r := New()
	ok := r.Resolve(prog)
	require.True(t, ok, "%v", r.Diags.Errors())

	sw := prog.Functions[0].Body.Items[1].Stmt.(*parser.Switch)
	assert.NotEmpty(t, sw.BreakLabel)
	for _, c := range sw.Cases {
		assert.NotEmpty(t, c.Label)
	}
}

func TestValidateReturns_MissingReturnInNonMainFails(t *testing.T) {
	prog := parseProgram(t, `int helper(void) { int a = 1; }
	int main(void) { return helper(); }`)
	r := New()
	ok := r.Resolve(prog)
	assert.False(t, ok)
}

func TestValidateReturns_MainGetsImplicitReturn(t *testing.T) {
	prog := parseProgram(t, `int main(void) { int a = 1; }`)
	r := New()
	ok := r.Resolve(prog)
	require.True(t, ok, "%v", r.Diags.Errors())

	fn := prog.Functions[0]
	last := fn.Body.Items[len(fn.Body.Items)-1]
	require.NotNil(t, last.Stmt)
	ret, isReturn := last.Stmt.(*parser.Return)
	require.True(t, isReturn)
	constant := ret.Value.(*parser.Constant)
	assert.Equal(t, int64(0), constant.IntVal)
}

func TestValidateReturns_IfElseBothBranchesReturn(t *testing.T) {
	prog := parseProgram(t, `int helper(void) { if (1) { return 1; } else { return 0; } }
	int main(void) { return helper(); }`)
	r := New()
	ok := r.Resolve(prog)
	assert.True(t, ok, "%v", r.Diags.Errors())
}
