package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-cgoc/cgoc/lexer"
	"github.com/go-cgoc/cgoc/parser"
	"github.com/go-cgoc/cgoc/resolve"
)

func lowerSource(t *testing.T, src string) *Function {
	t.Helper()
	l := lexer.NewLexer(src)
	toks := l.ConsumeTokens()
	require.False(t, l.Diags.HasErrors())
	p := parser.NewParser(toks)
	prog, perr := p.ParseProgram()
	require.Nil(t, perr)
	r := resolve.New()
	require.True(t, r.Resolve(prog), "%v", r.Diags.Errors())
	lw := NewLowerer()
	ir := lw.Lower(prog)
	require.Len(t, ir.Functions, 1)
	return ir.Functions[0]
}

func TestLower_SimpleReturn(t *testing.T) {
	fn := lowerSource(t, "int main(void) { return 2; }")
	require.Len(t, fn.Body, 1)
	ret, ok := fn.Body[0].(Return)
	require.True(t, ok)
	c, ok := ret.Value.(Constant)
	require.True(t, ok)
	assert.Equal(t, int64(2), c.IntVal)
}

func TestLower_NestedUnary(t *testing.T) {
	fn := lowerSource(t, "int main(void) { return ~(-3); }")
	var unaryCount int
	for _, inst := range fn.Body {
		if _, ok := inst.(Unary); ok {
			unaryCount++
		}
	}
	assert.Equal(t, 2, unaryCount)
}

func TestLower_LogicalAndShortCircuit(t *testing.T) {
	fn := lowerSource(t, "int main(void) { return 1 && 0; }")
	var sawJumpIfZero bool
	for _, inst := range fn.Body {
		if _, ok := inst.(JumpIfZero); ok {
			sawJumpIfZero = true
		}
	}
	assert.True(t, sawJumpIfZero)
}

func TestLower_LogicalOrShortCircuit(t *testing.T) {
	fn := lowerSource(t, "int main(void) { return 1 || 0; }")
	var sawJumpIfNotZero bool
	for _, inst := range fn.Body {
		if _, ok := inst.(JumpIfNotZero); ok {
			sawJumpIfNotZero = true
		}
	}
	assert.True(t, sawJumpIfNotZero)
}

func TestLower_CompoundAssignment(t *testing.T) {
	fn := lowerSource(t, "int main(void) { int a = 5; a += 3; return a; }")
	var sawBinaryAdd bool
	for _, inst := range fn.Body {
		if b, ok := inst.(Binary); ok && b.Op == Add {
			sawBinaryAdd = true
		}
	}
	assert.True(t, sawBinaryAdd)
}

func TestLower_Ternary(t *testing.T) {
	fn := lowerSource(t, "int main(void) { return 1 ? 2 : 3; }")
	var labelCount int
	for _, inst := range fn.Body {
		if _, ok := inst.(Label); ok {
			labelCount++
		}
	}
	assert.Equal(t, 2, labelCount)
}

func TestLower_WhileLoopHasMatchedLabels(t *testing.T) {
	fn := lowerSource(t, `int main(void) {
		int i = 0;
		while (i < 3) { i = i + 1; }
		return i;
	}`)
	labels := collectLabels(fn)
	jumps := collectJumpTargets(fn)
	for _, target := range jumps {
		assert.Containsf(t, labels, target, "dangling jump target %q", target)
	}
}

func TestLower_SwitchLowersToComparisons(t *testing.T) {
	fn := lowerSource(t, `int main(void) {
		int x = 1;
		switch (x) {
			case 1: return 10;
			case 2: return 20;
			default: return 0;
		}
		return -1;
	}`)
	var sawEqual bool
	for _, inst := range fn.Body {
		if b, ok := inst.(Binary); ok && b.Op == Equal {
			sawEqual = true
		}
	}
	assert.True(t, sawEqual)

	labels := collectLabels(fn)
	jumps := collectJumpTargets(fn)
	for _, target := range jumps {
		assert.Containsf(t, labels, target, "dangling jump target %q", target)
	}
}

func TestLower_BreakContinueLowerToLabeledJumps(t *testing.T) {
	fn := lowerSource(t, `int main(void) {
		int i = 0;
		while (i < 10) {
			if (i == 5) { break; }
			i = i + 1;
			if (i == 2) { continue; }
		}
		return i;
	}`)
	labels := collectLabels(fn)
	jumps := collectJumpTargets(fn)
	for _, target := range jumps {
		assert.Containsf(t, labels, target, "dangling jump target %q", target)
	}
}

func collectLabels(fn *Function) map[string]bool {
	labels := make(map[string]bool)
	for _, inst := range fn.Body {
		if l, ok := inst.(Label); ok {
			labels[l.Name] = true
		}
	}
	return labels
}

func collectJumpTargets(fn *Function) []string {
	var targets []string
	for _, inst := range fn.Body {
		switch v := inst.(type) {
		case Jump:
			targets = append(targets, v.Target)
		case JumpIfZero:
			targets = append(targets, v.Target)
		case JumpIfNotZero:
			targets = append(targets, v.Target)
		}
	}
	return targets
}
