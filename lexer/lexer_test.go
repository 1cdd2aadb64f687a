package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextToken_Operators(t *testing.T) {
	src := "+ - * / % ++ -- += -= *= /= %="
	l := NewLexer(src)
	want := []TokenType{
		PLUS_OP, MINUS_OP, MUL_OP, DIV_OP, MOD_OP,
		INCREMENT, DECREMENT,
		PLUS_ASSIGN, MINUS_ASSIGN, MUL_ASSIGN, DIV_ASSIGN, MOD_ASSIGN,
		EOF_TYPE,
	}
	for i, wantType := range want {
		tok := l.NextToken()
		assert.Equalf(t, wantType, tok.Type, "token %d", i)
	}
}

func TestNextToken_MaximalMunchShift(t *testing.T) {
	src := "<<= << <= < >>= >> >= >"
	l := NewLexer(src)
	want := []TokenType{
		BIT_LEFT_ASSIGN, BIT_LEFT_OP, LE_OP, LT_OP,
		BIT_RIGHT_ASSIGN, BIT_RIGHT_OP, GE_OP, GT_OP,
		EOF_TYPE,
	}
	for i, wantType := range want {
		tok := l.NextToken()
		assert.Equalf(t, wantType, tok.Type, "token %d", i)
	}
}

func TestNextToken_LogicalVsBitwise(t *testing.T) {
	src := "&& & &= || | |= ^ ^="
	l := NewLexer(src)
	want := []TokenType{
		AND_OP, BIT_AND_OP, BIT_AND_ASSIGN,
		OR_OP, BIT_OR_OP, BIT_OR_ASSIGN,
		BIT_XOR_OP, BIT_XOR_ASSIGN,
		EOF_TYPE,
	}
	for i, wantType := range want {
		tok := l.NextToken()
		assert.Equalf(t, wantType, tok.Type, "token %d", i)
	}
}

func TestNextToken_KeywordsAndIdentifiers(t *testing.T) {
	src := "int long unsigned signed double void return if else while do for break continue goto switch case default static extern sizeof foo _bar baz123"
	l := NewLexer(src)
	want := []TokenType{
		INT_KEY, LONG_KEY, UNSIGNED_KEY, SIGNED_KEY, DOUBLE_KEY, VOID_KEY,
		RETURN_KEY, IF_KEY, ELSE_KEY, WHILE_KEY, DO_KEY, FOR_KEY,
		BREAK_KEY, CONTINUE_KEY, GOTO_KEY, SWITCH_KEY, CASE_KEY, DEFAULT_KEY,
		STATIC_KEY, EXTERN_KEY, SIZEOF_KEY,
		IDENTIFIER_ID, IDENTIFIER_ID, IDENTIFIER_ID,
		EOF_TYPE,
	}
	for i, wantType := range want {
		tok := l.NextToken()
		assert.Equalf(t, wantType, tok.Type, "token %d", i)
	}
}

func TestNextToken_IntegerLiteralPromotion(t *testing.T) {
	cases := []struct {
		src      string
		wantKind LiteralKind
		wantType TokenType
	}{
		{"0", IntLiteral, INT_LIT},
		{"2147483647", IntLiteral, INT_LIT},
		{"2147483648", LongLiteral, LONG_LIT},
		{"10L", LongLiteral, LONG_LIT},
		{"10U", UIntLiteral, UINT_LIT},
		{"4294967296U", ULongLiteral, ULONG_LIT},
		{"10UL", ULongLiteral, ULONG_LIT},
		{"10LU", ULongLiteral, ULONG_LIT},
	}
	for _, tc := range cases {
		l := NewLexer(tc.src)
		tok := l.NextToken()
		assert.Equalf(t, tc.wantType, tok.Type, "src=%s", tc.src)
		assert.Equalf(t, tc.wantKind, tok.LitKind, "src=%s", tc.src)
	}
}

func TestNextToken_DoubleLiteral(t *testing.T) {
	l := NewLexer("3.14 2.0e10 1e-5")
	tok := l.NextToken()
	require.Equal(t, DOUBLE_LIT, tok.Type)
	assert.Equal(t, DoubleLiteral, tok.LitKind)
	assert.InDelta(t, 3.14, tok.FloatVal, 1e-9)

	tok = l.NextToken()
	require.Equal(t, DOUBLE_LIT, tok.Type)
	assert.InDelta(t, 2.0e10, tok.FloatVal, 1.0)

	tok = l.NextToken()
	require.Equal(t, DOUBLE_LIT, tok.Type)
	assert.InDelta(t, 1e-5, tok.FloatVal, 1e-12)
}

func TestNextToken_CommentsAndWhitespace(t *testing.T) {
	src := "int // trailing comment\n  x /* block\n comment */ = 1;"
	l := NewLexer(src)
	want := []TokenType{INT_KEY, IDENTIFIER_ID, ASSIGN_OP, INT_LIT, SEMICOLON_DELIM, EOF_TYPE}
	for i, wantType := range want {
		tok := l.NextToken()
		assert.Equalf(t, wantType, tok.Type, "token %d", i)
	}
	assert.False(t, l.Diags.HasErrors())
}

func TestNextToken_UnterminatedBlockComment(t *testing.T) {
	l := NewLexer("int x; /* never closed")
	for {
		tok := l.NextToken()
		if tok.Type == EOF_TYPE {
			break
		}
	}
	require.True(t, l.Diags.HasErrors())
	assert.Equal(t, 1, len(l.Diags.Errors()))
}

func TestNextToken_InvalidByte(t *testing.T) {
	l := NewLexer("int x = 1 @ 2;")
	var sawInvalid bool
	for {
		tok := l.NextToken()
		if tok.Type == INVALID_TYPE {
			sawInvalid = true
		}
		if tok.Type == EOF_TYPE {
			break
		}
	}
	assert.True(t, sawInvalid)
	assert.True(t, l.Diags.HasErrors())
}

func TestConsumeTokens_PositionTracking(t *testing.T) {
	l := NewLexer("int\nx = 1;")
	toks := l.ConsumeTokens()
	require.NotEmpty(t, toks)

	// "x" is on line 2.
	var xTok *Token
	for i := range toks {
		if toks[i].Type == IDENTIFIER_ID {
			xTok = &toks[i]
			break
		}
	}
	require.NotNil(t, xTok)
	assert.Equal(t, 2, xTok.Line)
}

func TestNextToken_StructuralAndDelimiters(t *testing.T) {
	l := NewLexer("( ) { } [ ] , ; : ?")
	want := []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE,
		LEFT_BRACKET, RIGHT_BRACKET, COMMA_DELIM, SEMICOLON_DELIM,
		COLON_DELIM, QUESTION_DELIM, EOF_TYPE,
	}
	for i, wantType := range want {
		tok := l.NextToken()
		assert.Equalf(t, wantType, tok.Type, "token %d", i)
	}
}
