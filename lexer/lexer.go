/*
File    : cgoc/lexer/lexer.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package lexer turns preprocessed C-subset source text into a token stream.
It performs a single forward pass with two-character lookahead, dispatching
on the leading byte of each token and using maximal munch to resolve
multi-character operators (`>>=` before `>>` before `>=` before `>`, and so
on for every other prefix-ambiguous operator family).
*/
package lexer

import (
	"strconv"
	"strings"

	"github.com/go-cgoc/cgoc/diag"
)

// Lexer holds the scanning cursor over a source buffer. Line and Column
// track the position of the next byte to be consumed; they are stamped onto
// every emitted Token for downstream diagnostics.
type Lexer struct {
	Src       string
	Current   int
	SrcLength int
	Line      int
	Column    int

	Diags diag.Bag
}

// NewLexer creates a Lexer positioned at the start of src.
func NewLexer(src string) Lexer {
	return Lexer{
		Src:       src,
		Current:   0,
		SrcLength: len(src),
		Line:      1,
		Column:    1,
	}
}

// atEnd reports whether the cursor has consumed the whole buffer.
func (l *Lexer) atEnd() bool {
	return l.Current >= l.SrcLength
}

// Peek returns the byte at the cursor without consuming it, or 0 at EOF.
func (l *Lexer) Peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.Src[l.Current]
}

// PeekAt returns the byte `offset` positions ahead of the cursor, or 0 if
// that position is past the end of the buffer.
func (l *Lexer) PeekAt(offset int) byte {
	idx := l.Current + offset
	if idx >= l.SrcLength {
		return 0
	}
	return l.Src[idx]
}

// Advance consumes and returns the byte at the cursor, updating line/column
// bookkeeping.
func (l *Lexer) Advance() byte {
	ch := l.Src[l.Current]
	l.Current++
	if ch == '\n' {
		l.Line++
		l.Column = 1
	} else {
		l.Column++
	}
	return ch
}

// match consumes the next byte and reports true if it equals expected;
// otherwise the cursor is left untouched.
func (l *Lexer) match(expected byte) bool {
	if l.atEnd() || l.Src[l.Current] != expected {
		return false
	}
	l.Advance()
	return true
}

// IgnoreWhitespacesAndComments skips whitespace, `//` line comments, and
// `/* ... */` block comments. An unterminated block comment is reported as
// a Lex diagnostic and scanning stops at EOF so the caller can emit a final
// Invalid/EOF token.
func (l *Lexer) IgnoreWhitespacesAndComments() {
	for !l.atEnd() {
		ch := l.Peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.Advance()
		case ch == '/' && l.PeekAt(1) == '/':
			for !l.atEnd() && l.Peek() != '\n' {
				l.Advance()
			}
		case ch == '/' && l.PeekAt(1) == '*':
			startLine, startCol := l.Line, l.Column
			l.Advance()
			l.Advance()
			terminated := false
			for !l.atEnd() {
				if l.Peek() == '*' && l.PeekAt(1) == '/' {
					l.Advance()
					l.Advance()
					terminated = true
					break
				}
				l.Advance()
			}
			if !terminated {
				l.Diags.Add(diag.Diagnostic{
					Kind:    diag.Lex,
					Pos:     diag.Position{Line: startLine, Column: startCol},
					Message: "unterminated block comment",
				})
				return
			}
		default:
			return
		}
	}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }
func isAlpha(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
func isAlnum(ch byte) bool { return isAlpha(ch) || isDigit(ch) }

// NextToken scans and returns the next Token, advancing the cursor past it.
// The final Token returned for any input is always EOF_TYPE.
func (l *Lexer) NextToken() Token {
	l.IgnoreWhitespacesAndComments()

	startLine, startCol := l.Line, l.Column

	if l.atEnd() {
		return NewTokenWithMetadata(EOF_TYPE, "", startLine, startCol)
	}

	ch := l.Advance()

	switch {
	case isDigit(ch):
		return l.scanNumber(ch, startLine, startCol)
	case isAlpha(ch):
		return l.scanIdentifier(ch, startLine, startCol)
	case ch == '"':
		return l.scanString(startLine, startCol)
	case ch == '\'':
		return l.scanChar(startLine, startCol)
	}

	switch ch {
	case '(':
		return NewTokenWithMetadata(LEFT_PAREN, "(", startLine, startCol)
	case ')':
		return NewTokenWithMetadata(RIGHT_PAREN, ")", startLine, startCol)
	case '{':
		return NewTokenWithMetadata(LEFT_BRACE, "{", startLine, startCol)
	case '}':
		return NewTokenWithMetadata(RIGHT_BRACE, "}", startLine, startCol)
	case '[':
		return NewTokenWithMetadata(LEFT_BRACKET, "[", startLine, startCol)
	case ']':
		return NewTokenWithMetadata(RIGHT_BRACKET, "]", startLine, startCol)
	case ',':
		return NewTokenWithMetadata(COMMA_DELIM, ",", startLine, startCol)
	case ';':
		return NewTokenWithMetadata(SEMICOLON_DELIM, ";", startLine, startCol)
	case ':':
		return NewTokenWithMetadata(COLON_DELIM, ":", startLine, startCol)
	case '?':
		return NewTokenWithMetadata(QUESTION_DELIM, "?", startLine, startCol)
	case '~':
		return NewTokenWithMetadata(BIT_NOT_OP, "~", startLine, startCol)

	case '+':
		if l.match('+') {
			return NewTokenWithMetadata(INCREMENT, "++", startLine, startCol)
		}
		if l.match('=') {
			return NewTokenWithMetadata(PLUS_ASSIGN, "+=", startLine, startCol)
		}
		return NewTokenWithMetadata(PLUS_OP, "+", startLine, startCol)

	case '-':
		if l.match('-') {
			return NewTokenWithMetadata(DECREMENT, "--", startLine, startCol)
		}
		if l.match('=') {
			return NewTokenWithMetadata(MINUS_ASSIGN, "-=", startLine, startCol)
		}
		return NewTokenWithMetadata(MINUS_OP, "-", startLine, startCol)

	case '*':
		if l.match('=') {
			return NewTokenWithMetadata(MUL_ASSIGN, "*=", startLine, startCol)
		}
		return NewTokenWithMetadata(MUL_OP, "*", startLine, startCol)

	case '/':
		if l.match('=') {
			return NewTokenWithMetadata(DIV_ASSIGN, "/=", startLine, startCol)
		}
		return NewTokenWithMetadata(DIV_OP, "/", startLine, startCol)

	case '%':
		if l.match('=') {
			return NewTokenWithMetadata(MOD_ASSIGN, "%=", startLine, startCol)
		}
		return NewTokenWithMetadata(MOD_OP, "%", startLine, startCol)

	case '=':
		if l.match('=') {
			return NewTokenWithMetadata(EQ_OP, "==", startLine, startCol)
		}
		return NewTokenWithMetadata(ASSIGN_OP, "=", startLine, startCol)

	case '!':
		if l.match('=') {
			return NewTokenWithMetadata(NE_OP, "!=", startLine, startCol)
		}
		return NewTokenWithMetadata(NOT_OP, "!", startLine, startCol)

	case '<':
		// maximal munch: <<= then << then <= then <
		if l.Peek() == '<' && l.PeekAt(1) == '=' {
			l.Advance()
			l.Advance()
			return NewTokenWithMetadata(BIT_LEFT_ASSIGN, "<<=", startLine, startCol)
		}
		if l.match('<') {
			return NewTokenWithMetadata(BIT_LEFT_OP, "<<", startLine, startCol)
		}
		if l.match('=') {
			return NewTokenWithMetadata(LE_OP, "<=", startLine, startCol)
		}
		return NewTokenWithMetadata(LT_OP, "<", startLine, startCol)

	case '>':
		// maximal munch: >>= then >> then >= then >
		if l.Peek() == '>' && l.PeekAt(1) == '=' {
			l.Advance()
			l.Advance()
			return NewTokenWithMetadata(BIT_RIGHT_ASSIGN, ">>=", startLine, startCol)
		}
		if l.match('>') {
			return NewTokenWithMetadata(BIT_RIGHT_OP, ">>", startLine, startCol)
		}
		if l.match('=') {
			return NewTokenWithMetadata(GE_OP, ">=", startLine, startCol)
		}
		return NewTokenWithMetadata(GT_OP, ">", startLine, startCol)

	case '&':
		if l.match('&') {
			return NewTokenWithMetadata(AND_OP, "&&", startLine, startCol)
		}
		if l.match('=') {
			return NewTokenWithMetadata(BIT_AND_ASSIGN, "&=", startLine, startCol)
		}
		return NewTokenWithMetadata(BIT_AND_OP, "&", startLine, startCol)

	case '|':
		if l.match('|') {
			return NewTokenWithMetadata(OR_OP, "||", startLine, startCol)
		}
		if l.match('=') {
			return NewTokenWithMetadata(BIT_OR_ASSIGN, "|=", startLine, startCol)
		}
		return NewTokenWithMetadata(BIT_OR_OP, "|", startLine, startCol)

	case '^':
		if l.match('=') {
			return NewTokenWithMetadata(BIT_XOR_ASSIGN, "^=", startLine, startCol)
		}
		return NewTokenWithMetadata(BIT_XOR_OP, "^", startLine, startCol)
	}

	l.Diags.Add(diag.Diagnostic{
		Kind:    diag.Lex,
		Pos:     diag.Position{Line: startLine, Column: startCol},
		Message: "unrecognized byte " + strconv.QuoteRune(rune(ch)),
	})
	return NewTokenWithMetadata(INVALID_TYPE, string(ch), startLine, startCol)
}

// scanIdentifier consumes `[A-Za-z0-9_]*` following an already-consumed
// leading `[A-Za-z_]` and classifies the result as a keyword or identifier.
func (l *Lexer) scanIdentifier(first byte, line, col int) Token {
	var sb strings.Builder
	sb.WriteByte(first)
	for !l.atEnd() && isAlnum(l.Peek()) {
		sb.WriteByte(l.Advance())
	}
	text := sb.String()
	return NewTokenWithMetadata(lookupIdent(text), text, line, col)
}

// scanNumber consumes a numeric literal following an already-consumed
// leading digit: consume digits, switch to a floating path on `.` or
// `e`/`E`, then classify integer suffixes (`L`, `U`, `UL`/`LU`) and promote
// on magnitude overflow.
func (l *Lexer) scanNumber(first byte, line, col int) Token {
	var sb strings.Builder
	sb.WriteByte(first)

	isFloat := false
	for !l.atEnd() && isDigit(l.Peek()) {
		sb.WriteByte(l.Advance())
	}
	if !l.atEnd() && l.Peek() == '.' && isDigit(l.PeekAt(1)) {
		isFloat = true
		sb.WriteByte(l.Advance())
		for !l.atEnd() && isDigit(l.Peek()) {
			sb.WriteByte(l.Advance())
		}
	}
	if !l.atEnd() && (l.Peek() == 'e' || l.Peek() == 'E') {
		la := l.PeekAt(1)
		digitsAhead := isDigit(la) || ((la == '+' || la == '-') && isDigit(l.PeekAt(2)))
		if digitsAhead {
			isFloat = true
			sb.WriteByte(l.Advance())
			if l.Peek() == '+' || l.Peek() == '-' {
				sb.WriteByte(l.Advance())
			}
			for !l.atEnd() && isDigit(l.Peek()) {
				sb.WriteByte(l.Advance())
			}
		}
	}

	if isFloat {
		text := sb.String()
		val, err := strconv.ParseFloat(text, 64)
		if err != nil {
			l.Diags.Add(diag.Diagnostic{
				Kind:    diag.Lex,
				Pos:     diag.Position{Line: line, Column: col},
				Message: "malformed double literal: " + text,
			})
			return NewTokenWithMetadata(INVALID_TYPE, text, line, col)
		}
		tok := NewTokenWithMetadata(DOUBLE_LIT, text, line, col)
		tok.LitKind = DoubleLiteral
		tok.FloatVal = val
		return tok
	}

	// Integer suffix: at most two characters drawn from {L,l,U,u}.
	var suffix strings.Builder
	for !l.atEnd() && (l.Peek() == 'L' || l.Peek() == 'l' || l.Peek() == 'U' || l.Peek() == 'u') {
		suffix.WriteByte(l.Advance())
		if suffix.Len() >= 2 {
			break
		}
	}
	// A suffix longer than two characters, or one whose shape doesn't match
	// {L, l, U, u, LU, UL, lu, ul, ...} (case-insensitive), is invalid.
	suf := strings.ToUpper(suffix.String())
	hasU, hasL := strings.Contains(suf, "U"), strings.Contains(suf, "L")
	validSuffix := suf == "" || suf == "L" || suf == "U" || suf == "UL" || suf == "LU"
	if !validSuffix || (!l.atEnd() && isAlnum(l.Peek())) {
		// trailing garbage glued to the suffix, e.g. `123LX`
		for !l.atEnd() && isAlnum(l.Peek()) {
			suffix.WriteByte(l.Advance())
		}
		text := sb.String() + suffix.String()
		l.Diags.Add(diag.Diagnostic{
			Kind:    diag.Lex,
			Pos:     diag.Position{Line: line, Column: col},
			Message: "invalid integer literal suffix: " + text,
		})
		return NewTokenWithMetadata(INVALID_TYPE, text, line, col)
	}

	digits := sb.String()
	uval, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		l.Diags.Add(diag.Diagnostic{
			Kind:    diag.Lex,
			Pos:     diag.Position{Line: line, Column: col},
			Message: "malformed integer literal: " + digits,
		})
		return NewTokenWithMetadata(INVALID_TYPE, digits, line, col)
	}

	text := digits + suffix.String()
	const int32Max = uint64(1<<31 - 1)
	const uint32Max = uint64(1<<32 - 1)

	var kind LiteralKind
	switch {
	case hasU && hasL:
		kind = ULongLiteral
	case hasU:
		if uval > uint32Max {
			kind = ULongLiteral
		} else {
			kind = UIntLiteral
		}
	case hasL:
		kind = LongLiteral
	default:
		if uval > int32Max {
			kind = LongLiteral
		} else {
			kind = IntLiteral
		}
	}

	tok := NewTokenWithMetadata(tokenTypeForLiteral(kind), text, line, col)
	tok.LitKind = kind
	switch kind {
	case IntLiteral, LongLiteral:
		tok.IntVal = int64(uval)
	case UIntLiteral, ULongLiteral:
		tok.UintVal = uval
	}
	return tok
}

func tokenTypeForLiteral(kind LiteralKind) TokenType {
	switch kind {
	case IntLiteral:
		return INT_LIT
	case LongLiteral:
		return LONG_LIT
	case UIntLiteral:
		return UINT_LIT
	case ULongLiteral:
		return ULONG_LIT
	case DoubleLiteral:
		return DOUBLE_LIT
	default:
		return INVALID_TYPE
	}
}

// scanString consumes a double-quoted string literal. The string subset is
// not part of the restricted language's expression grammar but the token
// kind is retained for forward compatibility with diagnostics that quote
// source text.
func (l *Lexer) scanString(line, col int) Token {
	var sb strings.Builder
	for !l.atEnd() && l.Peek() != '"' {
		if l.Peek() == '\\' && l.PeekAt(1) != 0 {
			l.Advance()
			sb.WriteByte(l.Advance())
			continue
		}
		sb.WriteByte(l.Advance())
	}
	if l.atEnd() {
		l.Diags.Add(diag.Diagnostic{
			Kind:    diag.Lex,
			Pos:     diag.Position{Line: line, Column: col},
			Message: "unterminated string literal",
		})
		return NewTokenWithMetadata(INVALID_TYPE, sb.String(), line, col)
	}
	l.Advance() // closing quote
	return NewTokenWithMetadata(STRING_LIT, sb.String(), line, col)
}

// scanChar consumes a single-quoted character literal.
func (l *Lexer) scanChar(line, col int) Token {
	if l.atEnd() {
		l.Diags.Add(diag.Diagnostic{
			Kind:    diag.Lex,
			Pos:     diag.Position{Line: line, Column: col},
			Message: "unterminated char literal",
		})
		return NewTokenWithMetadata(INVALID_TYPE, "", line, col)
	}
	var ch byte
	if l.Peek() == '\\' {
		l.Advance()
		ch = l.Advance()
	} else {
		ch = l.Advance()
	}
	if !l.match('\'') {
		l.Diags.Add(diag.Diagnostic{
			Kind:    diag.Lex,
			Pos:     diag.Position{Line: line, Column: col},
			Message: "unterminated char literal",
		})
		return NewTokenWithMetadata(INVALID_TYPE, string(ch), line, col)
	}
	tok := NewTokenWithMetadata(CHAR_LIT, string(ch), line, col)
	tok.LitKind = IntLiteral
	tok.IntVal = int64(ch)
	return tok
}

// ConsumeTokens drains the lexer into a slice, always ending with one
// EOF_TYPE token. Convenient for tests and for the `--lex` driver mode.
func (l *Lexer) ConsumeTokens() []Token {
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF_TYPE {
			return toks
		}
	}
}
