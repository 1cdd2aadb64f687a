/*
File    : cgoc/main/main_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-cgoc/cgoc/config"
)

func wrap(body string) string {
	return "int main(void) { " + body + " }"
}

func defaultTestConfig() *config.Config {
	return config.DefaultConfig()
}

func TestCompileSource_ReturnConstant(t *testing.T) {
	asm, code := compileSource(wrap("return 2;"), options{})
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, asm, "main:")
	assert.Contains(t, asm, "$2")
	assert.Contains(t, asm, "ret")
}

func TestCompileSource_NestedUnary(t *testing.T) {
	asm, code := compileSource(wrap("return ~(-3);"), options{})
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, asm, "neg")
	assert.Contains(t, asm, "not")
}

func TestCompileSource_ArithmeticPrecedence(t *testing.T) {
	asm, code := compileSource(wrap("return 1+2*3;"), options{})
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, asm, "imul")
	assert.Contains(t, asm, "add")
}

func TestCompileSource_CompoundAssignment(t *testing.T) {
	asm, code := compileSource(wrap("int a=5; a+=3; return a;"), options{})
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, asm, "add")
}

func TestCompileSource_LogicalAndOr(t *testing.T) {
	asm, code := compileSource(wrap("return 1 && 0 || 1;"), options{})
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, asm, "je")
	assert.Contains(t, asm, "jne")
}

func TestCompileSource_Ternary(t *testing.T) {
	asm, code := compileSource(wrap("return 1 ? 3 : 4;"), options{})
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, asm, "jmp")
}

func TestCompileSource_LexErrorExitCode(t *testing.T) {
	_, code := compileSource(wrap("int a = 1 ` ;"), options{})
	assert.Equal(t, exitLexError, code)
}

func TestCompileSource_ParseErrorExitCode(t *testing.T) {
	_, code := compileSource(wrap("return ;"), options{})
	assert.Equal(t, exitParseError, code)
}

func TestCompileSource_SemanticErrorExitCode(t *testing.T) {
	_, code := compileSource(wrap("return undeclared_var;"), options{})
	assert.Equal(t, exitSemanticError, code)
}

func TestCompileSource_StopsAfterLexWithFlag(t *testing.T) {
	text, code := compileSource(wrap("return 1;"), options{lexOnly: true})
	assert.Equal(t, exitSuccess, code)
	assert.Equal(t, "", text)
}

func TestCompileSource_StopsAfterParseWithFlag(t *testing.T) {
	text, code := compileSource(wrap("return 1;"), options{parseOnly: true})
	assert.Equal(t, exitSuccess, code)
	assert.Equal(t, "", text)
}

func TestCompileSource_StopsAfterCodegenWithFlag(t *testing.T) {
	text, code := compileSource(wrap("return 1;"), options{codegenOnly: true})
	assert.Equal(t, exitSuccess, code)
	assert.Equal(t, "", text)
}

func TestCompileSource_GotoAndLabel(t *testing.T) {
	asm, code := compileSource(wrap("goto done; return 1; done: return 2;"), options{})
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, asm, "jmp")
}

func TestCompileSource_SwitchStatement(t *testing.T) {
	asm, code := compileSource(wrap("int a = 2; switch (a) { case 1: return 1; case 2: return 2; default: return 0; }"), options{})
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, asm, "cmp")
}

func TestParseFlags_RejectsMultipleInputFiles(t *testing.T) {
	cfg := defaultTestConfig()
	_, err := parseFlags([]string{"a.c", "b.c"}, cfg)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "one input file"))
}

func TestParseFlags_AcceptsSingleInputFile(t *testing.T) {
	cfg := defaultTestConfig()
	opts, err := parseFlags([]string{"a.c"}, cfg)
	require.NoError(t, err)
	assert.Equal(t, "a.c", opts.inputPath)
}

func TestParseFlags_DefaultsFromConfig(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.Codegen.Assembler = "clang-as"
	opts, err := parseFlags(nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, "clang-as", opts.assembler)
}
