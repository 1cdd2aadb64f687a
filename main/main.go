/*
File    : cgoc/main/main.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

cgoc is the command-line entry point for the compiler: it reads flags,
drives the four pipeline stages in order, and maps whatever diagnostic the
first failing stage produces onto the process exit code.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/go-cgoc/cgoc/codegen"
	"github.com/go-cgoc/cgoc/config"
	"github.com/go-cgoc/cgoc/diag"
	"github.com/go-cgoc/cgoc/file"
	"github.com/go-cgoc/cgoc/ir"
	"github.com/go-cgoc/cgoc/lexer"
	"github.com/go-cgoc/cgoc/parser"
	"github.com/go-cgoc/cgoc/resolve"
)

// Exit codes, per the external interface contract.
const (
	exitSuccess       = 0
	exitUsageError    = 1
	exitNoInputFile   = 2
	exitInvalidFlag   = 3
	exitLexError      = 4
	exitParseError    = 5
	exitSemanticError = 6
	exitCodegenError  = 7
)

type options struct {
	lexOnly      bool
	parseOnly    bool
	printAst     bool
	tackyOnly    bool
	codegenOnly  bool
	replAst      bool
	inputPath    string
	preprocessor string
	assembler    string
	linker       string
	keepAsm      bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		printError("loading configuration: %v", err)
		return exitUsageError
	}

	opts, parseErr := parseFlags(args, cfg)
	if parseErr != nil {
		printError("%v", parseErr)
		return exitInvalidFlag
	}

	if opts.replAst {
		return runReplAst()
	}

	if opts.inputPath == "" {
		printError("no input file given")
		return exitNoInputFile
	}
	if !file.Exists(opts.inputPath) {
		printError("input file %q does not exist", opts.inputPath)
		return exitNoInputFile
	}

	return compileFile(opts)
}

func parseFlags(args []string, cfg *config.Config) (options, error) {
	fs := flag.NewFlagSet("cgoc", flag.ContinueOnError)
	opts := options{
		preprocessor: "cpp",
		assembler:    cfg.Codegen.Assembler,
		linker:       cfg.Codegen.Linker,
		keepAsm:      cfg.Output.KeepIntermediate,
	}
	fs.BoolVar(&opts.lexOnly, "lex", false, "stop after lexing and print the token stream")
	fs.BoolVar(&opts.parseOnly, "parse", false, "stop after parsing")
	fs.BoolVar(&opts.printAst, "printAst", false, "stop after parsing and print the AST")
	fs.BoolVar(&opts.tackyOnly, "tacky", false, "stop after IR lowering")
	fs.BoolVar(&opts.codegenOnly, "codegen", false, "stop after building the assembly tree, without emitting it")
	fs.BoolVar(&opts.replAst, "repl-ast", false, "start an interactive AST/IR/assembly debug shell")
	fs.StringVar(&opts.preprocessor, "cpp", opts.preprocessor, "external C preprocessor to invoke")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 1 {
		return options{}, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}
	if fs.NArg() == 1 {
		opts.inputPath = fs.Arg(0)
	}
	return opts, nil
}

func compileFile(opts options) int {
	defer func() {
		if r := recover(); r != nil {
			printError("internal compiler error: %v", r)
			os.Exit(exitCodegenError)
		}
	}()

	src, err := file.Preprocess(opts.preprocessor, opts.inputPath)
	if err != nil {
		printError("%v", err)
		return exitNoInputFile
	}

	text, exitCode := compileSource(src, opts)
	if exitCode != exitSuccess {
		return exitCode
	}
	if opts.lexOnly || opts.parseOnly || opts.printAst || opts.tackyOnly || opts.codegenOnly {
		return exitSuccess
	}

	asmPath := file.AssemblyPathFor(opts.inputPath)
	if err := file.WriteAssembly(asmPath, text); err != nil {
		printError("%v", err)
		return exitCodegenError
	}

	outputPath := file.BinaryPathFor(opts.inputPath)
	if err := file.AssembleAndLink(opts.assembler, opts.linker, asmPath, outputPath); err != nil {
		printError("%v", err)
		return exitCodegenError
	}
	if !opts.keepAsm {
		os.Remove(asmPath)
	}

	return exitSuccess
}

// compileSource drives lexing through assembly emission with no
// filesystem or subprocess interaction, so it can be exercised directly by
// tests. It honors every stop-early flag (--lex/--parse/--printAst/
// --tacky/--codegen); --lex prints the token stream and --printAst the AST
// to stdout, while the others print nothing.
// The returned string is only meaningful when exitCode is exitSuccess and
// no stop-early flag was set.
func compileSource(src string, opts options) (string, int) {
	l := lexer.NewLexer(src)
	toks := l.ConsumeTokens()
	if l.Diags.HasErrors() {
		reportDiagnostics(l.Diags.Errors())
		return "", exitLexError
	}
	if opts.lexOnly {
		for _, tok := range toks {
			tok.Print()
		}
		return "", exitSuccess
	}

	p := parser.NewParser(toks)
	prog, perr := p.ParseProgram()
	if perr != nil {
		reportDiagnostics(p.Diags.Errors())
		return "", exitParseError
	}
	if opts.parseOnly {
		return "", exitSuccess
	}
	if opts.printAst {
		fmt.Print(PrintProgram(prog))
		return "", exitSuccess
	}

	r := resolve.New()
	if !r.Resolve(prog) {
		reportDiagnostics(r.Diags.Errors())
		return "", exitSemanticError
	}

	irProg := ir.NewLowerer().Lower(prog)
	if opts.tackyOnly {
		return "", exitSuccess
	}

	gen := codegen.NewGenerator()
	asmProg := gen.GenerateAssembly(irProg)
	if gen.Diags.HasErrors() {
		reportDiagnostics(gen.Diags.Errors())
		return "", exitCodegenError
	}
	codegen.ReplacePseudoRegisters(asmProg)
	codegen.FixupInstructions(asmProg)
	if opts.codegenOnly {
		return "", exitSuccess
	}

	return codegen.Emit(asmProg), exitSuccess
}

func reportDiagnostics(diags []diag.Diagnostic) {
	for _, d := range diags {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: ")
		fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", d.Pos, d.Kind, d.Message)
	}
}

func printError(format string, args ...interface{}) {
	color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "cgoc: ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
