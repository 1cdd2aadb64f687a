/*
File    : cgoc/main/replshell.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

The --repl-ast debug shell reads one statement-level snippet per line and
prints its AST, IR, and fixed-up assembly tree, so a contributor can probe
how a single construct lowers without round-tripping through a file.
Snippets are auto-wrapped in `int main(void) { ... }` since every valid
lowering needs a function to anchor it.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/go-cgoc/cgoc/codegen"
	"github.com/go-cgoc/cgoc/ir"
	"github.com/go-cgoc/cgoc/lexer"
	"github.com/go-cgoc/cgoc/parser"
	"github.com/go-cgoc/cgoc/resolve"
)

const replBanner = `cgoc interactive AST/IR/assembly shell
type a statement, end with ';' as usual, Ctrl-D to exit`

func printBanner(w io.Writer) {
	color.New(color.FgCyan, color.Bold).Fprintln(w, replBanner)
}

func runReplAst() int {
	printBanner(os.Stdout)

	rl, err := readline.New("cgoc> ")
	if err != nil {
		printError("starting interactive shell: %v", err)
		return exitUsageError
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on Ctrl-D, readline.ErrInterrupt on Ctrl-C
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		evalSnippet(line)
	}
	return exitSuccess
}

func evalSnippet(line string) {
	src := fmt.Sprintf("int main(void) { %s }", line)

	l := lexer.NewLexer(src)
	toks := l.ConsumeTokens()
	if l.Diags.HasErrors() {
		reportDiagnostics(l.Diags.Errors())
		return
	}

	p := parser.NewParser(toks)
	prog, perr := p.ParseProgram()
	if perr != nil {
		reportDiagnostics(p.Diags.Errors())
		return
	}

	color.New(color.FgYellow).Println("-- AST --")
	fmt.Print(PrintProgram(prog))

	r := resolve.New()
	if !r.Resolve(prog) {
		reportDiagnostics(r.Diags.Errors())
		return
	}

	irProg := ir.NewLowerer().Lower(prog)
	color.New(color.FgYellow).Println("-- IR --")
	for _, fn := range irProg.Functions {
		fmt.Printf("function %s\n", fn.Name)
		for _, inst := range fn.Body {
			fmt.Printf("  %#v\n", inst)
		}
	}

	gen := codegen.NewGenerator()
	asmProg := gen.GenerateAssembly(irProg)
	if gen.Diags.HasErrors() {
		reportDiagnostics(gen.Diags.Errors())
		return
	}
	codegen.ReplacePseudoRegisters(asmProg)
	codegen.FixupInstructions(asmProg)

	color.New(color.FgGreen).Println("-- assembly --")
	fmt.Print(codegen.Emit(asmProg))
}
