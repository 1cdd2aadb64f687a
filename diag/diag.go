/*
File    : cgoc/diag/diag.go
Package diag implements the diagnostic taxonomy shared by every compiler
stage: lexer, parser, semantic passes, and codegen. Each stage reports
trouble through a Diagnostic rather than panicking, so a single driver can
decide the process exit code from the diagnostic's Kind alone.
*/

// Package diag carries structured compiler diagnostics across stage
// boundaries. It is grounded on the position+kind+message shape used by
// hand-rolled parsers and assemblers, generalized here to a typed Kind
// enum so the CLI driver can map a diagnostic straight to an exit code.
package diag

import "fmt"

// Kind classifies which pipeline stage raised a diagnostic. The driver uses
// this to select the process exit code for the failing pipeline stage.
type Kind int

const (
	// Lex marks an error discovered during tokenization.
	Lex Kind = iota
	// Parse marks an error discovered while building the AST.
	Parse
	// Semantic marks an error discovered during variable resolution,
	// return validation, label/goto resolution, or switch validation.
	Semantic
	// Codegen marks an internal assertion failure; should be unreachable
	// for input that passed the earlier stages.
	Codegen
)

// String renders a Kind for log and error output.
func (k Kind) String() string {
	switch k {
	case Lex:
		return "lex"
	case Parse:
		return "parse"
	case Semantic:
		return "semantic"
	case Codegen:
		return "codegen"
	default:
		return "unknown"
	}
}

// Position is a 1-indexed source location.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Diagnostic is a single reported problem, carrying enough context for the
// driver to print a useful message and pick an exit code.
type Diagnostic struct {
	Kind     Kind
	Pos      Position
	Message  string
	Expected string // populated for Parse kind mismatches
	Received string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("[%s] %s: %s", d.Pos, d.Kind, d.Message)
}

// Bag accumulates diagnostics for passes that can continue safely after an
// error (lexing, semantic passes). Parse halts on the first diagnostic
// instead of accumulating, per the fatal-on-first-error parser policy, but
// still uses Bag as the carrier for that single entry so the driver's
// reporting path is uniform across stages.
type Bag struct {
	entries  []Diagnostic
	warnings []Diagnostic
}

// Add appends a diagnostic to the bag.
func (b *Bag) Add(d Diagnostic) {
	b.entries = append(b.entries, d)
}

// Warn appends a non-fatal diagnostic. Nothing populates this today; it
// exists because the error taxonomy distinguishes warnings from errors and
// a future pass (e.g. unreachable-code detection) has a home to report to.
func (b *Bag) Warn(d Diagnostic) {
	b.warnings = append(b.warnings, d)
}

// HasErrors reports whether any fatal diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	return len(b.entries) > 0
}

// Errors returns all recorded fatal diagnostics in report order.
func (b *Bag) Errors() []Diagnostic {
	return b.entries
}

// Warnings returns all recorded warnings in report order.
func (b *Bag) Warnings() []Diagnostic {
	return b.warnings
}

// First returns the first recorded diagnostic and true, or a zero value and
// false if the bag is empty. The driver uses this to report "the first
// error of each pass it reaches".
func (b *Bag) First() (Diagnostic, bool) {
	if len(b.entries) == 0 {
		return Diagnostic{}, false
	}
	return b.entries[0], true
}
