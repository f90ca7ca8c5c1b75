/*
Package pegx is a PEG (parsing expression grammar) parser generator.

Consists of subpackages:
  - cmd/pegxgen: console utility converting grammar description to Go source file containing the parser;
  - source: defines source text with line/column lookup;
  - lexer: splits grammar description into a flat token stream;
  - grammar: defines abstract syntax tree of a grammar description;
  - langdef: converts grammar description to grammar.Grammar structure;
  - analysis: checks the grammar and computes annotations needed by code generator;
  - codegen: converts annotated grammar to Go source code;
  - peg: runtime protocol used by generated parsers.

Typical usage is:

1. Describe grammar in PEG-like language with embedded Go actions.

2. Run pegxgen utility (e.g. using go:generate directive) to get Go source file.

3. Call generated entry functions for public rules of the grammar.
*/
package pegx

import (
	"fmt"
	"strings"
)

// Version is the version of generator, compared against "requires" directive of grammar descriptions.
const Version = "v0.3.0"

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	LexicalErrors   = 1   // used by lexer
	SyntaxErrors    = 101 // used by langdef
	AnalysisErrors  = 201 // used by analysis
	GeneratorErrors = 301 // used by codegen
)

// Error is the error type used by pegx subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int

	// Expected contains labels of expected items for syntax errors, nil otherwise.
	Expected []string
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// lexer.Token and grammar.Pos implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	} else if line != 0 && col != 0 {
		msg += fmt.Sprintf(" at line %d col %d", line, col)
	}
	return &Error{Code: code, Message: msg, SourceName: name, Line: line, Col: col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// ExpectedError creates syntax error listing expected labels.
// atEnd tells that the failure position is at the end of input.
func ExpectedError(pos SourcePos, code int, expected []string, atEnd bool) *Error {
	msg := "expected " + JoinExpected(expected)
	if atEnd {
		msg += " at end of input"
	}
	e := FormatErrorPos(pos, code, "%s", msg)
	e.Expected = expected
	return e
}

// JoinExpected renders a set of expected labels: a single label as is, several labels as "one of a, b".
func JoinExpected(expected []string) string {
	switch len(expected) {
	case 0:
		return "nothing"
	case 1:
		return expected[0]
	default:
		return "one of " + strings.Join(expected, ", ")
	}
}
