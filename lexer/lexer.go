// Package lexer splits grammar description into a flat token stream.
package lexer

import (
	"regexp"
	"strings"

	plexer "github.com/alecthomas/participle/v2/lexer"

	"github.com/ava12/pegx"
	"github.com/ava12/pegx/source"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	WrongCharError = pegx.LexicalErrors + iota

	// UnterminatedCodeError indicates that a code block has no closing brace.
	UnterminatedCodeError
)

// Rules with lower case names are elided by participle.
const (
	stringSym     = "String"
	charSym       = "Char"
	blockMacroSym = "BlockMacro"
	macroSym      = "Macro"
	identSym      = "Ident"
	intSym        = "Int"
	codeOpenSym   = "CodeOpen"
	codeCloseSym  = "CodeClose"
	punctSym      = "Punct"
)

// Code state keeps nested braces, strings, and comments of host code intact,
// so a brace inside a string literal does not close the block.
var definition = plexer.MustStateful(plexer.Rules{
	"Root": {
		{Name: "comment", Pattern: `//[^\n]*|/\*(?s:.*?)\*/`, Action: nil},
		{Name: "whitespace", Pattern: `\s+`, Action: nil},
		{Name: stringSym, Pattern: `"(?:\\.|[^"\\\n])*"|` + "`[^`]*`", Action: nil},
		{Name: charSym, Pattern: `'(?:\\.|[^'\\\n])+'`, Action: nil},
		{Name: blockMacroSym, Pattern: `[a-z_]+!\s*\{`, Action: nil},
		{Name: macroSym, Pattern: `[a-z_]+!`, Action: nil},
		{Name: identSym, Pattern: `[A-Za-z_][A-Za-z0-9_]*`, Action: nil},
		{Name: intSym, Pattern: `[0-9]+`, Action: nil},
		{Name: codeOpenSym, Pattern: `\{`, Action: plexer.Push("Code")},
		{Name: punctSym, Pattern: `->|--|\*\*|\+\+|#\[|\(\s*@\s*\)|[@/()\[\]*+?&!$:;,.=^}<>-]`, Action: nil},
	},
	"Code": {
		{Name: "CodeString", Pattern: `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'|` + "`[^`]*`", Action: nil},
		{Name: "CodeComment", Pattern: `//[^\n]*|/\*(?s:.*?)\*/`, Action: nil},
		{Name: codeOpenSym, Pattern: `\{`, Action: plexer.Push("Code")},
		{Name: codeCloseSym, Pattern: `\}`, Action: plexer.Pop()},
		{Name: "CodeText", Pattern: "[^{}\"'`/]+|/", Action: nil},
	},
})

var symbolNames = plexer.SymbolsByRune(definition)

var boundRe = regexp.MustCompile(`^\s*(?:\d+\s*(?:,\s*\d*)?|,\s*\d+|,)\s*$`)

// Lex splits grammar description into tokens.
// Comments and whitespace are dropped, each code block becomes a single token.
// Returns nil and pegx.Error on error.
func Lex(src *source.Source) (*Stream, error) {
	pl, e := definition.LexString(src.Name(), string(src.Content()))
	if e != nil {
		return nil, convertError(src, e)
	}

	tokens := make([]*Token, 0)
	var code *codeBlock
	for {
		pt, e := pl.Next()
		if e != nil {
			return nil, convertError(src, e)
		}

		if pt.EOF() {
			break
		}

		name := symbolNames[pt.Type]
		if code != nil {
			if code.add(name, pt) {
				tokens = append(tokens, code.token(src))
				code = nil
			}
			continue
		}

		if name == codeOpenSym {
			attached := len(tokens) > 0 && tokens[len(tokens)-1].End() == pt.Pos.Offset
			code = newCodeBlock(pt, attached)
			continue
		}

		tokens = append(tokens, newToken(src, name, pt))
	}

	if code != nil {
		return nil, pegx.FormatErrorPos(source.NewPos(src, code.start.Offset), UnterminatedCodeError, "unterminated code block")
	}

	end := src.Len()
	tokens = append(tokens, NewToken(EOFToken, "", source.NewPos(src, end), end))
	return NewStream(tokens), nil
}

func newToken(src *source.Source, name string, pt plexer.Token) *Token {
	tt := PunctToken
	text := pt.Value
	switch name {
	case identSym:
		tt = IdentToken
	case stringSym:
		tt = StringToken
	case charSym:
		tt = CharToken
	case intSym:
		tt = IntToken
	case macroSym:
		tt = MacroToken
	case blockMacroSym:
		tt = MacroToken
		text = text[:strings.IndexByte(text, '!')] + "!{"
	case punctSym:
		if len(text) > 1 && text[0] == '(' {
			text = "(@)"
		}
	}
	return NewToken(tt, text, source.NewPos(src, pt.Pos.Offset), pt.Pos.Offset+len(pt.Value))
}

// attached block directly follows previous token and may be a repetition bound.
type codeBlock struct {
	start    plexer.Position
	attached bool
	depth    int
	text  strings.Builder
	end   int
}

func newCodeBlock(open plexer.Token, attached bool) *codeBlock {
	return &codeBlock{start: open.Pos, attached: attached, depth: 1}
}

// add appends a token to block content, returns true when the outermost block is closed.
func (cb *codeBlock) add(name string, pt plexer.Token) bool {
	switch name {
	case codeOpenSym:
		cb.depth++
	case codeCloseSym:
		cb.depth--
		if cb.depth == 0 {
			cb.end = pt.Pos.Offset + 1
			return true
		}
	}
	cb.text.WriteString(pt.Value)
	return false
}

func (cb *codeBlock) token(src *source.Source) *Token {
	text := cb.text.String()
	pos := source.NewPos(src, cb.start.Offset)
	if cb.attached && boundRe.MatchString(text) {
		return NewToken(BoundToken, strings.Join(strings.Fields(text), ""), pos, cb.end)
	}

	trimmed := strings.TrimLeft(text, " \t\r\n")
	if strings.HasPrefix(trimmed, "?") {
		return NewToken(CondCodeToken, trimmed[1:], pos, cb.end)
	}
	return NewToken(CodeToken, text, pos, cb.end)
}

func convertError(src *source.Source, e error) *pegx.Error {
	if pe, has := e.(interface{ Position() plexer.Position }); has {
		return pegx.FormatErrorPos(source.NewPos(src, pe.Position().Offset), WrongCharError, "%s", e.Error())
	}
	return pegx.FormatError(WrongCharError, "%s", e.Error())
}
