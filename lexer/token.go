package lexer

import (
	"fmt"

	"github.com/ava12/pegx/peg"
	"github.com/ava12/pegx/source"
)

// TokenType is the type of grammar description token.
type TokenType int

const (
	EOFToken TokenType = iota
	IdentToken
	StringToken
	CharToken
	IntToken
	PunctToken
	MacroToken
	CodeToken
	CondCodeToken
	BoundToken
)

var tokenTypeNames = [...]string{
	EOFToken:      "end of input",
	IdentToken:    "identifier",
	StringToken:   "string",
	CharToken:     "character",
	IntToken:      "integer",
	PunctToken:    "punctuation",
	MacroToken:    "macro",
	CodeToken:     "code block",
	CondCodeToken: "conditional code block",
	BoundToken:    "repetition bound",
}

func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenTypeNames) {
		return tokenTypeNames[tt]
	}
	return "unknown"
}

// Token is a grammar description token.
type Token struct {
	tokenType TokenType
	text      string
	pos       source.Pos
	end       int
}

// NewToken creates new token, end is the byte offset of the first byte after token.
func NewToken(tokenType TokenType, text string, pos source.Pos, end int) *Token {
	return &Token{tokenType, text, pos, end}
}

// Type returns token type.
func (t *Token) Type() TokenType {
	return t.tokenType
}

// TypeName returns token type name.
func (t *Token) TypeName() string {
	return t.tokenType.String()
}

// Text returns token text.
// Code tokens contain text between braces (without "?" for conditional code),
// string and character tokens contain quoted text.
func (t *Token) Text() string {
	return t.text
}

// Pos returns token position.
func (t *Token) Pos() source.Pos {
	return t.pos
}

// End returns byte offset after token.
func (t *Token) End() int {
	return t.end
}

// SourceName returns source name or empty string.
func (t *Token) SourceName() string {
	return t.pos.SourceName()
}

// Line returns line number.
func (t *Token) Line() int {
	return t.pos.Line()
}

// Col returns column number.
func (t *Token) Col() int {
	return t.pos.Col()
}

// Stream is a flat token sequence ending with EOFToken.
// Stream implements peg.Parse, peg.ParseElem[*Token], and peg.ParseLiteral, positions are token indexes.
type Stream struct {
	tokens []*Token
}

// NewStream creates stream, appends EOF token if missing.
func NewStream(tokens []*Token) *Stream {
	if len(tokens) == 0 || tokens[len(tokens)-1].tokenType != EOFToken {
		var pos source.Pos
		end := 0
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			end = last.end
			if last.pos.Source() != nil {
				pos = source.NewPos(last.pos.Source(), end)
			}
		}
		tokens = append(tokens, NewToken(EOFToken, "", pos, end))
	}
	return &Stream{tokens}
}

// Tokens returns all tokens including the final EOF token.
func (s *Stream) Tokens() []*Token {
	return s.tokens
}

// Token returns token at pos, EOF token for positions past the end.
func (s *Stream) Token(pos int) *Token {
	if pos < 0 {
		pos = 0
	}
	if pos >= len(s.tokens) {
		pos = len(s.tokens) - 1
	}
	return s.tokens[pos]
}

func (s *Stream) Start() int {
	return 0
}

func (s *Stream) IsEOF(pos int) bool {
	return s.Token(pos).tokenType == EOFToken
}

func (s *Stream) PositionRepr(pos int) string {
	t := s.Token(pos)
	return fmt.Sprintf("%d:%d", t.Line(), t.Col())
}

// ParseElem returns non-EOF token at pos.
func (s *Stream) ParseElem(pos int) peg.RuleResult[*Token] {
	if s.IsEOF(pos) {
		return peg.Failed[*Token]()
	}
	return peg.Matched(pos+1, s.tokens[pos])
}

// ParseLiteral matches identifier, punctuation, or macro token by its text.
func (s *Stream) ParseLiteral(pos int, lit string) (int, bool) {
	t := s.Token(pos)
	switch t.tokenType {
	case IdentToken, PunctToken, MacroToken:
		if t.text == lit {
			return pos + 1, true
		}
	}
	return pos, false
}

// ParseSlice returns source text spanning tokens from p1 up to p2.
func (s *Stream) ParseSlice(p1, p2 int) string {
	if p2 <= p1 {
		return ""
	}

	first := s.Token(p1)
	src := first.pos.Source()
	if src == nil {
		return ""
	}
	return string(src.Content()[first.pos.Pos():s.Token(p2-1).end])
}
