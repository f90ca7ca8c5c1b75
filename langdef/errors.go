package langdef

import (
	"strconv"

	"github.com/ava12/pegx"
	"github.com/ava12/pegx/lexer"
	"github.com/ava12/pegx/peg"
	"github.com/ava12/pegx/source"
)

const (
	UnexpectedInputError = pegx.SyntaxErrors + iota
	RuleDefinedError
	ParamDefinedError
	UnknownAttributeError
	WrongStringError
	WrongCharError
	WrongRangeError
	WrongBoundsError
)

func unexpectedInputError(s *lexer.Stream, pe *peg.ParseError) *pegx.Error {
	return pegx.ExpectedError(s.Token(pe.Offset), UnexpectedInputError, pe.Expected, pe.AtEOF)
}

func ruleDefinedError(pos source.Pos, name string) *pegx.Error {
	return pegx.FormatErrorPos(pos, RuleDefinedError, "rule %q already defined", name)
}

func paramDefinedError(pos source.Pos, rule, name string) *pegx.Error {
	return pegx.FormatErrorPos(pos, ParamDefinedError, "parameter %q of rule %q already defined", name, rule)
}

func unknownAttributeError(t *lexer.Token) *pegx.Error {
	return pegx.FormatErrorPos(t, UnknownAttributeError, "unknown attribute %q", t.Text())
}

func wrongStringError(t *lexer.Token, e error) *pegx.Error {
	return pegx.FormatErrorPos(t, WrongStringError, "incorrect string %s (%s)", t.Text(), e.Error())
}

func wrongCharError(t *lexer.Token) *pegx.Error {
	return pegx.FormatErrorPos(t, WrongCharError, "incorrect character %s", t.Text())
}

func wrongRangeError(t *lexer.Token, lo, hi rune) *pegx.Error {
	return pegx.FormatErrorPos(t, WrongRangeError, "empty character range %s-%s", strconv.QuoteRune(lo), strconv.QuoteRune(hi))
}

func wrongBoundsError(t *lexer.Token) *pegx.Error {
	return pegx.FormatErrorPos(t, WrongBoundsError, "incorrect repetition bounds {%s}", t.Text())
}
