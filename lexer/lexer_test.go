package lexer

import (
	"strings"
	"testing"

	"github.com/ava12/pegx"
	. "github.com/ava12/pegx/internal/test"
	"github.com/ava12/pegx/source"
)

func lex(t *testing.T, text string) *Stream {
	t.Helper()
	s, e := Lex(source.New("test", []byte(text)))
	ExpectNoError(t, e)
	return s
}

func TestEmpty(t *testing.T) {
	sources := []string{"", " ", "  ", " \t\r\n ", "// comment", "/* multi\nline */"}
	for _, src := range sources {
		s := lex(t, src)
		ExpectInt(t, 1, len(s.Tokens()))
		Assert(t, s.IsEOF(0), "source %q: expecting EOF", src)
		ExpectString(t, EOFToken.String(), s.Token(0).TypeName())
	}
}

func TestTokenSamples(t *testing.T) {
	samples := []struct {
		text   string
		types  []TokenType
		values []string
	}{
		{
			`pub rule foo() -> i64 = "a" / 'b'`,
			[]TokenType{IdentToken, IdentToken, IdentToken, PunctToken, PunctToken, PunctToken, IdentToken, PunctToken, StringToken, PunctToken, CharToken},
			[]string{"pub", "rule", "foo", "(", ")", "->", "i64", "=", `"a"`, "/", "'b'"},
		},
		{
			"x:(@) \"+\" y:( @ ) -- #[cache] a ** b ++ c",
			[]TokenType{IdentToken, PunctToken, PunctToken, StringToken, IdentToken, PunctToken, PunctToken, PunctToken, PunctToken, IdentToken, PunctToken, IdentToken, PunctToken, IdentToken, PunctToken, IdentToken},
			[]string{"x", ":", "(@)", `"+"`, "y", ":", "(@)", "--", "#[", "cache", "]", "a", "**", "b", "++", "c"},
		},
		{
			"position!() quiet! { x } precedence!{",
			[]TokenType{MacroToken, PunctToken, PunctToken, MacroToken, IdentToken, PunctToken, MacroToken},
			[]string{"position!", "(", ")", "quiet!{", "x", "}", "precedence!{"},
		},
		{
			"x{2,5} y{3} z{,4} w{ 1 , } 42",
			[]TokenType{IdentToken, BoundToken, IdentToken, BoundToken, IdentToken, BoundToken, IdentToken, BoundToken, IntToken},
			[]string{"x", "2,5", "y", "3", "z", ",4", "w", "1,", "42"},
		},
		{
			`"one" { 1 } "two"{2} x { 1, }`,
			[]TokenType{StringToken, CodeToken, StringToken, BoundToken, IdentToken, CodeToken},
			[]string{`"one"`, " 1 ", `"two"`, "2", "x", " 1, "},
		},
		{
			`$("a") ( b ) a(b)`,
			[]TokenType{PunctToken, PunctToken, StringToken, PunctToken, PunctToken, IdentToken, PunctToken, IdentToken, PunctToken, IdentToken, PunctToken},
			[]string{"$", "(", `"a"`, ")", "(", "b", ")", "a", "(", "b", ")"},
		},
	}

	for _, s := range samples {
		tokens := lex(t, s.text).Tokens()
		Assert(t, len(tokens) == len(s.types)+1, "sample %q: expecting %d tokens, got %d", s.text, len(s.types)+1, len(tokens))
		for i, tok := range tokens[:len(s.types)] {
			Assert(t, tok.Type() == s.types[i], "sample %q, token %d: expecting %s, got %s", s.text, i, s.types[i], tok.Type())
			ExpectString(t, s.values[i], tok.Text())
		}
		ExpectInt(t, int(EOFToken), int(tokens[len(tokens)-1].Type()))
	}
}

func TestCodeBlocks(t *testing.T) {
	text := `a { if x { return "}" } ; return '{' } b {? v, err := f(`+"`{`"+`) // }
return v, err } c`
	tokens := lex(t, text).Tokens()
	ExpectInt(t, 6, len(tokens))

	ExpectInt(t, int(CodeToken), int(tokens[1].Type()))
	ExpectString(t, ` if x { return "}" } ; return '{' `, tokens[1].Text())
	ExpectInt(t, int(CondCodeToken), int(tokens[3].Type()))
	Assert(t, strings.HasPrefix(tokens[3].Text(), " v, err := f(`{`) // }\n"), "wrong conditional code: %q", tokens[3].Text())
	ExpectString(t, "c", tokens[4].Text())
	ExpectInt(t, 2, tokens[4].Line())
}

func TestTokenPositions(t *testing.T) {
	s := lex(t, "rule\n  x = { y }")
	expected := []struct{ line, col, end int }{
		{1, 1, 4},
		{2, 3, 8},
		{2, 5, 10},
		{2, 7, 16},
		{2, 12, 16},
	}
	for i, exp := range expected {
		tok := s.Token(i)
		ExpectInt(t, exp.line, tok.Line())
		ExpectInt(t, exp.col, tok.Col())
		ExpectInt(t, exp.end, tok.End())
		ExpectString(t, "test", tok.SourceName())
	}
	ExpectString(t, "2:7", s.PositionRepr(3))
	ExpectString(t, "x = { y }", s.ParseSlice(1, 4))
}

func TestStreamProtocol(t *testing.T) {
	s := lex(t, "grammar g")
	end, ok := s.ParseLiteral(0, "grammar")
	ExpectBool(t, true, ok)
	ExpectInt(t, 1, end)
	_, ok = s.ParseLiteral(1, "grammar")
	ExpectBool(t, false, ok)

	r := s.ParseElem(1)
	ExpectBool(t, true, r.IsMatched())
	ExpectString(t, "g", r.Value.Text())
	ExpectBool(t, true, s.ParseElem(2).IsFailed())
	ExpectBool(t, true, s.IsEOF(100))
}

func TestLexicalErrors(t *testing.T) {
	samples := []struct {
		src             string
		code, line, col int
	}{
		{"rule x =\n  %", WrongCharError, 2, 3},
		{"rule x = {\n  foo(", UnterminatedCodeError, 1, 10},
		{"'unterminated", WrongCharError, 1, 1},
	}

	for _, s := range samples {
		_, e := Lex(source.New("src", []byte(s.src)))
		ExpectErrorCode(t, s.code, e)
		ee := e.(*pegx.Error)
		Assert(t, ee.Line == s.line && ee.Col == s.col, "sample %q: expecting error at %d:%d, got %s", s.src, s.line, s.col, ee.Message)
	}
}
