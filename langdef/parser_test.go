package langdef

import (
	"strconv"
	"strings"
	"testing"

	"github.com/ava12/pegx"
	. "github.com/ava12/pegx/internal/test"
	"github.com/ava12/pegx/lexer"
	"github.com/ava12/pegx/source"
)

const header = "grammar g for peg.Str\n"

func checkErrorCode(t *testing.T, samples []string, code int) {
	t.Helper()
	for index, src := range samples {
		errPrefix := "input #" + strconv.Itoa(index)
		_, e := Parse(source.New("string", []byte(src)))

		if code == 0 {
			if e != nil {
				t.Error(errPrefix + ": unexpected error: " + e.Error())
			}
			continue
		}

		if e == nil {
			t.Error(errPrefix + ": error expected, got success")
			continue
		}

		pe, is := e.(*pegx.Error)
		if !is {
			t.Error(errPrefix + ": pegx.Error expected, got \"" + e.Error() + "\"")
			continue
		}

		if pe.Code != code {
			t.Error(errPrefix + ": expected error code " + strconv.Itoa(code) + ", got " + strconv.Itoa(pe.Code) + ": " + pe.Message)
		}
	}
}

func TestCorrectSamples(t *testing.T) {
	samples := []string{
		header + `rule a = "a"`,
		header + `rule a = "a"; rule b = a;`,
		"grammar g for peg.Bytes; pub rule a() -> []byte = $([_]*)",
		"grammar g for *Tokens (element *Token, slice []*Token) rule a = [{c.Kind == 1}]",
		header + `#[cache] #[no_eof] pub rule a -> map[string][]int = { nil }`,
		header + `rule a -> struct{} = "x" {}`,
		header + `rule a = "x" {
			if true {
				return "}"
			}
			return ""
		}`,
	}
	checkErrorCode(t, samples, 0)
}

func TestUnexpectedInput(t *testing.T) {
	samples := []string{
		"",
		"rule a = b",
		"grammar",
		"grammar g for",
		"grammar rule for peg.Str",
		header + "rule",
		header + "rule a",
		header + "rule a = ",
		header + "rule a = foo!()",
		header + "rule rule = a",
		header + "rule a = b rule c",
		header + "rule a = precedence!{ }",
		header + "rule a = precedence!{ x:@ \"+\" }",
		header + "rule a = []",
		header + "rule a = b(",
		"requires \"v1\" grammar g for peg.Str",
	}
	checkErrorCode(t, samples, UnexpectedInputError)
}

func TestSemanticErrors(t *testing.T) {
	checkErrorCode(t, []string{header + `rule a = "x" rule a = "y"`}, RuleDefinedError)
	checkErrorCode(t, []string{header + `rule a(x, x) = x`}, ParamDefinedError)
	checkErrorCode(t, []string{header + `#[inline] rule a = "x"`}, UnknownAttributeError)
	checkErrorCode(t, []string{header + `rule a = "\q"`}, WrongStringError)
	checkErrorCode(t, []string{header + `rule a = ['ab']`}, WrongCharError)
	checkErrorCode(t, []string{header + `rule a = ['z'-'a']`}, WrongRangeError)
	checkErrorCode(t, []string{header + `rule a = "x"{3,1}`}, WrongBoundsError)
	checkErrorCode(t, []string{header + `rule a = %`}, lexer.WrongCharError)
}

func TestErrorPosition(t *testing.T) {
	_, e := ParseString("sample", header+`rule x = "a" / ;`)
	ExpectErrorCode(t, UnexpectedInputError, e)
	pe := e.(*pegx.Error)
	ExpectInt(t, 2, pe.Line)
	ExpectInt(t, 16, pe.Col)
	ExpectString(t, "sample", pe.SourceName)
	Assert(t, strings.HasPrefix(pe.Message, "expected one of "), "wrong message: %s", pe.Message)
	found := false
	for _, label := range pe.Expected {
		found = found || label == "identifier"
	}
	Assert(t, found, "expecting identifier in %v", pe.Expected)

	_, e = ParseString("sample", header+"rule x = ")
	pe = e.(*pegx.Error)
	Assert(t, strings.HasSuffix(pe.Message, "at end of input in sample at line 2 col 10"), "wrong message: %s", pe.Message)
}

func TestGrammarHeader(t *testing.T) {
	src := `
import "strconv"
import u "unicode";
requires "v0.1.0";
grammar arith for *Tokens (element *Token, slice []*Token);
`
	g, e := ParseString("arith.peg", src)
	ExpectNoError(t, e)
	ExpectString(t, "arith", g.Name)
	ExpectString(t, "arith.peg", g.SourceName)
	ExpectString(t, "*Tokens", g.Input)
	ExpectString(t, "*Token", g.Element)
	ExpectString(t, "[]*Token", g.Slice)
	ExpectString(t, "v0.1.0", g.Requires)
	ExpectInt(t, 2, len(g.Imports))
	ExpectString(t, "strconv", g.Imports[0].Path)
	ExpectString(t, "", g.Imports[0].Alias)
	ExpectString(t, "unicode", g.Imports[1].Path)
	ExpectString(t, "u", g.Imports[1].Alias)
	ExpectInt(t, 0, len(g.Rules))
}

func TestRuleStructure(t *testing.T) {
	src := header + `
pub rule expr -> int = precedence!{
	x:(@) "+" y:@ { x + y }
	--
	n:number { n }
}
rule number -> int = s:$(['0'-'9']+) {? strconv.Atoi(s) }
#[cache] rule list(x) = x ** "," / "[" x{2,3} "]"
rule ws = quiet!{[' ' '\t']*} expected!("space") position!() &"a" ![_] [^{u.IsSpace(c)}] list(ws) (a / b)?
rule call = a(b) a (b) c ++ d e{2,} f{,1} g{4}
`
	expected := []string{
		`pub rule expr -> int = precedence!{x:(@) "+" y:@ { x + y } -- n:number { n }}`,
		`rule number -> int = s:$(['0'-'9']+) {? strconv.Atoi(s) }`,
		`#[cache] rule list(x) = x ** "," / "[" x{2,3} "]"`,
		`rule ws = quiet!{[' ' '\t']*} expected!("space") position!() &"a" ![_] [^{u.IsSpace(c)}] list(ws) (a / b)?`,
		`rule call = a(b) a b c ++ d e{2,} f{0,1} g{4}`,
	}

	g, e := ParseString("", src)
	ExpectNoError(t, e)
	ExpectInt(t, len(expected), len(g.Rules))
	for i, r := range g.Rules {
		ExpectString(t, expected[i], r.String())
	}

	r := g.Rule("number")
	Assert(t, r != nil, "rule number not found")
	ExpectInt(t, 8, r.Pos.Line())
	ExpectInt(t, 6, r.Pos.Col())
	Assert(t, g.Rule("missing") == nil, "unexpected rule")
}
