package sample

import (
	"os"
	"testing"

	"github.com/ava12/pegx/codegen"
	. "github.com/ava12/pegx/internal/test"
	"github.com/ava12/pegx/peg"
)

func TestGeneratedFileIsUpToDate(t *testing.T) {
	src, e := os.ReadFile("sample.peg")
	ExpectNoError(t, e)
	expected, e := os.ReadFile("sample.go")
	ExpectNoError(t, e)

	got, e := codegen.Compile("sample.peg", src, codegen.Options{})
	ExpectNoError(t, e)
	Assert(t, string(got) == string(expected), "sample.go differs from generated code:\n%s", got)
}

type failure struct {
	location string
	expected []string
}

func expectFailure(t *testing.T, input string, f failure, e error) {
	t.Helper()
	pe, is := e.(*peg.ParseError)
	Assert(t, is, "input %q: expecting *peg.ParseError, got %v", input, e)
	ExpectString(t, f.location, pe.Location)
	if f.expected != nil {
		ExpectStrings(t, f.expected, pe.Expected)
	}
}

func TestOrderedChoiceIsLeftBiased(t *testing.T) {
	r, e := Bias("a")
	ExpectNoError(t, e)
	ExpectString(t, "a", r)

	// first alternative wins, the longer one is never tried
	_, e = Bias("ab")
	expectFailure(t, "ab", failure{"1:2", []string{peg.EOFLabel}}, e)
}

func TestBoundedRepetition(t *testing.T) {
	samples := []struct {
		input string
		count int
	}{
		{"xx", 2},
		{"xxx", 3},
		{"xxxx", 4},
		{"xxxxx", 4},
		{"xxxxxxxx", 4},
		{"xxy", 2},
	}

	for _, s := range samples {
		n, e := Upto(peg.Str(s.input))
		ExpectNoError(t, e)
		ExpectInt(t, s.count, n)
	}

	failures := []struct {
		input    string
		location string
	}{
		{"", "1:1"},
		{"x", "1:2"},
		{"xy", "1:2"},
	}
	for _, f := range failures {
		_, e := Upto(peg.Str(f.input))
		expectFailure(t, f.input, failure{f.location, []string{`"x"`}}, e)
	}
}

func TestLookaheadsAreZeroWidth(t *testing.T) {
	r, e := Peek("ab")
	ExpectNoError(t, e)
	ExpectString(t, "ab", r)

	_, e = Peek("b")
	expectFailure(t, "b", failure{"1:1", []string{`"a"`}}, e)

	r, e = Other("a")
	ExpectNoError(t, e)
	ExpectString(t, "a", r)

	_, e = Other("b")
	expectFailure(t, "b", failure{"1:1", nil}, e)

	_, e = Other("")
	expectFailure(t, "", failure{"1:1", []string{"[_]"}}, e)
}

func TestFurthestFailure(t *testing.T) {
	_, e := Alt("ac")
	ExpectNoError(t, e)

	_, e = Alt("ax")
	expectFailure(t, "ax", failure{"1:2", []string{`"b"`, `"c"`}}, e)
	ExpectInt(t, 1, e.(*peg.ParseError).Offset)
	ExpectString(t, `error at 1:2: expected one of "b", "c"`, e.Error())
}

func TestMemoizedLeftRecursionDoesNotGrow(t *testing.T) {
	n, e := Sum("7")
	ExpectNoError(t, e)
	ExpectInt(t, 7, n)

	_, e = Sum("1+2")
	expectFailure(t, "1+2", failure{"1:2", []string{peg.EOFLabel}}, e)
}
