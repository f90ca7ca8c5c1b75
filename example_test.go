package pegx_test

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/ava12/pegx/codegen"
)

func Example() {
	grammar := `
grammar words for peg.Str

pub rule words -> []string = w:word ** " " { w }

rule word -> string = $(['a'-'z']+)
`
	src, e := codegen.Compile("words.peg", []byte(grammar), codegen.Options{})
	if e != nil {
		fmt.Println(e)
		return
	}

	s := bufio.NewScanner(bytes.NewReader(src))
	for s.Scan() {
		if strings.HasPrefix(s.Text(), "func ") {
			fmt.Println(s.Text())
		}
	}

	// Output:
	// func newWordsParser(input peg.Str) *wordsParser {
	// func Words(input peg.Str) ([]string, error) {
	// func (p *wordsParser) ruleWords(pos int) peg.RuleResult[[]string] {
	// func (p *wordsParser) ruleWord(pos int) peg.RuleResult[string] {
	// func (*wordsParser) action1(w []string) []string {
}
