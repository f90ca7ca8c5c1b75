// Package codegen converts an analyzed grammar to Go source of a parser.
//
// Generated file contains a parser type holding input, error state, memo caches, and precedence climbers,
// one method per expanded rule, one method per action, and one entry function per public rule.
package codegen

import (
	"bytes"
	"fmt"
	"go/token"
	"path"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/tools/imports"

	"github.com/ava12/pegx/analysis"
	"github.com/ava12/pegx/grammar"
	"github.com/ava12/pegx/langdef"
	"github.com/ava12/pegx/source"
)

// DefaultRuntime is the import path of runtime package used by generated code.
const DefaultRuntime = "github.com/ava12/pegx/peg"

// Options control generated code. Empty fields get default values.
type Options struct {
	// Package is Go package name, default is grammar name.
	Package string

	// Type is parser type name, default is grammar name with "Parser" suffix.
	Type string

	// Runtime is import path of runtime package, default is DefaultRuntime.
	Runtime string

	// Header is a text put as a comment at the top of generated file, e.g. license notice.
	Header string
}

var identRe = regexp.MustCompile("^[A-Za-z_][A-Za-z_0-9]*$")

func (o Options) withDefaults(g *grammar.Grammar) (Options, error) {
	if o.Package == "" {
		o.Package = g.Name
	}
	if o.Type == "" {
		o.Type = g.Name + "Parser"
	}
	if o.Runtime == "" {
		o.Runtime = DefaultRuntime
	}

	if !identRe.MatchString(o.Package) || token.IsKeyword(o.Package) {
		return o, wrongOptionError("package name", o.Package)
	}
	if !identRe.MatchString(o.Type) || token.IsKeyword(o.Type) {
		return o, wrongOptionError("type name", o.Type)
	}
	return o, nil
}

// Compile parses grammar description, analyzes it, and generates formatted parser source.
// name is used in error messages and in generated file comment.
func Compile(name string, src []byte, opts Options) ([]byte, error) {
	g, e := langdef.ParseBytes(name, src)
	if e != nil {
		return nil, e
	}

	a, e := analysis.Analyze(g)
	if e != nil {
		return nil, e
	}

	return Generate(a, opts)
}

// Generate returns formatted parser source for analyzed grammar.
func Generate(a *analysis.Annotations, opts Options) ([]byte, error) {
	opts, e := opts.withDefaults(a.Grammar)
	if e != nil {
		return nil, e
	}

	g := &generator{a: a, opts: opts}
	src, e := g.generate()
	if e != nil {
		return nil, e
	}

	formatted, e := imports.Process(opts.Package+".go", src, &imports.Options{
		TabWidth:   8,
		TabIndent:  true,
		Comments:   true,
		FormatOnly: true,
	})
	if e != nil {
		return nil, errors.Wrapf(e, "cannot format parser for grammar %s", a.Grammar.Name)
	}
	return formatted, nil
}

type generator struct {
	a        *analysis.Annotations
	opts     Options
	rules    bytes.Buffer
	actions  bytes.Buffer
	nActions int
	nVars    int
	err      error
}

func (g *generator) setError(e error) {
	if g.err == nil {
		g.err = e
	}
}

func (g *generator) newVar(prefix string) string {
	g.nVars++
	return prefix + strconv.Itoa(g.nVars)
}

// exportName converts rule name to exported Go name.
func exportName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

func ruleMethod(ri *analysis.RuleInfo) string {
	return "rule" + exportName(ri.Name)
}

func cacheField(ri *analysis.RuleInfo) string {
	return "cache" + exportName(ri.Name)
}

func climbField(ri *analysis.RuleInfo) string {
	return "climb" + exportName(ri.Name)
}

func prefixMethod(ri *analysis.RuleInfo) string {
	return "prefix" + exportName(ri.Name)
}

func suffixMethod(ri *analysis.RuleInfo, power int) string {
	return "suffix" + exportName(ri.Name) + strconv.Itoa(power)
}

func (g *generator) constructor() string {
	return "new" + exportName(g.opts.Type)
}

func (g *generator) checkNames() error {
	names := map[string]bool{g.opts.Type: true, g.constructor(): true}
	for _, ri := range g.a.Rules {
		name := exportName(ri.Name)
		if names[name] {
			return nameConflictError(ri.Rule, name)
		}
		names[name] = true
	}
	return nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (g *generator) generate() ([]byte, error) {
	e := g.checkNames()
	if e != nil {
		return nil, e
	}

	for _, ri := range g.a.Rules {
		g.rule(ri)
	}
	if g.err != nil {
		return nil, g.err
	}

	var buf bytes.Buffer
	g.header(&buf)
	g.parserType(&buf)
	g.entries(&buf)
	buf.Write(g.rules.Bytes())
	buf.Write(g.actions.Bytes())
	return buf.Bytes(), nil
}

func (g *generator) header(buf *bytes.Buffer) {
	gr := g.a.Grammar
	if g.opts.Header != "" {
		for _, line := range strings.Split(strings.TrimRight(g.opts.Header, "\n"), "\n") {
			buf.WriteString(strings.TrimRight("// "+line, " ") + "\n")
		}
		buf.WriteString("\n")
	}

	from := "grammar " + gr.Name
	if gr.SourceName != "" {
		from = path.Base(gr.SourceName)
	}
	buf.WriteString("// Code generated by pegxgen from " + from + ". DO NOT EDIT.\n\n")
	buf.WriteString("package " + g.opts.Package + "\n\n")

	buf.WriteString("import (\n")
	for _, imp := range gr.Imports {
		if imp.Alias != "" {
			buf.WriteString(imp.Alias + " ")
		}
		buf.WriteString(strconv.Quote(imp.Path) + "\n")
	}
	if path.Base(g.opts.Runtime) != "peg" {
		buf.WriteString("peg ")
	}
	buf.WriteString(strconv.Quote(g.opts.Runtime) + "\n)\n\n")

	input := "*new(" + gr.Input + ")"
	buf.WriteString("var (\n_ peg.Parse = " + input + "\n")
	if g.a.Caps.Literal {
		buf.WriteString("_ peg.ParseLiteral = " + input + "\n")
	}
	if g.a.Caps.Elem {
		buf.WriteString("_ peg.ParseElem[" + g.a.Element + "] = " + input + "\n")
	}
	if g.a.Caps.Slice {
		buf.WriteString("_ peg.ParseSlice[" + g.a.Slice + "] = " + input + "\n")
	}
	buf.WriteString(")\n")
}

func (g *generator) parserType(buf *bytes.Buffer) {
	input := g.a.Grammar.Input
	fmt.Fprintf(buf, "\ntype %s struct {\ninput %s\nerr *peg.ErrorState\n", g.opts.Type, input)
	for _, ri := range g.a.Rules {
		if ri.Cached {
			fmt.Fprintf(buf, "%s peg.Cache[%s]\n", cacheField(ri), ri.Type)
		}
		if ri.Kind == analysis.PrecedenceClimbing {
			fmt.Fprintf(buf, "%s *peg.Climber[%s]\n", climbField(ri), ri.Type)
		}
	}
	buf.WriteString("}\n")

	fmt.Fprintf(buf, "\nfunc %s(input %s) *%s {\n", g.constructor(), input, g.opts.Type)
	fmt.Fprintf(buf, "p := &%s{input: input, err: peg.NewErrorState(input.Start())}\n", g.opts.Type)
	for _, ri := range g.a.Rules {
		if ri.Kind == analysis.PrecedenceClimbing {
			g.climberInit(buf, ri)
		}
	}
	buf.WriteString("return p\n}\n")
}

func (g *generator) entries(buf *bytes.Buffer) {
	input := g.a.Grammar.Input
	for _, ri := range g.a.Rules {
		if !ri.Public() {
			continue
		}

		name := exportName(ri.Name)
		finish, what := "Finish", "the whole input"
		if ri.Rule.NoEOF {
			finish, what = "FinishPrefix", "a prefix of input"
		}
		fmt.Fprintf(buf, "\n// %s parses %s with rule %s.\n", name, what, ri.Name)
		fmt.Fprintf(buf, "func %s(input %s) (%s, error) {\n", name, input, ri.Type)
		fmt.Fprintf(buf, "p := %s(input)\n", g.constructor())
		fmt.Fprintf(buf, "return peg.%s(input, p.err, p.%s(input.Start()))\n}\n", finish, ruleMethod(ri))
	}
}

func (g *generator) rule(ri *analysis.RuleInfo) {
	g.nVars = 0
	var body string
	if ri.Kind == analysis.PrecedenceClimbing {
		g.climber(ri)
		body = "p." + climbField(ri) + ".Climb(pos, 0)"
	} else {
		body = g.exprAs(ri.Body, "pos", nil, ri.Type)
	}

	name := ruleMethod(ri)
	if ri.Args != nil {
		args := make([]string, len(ri.Args))
		for i, arg := range ri.Args {
			args[i] = oneLine(arg.String())
		}
		fmt.Fprintf(&g.rules, "\n// %s matches %s(%s).", name, ri.Rule.Name, strings.Join(args, ", "))
	}
	fmt.Fprintf(&g.rules, "\nfunc (p *%s) %s(pos int) peg.RuleResult[%s] {\n", g.opts.Type, name, ri.Type)
	if ri.Cached {
		fmt.Fprintf(&g.rules, "return p.%s.Memo(pos, func(pos int) peg.RuleResult[%s] {\nreturn %s\n})\n}\n", cacheField(ri), ri.Type, body)
	} else {
		fmt.Fprintf(&g.rules, "return %s\n}\n", body)
	}
}

func (g *generator) checkLabel(pos source.Pos, name string) {
	if token.IsKeyword(name) {
		g.setError(labelNameError(pos, name))
	}
}
