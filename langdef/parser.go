package langdef

import (
	"strconv"
	"strings"

	"github.com/ava12/pegx"
	"github.com/ava12/pegx/grammar"
	"github.com/ava12/pegx/lexer"
	"github.com/ava12/pegx/peg"
	"github.com/ava12/pegx/source"
)

// ParseString parses grammar description and returns a grammar on success.
// Returns nil and pegx.Error on error.
func ParseString(name, content string) (*grammar.Grammar, error) {
	return Parse(source.New(name, []byte(content)))
}

// ParseBytes parses grammar description and returns a grammar on success.
// Returns nil and pegx.Error on error.
func ParseBytes(name string, content []byte) (*grammar.Grammar, error) {
	return Parse(source.New(name, content))
}

// Parse parses grammar description and returns a grammar on success.
// Returns nil and pegx.Error on error.
func Parse(s *source.Source) (*grammar.Grammar, error) {
	stream, e := lexer.Lex(s)
	if e != nil {
		return nil, e
	}

	p := newParser(stream)
	g, e := peg.Finish(stream, p.err, p.file(stream.Start()))
	if p.fatal != nil {
		return nil, p.fatal
	}
	if e != nil {
		return nil, unexpectedInputError(stream, e.(*peg.ParseError))
	}

	g.SourceName = s.Name()
	e = checkNames(g)
	if e != nil {
		return nil, e
	}
	return g, nil
}

func checkNames(g *grammar.Grammar) error {
	rules := make(map[string]bool, len(g.Rules))
	for _, r := range g.Rules {
		if rules[r.Name] {
			return ruleDefinedError(r.Pos, r.Name)
		}
		rules[r.Name] = true

		params := make(map[string]bool, len(r.Params))
		for _, param := range r.Params {
			if params[param] {
				return paramDefinedError(r.Pos, r.Name, param)
			}
			params[param] = true
		}
	}
	return nil
}

var keywords = map[string]bool{
	"grammar":  true,
	"import":   true,
	"pub":      true,
	"requires": true,
	"rule":     true,
}

// parser matches token stream the same way generated parsers match their input:
// each method takes start position and returns a match or a failure,
// expected labels of the furthest failure are collected in err.
type parser struct {
	s     *lexer.Stream
	err   *peg.ErrorState
	fatal *pegx.Error
}

func newParser(s *lexer.Stream) *parser {
	return &parser{s: s, err: peg.NewErrorState(s.Start())}
}

func (p *parser) setFatal(e *pegx.Error) {
	if p.fatal == nil {
		p.fatal = e
	}
}

func at(t *lexer.Token) grammar.Node {
	return grammar.Node{At: t.Pos()}
}

func many[T any](pos int, item func(int) peg.RuleResult[T]) peg.RuleResult[[]T] {
	var res []T
	for {
		r := item(pos)
		if r.IsFailed() {
			return peg.Matched(pos, res)
		}

		res = append(res, r.Value)
		pos = r.Pos
	}
}

func list[T any](p *parser, pos int, item func(int) peg.RuleResult[T]) peg.RuleResult[[]T] {
	first := item(pos)
	if first.IsFailed() {
		return peg.Matched(pos, []T(nil))
	}

	res := []T{first.Value}
	pos = first.Pos
	for {
		sep := p.lit(pos, ",")
		if sep.IsFailed() {
			break
		}

		r := item(sep.Pos)
		if r.IsFailed() {
			break
		}

		res = append(res, r.Value)
		pos = r.Pos
	}
	return peg.Matched(pos, res)
}

func (p *parser) lit(pos int, text string) peg.RuleResult[struct{}] {
	return peg.Literal(p.err, p.s, pos, text)
}

func (p *parser) tok(pos int, tt lexer.TokenType) peg.RuleResult[*lexer.Token] {
	return peg.Class[*lexer.Token](p.err, p.s, pos, tt.String(), func(t *lexer.Token) bool {
		return t.Type() == tt
	})
}

// adjacent tells whether token at pos immediately follows the previous one.
func (p *parser) adjacent(pos int) bool {
	return pos > 0 && p.s.Token(pos).Pos().Pos() == p.s.Token(pos-1).End()
}

func (p *parser) name(pos int) peg.RuleResult[*lexer.Token] {
	return peg.Class[*lexer.Token](p.err, p.s, pos, lexer.IdentToken.String(), func(t *lexer.Token) bool {
		return t.Type() == lexer.IdentToken && !keywords[t.Text()]
	})
}

func (p *parser) str(pos int) peg.RuleResult[string] {
	return peg.Map(p.tok(pos, lexer.StringToken), func(_ int, t *lexer.Token) string {
		res, e := strconv.Unquote(t.Text())
		if e != nil {
			p.setFatal(wrongStringError(t, e))
		}
		return res
	})
}

func (p *parser) char(pos int) peg.RuleResult[rune] {
	return peg.Map(p.tok(pos, lexer.CharToken), func(_ int, t *lexer.Token) rune {
		text := t.Text()
		c, _, tail, e := strconv.UnquoteChar(text[1:len(text)-1], '\'')
		if e != nil || tail != "" {
			p.setFatal(wrongCharError(t))
		}
		return c
	})
}

// file = {import} ["requires" STRING ";"] header {rule}
func (p *parser) file(pos int) peg.RuleResult[*grammar.Grammar] {
	g := &grammar.Grammar{}
	imports := many(pos, p.importDecl)
	g.Imports = imports.Value
	pos = imports.Pos

	if r := p.requires(pos); r.IsMatched() {
		g.Requires = r.Value
		g.RequiresPos = p.s.Token(pos + 1).Pos()
		pos = r.Pos
	}

	g.Pos = p.s.Token(pos).Pos()
	h := p.header(pos, g)
	if h.IsFailed() {
		return peg.Failed[*grammar.Grammar]()
	}

	rules := many(h.Pos, p.rule)
	g.Rules = rules.Value
	return peg.Matched(rules.Pos, g)
}

// import = "import" [IDENT / "."] STRING [";"]
func (p *parser) importDecl(pos int) peg.RuleResult[grammar.Import] {
	kw := p.lit(pos, "import")
	if kw.IsFailed() {
		return peg.Failed[grammar.Import]()
	}

	var imp grammar.Import
	pos = kw.Pos
	if n := p.name(pos); n.IsMatched() {
		imp.Alias = n.Value.Text()
		pos = n.Pos
	} else if d := p.lit(pos, "."); d.IsMatched() {
		imp.Alias = "."
		pos = d.Pos
	}

	path := p.str(pos)
	if path.IsFailed() {
		return peg.Failed[grammar.Import]()
	}

	imp.Path = path.Value
	return peg.Matched(p.optSemicolon(path.Pos), imp)
}

// requires = "requires" STRING ";"
func (p *parser) requires(pos int) peg.RuleResult[string] {
	kw := p.lit(pos, "requires")
	if kw.IsFailed() {
		return peg.Failed[string]()
	}

	v := p.str(kw.Pos)
	if v.IsFailed() {
		return v
	}

	s := p.lit(v.Pos, ";")
	if s.IsFailed() {
		return peg.Failed[string]()
	}
	return peg.Matched(s.Pos, v.Value)
}

// header = "grammar" IDENT "for" type ["(" inputspec {"," inputspec} ")"] [";"]
func (p *parser) header(pos int, g *grammar.Grammar) peg.RuleResult[struct{}] {
	kw := p.lit(pos, "grammar")
	if kw.IsFailed() {
		return kw
	}

	n := p.name(kw.Pos)
	if n.IsFailed() {
		return peg.Failed[struct{}]()
	}

	f := p.lit(n.Pos, "for")
	if f.IsFailed() {
		return f
	}

	t := p.typ(f.Pos)
	if t.IsFailed() {
		return peg.Failed[struct{}]()
	}

	g.Name = n.Value.Text()
	g.Input = t.Value
	pos = t.Pos
	if o := p.lit(pos, "("); o.IsMatched() {
		specs := list(p, o.Pos, func(pos int) peg.RuleResult[struct{}] {
			return p.inputSpec(pos, g)
		})
		if len(specs.Value) == 0 {
			return peg.Failed[struct{}]()
		}

		c := p.lit(specs.Pos, ")")
		if c.IsFailed() {
			return c
		}
		pos = c.Pos
	}

	return peg.Matched(p.optSemicolon(pos), struct{}{})
}

// inputspec = ("element" / "slice") type
func (p *parser) inputSpec(pos int, g *grammar.Grammar) peg.RuleResult[struct{}] {
	target := &g.Element
	kw := p.lit(pos, "element")
	if kw.IsFailed() {
		target = &g.Slice
		kw = p.lit(pos, "slice")
		if kw.IsFailed() {
			return kw
		}
	}

	t := p.typ(kw.Pos)
	if t.IsFailed() {
		return peg.Failed[struct{}]()
	}

	*target = t.Value
	return peg.Matched(t.Pos, struct{}{})
}

func (p *parser) optSemicolon(pos int) int {
	if s := p.lit(pos, ";"); s.IsMatched() {
		return s.Pos
	}
	return pos
}

// typ returns source text of a Go type.
func (p *parser) typ(pos int) peg.RuleResult[string] {
	return peg.SliceOf[string](p.s, pos, p.typeExpr(pos))
}

// type = "*" type / "[" "]" type / "map" "[" type "]" type / ("struct" / "interface") "{}"
//
//	/ IDENT ["." IDENT] ["[" type {"," type} "]"]
func (p *parser) typeExpr(pos int) peg.RuleResult[struct{}] {
	if r := p.lit(pos, "*"); r.IsMatched() {
		return p.typeExpr(r.Pos)
	}

	if r := p.lit(pos, "["); r.IsMatched() {
		if c := p.lit(r.Pos, "]"); c.IsMatched() {
			return p.typeExpr(c.Pos)
		}
	}

	if r := p.lit(pos, "map"); r.IsMatched() {
		if o := p.lit(r.Pos, "["); o.IsMatched() {
			if k := p.typeExpr(o.Pos); k.IsMatched() {
				if c := p.lit(k.Pos, "]"); c.IsMatched() {
					return p.typeExpr(c.Pos)
				}
			}
		}
	}

	for _, kw := range []string{"struct", "interface"} {
		if r := p.lit(pos, kw); r.IsMatched() {
			if b := p.tok(r.Pos, lexer.CodeToken); b.IsMatched() && strings.TrimSpace(b.Value.Text()) == "" {
				return peg.Matched(b.Pos, struct{}{})
			}
		}
	}

	n := p.name(pos)
	if n.IsFailed() {
		return peg.Failed[struct{}]()
	}

	pos = n.Pos
	if d := p.lit(pos, "."); d.IsMatched() {
		q := p.name(d.Pos)
		if q.IsFailed() {
			return peg.Failed[struct{}]()
		}
		pos = q.Pos
	}

	if o := p.lit(pos, "["); o.IsMatched() {
		args := list(p, o.Pos, p.typeExpr)
		if len(args.Value) > 0 {
			if c := p.lit(args.Pos, "]"); c.IsMatched() {
				pos = c.Pos
			}
		}
	}

	return peg.Matched(pos, struct{}{})
}

// rule = {"#[" IDENT "]"} ["pub"] "rule" IDENT ["(" [IDENT {"," IDENT}] ")"] ["->" type] "=" body [";"]
func (p *parser) rule(pos int) peg.RuleResult[*grammar.Rule] {
	r := &grammar.Rule{}
	attrs := many(pos, p.attr)
	for _, a := range attrs.Value {
		switch a.Text() {
		case "cache":
			r.Cache = true
		case "no_eof":
			r.NoEOF = true
		default:
			p.setFatal(unknownAttributeError(a))
		}
	}

	pos = attrs.Pos
	if pub := p.lit(pos, "pub"); pub.IsMatched() {
		r.Public = true
		pos = pub.Pos
	}

	kw := p.lit(pos, "rule")
	if kw.IsFailed() {
		return peg.Failed[*grammar.Rule]()
	}

	n := p.name(kw.Pos)
	if n.IsFailed() {
		return peg.Failed[*grammar.Rule]()
	}

	r.Name = n.Value.Text()
	r.Pos = n.Value.Pos()
	pos = n.Pos
	if o := p.lit(pos, "("); o.IsMatched() {
		params := list(p, o.Pos, p.name)
		c := p.lit(params.Pos, ")")
		if c.IsFailed() {
			return peg.Failed[*grammar.Rule]()
		}

		for _, t := range params.Value {
			r.Params = append(r.Params, t.Text())
		}
		pos = c.Pos
	}

	if a := p.lit(pos, "->"); a.IsMatched() {
		t := p.typ(a.Pos)
		if t.IsFailed() {
			return peg.Failed[*grammar.Rule]()
		}

		r.Type = t.Value
		pos = t.Pos
	}

	eq := p.lit(pos, "=")
	if eq.IsFailed() {
		return peg.Failed[*grammar.Rule]()
	}

	b := p.body(eq.Pos)
	if b.IsFailed() {
		return peg.Failed[*grammar.Rule]()
	}

	r.Body = b.Value
	return peg.Matched(p.optSemicolon(b.Pos), r)
}

// attr = "#[" IDENT "]"
func (p *parser) attr(pos int) peg.RuleResult[*lexer.Token] {
	o := p.lit(pos, "#[")
	if o.IsFailed() {
		return peg.Failed[*lexer.Token]()
	}

	n := p.name(o.Pos)
	if n.IsFailed() {
		return n
	}

	c := p.lit(n.Pos, "]")
	if c.IsFailed() {
		return peg.Failed[*lexer.Token]()
	}
	return peg.Matched(c.Pos, n.Value)
}

// body = precedence / choice
func (p *parser) body(pos int) peg.RuleResult[grammar.Expr] {
	if r := p.precedence(pos); r.IsMatched() {
		return peg.Matched[grammar.Expr](r.Pos, r.Value)
	}
	return p.choice(pos)
}

// precedence = "precedence!{" level {"--" level} "}"
func (p *parser) precedence(pos int) peg.RuleResult[*grammar.PrecedenceBlock] {
	o := p.lit(pos, "precedence!{")
	if o.IsFailed() {
		return peg.Failed[*grammar.PrecedenceBlock]()
	}

	block := &grammar.PrecedenceBlock{Node: at(p.s.Token(pos))}
	pos = o.Pos
	for {
		l := p.level(pos)
		if l.IsFailed() {
			return peg.Failed[*grammar.PrecedenceBlock]()
		}

		block.Levels = append(block.Levels, l.Value)
		pos = l.Pos
		d := p.lit(pos, "--")
		if d.IsFailed() {
			break
		}
		pos = d.Pos
	}

	c := p.lit(pos, "}")
	if c.IsFailed() {
		return peg.Failed[*grammar.PrecedenceBlock]()
	}
	return peg.Matched(c.Pos, block)
}

// level = template {template}
func (p *parser) level(pos int) peg.RuleResult[*grammar.Level] {
	templates := many(pos, p.template)
	if len(templates.Value) == 0 {
		return peg.Failed[*grammar.Level]()
	}

	return peg.Matched(templates.Pos, &grammar.Level{Pos: p.s.Token(pos).Pos(), Templates: templates.Value})
}

// template = {item} action
func (p *parser) template(pos int) peg.RuleResult[*grammar.Action] {
	items := many(pos, p.item)
	a := p.action(items.Pos)
	if a.IsFailed() {
		return a
	}

	a.Value.At = p.s.Token(pos).Pos()
	a.Value.Items = items.Value
	return a
}

// action = CODE / CONDCODE
func (p *parser) action(pos int) peg.RuleResult[*grammar.Action] {
	code := peg.Class[*lexer.Token](p.err, p.s, pos, lexer.CodeToken.String(), func(t *lexer.Token) bool {
		return t.Type() == lexer.CodeToken || t.Type() == lexer.CondCodeToken
	})
	return peg.Map(code, func(_ int, t *lexer.Token) *grammar.Action {
		return &grammar.Action{Node: at(t), Code: t.Text(), Conditional: t.Type() == lexer.CondCodeToken}
	})
}

// choice = sequence {"/" sequence}
func (p *parser) choice(pos int) peg.RuleResult[grammar.Expr] {
	start := p.s.Token(pos)
	first := p.sequence(pos)
	if first.IsFailed() {
		return first
	}

	alts := []grammar.Expr{first.Value}
	pos = first.Pos
	for {
		s := p.lit(pos, "/")
		if s.IsFailed() {
			break
		}

		next := p.sequence(s.Pos)
		if next.IsFailed() {
			return next
		}

		alts = append(alts, next.Value)
		pos = next.Pos
	}

	if len(alts) == 1 {
		return peg.Matched(pos, alts[0])
	}
	return peg.Matched[grammar.Expr](pos, &grammar.Choice{Node: at(start), Alts: alts})
}

// sequence = {item} [action], not empty
func (p *parser) sequence(pos int) peg.RuleResult[grammar.Expr] {
	start := p.s.Token(pos)
	items := many(pos, p.item)
	if a := p.action(items.Pos); a.IsMatched() {
		a.Value.At = start.Pos()
		a.Value.Items = items.Value
		return peg.Matched[grammar.Expr](a.Pos, a.Value)
	}

	switch len(items.Value) {
	case 0:
		return peg.Failed[grammar.Expr]()
	case 1:
		return peg.Matched(items.Pos, items.Value[0])
	default:
		return peg.Matched[grammar.Expr](items.Pos, &grammar.Sequence{Node: at(start), Items: items.Value})
	}
}

// item = [IDENT ":"] prefixed
func (p *parser) item(pos int) peg.RuleResult[grammar.Expr] {
	if n := p.name(pos); n.IsMatched() {
		if c := p.lit(n.Pos, ":"); c.IsMatched() {
			if e := p.prefixed(c.Pos); e.IsMatched() {
				return peg.Matched[grammar.Expr](e.Pos, &grammar.Capture{Node: at(n.Value), Name: n.Value.Text(), Expr: e.Value})
			}
		}
	}
	return p.prefixed(pos)
}

// prefixed = "$" "(" choice ")" / "&" prefixed / "!" prefixed / suffixed
func (p *parser) prefixed(pos int) peg.RuleResult[grammar.Expr] {
	node := at(p.s.Token(pos))
	if d := p.lit(pos, "$"); d.IsMatched() {
		if e := p.group(d.Pos); e.IsMatched() {
			return peg.Matched[grammar.Expr](e.Pos, &grammar.Slice{Node: node, Expr: e.Value})
		}
		return peg.Failed[grammar.Expr]()
	}

	if a := p.lit(pos, "&"); a.IsMatched() {
		return peg.Map(p.prefixed(a.Pos), func(_ int, e grammar.Expr) grammar.Expr {
			return &grammar.PositiveLookahead{Node: node, Expr: e}
		})
	}

	if n := p.lit(pos, "!"); n.IsMatched() {
		return peg.Map(p.prefixed(n.Pos), func(_ int, e grammar.Expr) grammar.Expr {
			return &grammar.NegativeLookahead{Node: node, Expr: e}
		})
	}

	return p.suffixed(pos)
}

// suffixed = primary ["*" / "+" / "?" / BOUND / "**" primary / "++" primary]
func (p *parser) suffixed(pos int) peg.RuleResult[grammar.Expr] {
	e := p.primary(pos)
	if e.IsFailed() {
		return e
	}

	node := at(p.s.Token(pos))
	pos = e.Pos
	repeat := func(end, min, max int, sep grammar.Expr) peg.RuleResult[grammar.Expr] {
		return peg.Matched[grammar.Expr](end, &grammar.Repeat{Node: node, Expr: e.Value, Min: min, Max: max, Sep: sep})
	}

	if s := p.lit(pos, "*"); s.IsMatched() {
		return repeat(s.Pos, 0, grammar.Unbounded, nil)
	}

	if s := p.lit(pos, "+"); s.IsMatched() {
		return repeat(s.Pos, 1, grammar.Unbounded, nil)
	}

	if s := p.lit(pos, "?"); s.IsMatched() {
		return peg.Matched[grammar.Expr](s.Pos, &grammar.Optional{Node: node, Expr: e.Value})
	}

	if b := p.tok(pos, lexer.BoundToken); b.IsMatched() {
		min, max := p.bounds(b.Value)
		return repeat(b.Pos, min, max, nil)
	}

	for min, op := range []string{"**", "++"} {
		if s := p.lit(pos, op); s.IsMatched() {
			sep := p.primary(s.Pos)
			if sep.IsFailed() {
				return sep
			}
			return repeat(sep.Pos, min, grammar.Unbounded, sep.Value)
		}
	}

	return e
}

func (p *parser) bounds(t *lexer.Token) (min, max int) {
	text := t.Text()
	lo, hi, hasComma := strings.Cut(text, ",")
	var e error
	if lo != "" {
		min, e = strconv.Atoi(lo)
	}
	switch {
	case !hasComma:
		max = min
	case hi == "":
		max = grammar.Unbounded
	case e == nil:
		max, e = strconv.Atoi(hi)
	}

	if e != nil || (max != grammar.Unbounded && max < min) {
		p.setFatal(wrongBoundsError(t))
	}
	return
}

// primary = STRING / class / "position!" "(" ")" / "quiet!{" choice "}" / "expected!" "(" STRING ")"
//
//	/ call / "(@)" / "(" choice ")" / "@"
func (p *parser) primary(pos int) peg.RuleResult[grammar.Expr] {
	node := at(p.s.Token(pos))
	if s := p.str(pos); s.IsMatched() {
		return peg.Matched[grammar.Expr](s.Pos, &grammar.Literal{Node: node, Value: s.Value})
	}

	if c := p.class(pos); c.IsMatched() {
		return peg.Matched[grammar.Expr](c.Pos, c.Value)
	}

	if m := p.lit(pos, "position!"); m.IsMatched() {
		if o := p.lit(m.Pos, "("); o.IsMatched() {
			if c := p.lit(o.Pos, ")"); c.IsMatched() {
				return peg.Matched[grammar.Expr](c.Pos, &grammar.PositionMarker{Node: node})
			}
		}
		return peg.Failed[grammar.Expr]()
	}

	if m := p.lit(pos, "quiet!{"); m.IsMatched() {
		if e := p.choice(m.Pos); e.IsMatched() {
			if c := p.lit(e.Pos, "}"); c.IsMatched() {
				return peg.Matched[grammar.Expr](c.Pos, &grammar.Quiet{Node: node, Expr: e.Value})
			}
		}
		return peg.Failed[grammar.Expr]()
	}

	if m := p.lit(pos, "expected!"); m.IsMatched() {
		if o := p.lit(m.Pos, "("); o.IsMatched() {
			if s := p.str(o.Pos); s.IsMatched() {
				if c := p.lit(s.Pos, ")"); c.IsMatched() {
					return peg.Matched[grammar.Expr](c.Pos, &grammar.Expected{Node: node, Label: s.Value})
				}
			}
		}
		return peg.Failed[grammar.Expr]()
	}

	if c := p.call(pos); c.IsMatched() {
		return peg.Matched[grammar.Expr](c.Pos, c.Value)
	}

	if o := p.lit(pos, "(@)"); o.IsMatched() {
		return peg.Matched[grammar.Expr](o.Pos, &grammar.Operand{Node: node, Paren: true})
	}

	if g := p.group(pos); g.IsMatched() {
		return g
	}

	if o := p.lit(pos, "@"); o.IsMatched() {
		return peg.Matched[grammar.Expr](o.Pos, &grammar.Operand{Node: node})
	}

	return peg.Failed[grammar.Expr]()
}

// group = "(" choice ")"
func (p *parser) group(pos int) peg.RuleResult[grammar.Expr] {
	o := p.lit(pos, "(")
	if o.IsFailed() {
		return peg.Failed[grammar.Expr]()
	}

	e := p.choice(o.Pos)
	if e.IsFailed() {
		return e
	}

	c := p.lit(e.Pos, ")")
	if c.IsFailed() {
		return peg.Failed[grammar.Expr]()
	}
	return peg.Matched(c.Pos, e.Value)
}

// call = IDENT ["(" [choice {"," choice}] ")"], argument list must immediately follow rule name
func (p *parser) call(pos int) peg.RuleResult[*grammar.RuleRef] {
	n := p.name(pos)
	if n.IsFailed() {
		return peg.Failed[*grammar.RuleRef]()
	}

	ref := &grammar.RuleRef{Node: at(n.Value), Name: n.Value.Text()}
	pos = n.Pos
	if !p.adjacent(pos) {
		return peg.Matched(pos, ref)
	}

	o := p.lit(pos, "(")
	if o.IsFailed() {
		return peg.Matched(pos, ref)
	}

	args := list(p, o.Pos, p.choice)
	c := p.lit(args.Pos, ")")
	if c.IsFailed() {
		return peg.Failed[*grammar.RuleRef]()
	}

	ref.Args = args.Value
	return peg.Matched(c.Pos, ref)
}

// class = "[" ["^"] ("_" / CODE / classitem {classitem}) "]"
func (p *parser) class(pos int) peg.RuleResult[*grammar.Class] {
	o := p.lit(pos, "[")
	if o.IsFailed() {
		return peg.Failed[*grammar.Class]()
	}

	cls := &grammar.Class{Node: at(p.s.Token(pos))}
	pos = o.Pos
	if n := p.lit(pos, "^"); n.IsMatched() {
		cls.Negated = true
		pos = n.Pos
	}

	if u := p.lit(pos, "_"); u.IsMatched() {
		cls.Any = true
		pos = u.Pos
	} else if c := p.tok(pos, lexer.CodeToken); c.IsMatched() {
		cls.Code = strings.TrimSpace(c.Value.Text())
		pos = c.Pos
	} else {
		items := many(pos, p.classItem)
		if len(items.Value) == 0 {
			return peg.Failed[*grammar.Class]()
		}

		cls.Ranges = items.Value
		pos = items.Pos
	}

	c := p.lit(pos, "]")
	if c.IsFailed() {
		return peg.Failed[*grammar.Class]()
	}
	return peg.Matched(c.Pos, cls)
}

// classitem = CHAR ["-" CHAR]
func (p *parser) classItem(pos int) peg.RuleResult[grammar.CharRange] {
	lo := p.char(pos)
	if lo.IsFailed() {
		return peg.Failed[grammar.CharRange]()
	}

	if d := p.lit(lo.Pos, "-"); d.IsMatched() {
		if hi := p.char(d.Pos); hi.IsMatched() {
			if hi.Value < lo.Value {
				p.setFatal(wrongRangeError(p.s.Token(pos), lo.Value, hi.Value))
			}
			return peg.Matched(hi.Pos, grammar.CharRange{Lo: lo.Value, Hi: hi.Value})
		}
	}

	return peg.Matched(lo.Pos, grammar.CharRange{Lo: lo.Value, Hi: lo.Value})
}
