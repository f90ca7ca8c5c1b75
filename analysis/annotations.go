package analysis

import (
	"github.com/ava12/pegx/grammar"
	"github.com/ava12/pegx/peg"
)

// RuleKind tells how a rule is matched.
type RuleKind int

const (
	Plain RuleKind = iota
	Memoized
	PrecedenceClimbing
)

var ruleKindNames = [...]string{
	Plain:              "plain",
	Memoized:           "memoized",
	PrecedenceClimbing: "precedence climbing",
}

func (k RuleKind) String() string {
	return ruleKindNames[k]
}

// RuleInfo describes a rule of expanded grammar.
// Rules with parameters are expanded into a separate RuleInfo per distinct argument list,
// rules with parameters never used are omitted.
type RuleInfo struct {
	Index int

	// Name is unique Go-compatible rule name.
	Name string

	Rule *grammar.Rule

	// Body is Rule.Body with parameter references replaced with arguments.
	Body grammar.Expr

	// Args contains arguments of parameterized rule expansion, nil otherwise.
	Args []grammar.Expr

	Kind   RuleKind
	Cached bool

	// LeftRecursive is set for memoized rules taking part in left recursion.
	LeftRecursive bool

	// Type is Go type of rule value, declared or inferred.
	Type string

	Nullable   bool
	Infallible bool

	parent *RuleInfo
	key    string
}

// Public tells whether the rule gets entry function.
func (ri *RuleInfo) Public() bool {
	return ri.Rule.Public
}

// ExprInfo contains computed properties of an expression.
type ExprInfo struct {
	// Nullable expression may succeed without consuming input.
	Nullable bool

	// Infallible expression never fails.
	Infallible bool

	// Type is Go type of expression value.
	Type string
}

// TemplateKind is a role of precedence template.
type TemplateKind int

const (
	Atom TemplateKind = iota
	Prefix
	Postfix
	Infix
)

var templateKindNames = [...]string{
	Atom:    "atom",
	Prefix:  "prefix",
	Postfix: "postfix",
	Infix:   "infix",
}

func (k TemplateKind) String() string {
	return templateKindNames[k]
}

// Template is a classified precedence template.
type Template struct {
	Action *grammar.Action
	Kind   TemplateKind

	// Items are template items without leading and trailing operands.
	Items []grammar.Expr

	// Left and Right are labels bound to operands, empty if operand is not labeled or absent.
	Left, Right string
}

// Level is a precedence level with binding power.
type Level struct {
	Power     int
	Assoc     peg.Assoc
	Templates []Template
}

// Table describes a precedence block.
type Table struct {
	Levels []Level
}

// Capabilities lists input capabilities used by grammar.
type Capabilities struct {
	Literal, Elem, Slice bool
}

// Annotations are computed once by Analyze and are read-only afterwards.
type Annotations struct {
	Grammar *grammar.Grammar

	// Rules contains expanded rules, source rules go first in declaration order.
	Rules []*RuleInfo

	// Element and Slice are Go types of input element and input slice, empty if unknown.
	Element, Slice string

	Caps Capabilities

	exprs   map[grammar.Expr]*ExprInfo
	tables  map[*grammar.PrecedenceBlock]*Table
	targets map[*grammar.RuleRef]*RuleInfo
	names   map[string]*RuleInfo
}

func newAnnotations(g *grammar.Grammar) *Annotations {
	return &Annotations{
		Grammar: g,
		exprs:   make(map[grammar.Expr]*ExprInfo),
		tables:  make(map[*grammar.PrecedenceBlock]*Table),
		targets: make(map[*grammar.RuleRef]*RuleInfo),
		names:   make(map[string]*RuleInfo),
	}
}

// Rule returns expanded rule by name or nil.
func (a *Annotations) Rule(name string) *RuleInfo {
	return a.names[name]
}

// Info returns properties of an expression of expanded rule body.
// Returns empty properties for unknown expressions.
func (a *Annotations) Info(e grammar.Expr) ExprInfo {
	if info := a.exprs[e]; info != nil {
		return *info
	}
	return ExprInfo{}
}

func (a *Annotations) info(e grammar.Expr) *ExprInfo {
	info := a.exprs[e]
	if info == nil {
		info = &ExprInfo{}
		a.exprs[e] = info
	}
	return info
}

// Table returns precedence table of a block or nil.
func (a *Annotations) Table(b *grammar.PrecedenceBlock) *Table {
	return a.tables[b]
}

// Target returns rule invoked by a reference or nil.
func (a *Annotations) Target(ref *grammar.RuleRef) *RuleInfo {
	return a.targets[ref]
}
