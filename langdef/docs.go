/*
Package langdef converts textual grammar description to grammar.Grammar structure.

Grammar is described using PEG notation with embedded Go code. Self-definition of this language is:
*/
//  file       = {import} ["requires" STRING ";"] "grammar" IDENT "for" type [inputspec] [";"] {rule} EOF;
//  import     = "import" [IDENT | "."] STRING [";"];
//  inputspec  = "(" ("element" | "slice") type {"," ("element" | "slice") type} ")";
//  rule       = {"#[" IDENT "]"} ["pub"] "rule" IDENT ["(" [IDENT {"," IDENT}] ")"] ["->" type] "=" body [";"];
//  body       = precedence / choice;
//  precedence = "precedence!{" level {"--" level} "}";
//  level      = template {template};
//  template   = {item} CODE;
//  choice     = sequence {"/" sequence};
//  sequence   = {item} [CODE / CONDCODE];
//  item       = [IDENT ":"] prefixed;
//  prefixed   = "$" "(" choice ")" / "&" prefixed / "!" prefixed / suffixed;
//  suffixed   = primary ["*" / "+" / "?" / BOUND / "**" primary / "++" primary];
//  primary    = STRING / class / "position!" "(" ")" / "quiet!{" choice "}" / "expected!" "(" STRING ")"
//             / IDENT ["(" [choice {"," choice}] ")"] / "(@)" / "(" choice ")" / "@";
//  class      = "[" ["^"] ("_" / CODE / CHAR ["-" CHAR] {CHAR ["-" CHAR]}) "]";
//  type       = "*" type / "[" "]" type / "map" "[" type "]" type / ("struct" / "interface") "{" "}"
//             / IDENT ["." IDENT] ["[" type {"," type} "]"];
/*
Description must be a valid UTF-8 text. Line breaks are insignificant.
Description may contain Go-style line and block comments.

STRING is a Go interpreted or raw string literal, CHAR is a Go rune literal, IDENT is a Go identifier.
Words grammar, import, pub, requires, and rule are reserved and cannot be used as rule names.

CODE is a Go code enclosed in curly braces, braces inside code must be balanced (braces inside string
and rune literals and comments are ignored). CONDCODE is a CODE starting with "?" right after opening brace.
BOUND is a CODE containing repetition bounds only: {n}, {n,}, {,m}, {n,m}, with opening brace
written right after the repeated item. A brace block separated by whitespace is always CODE,
so "x" { 1 } is an action returning 1 while "x"{1} is a repetition.

Imports are copied to generated file. Directive
   requires "v0.3.0";
makes generator reject the grammar if generator version is lower than required.

Grammar header names the grammar and parser input type. Inputs peg.Str and peg.Bytes are built in,
custom input types must declare element type (to use classes) and slice type (to use $(...)):
   grammar json for MyTokens (element *Token, slice []*Token);

Rule is a named parsing expression. Public rules (marked with pub) get entry functions in generated code.
Attributes:
   #[cache]  - memoize rule results by start position, required for left-recursive rules;
   #[no_eof] - entry function of a public rule does not require the whole input to be consumed.

Rules may have parameters, parameter names are used as rule references inside rule body,
arguments are arbitrary expressions, e.g.
   rule list(x) = x ** ","
   rule names = list(name)
Argument list must immediately follow rule name: foo(bar) is a call, foo (bar) is a sequence.

Expressions:
   "text"       literal;
   ['a'-'z' '_'] element class, [^...] matches elements outside the class, [_] matches any element,
                [{c != '\n'}] matches elements satisfying Go expression (element is bound to c);
   e1 e2        sequence;
   e1 / e2      ordered choice: the first matching alternative wins;
   e* e+ e?     repetitions and option, e{n,m} repeats e from n to m times;
   e ** sep     zero or more e separated with sep, e ++ sep - one or more;
   &e !e        positive and negative lookahead, both never consume input;
   $(e)         matched part of input;
   label:e      binds value of e to label, visible in action code of enclosing sequence;
   position!()  current position;
   quiet!{e}    matches e, failures inside e are not reported;
   expected!("x") always fails reporting "x" as expected;
   e {code}     action: code is a Go expression or a function body returning rule value;
   e {?code}    conditional action: code returns value and error, non-nil error fails the match
                reporting error text as expected.

Precedence block defines operator-precedence rule. Levels are listed from the weakest to the strongest
and separated with "--". Each level contains templates, each template ends with an action.
Operand placeholders @ and (@) stand for operands, (@) on the left of an infix operator makes the level
left-associative, on the right side - right-associative. Template without operands defines an atom,
template with a single trailing operand defines a prefix operator, with a single leading operand -
a postfix operator, e.g.
   rule expr -> int = precedence!{
       x:(@) "+" y:@ { x + y }
       x:(@) "-" y:@ { x - y }
       --
       x:@ "^" y:(@) { pow(x, y) }
       --
       "-" x:@ { -x }
       --
       n:number { n }
       "(" e:expr ")" { e }
   }
*/
package langdef
