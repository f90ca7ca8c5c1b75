package codegen

import (
	"github.com/ava12/pegx"
	"github.com/ava12/pegx/grammar"
	"github.com/ava12/pegx/source"
)

const (
	WrongOptionError = pegx.GeneratorErrors + iota
	TypeMismatchError
	NameConflictError
	LabelNameError
)

func wrongOptionError(option, value string) *pegx.Error {
	return pegx.FormatError(WrongOptionError, "incorrect %s: %q", option, value)
}

func typeMismatchError(e grammar.Expr, got, want string) *pegx.Error {
	return pegx.FormatErrorPos(e.Pos(), TypeMismatchError, "%s yields %s, %s expected", e.String(), got, want)
}

func nameConflictError(r *grammar.Rule, name string) *pegx.Error {
	return pegx.FormatErrorPos(r.Pos, NameConflictError, "rule %q conflicts with generated name %s", r.Name, name)
}

func labelNameError(pos source.Pos, name string) *pegx.Error {
	return pegx.FormatErrorPos(pos, LabelNameError, "label %q is a Go keyword", name)
}
