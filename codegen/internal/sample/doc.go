// Package sample holds small parsers generated from sample.peg.
// Each entry function exercises one matching rule of generated code.
package sample

//go:generate go run github.com/ava12/pegx/cmd/pegxgen sample.peg
