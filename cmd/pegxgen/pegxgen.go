/*
pegxgen is a console utility translating grammar description to Go parser source.
Usage is

	pegxgen [-p <name>] [-t <name>] [-r <path>] [-o <name>] [-v] <file>

-o <name> defines output file name, default is the name of input file with .go suffix;

-p <name> defines Go package name, default is directory name of output file;

-t <name> defines generated parser type name, default is grammar name with "Parser" suffix;

-r <path> defines import path of runtime package, default is github.com/ava12/pegx/peg;

-v prints analysis summary to stderr;

<file> defines grammar definition file parsable by langdef.Parse().
*/
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ava12/pegx/analysis"
	"github.com/ava12/pegx/codegen"
	"github.com/ava12/pegx/langdef"
)

var (
	verbose                 bool
	inFileName, outFileName string
	opts                    codegen.Options
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage is  pegxgen [-p <name>] [-t <name>] [-r <path>] [-o <name>] [-v] <file>")
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), "  <file>")
		fmt.Fprintln(flag.CommandLine.Output(), "\tgrammar definition file name")
	}

	flag.StringVar(&outFileName, "o", "", "output file name, default is the name of input file with .go suffix")
	flag.StringVar(&opts.Package, "p", "", "Go package name, default is dir name of output file")
	flag.StringVar(&opts.Type, "t", "", "parser type name, default is grammar name with \"Parser\" suffix")
	flag.StringVar(&opts.Runtime, "r", "", "runtime package import path, default is "+codegen.DefaultRuntime)
	flag.BoolVar(&verbose, "v", false, "print analysis summary to stderr")
	flag.Parse()
	inFileName = flag.Arg(0)
	if inFileName == "" {
		flag.Usage()
		os.Exit(2)
	}

	if outFileName == "" {
		outFileName = defaultOutput(inFileName)
	}

	var logger *slog.Logger
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	e := generate(inFileName, outFileName, opts, logger)
	if e != nil {
		fmt.Println(e.Error())
		os.Exit(3)
	}
}

func defaultOutput(inName string) string {
	ext := filepath.Ext(inName)
	return inName[:len(inName)-len(ext)] + ".go"
}

func dirPackage(outName string) (string, error) {
	dir, e := filepath.Abs(outName)
	if e != nil {
		return "", errors.Wrapf(e, "cannot resolve %s", outName)
	}

	return filepath.Base(filepath.Dir(dir)), nil
}

// generate compiles grammar file inName to Go file outName, logger may be nil.
func generate(inName, outName string, opts codegen.Options, logger *slog.Logger) error {
	if opts.Package == "" {
		pkg, e := dirPackage(outName)
		if e != nil {
			return e
		}
		opts.Package = pkg
	}

	src, e := os.ReadFile(inName)
	if e != nil {
		return errors.Wrap(e, "cannot read grammar")
	}

	g, e := langdef.ParseBytes(inName, src)
	if e != nil {
		return e
	}

	a, e := analysis.Analyze(g)
	if e != nil {
		return e
	}
	if logger != nil {
		summarize(logger, a)
	}

	content, e := codegen.Generate(a, opts)
	if e != nil {
		return e
	}

	e = os.WriteFile(outName, content, 0o666)
	if e != nil {
		return errors.Wrapf(e, "cannot write %s", outName)
	}

	if logger != nil {
		logger.Info("parser generated", "file", outName, "package", opts.Package, "bytes", len(content))
	}
	return nil
}

func summarize(logger *slog.Logger, a *analysis.Annotations) {
	logger.Info("grammar analyzed",
		"grammar", a.Grammar.Name,
		"input", a.Grammar.Input,
		"rules", len(a.Rules),
		"literal", a.Caps.Literal,
		"element", a.Caps.Elem,
		"slice", a.Caps.Slice,
	)
	for _, ri := range a.Rules {
		logger.Debug("rule", "name", ri.Name, "kind", ri.Kind.String(), "type", ri.Type,
			"nullable", ri.Nullable, "infallible", ri.Infallible, "left_recursive", ri.LeftRecursive)
	}
}
