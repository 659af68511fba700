// Command davc compiles a Dav source file into C.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"github.com/dav-lang/davc/pkg/dav"
	"github.com/pborman/getopt"
)

func main() {
	var (
		output     string
		dumpTokens bool
		help       bool
	)

	getopt.StringVarLong(&output, "output", 'o', "write generated C to PATH (default: stdout)", "PATH")
	getopt.BoolVarLong(&dumpTokens, "dump-tokens", 0, "print the lexed token stream instead of compiling")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("SOURCE [OUTPUT]")

	getopt.Parse()

	if help {
		getopt.PrintUsage(os.Stdout)
		return
	}

	args := getopt.Args()
	if len(args) != 1 && len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Expected one or two arguments: source file [output file]")
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}
	source := args[0]

	// The second positional argument is the output path, matching the
	// reference driver's "compiler input.dav output.c" contract; -o/--output
	// is a flag-style alternative to it and loses if both are given.
	if len(args) == 2 {
		output = args[1]
	}

	if dumpTokens {
		os.Exit(runDumpTokens(source))
	}
	os.Exit(runCompile(source, output))
}

func runDumpTokens(source string) int {
	f, err := os.Open(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer f.Close()

	lexer := dav.NewLexer(f, source)
	toks, arena, err := lexer.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	type dumpedToken struct {
		Kind  string
		Value string
		Line  int
		Col   int
	}

	for _, t := range toks {
		repr.Println(dumpedToken{Kind: t.Kind.String(), Value: t.Value(arena), Line: t.Line, Col: t.Col})
	}
	return 0
}

func runCompile(source, output string) int {
	result, err := dav.CompileFile(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	for _, d := range result.Diagnostics {
		fmt.Fprintln(os.Stderr, d.String())
	}
	if len(result.Diagnostics) != 0 {
		return 1
	}

	if output == "" {
		fmt.Print(result.C)
		return 0
	}

	if err := dav.WriteOutput(output, result.C); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
