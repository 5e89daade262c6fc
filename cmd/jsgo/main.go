// Command jsgo is a minimal demo embedding host: it loads a YAML
// policy (operation ceiling, which default globals to expose), decodes
// a JSON AST file, evaluates it against an Interpreter wired with the
// default capability table, and prints the completion value. It is not
// a REPL, a source parser, or a test driver — it has no source-to-AST
// step of its own; feed it the output of an external parser.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/badlogic/jailjs/ast"
	"github.com/badlogic/jailjs/config"
	"github.com/badlogic/jailjs/defaults"
	"github.com/badlogic/jailjs/interpreter"
)

func main() {
	astPath := flag.String("ast", "", "path to a JSON AST file to evaluate")
	policyPath := flag.String("policy", "", "path to a YAML policy file (optional)")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	flag.Parse()

	if *astPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: jsgo -ast <program.json> [-policy policy.yaml]")
		os.Exit(1)
	}

	if *verbose {
		commonlog.SetMaxLevel(commonlog.Debug)
	}
	logger := commonlog.GetLogger("jsgo")

	var policy *config.Policy
	if *policyPath != "" {
		p, err := config.Load(*policyPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading policy: %v\n", err)
			os.Exit(1)
		}
		policy = p
	}

	data, err := os.ReadFile(*astPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading AST file: %v\n", err)
		os.Exit(1)
	}
	program, err := ast.DecodeProgram(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decoding AST: %v\n", err)
		os.Exit(1)
	}

	opts := []interpreter.Option{interpreter.WithLogger(logger)}
	if policy != nil && policy.MaxOps > 0 {
		opts = append(opts, interpreter.WithMaxOps(policy.MaxOps))
	}
	in := interpreter.New(opts...)

	if policy != nil {
		defaults.RegisterWithPolicy(in, policy.Allows)
	} else {
		defaults.Register(in)
	}

	result, err := in.Evaluate(program)
	if err != nil {
		fmt.Fprintf(os.Stderr, "evaluation error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(result.ToString())
}
