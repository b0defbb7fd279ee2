package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"bigcalc/bigfloat"
	"bigcalc/calcconfig"
	"bigcalc/evaluator"
	"bigcalc/program"
	"bigcalc/render"
)

// evalCmd implements the eval command: one-shot evaluation with clean
// (shortest, trailing-zero-stripped) rendering.
type evalCmd struct {
	prec    uint
	backend string
}

func (*evalCmd) Name() string     { return "eval" }
func (*evalCmd) Synopsis() string { return "Evaluate an arithmetic expression, clean rendering" }
func (*evalCmd) Usage() string {
	return `eval [-prec bits] [-backend tree|bytecode] <expression>:
  Evaluate expression and print its value, shortest-form decimal.
`
}

func (cmd *evalCmd) SetFlags(f *flag.FlagSet) {
	f.UintVar(&cmd.prec, "prec", calcconfig.DefaultPrec, "working precision in bits")
	f.StringVar(&cmd.backend, "backend", string(calcconfig.BackendTree), "execution backend: tree or bytecode")
}

func (cmd *evalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 expression not provided\n")
		return subcommands.ExitUsageError
	}
	expr := strings.Join(args, " ")

	cfg := calcconfig.Config{Prec: cmd.prec, Backend: calcconfig.Backend(cmd.backend)}

	precCtx := bigfloat.NewContext(cfg.Prec)

	if cfg.Backend == calcconfig.BackendBytecode {
		result, err := program.Eval(precCtx, expr)
		if err != nil {
			printCalcError(expr, err)
			return subcommands.ExitFailure
		}
		printResult(render.Clean(result.Float()))
		return subcommands.ExitSuccess
	}

	e := evaluator.New(precCtx)
	result, err := e.RunRound(expr, nil)
	if err != nil {
		printCalcError(expr, err)
		return subcommands.ExitFailure
	}
	printResult(result)
	return subcommands.ExitSuccess
}
