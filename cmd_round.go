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
)

// roundCmd implements the round command: one-shot evaluation with
// half-up rounding to a caller-chosen fractional digit count.
type roundCmd struct {
	prec   uint
	digits int
}

func (*roundCmd) Name() string     { return "round" }
func (*roundCmd) Synopsis() string { return "Evaluate an arithmetic expression, rounded rendering" }
func (*roundCmd) Usage() string {
	return `round [-prec bits] [-digits N] <expression>:
  Evaluate expression and print its value rounded half-up to N
  fractional digits (1 <= N <= 700).
`
}

func (cmd *roundCmd) SetFlags(f *flag.FlagSet) {
	f.UintVar(&cmd.prec, "prec", calcconfig.DefaultPrec, "working precision in bits")
	f.IntVar(&cmd.digits, "digits", calcconfig.DefaultDigits, "fractional digits to round to (1-700)")
}

func (cmd *roundCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 expression not provided\n")
		return subcommands.ExitUsageError
	}
	expr := strings.Join(args, " ")

	cfg := calcconfig.Config{Prec: cmd.prec, Digits: cmd.digits, Rounded: true, Backend: calcconfig.BackendTree}

	e := evaluator.New(bigfloat.NewContext(cfg.Prec))
	digits := cfg.Digits
	result, err := e.RunRound(expr, &digits)
	if err != nil {
		printCalcError(expr, err)
		return subcommands.ExitFailure
	}
	printResult(result)
	return subcommands.ExitSuccess
}
