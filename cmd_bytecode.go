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
	"bigcalc/program"
	"bigcalc/render"
)

// bytecodeCmd compiles an expression through the secondary bytecode
// backend, dumps its disassembly, and runs it — the spirit of the
// teacher's cmd_emit_bytecode.go, aimed at this module's expression
// grammar instead of a full scripting language's statement list.
type bytecodeCmd struct {
	prec uint
}

func (*bytecodeCmd) Name() string { return "bytecode" }
func (*bytecodeCmd) Synopsis() string {
	return "Compile an expression to the secondary VM backend and disassemble it"
}
func (*bytecodeCmd) Usage() string {
	return `bytecode [-prec bits] <expression>:
  Compile expression via the bytecode backend, print the disassembly,
  then execute it and print the result.
`
}

func (cmd *bytecodeCmd) SetFlags(f *flag.FlagSet) {
	f.UintVar(&cmd.prec, "prec", calcconfig.DefaultPrec, "working precision in bits")
}

func (cmd *bytecodeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 expression not provided\n")
		return subcommands.ExitUsageError
	}
	expr := strings.Join(args, " ")

	precCtx := bigfloat.NewContext(cmd.prec)
	prog, err := program.Compile(precCtx, expr)
	if err != nil {
		printCalcError(expr, err)
		return subcommands.ExitFailure
	}

	fmt.Print(program.Disassemble(prog))

	result, err := program.NewVM(precCtx).Run(prog)
	if err != nil {
		printCalcError(expr, err)
		return subcommands.ExitFailure
	}
	printResult(render.Clean(result.Float()))
	return subcommands.ExitSuccess
}
