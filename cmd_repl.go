package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"bigcalc/bigfloat"
	"bigcalc/calcconfig"
	"bigcalc/evaluator"
)

// replCmd implements the repl command: an interactive line-editing
// session built on chzyer/readline (history, arrow-key editing), reusing
// one Evaluator across lines the way spec.md's resource model calls for
// (preallocated stacks, reset-but-reused between calls) instead of
// building a fresh one per line.
type replCmd struct {
	prec uint
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive evaluation session" }
func (*replCmd) Usage() string {
	return `repl [-prec bits]:
  Start an interactive line-editing REPL. Type "exit" or Ctrl-D to quit.
`
}

func (cmd *replCmd) SetFlags(f *flag.FlagSet) {
	f.UintVar(&cmd.prec, "prec", calcconfig.DefaultPrec, "working precision in bits")
}

func (cmd *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to start REPL: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stdout(), "🤖 bigcalc REPL — type an expression, \"exit\" to quit")

	e := evaluator.New(bigfloat.NewContext(cmd.prec))
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return subcommands.ExitSuccess
			}
			fmt.Fprintf(rl.Stderr(), "💥 %v\n", err)
			return subcommands.ExitFailure
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return subcommands.ExitSuccess
		}

		result, err := e.RunRound(line, nil)
		if err != nil {
			printCalcError(line, err)
			continue
		}
		printResult(result)
	}
}
