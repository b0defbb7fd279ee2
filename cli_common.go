package main

import (
	"fmt"
	"os"
	"strings"

	"bigcalc/calcerror"
	"bigcalc/termwrap"
)

// printResult writes a successfully rendered value to stdout, wrapping
// it to the terminal width when stdout is a TTY and to
// termwrap.DefaultWidth columns otherwise, matching the teacher's
// plain fmt.Fprintf diagnostics elsewhere in the CLI layer.
func printResult(s string) {
	width := termwrap.Width(int(os.Stdout.Fd()))
	fmt.Println(termwrap.Wrap(s, width))
}

// printCalcError reports a failure to stderr, 💥-prefixed in the
// teacher's style, and draws a caret under the offending byte when the
// error carries a usable Offset.
func printCalcError(expr string, err error) {
	ce, ok := err.(calcerror.CalcError)
	if !ok {
		fmt.Fprintf(os.Stderr, "💥 %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "💥 %s\n", ce.Error())
	if ce.Offset >= 0 && ce.Offset <= len(expr) {
		fmt.Fprintln(os.Stderr, expr)
		fmt.Fprintln(os.Stderr, strings.Repeat(" ", ce.Offset)+"^")
	}
}
