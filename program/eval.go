package program

import "bigcalc/bigfloat"

// Eval compiles expr and runs it in one call, for callers that don't
// need the intermediate Program (the eval subcommand's -backend bytecode
// path; the bytecode subcommand disassembles, so it calls Compile and Run
// separately).
func Eval(ctx *bigfloat.Context, expr string) (bigfloat.BigFloat, error) {
	prog, err := Compile(ctx, expr)
	if err != nil {
		return bigfloat.BigFloat{}, err
	}
	return NewVM(ctx).Run(prog)
}
