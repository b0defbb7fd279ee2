// Package evaluator is the single-pass expression engine: a byte-level
// state machine that validates token adjacency fused directly with a
// shunting-yard operator-precedence stack, in one left-to-right scan with
// no separate tokenizer pass and no intermediate AST. Numbers are never
// pushed eagerly — a pending lexeme's bounds are tracked in locat and only
// converted to a bigfloat.BigFloat when an operator, a closing paren, or a
// terminator forces it, mirroring how the teacher's own single-pass
// lexer (lexer.Lexer) tracks position/readPosition and defers token
// materialization to the point a boundary is found.
package evaluator

import (
	"bigcalc/bigfloat"
	"bigcalc/calcerror"
	"bigcalc/render"
)

// stackCapacity is the preallocated capacity for the operand and operator
// stacks, reused across calls to avoid repeated allocation.
const stackCapacity = 32

// marker classifies the most recently accepted token, driving every
// adjacency check in step and its helpers.
type marker int

const (
	markerInit marker = iota
	markerNumber
	markerNegSub
	markerLParen
	markerRParen
	markerChar
	markerConst
	markerFunc
)

// state tracks whether the top of the evaluation awaits an operand or
// already holds one, which is what lets a binary operator, a closing
// paren, or a terminator know whether a pending number lexeme still needs
// flushing before it proceeds.
type state int

const (
	stateInitial state = iota
	stateOperator
	stateOperand
)

// Evaluator holds one reusable evaluation's state: the operand and
// operator stacks, the bracket-depth-to-function-call map, and the
// adjacency bookkeeping (marker, state, bracket, locat). Every exported
// method resets this state to its zero configuration before returning,
// whether it succeeds or fails, so the same Evaluator can be driven
// repeatedly without cross-call contamination.
type Evaluator struct {
	ctx *bigfloat.Context

	numbers   []bigfloat.BigFloat
	operators []byte
	functions map[uint]bigfloat.Func

	marker  marker
	state   state
	bracket uint
	locat   int

	// expectSign is true immediately after consuming an 'e'/'E'
	// exponent marker inside a number lexeme, so the very next '+' or
	// '-' is absorbed into the number instead of read as an operator.
	expectSign bool

	expr string
}

// New builds an Evaluator that performs every computation at ctx's
// precision. A single Evaluator is not safe for concurrent use, but
// independent Evaluators may share the same Context.
func New(ctx *bigfloat.Context) *Evaluator {
	return &Evaluator{
		ctx:       ctx,
		numbers:   make([]bigfloat.BigFloat, 0, stackCapacity),
		operators: make([]byte, 0, stackCapacity),
		functions: make(map[uint]bigfloat.Func),
	}
}

// reset clears every piece of per-call state. Called via defer from Run,
// so it runs on every return path: success, a mid-scan error, and the
// terminator's own error paths alike.
func (e *Evaluator) reset() {
	e.numbers = e.numbers[:0]
	e.operators = e.operators[:0]
	for k := range e.functions {
		delete(e.functions, k)
	}
	e.marker = markerInit
	e.state = stateInitial
	e.bracket = 0
	e.locat = 0
	e.expectSign = false
	e.expr = ""
}

// Run scans expr left to right and returns the single BigFloat it
// reduces to. A terminator byte ('=', '\n', '\r') ends the scan early;
// reaching end-of-input without one is treated identically, since the
// terminator check is really "is the machine in an accepting
// configuration", not "was a terminator byte present".
func (e *Evaluator) Run(expr string) (bigfloat.BigFloat, error) {
	e.expr = expr
	defer e.reset()

	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '=', '\n', '\r':
			return e.terminator(i)
		default:
			if err := e.step(i); err != nil {
				return bigfloat.BigFloat{}, err
			}
		}
	}
	return e.terminator(len(expr))
}

// RunRound composes Run with the renderer: digits == nil renders clean,
// otherwise it rounds half-up to *digits fractional places.
func (e *Evaluator) RunRound(expr string, digits *int) (string, error) {
	v, err := e.Run(expr)
	if err != nil {
		return "", err
	}
	if digits == nil {
		return render.Clean(v.Float()), nil
	}
	return render.Rounded(v.Float(), *digits)
}

// step dispatches one input byte that is not a terminator to the handler
// for its lexical class, absorbing an exponent sign first since that
// overrides every other interpretation of '+'/'-'.
func (e *Evaluator) step(i int) error {
	c := e.expr[i]

	expectingSign := e.expectSign
	e.expectSign = false
	if expectingSign && (c == '+' || c == '-') {
		return nil
	}

	switch c {
	case '(':
		return e.openParen(i)
	case ')':
		return e.closeParen(i)
	case '+', '-', '*', '/', '%', '^':
		return e.operator(i, c)
	case 'P', 'Y', 'C', 'L':
		return e.constant(i, c)
	case 'E':
		return e.exponentMarker(i)
	default:
		switch {
		case isDigit(c) || c == '.':
			return e.digit(i)
		case c == 'e':
			if e.marker == markerNumber {
				return e.exponentMarker(i)
			}
			return e.letter(i)
		case isLower(c):
			return e.letter(i)
		default:
			return calcerror.New(calcerror.OperatorUndefined, i)
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

// digit handles a byte belonging to a number lexeme's integer/fractional
// body: '0'-'9' or '.'.
func (e *Evaluator) digit(i int) error {
	switch e.marker {
	case markerRParen, markerConst, markerFunc:
		return calcerror.New(calcerror.ExpressionError, i)
	case markerNumber:
		return nil
	case markerNegSub:
		e.marker = markerNumber
		return nil
	default:
		e.locat = i
		e.marker = markerNumber
		return nil
	}
}

// exponentMarker handles 'e'/'E' immediately following a number lexeme's
// digits, absorbing it as the scientific-notation marker.
func (e *Evaluator) exponentMarker(i int) error {
	if e.marker != markerNumber {
		return calcerror.New(calcerror.ExpressionError, i)
	}
	e.expectSign = true
	return nil
}

// letter handles a lowercase byte that is part of a function name (or,
// when marker is already Func, continues one already in progress).
func (e *Evaluator) letter(i int) error {
	switch e.marker {
	case markerRParen, markerConst, markerNegSub, markerNumber:
		return calcerror.New(calcerror.ExpressionError, i)
	case markerFunc:
		return nil
	default:
		e.locat = i
		e.marker = markerFunc
		return nil
	}
}

// operator handles one of '+ - * / % ^'. A '-' whose predecessor is
// Init, LParen, or Char is the unary negative case: it is never pushed
// onto the operator stack, only remembered as the leading byte of the
// lexeme that follows.
func (e *Evaluator) operator(i int, c byte) error {
	if c == '-' {
		switch e.marker {
		case markerInit, markerLParen, markerChar:
			e.marker = markerNegSub
			e.locat = i
			return nil
		}
	}

	switch e.marker {
	case markerNumber, markerRParen, markerConst:
	default:
		return calcerror.New(calcerror.ExpressionError, i)
	}

	return e.applyShuntingYard(i, c)
}

// applyShuntingYard runs one step of the precedence-climbing engine for
// a binary operator at byte index i: flush a pending number, drain
// operators of priority >= op's, then push op.
func (e *Evaluator) applyShuntingYard(i int, op byte) error {
	if e.state == stateInitial || e.state == stateOperator {
		if err := e.flushNumber(i); err != nil {
			return err
		}
	}

	opPriority, err := priority(op)
	if err != nil {
		return err
	}
	for len(e.operators) > 0 {
		top := e.operators[len(e.operators)-1]
		if top == '(' {
			break
		}
		topPriority, err := priority(top)
		if err != nil {
			return err
		}
		if topPriority < opPriority {
			break
		}
		if err := e.popApply(); err != nil {
			return err
		}
	}

	e.operators = append(e.operators, op)
	e.state = stateOperator
	e.marker = markerChar
	e.locat = i + 1
	return nil
}

// openParen handles '('. If the bytes since locat name a function, its
// implementation is recorded against the depth this paren is about to
// open, so the matching ')' knows to apply it.
func (e *Evaluator) openParen(i int) error {
	if e.state != stateInitial && e.state != stateOperator {
		return calcerror.New(calcerror.ExpressionError, i)
	}
	if e.marker == markerNumber || e.marker == markerNegSub {
		return calcerror.New(calcerror.ExpressionError, i)
	}
	if e.marker == markerFunc {
		name := e.expr[e.locat:i]
		fn, ok := bigfloat.Functions[name]
		if !ok {
			return calcerror.New(calcerror.FunctionUndefined, e.locat)
		}
		e.functions[e.bracket+1] = fn
	}

	e.operators = append(e.operators, '(')
	e.bracket++
	e.marker = markerLParen
	e.locat = i + 1
	return nil
}

// closeParen handles ')': flush any pending number, drain operators back
// to the matching '(', apply a recorded function call if this paren was
// one, then pop the '(' itself.
func (e *Evaluator) closeParen(i int) error {
	if e.bracket == 0 {
		return calcerror.New(calcerror.ExpressionError, i)
	}
	if e.marker == markerNumber {
		if err := e.flushNumber(i); err != nil {
			return err
		}
	}
	if e.state != stateOperand {
		return calcerror.New(calcerror.ExpressionError, i)
	}

	for len(e.operators) > 0 && e.operators[len(e.operators)-1] != '(' {
		if err := e.popApply(); err != nil {
			return err
		}
	}
	if len(e.operators) == 0 {
		return calcerror.New(calcerror.ExpressionError, i)
	}

	if fn, ok := e.functions[e.bracket]; ok {
		if len(e.numbers) < 1 {
			return calcerror.New(calcerror.ExpressionError, i)
		}
		m := len(e.numbers)
		arg := e.numbers[m-1]
		e.numbers = e.numbers[:m-1]
		result, err := fn(e.ctx, arg)
		if err != nil {
			return err
		}
		e.numbers = append(e.numbers, result)
		delete(e.functions, e.bracket)
	}

	e.operators = e.operators[:len(e.operators)-1]
	e.bracket--
	e.marker = markerRParen
	e.state = stateOperand
	e.locat = i + 1
	return nil
}

// constant handles one of the four named-constant sigils 'P', 'Y', 'C',
// 'L'. A NegSub predecessor negates the materialized value, the same
// fold-into-the-next-lexeme treatment a number lexeme gets.
func (e *Evaluator) constant(i int, c byte) error {
	if e.state != stateInitial && e.state != stateOperator {
		return calcerror.New(calcerror.ExpressionError, i)
	}
	if e.marker == markerNumber || e.marker == markerFunc {
		return calcerror.New(calcerror.ExpressionError, i)
	}

	v := bigfloat.Constant(e.ctx, c)
	if e.marker == markerNegSub {
		negated, err := bigfloat.Neg(e.ctx, v)
		if err != nil {
			return err
		}
		v = negated
	}

	e.numbers = append(e.numbers, v)
	e.marker = markerConst
	e.state = stateOperand
	e.locat = i + 1
	return nil
}

// terminator handles end-of-expression, whether by an explicit
// terminator byte or by running off the end of the input: flush any
// pending number, drain the remaining operators, and report the single
// value left on the operand stack.
func (e *Evaluator) terminator(i int) (bigfloat.BigFloat, error) {
	if e.marker == markerInit {
		return bigfloat.BigFloat{}, calcerror.New(calcerror.EmptyExpression, i)
	}
	if e.bracket != 0 {
		return bigfloat.BigFloat{}, calcerror.New(calcerror.ExpressionError, i)
	}
	switch e.marker {
	case markerNegSub, markerChar, markerFunc:
		return bigfloat.BigFloat{}, calcerror.New(calcerror.ExpressionError, i)
	}

	if e.marker == markerNumber {
		if err := e.flushNumber(i); err != nil {
			return bigfloat.BigFloat{}, err
		}
	}

	for len(e.operators) > 0 {
		if err := e.popApply(); err != nil {
			return bigfloat.BigFloat{}, err
		}
	}

	if len(e.numbers) != 1 {
		return bigfloat.BigFloat{}, calcerror.New(calcerror.ExpressionError, i)
	}
	return e.numbers[0], nil
}

// flushNumber parses the pending lexeme e.expr[e.locat:end] and pushes
// it onto the operand stack.
func (e *Evaluator) flushNumber(end int) error {
	text := e.expr[e.locat:end]
	v, err := bigfloat.Parse(e.ctx, text)
	if err != nil {
		if ce, ok := err.(calcerror.CalcError); ok {
			return ce.WithOffset(e.locat)
		}
		return err
	}
	e.numbers = append(e.numbers, v)
	e.state = stateOperand
	return nil
}

// popApply pops the top operator and its two operands, applies the
// operator, and pushes the result back onto the operand stack.
func (e *Evaluator) popApply() error {
	n := len(e.operators)
	op := e.operators[n-1]
	e.operators = e.operators[:n-1]

	if len(e.numbers) < 2 {
		return calcerror.New(calcerror.ExpressionError, -1)
	}
	m := len(e.numbers)
	b := e.numbers[m-1]
	a := e.numbers[m-2]
	e.numbers = e.numbers[:m-2]

	var result bigfloat.BigFloat
	var err error
	switch op {
	case '+':
		result, err = bigfloat.Add(e.ctx, a, b)
	case '-':
		result, err = bigfloat.Sub(e.ctx, a, b)
	case '*':
		result, err = bigfloat.Mul(e.ctx, a, b)
	case '/':
		result, err = bigfloat.Div(e.ctx, a, b)
	case '%':
		result, err = bigfloat.Mod(e.ctx, a, b)
	case '^':
		result, err = bigfloat.Pow(e.ctx, a, b)
	default:
		return calcerror.New(calcerror.UnknownOperator, -1)
	}
	if err != nil {
		return err
	}
	e.numbers = append(e.numbers, result)
	return nil
}

// priority returns a binary operator's shunting-yard precedence. Every
// operator is left-associative, including '^': the engine drains the
// operator stack on '>=', not '>', which is what makes "2^3^2" group as
// "(2^3)^2".
func priority(op byte) (int, error) {
	switch op {
	case '+', '-':
		return 1, nil
	case '*', '/', '%':
		return 2, nil
	case '^':
		return 3, nil
	default:
		return 0, calcerror.New(calcerror.UnknownOperator, -1)
	}
}
