// Package calcerror defines the error values produced by the evaluator,
// the bigfloat arithmetic layer, and the decimal renderer.
//
// Every failure the calculator can produce is one of a small, closed set
// of Kinds. Unlike the teacher's per-package error types
// (parser.SyntaxError, interpreter.RuntimeError, compiler.SemanticError),
// this package collapses them into a single flat CalcError: the
// specification's error model has no notion of lexing/parsing/running as
// separate phases, only a single evaluation that fails at one of a fixed
// set of points.
package calcerror

import "fmt"

// Kind classifies a CalcError. The zero value is UnknownOperator.
type Kind uint8

const (
	// UnknownOperator means a byte reached the priority lookup that is
	// not one of + - * / % ^. Indicates a bug in the evaluator: every
	// byte pushed onto the operator stack has already passed the
	// lexical alphabet check.
	UnknownOperator Kind = iota
	// OperatorUndefined means the input contained a byte outside the
	// accepted lexical alphabet.
	OperatorUndefined
	// ExpressionError means an adjacency rule was violated: an
	// unmatched ')', a terminator reached in a non-accepting
	// configuration, or a token following a predecessor that doesn't
	// permit it.
	ExpressionError
	// FunctionUndefined means an identifier immediately before '(' is
	// not in the function table.
	FunctionUndefined
	// InvalidNumber means a lexeme that should parse as a number
	// failed to do so.
	InvalidNumber
	// EmptyExpression means a terminator was reached while the marker
	// was still at its initial value.
	EmptyExpression
	// DivideByZero means '/' or '%' was applied with a zero divisor.
	DivideByZero
	// ParameterError means a function argument fell outside that
	// function's domain.
	ParameterError
	// BeyondAccuracy means a computed value is non-finite or its
	// magnitude exceeds the precision context's cap.
	BeyondAccuracy
	// Custom carries a one-off message; currently only used for the
	// renderer's out-of-range digit count.
	Custom
	// UnknownError is a reserved internal guard; it should never
	// surface from valid code paths.
	UnknownError
)

// messages holds the stable, user-visible string for every Kind except
// Custom, whose message is supplied by the caller at construction time.
var messages = map[Kind]string{
	UnknownOperator:   "Unknown Operator",
	OperatorUndefined: "Operator Undefined",
	ExpressionError:   "Expression Error",
	FunctionUndefined: "Function Undefined",
	InvalidNumber:     "Invalid Number",
	EmptyExpression:   "Empty Expression",
	DivideByZero:      "Divide By Zero",
	ParameterError:    "Parameter Error",
	BeyondAccuracy:    "Beyond Accuracy",
	UnknownError:      "Unknown Error",
}

// CalcError is the single error type returned by every exported operation
// in this module.
//
// Offset is the byte index into the evaluated expression where the
// failure was detected, or -1 when not applicable (e.g. a renderer
// error, which has no source expression). It is never part of the
// stable Error() string — only Kind's message is — so callers that
// compare error text across versions are unaffected by it; a CLI can
// still use it to print a caret under the offending byte.
type CalcError struct {
	Kind    Kind
	Message string
	Offset  int
}

// New builds a CalcError of the given Kind at the given byte offset,
// using the Kind's stable message.
func New(kind Kind, offset int) CalcError {
	return CalcError{Kind: kind, Message: messages[kind], Offset: offset}
}

// Newf builds a Custom CalcError carrying a caller-supplied message.
func Newf(format string, args ...any) CalcError {
	return CalcError{Kind: Custom, Message: fmt.Sprintf(format, args...), Offset: -1}
}

// Error implements the error interface. The returned string is part of
// the stable external interface for every Kind but Custom.
func (e CalcError) Error() string {
	return e.Message
}

// WithOffset returns a copy of e with Offset replaced. Used by callers
// that construct an error deep in a callee (e.g. a BigFloat parse
// failure) and want to report it at the byte position meaningful to
// their own caller (e.g. the start of the pending number lexeme) instead.
func (e CalcError) WithOffset(offset int) CalcError {
	e.Offset = offset
	return e
}

// Is reports whether e is of the given Kind. It takes a Kind rather than
// an error, so errors.Is does not call it; callers obtain the CalcError
// with a type assertion or errors.As and then call Is on it.
func (e CalcError) Is(kind Kind) bool {
	return e.Kind == kind
}
