// Package playground evaluates RPN expressions embedded in OpenAPI documents
// and turns evaluation errors into user-facing diagnostics.
package playground

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/speakeasy-api/rpn"
)

// SchemaError is a failed x-rpn-const evaluation.
type SchemaError struct {
	Location string
	Expr     string
	Err      error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %v", e.Location, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// FormatEvalError turns an evaluation error into a message with a caret under
// the offending token and a hint on how to fix the expression.
func FormatEvalError(input string, err error) string {
	var b strings.Builder
	writeEvalError(&b, input, err, "")
	return b.String()
}

// FormatSchemaErrors renders every failed schema evaluation.
func FormatSchemaErrors(errs []*SchemaError) string {
	if len(errs) == 0 {
		return "Constant evaluation failed, but no additional details were provided."
	}

	var b strings.Builder
	b.WriteString("Constant evaluation failed.\n")
	for _, e := range errs {
		writeEvalError(&b, e.Expr, e.Err, e.Location)
	}
	return b.String()
}

func writeEvalError(b *strings.Builder, input string, err error, location string) {
	msg, hint := classifyAndHint(err)

	fmt.Fprintf(b, "- %s\n", msg)
	if location != "" {
		fmt.Fprintf(b, "  Location: %s\n", location)
	}
	b.WriteString(caret(input, err))
	if hint != "" {
		fmt.Fprintf(b, "  How to fix: %s\n", hint)
	}
	fmt.Fprintf(b, "  Details: %v\n", err)
}

// caret returns the source line holding the offending token with a marker
// line under it, both indented by two spaces. Column positions use display
// width, so wide characters before the token keep the marker aligned.
func caret(input string, err error) string {
	var e *rpn.Error
	if !errors.As(err, &e) || e.Offset < 0 || e.Offset > len(input) {
		return ""
	}
	start := strings.LastIndexByte(input[:e.Offset], '\n') + 1
	end := len(input)
	if i := strings.IndexByte(input[e.Offset:], '\n'); i >= 0 {
		end = e.Offset + i
	}

	line := flatten(input[start:end])
	pad := runewidth.StringWidth(flatten(input[start:e.Offset]))
	width := runewidth.StringWidth(e.Token)
	if width == 0 {
		width = 1
	}
	return "  " + line + "\n  " + strings.Repeat(" ", pad) + strings.Repeat("^", width) + "\n"
}

// flatten replaces control white space with single spaces so every byte
// before the token occupies one column.
func flatten(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\r' || r == '\v' || r == '\f' {
			return ' '
		}
		return r
	}, s)
}

func classifyAndHint(err error) (msg, hint string) {
	var e *rpn.Error
	if !errors.As(err, &e) {
		return "Evaluation error.", ""
	}
	switch e.Kind {
	case rpn.EmptyExpression:
		msg = "The expression is empty."
		hint = `Write operands followed by their operator, e.g. "2 3 +".`
	case rpn.InvalidToken:
		msg = fmt.Sprintf("Unknown token %q.", e.Token)
		hint = "Only numbers and the operators + - * / are allowed. Separate every token with white space."
	case rpn.InsufficientOperands:
		if e.Token == "" {
			msg = "No value remains on the stack."
		} else {
			msg = fmt.Sprintf("Operator %q needs two operands but the stack holds %d.", e.Token, e.Depth)
		}
		hint = `Push both operands before the operator, e.g. "2 3 +" instead of "2 + 3".`
	case rpn.DivisionByZero:
		msg = "Division by zero."
		hint = `The value right before "/" must not be zero.`
	case rpn.NumericOverflow:
		msg = fmt.Sprintf("Number %q is out of range.", e.Token)
		hint = "Use literals between about 5e-324 and 1.8e308 in magnitude, or 0."
	case rpn.TooManyOperands:
		msg = fmt.Sprintf("%d values remain on the stack, expected exactly one.", e.Depth)
		hint = `Add operators until a single value remains, e.g. "1 2 3 + +".`
	default:
		msg = "Evaluation error."
	}
	return msg, hint
}
