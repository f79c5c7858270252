package rpn

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why an expression could not be evaluated.
type ErrorKind int

const (
	EmptyExpression ErrorKind = iota + 1
	InvalidToken
	InsufficientOperands
	DivisionByZero
	NumericOverflow
	TooManyOperands
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyExpression:
		return "EmptyExpression"
	case InvalidToken:
		return "InvalidToken"
	case InsufficientOperands:
		return "InsufficientOperands"
	case DivisionByZero:
		return "DivisionByZero"
	case NumericOverflow:
		return "NumericOverflow"
	case TooManyOperands:
		return "TooManyOperands"
	default:
		return "Unknown"
	}
}

// ParseErrorKind parses a kind name. Both "DivisionByZero" and
// "division_by_zero" spellings are accepted, case-insensitively.
func ParseErrorKind(s string) (ErrorKind, bool) {
	norm := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(s))
	for k := EmptyExpression; k <= TooManyOperands; k++ {
		if strings.ToLower(k.String()) == norm {
			return k, true
		}
	}
	return 0, false
}

// Error is returned by the evaluator for every invalid expression.
type Error struct {
	Kind ErrorKind

	// Token is the offending token text, empty for EmptyExpression and
	// TooManyOperands.
	Token string

	// Offset is the byte offset of Token in the input, -1 when the error is not
	// tied to a token.
	Offset int

	// Depth is the operand stack depth when the error was detected.
	Depth int

	// Err is the underlying parse error for NumericOverflow.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case EmptyExpression:
		return "empty expression"
	case InvalidToken:
		return fmt.Sprintf("invalid token %q", e.Token)
	case InsufficientOperands:
		if e.Token == "" {
			return "insufficient operands: no value remains"
		}
		return fmt.Sprintf("insufficient operands for %q: have %d, need 2", e.Token, e.Depth)
	case DivisionByZero:
		return "division by zero"
	case NumericOverflow:
		return fmt.Sprintf("number out of range %q", e.Token)
	case TooManyOperands:
		return fmt.Sprintf("too many operands: %d values remain", e.Depth)
	default:
		return "invalid expression"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so the package
// sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrEmptyExpression      = &Error{Kind: EmptyExpression, Offset: -1}
	ErrInvalidToken         = &Error{Kind: InvalidToken, Offset: -1}
	ErrInsufficientOperands = &Error{Kind: InsufficientOperands, Offset: -1}
	ErrDivisionByZero       = &Error{Kind: DivisionByZero, Offset: -1}
	ErrNumericOverflow      = &Error{Kind: NumericOverflow, Offset: -1}
	ErrTooManyOperands      = &Error{Kind: TooManyOperands, Offset: -1}
)

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
