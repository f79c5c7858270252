package rpn

// Operator is one of the binary arithmetic operators understood by the evaluator.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
)

// ParseOperator returns the operator spelled by s.
func ParseOperator(s string) (Operator, bool) {
	switch s {
	case "+":
		return OpAdd, true
	case "-":
		return OpSub, true
	case "*":
		return OpMul, true
	case "/":
		return OpDiv, true
	default:
		return 0, false
	}
}

// String returns the operator symbol.
func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		panic(op)
	}
}

// Name returns the lower-case operator name used in configuration.
func (op Operator) Name() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	default:
		panic(op)
	}
}

// Apply reduces the left operand a and the right operand b.
// Division by an exact zero (including negative zero) is an error,
// any other divisor is used as is.
func (op Operator) Apply(a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if b == 0 {
			return 0, &Error{Kind: DivisionByZero, Token: op.String(), Offset: -1}
		}
		return a / b, nil
	default:
		panic(op)
	}
}
