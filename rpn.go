// Package rpn evaluates arithmetic expressions in Reverse Polish Notation.
//
// Operands precede their operators, so "2 3 +" is 2 + 3 and "5 1 2 + -" is
// 5 - (1 + 2). Tokens are separated by any run of white space. A token is a
// number if strconv.ParseFloat accepts it in full, otherwise it must be one
// of the operators + - * /.
//
//	v, err := rpn.Evaluate("15 7 1 1 + - / 3 *")
//	if errors.Is(err, rpn.ErrDivisionByZero) {
//		// ...
//	}
package rpn

import "strconv"

var defaultEvaluator = New()

// Evaluate evaluates a postfix expression and returns its value, or an *Error
// describing the first violation found. It performs no I/O and is safe for
// concurrent use.
func Evaluate(input string) (float64, error) {
	return defaultEvaluator.Evaluate(input)
}

// Evaluator evaluates expressions with the configured options. An Evaluator
// holds no per-evaluation state and may be shared between goroutines.
type Evaluator struct {
	log Logger
}

// New creates an Evaluator. Without options, DefaultOptions is used.
func New(opts ...Options) *Evaluator {
	opt := DefaultOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	return &Evaluator{log: opt.logger()}
}

// Step records the operand stack right after one token was applied.
type Step struct {
	Token Token
	// Op is the applied operator; meaningful only when IsOp is true.
	Op    Operator
	IsOp  bool
	Stack []float64
}

// Evaluate evaluates a postfix expression.
func (e *Evaluator) Evaluate(input string) (float64, error) {
	return e.run(input, nil)
}

// Trace evaluates input like Evaluate and also returns the stack after every
// token. When evaluation fails, the steps before the failing token are
// returned along with the error.
func (e *Evaluator) Trace(input string) ([]Step, float64, error) {
	var steps []Step
	v, err := e.run(input, func(s Step) { steps = append(steps, s) })
	return steps, v, err
}

func (e *Evaluator) run(input string, trace func(Step)) (float64, error) {
	if isBlank(input) {
		return 0, e.fail(&Error{Kind: EmptyExpression, Offset: -1})
	}

	tokens := Tokenize(input)
	stack := newOperandStack(len(tokens))

	for _, tok := range tokens {
		v, res, err := parseNumber(tok.Text)
		switch res {
		case number:
			stack.push(v)
			e.log.Debugf("push %s depth=%d", tok.Text, stack.len())
			if trace != nil {
				trace(Step{Token: tok, Stack: stack.snapshot()})
			}
			continue
		case outOfRange:
			return 0, e.fail(&Error{Kind: NumericOverflow, Token: tok.Text, Offset: tok.Offset, Depth: stack.len(), Err: err})
		}

		op, ok := ParseOperator(tok.Text)
		if !ok {
			return 0, e.fail(&Error{Kind: InvalidToken, Token: tok.Text, Offset: tok.Offset, Depth: stack.len()})
		}
		if stack.len() < 2 {
			return 0, e.fail(&Error{Kind: InsufficientOperands, Token: tok.Text, Offset: tok.Offset, Depth: stack.len()})
		}

		b := stack.pop()
		a := stack.pop()
		r, err := op.Apply(a, b)
		if err != nil {
			// Report the depth before the operands were popped.
			return 0, e.fail(&Error{Kind: DivisionByZero, Token: tok.Text, Offset: tok.Offset, Depth: stack.len() + 2})
		}
		stack.push(r)
		e.log.Debugf("reduce %s %s %s = %s depth=%d", formatFloat(a), op, formatFloat(b), formatFloat(r), stack.len())
		if trace != nil {
			trace(Step{Token: tok, Op: op, IsOp: true, Stack: stack.snapshot()})
		}
	}

	switch n := stack.len(); {
	case n > 1:
		return 0, e.fail(&Error{Kind: TooManyOperands, Offset: -1, Depth: n})
	case n == 0:
		return 0, e.fail(&Error{Kind: InsufficientOperands, Offset: -1})
	}
	return stack.top(), nil
}

func (e *Evaluator) fail(err *Error) error {
	fields := map[string]any{"kind": err.Kind, "depth": err.Depth}
	if err.Offset >= 0 {
		fields["token"] = err.Token
		fields["offset"] = err.Offset
	}
	e.log.With(fields).Warnf("evaluation failed: %v", err)
	return err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
