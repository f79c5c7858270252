package rpn

// operandStack implements a simple stack for operand values.
type operandStack struct {
	data []float64
}

// newOperandStack creates a stack sized for n tokens.
func newOperandStack(n int) *operandStack {
	return &operandStack{
		data: make([]float64, 0, n),
	}
}

func (s *operandStack) push(v float64) {
	s.data = append(s.data, v)
}

// pop removes and returns the top value.
// Panics if stack is empty.
func (s *operandStack) pop() float64 {
	if len(s.data) == 0 {
		panic("operand stack underflow")
	}
	v := s.data[len(s.data)-1]
	s.data = s.data[:len(s.data)-1]
	return v
}

// top returns the top value without removing it.
func (s *operandStack) top() float64 {
	if len(s.data) == 0 {
		panic("operand stack underflow")
	}
	return s.data[len(s.data)-1]
}

func (s *operandStack) len() int {
	return len(s.data)
}

// snapshot returns a copy of the stack, bottom first.
func (s *operandStack) snapshot() []float64 {
	out := make([]float64, len(s.data))
	copy(out, s.data)
	return out
}
