// Package casebook runs suites of RPN expressions described in YAML against
// the evaluator and reports which of them behave as expected.
//
//	name: basics
//	cases:
//	  - name: addition
//	    expr: "2 3 +"
//	    want: 5
//	  - name: division by zero
//	    expr: "5 0 /"
//	    error: DivisionByZero
package casebook

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/speakeasy-api/rpn"
	"gopkg.in/yaml.v3"
)

// DefaultEpsilon is the tolerance used to compare numeric results.
const DefaultEpsilon = 1e-9

// Case is a single expectation: either a value or an error kind.
type Case struct {
	Name  string   `yaml:"name"`
	Expr  string   `yaml:"expr"`
	Want  *float64 `yaml:"want,omitempty"`
	Error string   `yaml:"error,omitempty"`

	// Line is the line of the case in the source document.
	Line int `yaml:"-"`

	kind rpn.ErrorKind
}

// Casebook is a named list of cases.
type Casebook struct {
	Name  string
	Cases []Case
}

// LoadFile reads a casebook from a YAML file.
func LoadFile(path string) (*Casebook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cb, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cb, nil
}

// Load decodes a casebook document.
func Load(r io.Reader) (*Casebook, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty casebook")
		}
		return nil, fmt.Errorf("failed to parse casebook: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.New("casebook must be a mapping")
	}
	root := doc.Content[0]

	cb := &Casebook{}
	var cases *yaml.Node
	// MappingNode stores content as alternating key/value pairs
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "name":
			cb.Name = value.Value
		case "cases":
			cases = value
		default:
			return nil, fmt.Errorf("line %d: unknown key %q", key.Line, key.Value)
		}
	}
	if cases == nil || cases.Kind != yaml.SequenceNode {
		return nil, errors.New("casebook requires a 'cases' list")
	}

	for _, node := range cases.Content {
		var c Case
		if err := node.Decode(&c); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		c.Line = node.Line
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		cb.Cases = append(cb.Cases, c)
	}
	return cb, nil
}

func (c *Case) validate() error {
	if c.Name == "" {
		c.Name = c.Expr
	}
	switch {
	case c.Want != nil && c.Error != "":
		return fmt.Errorf("case %q: 'want' and 'error' are exclusive", c.Name)
	case c.Want == nil && c.Error == "":
		return fmt.Errorf("case %q: requires 'want' or 'error'", c.Name)
	case c.Error != "":
		kind, ok := rpn.ParseErrorKind(c.Error)
		if !ok {
			return fmt.Errorf("case %q: unknown error kind %q", c.Name, c.Error)
		}
		c.kind = kind
	}
	return nil
}

// Options configures Run.
type Options struct {
	// Epsilon is the tolerance for value cases (default: DefaultEpsilon).
	Epsilon float64
	// Evaluator evaluates the cases (default: rpn.New()).
	Evaluator *rpn.Evaluator
}

// Result is the outcome of a single case.
type Result struct {
	Case   Case
	Got    float64
	Err    error
	Passed bool
}

// Run evaluates every case of cb.
func Run(cb *Casebook, opts ...Options) *Report {
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Epsilon <= 0 {
		opt.Epsilon = DefaultEpsilon
	}
	if opt.Evaluator == nil {
		opt.Evaluator = rpn.New()
	}

	report := &Report{Name: cb.Name}
	for _, c := range cb.Cases {
		got, err := opt.Evaluator.Evaluate(c.Expr)
		r := Result{Case: c, Got: got, Err: err}
		if c.Want != nil {
			r.Passed = err == nil && math.Abs(got-*c.Want) < opt.Epsilon
		} else {
			kind, ok := rpn.KindOf(err)
			r.Passed = ok && kind == c.kind
		}
		report.add(r)
	}
	return report
}
