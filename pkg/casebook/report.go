package casebook

import (
	"fmt"
	"io"
	"strconv"
)

// Report aggregates the results of a run.
type Report struct {
	Name    string
	Total   int
	Passed  int
	Failed  int
	Results []Result
}

func (r *Report) add(res Result) {
	r.Total++
	if res.Passed {
		r.Passed++
	} else {
		r.Failed++
	}
	r.Results = append(r.Results, res)
}

// SuccessRate returns the percentage of passed cases, 0 for an empty run.
func (r *Report) SuccessRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return 100 * float64(r.Passed) / float64(r.Total)
}

// OK reports whether every case passed.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Failures returns the failed results.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Passed {
			out = append(out, res)
		}
	}
	return out
}

// Write renders one line per case followed by a summary.
func (r *Report) Write(w io.Writer) error {
	ew := &errWriter{w: w}
	for i, res := range r.Results {
		ew.printf("Test %d: %s ... %s\n", i+1, res.Case.Name, res.describe())
	}
	ew.printf("\n")
	if r.Name != "" {
		ew.printf("Casebook: %s\n", r.Name)
	}
	ew.printf("Total tests: %d\n", r.Total)
	ew.printf("Passed: %d\n", r.Passed)
	ew.printf("Failed: %d\n", r.Failed)
	ew.printf("Success rate: %.2f%%\n", r.SuccessRate())
	return ew.err
}

func (res Result) describe() string {
	c := res.Case
	switch {
	case res.Passed && res.Err != nil:
		return fmt.Sprintf("PASSED (Error: %v)", res.Err)
	case res.Passed:
		return fmt.Sprintf("PASSED (Result: %s)", formatFloat(res.Got))
	case c.Want != nil && res.Err != nil:
		return fmt.Sprintf("FAILED (Expected: %s, Got error: %v) at line %d", formatFloat(*c.Want), res.Err, c.Line)
	case c.Want != nil:
		return fmt.Sprintf("FAILED (Expected: %s, Got: %s) at line %d", formatFloat(*c.Want), formatFloat(res.Got), c.Line)
	case res.Err != nil:
		return fmt.Sprintf("FAILED (Expected error: %s, Got error: %v) at line %d", c.kind, res.Err, c.Line)
	default:
		return fmt.Sprintf("FAILED (Expected error: %s, Got: %s) at line %d", c.kind, formatFloat(res.Got), c.Line)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
