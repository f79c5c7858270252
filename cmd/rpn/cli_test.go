package main

import (
	"bytes"
	"strings"
	"testing"
)

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	c := &cli{
		inStream:  strings.NewReader(stdin),
		outStream: &out,
		errStream: &errOut,
	}
	code = c.run(args)
	return code, out.String(), errOut.String()
}

func TestCLIArgs(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "2 3 +", "15 7 1 1 + - / 3 * 2 1 1 + + -", "0.1 0.2 +")
	if code != exitCodeOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	want := "5\n5\n0.30000000000000004\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestCLIStdin(t *testing.T) {
	code, stdout, stderr := runCLI(t, "1 2 +\n4 0 /\n6 3 /\n")
	if code != exitCodeErr {
		t.Errorf("exit code = %d, want %d", code, exitCodeErr)
	}
	if stdout != "3\n2\n" {
		t.Errorf("stdout = %q", stdout)
	}
	for _, want := range []string{"- Division by zero.", "  4 0 /\n      ^\n"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
	if strings.Contains(stderr, "\x1b[31m") {
		t.Errorf("stderr is colored without a terminal:\n%s", stderr)
	}
}

func TestCLIColorAlways(t *testing.T) {
	_, _, stderr := runCLI(t, "", "-color=always", "-log-level=error", "+")
	if !strings.HasPrefix(stderr, "\x1b[31m") || !strings.HasSuffix(stderr, "\x1b[0m\n") {
		t.Errorf("stderr = %q, want red diagnostic", stderr)
	}
}

func TestCLIYAML(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "-yaml", "-log-level=error", "2 3 *", "1 0 /")
	if code != exitCodeErr {
		t.Errorf("exit code = %d, want %d", code, exitCodeErr)
	}
	for _, want := range []string{"---\n", "result: 6", "kind: DivisionByZero", "error: division by zero"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestCLIFormat(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "-format", "-break=ADD", "1   2 +\t3 *")
	if code != exitCodeOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	if want := "1 2 +\n  3 *\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestCLICasebook(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "-casebook", "../../pkg/casebook/testdata/basic.yaml")
	if code != exitCodeOK {
		t.Fatalf("exit code = %d, stderr:\n%s\nstdout:\n%s", code, stderr, stdout)
	}
	if !strings.Contains(stdout, "Success rate: 100.00%") {
		t.Errorf("stdout missing success rate:\n%s", stdout)
	}
}

func TestCLIFlagErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad_color", []string{"-color=rainbow", "1"}, `invalid -color value "rainbow"`},
		{"bad_break", []string{"-format", "-break=pow", "1"}, `invalid operator "pow"`},
		{"unknown_flag", []string{"-nope"}, "flag provided but not defined"},
		{"missing_flag_value", []string{"-casebook"}, "flag needs an argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, "", tt.args...)
			if code != exitCodeFlagErr {
				t.Errorf("exit code = %d, want %d", code, exitCodeFlagErr)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr missing %q:\n%s", tt.want, stderr)
			}
		})
	}
}

func TestCLINegativeLeadingOperand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"first_arg", []string{"-2 3 +"}, "1\n"},
		{"after_flag", []string{"-color=never", "-3 -4 *"}, "12\n"},
		{"after_flag_value", []string{"-log-level", "error", "-42", "-2 -3 +"}, "-42\n-5\n"},
		{"after_bool_flag", []string{"-yaml=false", "-0.5 2 *"}, "-1\n"},
		{"explicit_terminator", []string{"--", "-1 1 -"}, "-2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, "", tt.args...)
			if code != exitCodeOK {
				t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestCLINegativeOverflowIsEvaluated(t *testing.T) {
	code, _, stderr := runCLI(t, "", "-1e999 2 +")
	if code != exitCodeErr {
		t.Errorf("exit code = %d, want %d", code, exitCodeErr)
	}
	if !strings.Contains(stderr, `Number "-1e999" is out of range.`) {
		t.Errorf("stderr missing overflow diagnostic:\n%s", stderr)
	}
}

func TestCLIFailureReportedOnce(t *testing.T) {
	_, _, stderr := runCLI(t, "", "4 0 /")
	if strings.Contains(stderr, "[WARN]") {
		t.Errorf("stderr carries an evaluator log line by default:\n%s", stderr)
	}
	if n := strings.Count(stderr, "division by zero"); n != 1 {
		t.Errorf("stderr mentions the failure %d times, want 1:\n%s", n, stderr)
	}

	_, _, stderr = runCLI(t, "", "-log-level=warn", "4 0 /")
	if !strings.Contains(stderr, "[WARN]") {
		t.Errorf("-log-level=warn did not log the failure:\n%s", stderr)
	}
}
