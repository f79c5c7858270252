package playground

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/speakeasy-api/rpn"
)

func TestFormatEvalError(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "division_by_zero",
			input: "2 0 /",
			want: `- Division by zero.
  2 0 /
      ^
  How to fix: The value right before "/" must not be zero.
  Details: division by zero
`,
		},
		{
			name:  "wide_token",
			input: "２\t3 x",
			want: `- Unknown token "２".
  ２ 3 x
  ^^
  How to fix: Only numbers and the operators + - * / are allowed. Separate every token with white space.
  Details: invalid token "２"
`,
		},
		{
			name:  "caret_on_second_line",
			input: "2 3\n1e999 +",
			want: `- Number "1e999" is out of range.
  1e999 +
  ^^^^^
  How to fix: Use literals between about 5e-324 and 1.8e308 in magnitude, or 0.
  Details: number out of range "1e999"
`,
		},
		{
			name:  "no_token",
			input: "1 2 3",
			want: `- 3 values remain on the stack, expected exactly one.
  How to fix: Add operators until a single value remains, e.g. "1 2 3 + +".
  Details: too many operands: 3 values remain
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rpn.Evaluate(tt.input)
			if err == nil {
				t.Fatalf("Evaluate(%q) expected error", tt.input)
			}
			if diff := cmp.Diff(tt.want, FormatEvalError(tt.input, err)); diff != "" {
				t.Errorf("FormatEvalError() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCaretAlignsAfterWideToken(t *testing.T) {
	input := "３ ４ x"
	err := &rpn.Error{Kind: rpn.InvalidToken, Token: "x", Offset: len("３ ４ ")}
	got := caret(input, err)
	// "３ ４ " is 6 columns wide.
	want := "  ３ ４ x\n        ^\n"
	if got != want {
		t.Errorf("caret() = %q, want %q", got, want)
	}
}

func TestFormatEvalErrorForeignError(t *testing.T) {
	got := FormatEvalError("x", errors.New("boom"))
	want := "- Evaluation error.\n  Details: boom\n"
	if got != want {
		t.Errorf("FormatEvalError() = %q, want %q", got, want)
	}
}

func TestFormatSchemaErrors(t *testing.T) {
	if got := FormatSchemaErrors(nil); !strings.Contains(got, "no additional details") {
		t.Errorf("FormatSchemaErrors(nil) = %q", got)
	}

	_, err := rpn.Evaluate("2 +")
	got := FormatSchemaErrors([]*SchemaError{{Location: "components.schemas.Foo", Expr: "2 +", Err: err}})
	for _, want := range []string{
		"Constant evaluation failed.\n",
		`- Operator "+" needs two operands but the stack holds 1.`,
		"  Location: components.schemas.Foo\n",
		"  2 +\n    ^\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatSchemaErrors() missing %q in:\n%s", want, got)
		}
	}
}
