package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/speakeasy-api/rpn"
)

func main() {
	exprs := os.Args[1:]
	if len(exprs) == 0 {
		exprs = []string{
			"3 4 +",             // Push and reduce
			"5 1 2 + 4 * + 3 -", // Nested
			"2 +",               // Underflow
			"1 0 /",             // Division by zero
		}
	}

	ev := rpn.New(rpn.Options{
		Logger: rpn.NewLoggerWithLayout(rpn.LevelDebug, os.Stdout, ""),
	})

	for _, expr := range exprs {
		fmt.Printf("\n=== %s ===\n", expr)
		for _, tok := range rpn.Tokenize(expr) {
			fmt.Printf("%3d: %-10s %s\n", tok.Offset, tok.Text, tokenKind(tok.Text))
		}

		steps, v, err := ev.Trace(expr)
		for i, s := range steps {
			fmt.Printf("%3d: %-10s [%s]\n", i, s.Token.Text, formatStack(s.Stack))
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		fmt.Printf("Result: %s\n", strconv.FormatFloat(v, 'g', -1, 64))
	}
}

func tokenKind(text string) string {
	if op, ok := rpn.ParseOperator(text); ok {
		return "op:" + op.Name()
	}
	if _, err := rpn.ParseNumber(text); err != nil {
		if kind, ok := rpn.KindOf(err); ok {
			return kind.String()
		}
		return "invalid"
	}
	return "number"
}

func formatStack(stack []float64) string {
	parts := make([]string, len(stack))
	for i, v := range stack {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}
