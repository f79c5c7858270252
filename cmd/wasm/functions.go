//go:build js && wasm

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"syscall/js"

	"github.com/speakeasy-api/rpn"
	"github.com/speakeasy-api/rpn/pkg/playground"
	"github.com/speakeasy-api/rpn/pkg/rpnfmt"
)

// EvaluateRPN evaluates a postfix expression. Failures carry the playground
// diagnostic so the page can show the caret under the bad token.
func EvaluateRPN(expr string) (string, error) {
	v, err := rpn.Evaluate(expr)
	if err != nil {
		return "", errors.New(playground.FormatEvalError(expr, err))
	}
	return strconv.FormatFloat(v, 'g', -1, 64), nil
}

// FormatRPN formats an expression, breaking lines after the given
// comma-separated operators.
func FormatRPN(expr, breakOps string) (string, error) {
	cfg := rpnfmt.RpnFmtCfg{}
	if breakOps != "" {
		cfg.Ops = strings.Split(breakOps, ",")
	}

	formatted, err := rpnfmt.Format(expr, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to format rpn expression: %w", err)
	}

	return formatted, nil
}

// promisify wraps a Go function to return a JavaScript Promise
func promisify(fn func(args []js.Value) (string, error)) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		handler := js.FuncOf(func(this js.Value, promiseArgs []js.Value) any {
			resolve := promiseArgs[0]
			reject := promiseArgs[1]

			go func() {
				result, err := fn(args)
				if err != nil {
					errorConstructor := js.Global().Get("Error")
					reject.Invoke(errorConstructor.New(err.Error()))
					return
				}

				resolve.Invoke(result)
			}()

			// The handler of a Promise doesn't return any value
			return nil
		})

		promiseConstructor := js.Global().Get("Promise")
		return promiseConstructor.New(handler)
	})
}

func main() {
	js.Global().Set("EvaluateRPN", promisify(func(args []js.Value) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("EvaluateRPN: expected 1 arg (expr), got %v", len(args))
		}

		return EvaluateRPN(args[0].String())
	}))

	js.Global().Set("FormatRPN", promisify(func(args []js.Value) (string, error) {
		if len(args) < 1 || len(args) > 2 {
			return "", fmt.Errorf("FormatRPN: expected 1 or 2 args (expr, breakOps), got %v", len(args))
		}
		breakOps := ""
		if len(args) == 2 {
			breakOps = args[1].String()
		}

		return FormatRPN(args[0].String(), breakOps)
	}))

	js.Global().Set("EvaluateSchemaConstants", promisify(func(args []js.Value) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("EvaluateSchemaConstants: expected 1 arg (oasYAML), got %v", len(args))
		}

		return playground.EvaluateSchemaConstants(args[0].String())
	}))

	// Keep the program running
	<-make(chan bool)
}
