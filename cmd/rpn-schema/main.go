package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/speakeasy-api/rpn"
	"github.com/speakeasy-api/rpn/pkg/playground"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: rpn-schema <openapi.yaml|->")
		os.Exit(2)
	}

	var (
		data []byte
		err  error
	)
	if os.Args[1] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(os.Args[1])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := playground.EvaluateSchemaConstants(string(data), rpn.Options{LogLevel: os.Getenv("RPN_LOG_LEVEL")})
	if err != nil {
		var evalErr *playground.EvaluationError
		if errors.As(err, &evalErr) {
			fmt.Fprint(os.Stderr, evalErr.Error())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
	fmt.Print(result)
}
