package playground

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/speakeasy-api/openapi/jsonschema/oas3"
	"github.com/speakeasy-api/openapi/openapi"
	"github.com/speakeasy-api/rpn"
	"gopkg.in/yaml.v3"
)

// EvaluationError collects every schema whose x-rpn-const failed.
type EvaluationError struct {
	Errors []*SchemaError
}

func (e *EvaluationError) Error() string {
	return FormatSchemaErrors(e.Errors)
}

func (e *EvaluationError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// EvaluateSchemaConstants parses an OpenAPI document, replaces every
// x-rpn-const extension with the const value it evaluates to and returns the
// document as YAML.
func EvaluateSchemaConstants(oasYAML string, opts ...rpn.Options) (string, error) {
	ctx := context.Background()

	doc, validationErrs, err := openapi.Unmarshal(ctx, strings.NewReader(oasYAML))
	if err != nil {
		return "", fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}
	if len(validationErrs) > 0 {
		// Return first validation error
		return "", fmt.Errorf("OpenAPI validation failed: %v", validationErrs[0])
	}

	if _, errs := EvaluateDocument(ctx, doc, rpn.New(opts...)); len(errs) > 0 {
		return "", &EvaluationError{Errors: errs}
	}

	var buf strings.Builder
	if err := openapi.Marshal(ctx, doc, &buf); err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}
	return buf.String(), nil
}

// EvaluateDocument evaluates the x-rpn-const extension of every schema in doc
// in place. It returns the number of schemas updated and the failures.
func EvaluateDocument(ctx context.Context, doc *openapi.OpenAPI, ev *rpn.Evaluator) (int, []*SchemaError) {
	type schemaToEvaluate struct {
		schema   *oas3.JSONSchema[oas3.Referenceable]
		location string
	}
	var targets []schemaToEvaluate
	var errs []*SchemaError

	for item := range openapi.Walk(ctx, doc) {
		err := item.Match(openapi.Matcher{
			Schema: func(schema *oas3.JSONSchema[oas3.Referenceable]) error {
				if schema.GetExtensions() != nil {
					if _, ok := schema.GetExtensions().Get(ConstExtension); ok {
						targets = append(targets, schemaToEvaluate{
							schema:   schema,
							location: fmt.Sprintf("%v", item.Location),
						})
					}
				}
				return nil
			},
		})
		if err != nil {
			errs = append(errs, &SchemaError{Location: fmt.Sprintf("%v", item.Location), Err: fmt.Errorf("walk error: %w", err)})
		}
	}

	// Replace schemas after the walk so the walk never sees a swapped node.
	applied := 0
	for _, t := range targets {
		if err := evaluateSchema(t.schema, t.location, ev); err != nil {
			errs = append(errs, err)
			continue
		}
		applied++
	}
	return applied, errs
}

func evaluateSchema(schema *oas3.JSONSchema[oas3.Referenceable], location string, ev *rpn.Evaluator) *SchemaError {
	node, ok := schema.GetExtensions().Get(ConstExtension)
	if !ok {
		return nil
	}
	raw, expr, err := parseExtension(node)
	if err != nil {
		return &SchemaError{Location: location, Expr: raw, Err: err}
	}

	schemaValue := schema.GetLeft()
	if schemaValue == nil {
		return &SchemaError{Location: location, Expr: expr, Err: fmt.Errorf("schema is a reference or boolean, cannot set const")}
	}

	v, err := ev.Evaluate(expr)
	if err != nil {
		return &SchemaError{Location: location, Expr: expr, Err: err}
	}

	schemaValue.Const = constNode(v)
	if schemaValue.Type == nil {
		schemaValue.Type = oas3.NewTypeFromString(oas3.SchemaTypeNumber)
	}
	if schemaValue.Extensions != nil {
		schemaValue.Extensions.Delete(ConstExtension)
	}

	newJSONSchema := oas3.NewJSONSchemaFromSchema[oas3.Referenceable](schemaValue)
	*schema = *newJSONSchema
	return nil
}

// constNode encodes v as a YAML scalar. Integral values get the int tag so
// they render without a fraction.
func constNode(v float64) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float"}
	switch {
	case math.IsNaN(v):
		node.Value = ".nan"
	case math.IsInf(v, 1):
		node.Value = ".inf"
	case math.IsInf(v, -1):
		node.Value = "-.inf"
	case v == math.Trunc(v) && math.Abs(v) < 1<<53:
		node.Tag = "!!int"
		node.Value = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		node.Value = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return node
}
