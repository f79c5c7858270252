package playground

import (
	"fmt"
	"strings"

	"github.com/speakeasy-api/rpn/pkg/rpnfmt"
	"gopkg.in/yaml.v3"
)

// ConstExtension names the schema extension holding an RPN expression whose
// value becomes the schema's const.
const ConstExtension = "x-rpn-const"

// ParseExtension parses the x-rpn-const extension. The value is either the
// expression itself or a mapping with an "rpn" key:
//
//	x-rpn-const: "60 60 * 24 *"
//	x-rpn-const:
//	  rpn: "60 60 * 24 *"
//
// The returned expression is normalized to single spaces.
func ParseExtension(yamlNode *yaml.Node) (string, error) {
	_, normalized, err := parseExtension(yamlNode)
	return normalized, err
}

// parseExtension returns the expression as written along with its normalized
// form. raw is set whenever the node holds a string, even if it is invalid.
func parseExtension(yamlNode *yaml.Node) (raw, normalized string, err error) {
	raw, err = extensionExpr(yamlNode)
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(raw) == "" {
		return raw, "", fmt.Errorf("%s: requires an RPN expression", ConstExtension)
	}

	normalized, err = rpnfmt.Format(raw, rpnfmt.RpnFmtCfg{})
	if err != nil {
		return raw, "", fmt.Errorf("%s: '%s' is an invalid RPN expression: %w", ConstExtension, raw, err)
	}
	return raw, normalized, nil
}

func extensionExpr(yamlNode *yaml.Node) (string, error) {
	switch yamlNode.Kind {
	case yaml.ScalarNode:
		return yamlNode.Value, nil
	case yaml.MappingNode:
		// YAML MappingNode stores content as alternating key/value pairs
		for i := 0; i+1 < len(yamlNode.Content); i += 2 {
			keyNode := yamlNode.Content[i]
			valueNode := yamlNode.Content[i+1]

			if keyNode.Value == "rpn" {
				if valueNode.Kind != yaml.ScalarNode {
					return "", fmt.Errorf("%s: 'rpn' value must be a string", ConstExtension)
				}
				return valueNode.Value, nil
			}
		}
		return "", fmt.Errorf("%s requires 'rpn' key", ConstExtension)
	default:
		return "", fmt.Errorf("%s must be a string or an object", ConstExtension)
	}
}
