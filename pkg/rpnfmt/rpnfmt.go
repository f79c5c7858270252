package rpnfmt

import (
	"fmt"
	"strings"

	"github.com/speakeasy-api/rpn"
)

type RpnFmtCfg struct {
	// Ops lists the operators (add, sub, mul, div) after which a line break
	// is inserted.
	Ops []string
	// Indent prefixes every continuation line. Defaults to two spaces.
	Indent string
}

var validOps = []string{
	"add",
	"sub",
	"mul",
	"div",
}

func ValidateConfig(cfg RpnFmtCfg) (RpnFmtCfg, error) {
	ops := make([]string, len(cfg.Ops))
	for o, op := range cfg.Ops {
		valid := false
		for _, vop := range validOps {
			if strings.EqualFold(op, vop) {
				ops[o] = vop
				valid = true
			}
		}
		if !valid {
			return cfg, fmt.Errorf("invalid operator %q; valid operators: %s", op, strings.Join(validOps, ", "))
		}
	}
	cfg.Ops = ops
	if cfg.Indent == "" {
		cfg.Indent = "  "
	}
	return cfg, nil
}

// Format re-emits expr with single spaces between tokens, breaking the line
// after every operator named in cfg.Ops. Numbers keep their spelling. The
// expression is checked token by token, not evaluated: "2 +" formats fine.
func Format(expr string, cfg RpnFmtCfg) (string, error) {
	cfg, err := ValidateConfig(cfg)
	if err != nil {
		return "", err
	}
	breakAfter := make(map[string]bool, len(cfg.Ops))
	for _, op := range cfg.Ops {
		breakAfter[op] = true
	}

	tokens := rpn.Tokenize(expr)
	if len(tokens) == 0 {
		return "", rpn.ErrEmptyExpression
	}

	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			if op, ok := rpn.ParseOperator(tokens[i-1].Text); ok && breakAfter[op.Name()] {
				b.WriteByte('\n')
				b.WriteString(cfg.Indent)
			} else {
				b.WriteByte(' ')
			}
		}
		if _, ok := rpn.ParseOperator(tok.Text); !ok {
			if _, err := rpn.ParseNumber(tok.Text); err != nil {
				if e, ok := err.(*rpn.Error); ok {
					e.Offset = tok.Offset
				}
				return "", fmt.Errorf("could not format expression: %w", err)
			}
		}
		b.WriteString(tok.Text)
	}
	return b.String(), nil
}
