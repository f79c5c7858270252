package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/itchyny/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/speakeasy-api/rpn"
	"github.com/speakeasy-api/rpn/pkg/casebook"
	"github.com/speakeasy-api/rpn/pkg/playground"
	"github.com/speakeasy-api/rpn/pkg/rpnfmt"
)

const name = "rpn"

const (
	exitCodeOK = iota
	exitCodeErr
	exitCodeFlagErr
)

const usage = `Usage: rpn [flags] [--] [expr ...]

Evaluates each argument as a Reverse Polish Notation expression. Without
arguments, expressions are read from standard input, one per line.
Arguments starting with a number, such as "-2 3 +", are expressions, not
flags. Use -- to end the flags explicitly.

Flags:
`

type cli struct {
	inStream  io.Reader
	outStream io.Writer
	errStream io.Writer

	outputYAML bool
	color      string
	logLevel   string
	casebook   string
	format     bool
	breakOps   string

	colorize bool
	fmtCfg   rpnfmt.RpnFmtCfg
	ev       *rpn.Evaluator
}

// yamlResult is one evaluated expression in -yaml output.
type yamlResult struct {
	Expr   string   `yaml:"expr"`
	Result *float64 `yaml:"result,omitempty"`
	Error  string   `yaml:"error,omitempty"`
	Kind   string   `yaml:"kind,omitempty"`
}

func (cli *cli) run(args []string) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.errStream)
	fs.Usage = func() {
		fmt.Fprint(cli.errStream, usage)
		fs.PrintDefaults()
	}
	fs.BoolVar(&cli.outputYAML, "yaml", false, "print each result as a YAML document")
	fs.StringVar(&cli.color, "color", "auto", "color diagnostics: auto, always or never")
	fs.StringVar(&cli.logLevel, "log-level", "error", "evaluator log level: debug, info, warn or error")
	fs.StringVar(&cli.casebook, "casebook", "", "run the cases in a casebook YAML file")
	fs.BoolVar(&cli.format, "format", false, "print the formatted expression instead of its value")
	fs.StringVar(&cli.breakOps, "break", "", "comma separated operators (add,sub,mul,div) to break lines after with -format")
	if err := fs.Parse(markExpressions(fs, args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitCodeOK
		}
		return exitCodeFlagErr
	}

	switch cli.color {
	case "auto":
		cli.colorize = isTerminal(cli.errStream)
	case "always":
		cli.colorize = true
	case "never":
	default:
		cli.printError(fmt.Errorf("invalid -color value %q: use auto, always or never", cli.color))
		return exitCodeFlagErr
	}

	if cli.breakOps != "" {
		cli.fmtCfg.Ops = strings.Split(cli.breakOps, ",")
	}
	cfg, err := rpnfmt.ValidateConfig(cli.fmtCfg)
	if err != nil {
		cli.printError(err)
		return exitCodeFlagErr
	}
	cli.fmtCfg = cfg

	cli.ev = rpn.New(rpn.Options{
		Logger: rpn.NewLogger(rpn.ParseLogLevel(cli.logLevel), cli.errStream),
	})

	if cli.casebook != "" {
		return cli.runCasebook(cli.casebook)
	}

	exprs := fs.Args()
	if len(exprs) > 0 {
		code := exitCodeOK
		for _, expr := range exprs {
			if !cli.process(expr) {
				code = exitCodeErr
			}
		}
		return code
	}
	return cli.runStdin()
}

// markExpressions inserts "--" before the first argument that reads as an
// expression, so a leading negative literal is not taken for a flag.
func markExpressions(fs *flag.FlagSet, args []string) []string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" || !strings.HasPrefix(arg, "-") {
			return args
		}
		if isExpression(arg) {
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		}
		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if f := fs.Lookup(name); f != nil && !hasValue && !isBoolFlag(f) {
			i++ // skip the flag value
		}
	}
	return args
}

// isExpression reports whether the leading token of arg is a number or an
// operator.
func isExpression(arg string) bool {
	tokens := rpn.Tokenize(arg)
	if len(tokens) == 0 {
		return false
	}
	if _, ok := rpn.ParseOperator(tokens[0].Text); ok {
		return true
	}
	_, err := rpn.ParseNumber(tokens[0].Text)
	return err == nil || errors.Is(err, rpn.ErrNumericOverflow)
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

func (cli *cli) runStdin() int {
	prompt := false
	if f, ok := cli.inStream.(*os.File); ok {
		prompt = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	code := exitCodeOK
	s := bufio.NewScanner(cli.inStream)
	for {
		if prompt {
			fmt.Fprint(cli.outStream, "> ")
		}
		if !s.Scan() {
			break
		}
		line := s.Text()
		if prompt && strings.TrimSpace(line) == "" {
			continue
		}
		if !cli.process(line) {
			code = exitCodeErr
		}
	}
	if err := s.Err(); err != nil {
		cli.printError(err)
		return exitCodeErr
	}
	return code
}

// process evaluates or formats one expression and reports whether it
// succeeded.
func (cli *cli) process(expr string) bool {
	if cli.format {
		out, err := rpnfmt.Format(expr, cli.fmtCfg)
		if err != nil {
			cli.printDiagnostic(expr, err)
			return false
		}
		fmt.Fprintln(cli.outStream, out)
		return true
	}

	v, err := cli.ev.Evaluate(expr)
	if cli.outputYAML {
		if err := cli.writeYAML(expr, v, err); err != nil {
			cli.printError(err)
			return false
		}
	} else if err == nil {
		fmt.Fprintln(cli.outStream, strconv.FormatFloat(v, 'g', -1, 64))
	}
	if err != nil {
		cli.printDiagnostic(expr, err)
		return false
	}
	return true
}

func (cli *cli) writeYAML(expr string, v float64, evalErr error) error {
	res := yamlResult{Expr: expr}
	if evalErr != nil {
		res.Error = evalErr.Error()
		if kind, ok := rpn.KindOf(evalErr); ok {
			res.Kind = kind.String()
		}
	} else {
		res.Result = &v
	}
	bs, err := yaml.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprint(cli.outStream, "---\n")
	_, err = cli.outStream.Write(bs)
	return err
}

func (cli *cli) runCasebook(path string) int {
	cb, err := casebook.LoadFile(path)
	if err != nil {
		cli.printError(err)
		return exitCodeErr
	}
	report := casebook.Run(cb, casebook.Options{Evaluator: cli.ev})
	if err := report.Write(cli.outStream); err != nil {
		cli.printError(err)
		return exitCodeErr
	}
	if !report.OK() {
		return exitCodeErr
	}
	return exitCodeOK
}

func (cli *cli) printDiagnostic(expr string, err error) {
	cli.printRed(playground.FormatEvalError(expr, err))
}

func (cli *cli) printError(err error) {
	cli.printRed(fmt.Sprintf("%s: error: %v\n", name, err))
}

func (cli *cli) printRed(s string) {
	if cli.colorize {
		s = "\x1b[31m" + strings.TrimSuffix(s, "\n") + "\x1b[0m\n"
	}
	fmt.Fprint(cli.errStream, s)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
