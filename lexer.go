package rpn

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a whitespace-delimited unit of an expression.
type Token struct {
	Text   string
	Offset int // byte offset in the input
}

// Tokenize splits input on runs of Unicode white space. Empty tokens are
// never produced.
func Tokenize(input string) []Token {
	var tokens []Token
	start := -1
	for i, r := range input {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, Token{Text: input[start:i], Offset: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, Token{Text: input[start:], Offset: start})
	}
	return tokens
}

// isBlank reports whether s has no non-whitespace character.
func isBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}

// numberResult is the outcome of classifying a token as a number.
type numberResult int

const (
	notNumber numberResult = iota
	number
	outOfRange
)

// parseNumber parses the whole token as a float64 literal. A syntax error
// means the token is a candidate operator; a range error, including
// underflow of a non-zero literal to zero, is reported separately.
func parseNumber(s string) (float64, numberResult, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, outOfRange, err
		}
		return 0, notNumber, err
	}
	if f == 0 && hasNonZeroMantissa(s) {
		return 0, outOfRange, &strconv.NumError{Func: "ParseFloat", Num: s, Err: strconv.ErrRange}
	}
	return f, number, nil
}

// hasNonZeroMantissa reports whether the mantissa of a syntactically valid
// float literal contains a non-zero digit.
func hasNonZeroMantissa(s string) bool {
	s = strings.TrimLeft(s, "+-")
	hex := len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
	exp := "eE"
	if hex {
		s = s[2:]
		exp = "pP"
	}
	if i := strings.IndexAny(s, exp); i >= 0 {
		s = s[:i]
	}
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		switch {
		case r >= '1' && r <= '9':
			return true
		case hex && ((r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')):
			return true
		}
	}
	return false
}

// ParseNumber parses s as a numeric literal. A token that is not number-shaped
// yields an *Error of kind InvalidToken, an out-of-range literal one of kind
// NumericOverflow.
func ParseNumber(s string) (float64, error) {
	f, res, err := parseNumber(s)
	switch res {
	case notNumber:
		return 0, &Error{Kind: InvalidToken, Token: s, Offset: -1, Err: err}
	case outOfRange:
		return 0, &Error{Kind: NumericOverflow, Token: s, Offset: -1, Err: err}
	}
	return f, nil
}
