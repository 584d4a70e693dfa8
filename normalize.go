package scicalc

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// percentre matches a number followed by a percent sign.
	percentre = regexp.MustCompile(`(\d+(\.\d+)?)\s*%`)
	// factre matches a number or a parenthesized group with no nested
	// parentheses, followed by an exclamation mark.
	factre = regexp.MustCompile(`(\([^()]+\)|\d+(\.\d+)?)\s*!`)
	// badre matches any character that may not appear in normalized input.
	badre = regexp.MustCompile(`[^0-9A-Za-z_.+\-*/^%(),!\s]`)
)

// Normalize rewrites calculator shorthand into canonical expression text. In
// order, it replaces ^ with **, n% with (n/100), and n! or (expr)! with
// factorial(n) or factorial((expr)). Every match of each rewrite is replaced
// in a single pass, so e.g. "5!!" leaves a trailing "!" which Parse rejects.
// Grouped factorials only match when the group contains no parentheses
// itself.
//
// If expr contains a character outside the calculator's alphabet, the result
// is a *CharacterError with the column of that character in expr. The
// rewrites only introduce characters in the alphabet.
func Normalize(expr string) (string, error) {
	if loc := badre.FindStringIndex(expr); loc != nil {
		r, _ := utf8.DecodeRuneInString(expr[loc[0]:])
		return "", &CharacterError{Col: utf8.RuneCountInString(expr[:loc[0]]) + 1, Char: r}
	}
	expr = strings.ReplaceAll(expr, "^", "**")
	expr = percentre.ReplaceAllString(expr, "($1/100)")
	expr = factre.ReplaceAllString(expr, "factorial($1)")
	return expr, nil
}
