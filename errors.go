package scicalc

import "errors"

// Every error from evaluating an expression unwraps to exactly one of these.
var (
	// ErrInvalidCharacter means the input contains a character outside the
	// calculator's alphabet.
	ErrInvalidCharacter = errors.New("invalid character")
	// ErrSyntax means the input is not a well-formed expression.
	ErrSyntax = errors.New("syntax error")
	// ErrDomain means a function or operator was applied outside its domain
	// or the result does not fit in a float64.
	ErrDomain = errors.New("math domain error")
	// ErrUnknownIdentifier means the input names something that is not in
	// the function namespace.
	ErrUnknownIdentifier = errors.New("unknown identifier")
)

// ErrorKind classifies evaluation errors.
type ErrorKind int8

const (
	// KindNone is the kind of a nil error, or of an error which did not come
	// from parsing or evaluation, e.g. a read error from an input source.
	KindNone ErrorKind = iota
	KindInvalidCharacter
	KindSyntax
	KindDomain
	KindUnknownIdentifier
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidCharacter:
		return "InvalidCharacter"
	case KindSyntax:
		return "SyntaxError"
	case KindDomain:
		return "DomainError"
	case KindUnknownIdentifier:
		return "UnknownIdentifier"
	default:
		return "None"
	}
}

// KindOf returns the kind of err.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidCharacter):
		return KindInvalidCharacter
	case errors.Is(err, ErrSyntax):
		return KindSyntax
	case errors.Is(err, ErrDomain):
		return KindDomain
	case errors.Is(err, ErrUnknownIdentifier):
		return KindUnknownIdentifier
	default:
		return KindNone
	}
}

// Describe formats err for display, prefixed with its kind when it has one.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	k := KindOf(err)
	if k == KindNone {
		return err.Error()
	}
	return k.String() + ": " + err.Error()
}
