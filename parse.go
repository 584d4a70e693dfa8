package scicalc

import (
	"io"
	"strings"
)

// Expr = num | name | Call | Neg | Plus | Add | Sub | Mul | Div | FloorDiv | Mod | Pow | '(' Expr ')'
// Call = name '(' [ Expr { ',' Expr } ] ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// FloorDiv = Expr '//' Expr
// Mod = Expr '%' Expr
// Pow = Expr '**' Expr | Expr '^' Expr

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of identifiers used in the expression.
	names []string
}

// parsectx holds general data for parsing.
type parsectx struct {
	// names is the set of identifiers that have been seen this parse.
	names map[string]bool
	// depth is the number of parseterm calls in progress.
	depth int
}

// maxDepth is the deepest nesting an expression may have, counting both
// subexpressions being parsed and the height of the finished tree.
const maxDepth = 1000

// deepen sets n's depth from its children and fails if the tree has become
// too deep to evaluate.
func deepen(n *node) (*node, error) {
	d := 0
	if n.left != nil {
		d = n.left.depth
	}
	if n.right != nil && n.right.depth > d {
		d = n.right.depth
	}
	n.depth = d + 1
	if n.depth > maxDepth {
		return nil, &DepthError{Col: n.pos, Limit: maxDepth}
	}
	return n, nil
}

// Parse parses canonical expression text so it can be evaluated with a
// context. Parse does not apply calculator shorthand; see Normalize. Whether
// identifiers exist is decided at evaluation time, so parsing does not depend
// on the trig mode or function namespace.
func Parse(src io.RuneScanner) (*Expr, error) {
	scan := lex(src)
	p := parsectx{
		names: make(map[string]bool),
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	if tok := scan.must(); tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, "")
	}
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// ParseString is a shortcut to parse canonical text from a string.
func ParseString(src string) (*Expr, error) {
	return Parse(strings.NewReader(src))
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an error
// in contexts where empty subexpressions are illegal.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		return nil, &DepthError{Col: tok.pos, Limit: maxDepth}
	}
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNum, tokenIdent, tokenOpen:
			// There is no implicit multiplication.
			return nil, &TokenError{Col: tok.pos, Text: tok.text}
		case tokenOp:
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseoperand(scan, p, prec)
			if err != nil {
				return nil, err
			}
			n, err = deepen(&node{kind: prec.op, pos: tok.pos, left: n, right: rhs})
			if err != nil {
				return nil, err
			}
		case tokenClose, tokenSep, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("scicalc: unknown token: " + tok.String())
		}
	}
}

// parseoperand parses the operand of an operator, which may not be empty.
func parseoperand(scan *lexer, p *parsectx, prec operator) (*node, error) {
	rhs, err := parseterm(scan, p, prec)
	if err != nil {
		return nil, err
	}
	if rhs == nil {
		// parselhs pushed the token that ended the operand.
		end := scan.must()
		return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
	}
	return rhs, nil
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, p *parsectx, until operator) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		n = &node{kind: nodeNum, name: tok.text, pos: tok.pos, depth: 1}
	case tokenIdent:
		p.names[tok.text] = true
		open, err := scan.next()
		if err != nil {
			return nil, err
		}
		if open.kind != tokenOpen {
			scan.push(open)
			n = &node{kind: nodeName, name: tok.text, pos: tok.pos, depth: 1}
			break
		}
		args, err := parsearglist(scan, p, open)
		if err != nil {
			return nil, err
		}
		n, err = deepen(&node{kind: nodeCall, name: tok.text, pos: tok.pos, right: args})
		if err != nil {
			return nil, err
		}
	case tokenOp:
		// unary operator
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x**-y -> x**(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseoperand(scan, p, prec)
		if err != nil {
			return nil, err
		}
		n, err = deepen(&node{kind: prec.op, pos: tok.pos, left: rhs})
		if err != nil {
			return nil, err
		}
	case tokenOpen:
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, tok.text)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = rhs
	case tokenClose:
		// This might be an empty argument list, so just let the caller decide
		// what to do.
		scan.push(tok)
		return nil, nil
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("scicalc: unknown token: " + tok.String())
	}
	return n, nil
}

// parsearglist parses a parenthesized list of zero or more args following the
// open bracket. It consumes the close bracket.
func parsearglist(scan *lexer, p *parsectx, open lexToken) (*node, error) {
	var n node
	l := &n
	k := 0
	for {
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			// As a special case, reporting mismatched brackets is more helpful
			// than empty expression at the end of the input.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: open.text}
			}
			return nil, err
		}
		end := scan.must()
		switch end.kind {
		case tokenClose:
			if rhs == nil {
				// f() is syntactically fine, but f(a,) isn't.
				if k != 0 {
					return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
				return nil, nil
			}
			l.right = &node{kind: nodeArg, pos: rhs.pos, left: rhs}
			n.right.depth = max(n.right.depth, rhs.depth)
			return n.right, nil
		case tokenSep:
			k++
			l.right = &node{kind: nodeArg, pos: rhs.pos, left: rhs}
			l = l.right
			n.right.depth = max(n.right.depth, rhs.depth)
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: open.text}
		default:
			panic("scicalc: parseterm ended on non-end token " + end.String())
		}
	}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. left is the open bracket that the
// subexpression should have matched, or empty if none.
func itShouldNotHaveEndedThisWay(tok lexToken, left string) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: left}
	case tokenClose:
		// A close bracket at the end of the input has nothing to close.
		return &BracketError{Col: tok.pos, Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("scicalc: it really should not have ended this way: " + tok.String())
	}
}

// Idents returns the identifiers named in the expression, sorted.
func (e *Expr) Idents() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a fully parenthesized representation of the parsed
// expression. The result parses to the same expression.
func (e *Expr) String() string {
	return e.n.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "//":
		return operator{5, false, nodeFloorDiv}
	case "%":
		return operator{5, false, nodeMod}
	case "**", "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeNop}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
