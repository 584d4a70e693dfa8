package scicalc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// name is the number text for nodeNum and the identifier for nodeName
	// and nodeCall.
	name string
	// pos is the column of the token that produced the node.
	pos int
	// depth is the height of the subtree rooted at the node. For the head
	// of an argument list, it is the greatest depth among the arguments.
	depth int

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // push num
	nodeName // push constant named name
	nodeCall // call function named name, right is link to nodeArg or nil
	nodeArg  // eval left, right is link to next arg

	nodeNeg      // evaluate left, then negate
	nodeNop      // evaluate left
	nodeAdd      // evaluate left, add right
	nodeSub      // evaluate left, sub right
	nodeMul      // evaluate left, mul right
	nodeDiv      // evaluate left, div by right
	nodeFloorDiv // evaluate left, floor div by right
	nodeMod      // evaluate left, mod right
	nodePow      // evaluate left, exp by right
)

var nodeKindNames = [...]string{
	nodeNone:     "None",
	nodeNum:      "Num",
	nodeName:     "Name",
	nodeCall:     "Call",
	nodeArg:      "Arg",
	nodeNeg:      "Neg",
	nodeNop:      "Nop",
	nodeAdd:      "Add",
	nodeSub:      "Sub",
	nodeMul:      "Mul",
	nodeDiv:      "Div",
	nodeFloorDiv: "FloorDiv",
	nodeMod:      "Mod",
	nodePow:      "Pow",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeKindNames[k]
}

// binopText is the canonical spelling of each binary operator.
var binopText = map[nodeKind]string{
	nodeAdd:      " + ",
	nodeSub:      " - ",
	nodeMul:      " * ",
	nodeDiv:      " / ",
	nodeFloorDiv: " // ",
	nodeMod:      " % ",
	nodePow:      " ** ",
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the node fully parenthesized, so that the result parses to the
// same tree.
func (n *node) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b)
		}
		b.WriteByte('$')
	case nodeNum, nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		n.fmtargs(b)
	case nodeArg:
		// Args usually only appear inside calls, which are handled by fmtargs.
		b.WriteByte(':')
		n.left.fmt(b)
		if n.right != nil {
			n.right.fmt(b)
		}
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b)
	case nodeNop:
		b.WriteByte('+')
		n.left.fmt(b)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeFloorDiv, nodeMod, nodePow:
		n.left.fmt(b)
		b.WriteString(binopText[n.kind])
		n.right.fmt(b)
	default:
		panic("scicalc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func (n *node) fmtargs(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	for a := n.right; a != nil; a = a.right {
		if a != n.right {
			b.WriteString(", ")
		}
		a.left.fmt(b)
	}
}

// args counts the arguments of a call node.
func (n *node) args() int {
	k := 0
	for a := n.right; a != nil; a = a.right {
		k++
	}
	return k
}
