package sym

import "strings"

// node is a syntax tree node. The parser produces nodes, and Context.build
// turns them into canonical expressions.
type node struct {
	kind nodeKind
	// name holds the literal text of numbers and symbols, and the function
	// name of calls.
	name        string
	left, right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota
	nodeNum
	nodeName
	nodeCall // right is the first nodeArg
	nodeArg  // left is the argument; right is the next nodeArg
	nodeNeg
	nodeNop // unary plus
	nodeAdd
	nodeSub
	nodeMul
	nodeDiv
	nodePow
)

// op is the operator spelling of each operator kind.
var op = map[nodeKind]string{
	nodeNeg: "-",
	nodeNop: "+",
	nodeAdd: "+",
	nodeSub: "-",
	nodeMul: "*",
	nodeDiv: "/",
	nodePow: "^",
}

func (k nodeKind) String() string {
	switch k {
	case nodeNum:
		return "num"
	case nodeName:
		return "name"
	case nodeCall:
		return "call"
	case nodeArg:
		return "arg"
	}
	if s, ok := op[k]; ok {
		return s
	}
	return "none"
}

// String formats the tree as an s-expression, e.g. (* 2 (^ x 2)).
func (n *node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *node) write(b *strings.Builder) {
	switch n.kind {
	case nodeNum, nodeName:
		b.WriteString(n.name)
		return
	case nodeCall:
		b.WriteString("(" + n.name)
		for _, a := range n.args() {
			b.WriteByte(' ')
			a.write(b)
		}
		b.WriteByte(')')
		return
	}
	b.WriteString("(" + n.kind.String() + " ")
	n.left.write(b)
	if n.right != nil {
		b.WriteByte(' ')
		n.right.write(b)
	}
	b.WriteByte(')')
}

// args collects the arguments of a call node.
func (n *node) args() []*node {
	var v []*node
	for a := n.right; a != nil; a = a.right {
		v = append(v, a.left)
	}
	return v
}
