package sym

import "strings"

// The grammar, loosest binding first:
//
//	sum     = product { ("+" | "-") product }
//	product = unary { ("*" | "/" | "×" | "÷") unary | unary }
//	unary   = ("+" | "-") unary | power
//	power   = primary [ ("^" | "**") unary ]
//	primary = num | name | func args | func unary | "(" sum ")"
//	args    = "(" [ sum { "," sum } ] ")"
//
// Juxtaposition is multiplication. Exponentiation is right associative and
// its exponent may carry a sign, so x^-2 is x^(-2). Any bracket pair works
// in place of parentheses.

// Binding powers of operators. Higher binds tighter.
const (
	bindNone = iota
	bindSum
	bindProduct
	bindPower
)

// parser builds a syntax tree from tokens.
type parser struct {
	toks []token
	i    int
}

// parse parses a complete expression.
func parse(src string) (*node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := parser{toks: toks}
	n, err := p.expr(bindNone)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokenEOF {
		return nil, unexpected(t, "")
	}
	return n, nil
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokenEOF {
		p.i++
	}
	return t
}

// infix returns the binding power and node kind of t as a binary operator.
// A token that starts an operand binds as multiplication.
func infix(t token) (int, nodeKind) {
	switch t.kind {
	case tokenOp:
		switch t.text {
		case "+":
			return bindSum, nodeAdd
		case "-":
			return bindSum, nodeSub
		case "*", "×":
			return bindProduct, nodeMul
		case "/", "÷":
			return bindProduct, nodeDiv
		case "^", "**":
			return bindPower, nodePow
		}
	case tokenNum, tokenIdent, tokenOpen:
		return bindProduct, nodeMul
	}
	return bindNone, nodeNone
}

// expr parses operators binding tighter than min.
func (p *parser) expr(min int) (*node, error) {
	lhs, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		bind, kind := infix(t)
		if bind <= min {
			return lhs, nil
		}
		if t.kind == tokenOp {
			p.next()
		}
		var rhs *node
		if kind == nodePow {
			// Right associative, with an optional sign on the exponent.
			rhs, err = p.unary()
		} else {
			rhs, err = p.expr(bind)
		}
		if err != nil {
			return nil, err
		}
		lhs = &node{kind: kind, left: lhs, right: rhs}
	}
}

func (p *parser) unary() (*node, error) {
	t := p.peek()
	if t.kind != tokenOp {
		return p.power()
	}
	p.next()
	var kind nodeKind
	switch t.text {
	case "-":
		kind = nodeNeg
	case "+":
		kind = nodeNop
	default:
		return nil, &OperatorError{Col: t.col, Operator: t.text, Unary: true}
	}
	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &node{kind: kind, left: operand}, nil
}

func (p *parser) power() (*node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind == tokenOp && (t.text == "^" || t.text == "**") {
		p.next()
		exp, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodePow, left: base, right: exp}, nil
	}
	return base, nil
}

func (p *parser) primary() (*node, error) {
	t := p.next()
	switch t.kind {
	case tokenNum:
		return &node{kind: nodeNum, name: t.text}, nil
	case tokenIdent:
		if fn := lookupFunc(t.text); fn != nil {
			return p.call(t, fn)
		}
		return &node{kind: nodeName, name: t.text}, nil
	case tokenOpen:
		n, err := p.expr(bindNone)
		if err != nil {
			return nil, err
		}
		if err := p.close(t); err != nil {
			return nil, err
		}
		return n, nil
	case tokenSep:
		return nil, &SeparatorError{Col: t.col, Sep: t.text}
	case tokenOp:
		return nil, &OperatorError{Col: t.col, Operator: t.text, Unary: true}
	default:
		// EOF or a close bracket where an operand belongs.
		return nil, &EmptyExpressionError{Col: t.col, End: t.text}
	}
}

// close consumes the bracket matching open.
func (p *parser) close(open token) error {
	t := p.next()
	if t.kind != tokenClose || t.text != matching(open.text) {
		return unexpected(t, open.text)
	}
	return nil
}

// call parses the arguments of a call to fn named by t. Without brackets, the
// argument is a single signed power, so sin x^2 is sin(x^2).
func (p *parser) call(t token, fn *funcDef) (*node, error) {
	open := p.peek()
	if open.kind != tokenOpen {
		switch open.kind {
		case tokenEOF, tokenClose, tokenSep:
			return nil, &CallError{Col: open.col, Func: fn.name, Len: 0}
		}
		if !fn.canCall(1) {
			return nil, &CallError{Col: open.col, Func: fn.name, Len: 1}
		}
		arg, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeCall, name: fn.name, right: &node{kind: nodeArg, left: arg}}, nil
	}
	p.next()
	var args []*node
	if q := p.peek(); q.kind == tokenClose {
		if err := p.close(open); err != nil {
			return nil, err
		}
	} else {
		for {
			a, err := p.expr(bindNone)
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.peek().kind != tokenSep {
				break
			}
			p.next()
		}
		if err := p.close(open); err != nil {
			return nil, err
		}
	}
	if !fn.canCall(len(args)) {
		return nil, &CallError{Col: t.col, Func: fn.name, Len: len(args)}
	}
	n := &node{kind: nodeCall, name: fn.name}
	link := n
	for _, a := range args {
		link.right = &node{kind: nodeArg, left: a}
		link = link.right
	}
	return n, nil
}

// matching returns the close bracket for an open bracket.
func matching(open string) string {
	k := strings.Index(openRunes, open)
	if k < 0 {
		return ""
	}
	return closeRunes[k : k+1]
}

// unexpected returns an error for a token that cannot end the subexpression
// opened by the bracket open, or the whole expression if open is empty.
func unexpected(t token, open string) error {
	switch t.kind {
	case tokenEOF:
		return &BracketError{Col: t.col, Left: open}
	case tokenClose:
		return &BracketError{Col: t.col, Left: open, Right: t.text}
	case tokenSep:
		return &SeparatorError{Col: t.col, Sep: t.text}
	default:
		return &EmptyExpressionError{Col: t.col, End: t.text}
	}
}
