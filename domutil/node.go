package domutil

import (
	"github.com/chrisuehlinger/dragbounds/css"
	"github.com/chrisuehlinger/dragbounds/dom"
)

// DOMNode adapts a *dom.Node to Node. Elements expose the standard
// "matches" capability; other node types expose none.
type DOMNode struct {
	node *dom.Node
}

// NodeOf wraps n. A nil n yields a nil Node so that it can stand for an
// absent boundary.
func NodeOf(n *dom.Node) Node {
	if n == nil {
		return nil
	}
	return DOMNode{node: n}
}

// ElementNode wraps el.
func ElementNode(el *dom.Element) Node {
	if el == nil {
		return nil
	}
	return NodeOf(el.AsNode())
}

// DOM returns the wrapped node.
func (n DOMNode) DOM() *dom.Node {
	return n.node
}

// ParentNode implements Node.
func (n DOMNode) ParentNode() Node {
	return NodeOf(n.node.ParentNode())
}

// SelectorCapability implements Node.
func (n DOMNode) SelectorCapability(name string) (SelectorFunc, bool) {
	if name != "matches" || !n.node.IsElement() {
		return nil, false
	}
	el := n.node.AsElement()
	return func(selector string) (bool, error) {
		return css.Matches(el, selector)
	}, true
}
