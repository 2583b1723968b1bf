package dom

import (
	"strings"
)

// Node represents a node in the DOM tree. Document, Element and Text are all
// views over the same struct, selected by nodeType.
type Node struct {
	nodeType   NodeType
	nodeName   string
	nodeValue  string
	ownerDoc   *Document
	parentNode *Node

	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// Only set for elements.
	elementData *elementData
}

// newNode creates a new node with the given type and name.
func newNode(nodeType NodeType, nodeName string, ownerDoc *Document) *Node {
	return &Node{
		nodeType: nodeType,
		nodeName: nodeName,
		ownerDoc: ownerDoc,
	}
}

// NodeType returns the type of the node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// NodeName returns the name of the node.
// For elements, this is the tag name in uppercase.
func (n *Node) NodeName() string {
	return n.nodeName
}

// NodeValue returns the text of text and comment nodes, "" otherwise.
func (n *Node) NodeValue() string {
	return n.nodeValue
}

// OwnerDocument returns the Document that owns this node.
// For Document nodes, this returns nil.
func (n *Node) OwnerDocument() *Document {
	if n.nodeType == DocumentNode {
		return nil
	}
	return n.ownerDoc
}

// ParentNode returns the parent of this node.
func (n *Node) ParentNode() *Node {
	return n.parentNode
}

// ParentElement returns the parent Element, or nil if the parent is not an element.
func (n *Node) ParentElement() *Element {
	if n.parentNode != nil && n.parentNode.nodeType == ElementNode {
		return (*Element)(n.parentNode)
	}
	return nil
}

// FirstChild returns the first child node, or nil if there are no children.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child node, or nil if there are no children.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// PreviousSibling returns the previous sibling node, or nil if this is the first child.
func (n *Node) PreviousSibling() *Node {
	return n.prevSibling
}

// NextSibling returns the next sibling node, or nil if this is the last child.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// HasChildNodes returns true if this node has any child nodes.
func (n *Node) HasChildNodes() bool {
	return n.firstChild != nil
}

// IsElement reports whether the node is an Element.
func (n *Node) IsElement() bool {
	return n.nodeType == ElementNode
}

// AsElement returns the node as an Element, or nil if it is not one.
func (n *Node) AsElement() *Element {
	if n == nil || n.nodeType != ElementNode {
		return nil
	}
	return (*Element)(n)
}

// AsDocument returns the node as a Document, or nil if it is not one.
func (n *Node) AsDocument() *Document {
	if n == nil || n.nodeType != DocumentNode {
		return nil
	}
	return (*Document)(n)
}

// Contains returns true if other is this node or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parentNode {
		if cur == n {
			return true
		}
	}
	return false
}

// AppendChild adds child to the end of this node's children, detaching it
// from its previous parent first.
func (n *Node) AppendChild(child *Node) (*Node, error) {
	if child == nil {
		return nil, ErrHierarchyRequest("cannot append a nil node")
	}
	if child.nodeType == DocumentNode {
		return nil, ErrHierarchyRequest("cannot insert a document")
	}
	if child.Contains(n) {
		return nil, ErrHierarchyRequest("the new child contains the parent")
	}
	if n.nodeType == TextNode || n.nodeType == CommentNode {
		return nil, ErrHierarchyRequest("character data cannot have children")
	}

	if child.parentNode != nil {
		if _, err := child.parentNode.RemoveChild(child); err != nil {
			return nil, err
		}
	}

	child.parentNode = n
	child.prevSibling = n.lastChild
	child.nextSibling = nil
	if n.lastChild != nil {
		n.lastChild.nextSibling = child
	} else {
		n.firstChild = child
	}
	n.lastChild = child

	if n.nodeType == DocumentNode {
		child.ownerDoc = (*Document)(n)
	} else {
		child.ownerDoc = n.ownerDoc
	}
	return child, nil
}

// RemoveChild removes child from this node's children.
func (n *Node) RemoveChild(child *Node) (*Node, error) {
	if child == nil || child.parentNode != n {
		return nil, ErrNotFound("the node to be removed is not a child of this node")
	}

	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}

	child.parentNode = nil
	child.prevSibling = nil
	child.nextSibling = nil
	return child, nil
}

// ChildElements returns the element children of this node in tree order.
func (n *Node) ChildElements() []*Element {
	var out []*Element
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			out = append(out, (*Element)(c))
		}
	}
	return out
}

// TextContent returns the concatenated text of all descendant text nodes.
func (n *Node) TextContent() string {
	switch n.nodeType {
	case TextNode, CommentNode:
		return n.nodeValue
	case DocumentNode:
		return ""
	}
	var sb strings.Builder
	n.collectText(&sb)
	return sb.String()
}

func (n *Node) collectText(sb *strings.Builder) {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		switch c.nodeType {
		case TextNode:
			sb.WriteString(c.nodeValue)
		case ElementNode:
			c.collectText(sb)
		}
	}
}
