package dom

import (
	"strings"
)

// Document represents the entire HTML document.
type Document Node

// NewDocument creates a new empty HTML Document.
func NewDocument() *Document {
	node := newNode(DocumentNode, "#document", nil)
	doc := (*Document)(node)
	node.ownerDoc = doc
	return doc
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// NodeType returns DocumentNode.
func (d *Document) NodeType() NodeType {
	return DocumentNode
}

// NodeName returns "#document".
func (d *Document) NodeName() string {
	return "#document"
}

// CreateElement creates a new element with the given tag name.
func (d *Document) CreateElement(tagName string) *Element {
	node := newNode(ElementNode, strings.ToUpper(tagName), d)
	node.elementData = &elementData{
		localName: strings.ToLower(tagName),
		tagName:   strings.ToUpper(tagName),
	}
	return (*Element)(node)
}

// CreateTextNode creates a new text node.
func (d *Document) CreateTextNode(data string) *Node {
	node := newNode(TextNode, "#text", d)
	node.nodeValue = data
	return node
}

// CreateComment creates a new comment node.
func (d *Document) CreateComment(data string) *Node {
	node := newNode(CommentNode, "#comment", d)
	node.nodeValue = data
	return node
}

// AppendChild appends child to the document.
func (d *Document) AppendChild(child *Node) (*Node, error) {
	if child != nil && child.nodeType == ElementNode && d.DocumentElement() != nil {
		return nil, ErrHierarchyRequest("document already has a document element")
	}
	return d.AsNode().AppendChild(child)
}

// DocumentElement returns the root element of the document.
func (d *Document) DocumentElement() *Element {
	for child := d.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// Head returns the <head> element.
func (d *Document) Head() *Element {
	return d.rootChild("HEAD")
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	return d.rootChild("BODY")
}

func (d *Document) rootChild(tagName string) *Element {
	docEl := d.DocumentElement()
	if docEl == nil {
		return nil
	}
	for _, el := range docEl.Children() {
		if el.TagName() == tagName {
			return el
		}
	}
	return nil
}

// GetElementsByTagName returns all descendant elements with the given tag
// name in tree order. "*" matches every element.
func (d *Document) GetElementsByTagName(tagName string) []*Element {
	var out []*Element
	tagName = strings.ToUpper(tagName)
	Walk(d.AsNode(), func(el *Element) bool {
		if tagName == "*" || el.TagName() == tagName {
			out = append(out, el)
		}
		return true
	})
	return out
}

// GetElementById returns the first element in tree order with the given id.
func (d *Document) GetElementById(id string) *Element {
	var found *Element
	Walk(d.AsNode(), func(el *Element) bool {
		if el.Id() == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// Walk visits the element descendants of root in tree order until fn
// returns false.
func Walk(root *Node, fn func(*Element) bool) bool {
	for c := root.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType != ElementNode {
			continue
		}
		if !fn((*Element)(c)) {
			return false
		}
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}
