package dom

import (
	"strings"
)

// Element represents an element in the DOM tree.
type Element Node

// Attribute is a single name/value pair on an element.
type Attribute struct {
	Name  string
	Value string
}

// elementData holds data specific to Element nodes.
type elementData struct {
	localName        string
	tagName          string
	attributes       []Attribute
	styleDeclaration *CSSStyleDeclaration

	// Set by the layout engine.
	geometry *ElementGeometry
}

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// data returns the element data, allocating it on first use.
func (e *Element) data() *elementData {
	n := e.AsNode()
	if n.elementData == nil {
		n.elementData = &elementData{
			localName: strings.ToLower(n.nodeName),
			tagName:   strings.ToUpper(n.nodeName),
		}
	}
	return n.elementData
}

// NodeType returns ElementNode.
func (e *Element) NodeType() NodeType {
	return ElementNode
}

// TagName returns the tag name in uppercase.
func (e *Element) TagName() string {
	return e.data().tagName
}

// LocalName returns the local name of the element (lowercase for HTML).
func (e *Element) LocalName() string {
	return e.data().localName
}

// OwnerDocument returns the Document that owns this element.
func (e *Element) OwnerDocument() *Document {
	return e.AsNode().ownerDoc
}

// ParentNode returns the parent of this element.
func (e *Element) ParentNode() *Node {
	return e.AsNode().parentNode
}

// ParentElement returns the parent Element, or nil.
func (e *Element) ParentElement() *Element {
	return e.AsNode().ParentElement()
}

// Children returns the element children in tree order.
func (e *Element) Children() []*Element {
	return e.AsNode().ChildElements()
}

// Id returns the id attribute value.
func (e *Element) Id() string {
	return e.GetAttribute("id")
}

// ClassName returns the class attribute value.
func (e *Element) ClassName() string {
	return e.GetAttribute("class")
}

// ClassList returns the whitespace-separated tokens of the class attribute.
func (e *Element) ClassList() []string {
	return strings.Fields(e.ClassName())
}

// HasClass reports whether the class attribute contains the given token.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.ClassList() {
		if c == name {
			return true
		}
	}
	return false
}

// Attributes returns a copy of the element's attributes in source order.
func (e *Element) Attributes() []Attribute {
	attrs := e.data().attributes
	out := make([]Attribute, len(attrs))
	copy(out, attrs)
	return out
}

// GetAttribute returns the value of the attribute with the given name,
// or "" if it is absent. Names are matched case-insensitively.
func (e *Element) GetAttribute(name string) string {
	v, _ := e.lookupAttribute(name)
	return v
}

// HasAttribute returns true if the element has the named attribute.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.lookupAttribute(name)
	return ok
}

func (e *Element) lookupAttribute(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.data().attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttribute sets the value of the named attribute.
func (e *Element) SetAttribute(name, value string) {
	e.setAttributeRaw(name, value)
	if strings.EqualFold(name, "style") && e.data().styleDeclaration != nil {
		e.data().styleDeclaration.RefreshFromAttribute()
	}
}

func (e *Element) setAttributeRaw(name, value string) {
	d := e.data()
	name = strings.ToLower(name)
	for i := range d.attributes {
		if d.attributes[i].Name == name {
			d.attributes[i].Value = value
			return
		}
	}
	d.attributes = append(d.attributes, Attribute{Name: name, Value: value})
}

// RemoveAttribute removes the named attribute if present.
func (e *Element) RemoveAttribute(name string) {
	e.removeAttributeRaw(name)
	if strings.EqualFold(name, "style") && e.data().styleDeclaration != nil {
		e.data().styleDeclaration.RefreshFromAttribute()
	}
}

func (e *Element) removeAttributeRaw(name string) {
	d := e.data()
	name = strings.ToLower(name)
	for i, a := range d.attributes {
		if a.Name == name {
			d.attributes = append(d.attributes[:i], d.attributes[i+1:]...)
			return
		}
	}
}

// AppendChild appends child to this element.
func (e *Element) AppendChild(child *Node) (*Node, error) {
	return e.AsNode().AppendChild(child)
}

// Style returns the CSSStyleDeclaration for this element's inline styles.
func (e *Element) Style() *CSSStyleDeclaration {
	d := e.data()
	if d.styleDeclaration == nil {
		d.styleDeclaration = NewCSSStyleDeclaration(e)
	}
	return d.styleDeclaration
}

// Geometry returns the element's layout geometry.
// Returns nil if layout has not been computed.
func (e *Element) Geometry() *ElementGeometry {
	return e.data().geometry
}

// SetGeometry sets the element's layout geometry.
// This is called by the layout engine after layout computation.
func (e *Element) SetGeometry(g *ElementGeometry) {
	e.data().geometry = g
}

// OffsetWidth returns the layout width including padding and border.
func (e *Element) OffsetWidth() float64 {
	if g := e.Geometry(); g != nil {
		return g.OffsetWidth
	}
	return 0
}

// OffsetHeight returns the layout height including padding and border.
func (e *Element) OffsetHeight() float64 {
	if g := e.Geometry(); g != nil {
		return g.OffsetHeight
	}
	return 0
}

// OffsetTop returns the distance from the top padding edge of the offset parent.
func (e *Element) OffsetTop() float64 {
	if g := e.Geometry(); g != nil {
		return g.OffsetTop
	}
	return 0
}

// OffsetLeft returns the distance from the left padding edge of the offset parent.
func (e *Element) OffsetLeft() float64 {
	if g := e.Geometry(); g != nil {
		return g.OffsetLeft
	}
	return 0
}

// OffsetParent returns the offset parent element.
func (e *Element) OffsetParent() *Element {
	if g := e.Geometry(); g != nil {
		return g.OffsetParent
	}
	return nil
}

// ClientWidth returns the inner width (content + padding) without border.
func (e *Element) ClientWidth() float64 {
	if g := e.Geometry(); g != nil {
		return g.ClientWidth
	}
	return 0
}

// ClientHeight returns the inner height (content + padding) without border.
func (e *Element) ClientHeight() float64 {
	if g := e.Geometry(); g != nil {
		return g.ClientHeight
	}
	return 0
}

// ScrollTop returns the scroll offset from the top.
func (e *Element) ScrollTop() float64 {
	if g := e.Geometry(); g != nil {
		return g.ScrollTop
	}
	return 0
}

// ScrollLeft returns the scroll offset from the left.
func (e *Element) ScrollLeft() float64 {
	if g := e.Geometry(); g != nil {
		return g.ScrollLeft
	}
	return 0
}

// SetScrollTop sets the scroll offset from the top. Negative values clamp to 0.
func (e *Element) SetScrollTop(value float64) {
	e.ensureGeometry().ScrollTop = max(value, 0)
}

// SetScrollLeft sets the scroll offset from the left. Negative values clamp to 0.
func (e *Element) SetScrollLeft(value float64) {
	e.ensureGeometry().ScrollLeft = max(value, 0)
}

func (e *Element) ensureGeometry() *ElementGeometry {
	d := e.data()
	if d.geometry == nil {
		d.geometry = &ElementGeometry{}
	}
	return d.geometry
}

// GetBoundingClientRect returns the element's border box in viewport coordinates.
func (e *Element) GetBoundingClientRect() DOMRect {
	g := e.Geometry()
	if g == nil {
		return DOMRect{}
	}
	return DOMRect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
}
